package request_models

import (
	"strings"

	"tripgenie/internal/models/response_models"
	"tripgenie/pkg/utils"
)

type UpsertUserRequest struct {
	UID   string `json:"uid" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"max=120"`
}

func (r *UpsertUserRequest) Normalize() {
	r.UID = strings.TrimSpace(r.UID)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = utils.SanitizeInput(r.Name)
}

type SaveTripRequest struct {
	Itinerary response_models.Itinerary `json:"itinerary"`
}

func (r *SaveTripRequest) Normalize() {
	r.Itinerary.TripName = utils.SanitizeInput(r.Itinerary.TripName)
	r.Itinerary.SourceLocation = utils.SanitizeInput(r.Itinerary.SourceLocation)
	r.Itinerary.Destination = utils.SanitizeInput(r.Itinerary.Destination)
}

// UpdateTripDayRequest replaces the activities of one saved day, typically with
// the revisedActivities returned by adjust-day.
type UpdateTripDayRequest struct {
	Activities []string `json:"activities" binding:"required,min=1,max=30,dive,required"`
}

func (r *UpdateTripDayRequest) Normalize() {
	r.Activities = utils.SanitizeAll(r.Activities)
}
