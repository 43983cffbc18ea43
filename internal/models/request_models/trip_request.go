package request_models

import (
	"strings"
	"time"

	"tripgenie/internal/models/response_models"
	"tripgenie/pkg/utils"
)

const (
	TripTypeSolo   = "solo"
	TripTypeFamily = "family"
	TripTypeGroup  = "group"

	DefaultLanguage = "en"
)

// TripRequest is the planner form as submitted by the browser. A destination
// selects itinerary generation; without one the planner suggests destinations.
type TripRequest struct {
	SourceLocation string        `json:"sourceLocation"`
	Destination    string        `json:"destination"`
	TripType       string        `json:"tripType" binding:"required,oneof=solo family group"`
	Members        FlexibleInt   `json:"members"`
	Duration       FlexibleInt   `json:"duration" binding:"required,gte=1,lte=30"`
	Budget         FlexibleFloat `json:"budget" binding:"required,gt=0"`
	Currency       string        `json:"currency" binding:"required,len=3,alpha"`
	StartDate      string        `json:"startDate"`
	Interests      string        `json:"interests" binding:"required,min=10"`
	Language       string        `json:"language" binding:"max=35"`
}

func (r *TripRequest) Normalize() {
	r.SourceLocation = utils.SanitizeInput(r.SourceLocation)
	r.Destination = utils.SanitizeInput(r.Destination)
	r.Interests = utils.SanitizeInput(r.Interests)
	r.TripType, r.Members = normalizeGroup(r.TripType, r.Members)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.Language = normalizeLanguage(r.Language)
}

func (r *TripRequest) ValidateFields() []utils.FieldError {
	fields := groupMembersRule(r.TripType, r.Members)
	if r.Destination != "" && r.StartDate == "" {
		fields = append(fields, utils.FieldError{Field: "startDate", Reason: "is required when a destination is given"})
	}
	if r.StartDate != "" {
		fields = append(fields, startDateRule(r.StartDate)...)
	}
	return fields
}

func (r *TripRequest) WantsItinerary() bool {
	return r.Destination != ""
}

func (r *TripRequest) ToGenerateRequest() GenerateItineraryRequest {
	return GenerateItineraryRequest{
		SourceLocation: r.SourceLocation,
		Destination:    r.Destination,
		TripType:       r.TripType,
		Members:        r.Members,
		Duration:       r.Duration,
		Budget:         r.Budget,
		Currency:       r.Currency,
		StartDate:      r.StartDate,
		Interests:      r.Interests,
		Language:       r.Language,
	}
}

func (r *TripRequest) ToSuggestRequest() SuggestDestinationsRequest {
	return SuggestDestinationsRequest{
		SourceLocation: r.SourceLocation,
		TripType:       r.TripType,
		Members:        r.Members,
		Duration:       r.Duration,
		Budget:         r.Budget,
		Currency:       r.Currency,
		StartDate:      r.StartDate,
		Interests:      r.Interests,
		Language:       r.Language,
	}
}

type GenerateItineraryRequest struct {
	SourceLocation string        `json:"sourceLocation"`
	Destination    string        `json:"destination" binding:"required"`
	TripType       string        `json:"tripType" binding:"required,oneof=solo family group"`
	Members        FlexibleInt   `json:"members"`
	Duration       FlexibleInt   `json:"duration" binding:"required,gte=1,lte=30"`
	Budget         FlexibleFloat `json:"budget" binding:"required,gt=0"`
	Currency       string        `json:"currency" binding:"required,len=3,alpha"`
	StartDate      string        `json:"startDate" binding:"required"`
	Interests      string        `json:"interests" binding:"required,min=10"`
	Language       string        `json:"language" binding:"max=35"`
}

func (r *GenerateItineraryRequest) Normalize() {
	r.SourceLocation = utils.SanitizeInput(r.SourceLocation)
	r.Destination = utils.SanitizeInput(r.Destination)
	r.Interests = utils.SanitizeInput(r.Interests)
	r.TripType, r.Members = normalizeGroup(r.TripType, r.Members)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.Language = normalizeLanguage(r.Language)
}

func (r *GenerateItineraryRequest) ValidateFields() []utils.FieldError {
	fields := groupMembersRule(r.TripType, r.Members)
	if r.StartDate != "" {
		fields = append(fields, startDateRule(r.StartDate)...)
	}
	return fields
}

// Start returns the parsed start date; it is only meaningful after validation.
func (r *GenerateItineraryRequest) Start() time.Time {
	t, _ := utils.ParseTripDate(r.StartDate)
	return t
}

type SuggestDestinationsRequest struct {
	SourceLocation string        `json:"sourceLocation"`
	TripType       string        `json:"tripType" binding:"required,oneof=solo family group"`
	Members        FlexibleInt   `json:"members"`
	Duration       FlexibleInt   `json:"duration" binding:"required,gte=1,lte=30"`
	Budget         FlexibleFloat `json:"budget" binding:"required,gt=0"`
	Currency       string        `json:"currency" binding:"required,len=3,alpha"`
	StartDate      string        `json:"startDate"`
	Interests      string        `json:"interests" binding:"required,min=10"`
	Language       string        `json:"language" binding:"max=35"`
}

func (r *SuggestDestinationsRequest) Normalize() {
	r.SourceLocation = utils.SanitizeInput(r.SourceLocation)
	r.Interests = utils.SanitizeInput(r.Interests)
	r.TripType, r.Members = normalizeGroup(r.TripType, r.Members)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.Language = normalizeLanguage(r.Language)
}

func (r *SuggestDestinationsRequest) ValidateFields() []utils.FieldError {
	fields := groupMembersRule(r.TripType, r.Members)
	if r.StartDate != "" {
		fields = append(fields, startDateRule(r.StartDate)...)
	}
	return fields
}

type AdjustDayRequest struct {
	OriginalDayPlan  response_models.DayPlan `json:"originalDayPlan"`
	AdjustmentPrompt string                  `json:"adjustmentPrompt" binding:"required,min=3"`
	Language         string                  `json:"language" binding:"required,max=35"`
}

func (r *AdjustDayRequest) Normalize() {
	r.AdjustmentPrompt = utils.SanitizeInput(r.AdjustmentPrompt)
	r.Language = strings.TrimSpace(r.Language)
}

type EnrichItineraryRequest struct {
	Interests string                    `json:"interests" binding:"required,min=10"`
	Itinerary response_models.Itinerary `json:"itinerary"`
}

func (r *EnrichItineraryRequest) Normalize() {
	r.Interests = utils.SanitizeInput(r.Interests)
}

type FindAgenciesRequest struct {
	Destination string `form:"destination" binding:"required"`
}

func (r *FindAgenciesRequest) Normalize() {
	r.Destination = utils.SanitizeInput(r.Destination)
}

type GeocodeRequest struct {
	Locations []string `json:"locations" binding:"required,min=1,max=50,dive,required"`
}

func (r *GeocodeRequest) Normalize() {
	r.Locations = utils.SanitizeAll(r.Locations)
}

func normalizeGroup(tripType string, members FlexibleInt) (string, FlexibleInt) {
	tripType = strings.ToLower(strings.TrimSpace(tripType))
	if tripType == "" {
		tripType = TripTypeSolo
	}
	if tripType == TripTypeSolo {
		members = 1
	}
	return tripType, members
}

func groupMembersRule(tripType string, members FlexibleInt) []utils.FieldError {
	if tripType != TripTypeSolo && members < 2 {
		return []utils.FieldError{{Field: "members", Reason: "must be at least 2 for family or group trips"}}
	}
	return nil
}

func startDateRule(startDate string) []utils.FieldError {
	if _, err := utils.ParseTripDate(startDate); err != nil {
		return []utils.FieldError{{Field: "startDate", Reason: "must be a date (YYYY-MM-DD)"}}
	}
	return nil
}

func normalizeLanguage(language string) string {
	language = strings.TrimSpace(language)
	if language == "" {
		return DefaultLanguage
	}
	return language
}
