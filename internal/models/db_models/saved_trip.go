package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tripgenie/internal/models/response_models"
)

type SavedTrip struct {
	BaseModel
	AccountID        uuid.UUID `gorm:"type:uuid;index"`
	OwnerUID         string    `gorm:"index;not null"`
	TripName         string    `gorm:"not null"`
	SourceLocation   string
	Destination      string
	EstimatedCost    datatypes.JSONType[response_models.EstimatedCost]
	BudgetAssessment string
	Days             datatypes.JSONType[[]response_models.DayPlan] `gorm:"column:itinerary"`
}

func NewSavedTrip(ownerUID string, itinerary response_models.Itinerary) *SavedTrip {
	return &SavedTrip{
		OwnerUID:         ownerUID,
		TripName:         itinerary.TripName,
		SourceLocation:   itinerary.SourceLocation,
		Destination:      itinerary.Destination,
		EstimatedCost:    datatypes.NewJSONType(itinerary.EstimatedCost),
		BudgetAssessment: itinerary.BudgetAssessment,
		Days:             datatypes.NewJSONType(itinerary.Itinerary),
	}
}

func (t *SavedTrip) Itinerary() response_models.Itinerary {
	return response_models.Itinerary{
		TripName:         t.TripName,
		SourceLocation:   t.SourceLocation,
		Destination:      t.Destination,
		EstimatedCost:    t.EstimatedCost.Data(),
		BudgetAssessment: t.BudgetAssessment,
		Itinerary:        t.Days.Data(),
	}
}
