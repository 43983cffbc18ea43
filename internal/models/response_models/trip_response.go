package response_models

type SavedTripResponse struct {
	ID               string        `json:"id"`
	TripName         string        `json:"tripName"`
	SourceLocation   string        `json:"sourceLocation,omitempty"`
	Destination      string        `json:"destination,omitempty"`
	EstimatedCost    EstimatedCost `json:"estimatedCost"`
	BudgetAssessment string        `json:"budgetAssessment"`
	Itinerary        []DayPlan     `json:"itinerary"`
	CreatedAt        string        `json:"createdAt"`
}

type SaveTripResponse struct {
	Message string             `json:"message"`
	Trip    *SavedTripResponse `json:"trip"`
}

type TripListResponse struct {
	SavedTrips []SavedTripResponse `json:"savedTrips"`
}

type TripDetailResponse struct {
	Trip *SavedTripResponse `json:"trip"`
}

type AccountResponse struct {
	ID         string   `json:"id"`
	UID        string   `json:"uid"`
	Email      string   `json:"email"`
	Name       string   `json:"name,omitempty"`
	CreatedAt  string   `json:"createdAt"`
	LastLogin  string   `json:"lastLogin"`
	SavedTrips []string `json:"savedTrips"`
}

type UpsertUserResponse struct {
	Message string           `json:"message"`
	User    *AccountResponse `json:"user"`
}
