package response_models

import (
	"encoding/json"
	"strconv"
)

// CostRange is a human readable amount such as "15,000 - 20,000 INR". Models
// sometimes answer with a bare number, which is kept as its decimal text.
type CostRange string

func (c *CostRange) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = CostRange(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = CostRange(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

type EstimatedCost struct {
	Travel        CostRange `json:"travel"`
	Accommodation CostRange `json:"accommodation"`
	Food          CostRange `json:"food"`
	Activities    CostRange `json:"activities"`
	Other         CostRange `json:"other"`
	Total         CostRange `json:"total"`
}

type DayPlan struct {
	Day        int      `json:"day" binding:"required,gte=1"`
	Title      string   `json:"title" binding:"required"`
	Activities []string `json:"activities" binding:"required,min=1"`
}

type Itinerary struct {
	TripName         string        `json:"tripName" binding:"required"`
	SourceLocation   string        `json:"sourceLocation,omitempty"`
	Destination      string        `json:"destination,omitempty"`
	EstimatedCost    EstimatedCost `json:"estimatedCost"`
	BudgetAssessment string        `json:"budgetAssessment"`
	Itinerary        []DayPlan     `json:"itinerary" binding:"required,min=1,dive"`
}

type DestinationSuggestion struct {
	Destination string `json:"destination"`
	Reason      string `json:"reason"`
}

type SuggestionsResponse struct {
	Suggestions []DestinationSuggestion `json:"suggestions"`
}

type EnrichmentSuggestion struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type EnrichmentResponse struct {
	Suggestions []EnrichmentSuggestion `json:"suggestions"`
}

type RevisedActivitiesResponse struct {
	RevisedActivities []string `json:"revisedActivities"`
}

type Agency struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
}

type AgenciesResponse struct {
	Agencies []Agency `json:"agencies"`
}

type Coordinate struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type CoordinatesResponse struct {
	Coordinates []Coordinate `json:"coordinates"`
}

// BudgetQuote reports which budget figure was embedded in the prompt. Converted is
// false when the exchange-rate lookup was skipped or failed and the traveler's own
// currency was used instead.
type BudgetQuote struct {
	Amount           float64
	Currency         string
	OriginalAmount   float64
	OriginalCurrency string
	Converted        bool
	Reason           string
}

type ItineraryResult struct {
	Itinerary Itinerary
	Budget    BudgetQuote
}
