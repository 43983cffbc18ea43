package services

import (
	"fmt"

	"tripgenie/internal/models/response_models"
	"tripgenie/pkg/utils"
)

// AdjustDay returns a copy of itinerary with the activities of the given day
// replaced. Day number, title and every other day are kept as they were, and
// itinerary itself is not modified.
func AdjustDay(itinerary response_models.Itinerary, day int, activities []string) (response_models.Itinerary, error) {
	out := itinerary
	out.Itinerary = make([]response_models.DayPlan, len(itinerary.Itinerary))
	copy(out.Itinerary, itinerary.Itinerary)

	for i := range out.Itinerary {
		if out.Itinerary[i].Day != day {
			continue
		}
		replaced := make([]string, len(activities))
		copy(replaced, activities)
		out.Itinerary[i].Activities = replaced
		return out, nil
	}
	return itinerary, fmt.Errorf("%w: day %d", utils.ErrDayNotFound, day)
}
