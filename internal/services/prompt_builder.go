package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tripgenie/internal/models/request_models"
	"tripgenie/internal/models/response_models"
	"tripgenie/pkg/utils"
)

const jsonOnlyDirective = "Ensure the JSON is well-formed. Do not include any text, markdown, or formatting outside of the main JSON object."

// The builders below are pure: the same validated input always yields the same
// prompt text.

func BuildItineraryPrompt(req request_models.GenerateItineraryRequest, budget response_models.BudgetQuote) string {
	var b strings.Builder
	duration := int(req.Duration)

	b.WriteString("You are an expert travel planner named TripGenie.\n")
	b.WriteString("A user wants to plan a trip. Here are their preferences:\n")
	if req.SourceLocation != "" {
		fmt.Fprintf(&b, "- Starting From: %s\n", req.SourceLocation)
	}
	fmt.Fprintf(&b, "- Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "- Travelers: %s\n", describeGroup(req.TripType, int(req.Members)))
	fmt.Fprintf(&b, "- Trip Duration: %d days\n", duration)
	fmt.Fprintf(&b, "- Total Budget: Approximately %s %s for the whole group\n", formatAmount(budget.Amount), budget.Currency)
	fmt.Fprintf(&b, "- Main Interests: %s\n", req.Interests)

	start := req.Start()
	fmt.Fprintf(&b, "- Start Date: %s (%s)\n", start.Format(utils.DateLayout), start.Weekday())
	b.WriteString("- Trip Calendar:\n")
	for i, d := range utils.TripDays(start, duration) {
		fmt.Fprintf(&b, "  - Day %d: %s, %s\n", i+1, d.Weekday(), d.Format(utils.DateLayout))
	}

	b.WriteString("\nPlanning rules:\n")
	fmt.Fprintf(&b, "- Write every text value in this language: %s.\n", req.Language)
	b.WriteString("- Use the trip calendar to avoid weekend crowds: schedule popular attractions on weekdays and quieter or local experiences on Saturdays and Sundays.\n")
	if req.SourceLocation != "" {
		b.WriteString("- Include travel from the starting location on the first day and back on the last day, preferring the most time-efficient local transport (regional trains, buses, nearby airports) over routing through major hubs.\n")
	} else {
		b.WriteString("- Prefer the most time-efficient local transport between places over routing through major hubs.\n")
	}
	fmt.Fprintf(&b, "- All costs are TOTAL costs for all %d traveler(s), not per person, in %s.\n", max(int(req.Members), 1), budget.Currency)
	b.WriteString("- Give each cost as a range string such as \"15,000 - 20,000 " + budget.Currency + "\".\n")
	b.WriteString("- In budgetAssessment, state honestly whether the budget is realistic for this plan and what to adjust if it is not.\n")
	b.WriteString("- Do not repeat the same activity on different days.\n")
	fmt.Fprintf(&b, "- The itinerary array MUST contain exactly %d entries, with \"day\" numbered 1 to %d in order, no gaps and no repeats.\n", duration, duration)

	b.WriteString("\nThe response MUST be a valid JSON object with these keys:\n")
	b.WriteString("- tripName (string): a descriptive name for the trip\n")
	b.WriteString("- estimatedCost (object): travel, accommodation, food, activities, other, total (all strings)\n")
	b.WriteString("- budgetAssessment (string)\n")
	b.WriteString("- itinerary (array): objects with day (integer), title (string), activities (array of strings)\n")
	b.WriteString("\nExample:\n")
	b.WriteString(itineraryExample(budget.Currency))
	b.WriteString("\n")
	b.WriteString(jsonOnlyDirective)
	return b.String()
}

func BuildSuggestionsPrompt(req request_models.SuggestDestinationsRequest) string {
	var b strings.Builder

	b.WriteString("You are an expert travel planner named TripGenie.\n")
	b.WriteString("Based on the following travel preferences, suggest 5 potential destinations.\n")
	if req.SourceLocation != "" {
		fmt.Fprintf(&b, "- Starting From: %s\n", req.SourceLocation)
	}
	fmt.Fprintf(&b, "- Travelers: %s\n", describeGroup(req.TripType, int(req.Members)))
	fmt.Fprintf(&b, "- Trip Duration: %d days\n", int(req.Duration))
	fmt.Fprintf(&b, "- Total Budget: Approximately %s %s for the whole group\n", formatAmount(float64(req.Budget)), req.Currency)
	if req.StartDate != "" {
		if start, err := utils.ParseTripDate(req.StartDate); err == nil {
			fmt.Fprintf(&b, "- Start Date: %s (%s)\n", start.Format(utils.DateLayout), start.Weekday())
		}
	}
	fmt.Fprintf(&b, "- Main Interests: %s\n", req.Interests)

	b.WriteString("\nRules:\n")
	fmt.Fprintf(&b, "- Write every reason in this language: %s.\n", req.Language)
	b.WriteString("- The budget is the total for the whole group, not per person; only suggest destinations it can realistically cover, including travel there.\n")
	if req.SourceLocation != "" {
		b.WriteString("- Favour destinations reachable from the starting location with time-efficient local transport.\n")
	}
	b.WriteString("- Do not suggest the same destination twice.\n")
	b.WriteString("- For each destination, provide a short, compelling reason why it's a good fit.\n")

	b.WriteString("\nThe response MUST be a valid JSON object following this structure:\n")
	b.WriteString(`{
  "suggestions": [
    {
      "destination": "City, Country",
      "reason": "A brief explanation."
    }
  ]
}`)
	b.WriteString("\n")
	b.WriteString(jsonOnlyDirective)
	return b.String()
}

func BuildAdjustDayPrompt(req request_models.AdjustDayRequest) string {
	var b strings.Builder
	plan := req.OriginalDayPlan

	fmt.Fprintf(&b, "A traveler's plan for Day %d (%s) was originally:\n", plan.Day, plan.Title)
	for _, a := range plan.Activities {
		fmt.Fprintf(&b, "- %s\n", a)
	}
	fmt.Fprintf(&b, "\nA real-time event has occurred. The new constraint is: %q.\n", req.AdjustmentPrompt)
	b.WriteString("Please regenerate the list of activities for this day to accommodate this change.\n")
	b.WriteString("Keep activities that are unaffected, replace the ones that are not, and prefer nearby alternatives reachable with local transport.\n")
	b.WriteString("Do not list the same activity twice.\n")
	b.WriteString("The response MUST be a valid JSON object with a single key \"revisedActivities\" which is an array of strings.\n")
	fmt.Fprintf(&b, "Generate the response in the following language: %s.\n", req.Language)
	b.WriteString(`Example: { "revisedActivities": ["Visit the indoor museum instead.", "Enjoy a long lunch at a famous local restaurant.", "Watch a movie at a classic cinema hall."] }`)
	b.WriteString("\n")
	b.WriteString(jsonOnlyDirective)
	return b.String()
}

func BuildEnrichmentPrompt(req request_models.EnrichItineraryRequest) (string, error) {
	days, err := json.MarshalIndent(req.Itinerary.Itinerary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode itinerary context: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a local travel expert. A traveler has the following itinerary planned for %s:\n", req.Itinerary.TripName)
	b.WriteString("---\nITINERARY CONTEXT:\n")
	b.Write(days)
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "The traveler's main interests are: %s.\n", req.Interests)
	b.WriteString("Based on their interests and the existing plan, suggest 3 to 5 \"hidden gems\" or \"off-the-beaten-path\" activities or places they could visit.\n")
	b.WriteString("These suggestions should NOT be duplicates of activities already mentioned in their itinerary, nor of each other.\n")
	b.WriteString("For each suggestion, provide a name and a brief, compelling reason.\n")
	b.WriteString("The response MUST be a valid JSON object following this structure:\n")
	b.WriteString(`{
  "suggestions": [
    {
      "name": "Name of the place or activity",
      "reason": "A brief explanation of why this fits their interests."
    }
  ]
}`)
	b.WriteString("\n")
	b.WriteString(jsonOnlyDirective)
	return b.String(), nil
}

func itineraryExample(currency string) string {
	return `{
  "tripName": "Cultural Tour of Kyoto",
  "estimatedCost": {
    "travel": "200 - 300 ` + currency + `",
    "accommodation": "400 - 500 ` + currency + `",
    "food": "150 - 200 ` + currency + `",
    "activities": "100 - 150 ` + currency + `",
    "other": "50 ` + currency + `",
    "total": "900 - 1,200 ` + currency + `"
  },
  "budgetAssessment": "The budget comfortably covers mid-range hotels and daily activities.",
  "itinerary": [
    {
      "day": 1,
      "title": "Arrival and First Impressions",
      "activities": [
        "Arrive at the airport and transfer to the hotel.",
        "Take a short walk around the local area.",
        "Enjoy a welcome dinner at a traditional restaurant."
      ]
    }
  ]
}`
}

func describeGroup(tripType string, members int) string {
	switch tripType {
	case request_models.TripTypeFamily:
		return fmt.Sprintf("a family of %d", members)
	case request_models.TripTypeGroup:
		return fmt.Sprintf("a group of %d", members)
	default:
		return "a solo traveler"
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
