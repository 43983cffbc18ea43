package services

import (
	"errors"
	"testing"

	"tripgenie/pkg/utils"
)

const twoDayItinerary = `{
  "tripName": "Weekend in Lisbon",
  "estimatedCost": {"travel": "100 EUR", "accommodation": "200 EUR", "food": 80, "activities": "60 EUR", "other": "20 EUR", "total": "460 EUR"},
  "budgetAssessment": "Comfortable.",
  "itinerary": [
    {"day": 1, "title": "Alfama", "activities": ["Tram 28", "Castelo de S. Jorge"]},
    {"day": 2, "title": "Belem", "activities": ["Jeronimos Monastery"]}
  ]
}`

func TestNormalizeModelOutputStripsFences(t *testing.T) {
	plain, err := NormalizeModelOutput(twoDayItinerary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, fenced := range []string{
		"```json\n" + twoDayItinerary + "\n```",
		"```\n" + twoDayItinerary + "\n```\n",
		"  \n```JSON\n" + twoDayItinerary + "```",
		"```json" + twoDayItinerary + "```",
		"```json " + twoDayItinerary + " ```",
		"```javascript\n" + twoDayItinerary + "\n```",
	} {
		got, err := NormalizeModelOutput(fenced)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != string(plain) {
			t.Fatalf("fenced output differs from plain output:\n%s\n%s", got, plain)
		}
	}
}

func TestNormalizeModelOutputRejectsInvalidJSON(t *testing.T) {
	for _, text := range []string{
		"",
		"```json\n```",
		twoDayItinerary[:len(twoDayItinerary)-20],
		"Here is your itinerary: " + twoDayItinerary,
	} {
		if _, err := NormalizeModelOutput(text); !errors.Is(err, utils.ErrMalformedModelOutput) {
			t.Fatalf("expected malformed output error for %q, got %v", text, err)
		}
	}
}

func TestDecodeItinerary(t *testing.T) {
	raw, err := NormalizeModelOutput(twoDayItinerary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	it, err := DecodeItinerary(raw, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.TripName != "Weekend in Lisbon" || len(it.Itinerary) != 2 {
		t.Fatalf("unexpected itinerary %+v", it)
	}
	if it.EstimatedCost.Food != "80" {
		t.Fatalf("numeric cost should be kept as text, got %q", it.EstimatedCost.Food)
	}

	if _, err := DecodeItinerary(raw, 3); !errors.Is(err, utils.ErrMalformedModelOutput) {
		t.Fatalf("expected day count mismatch, got %v", err)
	}
}

func TestDecodeItineraryRequiresSequentialDays(t *testing.T) {
	raw, _ := NormalizeModelOutput(`{"tripName": "x", "itinerary": [
		{"day": 1, "title": "a", "activities": ["one"]},
		{"day": 1, "title": "b", "activities": ["two"]}
	]}`)
	if _, err := DecodeItinerary(raw, 2); !errors.Is(err, utils.ErrMalformedModelOutput) {
		t.Fatalf("expected repeated day to be rejected, got %v", err)
	}

	raw, _ = NormalizeModelOutput(`{"tripName": "x", "itinerary": [{"day": 1, "title": "a", "activities": []}]}`)
	if _, err := DecodeItinerary(raw, 1); !errors.Is(err, utils.ErrMalformedModelOutput) {
		t.Fatalf("expected empty day to be rejected, got %v", err)
	}
}

func TestDecodeOtherShapes(t *testing.T) {
	raw, _ := NormalizeModelOutput(`{"suggestions": [{"destination": "Hoi An, Vietnam", "reason": "Lanterns"}]}`)
	if out, err := DecodeSuggestions(raw); err != nil || len(out.Suggestions) != 1 {
		t.Fatalf("unexpected suggestions %+v, %v", out, err)
	}

	raw, _ = NormalizeModelOutput(`{"suggestions": []}`)
	if _, err := DecodeSuggestions(raw); !errors.Is(err, utils.ErrMalformedModelOutput) {
		t.Fatalf("expected empty suggestions to be rejected, got %v", err)
	}

	raw, _ = NormalizeModelOutput(`{"revisedActivities": ["Museum", "Long lunch"]}`)
	if out, err := DecodeRevisedActivities(raw); err != nil || len(out.RevisedActivities) != 2 {
		t.Fatalf("unexpected activities %+v, %v", out, err)
	}

	raw, _ = NormalizeModelOutput(`{"activities": ["Museum"]}`)
	if _, err := DecodeRevisedActivities(raw); !errors.Is(err, utils.ErrMalformedModelOutput) {
		t.Fatalf("expected missing key to be rejected, got %v", err)
	}

	raw, _ = NormalizeModelOutput(`{"suggestions": [{"name": "Hidden bar", "reason": ""}]}`)
	if _, err := DecodeEnrichment(raw); !errors.Is(err, utils.ErrMalformedModelOutput) {
		t.Fatalf("expected incomplete gem to be rejected, got %v", err)
	}

	raw, _ = NormalizeModelOutput(`{"suggestions": "none"}`)
	if _, err := DecodeEnrichment(raw); !errors.Is(err, utils.ErrMalformedModelOutput) {
		t.Fatalf("expected wrong type to be rejected, got %v", err)
	}
}

func TestDecodeModelJSONIgnoresUnknownKeys(t *testing.T) {
	raw, err := NormalizeModelOutput(`{"suggestions": [{"destination": "Porto, Portugal", "reason": "Wine", "rating": 5}], "note": "enjoy"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := DecodeSuggestions(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Suggestions) != 1 || out.Suggestions[0].Destination != "Porto, Portugal" {
		t.Fatalf("unexpected suggestions %+v", out)
	}
}
