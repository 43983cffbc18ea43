package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"tripgenie/internal/models/response_models"
	"tripgenie/pkg/utils"
)

// NormalizeModelOutput strips a surrounding Markdown code fence and checks that
// what remains is a single JSON value.
func NormalizeModelOutput(text string) (json.RawMessage, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		} else if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
			// some other language tag
			s = s[nl+1:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "```"))

	if s == "" || !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("%w: completion is not valid JSON", utils.ErrMalformedModelOutput)
	}
	return json.RawMessage(s), nil
}

// decodeModelJSON decodes a normalized completion. Unknown keys are ignored;
// the Decode* functions check the fields they need.
func decodeModelJSON(raw json.RawMessage, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrMalformedModelOutput, err)
	}
	return nil
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{utils.ErrMalformedModelOutput}, args...)...)
}

// DecodeItinerary requires exactly days entries numbered 1..days in order, each
// with a title and at least one activity.
func DecodeItinerary(raw json.RawMessage, days int) (response_models.Itinerary, error) {
	var it response_models.Itinerary
	if err := decodeModelJSON(raw, &it); err != nil {
		return it, err
	}
	if strings.TrimSpace(it.TripName) == "" {
		return it, malformed("tripName is missing")
	}
	if len(it.Itinerary) != days {
		return it, malformed("expected %d days, got %d", days, len(it.Itinerary))
	}
	for i, d := range it.Itinerary {
		if d.Day != i+1 {
			return it, malformed("entry %d has day %d", i+1, d.Day)
		}
		if strings.TrimSpace(d.Title) == "" {
			return it, malformed("day %d has no title", d.Day)
		}
		if len(d.Activities) == 0 {
			return it, malformed("day %d has no activities", d.Day)
		}
	}
	return it, nil
}

func DecodeSuggestions(raw json.RawMessage) (response_models.SuggestionsResponse, error) {
	var out response_models.SuggestionsResponse
	if err := decodeModelJSON(raw, &out); err != nil {
		return out, err
	}
	if len(out.Suggestions) == 0 {
		return out, malformed("no suggestions")
	}
	for i, s := range out.Suggestions {
		if strings.TrimSpace(s.Destination) == "" || strings.TrimSpace(s.Reason) == "" {
			return out, malformed("suggestion %d is incomplete", i+1)
		}
	}
	return out, nil
}

func DecodeRevisedActivities(raw json.RawMessage) (response_models.RevisedActivitiesResponse, error) {
	var out response_models.RevisedActivitiesResponse
	if err := decodeModelJSON(raw, &out); err != nil {
		return out, err
	}
	if len(out.RevisedActivities) == 0 {
		return out, malformed("revisedActivities is missing or empty")
	}
	for i, a := range out.RevisedActivities {
		if strings.TrimSpace(a) == "" {
			return out, malformed("activity %d is empty", i+1)
		}
	}
	return out, nil
}

func DecodeEnrichment(raw json.RawMessage) (response_models.EnrichmentResponse, error) {
	var out response_models.EnrichmentResponse
	if err := decodeModelJSON(raw, &out); err != nil {
		return out, err
	}
	if len(out.Suggestions) == 0 {
		return out, malformed("no suggestions")
	}
	for i, s := range out.Suggestions {
		if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Reason) == "" {
			return out, malformed("suggestion %d is incomplete", i+1)
		}
	}
	return out, nil
}
