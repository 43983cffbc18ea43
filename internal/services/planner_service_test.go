package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"tripgenie/internal/models/request_models"
	"tripgenie/pkg/utils"
)

type stubGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func (s *stubGenerator) Close() error { return nil }

type stubCurrency struct {
	result ConversionResult
	calls  int
}

func (s *stubCurrency) Convert(_ context.Context, amount float64, from, to string) ConversionResult {
	s.calls++
	r := s.result
	r.OriginalAmount = amount
	r.OriginalCurrency = from
	return r
}

func generateRequest(duration int) request_models.GenerateItineraryRequest {
	return request_models.GenerateItineraryRequest{
		SourceLocation: "Milan, Italy",
		Destination:    "Paris, France",
		TripType:       request_models.TripTypeFamily,
		Members:        4,
		Duration:       request_models.FlexibleInt(duration),
		Budget:         3000,
		Currency:       "USD",
		StartDate:      "2025-07-12",
		Interests:      "museums, parks and bakeries",
		Language:       "en",
	}
}

func itineraryReply(days int) string {
	var b strings.Builder
	b.WriteString("```json\n{\"tripName\": \"Paris with kids\", \"estimatedCost\": {\"total\": \"2,700 EUR\"}, \"budgetAssessment\": \"Fine.\", \"itinerary\": [")
	for d := 1; d <= days; d++ {
		if d > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"day": %d, "title": "Day %d", "activities": ["Activity %d"]}`, d, d, d)
	}
	b.WriteString("]}\n```")
	return b.String()
}

func TestGenerateItinerary(t *testing.T) {
	gen := &stubGenerator{reply: itineraryReply(3)}
	cur := &stubCurrency{result: ConversionResult{Converted: true, Amount: 2757, Currency: "EUR"}}
	planner := NewPlannerService(gen, cur, zap.NewNop())

	got, err := planner.GenerateItinerary(context.Background(), generateRequest(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, d := range got.Itinerary.Itinerary {
		if d.Day != i+1 {
			t.Fatalf("day %d numbered %d", i+1, d.Day)
		}
	}
	if got.Itinerary.Destination != "Paris, France" || got.Itinerary.SourceLocation != "Milan, Italy" {
		t.Fatalf("request locations not echoed: %+v", got.Itinerary)
	}
	if !got.Budget.Converted || got.Budget.Currency != "EUR" {
		t.Fatalf("unexpected budget quote %+v", got.Budget)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected one model call, got %d", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "2757 EUR") {
		t.Fatalf("prompt should carry the converted budget:\n%s", gen.prompts[0])
	}
}

func TestGenerateItineraryRejectsWrongDayCount(t *testing.T) {
	gen := &stubGenerator{reply: itineraryReply(2)}
	planner := NewPlannerService(gen, &stubCurrency{}, zap.NewNop())

	_, err := planner.GenerateItinerary(context.Background(), generateRequest(3))
	if !errors.Is(err, utils.ErrMalformedModelOutput) {
		t.Fatalf("expected malformed output error, got %v", err)
	}
}

func TestGenerateItineraryUnknownCurrencySkipsConversion(t *testing.T) {
	gen := &stubGenerator{reply: itineraryReply(1)}
	cur := &stubCurrency{}
	planner := NewPlannerService(gen, cur, zap.NewNop())

	req := generateRequest(1)
	req.Destination = "Cusco, Peru"
	got, err := planner.GenerateItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cur.calls != 0 {
		t.Fatalf("expected no conversion call, got %d", cur.calls)
	}
	if got.Budget.Converted || got.Budget.Currency != "USD" || got.Budget.Amount != 3000 {
		t.Fatalf("expected budget in the traveler's currency, got %+v", got.Budget)
	}
	if !strings.Contains(gen.prompts[0], "3000 USD") {
		t.Fatalf("prompt should carry the original budget:\n%s", gen.prompts[0])
	}
}

func TestGeneratorFailureIsUpstream(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("%w: quota", utils.ErrUpstream)}
	planner := NewPlannerService(gen, &stubCurrency{}, zap.NewNop())

	_, err := planner.SuggestDestinations(context.Background(), request_models.SuggestDestinationsRequest{
		TripType: "solo", Members: 1, Duration: 4, Budget: 800, Currency: "EUR", Interests: "street food and markets", Language: "en",
	})
	if !errors.Is(err, utils.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestAdjustDayAndEnrich(t *testing.T) {
	gen := &stubGenerator{reply: `{"revisedActivities": ["Louvre", "Covered passages"]}`}
	planner := NewPlannerService(gen, &stubCurrency{}, zap.NewNop())

	revised, err := planner.AdjustDay(context.Background(), request_models.AdjustDayRequest{
		OriginalDayPlan:  sampleItinerary().Itinerary[0],
		AdjustmentPrompt: "heavy rain all day",
		Language:         "en",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(revised.RevisedActivities) != 2 {
		t.Fatalf("unexpected activities %+v", revised)
	}

	gen.reply = "not json at all"
	_, err = planner.EnrichItinerary(context.Background(), request_models.EnrichItineraryRequest{
		Interests: "jazz and vinyl shops",
		Itinerary: sampleItinerary(),
	})
	if !errors.Is(err, utils.ErrMalformedModelOutput) {
		t.Fatalf("expected malformed output error, got %v", err)
	}
}
