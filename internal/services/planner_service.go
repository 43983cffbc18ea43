package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"tripgenie/internal/models/request_models"
	"tripgenie/internal/models/response_models"
	"tripgenie/pkg/utils"
)

type PlannerServiceInterface interface {
	GenerateItinerary(ctx context.Context, req request_models.GenerateItineraryRequest) (*response_models.ItineraryResult, error)
	SuggestDestinations(ctx context.Context, req request_models.SuggestDestinationsRequest) (*response_models.SuggestionsResponse, error)
	AdjustDay(ctx context.Context, req request_models.AdjustDayRequest) (*response_models.RevisedActivitiesResponse, error)
	EnrichItinerary(ctx context.Context, req request_models.EnrichItineraryRequest) (*response_models.EnrichmentResponse, error)
}

type PlannerService struct {
	generator utils.TextGenerator
	currency  CurrencyServiceInterface
	logger    *zap.Logger
}

func NewPlannerService(generator utils.TextGenerator, currency CurrencyServiceInterface, logger *zap.Logger) PlannerServiceInterface {
	return &PlannerService{
		generator: generator,
		currency:  currency,
		logger:    logger,
	}
}

func (p *PlannerService) GenerateItinerary(ctx context.Context, req request_models.GenerateItineraryRequest) (*response_models.ItineraryResult, error) {
	budget := p.quoteBudget(ctx, req)

	raw, err := p.complete(ctx, "generate-itinerary", BuildItineraryPrompt(req, budget))
	if err != nil {
		return nil, err
	}
	itinerary, err := DecodeItinerary(raw, int(req.Duration))
	if err != nil {
		p.logger.Warn("rejected model output", zap.String("use_case", "generate-itinerary"), zap.Error(err))
		return nil, err
	}

	itinerary.SourceLocation = req.SourceLocation
	itinerary.Destination = req.Destination
	return &response_models.ItineraryResult{Itinerary: itinerary, Budget: budget}, nil
}

// quoteBudget expresses the budget in the destination's currency when it is
// known and the conversion succeeds, and in the traveler's currency otherwise.
func (p *PlannerService) quoteBudget(ctx context.Context, req request_models.GenerateItineraryRequest) response_models.BudgetQuote {
	amount := float64(req.Budget)
	local, ok := ResolveDestinationCurrency(req.Destination)
	if !ok {
		return response_models.BudgetQuote{
			Amount:           amount,
			Currency:         req.Currency,
			OriginalAmount:   amount,
			OriginalCurrency: req.Currency,
			Reason:           "destination currency unknown",
		}
	}

	result := p.currency.Convert(ctx, amount, req.Currency, local)
	if !result.Converted {
		p.logger.Info("budget left unconverted",
			zap.String("from", req.Currency),
			zap.String("to", local),
			zap.String("reason", result.Reason))
	}
	return result.Quote()
}

func (p *PlannerService) SuggestDestinations(ctx context.Context, req request_models.SuggestDestinationsRequest) (*response_models.SuggestionsResponse, error) {
	raw, err := p.complete(ctx, "suggest-destinations", BuildSuggestionsPrompt(req))
	if err != nil {
		return nil, err
	}
	out, err := DecodeSuggestions(raw)
	if err != nil {
		p.logger.Warn("rejected model output", zap.String("use_case", "suggest-destinations"), zap.Error(err))
		return nil, err
	}
	return &out, nil
}

func (p *PlannerService) AdjustDay(ctx context.Context, req request_models.AdjustDayRequest) (*response_models.RevisedActivitiesResponse, error) {
	raw, err := p.complete(ctx, "adjust-day", BuildAdjustDayPrompt(req))
	if err != nil {
		return nil, err
	}
	out, err := DecodeRevisedActivities(raw)
	if err != nil {
		p.logger.Warn("rejected model output", zap.String("use_case", "adjust-day"), zap.Error(err))
		return nil, err
	}
	return &out, nil
}

func (p *PlannerService) EnrichItinerary(ctx context.Context, req request_models.EnrichItineraryRequest) (*response_models.EnrichmentResponse, error) {
	prompt, err := BuildEnrichmentPrompt(req)
	if err != nil {
		return nil, err
	}
	raw, err := p.complete(ctx, "enrich-itinerary", prompt)
	if err != nil {
		return nil, err
	}
	out, err := DecodeEnrichment(raw)
	if err != nil {
		p.logger.Warn("rejected model output", zap.String("use_case", "enrich-itinerary"), zap.Error(err))
		return nil, err
	}
	return &out, nil
}

// complete makes the single model call for a request and normalizes its text.
func (p *PlannerService) complete(ctx context.Context, useCase, prompt string) (json.RawMessage, error) {
	text, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		p.logger.Error("model call failed", zap.String("use_case", useCase), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", useCase, err)
	}
	raw, err := NormalizeModelOutput(text)
	if err != nil {
		p.logger.Warn("unparseable model output", zap.String("use_case", useCase), zap.Int("length", len(text)))
		return nil, err
	}
	return raw, nil
}
