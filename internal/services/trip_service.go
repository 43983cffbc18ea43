package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"tripgenie/internal/models/db_models"
	"tripgenie/internal/models/request_models"
	"tripgenie/internal/models/response_models"
	"tripgenie/internal/repositories"
	"tripgenie/pkg/utils"
)

type TripServiceInterface interface {
	SaveTrip(ctx context.Context, uid string, request request_models.SaveTripRequest) (*response_models.SavedTripResponse, error)
	ListTrips(ctx context.Context, uid string) (*response_models.TripListResponse, error)
	GetTrip(ctx context.Context, uid, tripID string) (*response_models.SavedTripResponse, error)
	UpdateTripDay(ctx context.Context, uid, tripID string, day int, request request_models.UpdateTripDayRequest) (*response_models.SavedTripResponse, error)
	DeleteTrip(ctx context.Context, uid, tripID string) error
}

type TripService struct {
	accountRepo repositories.AccountRepository
	tripRepo    repositories.TripRepository
	logger      *zap.Logger
}

func NewTripService(accountRepo repositories.AccountRepository, tripRepo repositories.TripRepository, logger *zap.Logger) TripServiceInterface {
	return &TripService{
		accountRepo: accountRepo,
		tripRepo:    tripRepo,
		logger:      logger,
	}
}

func (s *TripService) SaveTrip(ctx context.Context, uid string, request request_models.SaveTripRequest) (*response_models.SavedTripResponse, error) {
	account, err := s.accountRepo.FindByUID(ctx, uid)
	if err != nil {
		return nil, s.dbError("find account", err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	trip := db_models.NewSavedTrip(uid, request.Itinerary)
	if err := s.tripRepo.SaveForAccount(ctx, account, trip); err != nil {
		return nil, s.dbError("save trip", err)
	}
	return toSavedTripResponse(trip), nil
}

func (s *TripService) ListTrips(ctx context.Context, uid string) (*response_models.TripListResponse, error) {
	trips, err := s.tripRepo.ListByOwner(ctx, uid)
	if err != nil {
		return nil, s.dbError("list trips", err)
	}

	out := make([]response_models.SavedTripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, *toSavedTripResponse(&trips[i]))
	}
	return &response_models.TripListResponse{SavedTrips: out}, nil
}

func (s *TripService) GetTrip(ctx context.Context, uid, tripID string) (*response_models.SavedTripResponse, error) {
	trip, err := s.ownedTrip(ctx, uid, tripID)
	if err != nil {
		return nil, err
	}
	return toSavedTripResponse(trip), nil
}

// UpdateTripDay applies an already revised activity list to one day of a
// saved trip.
func (s *TripService) UpdateTripDay(ctx context.Context, uid, tripID string, day int, request request_models.UpdateTripDayRequest) (*response_models.SavedTripResponse, error) {
	trip, err := s.ownedTrip(ctx, uid, tripID)
	if err != nil {
		return nil, err
	}

	adjusted, err := AdjustDay(trip.Itinerary(), day, request.Activities)
	if err != nil {
		return nil, err
	}
	trip.Days = datatypes.NewJSONType(adjusted.Itinerary)
	if err := s.tripRepo.UpdateDays(ctx, trip); err != nil {
		return nil, s.dbError("update trip days", err)
	}
	return toSavedTripResponse(trip), nil
}

func (s *TripService) DeleteTrip(ctx context.Context, uid, tripID string) error {
	trip, err := s.ownedTrip(ctx, uid, tripID)
	if err != nil {
		return err
	}
	if err := s.tripRepo.Delete(ctx, trip); err != nil {
		return s.dbError("delete trip", err)
	}
	return nil
}

func (s *TripService) ownedTrip(ctx context.Context, uid, tripID string) (*db_models.SavedTrip, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, s.dbError("find trip", err)
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if trip.OwnerUID != uid {
		return nil, utils.ErrForbidden
	}
	return trip, nil
}

func (s *TripService) dbError(op string, err error) error {
	s.logger.Error(op, zap.Error(err))
	return fmt.Errorf("%w: %s: %v", utils.ErrDatabaseError, op, err)
}

func toSavedTripResponse(t *db_models.SavedTrip) *response_models.SavedTripResponse {
	it := t.Itinerary()
	days := it.Itinerary
	if days == nil {
		days = []response_models.DayPlan{}
	}
	return &response_models.SavedTripResponse{
		ID:               t.ID.String(),
		TripName:         it.TripName,
		SourceLocation:   it.SourceLocation,
		Destination:      it.Destination,
		EstimatedCost:    it.EstimatedCost,
		BudgetAssessment: it.BudgetAssessment,
		Itinerary:        days,
		CreatedAt:        utils.FormatUnixRFC3339(t.CreatedAt),
	}
}
