package trips_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripgenie/internal/repositories"
	"tripgenie/internal/services"
)

var Module = fx.Provide(provideTripService)

func provideTripService(accountRepo repositories.AccountRepository, tripRepo repositories.TripRepository, logger *zap.Logger) services.TripServiceInterface {
	return services.NewTripService(accountRepo, tripRepo, logger)
}
