package maps_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripgenie/internal/config"
	"tripgenie/internal/services"
)

var Module = fx.Provide(provideMapsService)

func provideMapsService(cfg *config.Config, logger *zap.Logger) services.MapsServiceInterface {
	return services.NewGoogleMapsClient(cfg.Maps.APIKey, cfg.Maps.BaseURL, cfg.Maps.GeocodeConcurrency, cfg.HTTPClientTimeout, logger)
}
