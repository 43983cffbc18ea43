package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"tripgenie/cmd/fx/account_fx"
	"tripgenie/cmd/fx/auth_fx"
	"tripgenie/cmd/fx/config_fx"
	"tripgenie/cmd/fx/controllers_fx"
	"tripgenie/cmd/fx/db_fx"
	"tripgenie/cmd/fx/logger_fx"
	"tripgenie/cmd/fx/maps_fx"
	"tripgenie/cmd/fx/memcache_fx"
	"tripgenie/cmd/fx/prompt_fx"
	"tripgenie/cmd/fx/trips_fx"
	"tripgenie/internal/api/controllers"
	"tripgenie/internal/config"
	"tripgenie/pkg/memcache"
	"tripgenie/pkg/middleware"
	"tripgenie/pkg/utils"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		logger_fx.Module,
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		auth_fx.Module,
		prompt_fx.Module,
		maps_fx.Module,
		trips_fx.Module,
		account_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type RouterParams struct {
	fx.In

	Config   *config.Config
	Logger   *zap.Logger
	Counters memcache.CounterStore
	Verifier utils.TokenVerifier

	Planner  *controllers.PlannerController
	Maps     *controllers.MapsController
	Trips    *controllers.TripController
	Accounts *controllers.AccountController
	Health   *controllers.HealthController
}

func ProvideRouter(p RouterParams) (*gin.Engine, error) {
	gin.SetMode(p.Config.Server.GinMode)

	r := gin.New()
	if err := r.SetTrustedProxies(p.Config.TrustedProxies()); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger))
	r.Use(middleware.CORS(p.Config.AllowedOrigins()))

	RegisterRoutes(r, p)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/healthz", p.Health.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(p.Counters, p.Config.RateLimit.Requests, p.Config.RateLimit.Window, p.Logger))

	api.POST("/plan", p.Planner.Plan)
	api.POST("/generate-itinerary", p.Planner.GenerateItinerary)
	api.POST("/suggest-destinations", p.Planner.SuggestDestinations)
	api.POST("/adjust-day", p.Planner.AdjustDay)
	api.POST("/enrich-itinerary", p.Planner.EnrichItinerary)

	api.GET("/find-agencies", p.Maps.FindAgencies)
	api.POST("/geocode", p.Maps.Geocode)

	api.POST("/users", p.Accounts.UpsertUser)

	trips := api.Group("/trips")
	trips.Use(middleware.JWTAuthMiddleware(p.Verifier, p.Logger))
	trips.POST("", p.Trips.SaveTrip)
	trips.GET("", p.Trips.ListTrips)
	trips.GET("/:id", p.Trips.GetTrip)
	trips.PATCH("/:id/days/:day", p.Trips.UpdateTripDay)
	trips.DELETE("/:id", p.Trips.DeleteTrip)
}
