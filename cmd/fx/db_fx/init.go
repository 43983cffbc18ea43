package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripgenie/internal/config"
	"tripgenie/internal/infra"
	"tripgenie/internal/repositories"
)

var Module = fx.Provide(provideStores)

type Stores struct {
	fx.Out

	Accounts repositories.AccountRepository
	Trips    repositories.TripRepository
}

// provideStores opens the configured database and returns both repositories
// backed by it.
func provideStores(cfg *config.Config, lc fx.Lifecycle, logger *zap.Logger) (Stores, error) {
	if cfg.Database.Driver == "mongo" {
		db, err := infra.InitMongo(context.Background(), cfg.Database.MongoURI, cfg.Database.MongoDatabase, logger)
		if err != nil {
			return Stores{}, err
		}
		lc.Append(fx.Hook{OnStop: func(ctx context.Context) error {
			infra.CloseMongo(ctx, db, logger)
			return nil
		}})
		return Stores{
			Accounts: repositories.NewMongoAccountRepository(db),
			Trips:    repositories.NewMongoTripRepository(db),
		}, nil
	}

	db, err := infra.InitPostgresql(cfg.Database.PostgresURL, logger)
	if err != nil {
		return Stores{}, err
	}
	lc.Append(fx.Hook{OnStop: func(ctx context.Context) error {
		infra.ClosePostgresql(db, logger)
		return nil
	}})
	return Stores{
		Accounts: repositories.NewAccountRepository(db),
		Trips:    repositories.NewTripRepository(db),
	}, nil
}
