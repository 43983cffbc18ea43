package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripgenie/internal/config"
	"tripgenie/internal/infra"
	mem "tripgenie/pkg/memcache"
)

var Module = fx.Provide(provideCounterStore)

// provideCounterStore shares rate-limit windows through Redis when REDIS_ADDR is
// set and keeps them in process otherwise.
func provideCounterStore(cfg *config.Config, lc fx.Lifecycle, logger *zap.Logger) (mem.CounterStore, error) {
	client, err := infra.ConnectRedis(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return mem.NewLocalCounterStore(time.Minute, cfg.RateLimit.MaxKeys), nil
	}

	logger.Info("rate limit counters in redis", zap.String("addr", cfg.Redis.Addr))
	lc.Append(fx.Hook{OnStop: func(ctx context.Context) error {
		return client.Close()
	}})
	return mem.NewRedisCounterStore(client), nil
}
