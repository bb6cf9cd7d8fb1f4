// Package app wires configuration, storage and use cases into a running ledger.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/adapter/format"
	"github.com/iho/networth/internal/adapter/idgen"
	"github.com/iho/networth/internal/adapter/repository/file"
	"github.com/iho/networth/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/networth/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/networth/internal/adapter/repository/redis"
	"github.com/iho/networth/internal/infrastructure/config"
	"github.com/iho/networth/internal/infrastructure/metrics"
	"github.com/iho/networth/internal/infrastructure/postgres"
	"github.com/iho/networth/internal/infrastructure/redis"
	"github.com/iho/networth/internal/infrastructure/retry"
	"github.com/iho/networth/internal/usecase"
)

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the wired components. Close releases connections.
type App struct {
	Config      *config.Config
	Logger      zerolog.Logger
	Store       usecase.SnapshotStore
	Ledger      *usecase.LedgerUseCase
	Assets      *usecase.AssetUseCase
	Money       *format.Money
	Metrics     *metrics.Metrics
	Idempotency usecase.IdempotencyStore // nil unless enabled

	redisClient *goredis.Client
	closers     []func()
}

// New connects the configured store, builds the use cases and loads their state.
// A nil reg skips metrics.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, reg prometheus.Registerer) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	money, err := format.NewMoney(cfg.Currency)
	if err != nil {
		return nil, err
	}
	a.Money = money

	ids, err := idgen.New(cfg.IDStrategy)
	if err != nil {
		return nil, err
	}

	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	if cfg.IdempotencyEnabled {
		client, err := a.connectRedis(ctx)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Idempotency = redisRepo.NewIdempotencyStore(client, cfg.SnapshotKeyPrefix)
	}

	var m usecase.Metrics
	if reg != nil {
		a.Metrics = metrics.New(reg)
		m = a.Metrics
	}

	a.Ledger = usecase.NewLedgerUseCase(usecase.LedgerConfig{
		Store:   a.Store,
		IDGen:   ids,
		Logger:  logger,
		Metrics: m,
	})
	a.Assets = usecase.NewAssetUseCase(usecase.AssetConfig{
		Store:   a.Store,
		IDGen:   ids,
		Logger:  logger,
		Metrics: m,
	})

	a.Ledger.Load(ctx)
	a.Assets.Load(ctx)

	return a, nil
}

// Pinger returns the store's health check, or nil when it has none.
func (a *App) Pinger() Pinger {
	p, _ := a.Store.(Pinger)
	return p
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) openStore(ctx context.Context) error {
	cfg := a.Config

	switch cfg.StoreDriver {
	case config.StoreMemory:
		a.Store = memory.NewSnapshotStore()

	case config.StoreFile:
		store, err := file.NewSnapshotStore(cfg.DataDir)
		if err != nil {
			return err
		}
		a.Store = store

	case config.StoreRedis:
		client, err := a.connectRedis(ctx)
		if err != nil {
			return err
		}
		a.Store = redisRepo.NewSnapshotStore(client, cfg.SnapshotKeyPrefix)

	case config.StorePostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, a.Logger); err != nil {
			return err
		}
		pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.DatabaseMaxConns,
			MinConns:    cfg.DatabaseMinConns,
		}, a.connector())
		if err != nil {
			return err
		}
		a.closers = append(a.closers, pool.Close)
		a.Logger.Info().Msg("connected to postgres")
		a.Store = postgresRepo.NewSnapshotStore(pool, cfg.SnapshotKeyPrefix)

	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	a.Logger.Info().Str("driver", cfg.StoreDriver).Msg("snapshot store ready")
	return nil
}

// connectRedis connects once and shares the client between the store and idempotency.
func (a *App) connectRedis(ctx context.Context) (*goredis.Client, error) {
	if a.redisClient != nil {
		return a.redisClient, nil
	}

	client, err := redis.NewClient(ctx, a.Config.RedisURL, a.connector())
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { client.Close() })
	a.redisClient = client
	a.Logger.Info().Msg("connected to redis")

	return client, nil
}

func (a *App) connector() *retry.Connector {
	return retry.NewConnector(a.Config.ConnectMaxElapsed, a.Logger)
}
