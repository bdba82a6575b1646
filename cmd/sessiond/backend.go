package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/kvsession/pkg/config"
	"github.com/dmitrymomot/kvsession/pkg/httpserver"
	"github.com/dmitrymomot/kvsession/pkg/kv"
	"github.com/dmitrymomot/kvsession/pkg/kv/memory"
	kvmongo "github.com/dmitrymomot/kvsession/pkg/kv/mongo"
	kvpg "github.com/dmitrymomot/kvsession/pkg/kv/pg"
	kvredis "github.com/dmitrymomot/kvsession/pkg/kv/redis"
	"github.com/dmitrymomot/kvsession/pkg/logger"
)

var errUnknownBackend = errors.New("sessiond.unknown_backend")

// backend is an opened datastore plus what the service needs around it.
type backend struct {
	name  string
	store kv.Store
	check httpserver.Check
	// sweep removes expired records for backends without native expiry.
	sweep func(context.Context) error
	close func(context.Context) error
}

// openBackend connects the datastore selected by cfg.Backend and wraps it
// with prometheus instrumentation registered on reg.
func openBackend(ctx context.Context, cfg appConfig, reg prometheus.Registerer, log *slog.Logger) (*backend, error) {
	var (
		b   *backend
		err error
	)
	switch cfg.Backend {
	case backendMemory, "":
		b = openMemory()
	case backendRedis:
		b, err = openRedis(ctx)
	case backendPostgres:
		b, err = openPostgres(ctx, log)
	case backendMongo:
		b, err = openMongo(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}

	b.store = kv.NewInstrumentedStore(b.store, b.name, kv.NewMetrics(reg))
	log.InfoContext(ctx, "kv backend ready", logger.Store(b.name))
	return b, nil
}

func openMemory() *backend {
	store := memory.New()
	return &backend{
		name:  backendMemory,
		store: store,
		check: httpserver.Check{Name: backendMemory, Func: func(context.Context) error { return nil }},
		sweep: store.DeleteExpired,
		close: func(context.Context) error { return store.Close() },
	}
}

func openRedis(ctx context.Context) (*backend, error) {
	var cfg kvredis.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	client, err := kvredis.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &backend{
		name:  backendRedis,
		store: kvredis.NewStoreWithConfig(client, cfg),
		check: httpserver.Check{Name: backendRedis, Func: kvredis.Healthcheck(client)},
		close: func(context.Context) error { return client.Close() },
	}, nil
}

func openPostgres(ctx context.Context, log *slog.Logger) (*backend, error) {
	var cfg kvpg.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	pool, err := kvpg.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := kvpg.Migrate(ctx, pool, cfg, log); err != nil {
		pool.Close()
		return nil, err
	}
	store, err := kvpg.NewStore(pool, kvpg.WithTable(cfg.Table))
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &backend{
		name:  backendPostgres,
		store: store,
		check: httpserver.Check{Name: backendPostgres, Func: kvpg.Healthcheck(pool)},
		sweep: func(ctx context.Context) error {
			_, err := store.DeleteExpired(ctx)
			return err
		},
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

func openMongo(ctx context.Context) (*backend, error) {
	var cfg kvmongo.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	client, err := kvmongo.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store := kvmongo.NewStore(client.Database(cfg.Database).Collection(cfg.Collection))
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &backend{
		name:  backendMongo,
		store: store,
		check: httpserver.Check{Name: backendMongo, Func: kvmongo.Healthcheck(client)},
		close: client.Disconnect,
	}, nil
}

// runSweeper calls b.sweep every interval until ctx is done.
func runSweeper(ctx context.Context, b *backend, interval time.Duration, log *slog.Logger) {
	if b.sweep == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.sweep(ctx); err != nil {
				log.ErrorContext(ctx, "kv sweep failed", logger.Store(b.name), logger.Error(err))
			}
		}
	}
}
