// Command sessiond serves a cookie session demo backed by a configurable
// key-value datastore (memory, redis, postgres or mongo).
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/kvsession/pkg/config"
	"github.com/dmitrymomot/kvsession/pkg/cookie"
	"github.com/dmitrymomot/kvsession/pkg/httpserver"
	"github.com/dmitrymomot/kvsession/pkg/kv"
	"github.com/dmitrymomot/kvsession/pkg/logger"
	"github.com/dmitrymomot/kvsession/pkg/session"
)

func main() {
	if err := run(); err != nil {
		slog.Error("sessiond stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	var (
		appCfg     appConfig
		sessionCfg session.Config
		cookieCfg  cookie.Config
		httpCfg    httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&cookieCfg)
	config.MustLoad(&httpCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Name),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	b, err := openBackend(ctx, appCfg, reg, log)
	if err != nil {
		return err
	}
	go runSweeper(ctx, b, appCfg.SweepInterval, log)

	manager := session.NewFromConfig(sessionCfg,
		session.WithCookieManager(cookie.NewFromConfig(cookieCfg)),
		session.WithLogger(log),
	)

	router := newRouter(routerDeps{
		log:      log,
		manager:  manager,
		bindings: kv.Bindings{manager.Config().Datastore: b.store},
		checks:   []httpserver.Check{b.check},
		gatherer: reg,
	})

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(ctx context.Context, log *slog.Logger) {
			if err := b.close(ctx); err != nil {
				log.ErrorContext(ctx, "close kv backend", logger.Store(b.name), logger.Error(err))
			}
		}),
	)
	return srv.Run(ctx, router)
}
