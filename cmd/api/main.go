package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/socops/ticket-analytics/internal/analytics"
	httptransport "github.com/socops/ticket-analytics/internal/api/http"
	"github.com/socops/ticket-analytics/internal/api/http/handlers"
	"github.com/socops/ticket-analytics/internal/cache"
	"github.com/socops/ticket-analytics/internal/config"
	"github.com/socops/ticket-analytics/internal/dataset"
	"github.com/socops/ticket-analytics/internal/events"
	"github.com/socops/ticket-analytics/internal/observability"
	"github.com/socops/ticket-analytics/internal/persistence"
	"github.com/socops/ticket-analytics/internal/repository"
	"github.com/socops/ticket-analytics/internal/service"
	"github.com/socops/ticket-analytics/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.Enabled() {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var responses cache.ResponseCache = cache.Nop{}
	if redis.Enabled() && cfg.Redis.CacheTTL() > 0 {
		responses = cache.NewRedisCache(redis.Client, cfg.Redis.CacheTTL())
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, responses, metrics, logger)
	worker.StartNotificationWorker(notificationService)

	source, err := newSource(cfg, pg, logger)
	if err != nil {
		logger.Fatal("failed to configure dataset source", zap.Error(err))
	}
	snapshot, err := dataset.NewLoader(source, dispatcher, logger).Load(ctx)
	if err != nil {
		logger.Fatal("failed to load datasets", zap.Error(err))
	}

	analyticsService := service.NewAnalyticsService(service.AnalyticsDependencies{
		Snapshot: snapshot,
		Cache:    responses,
		Metrics:  metrics,
		Logger:   logger,
		Reference: analytics.ReferencePeriod{
			Year:  cfg.Analytics.ReferenceYear,
			Month: cfg.Analytics.ReferenceMonth,
		},
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:        cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, snapshot, map[string]handlers.Dependency{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Tickets:   handlers.NewTicketsHandler(analyticsService),
		Reports:   handlers.NewReportsHandler(analyticsService),
		Heartbeat: handlers.NewHeartbeatHandler(analyticsService),
		Aging:     handlers.NewAgingHandler(analyticsService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func newSource(cfg *config.Config, pg *persistence.Postgres, logger *zap.Logger) (dataset.Source, error) {
	if cfg.Data.Source != "postgres" {
		return dataset.NewCSVSource(cfg.Data.Manifest, logger), nil
	}
	if !pg.Enabled() {
		return nil, dataset.ErrNoSources
	}
	pool := pg.PoolHandle()
	return dataset.NewPostgresSource(repository.NewTicketRepository(pool), repository.NewAgingRepository(pool)), nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
