package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/api/http"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/api/http/handlers"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/auth"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/config"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/engine"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/events"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/observability"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/persistence"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/repository"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/service"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var snapshotRepo repository.SnapshotRepository
	if pool := pg.PoolHandle(); pool != nil {
		snapshotRepo = repository.NewSnapshotRepository(pool)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	helpdesk := service.NewHelpdeskService(service.HelpdeskDependencies{
		Engine:       engine.New(engine.Options{UndoDepth: cfg.Engine.UndoDepth}),
		Dispatcher:   dispatcher,
		SnapshotRepo: snapshotRepo,
		Metrics:      metrics,
	})

	if snapshotRepo != nil {
		if err := helpdesk.LoadSnapshot(ctx); err != nil {
			logger.Warn("failed to restore snapshot, starting empty", zap.Error(err))
		}
	}
	if cfg.Engine.SeedSampleData {
		if err := service.SeedSampleData(ctx, helpdesk, logger); err != nil {
			logger.Fatal("failed to seed sample data", zap.Error(err))
		}
	}

	analytics := service.NewAnalyticsService(helpdesk, redis, cfg.Redis, logger)

	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifications.RegisterHandlers()
	worker.StartAnalyticsWorker(ctx, analytics, cfg.Engine.AnalyticsRefresh(), logger)
	if snapshotRepo != nil {
		worker.StartSnapshotWorker(ctx, helpdesk, cfg.Engine.SnapshotInterval(), logger)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(tokens, cfg.Auth, logger)
	authMiddleware := auth.NewMiddleware(tokens)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(helpdesk),
		Dispatch:       handlers.NewDispatchHandler(helpdesk),
		Analytics:      handlers.NewAnalyticsHandler(analytics),
		Admin:          handlers.NewAdminHandler(helpdesk, metrics),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	if err := helpdesk.SaveSnapshot(context.Background()); err != nil {
		logger.Warn("final snapshot save failed", zap.Error(err))
	}
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
