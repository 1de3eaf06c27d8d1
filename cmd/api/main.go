package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/resort-admin-service/internal/api/http"
	"github.com/spec-kit/resort-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/resort-admin-service/internal/auth"
	"github.com/spec-kit/resort-admin-service/internal/config"
	"github.com/spec-kit/resort-admin-service/internal/events"
	"github.com/spec-kit/resort-admin-service/internal/observability"
	"github.com/spec-kit/resort-admin-service/internal/persistence"
	"github.com/spec-kit/resort-admin-service/internal/repository"
	"github.com/spec-kit/resort-admin-service/internal/service"
	"github.com/spec-kit/resort-admin-service/internal/storage"
	"github.com/spec-kit/resort-admin-service/internal/worker"
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

	pool := pg.PoolHandle()
	principalRepo := repository.NewPrincipalRepository(pool)
	profileRepo := repository.NewStaffProfileRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)

	sessions := auth.NewSessionStore(redis.Client, cfg.Session)
	storageClient := storage.NewClient(cfg.Storage)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		PrincipalRepo: principalRepo,
		ProfileRepo:   profileRepo,
		Sessions:      sessions,
	})
	accountService := service.NewAccountService(principalRepo, sessions, dispatcher, logger)
	staffService := service.NewStaffService(principalRepo, profileRepo, dispatcher, cfg.Auth.BcryptCost)
	reservationService := service.NewReservationService(reservationRepo, dispatcher)
	roomService := service.NewRoomService(roomRepo, storageClient, cfg.Storage.Bucket, dispatcher, logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), sessions, principalRepo, profileRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, sessions),
		Admins:         handlers.NewAdminsHandler(accountService, staffService),
		Staff:          handlers.NewStaffHandler(accountService, staffService),
		Reservations:   handlers.NewReservationsHandler(reservationService),
		Rooms:          handlers.NewRoomsHandler(roomService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
