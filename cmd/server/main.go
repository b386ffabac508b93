package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/circa/reservations/internal/config"
	"github.com/circa/reservations/internal/database"
	"github.com/circa/reservations/internal/handler"
	"github.com/circa/reservations/internal/hero"
	"github.com/circa/reservations/internal/logging"
	"github.com/circa/reservations/internal/middleware"
	"github.com/circa/reservations/internal/repository"
	"github.com/circa/reservations/internal/router"
	"github.com/circa/reservations/internal/service"
	"github.com/circa/reservations/internal/web"
)

type store interface {
	handler.ReservationStore
	Ping(ctx context.Context) error
}

func setupConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		// slog is not initialised yet
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupStore opens the configured store and applies its schema. The
// returned func releases the connection.
func setupStore(cfg config.Config) (store, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err := database.MigratePostgres(ctx, pool); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		return repository.NewPGReservationRepo(pool), pool.Close

	case config.DriverMySQL, config.DriverSQLite:
		db, err := openSQL(cfg)
		if err != nil {
			slog.Error("Failed to connect to database", "driver", cfg.StoreDriver, "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(ctx, db, cfg.StoreDriver); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		return repository.NewSQLReservationRepo(db), func() { _ = db.Close() }

	default:
		slog.Warn("Using in-memory store, reservations are lost on restart")
		return repository.NewMemoryReservationRepo(clockwork.NewRealClock()), func() {}
	}
}

func setupPublisher(cfg config.Config) *service.Publisher {
	if !cfg.EventsEnabled {
		return nil
	}
	return service.NewPublisher(cfg.RabbitMQURL, cfg.EventsQueue, slog.Default())
}

func readinessChecks(st store, rdb *redis.Client) []handler.HealthCheck {
	checks := []handler.HealthCheck{{Name: "store", Check: st.Ping}}
	if rdb != nil {
		checks = append(checks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	return checks
}

func main() {
	cfg := setupConfig()

	logger := logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.Env, "port", cfg.Port, "store", cfg.StoreDriver)

	st, closeStore := setupStore(cfg)
	defer closeStore()

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	reservations := handler.NewReservationHandler(st, nil, cache, logger)
	publisher := setupPublisher(cfg)
	if publisher != nil {
		reservations.Events = publisher
		defer func() { _ = publisher.Close() }()
	}

	e := router.NewEcho(logger, cfg.CORSOrigins)
	router.RegisterRoutes(e, readinessChecks(st, rdb)...)
	router.RegisterReservations(e, reservations, cache, limiter)
	router.RegisterHero(e, handler.NewPosterHandler(hero.DefaultConfig()), cache)
	router.RegisterSite(e, web.Site())

	go func() {
		addr := ":" + cfg.Port
		slog.Info("Listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	slog.Info("Shutdown signal received, cleaning up...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	reservations.Wait()
	slog.Info("Shutdown complete")
}
