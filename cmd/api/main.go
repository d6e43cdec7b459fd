package main

// @title What's On API
// @version 1.0.0
// @description Агрегация событий и площадок выбранного города. Каталог загружается из внешнего сервиса,
// @description фильтруется по типу, дате и возрасту; площадки можно блокировать, предпочтения сохраняются.

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/whats-on/docs"
	"github.com/whats-on/internal/config"
	httpDelivery "github.com/whats-on/internal/delivery/http"
	"github.com/whats-on/internal/delivery/http/handler"
	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/domain/repository"
	"github.com/whats-on/internal/infrastructure/catalog"
	"github.com/whats-on/internal/pkg/logger"
	"github.com/whats-on/internal/repository/cache"
	"github.com/whats-on/internal/repository/memory"
	"github.com/whats-on/internal/repository/postgres"
	"github.com/whats-on/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting What's On")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("catalog", cfg.Catalog.BaseURL),
		zap.String("preferences_backend", cfg.Preferences.Backend),
	)

	display := cfg.DisplayLocation()

	// 3. Preference store
	prefsRepo, closePrefs, err := newPreferenceRepository(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize preference store", zap.Error(err))
	}

	// 4. Catalog client and use case
	catalogRepo := catalog.NewCatalogClient(&cfg.Catalog, display, log)

	feedUC := usecase.NewFeedUseCase(
		catalogRepo,
		prefsRepo,
		usecase.NewCatalogCache(),
		usecase.FilterOptions{
			Location:     display,
			DateMatch:    cfg.Filter.DateMatch,
			BlockedVenue: cfg.Filter.BlockedVenueMode,
		},
		log,
	)

	log.Info("Use cases initialized")

	// 5. Initial location; failure leaves the feed in error state until retried
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.RequestTimeout+5*time.Second)
	if err := feedUC.SelectLocation(ctx, domain.Location(cfg.Server.DefaultLocation)); err != nil {
		log.Warn("Initial catalog load failed",
			zap.String("location", cfg.Server.DefaultLocation),
			zap.Error(err))
	}
	cancel()

	// 6. Initialize HTTP Handlers
	locationHandler := handler.NewLocationHandler(feedUC, log)
	feedHandler := handler.NewFeedHandler(feedUC, display, log)
	venueHandler := handler.NewVenueHandler(feedUC, log)

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, locationHandler, feedHandler, venueHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	closePrefs()

	log.Info("Server stopped successfully")
}

// newPreferenceRepository подключает выбранный бэкенд хранилища предпочтений.
// Возвращаемая функция закрывает соединение.
func newPreferenceRepository(cfg *config.Config, log *zap.Logger) (repository.PreferenceRepository, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch cfg.Preferences.Backend {
	case config.PreferencesBackendRedis:
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		if err := redisClient.Health(ctx); err != nil {
			_ = redisClient.Close()
			return nil, nil, fmt.Errorf("redis health check %s: %w", cfg.GetRedisAddr(), err)
		}

		return cache.NewPreferenceRepository(redisClient, cfg.Preferences.Key), func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis", zap.Error(err))
			}
		}, nil

	case config.PreferencesBackendPostgres:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}

		return postgres.NewPreferenceRepository(db, cfg.Preferences.Key), func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL", zap.Error(err))
			}
		}, nil

	default:
		log.Warn("Using in-memory preference store, preferences are lost on restart")
		return memory.NewPreferenceRepository(nil), func() {}, nil
	}
}
