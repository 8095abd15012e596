// main.go
package main

import (
	"context"
	"log"
	"time"

	"flight-booking/cmd"
	"flight-booking/internal/cache"
	"flight-booking/internal/data/memstore"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/event"
	"flight-booking/internal/usecase"
	"flight-booking/internal/wire"
	"flight-booking/pkg/database"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.Storage.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	// Initialize all repositories
	repos, closeStore := initRepository(config, logger)
	defer closeStore()

	// Optional catalog cache
	var catalog usecase.CatalogCache
	if redisCache := initCache(config.Redis, logger); redisCache != nil {
		defer redisCache.Close()
		catalog = redisCache
	}

	// Domain events
	events := event.NewPublisher(config.Kafka, logger)
	defer func() {
		if err := events.Close(); err != nil {
			logger.Warn("Failed to close event publisher", zap.Error(err))
		}
	}()

	// Wire all dependencies
	app := wire.Wiring(repos, catalog, events, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}

func initRepository(config *utils.Config, logger *zap.Logger) (*repository.Repository, func()) {
	if config.Storage.Driver == "memory" {
		store := memstore.New(logger)
		store.SeedDemo()
		logger.Info("Using in-memory store with demo data")
		return store.Repository(), func() {}
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	return repository.NewRepository(db, logger), db.Close
}

// initCache returns nil when Redis is not configured or unreachable; the
// services then read straight from the store.
func initCache(cfg utils.RedisConfig, logger *zap.Logger) *cache.RedisCache {
	if cfg.Addr == "" {
		return nil
	}

	redisCache := cache.NewRedisCache(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("Redis unavailable, catalog cache disabled", zap.String("addr", cfg.Addr), zap.Error(err))
		_ = redisCache.Close()
		return nil
	}

	logger.Info("Redis connected", zap.String("addr", cfg.Addr))
	return redisCache
}
