package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/streetlab/storefront-api/internal/api"
	"github.com/streetlab/storefront-api/internal/core/service"
	"github.com/streetlab/storefront-api/internal/infrastructure/config"
	mongodb "github.com/streetlab/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/streetlab/storefront-api/internal/infrastructure/db/redis"
	"github.com/streetlab/storefront-api/internal/infrastructure/queue"
	"github.com/streetlab/storefront-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Storefront API
// @version 1.0
// @description Cart, checkout and analytics backend for the streetlab store.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	eventService := service.NewEventService(mongodb.NewEventRepository(db), log)
	dispatcher := queue.NewDispatcher(0, eventService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting storefront api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates the collection indexes the repositories rely on.
// Index creation is idempotent, so this runs on every startup.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexed := []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		mongodb.NewUserRepository(db),
		mongodb.NewProductRepository(db),
		mongodb.NewCartRepository(db),
		mongodb.NewOrderRepository(db),
		mongodb.NewEventRepository(db),
	}
	for _, repo := range indexed {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
