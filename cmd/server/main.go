package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/heritage-feed/backend/internal/cache"
	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/repositories"
	"github.com/anonto42/heritage-feed/backend/internal/router"
	"github.com/anonto42/heritage-feed/backend/pkg/config"
	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := logger.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Log)
	log := logger.L()

	// Initialize database connections
	ctx := context.Background()
	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.CloseDB()

	if err := models.AutoMigrate(db.SQL); err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate models")
	}
	log.Info().Msg("auto-migrations completed")

	deps := router.Dependencies{
		Store:      repositories.NewStore(db.SQL),
		Counts:     cache.NoopCounterCache{},
		Activities: repositories.NoopActivityRepository{},
		RateLimit:  cfg.RateLimit,
		Logger:     log,
	}
	if db.Redis != nil {
		deps.Counts = cache.NewRedisCounterCache(db.Redis, cache.DefaultTTL)
	}
	if db.Mongo != nil {
		activities := repositories.NewMongoActivityRepository(db.Mongo.Database(cfg.Mongo.Database))
		if err := activities.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to create activity indexes")
		}
		deps.Activities = activities
	}

	e := router.New(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}
