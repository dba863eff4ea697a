package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/streampass/video-platform/internal/api"
	"github.com/streampass/video-platform/internal/core/service"
	"github.com/streampass/video-platform/internal/infrastructure/config"
	mongodb "github.com/streampass/video-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/streampass/video-platform/internal/infrastructure/db/redis"
	"github.com/streampass/video-platform/internal/infrastructure/queue"
	"github.com/streampass/video-platform/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	videoRepo := mongodb.NewVideoRepository(db)
	unlockRepo := mongodb.NewUnlockRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	historyRepo := mongodb.NewHistoryRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":         userRepo.EnsureIndexes,
		"videos":        videoRepo.EnsureIndexes,
		"unlocks":       unlockRepo.EnsureIndexes,
		"comments":      commentRepo.EnsureIndexes,
		"watch_history": historyRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Services ---
	unlockSvc := service.NewUnlockService(userRepo, videoRepo, unlockRepo, log)
	catalogSvc := service.NewCatalogService(userRepo, videoRepo, unlockRepo, commentRepo, historyRepo, unlockSvc, log)
	authSvc := service.NewAuthService(userRepo, videoRepo, unlockRepo, commentRepo, historyRepo, cfg.JWTSecret, 24*time.Hour, cfg.StartingCoins, log)
	telemetrySvc := service.NewTelemetryService(videoRepo, historyRepo, redisdb.NewViewDeduper(rdb), log)
	commentSvc := service.NewCommentService(videoRepo, commentRepo, log)

	// --- Telemetry dispatcher ---
	dispatcher := queue.NewDispatcher(cfg.TelemetryWorkers, telemetrySvc, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Auth:      authSvc,
		Catalog:   catalogSvc,
		Unlocks:   unlockSvc,
		Telemetry: telemetrySvc,
		Comments:  commentSvc,
		Views:     dispatcher,
		Mongo:     db,
		Redis:     rdb,
		Logger:    log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
