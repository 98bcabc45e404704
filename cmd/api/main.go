package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/vk-smartminds/practice-platform/internal/app"
	"github.com/vk-smartminds/practice-platform/internal/config"
	"github.com/vk-smartminds/practice-platform/internal/database"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "practice-api").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.IsDevelopment() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := database.ConnectRedis(startupCtx, cfg.RedisURL)
	cancel()
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, enrollment stats will not be cached")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	server := app.New(app.Options{Config: cfg, DB: db, Redis: redisClient, Logger: logger})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Str("env", cfg.AppEnv).Msg("server listening")
		if err := server.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(server, logger)
}

func waitForShutdown(server *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
