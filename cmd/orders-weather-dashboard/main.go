package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpapi "github.com/i474232898/orders-weather-dashboard/internal/api/http"
	"github.com/i474232898/orders-weather-dashboard/internal/config"
	"github.com/i474232898/orders-weather-dashboard/internal/dashboard"
	"github.com/i474232898/orders-weather-dashboard/internal/orders"
	"github.com/i474232898/orders-weather-dashboard/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogging(cfg)

	// Shared HTTP client for the outbound weather call; the timeout is the
	// single bounded attempt the pipeline makes.
	httpClient := &http.Client{
		Timeout: cfg.WeatherTimeout,
	}

	// Read-only order log, re-read on every run.
	source := orders.NewFileSource(cfg.OrdersCSVPath)

	// Historical weather via the Open-Meteo archive API.
	provider := providers.NewOpenMeteoArchive(httpClient)

	// Core service running the aggregate → fetch → align → summarize pipeline.
	service := dashboard.NewService(source, provider, time.Now)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "orders-weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "orders-weather-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("fiber server stopped")
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
}

func setupLogging(cfg *config.AppConfig) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
