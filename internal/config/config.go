package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type AppConfig struct {
	// OrdersCSVPath points at the immutable order log.
	OrdersCSVPath string

	// WeatherTimeout bounds the single outbound call to the weather source.
	WeatherTimeout time.Duration

	LogLevel  string
	LogFormat string // console or json

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Err(err).Msg("no .env file found")
	}
	cfg := &AppConfig{}

	cfg.OrdersCSVPath = getenvDefault("ORDERS_CSV_PATH", "zomato_orders_2025.csv")

	timeoutStr := getenvDefault("WEATHER_HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_HTTP_TIMEOUT: %w", err)
	}
	cfg.WeatherTimeout = timeout

	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "console")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
