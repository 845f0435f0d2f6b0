// Package config содержит логику чтения конфигурации BFF панели бронирований.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultRunAddress = "localhost:8080"

// Config содержит параметры конфигурации BFF.
type Config struct {
	RunAddress     string `env:"RUN_ADDRESS"`
	BookingAPIURL  string `env:"BOOKING_API_URL"`
	BookingAPIKey  string `env:"BOOKING_API_KEY"`
	DatabaseURI    string `env:"DATABASE_URI"`
	SessionSecret  string `env:"SESSION_SECRET"`
	SecureCookie   bool   `env:"SECURE_COOKIE"`
	GoongAPIKey    string `env:"GOONG_API_KEY"`
	GoongBaseURL   string `env:"GOONG_BASE_URL" envDefault:"https://rsapi.goong.io"`
	SessionCleanup string `env:"SESSION_CLEANUP" envDefault:"@every 1h"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	SessionMaxAge  time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`
}

// Parse считывает конфигурацию из файла .env, флагов командной строки и
// переменных окружения. Переменные окружения важнее флагов.
func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envAPIURL := cfg.BookingAPIURL
	envAPIKey := cfg.BookingAPIKey
	envDatabaseURI := cfg.DatabaseURI
	envSessionSecret := cfg.SessionSecret

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.BookingAPIURL, "b", "", "booking API base URL")
	flag.StringVar(&cfg.BookingAPIKey, "k", "", "booking API key")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI for persisted sessions")
	flag.StringVar(&cfg.SessionSecret, "s", "", "session cookie signing secret")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envAPIURL != "" {
		cfg.BookingAPIURL = envAPIURL
	}
	if envAPIKey != "" {
		cfg.BookingAPIKey = envAPIKey
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envSessionSecret != "" {
		cfg.SessionSecret = envSessionSecret
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}

	return cfg, nil
}
