package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"8080"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	DatabaseURL    string `env:"DATABASE_URL,required" validate:"required"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START"      envDefault:"false"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret       string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL"    envDefault:"15m"  validate:"min=1m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL"   envDefault:"168h" validate:"gtfield=AccessTokenTTL"`

	AuthRateLimitPerMinute int `env:"AUTH_RATE_LIMIT_PER_MINUTE" envDefault:"10" validate:"min=1,max=10000"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`

	ArchiveCron   string        `env:"ARCHIVE_CRON"    envDefault:"0 3 * * *" validate:"required"`
	ListingMaxAge time.Duration `env:"LISTING_MAX_AGE" envDefault:"2160h"     validate:"min=1h"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
