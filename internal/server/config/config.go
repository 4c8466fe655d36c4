// Package config handles server configuration: environment variables first,
// then command-line flag overrides.
package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the storefront server.
//
// Fields:
//   - HTTPAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - RedisAddr: redis address for the product cache; empty disables caching.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the test
//     default in production.
//   - TokenValidityDuration: lifetime of issued tokens (JWT_EXPIRATION_TIME).
//   - ProductCacheTTL: how long cached products stay fresh.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	HTTPAddr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseDSN           string        `env:"DATABASE_DSN"`
	RedisAddr             string        `env:"REDIS_ADDR"`
	SecretKey             string        `env:"JWT_SECRET" envDefault:"secretKey"`
	TokenValidityDuration time.Duration `env:"JWT_EXPIRATION_TIME" envDefault:"1h"`
	ProductCacheTTL       time.Duration `env:"PRODUCT_CACHE_TTL" envDefault:"5m"`
	LogLevel              string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig builds a Config from environment variables and then overlays
// values from command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	parseFlags(cfg)
	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("database dsn is empty: set DATABASE_DSN or -d")
	}
	return cfg, nil
}
