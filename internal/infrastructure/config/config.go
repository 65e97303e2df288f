package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT       JWTConfig
	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

// JWTConfig holds the dual-token secrets and lifetimes. The secrets have no
// defaults on purpose: a deployment that forgets to provision them must fail
// at startup, not sign tokens with a known value.
type JWTConfig struct {
	AccessSecret  string        `env:"JWT_ACCESS_SECRET"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL,  default=15m"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
}

// RateLimitConfig tunes the login throttle.
type RateLimitConfig struct {
	MaxAttempts int           `env:"LOGIN_RATE_LIMIT,        default=5"`
	Window      time.Duration `env:"LOGIN_RATE_LIMIT_WINDOW, default=1m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ticketing"`
}

type RedisConfig struct {
	// Addr may be left empty; the login limiter then falls back to its
	// process-local in-memory implementation.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the startup-time invariants that cannot be expressed as
// envconfig tags.
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return errors.New("config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.RateLimit.MaxAttempts <= 0 {
		return errors.New("config: LOGIN_RATE_LIMIT must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("config: LOGIN_RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}
