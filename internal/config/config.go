package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/feedmap.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`
	// RedisURL enables the event mirror and the redis health check.
	RedisURL string `env:"REDIS_URL"`
	SeedDemo bool   `env:"SEED_DEMO" envDefault:"true"`

	SnapDuration       time.Duration `env:"SNAP_DURATION" envDefault:"600ms"`
	WheelIdle          time.Duration `env:"WHEEL_IDLE" envDefault:"100ms"`
	WheelCooldown      time.Duration `env:"WHEEL_COOLDOWN" envDefault:"700ms"`
	CenterLngOffset    float64       `env:"CENTER_LNG_OFFSET" envDefault:"0"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
}

// Load reads the environment. Variables from a .env file in the working
// directory are applied first without overriding ones already set.
func Load() (*Config, error) {
	return LoadFiles(".env")
}

func LoadFiles(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.SessionIdleTimeout <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive, got %s", cfg.SessionIdleTimeout)
	}
	return &cfg, nil
}
