// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "PREPCOACH_"

// Config holds process-wide settings.
type Config struct {
	// DB is the SQLite database path. Empty means the XDG default.
	DB string `env:"DB"`

	// LogMode selects the zap preset: "dev" or "prod".
	LogMode string `env:"LOG_MODE" envDefault:"dev"`

	// User is the local identity used by CLI commands when --user is not set.
	User string `env:"USER" envDefault:"local"`

	HTTPAddr  string        `env:"HTTP_ADDR" envDefault:":8080"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

// LoadDotEnv reads .env from the working directory when one exists.
// Variables already set in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load parses PREPCOACH_* variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ValidateServer checks settings that the HTTP server depends on.
func (c Config) ValidateServer() error {
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("%sJWT_SECRET must be at least 16 characters", EnvPrefix)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("%sJWT_TTL must be positive", EnvPrefix)
	}
	return nil
}
