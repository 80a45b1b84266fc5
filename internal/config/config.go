// Package config reads the randomizer settings from the environment.
// Command-line flags override these values.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	StructureDir      string `env:"LMR_STRUCTURE_DIR" envDefault:"data/structure"`
	DataDir           string `env:"LMR_DATA_DIR"`
	Seed              string `env:"LMR_SEED"`
	Threads           int    `env:"LMR_THREADS"`
	MaxAttempts       int    `env:"LMR_MAX_ATTEMPTS" envDefault:"10000"`
	EasyMode          bool   `env:"LMR_EASY_MODE"`
	ShuffleSecretRoms bool   `env:"LMR_SHUFFLE_SECRET_ROMS"`
	NeedGlitches      bool   `env:"LMR_NEED_GLITCHES"`
	NoArchive         bool   `env:"LMR_NO_ARCHIVE"`
	LogLevel          string `env:"LMR_LOG_LEVEL" envDefault:"info"`
	OTelEndpoint      string `env:"LMR_OTEL_ENDPOINT"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog.Level, falling back to info.
func (c Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
}
