package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds process-level settings read from PROJECTOR_* variables.
type Env struct {
	Runs         int    `env:"PROJECTOR_RUNS"`
	Seed         uint64 `env:"PROJECTOR_SEED"`
	Workers      int    `env:"PROJECTOR_WORKERS"`
	LogLevel     string `env:"PROJECTOR_LOG_LEVEL" envDefault:"info"`
	Locale       string `env:"PROJECTOR_LOCALE" envDefault:"de-AT"`
	Currency     string `env:"PROJECTOR_CURRENCY" envDefault:"EUR"`
	OTelEndpoint string `env:"PROJECTOR_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"PROJECTOR_OTEL_ENABLED" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Apply overrides Monte Carlo settings that are set in the environment.
// Runs are clamped again afterwards.
func (e Env) Apply(config *Configuration) {
	if e.Runs != 0 {
		config.MonteCarlo.Runs = e.Runs
	}
	if e.Seed != 0 {
		config.MonteCarlo.Seed = e.Seed
	}
	if e.Workers != 0 {
		config.MonteCarlo.Workers = e.Workers
	}
	Clamp(config)
}

// SlogLevel maps LogLevel (debug, info, warn, error) to a slog.Level.
func (e Env) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(e.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, e.LogLevel)
	}
	return level, nil
}

// TelemetryEnabled reports whether spans should be exported.
func (e Env) TelemetryEnabled() bool {
	return e.OTelEnabled && e.OTelEndpoint != ""
}
