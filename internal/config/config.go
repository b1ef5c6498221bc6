// Package config loads runtime settings from HOMEBOOK_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process-wide settings. Command-line flags override it.
type Config struct {
	// DBPath overrides the default XDG database location.
	DBPath string `env:"HOMEBOOK_DB"`

	LogMode string `env:"HOMEBOOK_LOG_MODE" envDefault:"dev"`

	// LogFile receives logs. The arena TUI always logs to a file since
	// stdout belongs to the terminal.
	LogFile string `env:"HOMEBOOK_LOG_FILE"`

	// PoolDir holds YAML content pools loaded as extra games.
	PoolDir string `env:"HOMEBOOK_POOL_DIR"`

	Rounds         int           `env:"HOMEBOOK_ROUNDS" envDefault:"10"`
	CountdownTicks int           `env:"HOMEBOOK_COUNTDOWN_TICKS" envDefault:"3"`
	FastThreshold  time.Duration `env:"HOMEBOOK_FAST_THRESHOLD" envDefault:"3s"`

	// Seed fixes the random source; zero seeds from the runtime.
	Seed uint64 `env:"HOMEBOOK_SEED" envDefault:"0"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no session can run with.
func (c Config) Validate() error {
	switch {
	case c.Rounds < 0:
		return fmt.Errorf("HOMEBOOK_ROUNDS must be >= 0, got %d", c.Rounds)
	case c.CountdownTicks < 0:
		return fmt.Errorf("HOMEBOOK_COUNTDOWN_TICKS must be >= 0, got %d", c.CountdownTicks)
	case c.FastThreshold <= 0:
		return fmt.Errorf("HOMEBOOK_FAST_THRESHOLD must be positive, got %s", c.FastThreshold)
	}
	return nil
}
