// Package config loads pokebattle settings from defaults, an optional TOML
// file and POKEBATTLE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Duration is a time.Duration that decodes from strings such as "750ms" in
// both TOML and environment variables.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds pokebattle configuration.
type Config struct {
	// Seed for random number generation. 0 means a fresh random seed.
	Seed int64 `toml:"seed" env:"POKEBATTLE_SEED"`

	// Level every combatant battles at.
	Level int `toml:"level" env:"POKEBATTLE_LEVEL"`

	// OpponentDelay is the pause before the opponent acts in interactive play.
	OpponentDelay Duration `toml:"opponent_delay" env:"POKEBATTLE_OPPONENT_DELAY"`

	DatabasePath string `toml:"database_path" env:"POKEBATTLE_DATABASE_PATH"`
	LogPath      string `toml:"log_path" env:"POKEBATTLE_LOG_PATH"`
	LogLevel     string `toml:"log_level" env:"POKEBATTLE_LOG_LEVEL"`
	Telemetry    bool   `toml:"telemetry" env:"POKEBATTLE_TELEMETRY"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Level:         50,
		OpponentDelay: Duration{time.Second},
		DatabasePath:  "pokebattle.db",
		LogPath:       "pokebattle.log",
		LogLevel:      "info",
	}
}

// ErrInvalid wraps validation failures.
var ErrInvalid = errors.New("invalid config")

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty or the file does not exist) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Level < 1 || c.Level > 100 {
		return fmt.Errorf("%w: level %d must be between 1 and 100", ErrInvalid, c.Level)
	}
	if c.OpponentDelay.Duration < 0 {
		return fmt.Errorf("%w: opponent_delay must not be negative", ErrInvalid)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}
