// Package config provides configuration loading and validation for
// slotcast.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/slotcast/slotcast/internal/paths"
)

// Config represents the slotcast configuration file.
type Config struct {
	// Log controls diagnostic logging.
	Log LogConfig `toml:"log"`

	// Playground configures the interactive playground.
	Playground PlaygroundConfig `toml:"playground"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error". Empty means "info".
	Level string `toml:"level"`

	// Path overrides the default log file location.
	Path string `toml:"path"`
}

// PlaygroundConfig configures the interactive playground.
type PlaygroundConfig struct {
	// Slots is the slot count the playground emitter is created with.
	Slots int `toml:"slots"`

	// History caps how many transcript lines the playground keeps.
	History int `toml:"history"`
}

// Defaults applied when the config file is absent or a field is unset.
const (
	DefaultSlots   = 8
	DefaultHistory = 500
)

// Validation errors.
var (
	ErrInvalidLevel   = errors.New("log level must be debug, info, warn or error")
	ErrInvalidSlots   = errors.New("playground slots must be positive")
	ErrInvalidHistory = errors.New("playground history cannot be negative")
)

// Load loads the config from the default path (honoring SLOTCAST_DIR).
// Returns nil config and nil error if the file doesn't exist; getters on a
// nil Config return defaults.
func Load() (*Config, error) {
	path, err := paths.ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads the config from a specific path.
// Returns nil config and nil error if the file doesn't exist.
func LoadFromPath(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks field ranges. Unset fields are fine; they fall back to
// defaults at read time.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return ErrInvalidLevel
	}
	if c.Playground.Slots < 0 {
		return ErrInvalidSlots
	}
	if c.Playground.History < 0 {
		return ErrInvalidHistory
	}
	return nil
}

// LogLevel returns the configured log level string, or "info".
func (c *Config) LogLevel() string {
	if c != nil && c.Log.Level != "" {
		return c.Log.Level
	}
	return "info"
}

// LogPath returns the configured log file path, or empty for the default
// location.
func (c *Config) LogPath() string {
	if c == nil {
		return ""
	}
	return c.Log.Path
}

// Slots returns the configured playground slot count or DefaultSlots.
func (c *Config) Slots() int {
	if c != nil && c.Playground.Slots > 0 {
		return c.Playground.Slots
	}
	return DefaultSlots
}

// History returns the configured transcript cap or DefaultHistory.
func (c *Config) History() int {
	if c != nil && c.Playground.History > 0 {
		return c.Playground.History
	}
	return DefaultHistory
}
