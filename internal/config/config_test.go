package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFromPath(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
[log]
level = "debug"
path = "/tmp/slotcast-test.log"

[playground]
slots = 16
history = 100
`)
		cfg, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("LoadFromPath() error = %v", err)
		}
		if cfg == nil {
			t.Fatal("expected config, got nil")
		}
		if got := cfg.LogLevel(); got != "debug" {
			t.Errorf("LogLevel() = %q, want %q", got, "debug")
		}
		if got := cfg.LogPath(); got != "/tmp/slotcast-test.log" {
			t.Errorf("LogPath() = %q, want %q", got, "/tmp/slotcast-test.log")
		}
		if got := cfg.Slots(); got != 16 {
			t.Errorf("Slots() = %d, want 16", got)
		}
		if got := cfg.History(); got != 100 {
			t.Errorf("History() = %d, want 100", got)
		}
	})

	t.Run("missing file returns nil config", func(t *testing.T) {
		cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("LoadFromPath() error = %v", err)
		}
		if cfg != nil {
			t.Errorf("expected nil config, got %+v", cfg)
		}
	})

	t.Run("malformed file returns error", func(t *testing.T) {
		path := writeConfig(t, "[log\nlevel =")
		if _, err := LoadFromPath(path); err == nil {
			t.Error("expected parse error, got nil")
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		path := writeConfig(t, `
[log]
level = "loud"
`)
		_, err := LoadFromPath(path)
		if !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("expected ErrInvalidLevel, got %v", err)
		}
	})

	t.Run("negative slots", func(t *testing.T) {
		path := writeConfig(t, `
[playground]
slots = -1
`)
		_, err := LoadFromPath(path)
		if !errors.Is(err, ErrInvalidSlots) {
			t.Errorf("expected ErrInvalidSlots, got %v", err)
		}
	})

	t.Run("negative history", func(t *testing.T) {
		path := writeConfig(t, `
[playground]
history = -5
`)
		_, err := LoadFromPath(path)
		if !errors.Is(err, ErrInvalidHistory) {
			t.Errorf("expected ErrInvalidHistory, got %v", err)
		}
	})
}

func TestNilConfigDefaults(t *testing.T) {
	var cfg *Config

	if got := cfg.LogLevel(); got != "info" {
		t.Errorf("LogLevel() = %q, want %q", got, "info")
	}
	if got := cfg.LogPath(); got != "" {
		t.Errorf("LogPath() = %q, want empty", got)
	}
	if got := cfg.Slots(); got != DefaultSlots {
		t.Errorf("Slots() = %d, want %d", got, DefaultSlots)
	}
	if got := cfg.History(); got != DefaultHistory {
		t.Errorf("History() = %d, want %d", got, DefaultHistory)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on nil = %v, want nil", err)
	}
}

func TestZeroFieldsUseDefaults(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "warn"
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if got := cfg.Slots(); got != DefaultSlots {
		t.Errorf("Slots() = %d, want default %d", got, DefaultSlots)
	}
	if got := cfg.History(); got != DefaultHistory {
		t.Errorf("History() = %d, want default %d", got, DefaultHistory)
	}
}
