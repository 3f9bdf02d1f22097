// Package paths provides a single source of truth for slotcast file paths.
// All helpers honor the SLOTCAST_DIR override so tests and scripted runs can
// point the tool at an isolated directory.
//
// Path resolution precedence:
//  1. SLOTCAST_DIR env var sets the base directory (config and logs derive
//     from it)
//  2. Default behavior (~/.slotcast, ~/.config/slotcast) when unset
package paths

import (
	"os"
	"path/filepath"
)

// EnvDir is the base directory override (e.g., /tmp/slotcast-e2e).
const EnvDir = "SLOTCAST_DIR"

// BaseDir returns the slotcast base directory (~/.slotcast by default).
// Honors the SLOTCAST_DIR environment variable.
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".slotcast"), nil
}

// ConfigDir returns the config directory (~/.config/slotcast by default).
// When SLOTCAST_DIR is set, returns SLOTCAST_DIR/config instead.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return filepath.Join(dir, "config"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "slotcast"), nil
}

// ConfigPath returns the path to the global config file
// (~/.config/slotcast/config.toml by default, or
// SLOTCAST_DIR/config/config.toml).
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
