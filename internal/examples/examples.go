// Package examples embeds ready-to-run scenario and Lua files that walk
// through the dispatcher's behavior, and installs them into a directory for
// editing and replay.
package examples

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

//go:embed all:files
var exampleFS embed.FS

// List returns the embedded example file names, sorted.
func List() ([]string, error) {
	entries, err := fs.ReadDir(exampleFS, "files")
	if err != nil {
		return nil, fmt.Errorf("read embedded examples: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the contents of one embedded example.
func Read(name string) ([]byte, error) {
	data, err := exampleFS.ReadFile(path.Join("files", name))
	if err != nil {
		return nil, fmt.Errorf("read embedded example %s: %w", name, err)
	}
	return data, nil
}

// Install writes the embedded examples into dir, creating it if needed.
// Existing files with the same names are overwritten; anything else in the
// directory is left alone.
func Install(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create examples dir: %w", err)
	}

	names, err := List()
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := Read(name)
		if err != nil {
			return err
		}
		dest := filepath.Join(dir, name)
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return fmt.Errorf("write example %s: %w", dest, err)
		}
	}
	return nil
}
