// Package prefs persists bookshelf user preferences in
// ~/.config/bookshelf/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds choices made inside the TUI that should survive a restart.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/bookshelf/prefs.toml"
	// DefaultTheme is used until the user picks another one.
	DefaultTheme = "Nightfox"
)

// Store reads and writes one preferences file.
type Store struct {
	path string
}

// Open returns a store for path; empty means the default location.
func Open(path string) Store {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return Store{path: path}
}

// Path returns the expanded file location.
func (s Store) Path() string {
	resolved, err := expandPath(s.path)
	if err != nil {
		return s.path
	}
	return resolved
}

// Load returns the stored preferences. Any problem reading the file yields
// defaults; preferences are never worth refusing to start over.
func (s Store) Load() Prefs {
	prefs := Prefs{Theme: DefaultTheme}

	resolved, err := expandPath(s.path)
	if err != nil {
		return prefs
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return prefs
	}
	var stored Prefs
	if err := toml.Unmarshal(data, &stored); err != nil {
		return prefs
	}
	if theme := strings.TrimSpace(stored.Theme); theme != "" {
		prefs.Theme = theme
	}
	return prefs
}

// Save writes p, creating parent directories as needed.
func (s Store) Save(p Prefs) error {
	resolved, err := expandPath(s.path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// SetTheme loads, updates and saves the theme in one step.
func (s Store) SetTheme(name string) error {
	p := s.Load()
	p.Theme = name
	return s.Save(p)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
