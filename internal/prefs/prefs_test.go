package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if got := Open("").Load().Theme; got != DefaultTheme {
		t.Fatalf("Theme = %q, want %q", got, DefaultTheme)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "bookshelf")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	store := Open("")
	if got := store.Load().Theme; got != "Slate" {
		t.Fatalf("Theme = %q, want Slate", got)
	}
	if store.Path() != filepath.Join(dir, "prefs.toml") {
		t.Fatalf("Path = %q", store.Path())
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	store := Open(filepath.Join(t.TempDir(), "subdir", "prefs.toml"))

	if err := store.Save(Prefs{Theme: "Kanagawa"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got := store.Load().Theme; got != "Kanagawa" {
		t.Fatalf("Theme = %q, want Kanagawa", got)
	}
}

func TestSetTheme(t *testing.T) {
	store := Open(filepath.Join(t.TempDir(), "prefs.toml"))

	if err := store.SetTheme("Slate"); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}
	if got := store.Load().Theme; got != "Slate" {
		t.Fatalf("Theme = %q, want Slate", got)
	}
}

func TestLoad_BadContentFallsBackToDefault(t *testing.T) {
	for name, body := range map[string]string{
		"empty theme":  "theme = \"  \"\n",
		"invalid toml": "not valid toml {{{\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if got := Open(path).Load().Theme; got != DefaultTheme {
				t.Fatalf("Theme = %q, want %q", got, DefaultTheme)
			}
		})
	}
}

func TestSave_FailsWhenParentIsFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := Open(filepath.Join(blocker, "prefs.toml")).Save(Prefs{Theme: "Slate"}); err == nil {
		t.Fatalf("Save returned nil error, want error")
	}
}
