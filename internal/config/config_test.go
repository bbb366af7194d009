package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/bookshelf/internal/apiurl"
)

// isolate points HOME at a temp dir and clears bookshelf variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(apiurl.EnvOrigin, "")
	t.Setenv(apiurl.EnvBasePath, "")
	t.Setenv(EnvLogLevel, "")
	return home
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func emptyDotEnv(t *testing.T) string {
	return writeFile(t, ".env", "")
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(Options{Path: filepath.Join(home, "does-not-exist.toml"), DotEnv: emptyDotEnv(t)})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIOrigin != defaultAPIOrigin {
		t.Fatalf("APIOrigin = %q, want %q", cfg.APIOrigin, defaultAPIOrigin)
	}
	if cfg.APIBasePath != "" {
		t.Fatalf("APIBasePath = %q, want empty", cfg.APIBasePath)
	}
	if cfg.Timeout != defaultTimeout {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, defaultTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if got := cfg.URLBuilder().Base(); got != "http://localhost:8000/api" {
		t.Fatalf("URLBuilder().Base() = %q", got)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := isolate(t)

	path := writeFile(t, "config.toml", `
api_origin = "  https://books.example.com/  "
api_base_path = " /v2/ "
timeout_seconds = 3
log_file = "  ~/logs/books.log  "
log_level = " DEBUG "
`)

	cfg, err := Load(Options{Path: path, DotEnv: emptyDotEnv(t)})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIOrigin != "https://books.example.com/" {
		t.Fatalf("APIOrigin = %q", cfg.APIOrigin)
	}
	if got := cfg.URLBuilder().Resolve("/books/"); got != "https://books.example.com/v2/books/" {
		t.Fatalf("Resolve = %q", got)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %v, want 3s", cfg.Timeout)
	}
	if cfg.LogFile != filepath.Join(home, "logs/books.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	isolate(t)

	path := writeFile(t, "config.toml", `
api_origin = "   "
log_file = ""
timeout_seconds = 0
`)

	cfg, err := Load(Options{Path: path, DotEnv: emptyDotEnv(t)})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIOrigin != defaultAPIOrigin {
		t.Fatalf("APIOrigin = %q, want %q", cfg.APIOrigin, defaultAPIOrigin)
	}
	if cfg.Timeout != defaultTimeout {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, defaultTimeout)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	isolate(t)
	path := writeFile(t, "config.toml", `api_origin = [`)
	_, err := Load(Options{Path: path, DotEnv: emptyDotEnv(t)})
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_NegativeTimeoutFails(t *testing.T) {
	isolate(t)
	path := writeFile(t, "config.toml", `timeout_seconds = -1`)
	if _, err := Load(Options{Path: path, DotEnv: emptyDotEnv(t)}); err == nil {
		t.Fatalf("Load returned nil error, want error")
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	path := writeFile(t, "config.toml", `
api_origin = "http://from-toml"
api_base_path = "/toml"
log_level = "warn"
`)
	dotenv := writeFile(t, ".env", "BOOKSHELF_API_ORIGIN=http://from-dotenv\nBOOKSHELF_API_BASE_PATH=/dotenv\n")

	cfg, err := Load(Options{Path: path, DotEnv: dotenv})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIOrigin != "http://from-dotenv" || cfg.APIBasePath != "/dotenv" {
		t.Fatalf(".env should beat TOML, got %q %q", cfg.APIOrigin, cfg.APIBasePath)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn from TOML", cfg.LogLevel)
	}

	t.Setenv(apiurl.EnvOrigin, "http://from-env")
	t.Setenv(EnvLogLevel, "error")
	cfg, err = Load(Options{Path: path, DotEnv: dotenv})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIOrigin != "http://from-env" {
		t.Fatalf("environment should beat .env, got %q", cfg.APIOrigin)
	}
	if cfg.APIBasePath != "/dotenv" {
		t.Fatalf("APIBasePath = %q, want /dotenv", cfg.APIBasePath)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("LogLevel = %q, want error", cfg.LogLevel)
	}

	cfg, err = Load(Options{Path: path, DotEnv: dotenv, Overrides: Overrides{
		APIOrigin: "http://from-flag",
		Timeout:   time.Second,
		LogLevel:  "debug",
	}})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIOrigin != "http://from-flag" || cfg.LogLevel != "debug" || cfg.Timeout != time.Second {
		t.Fatalf("flags should win, got %+v", cfg)
	}
}

func TestLoad_ExplicitDotEnvMustExist(t *testing.T) {
	home := isolate(t)
	_, err := Load(Options{Path: filepath.Join(home, "none.toml"), DotEnv: filepath.Join(home, "missing.env")})
	if err == nil {
		t.Fatalf("Load returned nil error, want error for missing .env")
	}
}

func TestString_RendersTOML(t *testing.T) {
	cfg := Config{APIOrigin: "http://x", APIBasePath: "/api", Timeout: 4 * time.Second, LogLevel: "info"}
	out := cfg.String()
	for _, want := range []string{"api_origin", "http://x", "timeout_seconds = 4", "log_level"} {
		if !strings.Contains(out, want) {
			t.Fatalf("String() = %q, want it to contain %q", out, want)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestLogPath_DefaultsWhenEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.LogPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/bookshelf.log")) {
		t.Fatalf("LogPath = %q, want it to end with /bookshelf.log", got)
	}
}
