package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/bookshelf/internal/apiurl"
)

// Config holds the settings bookshelf needs to reach the books API.
type Config struct {
	APIOrigin   string
	APIBasePath string
	Timeout     time.Duration
	LogFile     string
	LogLevel    string
}

// Overrides carries values given explicitly on the command line. Empty
// fields leave the lower layers in charge.
type Overrides struct {
	APIOrigin   string
	APIBasePath string
	Timeout     time.Duration
	LogFile     string
	LogLevel    string
}

// Options select where configuration is read from.
type Options struct {
	// Path of the TOML file; empty means the default location.
	Path string
	// DotEnv is the .env file consulted after the process environment.
	// Empty means ".env" in the working directory; a missing file is ignored.
	DotEnv    string
	Overrides Overrides
}

// EnvLogLevel overrides the log level.
const EnvLogLevel = "BOOKSHELF_LOG_LEVEL"

const (
	defaultConfigPath = "~/.config/bookshelf/config.toml"
	defaultDotEnv     = ".env"
	defaultAPIOrigin  = "http://localhost:8000"
	defaultLogFile    = "~/.local/state/bookshelf/bookshelf.log"
	defaultLogLevel   = "info"
	defaultTimeout    = 10 * time.Second
)

// Load resolves configuration from, in order of precedence, explicit
// overrides, the environment, a .env file, the TOML file and defaults.
func Load(opts Options) (Config, error) {
	resolved, err := resolvePath(opts.Path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIOrigin: defaultAPIOrigin,
		Timeout:   defaultTimeout,
		LogFile:   defaultLogFile,
		LogLevel:  defaultLogLevel,
	}

	if err := applyFile(&cfg, resolved); err != nil {
		return Config{}, err
	}

	env, err := readEnv(opts.DotEnv)
	if err != nil {
		return Config{}, err
	}
	if v, ok := env(apiurl.EnvOrigin); ok {
		cfg.APIOrigin = v
	}
	if v, ok := env(apiurl.EnvBasePath); ok {
		cfg.APIBasePath = v
	}
	if v, ok := env(EnvLogLevel); ok {
		cfg.LogLevel = v
	}

	applyOverrides(&cfg, opts.Overrides)

	cfg.APIOrigin = strings.TrimSpace(cfg.APIOrigin)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	cfg.LogFile = mustExpand(cfg.LogFile)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIOrigin      string `toml:"api_origin"`
		APIBasePath    string `toml:"api_base_path"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if raw.TimeoutSeconds < 0 {
		return fmt.Errorf("parse config: timeout_seconds must not be negative")
	}

	if v := strings.TrimSpace(raw.APIOrigin); v != "" {
		cfg.APIOrigin = v
	}
	if v := strings.TrimSpace(raw.APIBasePath); v != "" {
		cfg.APIBasePath = v
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// readEnv returns a lookup that prefers the process environment and falls
// back to the .env file.
func readEnv(path string) (func(string) (string, bool), error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultDotEnv
	}
	dotenv, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			dotenv = nil
		} else {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && strings.TrimSpace(v) != ""
	}, nil
}

func applyOverrides(cfg *Config, o Overrides) {
	if v := strings.TrimSpace(o.APIOrigin); v != "" {
		cfg.APIOrigin = v
	}
	if v := strings.TrimSpace(o.APIBasePath); v != "" {
		cfg.APIBasePath = v
	}
	if o.Timeout > 0 {
		cfg.Timeout = o.Timeout
	}
	if v := strings.TrimSpace(o.LogFile); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(o.LogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// URLBuilder returns the endpoint builder for the configured API.
func (c Config) URLBuilder() apiurl.Builder {
	return apiurl.Builder{Origin: c.APIOrigin, BasePath: c.APIBasePath}
}

// LogPath returns the log file, falling back to the default location.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return mustExpand(defaultLogFile)
	}
	return c.LogFile
}

// String renders the effective configuration as TOML.
func (c Config) String() string {
	out, err := toml.Marshal(struct {
		APIOrigin      string `toml:"api_origin"`
		APIBasePath    string `toml:"api_base_path"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
	}{c.APIOrigin, c.APIBasePath, int(c.Timeout / time.Second), c.LogFile, c.LogLevel})
	if err != nil {
		return fmt.Sprintf("api_origin = %q", c.APIOrigin)
	}
	return string(out)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
