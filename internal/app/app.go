package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/five82/bookshelf/internal/booksapi"
	"github.com/five82/bookshelf/internal/config"
	"github.com/five82/bookshelf/internal/logging"
	"github.com/five82/bookshelf/internal/prefs"
	"github.com/five82/bookshelf/internal/state"
	"github.com/five82/bookshelf/internal/ui"
)

// Options configure the bookshelf application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/bookshelf/prefs.toml
	DotEnv     string // empty uses ./.env when present
	Overrides  config.Overrides
	NoColor    bool
	// LogWriter receives console logs for LogToStderr; nil means os.Stderr.
	LogWriter io.Writer
}

// LogTarget picks where Setup sends logs.
type LogTarget int

const (
	// LogToFile writes JSON lines to the configured log file.
	LogToFile LogTarget = iota
	// LogToStderr writes console output to stderr.
	LogToStderr
)

// Env is everything a command needs to talk to the books API.
type Env struct {
	Config config.Config
	Logger zerolog.Logger
	Client *booksapi.Client

	closer io.Closer
}

// Setup loads configuration, opens the logger and builds the API client.
// Callers must Close the returned Env.
func Setup(opts Options, target LogTarget) (*Env, error) {
	cfg, err := config.Load(config.Options{
		Path:      opts.ConfigPath,
		DotEnv:    opts.DotEnv,
		Overrides: opts.Overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logOpts := logging.Options{Level: cfg.LogLevel, NoColor: opts.NoColor}
	if target == LogToFile {
		logOpts.File = cfg.LogPath()
	} else {
		logOpts.Writer = opts.LogWriter
		if logOpts.Writer == nil {
			logOpts.Writer = os.Stderr
		}
	}
	logger, closer, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := booksapi.NewClient(cfg.URLBuilder(), booksapi.Options{
		Timeout: cfg.Timeout,
		Logger:  &logger,
	})
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init books client: %w", err)
	}

	return &Env{Config: cfg, Logger: logger, Client: client, closer: closer}, nil
}

// Close releases the log file, if any.
func (e *Env) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Run boots the bookshelf TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts, LogToFile)
	if err != nil {
		return err
	}
	defer env.Close()

	store := prefs.Open(opts.PrefsPath)
	userPrefs := store.Load()

	env.Logger.Info().
		Str("api", env.Client.BaseURL()).
		Str("theme", userPrefs.Theme).
		Msg("starting tui")

	ctrl := state.NewController(env.Client, env.Client, state.Options{
		Context: ctx,
		Timeout: env.Config.Timeout,
		Logger:  &env.Logger,
	})

	err = ui.Run(ui.Options{
		Context:    ctx,
		Controller: ctrl,
		ThemeName:  userPrefs.Theme,
		Prefs:      &store,
		Logger:     &env.Logger,
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run tui: %w", err)
	}
	env.Logger.Info().Msg("tui stopped")
	return nil
}
