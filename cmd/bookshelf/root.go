package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/bookshelf/internal/app"
	"github.com/five82/bookshelf/internal/config"
)

type globalFlags struct {
	configPath  string
	prefsPath   string
	envFile     string
	apiOrigin   string
	apiBasePath string
	timeout     time.Duration
	logLevel    string
	noColor     bool
}

func (g *globalFlags) options(cmd *cobra.Command) app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		DotEnv:     g.envFile,
		NoColor:    g.noColor || !isTerminal(cmd.ErrOrStderr()),
		LogWriter:  cmd.ErrOrStderr(),
		Overrides: config.Overrides{
			APIOrigin:   g.apiOrigin,
			APIBasePath: g.apiBasePath,
			Timeout:     g.timeout,
			LogLevel:    g.logLevel,
		},
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Manage books and authors from the terminal",
		Long:          "bookshelf browses, creates, edits and deletes books held by a books API.\nWith no subcommand it starts the interactive UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/bookshelf/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/bookshelf/prefs.toml)")
	pf.StringVar(&flags.envFile, "env-file", "", "dotenv file consulted after the environment (default ./.env)")
	pf.StringVar(&flags.apiOrigin, "api-origin", "", "books API origin, e.g. http://localhost:8000")
	pf.StringVar(&flags.apiBasePath, "api-base-path", "", "books API base path (default /api)")
	pf.DurationVar(&flags.timeout, "timeout", 0, "per-request timeout (default 10s)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newTUICmd(flags),
		newListCmd(flags),
		newAuthorsCmd(flags),
		newSaveCmd(flags),
		newDeleteCmd(flags),
		newStatusCmd(flags),
		newLogsCmd(flags),
		newConfigCmd(flags),
	)
	return root
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}
}

func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	opts := flags.options(cmd)
	opts.LogWriter = nil
	return app.Run(cmd.Context(), opts)
}

func withEnv(cmd *cobra.Command, flags *globalFlags, fn func(*app.Env) error) error {
	env, err := app.Setup(flags.options(cmd), app.LogToStderr)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}
