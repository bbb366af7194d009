package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/bookshelf/internal/config"
	"github.com/five82/bookshelf/internal/logging"
	"github.com/five82/bookshelf/internal/logtail"
)

func newLogsCmd(flags *globalFlags) *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the UI log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			entries, err := logtail.Read(cfg.LogPath(), lines)
			if err != nil {
				return err
			}
			if level != "" {
				entries = logtail.Filter(entries, logging.ParseLevel(level))
			}
			if len(entries) == 0 {
				_, err := fmt.Fprintf(cmd.ErrOrStderr(), "no log entries in %s\n", cfg.LogPath())
				return err
			}
			out := cmd.OutOrStdout()
			return logtail.Render(out, entries, flags.noColor || !isTerminal(out))
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "", "minimum level to show")
	return cmd
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			return err
		},
	}
}

func loadConfig(cmd *cobra.Command, flags *globalFlags) (config.Config, error) {
	opts := flags.options(cmd)
	cfg, err := config.Load(config.Options{
		Path:      opts.ConfigPath,
		DotEnv:    opts.DotEnv,
		Overrides: opts.Overrides,
	})
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
