// Package logging builds the zerolog loggers used across bookshelf.
//
// The TUI owns the terminal, so it logs JSON lines to a file. One-shot CLI
// commands log human-readable output to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	formatJSON    = "json"
	formatConsole = "console"
)

// Options configure New.
type Options struct {
	Level string
	// File receives JSON lines when set; otherwise output goes to Writer.
	File string
	// Writer defaults to os.Stderr.
	Writer io.Writer
	// Format is "console" or "json"; empty picks json for files and
	// console otherwise.
	Format  string
	NoColor bool
}

// New returns a logger and a closer for any file it opened.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}
	var closer io.Closer = nopCloser{}
	format := opts.Format

	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closer = file
		if format == "" {
			format = formatJSON
		}
	}
	if format == "" {
		format = formatConsole
	}

	if format == formatConsole {
		out = zerolog.ConsoleWriter{Out: out, NoColor: opts.NoColor, TimeFormat: time.TimeOnly}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

// ParseLevel maps a level name to a zerolog level. Unknown names mean info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
