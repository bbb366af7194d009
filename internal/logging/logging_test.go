package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNew_FileGetsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookshelf.log")

	logger, closer, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)
	logger.Debug().Str("component", "booksapi").Msg("request")
	logger.Trace().Msg("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "booksapi", entry["component"])
	assert.Equal(t, "request", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_FileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookshelf.log")
	for i := 0; i < 2; i++ {
		logger, closer, err := New(Options{File: path})
		require.NoError(t, err)
		logger.Info().Msg("started")
		require.NoError(t, closer.Close())
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), `"message":"started"`))
}

func TestNew_ConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "warn", Writer: &buf, NoColor: true})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("quiet")
	logger.Warn().Str("op", "list books").Msg("request failed")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, "op=")
}

func TestNew_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Writer: &buf, Format: "json"})
	require.NoError(t, err)
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestNew_BadFileLocation(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, _, err := New(Options{File: filepath.Join(blocker, "x.log")})
	require.Error(t, err)
}
