package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/bookshelf/internal/apitest"
	"github.com/five82/bookshelf/internal/apiurl"
	"github.com/five82/bookshelf/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(apiurl.EnvOrigin, "")
	t.Setenv(apiurl.EnvBasePath, "")
	t.Setenv(config.EnvLogLevel, "")
	dotenv := filepath.Join(home, ".env")
	require.NoError(t, os.WriteFile(dotenv, nil, 0o600))
	return dotenv
}

func TestSetup_BuildsClientFromOverrides(t *testing.T) {
	dotenv := isolate(t)
	srv := apitest.New(t)
	srv.SeedAuthor("George Orwell")
	logFile := filepath.Join(t.TempDir(), "logs", "bookshelf.log")

	env, err := Setup(Options{
		DotEnv:    dotenv,
		Overrides: config.Overrides{APIOrigin: srv.URL, LogFile: logFile, LogLevel: "debug"},
	}, LogToFile)
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/api", env.Client.BaseURL())

	authors, err := env.Client.ListAuthors(t.Context())
	require.NoError(t, err)
	require.Len(t, authors, 1)
	require.NoError(t, env.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"booksapi"`)
}

func TestSetup_RejectsRelativeOrigin(t *testing.T) {
	dotenv := isolate(t)
	t.Setenv(apiurl.EnvOrigin, "/relative")

	_, err := Setup(Options{DotEnv: dotenv, Overrides: config.Overrides{LogFile: filepath.Join(t.TempDir(), "x.log")}}, LogToStderr)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "init books client"), err.Error())
}

func TestSetup_BadConfig(t *testing.T) {
	dotenv := isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_origin = ["), 0o600))

	_, err := Setup(Options{ConfigPath: path, DotEnv: dotenv}, LogToStderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestEnvCloseNil(t *testing.T) {
	var env *Env
	assert.NoError(t, env.Close())
}
