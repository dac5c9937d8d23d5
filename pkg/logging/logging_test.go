package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestConfigureWritesFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	require.NoError(t, Configure(Config{File: path}))
	log.Info().Msg("starting extraction")
	log.Debug().Msg("hidden at info level")
	require.NoError(t, Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	require.Contains(t, out, "| INFO | logging_test.go:")
	require.Contains(t, out, "| starting extraction")
	require.NotContains(t, out, "hidden at info level")
}

func TestConfigureVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	require.NoError(t, Configure(Config{File: path, Verbose: true}))
	logger := WithComponent("scanner")
	logger.Debug().Str("file", "a.yaml").Msg("processing")
	require.NoError(t, Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "| DEBUG |")
	require.Contains(t, string(b), "component=scanner")
	require.Contains(t, string(b), "file=a.yaml")
}

func TestConfigureConsoleOnly(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Configure(Config{Console: &buf}))
	log.Warn().Msg("no compositions")
	require.NoError(t, Close())

	require.Contains(t, buf.String(), "no compositions")
}

func TestResolveLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	tests := []struct {
		name     string
		cfg      Config
		env      string
		expected zerolog.Level
	}{
		{name: "default", expected: zerolog.InfoLevel},
		{name: "verbose", cfg: Config{Verbose: true}, expected: zerolog.DebugLevel},
		{name: "explicit level wins", cfg: Config{Verbose: true, Level: "warn"}, expected: zerolog.WarnLevel},
		{name: "invalid explicit level falls through", cfg: Config{Level: "loud"}, expected: zerolog.InfoLevel},
		{name: "environment", env: "error", expected: zerolog.ErrorLevel},
		{name: "verbose beats environment", cfg: Config{Verbose: true}, env: "error", expected: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLogLevel, tt.env)
			require.Equal(t, tt.expected, resolveLevel(tt.cfg))
		})
	}
}
