package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	require.False(t, cfg.Verbose)
	require.Equal(t, DefaultOutput, cfg.Output)
	require.Equal(t, FormatAuto, cfg.Format)
	require.Equal(t, runtime.NumCPU(), cfg.Workers)
	require.Equal(t, DefaultLogFile, cfg.LogFile)
	require.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithVerbose(true),
		WithOutput("out/report.json"),
		WithFormat("JSON"),
		WithWorkers(3),
		WithLogFile(""),
	)
	require.True(t, cfg.Verbose)
	require.Equal(t, "out/report.json", cfg.Output)
	require.Equal(t, FormatJSON, cfg.Format)
	require.Equal(t, 3, cfg.Workers)
	require.Empty(t, cfg.LogFile)
}

func TestValidate(t *testing.T) {
	err := NewConfig(WithFormat("pdf"), WithWorkers(0), WithOutput("")).Validate()
	require.Error(t, err)
	require.ErrorContains(t, err, `unknown format "pdf"`)
	require.ErrorContains(t, err, "workers must be positive")
	require.ErrorContains(t, err, "output path must not be empty")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("XPTOOLS_FORMAT", "markdown")
	t.Setenv("XPTOOLS_WORKERS", "5")
	t.Setenv("XPTOOLS_LOG_FILE", "custom.log")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, FormatMarkdown, cfg.Format)
	require.Equal(t, 5, cfg.Workers)
	require.Equal(t, "custom.log", cfg.LogFile)
	require.Equal(t, DefaultOutput, cfg.Output)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xptools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verbose: true\noutput: report.md\nworkers: 2\n"), 0o644))

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	require.True(t, cfg.Verbose)
	require.Equal(t, "report.md", cfg.Output)
	require.Equal(t, 2, cfg.Workers)
}

func TestNewViperMissingExplicitFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyWorkers, -1)

	_, err := Load(v)
	require.ErrorContains(t, err, "invalid configuration")
}
