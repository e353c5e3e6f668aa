package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ollamastub/internal/config"
	"ollamastub/pkg/logging"
)

func parseServeFlags(t *testing.T, args ...string) (*serveOptions, *pflag.FlagSet) {
	t.Helper()
	var opts serveOptions
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.addFlags(fs)
	require.NoError(t, fs.Parse(args))
	return &opts, fs
}

func TestServeSettingsDefaults(t *testing.T) {
	opts, fs := parseServeFlags(t)

	settings, err := opts.settings(fs)
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfig(), settings)
}

func TestServeSettingsFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 0.0.0.0
  port: 12000
console:
  history: 7
preload:
  file: from-file.yaml
`), 0o644))

	opts, fs := parseServeFlags(t, "--config", path, "--port", "13000", "--plain", "--preload", "seed.yaml", "--watch")

	settings, err := opts.settings(fs)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", settings.Server.Host, "unset flag keeps the file value")
	assert.Equal(t, 13000, settings.Server.Port)
	assert.Equal(t, 7, settings.Console.History)
	assert.Equal(t, config.DefaultLogCapacity, settings.Console.LogCapacity)
	assert.Equal(t, "seed.yaml", settings.Preload.File)
	assert.True(t, settings.Preload.Watch)
	assert.True(t, settings.Console.Plain)
	assert.False(t, settings.Debug)
}

func TestServeSettingsRejectsInvalidFlags(t *testing.T) {
	opts, fs := parseServeFlags(t, "--port", "70000", "--history", "0")

	_, err := opts.settings(fs)
	require.Error(t, err)

	var coll config.ConfigurationErrorCollection
	require.True(t, errors.As(err, &coll))
	assert.Len(t, coll.Errors, 2)
	assert.Equal(t, ExitCodeConfigError, getExitCode(err))
}

func TestServeSettingsMissingConfigFile(t *testing.T) {
	opts, fs := parseServeFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := opts.settings(fs)
	require.Error(t, err)
	assert.Equal(t, ExitCodeConfigError, getExitCode(err))
}

func runServeWithArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	saved := serveOpts
	t.Cleanup(func() {
		serveOpts = saved
		logging.InitForCLI(logging.LevelInfo, io.Discard)
	})
	serveOpts = serveOptions{}

	c := &cobra.Command{Use: "ollama-stub", RunE: runServe}
	serveOpts.addFlags(c.Flags())
	require.NoError(t, c.Flags().Parse(args))

	var stderr bytes.Buffer
	c.SetErr(&stderr)
	err := runServe(c, nil)
	return stderr.String(), err
}

func TestRunServeReportsEveryValidationError(t *testing.T) {
	stderr, err := runServeWithArgs(t, "--port", "70000", "--history", "0")

	require.Error(t, err)
	assert.Equal(t, ExitCodeConfigError, getExitCode(err))
	assert.Contains(t, stderr, "Detailed Configuration Error Report (2 errors):")
	assert.Contains(t, stderr, "Field: server.port")
	assert.Contains(t, stderr, "Field: console.history")
}

func TestRunServeReportsSingleValidationError(t *testing.T) {
	stderr, err := runServeWithArgs(t, "--host", "")

	require.Error(t, err)
	assert.Equal(t, ExitCodeConfigError, getExitCode(err))
	assert.Contains(t, stderr, "Configuration Error (validation)")
	assert.Contains(t, stderr, "Field: server.host")
	assert.NotContains(t, stderr, "Detailed Configuration Error Report")
}
