package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/fileformat/internal/cli"
)

//nolint:paralleltest // Uses t.Setenv.
func TestBindEnvVars(t *testing.T) {
	tcs := map[string]struct {
		envVars       map[string]string
		wantLogLevel  string
		wantLogFormat string
		args          []string
	}{
		"environment variables are bound when no args provided": {
			envVars: map[string]string{
				"FILEFORMAT_LOG_LEVEL":  "debug",
				"FILEFORMAT_LOG_FORMAT": "json",
			},
			args:          []string{},
			wantLogLevel:  "debug",
			wantLogFormat: "json",
		},
		"command line args take precedence over environment variables": {
			envVars: map[string]string{
				"FILEFORMAT_LOG_LEVEL":  "debug",
				"FILEFORMAT_LOG_FORMAT": "json",
			},
			args:          []string{"--log-level", "error", "--log-format", "text"},
			wantLogLevel:  "error",
			wantLogFormat: "text",
		},
		"warning is accepted as a level": {
			envVars: map[string]string{
				"FILEFORMAT_LOG_LEVEL": "warning",
			},
			args:          []string{},
			wantLogLevel:  "warning",
			wantLogFormat: "text",
		},
		"partial environment variable override": {
			envVars: map[string]string{
				"FILEFORMAT_LOG_LEVEL": "warn",
			},
			args:          []string{"--log-format", "json"},
			wantLogLevel:  "warn",
			wantLogFormat: "json",
		},
		"no environment variables uses defaults": {
			envVars:       map[string]string{},
			args:          []string{},
			wantLogLevel:  "info",
			wantLogFormat: "text",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			for key, val := range tc.envVars {
				t.Setenv(key, val)
			}

			cmd := cli.NewRootCmd()
			cmd.SetArgs(tc.args)

			err := cmd.ParseFlags(tc.args)
			require.NoError(t, err)

			logLevel, err := cmd.Flags().GetString("log-level")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLogLevel, logLevel)

			logFormat, err := cmd.Flags().GetString("log-format")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLogFormat, logFormat)
		})
	}
}

func TestEnvironmentVariableUsageUpdate(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCmd()

	logLevelFlag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, logLevelFlag)
	assert.Contains(t, logLevelFlag.Usage, "$FILEFORMAT_LOG_LEVEL")

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Contains(t, configFlag.Usage, "$FILEFORMAT_CONFIG")
}

//nolint:paralleltest // Uses t.Setenv.
func TestSubcommandFlagsFromEnvironment(t *testing.T) {
	t.Setenv("FILEFORMAT_STRICT", "true")

	cmd := cli.NewRootCmd()

	rename, _, err := cmd.Find([]string{"rename"})
	require.NoError(t, err)

	strict := rename.Flags().Lookup("strict")
	require.NotNil(t, strict)
	assert.Equal(t, "true", strict.Value.String())
	assert.True(t, strict.Changed)
	assert.Contains(t, strict.Usage, "$FILEFORMAT_STRICT")
}

//nolint:paralleltest // Uses t.Setenv.
func TestSetFromEnvironment(t *testing.T) {
	t.Setenv("FILEFORMAT_SET", "year=2024 title='q3 report'")

	dir := t.TempDir()
	rule := filepath.Join(dir, "rule.json")
	require.NoError(t, os.WriteFile(rule, []byte(`{"rule": "{year}-{title}"}`), 0o600))

	var stdout bytes.Buffer

	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{
		"preview",
		"--format", rule,
		"--set", "year=2025",
		"--config", filepath.Join(dir, "config.yaml"),
	})

	require.NoError(t, cmd.ExecuteContext(t.Context()))
	assert.Equal(t, "2025-q3 report.etc\n", stdout.String())
}
