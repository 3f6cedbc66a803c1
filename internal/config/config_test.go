package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("gawe", pflag.ContinueOnError)
	RegisterFlags(flags)
	hasEnvFile := false
	for _, arg := range args {
		if strings.HasPrefix(arg, "--env-file=") {
			hasEnvFile = true
		}
	}
	if !hasEnvFile {
		args = append(args, "--env-file="+filepath.Join(t.TempDir(), "absent.env"))
	}
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadDefaults(t *testing.T) {
	options, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, Options{
		LogFormat:        "text",
		TickInterval:     time.Second,
		IdlePollInterval: 5 * time.Second,
	}, options)
}

func TestLoadFlagsWinOverEnvironment(t *testing.T) {
	t.Setenv("GAWE_TICK_INTERVAL", "250ms")
	t.Setenv("GAWE_METRICS_ADDR", "127.0.0.1:9464")

	options, err := Load(newFlags(t, "--tick-interval=10ms", "--debug"))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, options.TickInterval)
	assert.Equal(t, "127.0.0.1:9464", options.MetricsAddr)
	assert.True(t, options.Debug)
}

func TestLoadReadsEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GAWE_IDLE_POLL_INTERVAL=2s\nGAWE_LOG_FORMAT=json\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("GAWE_IDLE_POLL_INTERVAL")
		os.Unsetenv("GAWE_LOG_FORMAT")
	})

	options, err := Load(newFlags(t, "--env-file="+envFile))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, options.IdlePollInterval)
	assert.Equal(t, "json", options.LogFormat)
}

func TestLoadReadsConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "gawe.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("session: /tmp/morning.yaml\nlog-file: /tmp/gawe.log\n"), 0o644))

	options, err := Load(newFlags(t, "--config="+configFile))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/morning.yaml", options.SessionFile)
	assert.Equal(t, "/tmp/gawe.log", options.LogFile)
}

func TestLoadRejectsNonPositiveIntervals(t *testing.T) {
	_, err := Load(newFlags(t, "--tick-interval=0s"))
	assert.Error(t, err)

	_, err = Load(newFlags(t, "--idle-poll-interval=-1s"))
	assert.Error(t, err)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config="+filepath.Join(t.TempDir(), "none.yaml")))
	assert.Error(t, err)
}
