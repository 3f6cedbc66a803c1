package telemetry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
}

func TestInitLoggerTextLevels(t *testing.T) {
	restoreDefault(t)
	var out bytes.Buffer

	logger, closer, err := InitLogger(Options{Output: &out})
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("tick", "remaining", 59)

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "msg=tick remaining=59")
	assert.Same(t, logger, slog.Default())
}

func TestInitLoggerJSONDebug(t *testing.T) {
	restoreDefault(t)
	var out bytes.Buffer

	logger, closer, err := InitLogger(Options{Output: &out, Format: "JSON", Debug: true})
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("sampled", "idle", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "sampled", record["msg"])
	assert.Equal(t, "DEBUG", record["level"])
}

func TestInitLoggerCopiesToFile(t *testing.T) {
	restoreDefault(t)
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "gawe.log")

	logger, closer, err := InitLogger(Options{Output: &out, LogFile: path})
	require.NoError(t, err)
	logger.With("component", "timer").Info("session finished")
	require.NoError(t, closer.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(contents), `"component":"timer"`))
	assert.Contains(t, out.String(), "component=timer")
}

func TestInitLoggerBadFile(t *testing.T) {
	restoreDefault(t)
	_, _, err := InitLogger(Options{LogFile: filepath.Join(t.TempDir(), "missing", "gawe.log")})
	assert.Error(t, err)
}
