package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juandisay/GaWe/internal/core/model"
	"github.com/juandisay/GaWe/internal/ui/preferences"
)

func TestLoadSettingsFileMissingReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsRoundTripKeepsZeroThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "GaWe", settingsFileName)
	saved := preferences.Settings{
		ActivityEnabled:          true,
		ActivityThresholdSeconds: 0,
		MusicFilePath:            "/music/rain.ogg",
		MusicVolume:              0,
		MusicLoop:                true,
		MusicAutoPlay:            true,
	}
	require.NoError(t, SaveSettingsFile(path, saved))

	loaded, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsFilePartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("activity_enabled: true\nmusic_volume: 3\n"), 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.True(t, settings.ActivityEnabled)
	assert.Equal(t, uint64(300), settings.ActivityThresholdSeconds)
	assert.Equal(t, preferences.DefaultMusicVolume, settings.MusicVolume)
}

func TestLoadSettingsFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("activity_enabled: [nope"), 0o644))

	settings, err := LoadSettingsFile(path)
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestParseSessionFillsMissingFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	document := []byte(`
name: Morning
tasks:
  - name: Focus
    duration_minutes: 25
    kind: Work
  - name: Stretch
    duration_minutes: 5
    kind: Break
  - name: Review
    duration_minutes: 10
`)

	session, err := ParseSession(document, now)
	require.NoError(t, err)
	assert.Equal(t, "Morning", session.Name)
	assert.Equal(t, now, session.CreatedAt)
	_, err = uuid.Parse(session.ID)
	assert.NoError(t, err)

	require.Len(t, session.Tasks, 3)
	assert.Equal(t, model.TaskBreak, session.Tasks[1].Kind)
	assert.Equal(t, model.TaskWork, session.Tasks[2].Kind)
	assert.NotEqual(t, session.Tasks[0].ID, session.Tasks[1].ID)
	assert.Equal(t, uint64(40*60), session.TotalSeconds())
}

func TestParseSessionKeepsExplicitFields(t *testing.T) {
	document := []byte(`
id: s-1
name: Sprint
created_at: 2026-01-02T03:04:05Z
tasks:
  - id: t-1
    name: Focus
    duration_minutes: 50
    kind: Work
`)

	session, err := ParseSession(document, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "s-1", session.ID)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), session.CreatedAt.UTC())
	assert.Equal(t, "t-1", session.Tasks[0].ID)
}

func TestParseSessionAllowsEmptyTaskList(t *testing.T) {
	session, err := ParseSession([]byte("name: Nothing\n"), time.Now())
	require.NoError(t, err)
	assert.Empty(t, session.Tasks)
}

func TestParseSessionRejectsInvalidTasks(t *testing.T) {
	_, err := ParseSession([]byte("tasks:\n  - name: Focus\n    duration_minutes: 0\n"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = ParseSession([]byte("tasks:\n  - name: Nap\n    duration_minutes: 5\n    kind: Sleep\n"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestLoadSessionFileMissing(t *testing.T) {
	_, err := LoadSessionFile(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
