package preferences

import (
	"github.com/juandisay/GaWe/internal/core/activity"
	"github.com/juandisay/GaWe/internal/core/model"
)

// DefaultMusicVolume is the background volume for a fresh install.
const DefaultMusicVolume = 0.5

// Settings defines editable user preferences.
type Settings struct {
	ActivityEnabled          bool
	ActivityThresholdSeconds uint64

	MusicFilePath string
	MusicVolume   float64
	MusicLoop     bool
	MusicAutoPlay bool
}

// DefaultSettings returns default settings for GaWe.
func DefaultSettings() Settings {
	return Settings{
		ActivityEnabled:          false,
		ActivityThresholdSeconds: activity.DefaultThresholdSeconds,
		MusicVolume:              DefaultMusicVolume,
	}
}

// ActivityConfig converts settings to the activity monitor configuration.
func (settings Settings) ActivityConfig() model.ActivityConfig {
	return model.ActivityConfig{
		Enabled:          settings.ActivityEnabled,
		ThresholdSeconds: settings.ActivityThresholdSeconds,
	}
}

// MusicConfig converts settings to the background music configuration.
func (settings Settings) MusicConfig() model.MusicConfig {
	return model.MusicConfig{
		FilePath: settings.MusicFilePath,
		Loop:     settings.MusicLoop,
		AutoPlay: settings.MusicAutoPlay,
		Volume:   settings.MusicVolume,
	}
}
