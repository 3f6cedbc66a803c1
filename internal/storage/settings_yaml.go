package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/juandisay/GaWe/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

// Pointer fields tell a missing key from an explicit zero.
type yamlSettings struct {
	ActivityEnabled          bool     `yaml:"activity_enabled"`
	ActivityThresholdSeconds *uint64  `yaml:"activity_threshold_seconds,omitempty"`
	MusicFilePath            string   `yaml:"music_file_path,omitempty"`
	MusicVolume              *float64 `yaml:"music_volume,omitempty"`
	MusicLoop                bool     `yaml:"music_loop"`
	MusicAutoPlay            bool     `yaml:"music_autoplay"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettingsFile reads preferences from configPath, falling back to
// defaults for a missing file or missing keys.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes preferences to configPath, creating its directory.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	threshold := settings.ActivityThresholdSeconds
	volume := settings.MusicVolume
	fileData := yamlSettings{
		ActivityEnabled:          settings.ActivityEnabled,
		ActivityThresholdSeconds: &threshold,
		MusicFilePath:            settings.MusicFilePath,
		MusicVolume:              &volume,
		MusicLoop:                settings.MusicLoop,
		MusicAutoPlay:            settings.MusicAutoPlay,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.ActivityThresholdSeconds != nil {
		settings.ActivityThresholdSeconds = *fileData.ActivityThresholdSeconds
	}
	if fileData.MusicVolume != nil && *fileData.MusicVolume >= 0 && *fileData.MusicVolume <= 1 {
		settings.MusicVolume = *fileData.MusicVolume
	}

	settings.ActivityEnabled = fileData.ActivityEnabled
	settings.MusicFilePath = fileData.MusicFilePath
	settings.MusicLoop = fileData.MusicLoop
	settings.MusicAutoPlay = fileData.MusicAutoPlay
}
