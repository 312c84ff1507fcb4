package config

import (
	"github.com/oh-my-claude/menubar/internal/models"
)

// LoadSettings loads the settings from ~/.claude/oh-my-claude/menubar.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom loads settings from an explicit path, filling defaults
// for anything the file leaves unset.
func LoadSettingsFrom(path string) (*models.Settings, error) {
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	settings.ApplyDefaults()
	return settings, nil
}

// SaveSettings saves the settings to ~/.claude/oh-my-claude/menubar.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// RegistryPath resolves the registry location, honoring the settings override.
func RegistryPath(settings *models.Settings) (string, error) {
	if settings != nil && settings.RegistryPath != "" {
		return settings.RegistryPath, nil
	}
	return GlobalRegistryFile()
}
