// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// ClaudeDirName is the name of the Claude home directory.
	ClaudeDirName = ".claude"

	// GlobalDirName is the oh-my-claude directory inside the Claude home.
	GlobalDirName = "oh-my-claude"
)

// File names
const (
	RegistryFileName = "proxy-sessions.json"
	SettingsFileName = "menubar.yaml"
)

// GlobalDir returns the path to the oh-my-claude directory (~/.claude/oh-my-claude/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ClaudeDirName, GlobalDirName), nil
}

// GlobalRegistryFile returns the path to the proxy session registry.
func GlobalRegistryFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, RegistryFileName), nil
}

// GlobalSettingsFile returns the path to the menubar.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// EnsureGlobalDir creates the oh-my-claude directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
