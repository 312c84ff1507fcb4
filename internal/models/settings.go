package models

import "time"

// Settings represents the menu-bar settings.
// This corresponds to ~/.claude/oh-my-claude/menubar.yaml.
type Settings struct {
	Version         int            `yaml:"version"`
	RegistryPath    string         `yaml:"registry_path,omitempty"` // Empty means the well-known path
	PollInterval    time.Duration  `yaml:"poll_interval"`
	RequestTimeout  time.Duration  `yaml:"request_timeout"`
	MaxConcurrency  int            `yaml:"max_concurrency"`
	ActionWorkers   int            `yaml:"action_workers"`
	ActionQueueSize int            `yaml:"action_queue_size"`
	LogLevel        string         `yaml:"log_level"` // "debug" | "info" | "warn" | "error"
	Providers       []ProviderInfo `yaml:"providers,omitempty"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:         1,
		PollInterval:    2 * time.Second,
		RequestTimeout:  3 * time.Second,
		MaxConcurrency:  8,
		ActionWorkers:   2,
		ActionQueueSize: 16,
		LogLevel:        "info",
	}
}

// ApplyDefaults fills zero or invalid values from NewSettings.
func (s *Settings) ApplyDefaults() {
	d := NewSettings()
	if s.Version == 0 {
		s.Version = d.Version
	}
	if s.PollInterval <= 0 {
		s.PollInterval = d.PollInterval
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = d.RequestTimeout
	}
	if s.MaxConcurrency <= 0 {
		s.MaxConcurrency = d.MaxConcurrency
	}
	if s.ActionWorkers <= 0 {
		s.ActionWorkers = d.ActionWorkers
	}
	if s.ActionQueueSize <= 0 {
		s.ActionQueueSize = d.ActionQueueSize
	}
	if s.LogLevel == "" {
		s.LogLevel = d.LogLevel
	}
}

// Catalog returns the configured providers, or the built-in table.
func (s *Settings) Catalog() Catalog {
	if len(s.Providers) == 0 {
		return DefaultCatalog()
	}
	return Catalog(s.Providers).Clone()
}
