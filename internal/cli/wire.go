package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/oh-my-claude/menubar/internal/actions"
	"github.com/oh-my-claude/menubar/internal/commands"
	"github.com/oh-my-claude/menubar/internal/config"
	"github.com/oh-my-claude/menubar/internal/control"
	"github.com/oh-my-claude/menubar/internal/logging"
	"github.com/oh-my-claude/menubar/internal/models"
	"github.com/oh-my-claude/menubar/internal/registry"
	"github.com/oh-my-claude/menubar/internal/sessions"
)

// env is everything a command needs to reach the running sessions.
type env struct {
	settings     *models.Settings
	logger       *zap.Logger
	registryPath string
	surface      *commands.Surface
}

func (o *rootOptions) loadSettings() (*models.Settings, error) {
	if o.settingsPath != "" {
		return config.LoadSettingsFrom(o.settingsPath)
	}
	return config.LoadSettings()
}

func (o *rootOptions) newEnv() (*env, error) {
	settings, err := o.loadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	level := "error"
	if o.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, true)
	if err != nil {
		return nil, err
	}

	registryPath, err := config.RegistryPath(settings)
	if err != nil {
		return nil, err
	}

	client := control.New(control.WithTimeout(settings.RequestTimeout))
	agg := sessions.NewAggregator(
		registry.New(registryPath, registry.WithLogger(logger.Named("registry"))),
		client,
		sessions.WithConcurrency(settings.MaxConcurrency),
		sessions.WithLogger(logger.Named("sessions")),
	)
	router := actions.NewRouter(client, actions.WithLogger(logger.Named("actions")))

	return &env{
		settings:     settings,
		logger:       logger,
		registryPath: registryPath,
		surface:      commands.NewSurface(agg, router, settings.Catalog()),
	}, nil
}
