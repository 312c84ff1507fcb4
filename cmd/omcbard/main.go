// Package main is the entry point for the omcbard menu-bar daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"

	"github.com/oh-my-claude/menubar/internal/buildinfo"
	"github.com/oh-my-claude/menubar/internal/config"
	"github.com/oh-my-claude/menubar/internal/daemon/server"
	"github.com/oh-my-claude/menubar/internal/daemon/tray"
	"github.com/oh-my-claude/menubar/internal/logging"
	"github.com/oh-my-claude/menubar/internal/models"
)

func main() {
	// Parse flags
	foreground := flag.Bool("foreground", false, "Run in foreground without a system tray (for development)")
	settingsPath := flag.String("settings", "", "Settings file (default ~/.claude/oh-my-claude/menubar.yaml)")
	logLevel := flag.String("log-level", "", "Override the settings log level")
	flag.Parse()

	settings, settingsErr := loadSettings(*settingsPath)
	if *logLevel != "" {
		settings.LogLevel = *logLevel
	}

	logger, err := logging.New(settings.LogLevel, *foreground)
	if err != nil {
		fmt.Fprintf(os.Stderr, "omcbard: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if settingsErr != nil {
		logger.Warn("settings unreadable, using defaults", zap.Error(settingsErr))
	}
	// The registry directory must exist for the watcher to attach.
	if settings.RegistryPath == "" {
		if err := config.EnsureGlobalDir(); err != nil {
			logger.Warn("failed to create global directory", zap.Error(err))
		}
	}
	logger.Info("starting omcbard", zap.Any("build", buildinfo.Fields()), zap.Bool("foreground", *foreground))

	if *foreground {
		runForeground(settings, logger)
	} else {
		runWithTray(settings, logger)
	}
}

// loadSettings never fails: a malformed file falls back to defaults so the
// menu bar still comes up.
func loadSettings(path string) (*models.Settings, error) {
	var (
		settings *models.Settings
		err      error
	)
	if path != "" {
		settings, err = config.LoadSettingsFrom(path)
	} else {
		settings, err = config.LoadSettings()
	}
	if err != nil {
		return models.NewSettings(), err
	}
	return settings, nil
}

// runForeground runs the pipeline without a system tray, logging each menu
// and blocking on signals.
func runForeground(settings *models.Settings, logger *zap.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(settings, server.LogHost(logger.Named("host")),
		server.WithLogger(logger),
		server.WithQuit(stop),
	)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	if err := srv.Serve(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
	}
	logger.Info("daemon stopped")
}

// runWithTray runs the daemon with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(settings *models.Settings, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var srv *server.Server
	host := tray.New(func(id string) {
		if srv != nil {
			srv.Dispatch(id)
		}
	}, tray.WithLogger(logger.Named("tray")))

	var err error
	srv, err = server.New(settings, host,
		server.WithLogger(logger),
		server.WithQuit(tray.Quit),
	)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	var started atomic.Bool
	done := make(chan struct{})
	onStart := func() {
		started.Store(true)
		// Serve in background
		go func() {
			defer close(done)
			if err := srv.Serve(ctx); err != nil {
				logger.Error("server error", zap.Error(err))
				tray.Quit()
			}
		}()

		// Handle OS signals: quit tray on SIGINT/SIGTERM
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-sigCh:
				logger.Info("received signal, shutting down", zap.Stringer("signal", sig))
				tray.Quit()
			case <-ctx.Done():
			}
		}()
	}

	onExit := func() {
		cancel()
		if started.Load() {
			<-done
		}
		logger.Info("daemon stopped")
	}

	// This blocks the main goroutine until tray exits.
	host.Run(onStart, onExit)
}
