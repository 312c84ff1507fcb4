package server

import (
	"go.uber.org/zap"

	"github.com/oh-my-claude/menubar/internal/menu"
)

// LogHost returns a host that logs each installed menu instead of showing
// it, for running without a system tray.
func LogHost(logger *zap.Logger) menu.Host {
	return menu.HostFunc(func(m *menu.Menu) error {
		logger.Info("menu installed", zap.String("tooltip", m.Tooltip), zap.Int("items", len(m.IDs())))
		logger.Debug("menu layout\n" + menu.Render(m))
		return nil
	})
}
