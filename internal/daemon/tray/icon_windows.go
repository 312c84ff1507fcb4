//go:build windows

package tray

func trayIcon() []byte {
	return wrapICO(iconData(), iconSize)
}
