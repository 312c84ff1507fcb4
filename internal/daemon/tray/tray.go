package tray

import (
	"github.com/getlantern/systray"
)

// systrayBackend adapts getlantern/systray to backend.
type systrayBackend struct{}

type systrayEntry struct {
	item *systray.MenuItem
}

func (e systrayEntry) Hide()                    { e.item.Hide() }
func (e systrayEntry) Disable()                 { e.item.Disable() }
func (e systrayEntry) Clicked() <-chan struct{} { return e.item.ClickedCh }

func (systrayBackend) AddItem(title, tooltip string) entry {
	return systrayEntry{item: systray.AddMenuItem(title, tooltip)}
}

func (systrayBackend) AddSubItem(parent entry, title, tooltip string) entry {
	p := parent.(systrayEntry)
	return systrayEntry{item: p.item.AddSubMenuItem(title, tooltip)}
}

func (systrayBackend) SetTooltip(tooltip string) {
	systray.SetTooltip(tooltip)
}

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStart is called once the tray is ready and SetMenu may be used.
// onExit is called when the tray exits (cleanup here).
func (h *Host) Run(onStart, onExit func()) {
	systray.Run(func() {
		icon := trayIcon()
		systray.SetTemplateIcon(icon, icon)
		systray.SetTooltip(TooltipStarting)
		h.attach(systrayBackend{})

		if onStart != nil {
			onStart()
		}
	}, func() {
		if onExit != nil {
			onExit()
		}
	})
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}
