package input

import (
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/event"
	"github.com/Gaurav-Gosain/tuidesk/internal/ui"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
)

// ActionAbout opens the About window. It has no key binding.
const ActionAbout = "about"

// Menu bar titles.
const (
	MenuFile   = "File"
	MenuWindow = "Window"
	MenuHelp   = "Help"
)

func item(keys *config.KeybindRegistry, label, action string) event.MenuItem {
	it := event.MenuItem{Label: label, Action: action}
	if keys != nil {
		it.Hint = keys.FirstKeyForDisplay(action)
	}
	return it
}

// NewMenuBar builds the global menu bar with hints taken from keys.
func NewMenuBar(keys *config.KeybindRegistry) *ui.MenuBar {
	return ui.NewMenuBar(
		ui.Menu{Title: MenuFile, Items: []event.MenuItem{
			item(keys, "New Terminal", config.ActionNewTerminal),
			item(keys, "Log Viewer", config.ActionOpenLog),
			event.Separator(),
			item(keys, "Exit", config.ActionQuit),
		}},
		ui.Menu{Title: MenuWindow, Items: windowBarItems(keys, nil, nil)},
		ui.Menu{Title: MenuHelp, Items: []event.MenuItem{
			item(keys, "Keyboard Help", config.ActionShowHelp),
			item(keys, "About", ActionAbout),
		}},
	)
}

// windowBarItems is the Window dropdown for the focused window w. Entries
// that need a window are disabled when w is nil.
func windowBarItems(keys *config.KeybindRegistry, m *wm.Manager, w *wm.Window) []event.MenuItem {
	items := windowActions(keys, w)
	restore := item(keys, "Restore Last", config.ActionRestoreLast)
	restore.Disabled = m == nil || m.LastMinimized() == nil
	next := item(keys, "Next Window", config.ActionNextWindow)
	next.Disabled = m == nil || m.Visible() < 2
	return append(items, event.Separator(), next, restore)
}

// windowActions are the entries acting on one window.
func windowActions(keys *config.KeybindRegistry, w *wm.Window) []event.MenuItem {
	maximize := item(keys, "Maximize", config.ActionMaximize)
	pin := item(keys, "Pin on Top", config.ActionTogglePin)
	if w != nil && w.Maximized() {
		maximize.Label = "Restore Size"
	}
	if w != nil && w.Pinned() {
		pin.Label = "Unpin"
	}
	items := []event.MenuItem{
		item(keys, "Minimize", config.ActionMinimize),
		maximize,
		pin,
		item(keys, "Close", config.ActionCloseWindow),
	}
	if w == nil {
		for i := range items {
			items[i].Disabled = true
		}
	}
	return items
}

// windowContextItems is the context menu of w: the window actions followed
// by whatever its content contributes.
func windowContextItems(keys *config.KeybindRegistry, w *wm.Window) []event.MenuItem {
	items := windowActions(keys, w)
	if m, ok := w.Content().(wm.Menuer); ok {
		if extra := m.MenuItems(); len(extra) > 0 {
			items = append(items, event.Separator())
			items = append(items, extra...)
		}
	}
	return items
}

// desktopContextItems is the menu shown on a right click on empty desktop.
func desktopContextItems(keys *config.KeybindRegistry) []event.MenuItem {
	return []event.MenuItem{
		item(keys, "New Terminal", config.ActionNewTerminal),
		item(keys, "Log Viewer", config.ActionOpenLog),
		item(keys, "Keyboard Help", config.ActionShowHelp),
		item(keys, "About", ActionAbout),
		event.Separator(),
		item(keys, "Exit", config.ActionQuit),
	}
}
