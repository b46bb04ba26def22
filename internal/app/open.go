package app

import (
	"path/filepath"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
	"github.com/Gaurav-Gosain/tuidesk/internal/terminal"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
)

// singleKinds open at most one window; asking again focuses it.
var singleKinds = map[string]bool{
	event.KindLog:   true,
	event.KindHelp:  true,
	event.KindAbout: true,
}

// open builds the content for desc and adds its window.
func (d *Desk) open(desc event.Descriptor) event.Outcome {
	if singleKinds[desc.Kind] {
		if id, ok := d.singles[desc.Kind]; ok && d.wm.Get(id) != nil {
			d.wm.Restore(id)
			d.wm.Focus(id)
			return event.Refresh()
		}
	}

	var content wm.Content
	switch desc.Kind {
	case event.KindTerminal, "":
		return d.openTerminal(desc)
	case event.KindText:
		content = NewTextView(desc.Title, desc.Body, d.theme)
	case event.KindLog:
		content = NewLogView(d.Log, d.theme)
		desc.Title = "Log Viewer"
	case event.KindHelp:
		content = NewTextView("Keyboard Help", helpText(d.keys), d.theme)
		desc.Width, desc.Height = sizeOr(desc.Width, helpWidth), sizeOr(desc.Height, helpHeight)
	case event.KindAbout:
		content = NewTextView("About", aboutText(d.about), d.theme)
		desc.Width, desc.Height = sizeOr(desc.Width, aboutWidth), sizeOr(desc.Height, aboutHeight)
	default:
		return event.Errorf("Unknown window kind %q", desc.Kind)
	}

	id := d.wm.Open(desc, content)
	if singleKinds[desc.Kind] {
		d.singles[desc.Kind] = id
	}
	d.log.Debug("opened", "kind", desc.Kind, "id", shortID(id))
	return event.Refresh()
}

func sizeOr(n, def int) int {
	if n > 0 {
		return n
	}
	return def
}

// openTerminal starts a shell in a new window. The window opens even when
// the spawn fails so the error stays visible next to the dialog.
func (d *Desk) openTerminal(desc event.Descriptor) event.Outcome {
	desc.Kind = event.KindTerminal
	ws := d.wm.Workspace()
	width := min(sizeOr(desc.Width, wm.DefaultWidth), max(ws.Dx(), wm.FloorMinWidth))
	height := min(sizeOr(desc.Height, wm.DefaultHeight), max(ws.Dy(), wm.FloorMinHeight))
	desc.Width, desc.Height = width, height

	shell := terminal.ResolveShell(desc.Shell, d.cfg.General.Shell)
	if desc.Title == "" {
		desc.Title = filepath.Base(shell)
	}

	// The first frame resizes the pane if the manager clamps the window.
	pane, err := terminal.NewPane(width-2, height-2, terminal.PaneOptions{
		Shell:       shell,
		Scrollback:  d.cfg.Terminal.ScrollbackLines,
		CloseOnExit: d.cfg.Terminal.CloseOnExit,
		Session:     terminal.Options{WriteQueue: d.cfg.Terminal.WriteQueueBytes},
		Theme:       d.theme,
		Logger:      d.log,
	})
	id := d.wm.Open(desc, pane)
	if err != nil {
		return event.Errorf("Cannot start %s: %v", shell, err)
	}
	d.log.Info("terminal opened", "id", shortID(id), "shell", shell)
	return event.Refresh()
}
