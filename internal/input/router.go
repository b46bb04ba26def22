package input

import (
	"io"
	"strconv"

	"charm.land/log/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/event"
	"github.com/Gaurav-Gosain/tuidesk/internal/ui"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
)

// DefaultScrollStep is the number of lines one wheel notch scrolls.
const DefaultScrollStep = 3

// Router delivers events through the layer stack: modal dialog, open menu,
// drag session, global keys and windows, then the desktop. It only mutates
// window manager and chrome state; everything else is returned as an
// outcome for the event loop.
type Router struct {
	WM      *wm.Manager
	Desktop *ui.Desktop
	MenuBar *ui.MenuBar
	Keys    *config.KeybindRegistry
	Clicks  *ClickTracker

	// Dialog and Context are the popup layers, nil when closed.
	Dialog  *ui.Dialog
	Context *ui.ContextMenu

	// Screen is the whole terminal.
	Screen uv.Rectangle
	// Taskbar holds the buttons as last laid out by the painter.
	Taskbar    []ui.TaskButton
	ScrollStep int
	// IconMoved is called when a dragged desktop icon is dropped in a new
	// cell.
	IconMoved func()

	actions *ActionDispatcher
	log     *log.Logger
}

// NewRouter returns a router over m and desk using keys for global
// bindings.
func NewRouter(m *wm.Manager, desk *ui.Desktop, keys *config.KeybindRegistry, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Router{
		WM:         m,
		Desktop:    desk,
		MenuBar:    NewMenuBar(keys),
		Keys:       keys,
		Clicks:     NewClickTracker(DefaultDoubleClick),
		ScrollStep: DefaultScrollStep,
		actions:    NewActionDispatcher(),
		log:        logger.WithPrefix("input"),
	}
}

// SetKeys swaps the keybinding registry after a config reload. The menu bar
// is rebuilt so its hints follow.
func (r *Router) SetKeys(keys *config.KeybindRegistry) {
	r.Keys = keys
	r.MenuBar = NewMenuBar(keys)
}

// ShowDialog makes d the modal layer and closes any open menu.
func (r *Router) ShowDialog(d *ui.Dialog) {
	r.Dialog = d
	r.Context = nil
	r.MenuBar.Close()
	r.WM.EndDrag()
	r.endIconDrag()
}

func (r *Router) endIconDrag() {
	if r.Desktop.EndIconDrag() && r.IconMoved != nil {
		r.IconMoved()
	}
}

// Modal reports whether a dialog or menu is capturing input.
func (r *Router) Modal() bool {
	return r.Dialog != nil || r.Context != nil || r.MenuBar.IsOpen()
}

// Route delivers one event and returns what the event loop should do next.
func (r *Router) Route(ev event.Event) event.Outcome {
	switch ev := ev.(type) {
	case event.Key:
		return r.routeKey(ev)
	case event.Pointer:
		return r.routePointer(ev)
	case event.Paste:
		return r.routePaste(ev)
	}
	return event.None()
}

// routePaste hands pasted text to the focused window. Popups and the
// desktop have nowhere to put it.
func (r *Router) routePaste(p event.Paste) event.Outcome {
	if r.Modal() {
		return event.None()
	}
	w := r.WM.Focused()
	if w == nil {
		return event.None()
	}
	if c, ok := w.Content().(wm.Paster); ok {
		return c.HandlePaste(p.Text).WithTarget(w.ID())
	}
	r.log.Debug("paste dropped", "window", w.ID(), "bytes", len(p.Text))
	return event.None()
}

// RunAction runs a named action as if chosen from a menu on target.
func (r *Router) RunAction(action, target string) event.Outcome {
	if out, ok := r.actions.Dispatch(action, r, target); ok {
		return out
	}
	if w := r.windowFor(target); w != nil {
		if m, ok := w.Content().(wm.Menuer); ok {
			return m.HandleAction(action).WithTarget(w.ID())
		}
	}
	r.log.Warn("unknown action", "action", action, "target", target)
	return event.None()
}

func (r *Router) routeKey(k event.Key) event.Outcome {
	if r.Dialog != nil {
		out, done := r.Dialog.HandleKey(k)
		if done {
			r.Dialog = nil
		}
		return out
	}
	if r.Context != nil {
		return r.finishContext(r.Context.HandleKey(k))
	}
	if r.MenuBar.IsOpen() {
		r.syncMenus()
		return r.finishMenuBar(r.MenuBar.HandleKey(k))
	}

	if action := r.Keys.GetAction(k.String()); action != "" {
		r.log.Debug("key binding", "key", k.String(), "action", action)
		return r.RunAction(action, "")
	}

	w := r.WM.Focused()
	if w == nil {
		return r.desktopKey(k)
	}
	return w.Content().HandleKey(k).WithTarget(w.ID())
}

// desktopKey moves the icon selection when no window is showing.
func (r *Router) desktopKey(k event.Key) event.Outcome {
	d := r.Desktop
	if k.Mod != 0 || len(d.Icons) == 0 {
		return event.None()
	}
	switch k.Name {
	case "up", "left":
		d.Selected = max(d.Selected-1, 0)
	case "down", "right", "tab":
		d.Selected = min(d.Selected+1, len(d.Icons)-1)
	case "enter", "space":
		if d.Selected >= 0 {
			return event.Open(d.Icons[d.Selected].Open)
		}
		return event.None()
	default:
		return event.None()
	}
	return event.Refresh()
}

func (r *Router) finishContext(res ui.MenuResult) event.Outcome {
	target := r.Context.Target
	if res.Closed {
		r.Context = nil
	}
	if res.Action != "" {
		return r.RunAction(res.Action, target)
	}
	return event.Refresh()
}

func (r *Router) finishMenuBar(res ui.MenuResult) event.Outcome {
	if res.Action != "" {
		return r.RunAction(res.Action, "")
	}
	return event.Refresh()
}

// syncMenus refreshes the Window dropdown for the focused window.
func (r *Router) syncMenus() {
	r.MenuBar.SetItems(MenuWindow, windowBarItems(r.Keys, r.WM, r.WM.Focused()))
}

func (r *Router) openWindowMenu(w *wm.Window, x, y int) {
	r.MenuBar.Close()
	r.Context = ui.NewContextMenu(x, y, w.ID(), windowContextItems(r.Keys, w))
}

func (r *Router) routePointer(p event.Pointer) event.Outcome {
	if r.Dialog != nil {
		out, done := r.Dialog.HandlePointer(p, r.Screen)
		if done {
			r.Dialog = nil
		}
		return out
	}
	if r.Context != nil {
		return r.finishContext(r.Context.HandlePointer(p, r.Screen))
	}
	if r.MenuBar.IsOpen() {
		r.syncMenus()
		return r.finishMenuBar(r.MenuBar.HandlePointer(p, r.Screen))
	}

	if _, ok := r.WM.Dragging(); ok {
		switch p.Phase {
		case event.PhaseDrag, event.PhaseMove:
			r.WM.UpdateDrag(uv.Pos(p.X, p.Y))
		case event.PhaseRelease:
			r.WM.UpdateDrag(uv.Pos(p.X, p.Y))
			r.WM.EndDrag()
		case event.PhasePress, event.PhaseDoubleClick:
			// The release was lost; a new press ends the session.
			r.WM.EndDrag()
		}
		return event.Refresh()
	}
	if r.Desktop.DraggingIcon() {
		switch p.Phase {
		case event.PhaseDrag, event.PhaseMove:
			r.Desktop.DragIcon(uv.Pos(p.X, p.Y), r.WM.Workspace())
		case event.PhaseRelease:
			r.Desktop.DragIcon(uv.Pos(p.X, p.Y), r.WM.Workspace())
			r.endIconDrag()
		case event.PhasePress, event.PhaseDoubleClick:
			r.endIconDrag()
		}
		return event.Refresh()
	}

	if p.Phase != event.PhasePress && p.Phase != event.PhaseScroll {
		return event.None()
	}

	if p.Y == r.Screen.Min.Y {
		if i := r.MenuBar.TitleAt(p.X, p.Y); i >= 0 && p.Phase == event.PhasePress {
			r.Clicks.Reset()
			r.syncMenus()
			r.MenuBar.Open(i)
			return event.Refresh()
		}
		return event.None()
	}
	if b, ok := ui.TaskButtonAt(r.Taskbar, p.X, p.Y); ok {
		if p.Phase != event.PhasePress || p.Button != event.ButtonLeft {
			return event.None()
		}
		r.Clicks.Reset()
		r.WM.Restore(b.ID)
		r.WM.Focus(b.ID)
		return event.Refresh()
	}

	if hit := r.WM.HitTest(p.X, p.Y); hit.Window != nil {
		return r.windowPointer(hit, p)
	}
	return r.desktopPointer(p)
}

func (r *Router) windowPointer(hit wm.Hit, p event.Pointer) event.Outcome {
	w, id := hit.Window, hit.ID()
	pos := uv.Pos(p.X, p.Y)

	if p.Phase == event.PhaseScroll {
		delta := p.ScrollDelta()
		if delta == 0 {
			return event.None()
		}
		return w.Content().HandleScroll(delta*r.ScrollStep).WithTarget(id)
	}

	p = r.Clicks.Track(p, id+":"+hit.Part.String())
	if p.Button == event.ButtonRight && hit.Part == wm.PartTitle {
		r.WM.Focus(id)
		r.openWindowMenu(w, p.X, p.Y)
		return event.Refresh()
	}
	if hit.Part != wm.PartBody && p.Button != event.ButtonLeft {
		return event.None()
	}

	switch hit.Part {
	case wm.PartClose:
		return event.Close(id)
	case wm.PartMinimize:
		r.WM.Minimize(id)
	case wm.PartMaximize:
		r.WM.ToggleMaximize(id)
	case wm.PartResizeRight, wm.PartResizeBottom, wm.PartResizeCorner:
		mode, _ := hit.Part.DragMode()
		r.WM.Focus(id)
		r.WM.BeginDrag(id, mode, pos)
	case wm.PartTitle:
		if p.Phase == event.PhaseDoubleClick {
			r.WM.ToggleMaximize(id)
			return event.Refresh()
		}
		r.WM.Focus(id)
		r.WM.BeginDrag(id, wm.DragMove, pos)
	case wm.PartFrame:
		r.WM.Focus(id)
	case wm.PartBody:
		r.WM.Focus(id)
		origin := w.ContentRect().Min
		return w.Content().HandleClick(p.Local(origin.X, origin.Y)).WithTarget(id)
	}
	return event.Refresh()
}

func (r *Router) desktopPointer(p event.Pointer) event.Outcome {
	if p.Phase == event.PhaseScroll {
		return event.None()
	}
	d := r.Desktop
	i := d.IconAt(p.X, p.Y)
	target := "desktop"
	if i >= 0 {
		target = "icon:" + strconv.Itoa(i)
	}
	p = r.Clicks.Track(p, target)

	d.Selected = i
	switch {
	case p.Button == event.ButtonRight && i < 0:
		r.Context = ui.NewContextMenu(p.X, p.Y, "", desktopContextItems(r.Keys))
	case p.Button == event.ButtonLeft && i >= 0 && p.Phase == event.PhaseDoubleClick:
		return event.Open(d.Icons[i].Open)
	case p.Button == event.ButtonLeft && i >= 0:
		d.BeginIconDrag(i, uv.Pos(p.X, p.Y))
	}
	return event.Refresh()
}
