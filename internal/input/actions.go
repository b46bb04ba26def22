package input

import (
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/event"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
)

// ActionHandler runs a named action. target is the window the action applies
// to; empty means the focused window.
type ActionHandler func(r *Router, target string) event.Outcome

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

// registerHandlers registers all action handlers
func (d *ActionDispatcher) registerHandlers() {
	// Desktop actions
	d.Register(config.ActionQuit, handleQuit)
	d.Register(config.ActionToggleMenu, handleToggleMenu)
	d.Register(config.ActionNewTerminal, openKind(event.KindTerminal))
	d.Register(config.ActionOpenLog, openKind(event.KindLog))
	d.Register(config.ActionShowHelp, openKind(event.KindHelp))
	d.Register(ActionAbout, openKind(event.KindAbout))

	// Window actions
	d.Register(config.ActionCloseWindow, handleCloseWindow)
	d.Register(config.ActionNextWindow, handleNextWindow)
	d.Register(config.ActionPrevWindow, handlePrevWindow)
	d.Register(config.ActionMinimize, handleMinimizeWindow)
	d.Register(config.ActionMaximize, handleMaximizeWindow)
	d.Register(config.ActionTogglePin, handleTogglePin)
	d.Register(config.ActionRestoreLast, handleRestoreLast)
	d.Register(config.ActionWindowMenu, handleWindowMenu)
}

// Register adds or replaces the handler for action.
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Dispatch runs action. ok is false when no handler is registered.
func (d *ActionDispatcher) Dispatch(action string, r *Router, target string) (out event.Outcome, ok bool) {
	handler, ok := d.handlers[action]
	if !ok {
		return event.None(), false
	}
	return handler(r, target), true
}

func handleQuit(*Router, string) event.Outcome {
	return event.Confirm("Quit "+config.AppName+"? All terminals will be closed.", event.Quit())
}

func handleToggleMenu(r *Router, _ string) event.Outcome {
	r.Context = nil
	r.syncMenus()
	r.MenuBar.Toggle()
	return event.Refresh()
}

func openKind(kind string) ActionHandler {
	return func(*Router, string) event.Outcome {
		return event.Open(event.Descriptor{Kind: kind})
	}
}

// windowFor resolves an action target.
func (r *Router) windowFor(target string) *wm.Window {
	if target != "" {
		return r.WM.Get(target)
	}
	return r.WM.Focused()
}

func handleCloseWindow(r *Router, target string) event.Outcome {
	w := r.windowFor(target)
	if w == nil {
		return event.None()
	}
	return event.Close(w.ID())
}

func handleNextWindow(r *Router, _ string) event.Outcome {
	r.WM.FocusNext()
	return event.Refresh()
}

func handlePrevWindow(r *Router, _ string) event.Outcome {
	r.WM.FocusPrev()
	return event.Refresh()
}

// windowOp adapts a Manager mutator to an action handler.
func windowOp(op func(m *wm.Manager, id string) bool) ActionHandler {
	return func(r *Router, target string) event.Outcome {
		w := r.windowFor(target)
		if w == nil || !op(r.WM, w.ID()) {
			return event.None()
		}
		return event.Refresh()
	}
}

var (
	handleMinimizeWindow = windowOp((*wm.Manager).Minimize)
	handleMaximizeWindow = windowOp((*wm.Manager).ToggleMaximize)
	handleTogglePin      = windowOp((*wm.Manager).TogglePinned)
)

func handleRestoreLast(r *Router, _ string) event.Outcome {
	w := r.WM.LastMinimized()
	if w == nil {
		return event.None()
	}
	r.WM.Restore(w.ID())
	return event.Refresh()
}

func handleWindowMenu(r *Router, target string) event.Outcome {
	w := r.windowFor(target)
	if w == nil {
		return event.None()
	}
	rect := w.Rect()
	r.openWindowMenu(w, rect.Min.X+1, rect.Min.Y+1)
	return event.Refresh()
}
