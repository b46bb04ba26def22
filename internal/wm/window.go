package wm

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Size limits in cells.
const (
	DefaultWidth     = 64
	DefaultHeight    = 18
	DefaultMinWidth  = 20
	DefaultMinHeight = 6
	FloorMinWidth    = 10
	FloorMinHeight   = 3
)

// State is a window's display state.
type State uint8

// Window states.
const (
	StateNormal State = iota
	StateMinimized
	StateMaximized
)

func (s State) String() string {
	switch s {
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	}
	return "normal"
}

// Window is a framed rectangle owning one Content. Its fields change only
// through Manager methods.
type Window struct {
	id      string
	title   string
	rect    uv.Rectangle
	minW    int
	minH    int
	state   State
	focused bool
	pinned  bool
	content Content

	// restore is the rectangle to return to after a maximize.
	restore uv.Rectangle
	// wasMax records that a minimized window was maximized before.
	wasMax bool

	created   uint64
	focusSeq  uint64
	minSeq    uint64
	synced    uv.Rectangle
	hasSynced bool
}

func (w *Window) ID() string { return w.id }

// Title returns the content's own title when it has one, else the window's.
func (w *Window) Title() string {
	if t, ok := w.content.(Titler); ok {
		if s := t.Title(); s != "" {
			return s
		}
	}
	return w.title
}

func (w *Window) Rect() uv.Rectangle        { return w.rect }
func (w *Window) RestoreRect() uv.Rectangle { return w.restore }
func (w *Window) State() State              { return w.state }
func (w *Window) Minimized() bool           { return w.state == StateMinimized }
func (w *Window) Maximized() bool           { return w.state == StateMaximized }
func (w *Window) Focused() bool             { return w.focused }
func (w *Window) Pinned() bool              { return w.pinned }
func (w *Window) Content() Content          { return w.content }

// MinSize returns the smallest size the window accepts.
func (w *Window) MinSize() (width, height int) { return w.minW, w.minH }

// ContentRect is the area inside the frame.
func (w *Window) ContentRect() uv.Rectangle {
	return ContentRect(w.rect)
}

// ContentRect returns the area inside a frame occupying r.
func ContentRect(r uv.Rectangle) uv.Rectangle {
	return uv.Rect(r.Min.X+1, r.Min.Y+1, max(r.Dx()-2, 0), max(r.Dy()-2, 0))
}

// Buttons returns the title bar button rectangles for a frame occupying r.
// A button that does not fit is returned as the empty rectangle.
func Buttons(r uv.Rectangle) (minimize, maximize, closeBtn uv.Rectangle) {
	button := func(offset int) uv.Rectangle {
		x := r.Max.X - offset
		// Keep the top-left corner and one title cell free.
		if x < r.Min.X+2 {
			return uv.Rectangle{}
		}
		return uv.Rect(x, r.Min.Y, 3, 1)
	}
	return button(10), button(7), button(4)
}
