package wm

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Part is the region of a window under the pointer.
type Part uint8

// Window parts.
const (
	PartNone Part = iota
	PartBody
	// PartFrame is frame not used for resizing: the left and top-left edges.
	PartFrame
	PartTitle
	PartMinimize
	PartMaximize
	PartResizeRight
	PartResizeBottom
	PartResizeCorner
	PartClose
)

var partNames = [...]string{
	"none", "body", "frame", "title", "minimize", "maximize",
	"resize-right", "resize-bottom", "resize-corner", "close",
}

func (p Part) String() string {
	if int(p) < len(partNames) {
		return partNames[p]
	}
	return "unknown"
}

// DragMode returns the resize mode of a border part.
func (p Part) DragMode() (DragMode, bool) {
	switch p {
	case PartResizeRight:
		return DragResizeRight, true
	case PartResizeBottom:
		return DragResizeBottom, true
	case PartResizeCorner:
		return DragResizeCorner, true
	}
	return DragMove, false
}

// Hit is the result of a hit test.
type Hit struct {
	Window *Window
	Part   Part
}

// ID returns the hit window's id, or "".
func (h Hit) ID() string {
	if h.Window == nil {
		return ""
	}
	return h.Window.id
}

// HitTest finds the topmost visible window at (x, y) and the part under the
// pointer.
func (m *Manager) HitTest(x, y int) Hit {
	order := m.PaintOrder()
	for i := len(order) - 1; i >= 0; i-- {
		w := order[i]
		if p := partAt(w, uv.Pos(x, y)); p != PartNone {
			return Hit{Window: w, Part: p}
		}
	}
	return Hit{}
}

// partAt ranks overlapping regions: close, resize border, minimize and
// maximize, title, body.
func partAt(w *Window, pos uv.Position) Part {
	r := w.rect
	if !pos.In(r) {
		return PartNone
	}
	minimize, maximize, closeBtn := Buttons(r)
	if pos.In(closeBtn) {
		return PartClose
	}

	right := pos.X == r.Max.X-1
	bottom := pos.Y == r.Max.Y-1
	if !w.Maximized() {
		switch {
		case right && bottom:
			return PartResizeCorner
		case right && pos.Y > r.Min.Y:
			return PartResizeRight
		case bottom && pos.X > r.Min.X:
			return PartResizeBottom
		}
	}

	switch {
	case pos.In(minimize):
		return PartMinimize
	case pos.In(maximize):
		return PartMaximize
	case pos.Y == r.Min.Y:
		return PartTitle
	case pos.In(w.ContentRect()):
		return PartBody
	}
	return PartFrame
}
