package wm

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// DragMode is what a drag session changes.
type DragMode uint8

// Drag modes.
const (
	DragMove DragMode = iota
	DragResizeRight
	DragResizeBottom
	DragResizeCorner
)

func (d DragMode) String() string {
	switch d {
	case DragResizeRight:
		return "resize-right"
	case DragResizeBottom:
		return "resize-bottom"
	case DragResizeCorner:
		return "resize-corner"
	}
	return "move"
}

// DragSession is an active move or resize.
type DragSession struct {
	ID     string
	Mode   DragMode
	Anchor uv.Position
	Orig   uv.Rectangle
}

// BeginDrag starts a session on id anchored at the pointer position. The
// window is focused first. Maximized and minimized windows cannot be dragged.
func (m *Manager) BeginDrag(id string, mode DragMode, anchor uv.Position) bool {
	w := m.Get(id)
	if w == nil || w.Minimized() || w.Maximized() {
		return false
	}
	m.Focus(id)
	m.drag = &DragSession{ID: id, Mode: mode, Anchor: anchor, Orig: w.rect}
	return true
}

// UpdateDrag applies the pointer position to the session's window.
func (m *Manager) UpdateDrag(pos uv.Position) {
	if m.drag == nil {
		return
	}
	w := m.Get(m.drag.ID)
	if w == nil {
		m.drag = nil
		return
	}
	d := m.drag
	delta := pos.Sub(d.Anchor)
	ws := m.workspace

	switch d.Mode {
	case DragMove:
		w.rect = m.clampRect(w, d.Orig.Add(delta))
	case DragResizeRight, DragResizeBottom, DragResizeCorner:
		width, height := d.Orig.Dx(), d.Orig.Dy()
		if d.Mode != DragResizeBottom {
			width = min(max(width+delta.X, w.minW), max(ws.Max.X-d.Orig.Min.X, w.minW))
		}
		if d.Mode != DragResizeRight {
			height = min(max(height+delta.Y, w.minH), max(ws.Max.Y-d.Orig.Min.Y, w.minH))
		}
		w.rect = uv.Rect(d.Orig.Min.X, d.Orig.Min.Y, width, height)
	}
}

// EndDrag finishes the active session.
func (m *Manager) EndDrag() { m.drag = nil }

// Dragging returns the active session.
func (m *Manager) Dragging() (DragSession, bool) {
	if m.drag == nil {
		return DragSession{}, false
	}
	return *m.drag, true
}

func (m *Manager) endDragOn(id string) {
	if m.drag != nil && m.drag.ID == id {
		m.drag = nil
	}
}
