// Package wm keeps the ordered collection of windows: geometry, z-order, pin
// tiers, focus, minimize and maximize state, drag sessions and hit testing.
//
// List order is z-order within a pin tier: the last window is the topmost.
// Pinned windows always paint after every unpinned one.
package wm

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"

	"charm.land/log/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
)

// Manager owns every window. All mutation goes through its methods.
type Manager struct {
	windows   []*Window
	workspace uv.Rectangle
	seq       uint64
	drag      *DragSession
	log       *log.Logger

	// NewID generates window ids.
	NewID func() string
}

// NewManager returns an empty manager placing windows inside workspace.
func NewManager(workspace uv.Rectangle, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		workspace: workspace,
		log:       logger,
		NewID:     uuid.NewString,
	}
}

func (m *Manager) next() uint64 {
	m.seq++
	return m.seq
}

// Workspace returns the rectangle windows are kept in.
func (m *Manager) Workspace() uv.Rectangle { return m.workspace }

// Len returns the number of windows, minimized ones included.
func (m *Manager) Len() int { return len(m.windows) }

// Windows returns every window in list order.
func (m *Manager) Windows() []*Window { return slices.Clone(m.windows) }

// Get returns the window with the given id.
func (m *Manager) Get(id string) *Window {
	if i := m.index(id); i >= 0 {
		return m.windows[i]
	}
	return nil
}

func (m *Manager) index(id string) int {
	return slices.IndexFunc(m.windows, func(w *Window) bool { return w.id == id })
}

// Focused returns the focused window, or nil.
func (m *Manager) Focused() *Window {
	for _, w := range m.windows {
		if w.focused {
			return w
		}
	}
	return nil
}

// Visible returns the number of windows that are not minimized.
func (m *Manager) Visible() int {
	n := 0
	for _, w := range m.windows {
		if !w.Minimized() {
			n++
		}
	}
	return n
}

// PaintOrder returns the non-minimized windows bottom to top: the unpinned
// tier in list order followed by the pinned tier in list order.
func (m *Manager) PaintOrder() []*Window {
	out := make([]*Window, 0, len(m.windows))
	for _, pinned := range []bool{false, true} {
		for _, w := range m.windows {
			if w.pinned == pinned && !w.Minimized() {
				out = append(out, w)
			}
		}
	}
	return out
}

// Open adds a window for content described by d, places it, and focuses it.
func (m *Manager) Open(d event.Descriptor, content Content) string {
	if content == nil {
		content = NopContent{}
	}
	w := &Window{
		id:      m.NewID(),
		title:   d.Title,
		minW:    DefaultMinWidth,
		minH:    DefaultMinHeight,
		pinned:  d.Pinned,
		content: content,
		created: m.next(),
	}
	width, height := d.Width, d.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	width, height = m.clampSize(w, width, height)

	var r uv.Rectangle
	if d.Positioned {
		r = m.clampRect(w, uv.Rect(d.X, d.Y, width, height))
	} else {
		r = m.place(width, height)
	}
	w.rect, w.restore = r, r

	m.windows = append(m.windows, w)
	m.Focus(w.id)
	m.log.Debug("window opened", "id", w.id[:min(8, len(w.id))], "title", d.Title, "rect", r)
	return w.id
}

// place returns the first cascade slot that overlaps no visible window, or a
// staggered position when every slot is taken.
func (m *Manager) place(width, height int) uv.Rectangle {
	ws := m.workspace
	for i := 0; ; i++ {
		r := uv.Rect(ws.Min.X+2*i, ws.Min.Y+i, width, height)
		if !r.In(ws) {
			break
		}
		if !slices.ContainsFunc(m.windows, func(o *Window) bool {
			return !o.Minimized() && o.rect.Overlaps(r)
		}) {
			return r
		}
	}
	n := len(m.windows)
	spanX := max(ws.Dx()-width+1, 1)
	spanY := max(ws.Dy()-height+1, 1)
	return uv.Rect(ws.Min.X+(2*n)%spanX, ws.Min.Y+n%spanY, width, height)
}

func (m *Manager) clampSize(w *Window, width, height int) (int, int) {
	width = max(min(max(width, w.minW), m.workspace.Dx()), FloorMinWidth)
	height = max(min(max(height, w.minH), m.workspace.Dy()), FloorMinHeight)
	return width, height
}

// clampRect resizes r to the window's limits and moves it fully inside the
// workspace where it fits.
func (m *Manager) clampRect(w *Window, r uv.Rectangle) uv.Rectangle {
	ws := m.workspace
	width, height := m.clampSize(w, r.Dx(), r.Dy())
	x := min(max(r.Min.X, ws.Min.X), max(ws.Max.X-width, ws.Min.X))
	y := min(max(r.Min.Y, ws.Min.Y), max(ws.Max.Y-height, ws.Min.Y))
	return uv.Rect(x, y, width, height)
}

// Close removes a window and returns its content for the caller to release.
// Focus moves to the most recently focused visible window.
func (m *Manager) Close(id string) (Content, bool) {
	i := m.index(id)
	if i < 0 {
		return nil, false
	}
	w := m.windows[i]
	m.windows = slices.Delete(m.windows, i, i+1)
	m.endDragOn(id)
	if w.focused {
		w.focused = false
		m.focusRecent()
	}
	m.log.Debug("window closed", "id", id[:min(8, len(id))])
	return w.content, true
}

// focusRecent focuses the visible window with the highest focus sequence.
func (m *Manager) focusRecent() {
	var best *Window
	for _, w := range m.windows {
		if !w.Minimized() && (best == nil || w.focusSeq > best.focusSeq) {
			best = w
		}
	}
	if best != nil {
		m.Focus(best.id)
	}
}

// Focus makes id the focused, topmost window of its tier. A minimized window
// is restored first. It reports whether the window exists.
func (m *Manager) Focus(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	w := m.windows[i]
	if w.Minimized() {
		m.unminimize(w)
	} else if w.focused {
		return true
	}
	for _, o := range m.windows {
		o.focused = false
	}
	w.focused = true
	w.focusSeq = m.next()
	m.windows = append(slices.Delete(m.windows, i, i+1), w)
	if m.drag != nil && m.drag.ID != id {
		m.drag = nil
	}
	return true
}

// FocusNext focuses the visible window created after the focused one,
// wrapping around.
func (m *Manager) FocusNext() { m.cycle(1) }

// FocusPrev focuses the visible window created before the focused one,
// wrapping around.
func (m *Manager) FocusPrev() { m.cycle(-1) }

func (m *Manager) cycle(dir int) {
	var visible []*Window
	for _, w := range m.windows {
		if !w.Minimized() {
			visible = append(visible, w)
		}
	}
	if len(visible) == 0 {
		return
	}
	slices.SortFunc(visible, func(a, b *Window) int { return cmp.Compare(a.created, b.created) })
	cur := slices.IndexFunc(visible, func(w *Window) bool { return w.focused })
	next := 0
	if cur >= 0 {
		next = (cur + dir + len(visible)) % len(visible)
	}
	m.Focus(visible[next].id)
}

// Minimize hides a window; focus moves to the most recently focused visible
// window.
func (m *Manager) Minimize(id string) bool {
	w := m.Get(id)
	if w == nil || w.Minimized() {
		return false
	}
	w.wasMax = w.Maximized()
	w.state = StateMinimized
	w.minSeq = m.next()
	m.endDragOn(id)
	if w.focused {
		w.focused = false
		m.focusRecent()
	}
	return true
}

func (m *Manager) unminimize(w *Window) {
	w.state = StateNormal
	if w.wasMax {
		w.state = StateMaximized
		w.rect = m.workspace
	}
	w.wasMax = false
}

// Restore shows a minimized window again and focuses it.
func (m *Manager) Restore(id string) bool {
	w := m.Get(id)
	if w == nil || !w.Minimized() {
		return false
	}
	return m.Focus(id)
}

// LastMinimized returns the most recently minimized window, or nil.
func (m *Manager) LastMinimized() *Window {
	var best *Window
	for _, w := range m.windows {
		if w.Minimized() && (best == nil || w.minSeq > best.minSeq) {
			best = w
		}
	}
	return best
}

// Minimized returns the minimized windows in the order they were minimized.
func (m *Manager) Minimized() []*Window {
	var out []*Window
	for _, w := range m.windows {
		if w.Minimized() {
			out = append(out, w)
		}
	}
	slices.SortFunc(out, func(a, b *Window) int { return cmp.Compare(a.minSeq, b.minSeq) })
	return out
}

// Maximize fills the workspace, remembering the current rectangle.
func (m *Manager) Maximize(id string) bool {
	w := m.Get(id)
	if w == nil || w.Maximized() {
		return false
	}
	if w.Minimized() {
		m.Focus(id)
		if w.Maximized() {
			return true
		}
	}
	w.restore = w.rect
	w.rect = m.workspace
	w.state = StateMaximized
	m.endDragOn(id)
	return true
}

// Unmaximize returns a maximized window to its saved rectangle.
func (m *Manager) Unmaximize(id string) bool {
	w := m.Get(id)
	if w == nil || !w.Maximized() {
		return false
	}
	w.state = StateNormal
	w.rect = m.clampRect(w, w.restore)
	return true
}

// ToggleMaximize maximizes or unmaximizes id.
func (m *Manager) ToggleMaximize(id string) bool {
	if w := m.Get(id); w != nil && w.Maximized() {
		return m.Unmaximize(id)
	}
	return m.Maximize(id)
}

// SetPinned moves a window into or out of the always-on-top tier.
func (m *Manager) SetPinned(id string, pinned bool) bool {
	w := m.Get(id)
	if w == nil {
		return false
	}
	w.pinned = pinned
	return true
}

// TogglePinned flips the pin flag of id.
func (m *Manager) TogglePinned(id string) bool {
	if w := m.Get(id); w != nil {
		return m.SetPinned(id, !w.pinned)
	}
	return false
}

// SetTitle renames a window.
func (m *Manager) SetTitle(id, title string) bool {
	w := m.Get(id)
	if w == nil {
		return false
	}
	w.title = title
	return true
}

// SetMinSize changes a window's size limits, never below the floor.
func (m *Manager) SetMinSize(id string, width, height int) bool {
	w := m.Get(id)
	if w == nil {
		return false
	}
	w.minW = max(width, FloorMinWidth)
	w.minH = max(height, FloorMinHeight)
	if !w.Maximized() {
		w.rect = m.clampRect(w, w.rect)
	}
	return true
}

// SetBounds changes the workspace and clamps every window into it.
// Maximized windows refill the new workspace.
func (m *Manager) SetBounds(ws uv.Rectangle) {
	m.workspace = ws
	for _, w := range m.windows {
		if w.wasMax || w.Maximized() {
			w.restore = m.clampRect(w, w.restore)
		}
		if w.Maximized() {
			w.rect = ws
			continue
		}
		w.rect = m.clampRect(w, w.rect)
	}
	if m.drag != nil {
		if w := m.Get(m.drag.ID); w != nil {
			m.drag.Orig = w.rect
		}
	}
}

// SyncSizes resizes every content whose area differs from the size it was
// last given. Errors from individual contents are joined.
func (m *Manager) SyncSizes() error {
	var errs []error
	for _, w := range m.windows {
		area := w.ContentRect()
		if w.hasSynced && area.Size() == w.synced.Size() {
			continue
		}
		w.synced, w.hasSynced = area, true
		r, ok := w.content.(Resizer)
		if !ok || area.Empty() {
			continue
		}
		if err := r.Resize(area.Dx(), area.Dy()); err != nil {
			errs = append(errs, fmt.Errorf("resize %q: %w", w.Title(), err))
		}
	}
	return errors.Join(errs...)
}
