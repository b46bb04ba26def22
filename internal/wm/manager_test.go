package wm

import (
	"fmt"
	"math/rand/v2"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
)

func newTestManager(ws uv.Rectangle) *Manager {
	m := NewManager(ws, nil)
	n := 0
	m.NewID = func() string {
		n++
		return fmt.Sprintf("win-%02d", n)
	}
	return m
}

func at(x, y, w, h int) event.Descriptor {
	return event.Descriptor{X: x, Y: y, Width: w, Height: h, Positioned: true}
}

// checkInvariants verifies the properties every mutator must preserve.
func checkInvariants(t *testing.T, m *Manager) {
	t.Helper()
	seen := map[string]bool{}
	focused, visible := 0, 0
	for _, w := range m.windows {
		if seen[w.id] {
			t.Fatalf("duplicate id %s", w.id)
		}
		seen[w.id] = true
		if w.focused {
			focused++
			if w.Minimized() {
				t.Fatalf("minimized window %s is focused", w.id)
			}
		}
		if !w.Minimized() {
			visible++
		}
	}
	if focused > 1 {
		t.Fatalf("%d windows focused", focused)
	}
	if visible > 0 && focused != 1 {
		t.Fatalf("%d visible windows but %d focused", visible, focused)
	}
	for _, w := range m.windows {
		if !w.Minimized() {
			continue
		}
		r := w.rect
		c := r.Min.Add(r.Max).Div(2)
		for _, p := range []uv.Position{r.Min, c, r.Max.Sub(uv.Pos(1, 1)), {X: r.Max.X - 5, Y: r.Min.Y}} {
			if h := m.HitTest(p.X, p.Y); h.Window == w {
				t.Fatalf("minimized window %s hit at %v", w.id, p)
			}
		}
	}
}

func TestOpenFocusCloseScenario(t *testing.T) {
	m := newTestManager(uv.Rect(0, 0, 120, 40))

	a := m.Open(at(0, 0, 80, 24), nil)
	b := m.Open(event.Descriptor{Title: "B"}, nil)

	if f := m.Focused(); f == nil || f.ID() != b {
		t.Fatalf("focused = %v, want B", f)
	}
	order := m.PaintOrder()
	if len(order) != 2 || order[0].ID() != a || order[1].ID() != b {
		t.Fatalf("paint order wrong: %v", order)
	}

	// A point inside A that B now covers routes to B.
	br := m.Get(b).Rect()
	x, y := br.Min.X+5, br.Min.Y+5
	if !uv.Pos(x, y).In(m.Get(a).Rect()) {
		t.Fatalf("test point (%d,%d) not inside A", x, y)
	}
	if h := m.HitTest(x, y); h.ID() != b {
		t.Errorf("hit at (%d,%d) = %q, want B", x, y, h.ID())
	}

	if _, ok := m.Close(b); !ok {
		t.Fatal("close B failed")
	}
	if f := m.Focused(); f == nil || f.ID() != a {
		t.Errorf("focus after close = %v, want A", f)
	}
	checkInvariants(t, m)
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	m := newTestManager(uv.Rect(0, 1, 100, 30))
	var ids []string

	pick := func() string {
		if len(ids) == 0 {
			return "missing"
		}
		return ids[rng.IntN(len(ids))]
	}

	for step := range 1500 {
		switch rng.IntN(10) {
		case 0, 9:
			ids = append(ids, m.Open(event.Descriptor{Pinned: rng.IntN(4) == 0}, nil))
		case 1, 2:
			id := pick()
			if _, ok := m.Close(id); ok {
				for i, v := range ids {
					if v == id {
						ids = append(ids[:i], ids[i+1:]...)
						break
					}
				}
			}
		case 3:
			m.Focus(pick())
		case 4:
			m.Minimize(pick())
		case 5:
			m.Restore(pick())
		case 6:
			m.ToggleMaximize(pick())
		case 7:
			m.TogglePinned(pick())
		case 8:
			if rng.IntN(2) == 0 {
				m.FocusNext()
			} else {
				m.FocusPrev()
			}
		}
		if t.Failed() {
			t.Fatalf("failed at step %d", step)
		}
		checkInvariants(t, m)
	}
}

func TestMinimizeRemovesHits(t *testing.T) {
	m := newTestManager(uv.Rect(0, 0, 80, 24))
	id := m.Open(at(5, 3, 30, 10), nil)
	r := m.Get(id).Rect()

	m.Minimize(id)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if h := m.HitTest(x, y); h.Window != nil {
				t.Fatalf("hit %s at (%d,%d) after minimize", h.ID(), x, y)
			}
		}
	}
	if m.Focused() != nil {
		t.Error("no window should be focused")
	}
	if lm := m.LastMinimized(); lm == nil || lm.ID() != id {
		t.Errorf("LastMinimized = %v", lm)
	}

	m.Restore(id)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if h := m.HitTest(x, y); h.ID() != id {
				t.Fatalf("no hit at (%d,%d) after restore", x, y)
			}
		}
	}
	if f := m.Focused(); f == nil || f.ID() != id {
		t.Error("restored window should be focused")
	}
}

func TestDragMove(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		want   uv.Rectangle
	}{
		{"translate", 7, 3, uv.Rect(17, 8, 30, 10)},
		{"back", -4, -2, uv.Rect(6, 3, 30, 10)},
		{"clamped right", 200, 0, uv.Rect(50, 5, 30, 10)},
		{"clamped top", 0, -50, uv.Rect(10, 1, 30, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(uv.Rect(0, 1, 80, 23))
			id := m.Open(at(10, 5, 30, 10), nil)

			anchor := uv.Pos(15, 5)
			if h := m.HitTest(anchor.X, anchor.Y); h.Part != PartTitle {
				t.Fatalf("anchor part = %v, want title", h.Part)
			}
			if !m.BeginDrag(id, DragMove, anchor) {
				t.Fatal("BeginDrag failed")
			}
			m.UpdateDrag(anchor.Add(uv.Pos(tt.dx, tt.dy)))
			m.EndDrag()

			if got := m.Get(id).Rect(); got != tt.want {
				t.Errorf("rect = %v, want %v", got, tt.want)
			}
			if _, ok := m.Dragging(); ok {
				t.Error("drag still active")
			}
		})
	}
}

func TestDragResize(t *testing.T) {
	tests := []struct {
		name string
		mode DragMode
		to   uv.Position
		want uv.Rectangle
	}{
		{"right grows", DragResizeRight, uv.Pos(44, 9), uv.Rect(10, 5, 35, 10)},
		{"bottom grows", DragResizeBottom, uv.Pos(30, 16), uv.Rect(10, 5, 30, 12)},
		{"corner shrinks to minimum", DragResizeCorner, uv.Pos(0, 0), uv.Rect(10, 5, DefaultMinWidth, DefaultMinHeight)},
		{"right stops at workspace", DragResizeRight, uv.Pos(500, 9), uv.Rect(10, 5, 70, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(uv.Rect(0, 1, 80, 23))
			id := m.Open(at(10, 5, 30, 10), nil)
			m.BeginDrag(id, tt.mode, uv.Pos(39, 14))
			m.UpdateDrag(tt.to)
			if got := m.Get(id).Rect(); got != tt.want {
				t.Errorf("rect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDragEndsOnCloseMinimizeAndFocus(t *testing.T) {
	m := newTestManager(uv.Rect(0, 0, 100, 40))
	a := m.Open(at(0, 0, 30, 10), nil)
	b := m.Open(at(40, 0, 30, 10), nil)

	m.BeginDrag(b, DragMove, uv.Pos(45, 0))
	m.Close(b)
	if _, ok := m.Dragging(); ok {
		t.Error("close should end the drag")
	}

	m.BeginDrag(a, DragMove, uv.Pos(5, 0))
	m.Minimize(a)
	if _, ok := m.Dragging(); ok {
		t.Error("minimize should end the drag")
	}

	m.Restore(a)
	c := m.Open(at(50, 20, 30, 10), nil)
	m.BeginDrag(a, DragMove, uv.Pos(5, 0))
	m.Focus(c)
	if _, ok := m.Dragging(); ok {
		t.Error("focusing another window should end the drag")
	}
}

func TestMaximizedCannotDrag(t *testing.T) {
	m := newTestManager(uv.Rect(0, 1, 80, 22))
	id := m.Open(at(10, 5, 30, 10), nil)
	m.Maximize(id)
	if m.BeginDrag(id, DragMove, uv.Pos(12, 1)) {
		t.Error("maximized window started a drag")
	}
}

func TestHitTestParts(t *testing.T) {
	m := newTestManager(uv.Rect(0, 0, 80, 24))
	m.Open(at(10, 5, 30, 10), nil)

	tests := []struct {
		x, y int
		want Part
	}{
		{36, 5, PartClose},
		{38, 5, PartClose},
		{33, 5, PartMaximize},
		{30, 5, PartMinimize},
		{15, 5, PartTitle},
		{39, 5, PartTitle},
		{39, 8, PartResizeRight},
		{20, 14, PartResizeBottom},
		{39, 14, PartResizeCorner},
		{10, 8, PartFrame},
		{10, 14, PartFrame},
		{20, 10, PartBody},
		{5, 5, PartNone},
		{40, 5, PartNone},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d,%d", tt.x, tt.y), func(t *testing.T) {
			if got := m.HitTest(tt.x, tt.y).Part; got != tt.want {
				t.Errorf("part = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaximizedHasNoResizeBorder(t *testing.T) {
	m := newTestManager(uv.Rect(0, 1, 80, 22))
	id := m.Open(at(10, 5, 30, 10), nil)
	m.Maximize(id)

	r := m.Get(id).Rect()
	if r != m.Workspace() {
		t.Fatalf("maximized rect = %v, want %v", r, m.Workspace())
	}
	for _, p := range []uv.Position{{X: r.Max.X - 1, Y: 10}, {X: 20, Y: r.Max.Y - 1}, {X: r.Max.X - 1, Y: r.Max.Y - 1}} {
		if part := m.HitTest(p.X, p.Y).Part; part != PartFrame {
			t.Errorf("part at %v = %v, want frame", p, part)
		}
	}

	m.Unmaximize(id)
	if got := m.Get(id).Rect(); got != uv.Rect(10, 5, 30, 10) {
		t.Errorf("unmaximized rect = %v", got)
	}
}

func TestPinnedTier(t *testing.T) {
	m := newTestManager(uv.Rect(0, 0, 100, 40))
	pinned := m.Open(event.Descriptor{Width: 30, Height: 10, Positioned: true, Pinned: true}, nil)
	normal := m.Open(at(0, 0, 30, 10), nil)

	if f := m.Focused(); f.ID() != normal {
		t.Fatal("new window should take focus")
	}
	order := m.PaintOrder()
	if order[len(order)-1].ID() != pinned {
		t.Error("pinned window must paint last")
	}
	if h := m.HitTest(5, 5); h.ID() != pinned {
		t.Errorf("overlap hit = %q, want pinned window", h.ID())
	}

	// Maximizing the normal window leaves the pinned one above it.
	m.Maximize(normal)
	if h := m.HitTest(5, 5); h.ID() != pinned {
		t.Error("pinned window hidden by a maximized window")
	}

	// A pinned window may be maximized and keeps its tier.
	m.Maximize(pinned)
	if !m.Get(pinned).Maximized() || !m.Get(pinned).Pinned() {
		t.Error("pinned window should maximize and stay pinned")
	}

	m.SetPinned(pinned, false)
	m.Focus(normal)
	if h := m.HitTest(5, 5); h.ID() != normal {
		t.Error("unpinned window should follow focus order")
	}
}

func TestFocusCycle(t *testing.T) {
	m := newTestManager(uv.Rect(0, 0, 100, 40))
	a := m.Open(at(0, 0, 30, 10), nil)
	b := m.Open(at(30, 0, 30, 10), nil)
	c := m.Open(at(60, 0, 30, 10), nil)
	m.Minimize(b)

	m.FocusNext()
	if got := m.Focused().ID(); got != a {
		t.Errorf("next after c = %s, want a", got)
	}
	m.FocusNext()
	if got := m.Focused().ID(); got != c {
		t.Errorf("next after a = %s, want c (b is minimized)", got)
	}
	m.FocusPrev()
	if got := m.Focused().ID(); got != a {
		t.Errorf("prev after c = %s, want a", got)
	}
}

func TestMinimizeMaximizedRestoresMaximized(t *testing.T) {
	m := newTestManager(uv.Rect(0, 1, 80, 22))
	id := m.Open(at(10, 5, 30, 10), nil)
	m.Maximize(id)
	m.Minimize(id)
	m.Restore(id)
	w := m.Get(id)
	if !w.Maximized() || w.Rect() != m.Workspace() {
		t.Errorf("state = %v rect = %v", w.State(), w.Rect())
	}
}

func TestSetBoundsClamps(t *testing.T) {
	m := newTestManager(uv.Rect(0, 0, 100, 40))
	a := m.Open(at(50, 20, 30, 10), nil)
	b := m.Open(at(0, 0, 30, 10), nil)
	m.Maximize(b)

	m.SetBounds(uv.Rect(0, 1, 60, 24))

	if got := m.Get(a).Rect(); got != uv.Rect(30, 15, 30, 10) {
		t.Errorf("a = %v", got)
	}
	if got := m.Get(b).Rect(); got != uv.Rect(0, 1, 60, 24) {
		t.Errorf("maximized b = %v", got)
	}
}

func TestOpenClampsSize(t *testing.T) {
	m := newTestManager(uv.Rect(0, 0, 50, 20))
	small := m.Open(at(0, 0, 3, 1), nil)
	big := m.Open(at(0, 0, 300, 100), nil)

	if got := m.Get(small).Rect().Size(); got != uv.Pos(DefaultMinWidth, DefaultMinHeight) {
		t.Errorf("small size = %v", got)
	}
	if got := m.Get(big).Rect(); got != uv.Rect(0, 0, 50, 20) {
		t.Errorf("big rect = %v", got)
	}
}

type sizeRecorder struct {
	NopContent
	calls [][2]int
}

func (s *sizeRecorder) Resize(cols, rows int) error {
	s.calls = append(s.calls, [2]int{cols, rows})
	return nil
}

func TestSyncSizes(t *testing.T) {
	m := newTestManager(uv.Rect(0, 0, 100, 40))
	rec := &sizeRecorder{}
	id := m.Open(at(0, 0, 30, 10), rec)

	if err := m.SyncSizes(); err != nil {
		t.Fatal(err)
	}
	if err := m.SyncSizes(); err != nil {
		t.Fatal(err)
	}
	m.Maximize(id)
	if err := m.SyncSizes(); err != nil {
		t.Fatal(err)
	}

	want := [][2]int{{28, 8}, {98, 38}}
	if fmt.Sprint(rec.calls) != fmt.Sprint(want) {
		t.Errorf("resize calls = %v, want %v", rec.calls, want)
	}
}

type titled struct {
	NopContent
	title string
}

func (t titled) Title() string { return t.title }

func TestWindowTitle(t *testing.T) {
	m := newTestManager(uv.Rect(0, 0, 100, 40))
	plain := m.Open(event.Descriptor{Title: "Notes"}, nil)
	dynamic := m.Open(event.Descriptor{Title: "Terminal"}, titled{title: "vim"})
	empty := m.Open(event.Descriptor{Title: "Shell"}, titled{})

	m.SetTitle(plain, "Renamed")
	for id, want := range map[string]string{plain: "Renamed", dynamic: "vim", empty: "Shell"} {
		if got := m.Get(id).Title(); got != want {
			t.Errorf("title = %q, want %q", got, want)
		}
	}
}
