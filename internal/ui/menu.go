package ui

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
)

// MenuResult reports what a menu did with an event.
type MenuResult struct {
	// Action is the chosen item's action, empty when nothing was chosen.
	Action string
	// Closed is set when the menu should go away.
	Closed bool
}

// List is a vertical list of menu items with a selection cursor.
type List struct {
	Items    []event.MenuItem
	Selected int
}

// NewList returns a list with the first selectable item selected.
func NewList(items []event.MenuItem) List {
	l := List{Items: items, Selected: -1}
	l.Move(1)
	return l
}

// Move moves the selection by delta selectable items, wrapping around.
func (l *List) Move(delta int) {
	n := len(l.Items)
	if n == 0 {
		return
	}
	step := 1
	if delta < 0 {
		step, delta = -1, -delta
	}
	i := l.Selected
	for range delta {
		for range n {
			i = (i + step + n) % n
			if l.Items[i].Selectable() {
				break
			}
		}
	}
	if i >= 0 && l.Items[i].Selectable() {
		l.Selected = i
	}
}

// Current returns the selected item.
func (l *List) Current() (event.MenuItem, bool) {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return event.MenuItem{}, false
	}
	it := l.Items[l.Selected]
	return it, it.Selectable()
}

// Size returns the framed size of the list.
func (l *List) Size() (w, h int) {
	labels, hints := 0, 0
	for _, it := range l.Items {
		labels = max(labels, TextWidth(it.Label))
		hints = max(hints, TextWidth(it.Hint))
	}
	w = labels + 4
	if hints > 0 {
		w += hints + 2
	}
	return w, len(l.Items) + 2
}

// ItemAt returns the index of the item row at (x, y) inside a list drawn
// in r, or -1.
func (l *List) ItemAt(r uv.Rectangle, x, y int) int {
	if x <= r.Min.X || x >= r.Max.X-1 {
		return -1
	}
	i := y - r.Min.Y - 1
	if i < 0 || i >= len(l.Items) {
		return -1
	}
	return i
}

// handleKey implements the navigation shared by dropdowns and context menus.
func (l *List) handleKey(k event.Key) (MenuResult, bool) {
	switch k.Name {
	case "up":
		l.Move(-1)
	case "down", "tab":
		l.Move(1)
	case "enter", "space":
		if it, ok := l.Current(); ok {
			return MenuResult{Action: it.Action, Closed: true}, true
		}
	case "esc", "f10":
		return MenuResult{Closed: true}, true
	default:
		return MenuResult{}, false
	}
	return MenuResult{}, true
}

// Draw paints the list with a single-line box in r.
func (l *List) Draw(scr uv.Screen, r uv.Rectangle, th *Theme) {
	Shadow(scr, r, th.Shadow)
	Fill(scr, r, " ", th.Menu)
	DrawBox(scr, r, th.Glyphs.Normal, th.Menu)

	inner := r.Dx() - 2
	for i, it := range l.Items {
		y := r.Min.Y + 1 + i
		if it.Separator {
			HLine(scr, r.Min.X+1, r.Max.X-1, y, th.Glyphs.Separator, th.Menu)
			continue
		}
		st := th.Menu
		switch {
		case !it.Selectable():
			st = th.MenuDisabled
		case i == l.Selected:
			st = th.MenuSelected
		}
		HLine(scr, r.Min.X+1, r.Max.X-1, y, " ", st)
		DrawText(scr, r.Min.X+2, y, inner-2, it.Label, st)
		if it.Hint != "" {
			DrawTextRight(scr, r.Max.X-2, y, it.Hint, st)
		}
	}
}

// Menu is one menu bar entry.
type Menu struct {
	Title string
	Items []event.MenuItem
}

// MenuBar is the global menu on the top row with one open dropdown at most.
type MenuBar struct {
	Menus  []Menu
	active int
	list   List
}

// NewMenuBar returns a closed menu bar.
func NewMenuBar(menus ...Menu) *MenuBar {
	return &MenuBar{Menus: menus, active: -1}
}

// IsOpen reports whether a dropdown is showing.
func (b *MenuBar) IsOpen() bool { return b.active >= 0 }

// Active returns the index of the open menu, or -1.
func (b *MenuBar) Active() int { return b.active }

// Open shows dropdown i.
func (b *MenuBar) Open(i int) {
	if i < 0 || i >= len(b.Menus) {
		return
	}
	b.active = i
	b.list = NewList(b.Menus[i].Items)
}

// Close hides the dropdown.
func (b *MenuBar) Close() { b.active = -1 }

// Toggle opens the first menu, or closes the open one.
func (b *MenuBar) Toggle() {
	if b.IsOpen() {
		b.Close()
		return
	}
	b.Open(0)
}

// SetItems replaces the items of the menu titled title.
func (b *MenuBar) SetItems(title string, items []event.MenuItem) {
	for i := range b.Menus {
		if b.Menus[i].Title == title {
			b.Menus[i].Items = items
			if b.active == i {
				sel := b.list.Selected
				b.list = NewList(items)
				if sel < len(items) && items[sel].Selectable() {
					b.list.Selected = sel
				}
			}
		}
	}
}

// titleRect returns the cells of menu title i on row 0.
func (b *MenuBar) titleRect(i int) uv.Rectangle {
	x := 1
	for j := range i {
		x += TextWidth(b.Menus[j].Title) + 2
	}
	return uv.Rect(x, 0, TextWidth(b.Menus[i].Title)+2, 1)
}

// TitleAt returns the menu whose title covers (x, y), or -1.
func (b *MenuBar) TitleAt(x, y int) int {
	for i := range b.Menus {
		if uv.Pos(x, y).In(b.titleRect(i)) {
			return i
		}
	}
	return -1
}

// DropdownRect returns where the open dropdown is drawn, kept inside bounds.
func (b *MenuBar) DropdownRect(bounds uv.Rectangle) uv.Rectangle {
	if !b.IsOpen() {
		return uv.Rectangle{}
	}
	w, h := b.list.Size()
	x := b.titleRect(b.active).Min.X
	x = max(min(x, bounds.Max.X-w), bounds.Min.X)
	return uv.Rect(x, 1, w, h)
}

// HandleKey navigates the open dropdown: up and down move the selection,
// left and right switch menus.
func (b *MenuBar) HandleKey(k event.Key) MenuResult {
	switch k.Name {
	case "left":
		b.Open((b.active - 1 + len(b.Menus)) % len(b.Menus))
		return MenuResult{}
	case "right":
		b.Open((b.active + 1) % len(b.Menus))
		return MenuResult{}
	}
	res, _ := b.list.handleKey(k)
	if res.Closed {
		b.Close()
	}
	return res
}

// HandlePointer routes a pointer event while the dropdown is open. Every
// event is consumed.
func (b *MenuBar) HandlePointer(p event.Pointer, bounds uv.Rectangle) MenuResult {
	if i := b.TitleAt(p.X, p.Y); i >= 0 {
		switch {
		case p.IsPress() && i == b.active:
			b.Close()
			return MenuResult{Closed: true}
		case p.IsPress() || (p.Phase == event.PhaseMove && i != b.active):
			b.Open(i)
		}
		return MenuResult{}
	}

	r := b.DropdownRect(bounds)
	idx := b.list.ItemAt(r, p.X, p.Y)
	switch p.Phase {
	case event.PhaseMove, event.PhaseDrag:
		if idx >= 0 && b.list.Items[idx].Selectable() {
			b.list.Selected = idx
		}
	case event.PhasePress, event.PhaseDoubleClick, event.PhaseRelease:
		if !uv.Pos(p.X, p.Y).In(r) {
			if p.Phase == event.PhaseRelease {
				return MenuResult{}
			}
			b.Close()
			return MenuResult{Closed: true}
		}
		if p.Phase == event.PhaseRelease || idx < 0 || !b.list.Items[idx].Selectable() {
			return MenuResult{}
		}
		b.Close()
		return MenuResult{Action: b.list.Items[idx].Action, Closed: true}
	}
	return MenuResult{}
}

// Draw paints the bar on row 0 with right-aligned status text.
func (b *MenuBar) Draw(scr uv.Screen, width int, right string, th *Theme) {
	HLine(scr, 0, width, 0, " ", th.MenuBar)
	for i, m := range b.Menus {
		r := b.titleRect(i)
		st := th.MenuBar
		if i == b.active {
			st = th.MenuBarActive
		}
		DrawText(scr, r.Min.X, 0, r.Dx(), " "+m.Title+" ", st)
	}
	if right != "" {
		DrawTextRight(scr, width-1, 0, right, th.MenuBar)
	}
}

// DrawDropdown paints the open dropdown.
func (b *MenuBar) DrawDropdown(scr uv.Screen, th *Theme) {
	if !b.IsOpen() {
		return
	}
	b.list.Draw(scr, b.DropdownRect(scr.Bounds()), th)
}

// ContextMenu is a popup list opened at a pointer position.
type ContextMenu struct {
	X, Y int
	// Target is the window the menu acts on, empty for the desktop.
	Target string
	List
}

// NewContextMenu returns a menu anchored at (x, y).
func NewContextMenu(x, y int, target string, items []event.MenuItem) *ContextMenu {
	return &ContextMenu{X: x, Y: y, Target: target, List: NewList(items)}
}

// Rect returns where the menu is drawn, shifted to stay inside bounds.
func (c *ContextMenu) Rect(bounds uv.Rectangle) uv.Rectangle {
	w, h := c.Size()
	x := max(min(c.X, bounds.Max.X-w), bounds.Min.X)
	y := max(min(c.Y, bounds.Max.Y-h), bounds.Min.Y)
	return uv.Rect(x, y, w, h)
}

// HandleKey navigates the menu. Every key is consumed.
func (c *ContextMenu) HandleKey(k event.Key) MenuResult {
	res, _ := c.handleKey(k)
	return res
}

// HandlePointer routes a pointer event. A press outside closes the menu.
func (c *ContextMenu) HandlePointer(p event.Pointer, bounds uv.Rectangle) MenuResult {
	r := c.Rect(bounds)
	idx := c.ItemAt(r, p.X, p.Y)
	switch p.Phase {
	case event.PhaseMove, event.PhaseDrag:
		if idx >= 0 && c.Items[idx].Selectable() {
			c.Selected = idx
		}
	case event.PhasePress, event.PhaseDoubleClick:
		if !uv.Pos(p.X, p.Y).In(r) {
			return MenuResult{Closed: true}
		}
		if idx >= 0 && c.Items[idx].Selectable() {
			return MenuResult{Action: c.Items[idx].Action, Closed: true}
		}
	}
	return MenuResult{}
}

// Draw paints the menu.
func (c *ContextMenu) Draw(scr uv.Screen, th *Theme) {
	c.List.Draw(scr, c.Rect(scr.Bounds()), th)
}
