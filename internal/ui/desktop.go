package ui

import (
	"context"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	nf "github.com/lrstanley/go-nf"
	"github.com/lrstanley/go-nf/glyphs/cod"
	"github.com/lrstanley/go-nf/glyphs/md"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
)

// Icon is a desktop shortcut.
type Icon struct {
	Label string
	// Face is the three-cell picture drawn inside the plain icon box.
	Face string
	// Glyph is the nerd font picture.
	Glyph nf.Glyph
	Open  event.Descriptor
}

// DefaultIcons returns the stock desktop shortcuts.
func DefaultIcons() []Icon {
	return []Icon{
		{Label: "Terminal", Face: ">_ ", Glyph: cod.Terminal, Open: event.Descriptor{Kind: event.KindTerminal}},
		{Label: "Log", Face: "===", Glyph: cod.Output, Open: event.Descriptor{Kind: event.KindLog}},
		{Label: "Help", Face: " ? ", Glyph: md.HelpCircle, Open: event.Descriptor{Kind: event.KindHelp}},
		{Label: "About", Face: " i ", Glyph: md.InformationOutline, Open: event.Descriptor{Kind: event.KindAbout}},
	}
}

// Icon modes accepted by ResolveNerdFonts.
const (
	IconsAuto  = "auto"
	IconsNerd  = "nerd"
	IconsPlain = "plain"
)

// ResolveNerdFonts decides whether nerd font glyphs should be used. Auto mode
// asks the font detectors, which may scan the filesystem; ctx bounds that.
func ResolveNerdFonts(ctx context.Context, mode string) bool {
	switch mode {
	case IconsNerd:
		return true
	case IconsPlain:
		return false
	}
	status, err := nf.DetectInstalled(ctx, append([]nf.InstallDetector{nf.DetectorEnvVar("TUIDESK_NERD_FONTS")}, nf.DefaultDetectors()...)...)
	if err != nil {
		return false
	}
	return status == nf.StatusEnabled || status == nf.StatusInstalled
}

// Icon cell geometry.
const (
	iconWidth  = 10
	iconHeight = 4
	iconGap    = 1
)

// Desktop is the background with its icon column.
type Desktop struct {
	Icons    []Icon
	Selected int
	Nerd     bool
	// Origin is the top-left cell of the first icon.
	Origin uv.Position
	// Positions overrides the column layout for icons moved by the user,
	// keyed by label.
	Positions map[string]uv.Position

	dragging   bool
	dragIcon   int
	dragOffset uv.Position
	dragMoved  bool
}

// NewDesktop returns a desktop with the stock icons and nothing selected.
func NewDesktop(nerd bool) *Desktop {
	return &Desktop{Icons: DefaultIcons(), Selected: -1, Nerd: nerd, Origin: uv.Pos(2, 2)}
}

// IconRect returns the cells covered by icon i.
func (d *Desktop) IconRect(i int) uv.Rectangle {
	if p, ok := d.Positions[d.Icons[i].Label]; ok {
		return uv.Rect(p.X, p.Y, iconWidth, iconHeight)
	}
	return uv.Rect(d.Origin.X, d.Origin.Y+i*(iconHeight+iconGap), iconWidth, iconHeight)
}

// IconAt returns the topmost icon covering (x, y), or -1.
func (d *Desktop) IconAt(x, y int) int {
	for i := len(d.Icons) - 1; i >= 0; i-- {
		if uv.Pos(x, y).In(d.IconRect(i)) {
			return i
		}
	}
	return -1
}

// SetPositions replaces the moved icon positions with cells as stored in
// the configuration.
func (d *Desktop) SetPositions(cells map[string][2]int) {
	d.Positions = make(map[string]uv.Position, len(cells))
	for label, c := range cells {
		d.Positions[label] = uv.Pos(c[0], c[1])
	}
}

// PositionCells returns Positions in the configuration's form.
func (d *Desktop) PositionCells() map[string][2]int {
	out := make(map[string][2]int, len(d.Positions))
	for label, p := range d.Positions {
		out[label] = [2]int{p.X, p.Y}
	}
	return out
}

// BeginIconDrag starts moving icon i, grabbed at cell at.
func (d *Desktop) BeginIconDrag(i int, at uv.Position) {
	if i < 0 || i >= len(d.Icons) {
		return
	}
	d.dragging, d.dragIcon, d.dragMoved = true, i, false
	d.dragOffset = at.Sub(d.IconRect(i).Min)
}

// DraggingIcon reports whether an icon is being moved.
func (d *Desktop) DraggingIcon() bool { return d.dragging }

// DragIcon moves the grabbed icon so the grab point follows at, keeping the
// whole icon inside bounds.
func (d *Desktop) DragIcon(at uv.Position, bounds uv.Rectangle) {
	if !d.dragging {
		return
	}
	p := at.Sub(d.dragOffset)
	p.X = max(min(p.X, bounds.Max.X-iconWidth), bounds.Min.X)
	p.Y = max(min(p.Y, bounds.Max.Y-iconHeight), bounds.Min.Y)
	if p == d.IconRect(d.dragIcon).Min {
		return
	}
	if d.Positions == nil {
		d.Positions = make(map[string]uv.Position)
	}
	d.Positions[d.Icons[d.dragIcon].Label] = p
	d.dragMoved = true
}

// EndIconDrag finishes the move and reports whether the icon left its cell.
func (d *Desktop) EndIconDrag() (moved bool) {
	moved = d.dragging && d.dragMoved
	d.dragging, d.dragMoved = false, false
	return moved
}

// Draw paints the background pattern over area and the icons on top.
func (d *Desktop) Draw(scr uv.Screen, area uv.Rectangle, th *Theme) {
	Fill(scr, area, th.Glyphs.Pattern, th.Desktop)
	scr = Clip(scr, area)
	for i, ic := range d.Icons {
		r := d.IconRect(i)
		st := th.Icon
		if i == d.Selected {
			st = th.IconSelected
		}
		Fill(scr, r, " ", st)

		cx := r.Min.X + (iconWidth-5)/2
		if d.Nerd && !ic.Glyph.IsZero() {
			DrawText(scr, r.Min.X+(iconWidth-1)/2, r.Min.Y+1, 2, ic.Glyph.String(), st)
		} else {
			box := th.Glyphs.Normal
			DrawText(scr, cx, r.Min.Y, 5, box.TopLeft+strings.Repeat(box.Top, 3)+box.TopRight, st)
			DrawText(scr, cx, r.Min.Y+1, 5, box.Left+Pad(ic.Face, 3)+box.Right, st)
			DrawText(scr, cx, r.Min.Y+2, 5, box.BottomLeft+strings.Repeat(box.Bottom, 3)+box.BottomRight, st)
		}
		label := Truncate(ic.Label, iconWidth)
		DrawText(scr, r.Min.X+(iconWidth-TextWidth(label))/2, r.Max.Y-1, iconWidth, label, st)
	}
}
