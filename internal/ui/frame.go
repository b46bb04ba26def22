package ui

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
)

// DrawWindow paints a window's frame and lets its content draw into the
// clipped content area.
func DrawWindow(scr uv.Screen, w *wm.Window, th *Theme) {
	r := w.Rect()
	if r.Dx() < 2 || r.Dy() < 2 {
		return
	}
	DrawFrame(scr, r, w.Title(), w.Focused(), w.Pinned(), th)

	area := w.ContentRect()
	if area.Empty() {
		return
	}
	Fill(scr, area, " ", th.Body)
	w.Content().Draw(Clip(scr, area), area)
}

// DrawFrame draws the border, title and title buttons of a window occupying
// r. Focused windows get the double-line box.
func DrawFrame(scr uv.Screen, r uv.Rectangle, title string, focused, pinned bool, th *Theme) {
	g := th.Glyphs
	box, frame, titleStyle := g.Normal, th.Frame, th.Title
	if focused {
		box, frame, titleStyle = g.Focused, th.FrameFocused, th.TitleFocused
	}
	x0, y0, x1 := r.Min.X, r.Min.Y, r.Max.X-1
	DrawBox(scr, r, box, frame)

	minimize, maximize, closeBtn := wm.Buttons(r)
	titleEnd := x1 - 1
	if !minimize.Empty() {
		titleEnd = minimize.Min.X - 1
	} else if !closeBtn.Empty() {
		titleEnd = closeBtn.Min.X - 1
	}

	x := x0 + 2
	if pinned && x < titleEnd {
		x += DrawText(scr, x, y0, titleEnd-x, g.Pin+" ", titleStyle)
	}
	if x < titleEnd {
		DrawText(scr, x, y0, titleEnd-x, Truncate(title, titleEnd-x), titleStyle)
	}

	for _, b := range []struct {
		rect  uv.Rectangle
		glyph string
		style uv.Style
	}{
		{minimize, g.Minimize, th.Button},
		{maximize, g.Maximize, th.Button},
		{closeBtn, g.Close, th.ButtonClose},
	} {
		if !b.rect.Empty() {
			DrawText(scr, b.rect.Min.X, b.rect.Min.Y, b.rect.Dx(), b.glyph, b.style)
		}
	}
}

// DrawBox draws the outline of r with box characters.
func DrawBox(scr uv.Screen, r uv.Rectangle, box Box, st uv.Style) {
	if r.Dx() < 2 || r.Dy() < 2 {
		return
	}
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	top := box.TopLeft + strings.Repeat(box.Top, r.Dx()-2) + box.TopRight
	bottom := box.BottomLeft + strings.Repeat(box.Bottom, r.Dx()-2) + box.BottomRight
	DrawText(scr, x0, y0, r.Dx(), top, st)
	DrawText(scr, x0, y1, r.Dx(), bottom, st)
	for y := y0 + 1; y < y1; y++ {
		DrawText(scr, x0, y, 1, box.Left, st)
		DrawText(scr, x1, y, 1, box.Right, st)
	}
}

// DrawScrollbar draws a vertical scrollbar in column x spanning rows
// [top, top+height). total is the number of lines, visible how many fit, and
// offset how far the view is scrolled back from the bottom.
func DrawScrollbar(scr uv.Screen, x, top, height, total, visible, offset int, th *Theme) {
	if height <= 0 || total <= visible {
		return
	}
	thumb := max(height*visible/total, 1)
	// Offset 0 is the live bottom; the thumb sits at the end of the track.
	maxOffset := total - visible
	pos := (height - thumb) * (maxOffset - min(offset, maxOffset)) / maxOffset
	for i := range height {
		g := th.Glyphs.ScrollTrack
		if i >= pos && i < pos+thumb {
			g = th.Glyphs.ScrollThumb
		}
		DrawText(scr, x, top+i, 1, g, th.Scrollbar)
	}
}
