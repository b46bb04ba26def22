package ui

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/ultraviolet/screen"
	"github.com/charmbracelet/x/ansi"
)

// DrawText writes plain text s at (x, y) with style, stopping after maxW
// cells. A wide grapheme that does not fit is not drawn. It returns the
// number of cells written.
func DrawText(scr uv.Screen, x, y, maxW int, s string, style uv.Style) int {
	used := 0
	for len(s) > 0 && used < maxW {
		cluster, w := ansi.FirstGraphemeCluster(s, ansi.WcWidth)
		s = s[len(cluster):]
		if w == 0 {
			// Control characters and lone combining marks have no cell.
			continue
		}
		if used+w > maxW {
			break
		}
		scr.SetCell(x+used, y, &uv.Cell{Content: cluster, Width: w, Style: style})
		used += w
	}
	return used
}

// DrawTextRight draws s so that it ends at column right (exclusive).
func DrawTextRight(scr uv.Screen, right, y int, s string, style uv.Style) int {
	w := TextWidth(s)
	return DrawText(scr, right-w, y, w, s, style)
}

// TextWidth returns the cell width of plain text.
func TextWidth(s string) int {
	return ansi.StringWidthWc(s)
}

// Truncate shortens s to at most w cells, ending with an ellipsis when cut.
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if TextWidth(s) <= w {
		return s
	}
	if w == 1 {
		return ansi.TruncateWc(s, 1, "")
	}
	return ansi.TruncateWc(s, w, "…")
}

// Pad right-pads s with spaces to exactly w cells, truncating if needed.
func Pad(s string, w int) string {
	s = ansi.TruncateWc(s, w, "")
	if n := w - TextWidth(s); n > 0 {
		s += strings.Repeat(" ", n)
	}
	return s
}

// Fill paints every cell of r with content drawn in style.
func Fill(scr uv.Screen, r uv.Rectangle, content string, style uv.Style) {
	if content == "" {
		content = " "
	}
	screen.FillArea(scr, &uv.Cell{Content: content, Width: 1, Style: style}, r)
}

// HLine draws a horizontal run of s from x0 (inclusive) to x1 (exclusive).
func HLine(scr uv.Screen, x0, x1, y int, s string, style uv.Style) {
	Fill(scr, uv.Rect(x0, y, x1-x0, 1), s, style)
}

// Shadow darkens the one-cell strip to the right of and below r.
func Shadow(scr uv.Screen, r uv.Rectangle, style uv.Style) {
	Fill(scr, uv.Rect(r.Max.X, r.Min.Y+1, 1, r.Dy()), " ", style)
	Fill(scr, uv.Rect(r.Min.X+1, r.Max.Y, r.Dx(), 1), " ", style)
}
