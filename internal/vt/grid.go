package vt

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
)

// Grid is a fixed-size matrix of styled cells.
type Grid struct {
	rows   []uv.Line
	width  int
	height int
}

// NewGrid returns a blank grid. Dimensions below one are raised to one.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 1), max(height, 1)
	g := &Grid{width: width, height: height, rows: make([]uv.Line, height)}
	for y := range g.rows {
		g.rows[y] = uv.NewLine(width)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Line returns row y or nil when y is out of range.
func (g *Grid) Line(y int) uv.Line {
	if y < 0 || y >= g.height {
		return nil
	}
	return g.rows[y]
}

// CellAt returns the cell at (x, y) or nil when out of range.
func (g *Grid) CellAt(x, y int) *uv.Cell {
	if y < 0 || y >= g.height {
		return nil
	}
	return g.rows[y].At(x)
}

// SetCell writes c at (x, y). Out of range writes are dropped.
func (g *Grid) SetCell(x, y int, c *uv.Cell) {
	if y < 0 || y >= g.height {
		return
	}
	g.rows[y].Set(x, c)
}

// EraseCells blanks columns [x0, x1) of row y.
func (g *Grid) EraseCells(y, x0, x1 int, blank *uv.Cell) {
	if y < 0 || y >= g.height {
		return
	}
	x0, x1 = max(x0, 0), min(x1, g.width)
	row := g.rows[y]
	for x := x0; x < x1; x++ {
		row[x] = *blank
	}
}

// EraseRows blanks rows [y0, y1).
func (g *Grid) EraseRows(y0, y1 int, blank *uv.Cell) {
	for y := max(y0, 0); y < min(y1, g.height); y++ {
		g.EraseCells(y, 0, g.width, blank)
	}
}

// ScrollUp moves rows [top, bottom] up by n, filling the bottom with blanks.
// The rows that left the region are returned, oldest first.
func (g *Grid) ScrollUp(top, bottom, n int, blank *uv.Cell) []uv.Line {
	top, bottom = max(top, 0), min(bottom, g.height-1)
	if top > bottom || n <= 0 {
		return nil
	}
	n = min(n, bottom-top+1)
	gone := make([]uv.Line, n)
	copy(gone, g.rows[top:top+n])
	copy(g.rows[top:], g.rows[top+n:bottom+1])
	for y := bottom - n + 1; y <= bottom; y++ {
		g.rows[y] = blankLine(g.width, blank)
	}
	return gone
}

// ScrollDown moves rows [top, bottom] down by n, filling the top with blanks.
func (g *Grid) ScrollDown(top, bottom, n int, blank *uv.Cell) {
	top, bottom = max(top, 0), min(bottom, g.height-1)
	if top > bottom || n <= 0 {
		return
	}
	n = min(n, bottom-top+1)
	copy(g.rows[top+n:bottom+1], g.rows[top:bottom+1-n])
	for y := top; y < top+n; y++ {
		g.rows[y] = blankLine(g.width, blank)
	}
}

// InsertCells shifts cells at and right of x on row y right by n.
func (g *Grid) InsertCells(x, y, n int, blank *uv.Cell) {
	if y < 0 || y >= g.height || x < 0 || x >= g.width || n <= 0 {
		return
	}
	row := g.rows[y]
	n = min(n, g.width-x)
	copy(row[x+n:], row[x:g.width-n])
	for i := x; i < x+n; i++ {
		row[i] = *blank
	}
}

// DeleteCells removes n cells at x on row y, pulling the rest left.
func (g *Grid) DeleteCells(x, y, n int, blank *uv.Cell) {
	if y < 0 || y >= g.height || x < 0 || x >= g.width || n <= 0 {
		return
	}
	row := g.rows[y]
	n = min(n, g.width-x)
	copy(row[x:], row[x+n:])
	for i := g.width - n; i < g.width; i++ {
		row[i] = *blank
	}
}

// Resize changes the dimensions. Rows are padded with blanks or truncated on
// the right; rows are added or dropped at the bottom.
func (g *Grid) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	for y, row := range g.rows {
		g.rows[y] = fitLine(row, width)
	}
	switch {
	case height < g.height:
		g.rows = g.rows[:height]
	case height > g.height:
		for range height - g.height {
			g.rows = append(g.rows, uv.NewLine(width))
		}
	}
	g.width, g.height = width, height
}

// DropTop removes the first n rows, shifting the rest up and appending
// blank rows. The removed rows are returned.
func (g *Grid) DropTop(n int) []uv.Line {
	return g.ScrollUp(0, g.height-1, n, &uv.EmptyCell)
}

// String returns the plain text of the grid with trailing spaces trimmed.
func (g *Grid) String() string {
	lines := make([]string, g.height)
	for y, row := range g.rows {
		lines[y] = strings.TrimRight(row.String(), " ")
	}
	return strings.Join(lines, "\n")
}

func blankLine(width int, blank *uv.Cell) uv.Line {
	l := make(uv.Line, width)
	for i := range l {
		l[i] = *blank
	}
	return l
}

func fitLine(row uv.Line, width int) uv.Line {
	if len(row) == width {
		return row
	}
	if len(row) > width {
		out := row[:width:width]
		// A wide cell cut in half becomes a blank.
		if last := out[width-1]; last.Width > 1 {
			out[width-1] = uv.EmptyCell
		}
		return out
	}
	out := uv.NewLine(width)
	copy(out, row)
	return out
}
