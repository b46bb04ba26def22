package ui

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// ClipScreen restricts drawing on a parent screen to a rectangle. Writes
// outside the rectangle are dropped; coordinates stay absolute.
type ClipScreen struct {
	parent uv.Screen
	area   uv.Rectangle
}

var _ uv.Screen = (*ClipScreen)(nil)

// Clip returns a screen that only forwards writes landing inside r. The
// rectangle is intersected with the parent bounds first.
func Clip(scr uv.Screen, r uv.Rectangle) *ClipScreen {
	if c, ok := scr.(*ClipScreen); ok {
		return &ClipScreen{parent: c.parent, area: c.area.Intersect(r)}
	}
	return &ClipScreen{parent: scr, area: scr.Bounds().Intersect(r)}
}

// Bounds returns the clip rectangle.
func (c *ClipScreen) Bounds() uv.Rectangle { return c.area }

// CellAt returns the parent's cell, or nil outside the clip rectangle.
func (c *ClipScreen) CellAt(x, y int) *uv.Cell {
	if !uv.Pos(x, y).In(c.area) {
		return nil
	}
	return c.parent.CellAt(x, y)
}

// SetCell writes through to the parent when (x, y) is inside the clip
// rectangle. A wide cell that would cross the right edge is replaced with a
// blank so no half of it leaks out.
func (c *ClipScreen) SetCell(x, y int, cell *uv.Cell) {
	if !uv.Pos(x, y).In(c.area) {
		return
	}
	if cell != nil && cell.Width > 1 && x+cell.Width > c.area.Max.X {
		blank := uv.EmptyCell
		blank.Style = cell.Style
		cell = &blank
	}
	c.parent.SetCell(x, y, cell)
}

// WidthMethod returns the parent's width method.
func (c *ClipScreen) WidthMethod() uv.WidthMethod { return c.parent.WidthMethod() }
