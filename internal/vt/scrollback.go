package vt

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// DefaultScrollback is the capacity used when a non-positive size is given.
const DefaultScrollback = 2000

// Scrollback holds rows that scrolled off the top of the main screen.
// It is a fixed-capacity ring: pushing into a full buffer evicts the oldest
// row, so memory never grows past the capacity.
type Scrollback struct {
	rows  []uv.Line
	start int // index of the oldest row
	count int
}

// NewScrollback creates a scrollback ring holding up to capacity rows.
func NewScrollback(capacity int) *Scrollback {
	if capacity <= 0 {
		capacity = DefaultScrollback
	}
	return &Scrollback{rows: make([]uv.Line, capacity)}
}

// Push appends a copy of line as the newest row.
func (sb *Scrollback) Push(line uv.Line) {
	row := make(uv.Line, len(line))
	copy(row, line)

	capacity := len(sb.rows)
	if sb.count < capacity {
		sb.rows[(sb.start+sb.count)%capacity] = row
		sb.count++
		return
	}
	sb.rows[sb.start] = row
	sb.start = (sb.start + 1) % capacity
}

// Len returns the number of stored rows.
func (sb *Scrollback) Len() int {
	return sb.count
}

// Cap returns the capacity of the ring.
func (sb *Scrollback) Cap() int {
	return len(sb.rows)
}

// Line returns row i, where 0 is the oldest. Out of range returns nil.
func (sb *Scrollback) Line(i int) uv.Line {
	if i < 0 || i >= sb.count {
		return nil
	}
	return sb.rows[(sb.start+i)%len(sb.rows)]
}

// Lines returns all rows from oldest to newest.
func (sb *Scrollback) Lines() []uv.Line {
	out := make([]uv.Line, sb.count)
	for i := range out {
		out[i] = sb.Line(i)
	}
	return out
}

// Clear drops every row.
func (sb *Scrollback) Clear() {
	clear(sb.rows)
	sb.start = 0
	sb.count = 0
}

// SetCap changes the capacity, keeping the newest rows that still fit.
func (sb *Scrollback) SetCap(capacity int) {
	if capacity <= 0 {
		capacity = DefaultScrollback
	}
	if capacity == len(sb.rows) {
		return
	}
	keep := min(sb.count, capacity)
	rows := make([]uv.Line, capacity)
	for i := range keep {
		rows[i] = sb.Line(sb.count - keep + i)
	}
	sb.rows = rows
	sb.start = 0
	sb.count = keep
}
