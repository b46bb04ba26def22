package vt

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// param returns parameter i or def when it is missing.
func param(params ansi.Params, i, def int) int {
	v, _, _ := params.Param(i, def)
	return v
}

// count returns parameter i as a repeat count: missing or zero means one.
func count(params ansi.Params, i int) int {
	return max(param(params, i, 1), 1)
}

func (t *Interpreter) handleCsi(cmd ansi.Cmd, params ansi.Params) {
	if cmd.Prefix() == '?' {
		switch cmd.Final() {
		case 'h':
			t.setDecModes(params, true)
		case 'l':
			t.setDecModes(params, false)
		}
		return
	}
	if cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
		return
	}

	width, height := t.grid.Width(), t.grid.Height()
	switch cmd.Final() {
	case 'A':
		t.moveCursorRows(-count(params, 0))
	case 'B', 'e':
		t.moveCursorRows(count(params, 0))
	case 'C', 'a':
		t.setCursor(t.cur.x+count(params, 0), t.cur.y)
	case 'D':
		t.setCursor(t.cur.x-count(params, 0), t.cur.y)
	case 'E':
		t.moveCursorRows(count(params, 0))
		t.cur.x = 0
	case 'F':
		t.moveCursorRows(-count(params, 0))
		t.cur.x = 0
	case 'G', '`':
		t.setCursor(count(params, 0)-1, t.cur.y)
	case 'H', 'f':
		t.setCursor(count(params, 1)-1, count(params, 0)-1)
	case 'd':
		t.setCursor(t.cur.x, count(params, 0)-1)
	case 'I':
		for range min(count(params, 0), width) {
			t.cur.x = min(t.tabs.Next(t.cur.x), width-1)
		}
	case 'Z':
		for range min(count(params, 0), width) {
			t.cur.x = max(t.tabs.Prev(t.cur.x), 0)
		}
	case 'J':
		t.eraseDisplay(param(params, 0, 0))
	case 'K':
		t.eraseLine(param(params, 0, 0))
	case 'L':
		if t.inRegion() {
			t.grid.ScrollDown(t.cur.y, t.bottom, count(params, 0), t.blank())
			t.cur.x = 0
		}
	case 'M':
		if t.inRegion() {
			t.grid.ScrollUp(t.cur.y, t.bottom, count(params, 0), t.blank())
			t.cur.x = 0
		}
	case '@':
		t.grid.InsertCells(t.cur.x, t.cur.y, count(params, 0), t.blank())
	case 'P':
		t.grid.DeleteCells(t.cur.x, t.cur.y, count(params, 0), t.blank())
	case 'X':
		n := count(params, 0)
		t.grid.EraseCells(t.cur.y, t.cur.x, t.cur.x+n, t.blank())
	case 'S':
		t.scrollUp(count(params, 0))
	case 'T':
		t.grid.ScrollDown(t.top, t.bottom, count(params, 0), t.blank())
	case 'r':
		top := count(params, 0) - 1
		bottom := param(params, 1, height)
		if bottom <= 0 || bottom > height {
			bottom = height
		}
		bottom--
		if top < bottom {
			t.top, t.bottom = top, bottom
			t.setCursor(0, 0)
		}
	case 'm':
		applySgr(params, &t.cur.pen)
	case 'n':
		switch param(params, 0, 0) {
		case 5:
			t.replies.WriteString("\x1b[0n")
		case 6:
			fmt.Fprintf(&t.replies, "\x1b[%d;%dR", t.cur.y+1, t.cur.x+1)
		}
	case 'c':
		if param(params, 0, 0) == 0 {
			t.replies.WriteString("\x1b[?1;2c")
		}
	case 's':
		t.saveCursor()
	case 'u':
		t.restoreCursor()
	case 'g':
		switch param(params, 0, 0) {
		case 0:
			t.tabs.Reset(t.cur.x)
		case 3:
			t.tabs.Clear()
		}
	}
}

func (t *Interpreter) setDecModes(params ansi.Params, on bool) {
	for i := range params {
		switch param(params, i, 0) {
		case 1:
			t.appCursor = on
		case 7:
			t.autowrap = on
			if !on {
				t.cur.pendingWrap = false
			}
		case 25:
			t.hidden = !on
		case 47:
			t.setAltScreen(on, false, false)
		case 1047:
			t.setAltScreen(on, false, true)
		case 1048:
			if on {
				t.saveCursor()
			} else {
				t.restoreCursor()
			}
		case 1049:
			t.setAltScreen(on, true, true)
		case 2004:
			t.bracketedPaste = on
		}
	}
}

// inRegion reports whether the cursor row lies inside the scroll region.
func (t *Interpreter) inRegion() bool {
	return t.cur.y >= t.top && t.cur.y <= t.bottom
}

func (t *Interpreter) setCursor(x, y int) {
	t.cur.x = min(max(x, 0), t.grid.Width()-1)
	t.cur.y = min(max(y, 0), t.grid.Height()-1)
	t.cur.pendingWrap = false
}

// moveCursorRows moves vertically, stopping at the scroll margins when the
// cursor starts inside the region.
func (t *Interpreter) moveCursorRows(n int) {
	lo, hi := 0, t.grid.Height()-1
	if t.inRegion() {
		lo, hi = t.top, t.bottom
	}
	t.cur.y = min(max(t.cur.y+n, lo), hi)
	t.cur.pendingWrap = false
}

func (t *Interpreter) eraseLine(mode int) {
	width := t.grid.Width()
	switch mode {
	case 0:
		t.grid.EraseCells(t.cur.y, t.cur.x, width, t.blank())
	case 1:
		t.grid.EraseCells(t.cur.y, 0, t.cur.x+1, t.blank())
	case 2:
		t.grid.EraseCells(t.cur.y, 0, width, t.blank())
	}
	t.cur.pendingWrap = false
}

func (t *Interpreter) eraseDisplay(mode int) {
	height := t.grid.Height()
	switch mode {
	case 0:
		t.eraseLine(0)
		t.grid.EraseRows(t.cur.y+1, height, t.blank())
	case 1:
		t.grid.EraseRows(0, t.cur.y, t.blank())
		t.eraseLine(1)
	case 2:
		t.grid.EraseRows(0, height, t.blank())
	case 3:
		t.scrollback.Clear()
	}
}
