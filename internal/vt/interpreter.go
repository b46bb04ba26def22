// Package vt implements a VT100/xterm escape sequence interpreter that turns
// the byte stream of a child process into a styled cell grid with scrollback.
//
// The interpreter performs no I/O. Replies the child expects (device status,
// device attributes) are queued and collected with [Interpreter.Replies].
package vt

import (
	"bytes"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/ansi/parser"
)

// Mode is the interpreter's parsing state.
type Mode uint8

// Parsing states.
const (
	ModeGround Mode = iota
	ModeEscape
	ModeCSI
	ModeOSC
	// ModeString covers DCS, SOS, PM and APC payloads, which are consumed
	// and ignored.
	ModeString
	// ModeUTF8 is in the middle of a multi-byte rune.
	ModeUTF8
)

var modeNames = [...]string{"ground", "escape", "csi", "osc", "string", "utf8"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// maxOscData bounds the accumulation buffer for OSC and other strings.
const maxOscData = 4096

// Cursor is the visible cursor state.
type Cursor struct {
	X, Y   int
	Hidden bool
}

type cursorState struct {
	x, y int
	pen  uv.Style
	// pendingWrap is set after writing the last column; the next printable
	// rune wraps first.
	pendingWrap bool
}

// Interpreter is a deterministic byte-stream to grid state machine.
type Interpreter struct {
	parser *ansi.Parser

	main, alt *Grid
	grid      *Grid
	altActive bool

	scrollback *Scrollback

	cur      cursorState
	saved    cursorState
	altSaved cursorState

	// Scroll region, inclusive.
	top, bottom int

	tabs *uv.TabStops

	autowrap  bool
	appCursor bool
	hidden    bool
	// bracketedPaste is DECSET 2004.
	bracketedPaste bool

	title   string
	replies bytes.Buffer

	// anomalies counts sequences that were discarded after a handler fault.
	anomalies int
}

// New returns an interpreter with a cols × rows grid and a scrollback ring of
// the given capacity.
func New(cols, rows, scrollback int) *Interpreter {
	t := &Interpreter{
		main:       NewGrid(cols, rows),
		alt:        NewGrid(cols, rows),
		scrollback: NewScrollback(scrollback),
	}
	t.grid = t.main
	t.parser = ansi.NewParser()
	t.parser.SetParamsSize(parser.MaxParamsSize)
	t.parser.SetDataSize(maxOscData)
	t.parser.SetHandler(ansi.Handler{
		Print:     t.print,
		Execute:   t.execute,
		HandleCsi: t.handleCsi,
		HandleEsc: t.handleEsc,
		HandleOsc: t.handleOsc,
	})
	t.reset()
	return t
}

func (t *Interpreter) reset() {
	t.grid = t.main
	t.altActive = false
	t.cur = cursorState{}
	t.saved = cursorState{}
	t.altSaved = cursorState{}
	t.top, t.bottom = 0, t.grid.Height()-1
	t.tabs = uv.DefaultTabStops(t.grid.Width())
	t.autowrap = true
	t.appCursor = false
	t.bracketedPaste = false
	t.hidden = false
	t.main.EraseRows(0, t.main.Height(), &uv.EmptyCell)
	t.alt.EraseRows(0, t.alt.Height(), &uv.EmptyCell)
}

// Write feeds bytes to the state machine. It never fails.
func (t *Interpreter) Write(p []byte) (int, error) {
	for _, b := range p {
		t.advance(b)
	}
	return len(p), nil
}

// WriteString is Write for strings.
func (t *Interpreter) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

func (t *Interpreter) advance(b byte) {
	defer func() {
		if r := recover(); r != nil {
			t.anomalies++
			t.parser.Reset()
		}
	}()
	t.parser.Advance(b)
}

// Mode reports the current parsing state.
func (t *Interpreter) Mode() Mode {
	switch t.parser.State() {
	case parser.GroundState:
		return ModeGround
	case parser.EscapeState, parser.EscapeIntermediateState:
		return ModeEscape
	case parser.CsiEntryState, parser.CsiParamState, parser.CsiIntermediateState:
		return ModeCSI
	case parser.OscStringState:
		return ModeOSC
	case parser.Utf8State:
		return ModeUTF8
	default:
		return ModeString
	}
}

// Size returns the live grid dimensions.
func (t *Interpreter) Size() (cols, rows int) {
	return t.grid.Width(), t.grid.Height()
}

// Grid returns the active grid (main or alternate).
func (t *Interpreter) Grid() *Grid { return t.grid }

// Scrollback returns the main screen's scrollback ring.
func (t *Interpreter) Scrollback() *Scrollback { return t.scrollback }

// AltScreen reports whether the alternate screen is active.
func (t *Interpreter) AltScreen() bool { return t.altActive }

// AppCursor reports whether cursor keys should use application mode (DECCKM).
func (t *Interpreter) AppCursor() bool { return t.appCursor }

// BracketedPaste reports whether the program asked for pastes to be framed
// with ESC[200~ and ESC[201~.
func (t *Interpreter) BracketedPaste() bool { return t.bracketedPaste }

// Cursor returns the cursor position and visibility.
func (t *Interpreter) Cursor() Cursor {
	return Cursor{X: t.cur.x, Y: t.cur.y, Hidden: t.hidden}
}

// Pen returns the current graphic rendition.
func (t *Interpreter) Pen() uv.Style { return t.cur.pen }

// Title returns the last title set with OSC 0 or 2.
func (t *Interpreter) Title() string { return t.title }

// Anomalies returns the number of discarded faulty sequences.
func (t *Interpreter) Anomalies() int { return t.anomalies }

// Replies returns and clears the bytes queued for the child.
func (t *Interpreter) Replies() []byte {
	if t.replies.Len() == 0 {
		return nil
	}
	out := bytes.Clone(t.replies.Bytes())
	t.replies.Reset()
	return out
}

// ClearScrollback empties the scrollback ring.
func (t *Interpreter) ClearScrollback() {
	t.scrollback.Clear()
}

// String returns the plain text of the live grid.
func (t *Interpreter) String() string {
	return t.grid.String()
}

// Lines returns the number of addressable rows: scrollback followed by the
// live grid.
func (t *Interpreter) Lines() int {
	if t.altActive {
		return t.grid.Height()
	}
	return t.scrollback.Len() + t.grid.Height()
}

// LineAt returns row i of the combined scrollback + grid space.
func (t *Interpreter) LineAt(i int) uv.Line {
	if t.altActive {
		return t.grid.Line(i)
	}
	n := t.scrollback.Len()
	if i < n {
		return t.scrollback.Line(i)
	}
	return t.grid.Line(i - n)
}

// Resize changes both grids to cols × rows. When the main grid shrinks below
// its cursor, rows leaving the top go to scrollback.
// Scrollback itself is never truncated.
func (t *Interpreter) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols == t.grid.Width() && rows == t.grid.Height() {
		return
	}

	// The main screen keeps its newest rows even while the alternate
	// screen is up; its cursor is the saved one then.
	mainCur := &t.cur
	if t.altActive {
		mainCur = &t.saved
		if over := t.cur.y - (rows - 1); over > 0 {
			t.alt.DropTop(over)
			t.cur.y -= over
		}
	}
	if over := mainCur.y - (rows - 1); over > 0 {
		for _, l := range t.main.DropTop(over) {
			t.scrollback.Push(l)
		}
		mainCur.y -= over
	}
	t.main.Resize(cols, rows)
	t.alt.Resize(cols, rows)

	t.cur.x = min(t.cur.x, cols-1)
	t.cur.y = min(t.cur.y, rows-1)
	t.cur.pendingWrap = false
	t.saved.x, t.saved.y = min(t.saved.x, cols-1), min(t.saved.y, rows-1)
	t.altSaved.x, t.altSaved.y = min(t.altSaved.x, cols-1), min(t.altSaved.y, rows-1)
	t.top, t.bottom = 0, rows-1
	t.tabs = uv.DefaultTabStops(cols)
}

// blank is the cell used for erasing: a space carrying the pen background.
func (t *Interpreter) blank() *uv.Cell {
	c := uv.EmptyCell
	c.Style.Bg = t.cur.pen.Bg
	return &c
}

func (t *Interpreter) print(r rune) {
	w := ansi.StringWidthWc(string(r))
	width := t.grid.Width()

	if w == 0 {
		t.combine(r)
		return
	}
	if w > width {
		return
	}

	if t.cur.pendingWrap {
		t.cur.pendingWrap = false
		if t.autowrap {
			t.cur.x = 0
			t.index()
		}
	}
	if t.cur.x+w > width {
		if t.autowrap {
			t.cur.x = 0
			t.index()
		} else {
			t.cur.x = width - w
		}
	}

	cell := uv.Cell{Content: string(r), Width: w, Style: t.cur.pen}
	t.grid.SetCell(t.cur.x, t.cur.y, &cell)

	t.cur.x += w
	if t.cur.x >= width {
		t.cur.x = width - 1
		t.cur.pendingWrap = t.autowrap
	}
}

// combine attaches a zero-width rune to the previously written cell.
func (t *Interpreter) combine(r rune) {
	x := t.cur.x
	if !t.cur.pendingWrap {
		x--
	}
	for ; x >= 0; x-- {
		c := t.grid.CellAt(x, t.cur.y)
		if c == nil {
			return
		}
		if c.Width > 0 {
			c.Content += string(r)
			return
		}
	}
}

func (t *Interpreter) execute(b byte) {
	switch b {
	case ansi.BEL:
	case ansi.BS:
		t.cur.pendingWrap = false
		if t.cur.x > 0 {
			t.cur.x--
		}
	case ansi.HT:
		t.cur.x = min(t.tabs.Next(t.cur.x), t.grid.Width()-1)
	case ansi.LF, ansi.VT, ansi.FF:
		t.index()
	case ansi.CR:
		t.cur.x = 0
		t.cur.pendingWrap = false
	}
}

// index moves the cursor down one row, scrolling the region at its bottom.
func (t *Interpreter) index() {
	t.cur.pendingWrap = false
	switch {
	case t.cur.y == t.bottom:
		t.scrollUp(1)
	case t.cur.y < t.grid.Height()-1:
		t.cur.y++
	}
}

// reverseIndex moves the cursor up one row, scrolling at the region top.
func (t *Interpreter) reverseIndex() {
	t.cur.pendingWrap = false
	switch {
	case t.cur.y == t.top:
		t.grid.ScrollDown(t.top, t.bottom, 1, t.blank())
	case t.cur.y > 0:
		t.cur.y--
	}
}

// scrollUp scrolls the region; rows leaving the top of a full-height main
// screen region are kept in scrollback.
func (t *Interpreter) scrollUp(n int) {
	gone := t.grid.ScrollUp(t.top, t.bottom, n, t.blank())
	if t.altActive || t.top != 0 {
		return
	}
	for _, l := range gone {
		t.scrollback.Push(l)
	}
}

func (t *Interpreter) handleEsc(cmd ansi.Cmd) {
	if cmd.Intermediate() != 0 {
		// Charset designations and DEC line attributes are ignored.
		return
	}
	switch cmd.Final() {
	case '7':
		t.saveCursor()
	case '8':
		t.restoreCursor()
	case 'D':
		t.index()
	case 'E':
		t.cur.x = 0
		t.index()
	case 'M':
		t.reverseIndex()
	case 'H':
		t.tabs.Set(t.cur.x)
	case 'c':
		t.title = ""
		t.scrollback.Clear()
		t.reset()
	}
}

func (t *Interpreter) handleOsc(cmd int, data []byte) {
	switch cmd {
	case 0, 2:
		_, title, ok := strings.Cut(string(data), ";")
		if ok {
			t.title = sanitizeTitle(title)
		}
	}
}

func (t *Interpreter) saveCursor() {
	if t.altActive {
		t.altSaved = t.cur
		return
	}
	t.saved = t.cur
}

func (t *Interpreter) restoreCursor() {
	s := t.saved
	if t.altActive {
		s = t.altSaved
	}
	t.cur = s
	t.cur.x = min(t.cur.x, t.grid.Width()-1)
	t.cur.y = min(t.cur.y, t.grid.Height()-1)
}

func (t *Interpreter) setAltScreen(on, saveCursor, clearOnEnter bool) {
	if on == t.altActive {
		return
	}
	if on {
		if saveCursor {
			t.saved = t.cur
		}
		t.grid = t.alt
		t.altActive = true
		if clearOnEnter {
			t.alt.EraseRows(0, t.alt.Height(), &uv.EmptyCell)
		}
	} else {
		t.grid = t.main
		t.altActive = false
		if saveCursor {
			t.cur = t.saved
		}
	}
	t.top, t.bottom = 0, t.grid.Height()-1
	t.cur.x = min(t.cur.x, t.grid.Width()-1)
	t.cur.y = min(t.cur.y, t.grid.Height()-1)
	t.cur.pendingWrap = false
}

func sanitizeTitle(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
