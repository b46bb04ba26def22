package terminal

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/log/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
	"github.com/Gaurav-Gosain/tuidesk/internal/ui"
	"github.com/Gaurav-Gosain/tuidesk/internal/vt"
)

// Pane menu actions.
const (
	ActionClear     = "terminal.clear"
	ActionRestart   = "terminal.restart"
	ActionInterrupt = "terminal.interrupt"
)

// MinScrollback is the smallest scrollback a pane accepts.
const MinScrollback = 100

// wheelKeys is how many arrow presses one wheel notch sends to a program on
// the alternate screen.
const wheelKeys = 1

// PaneOptions configures a terminal pane.
type PaneOptions struct {
	// Shell is the program to run; empty resolves through ResolveShell.
	Shell      string
	Scrollback int
	// CloseOnExit closes the window when the child exits instead of leaving
	// the exit status on screen.
	CloseOnExit bool
	Session     Options
	Theme       *ui.Theme
	Logger      *log.Logger
}

// Pane is window content running one shell session through one
// interpreter.
type Pane struct {
	opts  PaneOptions
	shell string
	log   *log.Logger

	sess *Session
	term *vt.Interpreter

	cols, rows int
	// offset is how many rows the view is scrolled back from the live
	// bottom.
	offset int

	exited   bool
	exitCode int
	spawnErr error
}

// NewPane starts a shell sized cols × rows. A spawn failure still returns a
// usable pane that shows the error, together with the error itself.
func NewPane(cols, rows int, opts PaneOptions) (*Pane, error) {
	if opts.Scrollback <= 0 {
		opts.Scrollback = vt.DefaultScrollback
	}
	opts.Scrollback = max(opts.Scrollback, MinScrollback)
	if opts.Theme == nil {
		opts.Theme = ui.DefaultTheme(false)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = opts.Logger
	}

	p := &Pane{
		opts:  opts,
		shell: ResolveShell(opts.Shell, ""),
		log:   opts.Logger,
		cols:  max(cols, 1),
		rows:  max(rows, 1),
	}
	return p, p.start()
}

func (p *Pane) start() error {
	p.term = vt.New(p.cols, p.rows, p.opts.Scrollback)
	p.offset = 0
	p.exited, p.exitCode = false, 0
	p.spawnErr = nil

	sess, err := Open(p.shell, p.cols, p.rows, p.opts.Session)
	if err != nil {
		p.spawnErr = err
		p.log.Error("terminal spawn failed", "shell", p.shell, "err", err)
		return err
	}
	p.sess = sess
	return nil
}

// Shell returns the program the pane runs.
func (p *Pane) Shell() string { return p.shell }

// SpawnErr returns the error from the last start attempt.
func (p *Pane) SpawnErr() error { return p.spawnErr }

// Exited reports whether the child has terminated, and its status.
func (p *Pane) Exited() (code int, ok bool) { return p.exitCode, p.exited }

// Interpreter exposes the pane's screen state.
func (p *Pane) Interpreter() *vt.Interpreter { return p.term }

// SetTheme switches the chrome used for the scrollbar and error text.
func (p *Pane) SetTheme(th *ui.Theme) {
	if th != nil {
		p.opts.Theme = th
	}
}

// Step drains the child's output into the interpreter, answers its queries
// and reports the child's exit.
func (p *Pane) Step() event.Outcome {
	if p.sess == nil || p.exited {
		return event.None()
	}
	changed := p.drain()

	code, ok := p.sess.PollExit()
	if !ok {
		if changed {
			return event.Refresh()
		}
		return event.None()
	}

	// The reader may still hold the child's last words.
	p.drain()
	p.exited, p.exitCode = true, code
	p.log.Info("terminal exited", "shell", p.shell, "code", code)
	if p.opts.CloseOnExit {
		return event.Close("")
	}
	_, _ = fmt.Fprintf(p.term, "\r\n[process exited: %d]", code)
	return event.Refresh()
}

func (p *Pane) drain() bool {
	out := p.sess.ReadAvailable()
	if len(out) == 0 {
		return false
	}
	_, _ = p.term.Write(out)
	if replies := p.term.Replies(); len(replies) > 0 && !p.exited {
		_, _ = p.sess.Write(replies)
	}
	return true
}

// maxOffset is how far the view can scroll back.
func (p *Pane) maxOffset() int {
	if p.term.AltScreen() {
		return 0
	}
	return p.term.Scrollback().Len()
}

// Offset returns how many rows the view is scrolled back.
func (p *Pane) Offset() int { return p.offset }

// Draw paints the visible rows into area.
func (p *Pane) Draw(scr uv.Screen, area uv.Rectangle) {
	th := p.opts.Theme
	if p.spawnErr != nil {
		p.drawError(scr, area, th)
		return
	}

	rows := area.Dy()
	total := p.term.Lines()
	p.offset = min(p.offset, p.maxOffset())
	start := total - p.rows - p.offset
	for y := range rows {
		i := start + y
		if i < 0 || i >= total {
			continue
		}
		line := p.term.LineAt(i)
		for x := 0; x < len(line) && x < area.Dx(); x++ {
			c := line[x]
			if c.Width == 0 {
				// Continuation of a wide cell.
				continue
			}
			c.Style.Fg, c.Style.Bg = th.Color(c.Style.Fg), th.Color(c.Style.Bg)
			scr.SetCell(area.Min.X+x, area.Min.Y+y, &c)
		}
	}

	if p.offset > 0 {
		// The bottom row is furthest from what the user scrolled to read.
		tag := fmt.Sprintf(" BACK %d ", p.offset)
		ui.DrawTextRight(scr, area.Max.X-1, area.Max.Y-1, tag, th.StatusAccent)
		ui.DrawScrollbar(scr, area.Max.X-1, area.Min.Y, rows, total, p.rows, p.offset, th)
	}
}

func (p *Pane) drawError(scr uv.Screen, area uv.Rectangle, th *ui.Theme) {
	msg := p.spawnErr.Error()
	var se *SpawnError
	if errors.As(p.spawnErr, &se) {
		msg = fmt.Sprintf("%s\n\nUse Restart Shell from the window menu to try again.", se.Error())
	}
	lines := strings.Split(ansi.Wrap(msg, max(area.Dx()-2, 1), " /"), "\n")
	for i, l := range lines {
		if i >= area.Dy() {
			break
		}
		ui.DrawText(scr, area.Min.X+1, area.Min.Y+i, area.Dx()-2, l, th.Error)
	}
}

// Cursor returns the live cursor in content coordinates.
func (p *Pane) Cursor() (x, y int, visible bool) {
	if p.sess == nil || p.exited || p.offset > 0 {
		return 0, 0, false
	}
	c := p.term.Cursor()
	return c.X, c.Y, !c.Hidden
}

// HandleKey sends the encoded key to the child and returns the view to the
// live region.
func (p *Pane) HandleKey(k event.Key) event.Outcome {
	if p.sess == nil || p.exited {
		return event.None()
	}
	wasBack := p.offset > 0
	p.offset = 0
	if b := EncodeKey(k, p.term.AppCursor()); len(b) > 0 {
		_, _ = p.sess.Write(b)
	}
	if wasBack {
		return event.Refresh()
	}
	return event.None()
}

// HandlePaste sends pasted text to the child as one write.
func (p *Pane) HandlePaste(text string) event.Outcome {
	if p.sess == nil || p.exited {
		return event.None()
	}
	wasBack := p.offset > 0
	p.offset = 0
	if b := EncodePaste(text, p.term.BracketedPaste()); len(b) > 0 {
		_, _ = p.sess.Write(b)
	}
	if wasBack {
		return event.Refresh()
	}
	return event.None()
}

// HandleClick returns the view to the live region.
func (p *Pane) HandleClick(ev event.Pointer) event.Outcome {
	if ev.IsPress() && p.offset > 0 {
		p.offset = 0
		return event.Refresh()
	}
	return event.None()
}

// HandleScroll moves through scrollback. Programs on the alternate screen
// get arrow keys instead, the way xterm's alternate scroll mode does it.
func (p *Pane) HandleScroll(delta int) event.Outcome {
	if delta == 0 {
		return event.None()
	}
	if p.term.AltScreen() && p.sess != nil && !p.exited {
		key := event.Key{Name: "down"}
		if delta < 0 {
			key.Name = "up"
		}
		seq := EncodeKey(key, p.term.AppCursor())
		for range abs(delta) * wheelKeys {
			_, _ = p.sess.Write(seq)
		}
		return event.None()
	}

	prev := p.offset
	p.offset = min(max(p.offset-delta, 0), p.maxOffset())
	if p.offset == prev {
		return event.None()
	}
	return event.Refresh()
}

// Resize changes the session and grid together.
func (p *Pane) Resize(cols, rows int) error {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols == p.cols && rows == p.rows {
		return nil
	}
	p.cols, p.rows = cols, rows
	p.term.Resize(cols, rows)
	p.offset = min(p.offset, p.maxOffset())
	if p.sess == nil || p.exited {
		return nil
	}
	if err := p.sess.Resize(cols, rows); err != nil {
		return fmt.Errorf("resize %s: %w", p.shell, err)
	}
	return nil
}

// Size returns the grid dimensions.
func (p *Pane) Size() (cols, rows int) { return p.cols, p.rows }

// Title returns the title the program set, if any.
func (p *Pane) Title() string { return p.term.Title() }

// Close ends the session.
func (p *Pane) Close() error {
	if p.sess == nil {
		return nil
	}
	return p.sess.Close()
}

// MenuItems returns the pane's window menu entries.
func (p *Pane) MenuItems() []event.MenuItem {
	alive := p.sess != nil && !p.exited
	return []event.MenuItem{
		{Label: "Clear Scrollback", Action: ActionClear},
		{Label: "Restart Shell", Action: ActionRestart},
		{Label: "Send Interrupt", Action: ActionInterrupt, Hint: "^C", Disabled: !alive},
	}
}

// HandleAction runs a window menu entry.
func (p *Pane) HandleAction(action string) event.Outcome {
	switch action {
	case ActionClear:
		p.term.ClearScrollback()
		p.offset = 0
		return event.Refresh()
	case ActionRestart:
		return p.restart()
	case ActionInterrupt:
		if p.sess != nil && !p.exited {
			p.sess.Interrupt()
		}
		return event.None()
	}
	return event.None()
}

func (p *Pane) restart() event.Outcome {
	if p.sess != nil {
		if err := p.sess.Close(); err != nil {
			p.log.Warn("closing session before restart", "err", err)
		}
		p.sess = nil
	}
	if err := p.start(); err != nil {
		return event.Error(err.Error())
	}
	return event.Refresh()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
