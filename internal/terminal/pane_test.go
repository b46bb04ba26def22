package terminal

import (
	"fmt"
	"image/color"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
	"github.com/Gaurav-Gosain/tuidesk/internal/ui"
)

// brokenPane returns a pane whose shell failed to start, so its interpreter
// can be driven directly.
func brokenPane(t *testing.T, cols, rows int) *Pane {
	t.Helper()
	p, err := NewPane(cols, rows, PaneOptions{Shell: "/definitely/not/a/shell"})
	if err == nil {
		t.Fatal("expected a spawn error")
	}
	return p
}

func TestPaneSpawnError(t *testing.T) {
	p := brokenPane(t, 30, 5)
	if p.SpawnErr() == nil {
		t.Fatal("SpawnErr is nil")
	}
	scr := uv.NewScreenBuffer(32, 7)
	p.Draw(scr, uv.Rect(1, 1, 30, 5))
	if got := scr.Line(1).String(); !strings.Contains(got, "cannot start") {
		t.Errorf("first row = %q", got)
	}
	if _, _, visible := p.Cursor(); visible {
		t.Error("cursor visible without a session")
	}
	if out := p.HandleKey(event.Key{Name: "a", Text: "a"}); !out.IsNone() {
		t.Errorf("HandleKey = %v", out)
	}
	if out := p.Step(); !out.IsNone() {
		t.Errorf("Step = %v", out)
	}
}

func TestPaneScrollback(t *testing.T) {
	p := brokenPane(t, 10, 3)
	p.spawnErr = nil
	for i := range 8 {
		fmt.Fprintf(p.Interpreter(), "line%d\r\n", i)
	}
	// line0..line5 are in scrollback, the grid shows line6, line7 and the
	// empty cursor row.
	if n := p.maxOffset(); n != 6 {
		t.Fatalf("maxOffset = %d", n)
	}

	if out := p.HandleScroll(-3); out.Kind != event.OutcomeRefresh || p.Offset() != 3 {
		t.Fatalf("scroll up: %v offset=%d", out, p.Offset())
	}
	scr := uv.NewScreenBuffer(10, 3)
	p.Draw(scr, scr.Bounds())
	if got := scr.Line(0).String(); !strings.HasPrefix(got, "line3") {
		t.Errorf("top row = %q", got)
	}
	if got := scr.Line(2).String(); !strings.Contains(got, "BACK 3") {
		t.Errorf("bottom row = %q", got)
	}

	p.HandleScroll(-100)
	if p.Offset() != 6 {
		t.Errorf("offset = %d, want clamped to 6", p.Offset())
	}
	p.HandleScroll(100)
	if p.Offset() != 0 {
		t.Errorf("offset = %d, want 0", p.Offset())
	}
	if out := p.HandleScroll(1); !out.IsNone() {
		t.Errorf("scrolling past the bottom = %v", out)
	}

	p.HandleScroll(-2)
	p.HandleClick(event.Pointer{Phase: event.PhasePress, Button: event.ButtonLeft})
	if p.Offset() != 0 {
		t.Error("click did not return to the live view")
	}

	p.HandleScroll(-2)
	p.HandleAction(ActionClear)
	if p.Offset() != 0 || p.maxOffset() != 0 {
		t.Error("clear left scrollback behind")
	}
}

func TestPaneDrawsInTint(t *testing.T) {
	th, ok := ui.TintedTheme(false, "dracula")
	if !ok {
		t.Skip("dracula palette missing")
	}
	p, _ := NewPane(10, 2, PaneOptions{Shell: "/definitely/not/a/shell", Theme: th})
	p.spawnErr = nil
	fmt.Fprint(p.Interpreter(), "\x1b[31;44mx\x1b[38;2;1;2;3my")

	scr := uv.NewScreenBuffer(10, 2)
	p.Draw(scr, scr.Bounds())
	if c := scr.CellAt(0, 0); c.Style.Fg != th.Palette[1] || c.Style.Bg != th.Palette[4] {
		t.Errorf("basic colours = %v on %v", c.Style.Fg, c.Style.Bg)
	}
	if c := scr.CellAt(1, 0); c.Style.Fg != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("exact colour = %v", c.Style.Fg)
	}
}

func TestPaneResize(t *testing.T) {
	p := brokenPane(t, 10, 4)
	if err := p.Resize(20, 6); err != nil {
		t.Fatal(err)
	}
	if cols, rows := p.Interpreter().Size(); cols != 20 || rows != 6 {
		t.Errorf("grid = %dx%d", cols, rows)
	}
	if cols, rows := p.Size(); cols != 20 || rows != 6 {
		t.Errorf("pane = %dx%d", cols, rows)
	}
}

func TestPaneTitle(t *testing.T) {
	p := brokenPane(t, 10, 4)
	fmt.Fprint(p.Interpreter(), "\x1b]2;vim notes.txt\x07")
	if got := p.Title(); got != "vim notes.txt" {
		t.Errorf("Title = %q", got)
	}
}

// exitingPane runs a shell that exits with status 3 at once.
func exitingPane(t *testing.T, closeOnExit bool) *Pane {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix shell")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	p, err := NewPane(40, 5, PaneOptions{
		Shell:       "/bin/sh",
		CloseOnExit: closeOnExit,
		Session:     Options{Args: []string{"-c", "exit 3"}},
	})
	if err != nil {
		t.Skipf("cannot open a pty here: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// stepUntilExit steps p until the child is gone and returns the outcome of
// the step that saw it go.
func stepUntilExit(t *testing.T, p *Pane) event.Outcome {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		out := p.Step()
		if _, ok := p.Exited(); ok {
			return out
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("child did not exit")
	return event.None()
}

func TestPaneExit(t *testing.T) {
	tests := []struct {
		name        string
		closeOnExit bool
		want        event.OutcomeKind
	}{
		{"keeps window", false, event.OutcomeRefresh},
		{"closes window", true, event.OutcomeClose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := exitingPane(t, tt.closeOnExit)
			out := stepUntilExit(t, p)
			if out.Kind != tt.want {
				t.Fatalf("exit outcome = %v", out)
			}
			if code, _ := p.Exited(); code != 3 {
				t.Errorf("exit code = %d, want 3", code)
			}

			shown := strings.Contains(p.Interpreter().Grid().String(), "[process exited: 3]")
			if shown == tt.closeOnExit {
				t.Errorf("exit status shown = %v", shown)
			}
			if _, _, visible := p.Cursor(); visible {
				t.Error("cursor visible after exit")
			}

			for range 3 {
				if out := p.Step(); !out.IsNone() {
					t.Errorf("later Step = %v", out)
				}
			}
		})
	}
}

func TestPanePaste(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix shell")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	p, err := NewPane(40, 5, PaneOptions{
		Shell:   "/bin/sh",
		Session: Options{Args: []string{"-c", `printf '\033[?2004h'; read line; echo "got:$line"`}},
	})
	if err != nil {
		t.Skipf("cannot open a pty here: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })

	waitFor := func(what string, cond func() bool) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for !cond() {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %s; screen:\n%s", what, p.Interpreter().Grid())
			}
			p.Step()
			time.Sleep(10 * time.Millisecond)
		}
	}

	waitFor("bracketed paste mode", p.Interpreter().BracketedPaste)
	p.HandlePaste("ping\n")
	waitFor("the echoed line", func() bool {
		return strings.Contains(p.Interpreter().Grid().String(), "got:ping")
	})
}
