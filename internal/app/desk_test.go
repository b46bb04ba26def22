package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/event"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
)

type closeCounter struct {
	wm.NopContent
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func newTestDesk(t *testing.T) *Desk {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Appearance.ShowSysinfo = false
	d := New(Options{
		Config: cfg,
		About:  AboutInfo{Version: "v1.2.3"},
		Now:    func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC) },
	})
	d.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return d
}

func TestDeskFirstSizeAppliesAtOnce(t *testing.T) {
	d := newTestDesk(t)
	if ws := d.Windows().Workspace(); ws.Dx() != 80 || ws.Min.Y != 1 || ws.Max.Y != 22 {
		t.Fatalf("workspace = %v", ws)
	}

	// Later sizes wait for the next frame.
	d.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if d.Windows().Workspace().Dx() != 80 {
		t.Fatal("resize applied before the frame")
	}
	d.Update(frameMsg(time.Now()))
	if ws := d.Windows().Workspace(); ws.Dx() != 100 || ws.Max.Y != 28 {
		t.Errorf("workspace after frame = %v", ws)
	}
}

func TestDeskOpensSingleInstances(t *testing.T) {
	d := newTestDesk(t)

	for _, kind := range []string{event.KindHelp, event.KindAbout, event.KindLog} {
		d.apply(event.Open(event.Descriptor{Kind: kind}))
		first := d.Windows().Focused().ID()
		d.Windows().Minimize(first)
		d.apply(event.Open(event.Descriptor{Kind: kind}))
		f := d.Windows().Focused()
		if f == nil || f.ID() != first || f.Minimized() {
			t.Errorf("%s: second open did not restore the first window", kind)
		}
	}
	if n := d.Windows().Len(); n != 3 {
		t.Errorf("windows = %d, want 3", n)
	}

	if last := d.Windows().Focused(); last.Title() != "Log Viewer" {
		t.Errorf("focused = %q", last.Title())
	}
}

func TestDeskTextWindowsAreNotSingle(t *testing.T) {
	d := newTestDesk(t)
	for range 2 {
		d.apply(event.Open(event.Descriptor{Kind: event.KindText, Title: "Notes", Body: "hi"}))
	}
	if d.Windows().Len() != 2 {
		t.Errorf("windows = %d, want 2", d.Windows().Len())
	}
}

func TestDeskUnknownKindShowsError(t *testing.T) {
	d := newTestDesk(t)
	d.apply(event.Open(event.Descriptor{Kind: "spreadsheet"}))
	if d.Windows().Len() != 0 {
		t.Fatal("window opened for an unknown kind")
	}
	if dlg := d.Router().Dialog; dlg == nil || !strings.Contains(dlg.Message, "spreadsheet") {
		t.Errorf("dialog = %+v", dlg)
	}
}

func TestDeskEscClosesHelp(t *testing.T) {
	d := newTestDesk(t)
	d.Update(tea.KeyPressMsg{Code: tea.KeyF1})
	if d.Windows().Len() != 1 || d.Windows().Focused().Title() != "Keyboard Help" {
		t.Fatal("f1 did not open help")
	}

	d.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if d.Windows().Len() != 0 {
		t.Fatal("esc did not close help")
	}
	if len(d.singles) != 0 {
		t.Errorf("singles = %v", d.singles)
	}

	// It opens again after closing.
	d.Update(tea.KeyPressMsg{Code: tea.KeyF1})
	if d.Windows().Len() != 1 {
		t.Error("help did not reopen")
	}
}

func TestDeskConfirmThenQuit(t *testing.T) {
	d := newTestDesk(t)
	c := &closeCounter{}
	d.Windows().Open(event.Descriptor{Title: "x"}, c)

	_, cmd := d.Update(tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl})
	if cmd != nil || d.Router().Dialog == nil {
		t.Fatal("quit did not ask first")
	}
	_, cmd = d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("accepting did not quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd does not quit")
	}
	if c.closed != 1 || d.Windows().Len() != 0 {
		t.Errorf("closed = %d, windows = %d", c.closed, d.Windows().Len())
	}

	// Shutdown again is harmless.
	d.Shutdown()
	if c.closed != 1 {
		t.Errorf("content closed %d times", c.closed)
	}
}

func TestDeskQuitMsg(t *testing.T) {
	d := newTestDesk(t)
	c := &closeCounter{}
	d.Windows().Open(event.Descriptor{}, c)
	_, cmd := d.Update(QuitMsg{})
	if cmd == nil || c.closed != 1 {
		t.Fatal("QuitMsg did not shut down")
	}
	if _, cmd := d.Update(frameMsg(time.Now())); cmd != nil {
		t.Error("frames keep ticking after quit")
	}
}

func TestDeskReload(t *testing.T) {
	d := newTestDesk(t)

	cfg := config.DefaultConfig()
	cfg.Appearance.ShowSysinfo = false
	cfg.Appearance.DesktopPattern = "%"
	cfg.General.DoubleClickMS = 250
	cfg.General.FPS = 1
	cfg.Keybindings[config.ActionShowHelp] = []string{"f2"}
	d.Update(ConfigReloadMsg{Config: cfg, Nerd: true})

	if d.theme.Glyphs.Pattern != "%" {
		t.Errorf("pattern = %q", d.theme.Glyphs.Pattern)
	}
	if d.Router().Clicks.Window != 250*time.Millisecond {
		t.Errorf("double click = %v", d.Router().Clicks.Window)
	}
	if !d.Router().Desktop.Nerd {
		t.Error("icon choice not applied")
	}
	if d.cfg.General.FPS == 1 {
		t.Error("fps changed on reload")
	}

	d.Update(tea.KeyPressMsg{Code: tea.KeyF2})
	if d.Windows().Len() != 1 {
		t.Fatal("rebound help key ignored")
	}

	d.Update(ConfigReloadMsg{Err: errors.New("bad toml")})
	if d.theme.Glyphs.Pattern != "%" {
		t.Error("failed reload changed the theme")
	}
}

func TestDeskView(t *testing.T) {
	d := New(Options{})
	if v := d.View(); v.Content != "" {
		t.Fatal("view painted before the size is known")
	}

	d = newTestDesk(t)
	d.apply(event.Open(event.Descriptor{Kind: event.KindText, Title: "Notes", Body: "hello desktop"}))
	v := d.View()
	if !v.AltScreen || v.MouseMode != tea.MouseModeAllMotion {
		t.Error("view does not take over the screen")
	}
	for _, want := range []string{"File", "Notes", "hello desktop", "1/1 windows", "15:04:05"} {
		if !strings.Contains(v.Content, want) {
			t.Errorf("view lacks %q", want)
		}
	}
	if v.Cursor != nil {
		t.Error("text view shows a cursor")
	}
	if !strings.HasPrefix(v.WindowTitle, "Notes") {
		t.Errorf("window title = %q", v.WindowTitle)
	}
}

// runCmd runs cmd and any batch it expands to, collecting the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestDeskSavesDraggedIcons(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.DefaultConfig()
	cfg.Appearance.ShowSysinfo = false
	d := New(Options{Config: cfg, About: AboutInfo{ConfigPath: path}})
	d.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	icon := d.Router().Desktop.IconRect(0)
	d.Update(tea.MouseClickMsg{X: icon.Min.X, Y: icon.Min.Y, Button: tea.MouseLeft})
	d.Update(tea.MouseMotionMsg{X: 40, Y: 10, Button: tea.MouseLeft})
	_, cmd := d.Update(tea.MouseReleaseMsg{X: 40, Y: 10, Button: tea.MouseLeft})

	for _, msg := range runCmd(cmd) {
		if saved, ok := msg.(iconsSavedMsg); ok && saved.err != nil {
			t.Fatalf("save: %v", saved.err)
		}
		d.Update(msg)
	}
	got, err := config.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.IconPositions["Terminal"] != [2]int{40, 10} {
		t.Errorf("saved positions = %v", got.IconPositions)
	}

	// A fresh desk starts with the saved layout.
	again := New(Options{Config: got})
	if r := again.Router().Desktop.IconRect(0); r.Min.X != 40 || r.Min.Y != 10 {
		t.Errorf("restored icon at %v", r.Min)
	}
}

func TestCheckTerminalRejectsPipes(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	err = CheckTerminal(r, w)
	if !errors.Is(err, ErrFatalSetup) {
		t.Errorf("err = %v, want ErrFatalSetup", err)
	}
}
