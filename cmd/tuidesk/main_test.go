package main

import (
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuidesk/internal/app"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
)

func TestFlagsApply(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.Shell = "/bin/sh"
	want := *cfg

	(&flags{}).apply(cfg)
	if cfg.General != want.General || cfg.Terminal != want.Terminal || cfg.Appearance != want.Appearance {
		t.Fatal("empty flags changed the config")
	}

	f := &flags{shell: "/bin/zsh", fps: 30, scrollback: 5000, ascii: true}
	f.apply(cfg)
	if cfg.General.Shell != "/bin/zsh" || cfg.General.FPS != 30 {
		t.Errorf("general = %+v", cfg.General)
	}
	if cfg.Terminal.ScrollbackLines != 5000 || !cfg.Appearance.ASCIIOnly {
		t.Errorf("terminal = %+v, appearance = %+v", cfg.Terminal, cfg.Appearance)
	}
}

func TestLoadConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	f := &flags{configPath: path}

	cfg, got, err := f.loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got != path || cfg == nil {
		t.Fatalf("path = %q, cfg = %v", got, cfg)
	}
	if _, err := config.Read(path); err != nil {
		t.Errorf("defaults not written: %v", err)
	}
}

func TestKeybindingRows(t *testing.T) {
	sections := keybindingRows(config.NewKeybindRegistry(config.DefaultConfig()))
	if len(sections) == 0 {
		t.Fatal("no sections")
	}
	for _, s := range sections {
		if s.Title == "" || len(s.Rows) == 0 {
			t.Errorf("section %+v is empty", s)
		}
		for _, r := range s.Rows {
			if len(r) != 2 || r[0] == "" {
				t.Errorf("%s: bad row %q", s.Title, r)
			}
		}
	}
}

func TestMotionFilter(t *testing.T) {
	desk := app.New(app.Options{})
	filter := motionFilter(desk)
	hover := tea.MouseMotionMsg{X: 5, Y: 5}

	if got := filter(desk, hover); got != nil {
		t.Errorf("hover passed: %v", got)
	}
	drag := tea.MouseMotionMsg{X: 5, Y: 5, Button: tea.MouseLeft}
	if got := filter(desk, drag); got == nil {
		t.Error("button motion dropped")
	}
	if got := filter(desk, tea.KeyPressMsg{Code: 'a'}); got == nil {
		t.Error("key dropped")
	}

	desk.Router().Desktop.BeginIconDrag(0, uv.Pos(3, 3))
	if got := filter(desk, hover); got == nil {
		t.Error("hover dropped while an icon is held")
	}
}
