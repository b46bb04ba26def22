package app

import (
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/ui"
)

// Help and About window sizes, frame included.
const (
	helpWidth   = 62
	helpHeight  = 22
	aboutWidth  = 52
	aboutHeight = 14
)

// helpText renders the keybinding reference shown in the Help window.
func helpText(registry *config.KeybindRegistry) string {
	sections := config.GetKeybindings(registry)

	keyWidth := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			keyWidth = max(keyWidth, ui.TextWidth(b.Key))
		}
	}
	keyWidth = min(keyWidth, 24)

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s.Title)
		b.WriteByte('\n')
		for _, kb := range s.Bindings {
			fmt.Fprintf(&b, "  %s  %s\n", ui.Pad(kb.Key, keyWidth), kb.Description)
		}
	}
	b.WriteString("\nPress Esc or q to close this window.")
	return b.String()
}

// AboutInfo is what the About window reports.
type AboutInfo struct {
	Version    string
	Shell      string
	ConfigPath string
	LogPath    string
}

// aboutText renders the About window body.
func aboutText(info AboutInfo) string {
	version := info.Version
	if version == "" {
		version = "dev"
	}
	lines := []string{
		config.AppName + " " + version,
		"A desktop for your terminal: windows, menus,",
		"icons and shells in a single screen.",
		"",
		"Shell:   " + info.Shell,
	}
	if info.ConfigPath != "" {
		lines = append(lines, "Config:  "+info.ConfigPath)
	}
	if info.LogPath != "" {
		lines = append(lines, "Log:     "+info.LogPath)
	}
	return strings.Join(lines, "\n")
}
