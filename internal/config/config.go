// Package config loads the user configuration and the keybinding registry.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// AppName names the configuration and state directories.
const AppName = "tuidesk"

// Frame rate bounds.
const (
	NormalFPS = 30
	MinFPS    = 1
	MaxFPS    = 120
)

// Defaults for the [general] and [terminal] sections.
const (
	DefaultDoubleClickMS   = 400
	DefaultScrollbackLines = 2000
	MinScrollbackLines     = 100
	DefaultWriteQueueBytes = 64 * 1024
)

// Icon modes.
const (
	IconsAuto  = "auto"
	IconsNerd  = "nerd"
	IconsPlain = "plain"
)

// GeneralConfig is the [general] section.
type GeneralConfig struct {
	FPS           int    `toml:"fps" comment:"Frames per second (1-120)"`
	Shell         string `toml:"shell" comment:"Program for new terminals; empty uses $SHELL"`
	DoubleClickMS int    `toml:"double_click_ms" comment:"Double click window in milliseconds"`
}

// TerminalConfig is the [terminal] section.
type TerminalConfig struct {
	ScrollbackLines int  `toml:"scrollback_lines" comment:"Rows kept per terminal (minimum 100)"`
	CloseOnExit     bool `toml:"close_on_exit" comment:"Close the window when the shell exits"`
	WriteQueueBytes int  `toml:"write_queue_bytes" comment:"Input bytes buffered per terminal"`
}

// AppearanceConfig is the [appearance] section.
type AppearanceConfig struct {
	ASCIIOnly      bool   `toml:"ascii_only" comment:"Draw frames and icons with ASCII only"`
	DesktopPattern string `toml:"desktop_pattern" comment:"Character tiled over the desktop; empty picks one"`
	ShowClock      bool   `toml:"show_clock"`
	ShowSysinfo    bool   `toml:"show_sysinfo" comment:"CPU and memory readout in the status line"`
	Icons          string `toml:"icons" comment:"auto, nerd or plain"`
	Tint           string `toml:"tint" comment:"bubbletint palette such as dracula or nord; empty keeps the terminal's colours"`
}

// UserConfig is the whole configuration file.
type UserConfig struct {
	General     GeneralConfig       `toml:"general"`
	Terminal    TerminalConfig      `toml:"terminal"`
	Appearance  AppearanceConfig    `toml:"appearance"`
	Keybindings map[string][]string `toml:"keybindings" comment:"action = [keys]; see tuidesk keybinds list"`
	// IconPositions maps a desktop icon label to its top-left cell.
	IconPositions map[string][2]int `toml:"icon_positions,omitempty" comment:"Desktop icon cells by label, written when icons are dragged"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		General: GeneralConfig{
			FPS:           NormalFPS,
			DoubleClickMS: DefaultDoubleClickMS,
		},
		Terminal: TerminalConfig{
			ScrollbackLines: DefaultScrollbackLines,
			CloseOnExit:     true,
			WriteQueueBytes: DefaultWriteQueueBytes,
		},
		Appearance: AppearanceConfig{
			ShowClock:   true,
			ShowSysinfo: true,
			Icons:       IconsAuto,
		},
		Keybindings: DefaultKeybindings(),
	}
}

// DoubleClick returns the double click window as a duration.
func (c *UserConfig) DoubleClick() time.Duration {
	return time.Duration(c.General.DoubleClickMS) * time.Millisecond
}

// Normalize clamps out-of-range values and returns a warning for each.
func (c *UserConfig) Normalize() []string {
	var warn []string
	if c.General.FPS < MinFPS || c.General.FPS > MaxFPS {
		warn = append(warn, fmt.Sprintf("general.fps %d out of range, using %d", c.General.FPS, NormalFPS))
		c.General.FPS = NormalFPS
	}
	if c.General.DoubleClickMS <= 0 {
		c.General.DoubleClickMS = DefaultDoubleClickMS
	}
	if c.Terminal.ScrollbackLines < MinScrollbackLines {
		warn = append(warn, fmt.Sprintf("terminal.scrollback_lines raised to %d", MinScrollbackLines))
		c.Terminal.ScrollbackLines = MinScrollbackLines
	}
	if c.Terminal.WriteQueueBytes <= 0 {
		c.Terminal.WriteQueueBytes = DefaultWriteQueueBytes
	}
	switch c.Appearance.Icons {
	case IconsAuto, IconsNerd, IconsPlain:
	case "":
		c.Appearance.Icons = IconsAuto
	default:
		warn = append(warn, fmt.Sprintf("appearance.icons %q unknown, using %q", c.Appearance.Icons, IconsAuto))
		c.Appearance.Icons = IconsAuto
	}

	n := NewKeyNormalizer()
	for action, keys := range c.Keybindings {
		if _, ok := ActionDescriptions[action]; !ok {
			warn = append(warn, fmt.Sprintf("keybindings: unknown action %q", action))
			continue
		}
		for _, k := range keys {
			if ok, why := n.ValidateKey(k); !ok {
				warn = append(warn, fmt.Sprintf("keybindings.%s: %q %s", action, k, why))
			}
		}
	}
	return warn
}

// GetConfigPath returns the configuration file location, creating its
// directory.
func GetConfigPath() (string, error) {
	p, err := xdg.ConfigFile(filepath.Join(AppName, "config.toml"))
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return p, nil
}

// GetLogPath returns the log file location, creating its directory.
func GetLogPath() (string, error) {
	p, err := xdg.StateFile(filepath.Join(AppName, AppName+".log"))
	if err != nil {
		return "", fmt.Errorf("resolve log path: %w", err)
	}
	return p, nil
}

// LoadUserConfig loads the file at the default path.
func LoadUserConfig() (*UserConfig, error) {
	p, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(p)
}

// Load reads path, writing the defaults there first when it does not exist.
func Load(path string) (*UserConfig, error) {
	cfg, err := Read(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return cfg, err
}

// Read parses path over the defaults. Actions missing from the file keep
// their default keys.
func Read(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults.
func Parse(data []byte) (*UserConfig, error) {
	cfg := DefaultConfig()
	cfg.Keybindings = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("parse config at %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	user := cfg.Keybindings
	cfg.Keybindings = DefaultKeybindings()
	for action, keys := range user {
		cfg.Keybindings[action] = keys
	}
	return cfg, nil
}

// Marshal renders cfg with a descriptive header.
func Marshal(cfg *UserConfig, path string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# tuidesk configuration\n")
	buf.WriteString("# Keys are bound per action; several keys may trigger the same action.\n")
	if path != "" {
		buf.WriteString("# Location: " + path + "\n")
	}
	buf.WriteString("\n")

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes cfg to path atomically.
func Save(path string, cfg *UserConfig) error {
	data, err := Marshal(cfg, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+strings.TrimSuffix(filepath.Base(path), ".toml")+"-*")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SaveIconPositions replaces the icon positions stored in the file at path
// and leaves every other setting as the file has it.
func SaveIconPositions(path string, positions map[string][2]int) error {
	cfg, err := Read(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return err
	}
	cfg.IconPositions = maps.Clone(positions)
	return Save(path, cfg)
}
