package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
)

// resolveConfigPath returns --config or the default location.
func (f *flags) resolveConfigPath() (string, error) {
	if f.configPath != "" {
		return f.configPath, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("could not determine config path: %w", err)
	}
	return path, nil
}

// apply overrides cfg with the flags that were given.
func (f *flags) apply(cfg *config.UserConfig) {
	if f.shell != "" {
		cfg.General.Shell = f.shell
	}
	if f.fps > 0 {
		cfg.General.FPS = f.fps
	}
	if f.scrollback > 0 {
		cfg.Terminal.ScrollbackLines = f.scrollback
	}
	if f.ascii {
		cfg.Appearance.ASCIIOnly = true
	}
}

// loadConfig reads the configuration, creating it on first use. A broken
// file falls back to the defaults; the returned error says why.
func (f *flags) loadConfig() (cfg *config.UserConfig, path string, err error) {
	path, err = f.resolveConfigPath()
	if err != nil {
		return config.DefaultConfig(), "", err
	}
	cfg, err = config.Load(path)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return cfg, path, err
}

func printConfigPath(f *flags) error {
	path, err := f.resolveConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile(f *flags) error {
	path, err := f.resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", path)
		if _, err := config.Load(path); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return errors.New("no editor found, please set $EDITOR")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resetConfigToDefaults overwrites the configuration file after asking.
func resetConfigToDefaults(f *flags, yes bool) error {
	path, err := f.resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !yes {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", path)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", path)
	fmt.Println("\nYou can customize it with: tuidesk config edit")
	return nil
}

// showConfig prints the effective configuration as TOML.
func showConfig(f *flags) error {
	cfg, path, err := f.loadConfig()
	if err != nil {
		return err
	}
	for _, w := range cfg.Normalize() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	data, err := config.Marshal(cfg, path)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// listKeybindings prints all configured keybindings as tables, one per
// section.
func listKeybindings(f *flags) error {
	cfg, _, err := f.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
	}
	for _, w := range cfg.Normalize() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	printKeybindingsTable(keybindingRows(config.NewKeybindRegistry(cfg)))
	return nil
}

// keybindingSection is one table of the listing.
type keybindingSection struct {
	Title string
	Rows  [][]string
}

func keybindingRows(registry *config.KeybindRegistry) []keybindingSection {
	var out []keybindingSection
	for _, s := range config.GetKeybindings(registry) {
		sec := keybindingSection{Title: s.Title}
		for _, b := range s.Bindings {
			sec.Rows = append(sec.Rows, []string{b.Key, b.Description})
		}
		if len(sec.Rows) > 0 {
			out = append(out, sec)
		}
	}
	return out
}

func printKeybindingsTable(sections []keybindingSection) {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	lipgloss.Println()
	lipgloss.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("tuidesk Keybindings"))
	lipgloss.Println()

	for _, section := range sections {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
			Headers("Keys", "Action").
			Rows(section.Rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		lipgloss.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render(section.Title))
		lipgloss.Println(t.Render())
		lipgloss.Println()
	}

	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true).
		Render("Change bindings in the [keybindings] table of the config file; a running desktop reloads them.")
	lipgloss.Println(note)
	lipgloss.Println()
}
