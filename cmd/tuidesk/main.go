// Package main implements tuidesk, a windowed desktop for the terminal:
// terminals, viewers and dialogs in overlapping windows with a menu bar,
// a taskbar and mouse support.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// flags holds the root command's options. Zero values leave the
// configuration file's setting alone.
type flags struct {
	shell      string
	fps        int
	scrollback int
	configPath string
	debug      bool
	ascii      bool
}

func main() {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "tuidesk",
		Short: "A desktop for your terminal",
		Long: `tuidesk - a desktop for your terminal

Run shells in overlapping windows that you move, resize, minimize and
maximize with the mouse or the keyboard. A menu bar, a taskbar and a status
line frame the workspace.`,
		Example: `  # Start the desktop
  tuidesk

  # Use a different shell and ASCII-only drawing
  tuidesk --shell /bin/zsh --ascii

  # Write debug logs
  tuidesk --debug

  # Edit configuration
  tuidesk config edit

  # List all keybindings
  tuidesk keybinds list`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesk(cmd.Context(), &f)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&f.configPath, "config", "", "Configuration file (default $XDG_CONFIG_HOME/tuidesk/config.toml)")
	rootCmd.Flags().StringVar(&f.shell, "shell", "", "Program to run in new terminals")
	rootCmd.Flags().IntVar(&f.fps, "fps", 0, "Frames per second (1-120)")
	rootCmd.Flags().IntVar(&f.scrollback, "scrollback", 0, "Scrollback lines per terminal (minimum 100)")
	rootCmd.Flags().BoolVar(&f.debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&f.ascii, "ascii", false, "Draw with ASCII characters only")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tuidesk configuration",
		Long:  `Manage the tuidesk configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath(&f)
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tuidesk configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order. A running desktop picks up
the saved changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile(&f)
		},
	}

	var yes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tuidesk configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults(&f, yes)
		},
	}
	configResetCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration as tuidesk sees it, defaults included`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(&f)
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configShowCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings(&f)
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)
	rootCmd.AddCommand(configCmd, keybindsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
