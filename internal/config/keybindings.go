package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// sectionActions groups the bindable actions for help output.
var sectionActions = []struct {
	Title   string
	Actions []string
}{
	{"WINDOWS", []string{
		ActionNewTerminal, ActionCloseWindow, ActionNextWindow, ActionPrevWindow,
		ActionMinimize, ActionMaximize, ActionTogglePin, ActionRestoreLast, ActionWindowMenu,
	}},
	{"DESKTOP", []string{ActionToggleMenu, ActionOpenLog, ActionShowHelp, ActionQuit}},
}

// GetKeybindings returns all keybinding sections for the help window and
// the keybinds command. A nil registry shows the defaults.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	var sections []KeybindingSection
	for _, s := range sectionActions {
		sec := KeybindingSection{Title: s.Title}
		for _, action := range s.Actions {
			addBinding(&sec, registry, action, ActionDescriptions[action])
		}
		if len(sec.Bindings) > 0 {
			sections = append(sections, sec)
		}
	}
	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	if keys := registry.GetKeysForDisplay(action); keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{Key: keys, Description: description})
	}
}

// getStaticHelpSections covers input that is not rebindable.
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MENUS AND DIALOGS",
			Bindings: []Keybinding{
				{"↑/↓", "Move through items"},
				{"←/→", "Switch menu or button"},
				{"Tab", "Next dialog button"},
				{"Enter, Space", "Choose"},
				{"Esc", "Close menu or cancel dialog"},
			},
		},
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Click title", "Focus and drag the window"},
				{"Double-click title", "Maximize or restore"},
				{"Right-click title", "Window menu"},
				{"Drag right/bottom edge", "Resize"},
				{"Wheel", "Scroll terminal history"},
				{"Double-click icon", "Open it"},
				{"Right-click desktop", "Desktop menu"},
			},
		},
		{
			Title: "TERMINAL",
			Bindings: []Keybinding{
				{"Any key", "Return to the live screen"},
				{"Window menu", "Clear scrollback, restart shell, interrupt"},
			},
		},
	}
}
