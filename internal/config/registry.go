package config

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Actions that can be bound to keys.
const (
	ActionQuit        = "quit"
	ActionToggleMenu  = "toggle_menu"
	ActionNewTerminal = "new_terminal"
	ActionCloseWindow = "close_window"
	ActionNextWindow  = "next_window"
	ActionPrevWindow  = "prev_window"
	ActionMinimize    = "minimize_window"
	ActionMaximize    = "maximize_window"
	ActionTogglePin   = "toggle_pin"
	ActionRestoreLast = "restore_last"
	ActionOpenLog     = "open_log"
	ActionShowHelp    = "show_help"
	ActionWindowMenu  = "window_menu"
)

// ActionDescriptions is every bindable action with its help text.
var ActionDescriptions = map[string]string{
	ActionQuit:        "Quit tuidesk",
	ActionToggleMenu:  "Open or close the menu bar",
	ActionNewTerminal: "New terminal window",
	ActionCloseWindow: "Close focused window",
	ActionNextWindow:  "Focus next window",
	ActionPrevWindow:  "Focus previous window",
	ActionMinimize:    "Minimize focused window",
	ActionMaximize:    "Maximize or restore focused window",
	ActionTogglePin:   "Keep focused window on top",
	ActionRestoreLast: "Restore last minimized window",
	ActionOpenLog:     "Open the log viewer",
	ActionShowHelp:    "Keyboard help",
	ActionWindowMenu:  "Focused window's menu",
}

// DefaultKeybindings returns the built-in action to keys map.
func DefaultKeybindings() map[string][]string {
	return map[string][]string{
		ActionQuit:        {"ctrl+q"},
		ActionToggleMenu:  {"f10"},
		ActionNewTerminal: {"alt+n"},
		ActionCloseWindow: {"alt+w"},
		ActionNextWindow:  {"alt+.", "f6"},
		ActionPrevWindow:  {"alt+,", "shift+f6"},
		ActionMinimize:    {"alt+m"},
		ActionMaximize:    {"alt+x"},
		ActionTogglePin:   {"alt+t"},
		ActionRestoreLast: {"alt+r"},
		ActionOpenLog:     {"alt+l"},
		ActionShowHelp:    {"f1"},
		ActionWindowMenu:  {"alt+space"},
	}
}

// modOrder is the canonical modifier order, matching event.Key.String.
var modOrder = []string{"ctrl", "alt", "shift", "super"}

var modAliases = map[string]string{
	"ctrl": "ctrl", "control": "ctrl", "c": "ctrl",
	"alt": "alt", "meta": "alt", "opt": "alt", "option": "alt", "m": "alt",
	"shift": "shift", "s": "shift",
	"super": "super", "cmd": "super", "win": "super",
}

// keyAliases lists names that mean the same key. The first entry of each
// group is what the input layer reports.
var keyAliases = [][]string{
	{"enter", "return"},
	{"esc", "escape"},
	{"pgup", "pageup", "prior"},
	{"pgdown", "pagedown", "next"},
	{"delete", "del"},
	{"insert", "ins"},
	{"backspace", "bs"},
}

var namedKeys = map[string]bool{
	"tab": true, "up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true,
}

func init() {
	for _, g := range keyAliases {
		for _, k := range g {
			namedKeys[k] = true
		}
	}
	for i := 1; i <= 12; i++ {
		namedKeys["f"+strconv.Itoa(i)] = true
	}
	namedKeys["space"] = true
}

// KeyNormalizer converts user-written keys to the notation the input layer
// produces.
type KeyNormalizer struct {
	aliases map[string][]string
}

// NewKeyNormalizer returns a normalizer with the built-in key aliases.
func NewKeyNormalizer() *KeyNormalizer {
	n := &KeyNormalizer{aliases: make(map[string][]string)}
	for _, g := range keyAliases {
		for _, k := range g {
			n.aliases[k] = g
		}
	}
	return n
}

// split separates modifiers from the base key. "ctrl++" binds plus.
func split(key string) (mods []string, base string) {
	parts := strings.Split(key, "+")
	if strings.HasSuffix(key, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// NormalizeKey returns every spelling of key in canonical modifier order,
// the spelling as written first. A bare upper-case letter means shift.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	mods, base := split(key)

	set := map[string]bool{}
	for _, m := range mods {
		if canon, ok := modAliases[strings.ToLower(strings.TrimSpace(m))]; ok {
			set[canon] = true
		}
	}
	if r, size := utf8.DecodeRuneInString(base); size == len(base) && unicode.IsUpper(r) {
		if len(mods) == 0 {
			set["shift"] = true
		}
		base = string(unicode.ToLower(r))
	} else if size != len(base) {
		base = strings.ToLower(base)
	}

	var prefix strings.Builder
	for _, m := range modOrder {
		if set[m] {
			prefix.WriteString(m + "+")
		}
	}

	out := []string{prefix.String() + base}
	for _, alt := range n.aliases[base] {
		if alt != base {
			out = append(out, prefix.String()+alt)
		}
	}
	return out
}

// ValidateKey reports whether key can be bound and, when not, why.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "is empty"
	}
	mods, base := split(key)
	for _, m := range mods {
		if _, ok := modAliases[strings.ToLower(strings.TrimSpace(m))]; !ok {
			return false, "has unknown modifier " + m
		}
	}
	if base == "" {
		return false, "has no key after the modifiers"
	}
	if utf8.RuneCountInString(base) == 1 || namedKeys[strings.ToLower(base)] {
		return true, ""
	}
	return false, "names an unknown key"
}

// KeybindRegistry maps actions to keys and back.
type KeybindRegistry struct {
	byAction map[string][]string
	byKey    map[string]string
	norm     *KeyNormalizer
}

// NewKeybindRegistry indexes cfg's keybindings. When two actions claim the
// same key the one that sorts first wins.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		byAction: make(map[string][]string),
		byKey:    make(map[string]string),
		norm:     NewKeyNormalizer(),
	}
	actions := make([]string, 0, len(cfg.Keybindings))
	for a := range cfg.Keybindings {
		actions = append(actions, a)
	}
	slices.Sort(actions)

	for _, action := range actions {
		if _, ok := ActionDescriptions[action]; !ok {
			continue
		}
		for _, k := range cfg.Keybindings[action] {
			if ok, _ := r.norm.ValidateKey(k); !ok {
				continue
			}
			variants := r.norm.NormalizeKey(k)
			r.byAction[action] = append(r.byAction[action], variants[0])
			for _, v := range variants {
				if _, taken := r.byKey[v]; !taken {
					r.byKey[v] = action
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.byAction[action]
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	variants := r.norm.NormalizeKey(key)
	if len(variants) == 0 {
		return ""
	}
	return r.byKey[variants[0]]
}

// GetKeysForDisplay returns action's keys joined for menus and help.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.byAction[action]
	if len(keys) == 0 {
		return ""
	}
	shown := make([]string, len(keys))
	for i, k := range keys {
		shown[i] = displayKey(k)
	}
	return strings.Join(shown, ", ")
}

// FirstKeyForDisplay returns the first key bound to action, for menu hints.
func (r *KeybindRegistry) FirstKeyForDisplay(action string) string {
	keys := r.byAction[action]
	if len(keys) == 0 {
		return ""
	}
	return displayKey(keys[0])
}

// Actions returns every bound action, sorted.
func (r *KeybindRegistry) Actions() []string {
	out := make([]string, 0, len(r.byAction))
	for a := range r.byAction {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

// displayKey turns "ctrl+shift+a" into "Ctrl+Shift+A".
func displayKey(k string) string {
	mods, base := split(k)
	var b strings.Builder
	for _, m := range mods {
		b.WriteString(strings.ToUpper(m[:1]) + m[1:] + "+")
	}
	switch {
	case len(base) == 1:
		b.WriteString(strings.ToUpper(base))
	case base == "pgup":
		b.WriteString("PgUp")
	case base == "pgdown":
		b.WriteString("PgDn")
	case base[0] == 'f' && len(base) <= 3:
		b.WriteString(strings.ToUpper(base))
	default:
		b.WriteString(strings.ToUpper(base[:1]) + base[1:])
	}
	return b.String()
}
