// Package input turns terminal input into desktop events and routes them
// through the dialog, menu, drag, window and desktop layers.
package input

import (
	"unicode"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
)

var keyNames = map[rune]string{
	tea.KeyEnter:     "enter",
	tea.KeyKpEnter:   "enter",
	tea.KeyTab:       "tab",
	tea.KeyEscape:    "esc",
	tea.KeyBackspace: "backspace",
	tea.KeyDelete:    "delete",
	tea.KeyKpDelete:  "delete",
	tea.KeyInsert:    "insert",
	tea.KeyKpInsert:  "insert",
	tea.KeyUp:        "up",
	tea.KeyKpUp:      "up",
	tea.KeyDown:      "down",
	tea.KeyKpDown:    "down",
	tea.KeyLeft:      "left",
	tea.KeyKpLeft:    "left",
	tea.KeyRight:     "right",
	tea.KeyKpRight:   "right",
	tea.KeyHome:      "home",
	tea.KeyKpHome:    "home",
	tea.KeyEnd:       "end",
	tea.KeyKpEnd:     "end",
	tea.KeyPgUp:      "pgup",
	tea.KeyKpPgUp:    "pgup",
	tea.KeyPgDown:    "pgdown",
	tea.KeyKpPgDown:  "pgdown",
	tea.KeySpace:     "space",
	tea.KeyF1:        "f1",
	tea.KeyF2:        "f2",
	tea.KeyF3:        "f3",
	tea.KeyF4:        "f4",
	tea.KeyF5:        "f5",
	tea.KeyF6:        "f6",
	tea.KeyF7:        "f7",
	tea.KeyF8:        "f8",
	tea.KeyF9:        "f9",
	tea.KeyF10:       "f10",
	tea.KeyF11:       "f11",
	tea.KeyF12:       "f12",
}

var buttons = map[tea.MouseButton]event.Button{
	tea.MouseLeft:       event.ButtonLeft,
	tea.MouseMiddle:     event.ButtonMiddle,
	tea.MouseRight:      event.ButtonRight,
	tea.MouseWheelUp:    event.ButtonWheelUp,
	tea.MouseWheelDown:  event.ButtonWheelDown,
	tea.MouseWheelLeft:  event.ButtonWheelLeft,
	tea.MouseWheelRight: event.ButtonWheelRight,
}

func mods(m tea.KeyMod) event.Mod {
	var out event.Mod
	if m.Contains(tea.ModShift) {
		out |= event.ModShift
	}
	if m.Contains(tea.ModAlt) || m.Contains(tea.ModMeta) {
		out |= event.ModAlt
	}
	if m.Contains(tea.ModCtrl) {
		out |= event.ModCtrl
	}
	if m.Contains(tea.ModSuper) {
		out |= event.ModSuper
	}
	return out
}

// Normalize converts a bubbletea key, mouse or paste message. Other
// messages, key releases, empty pastes and unsupported buttons report false.
func Normalize(msg tea.Msg) (event.Event, bool) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return NormalizeKey(msg.Key())
	case tea.MouseMsg:
		return NormalizeMouse(msg)
	case tea.PasteMsg:
		if msg.Content == "" {
			return nil, false
		}
		return event.Paste{Text: msg.Content}, true
	}
	return nil, false
}

// NormalizeKey converts a key press. Character keys are named by their
// lower-case rune with shift in the modifiers.
func NormalizeKey(k tea.Key) (event.Key, bool) {
	ev := event.Key{Mod: mods(k.Mod)}
	if name, ok := keyNames[k.Code]; ok {
		ev.Name = name
		if name == "space" {
			ev.Text = " "
		}
		return ev, true
	}
	if k.Code == tea.KeyExtended || k.Code == 0 {
		// Pasted or composed text without a single key code.
		if k.Text == "" {
			return ev, false
		}
		ev.Name, ev.Text = k.Text, k.Text
		return ev, true
	}
	if !unicode.IsPrint(k.Code) {
		return ev, false
	}

	code := k.Code
	if unicode.IsUpper(code) {
		code = unicode.ToLower(code)
		ev.Mod |= event.ModShift
	}
	ev.Name = string(code)
	ev.Text = k.Text
	if ev.Text == "" && ev.Mod&^event.ModShift == 0 {
		ev.Text = string(k.Code)
	}
	return ev, true
}

// NormalizeMouse converts a mouse message.
func NormalizeMouse(msg tea.MouseMsg) (event.Pointer, bool) {
	m := msg.Mouse()
	p := event.Pointer{X: m.X, Y: m.Y, Button: buttons[m.Button], Mod: mods(m.Mod)}

	switch msg.(type) {
	case tea.MouseClickMsg:
		p.Phase = event.PhasePress
	case tea.MouseReleaseMsg:
		p.Phase = event.PhaseRelease
	case tea.MouseWheelMsg:
		p.Phase = event.PhaseScroll
	case tea.MouseMotionMsg:
		p.Phase = event.PhaseMove
		if m.Button != tea.MouseNone {
			p.Phase = event.PhaseDrag
		}
	default:
		return p, false
	}
	if p.Button == event.ButtonNone && (p.Phase == event.PhasePress || p.Phase == event.PhaseScroll) {
		return p, false
	}
	return p, true
}
