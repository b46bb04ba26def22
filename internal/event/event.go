// Package event defines the input events and outcome tokens shared by the
// window manager, the input router and the event loop.
package event

import "strings"

// Mod is a set of keyboard modifiers.
type Mod uint8

// Modifier flags.
const (
	ModShift Mod = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
)

// Contains reports whether all modifiers in o are set in m.
func (m Mod) Contains(o Mod) bool {
	return m&o == o
}

// Event is a Key, a Pointer or a Paste.
type Event interface {
	isEvent()
}

// Key is a normalized key press.
type Key struct {
	// Name is the logical key id: "enter", "tab", "up", "f10", or the base
	// rune for character keys ("a", "1", "/").
	Name string
	// Text is the printable text the key produces, empty for control keys.
	Text string
	Mod  Mod
}

func (Key) isEvent() {}

// String returns the keystroke in binding notation, e.g. "ctrl+shift+a".
func (k Key) String() string {
	var b strings.Builder
	if k.Mod.Contains(ModCtrl) {
		b.WriteString("ctrl+")
	}
	if k.Mod.Contains(ModAlt) {
		b.WriteString("alt+")
	}
	if k.Mod.Contains(ModShift) {
		b.WriteString("shift+")
	}
	if k.Mod.Contains(ModSuper) {
		b.WriteString("super+")
	}
	b.WriteString(k.Name)
	return b.String()
}

// Printable reports whether the key inserts text without a command modifier.
func (k Key) Printable() bool {
	return k.Text != "" && k.Mod&^ModShift == 0
}

// Paste is text the host terminal delivered as one bracketed paste.
type Paste struct {
	Text string
}

func (Paste) isEvent() {}

// Button identifies a pointer button.
type Button uint8

// Pointer buttons.
const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
	ButtonWheelLeft
	ButtonWheelRight
)

// Phase is the stage of a pointer interaction.
type Phase uint8

// Pointer phases. DoubleClick replaces the second Press of a double click.
const (
	PhasePress Phase = iota
	PhaseDoubleClick
	PhaseDrag
	PhaseRelease
	PhaseScroll
	PhaseMove
)

var phaseNames = [...]string{"press", "double-click", "drag", "release", "scroll", "move"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Pointer is a normalized mouse event in screen cells.
type Pointer struct {
	X, Y   int
	Button Button
	Phase  Phase
	Mod    Mod
}

func (Pointer) isEvent() {}

// IsPress reports whether the event starts a click (single or double).
func (p Pointer) IsPress() bool {
	return p.Phase == PhasePress || p.Phase == PhaseDoubleClick
}

// Local returns p translated so that (x0, y0) becomes the origin.
func (p Pointer) Local(x0, y0 int) Pointer {
	p.X -= x0
	p.Y -= y0
	return p
}

// ScrollDelta returns -1 for wheel up, +1 for wheel down and 0 otherwise.
func (p Pointer) ScrollDelta() int {
	switch p.Button {
	case ButtonWheelUp:
		return -1
	case ButtonWheelDown:
		return 1
	}
	return 0
}
