package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
)

// cursorKeys map to the final byte of their CSI/SS3 sequence.
var cursorKeys = map[string]byte{
	"up": 'A', "down": 'B', "right": 'C', "left": 'D', "home": 'H', "end": 'F',
}

// tildeKeys are encoded as CSI n ~.
var tildeKeys = map[string]int{
	"insert": 2, "delete": 3, "pgup": 5, "pgdown": 6,
	"f5": 15, "f6": 17, "f7": 18, "f8": 19, "f9": 20, "f10": 21, "f11": 23, "f12": 24,
}

var ss3Keys = map[string]byte{"f1": 'P', "f2": 'Q', "f3": 'R', "f4": 'S'}

// xtermMod returns the xterm modifier parameter (1 + bitmask), or 1 for none.
func xtermMod(m event.Mod) int {
	p := 0
	if m.Contains(event.ModShift) {
		p |= 1
	}
	if m.Contains(event.ModAlt) {
		p |= 2
	}
	if m.Contains(event.ModCtrl) {
		p |= 4
	}
	return p + 1
}

// EncodeKey returns the bytes an xterm sends for k. appCursor selects SS3
// arrow sequences (DECCKM). Keys with no encoding return nil.
func EncodeKey(k event.Key, appCursor bool) []byte {
	mod := xtermMod(k.Mod)

	if final, ok := cursorKeys[k.Name]; ok {
		switch {
		case mod > 1:
			return fmt.Appendf(nil, "\x1b[1;%d%c", mod, final)
		case appCursor:
			return []byte{0x1b, 'O', final}
		default:
			return []byte{0x1b, '[', final}
		}
	}
	if n, ok := tildeKeys[k.Name]; ok {
		if mod > 1 {
			return fmt.Appendf(nil, "\x1b[%d;%d~", n, mod)
		}
		return fmt.Appendf(nil, "\x1b[%d~", n)
	}
	if final, ok := ss3Keys[k.Name]; ok {
		if mod > 1 {
			return fmt.Appendf(nil, "\x1b[1;%d%c", mod, final)
		}
		return []byte{0x1b, 'O', final}
	}

	var out []byte
	switch k.Name {
	case "enter":
		out = []byte{'\r'}
	case "tab":
		if k.Mod.Contains(event.ModShift) {
			return []byte("\x1b[Z")
		}
		out = []byte{'\t'}
	case "backspace":
		out = []byte{0x7f}
		if k.Mod.Contains(event.ModCtrl) {
			out = []byte{0x08}
		}
	case "esc":
		out = []byte{0x1b}
	case "space":
		out = []byte{' '}
		if k.Mod.Contains(event.ModCtrl) {
			out = []byte{0x00}
		}
	default:
		out = encodeRune(k)
	}
	if out == nil {
		return nil
	}
	if k.Mod.Contains(event.ModAlt) {
		return append([]byte{0x1b}, out...)
	}
	return out
}

// encodeRune handles character keys, folding Ctrl into C0 controls.
func encodeRune(k event.Key) []byte {
	if k.Mod.Contains(event.ModCtrl) {
		if len(k.Name) != 1 {
			return nil
		}
		c := k.Name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return []byte{c - 'a' + 1}
		case c >= 'A' && c <= 'Z':
			return []byte{c - 'A' + 1}
		case c >= '@' && c <= '_':
			return []byte{c - '@'}
		case c == '?':
			return []byte{0x7f}
		case c == '2':
			return []byte{0x00}
		case c >= '3' && c <= '7':
			// ctrl+3..7 map to ESC, FS, GS, RS, US.
			return []byte{c - '3' + 0x1b}
		case c == '8':
			return []byte{0x7f}
		}
		return nil
	}
	if k.Text != "" {
		return []byte(k.Text)
	}
	if len([]rune(k.Name)) == 1 {
		return []byte(k.Name)
	}
	return nil
}

// pasteNewlines turns pasted line breaks into the carriage returns a typed
// enter sends.
var pasteNewlines = strings.NewReplacer("\r\n", "\r", "\n", "\r")

// EncodePaste returns the bytes for pasted text. With bracketed set the text
// is framed so the program can tell it from typing; an end marker inside the
// text is removed so it cannot close the frame early.
func EncodePaste(text string, bracketed bool) []byte {
	text = pasteNewlines.Replace(text)
	if !bracketed {
		return []byte(text)
	}
	text = strings.ReplaceAll(text, ansi.BracketedPasteEnd, "")
	return []byte(ansi.BracketedPasteStart + text + ansi.BracketedPasteEnd)
}
