package terminal

import (
	"testing"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
)

func TestEncodeKey(t *testing.T) {
	tests := []struct {
		name      string
		key       event.Key
		appCursor bool
		want      string
	}{
		{"text", event.Key{Name: "a", Text: "a"}, false, "a"},
		{"shifted text", event.Key{Name: "a", Text: "A", Mod: event.ModShift}, false, "A"},
		{"utf8 text", event.Key{Name: "é", Text: "é"}, false, "é"},
		{"enter", event.Key{Name: "enter"}, false, "\r"},
		{"tab", event.Key{Name: "tab"}, false, "\t"},
		{"backtab", event.Key{Name: "tab", Mod: event.ModShift}, false, "\x1b[Z"},
		{"backspace", event.Key{Name: "backspace"}, false, "\x7f"},
		{"ctrl backspace", event.Key{Name: "backspace", Mod: event.ModCtrl}, false, "\b"},
		{"esc", event.Key{Name: "esc"}, false, "\x1b"},
		{"ctrl c", event.Key{Name: "c", Mod: event.ModCtrl}, false, "\x03"},
		{"ctrl space", event.Key{Name: "space", Mod: event.ModCtrl}, false, "\x00"},
		{"ctrl bracket", event.Key{Name: "[", Mod: event.ModCtrl}, false, "\x1b"},
		{"alt x", event.Key{Name: "x", Text: "x", Mod: event.ModAlt}, false, "\x1bx"},
		{"up", event.Key{Name: "up"}, false, "\x1b[A"},
		{"up app cursor", event.Key{Name: "up"}, true, "\x1bOA"},
		{"ctrl left", event.Key{Name: "left", Mod: event.ModCtrl}, true, "\x1b[1;5D"},
		{"shift home", event.Key{Name: "home", Mod: event.ModShift}, false, "\x1b[1;2H"},
		{"delete", event.Key{Name: "delete"}, false, "\x1b[3~"},
		{"alt pgdown", event.Key{Name: "pgdown", Mod: event.ModAlt}, false, "\x1b[6;3~"},
		{"f1", event.Key{Name: "f1"}, false, "\x1bOP"},
		{"f5", event.Key{Name: "f5"}, false, "\x1b[15~"},
		{"ctrl f2", event.Key{Name: "f2", Mod: event.ModCtrl}, false, "\x1b[1;5Q"},
		{"unknown", event.Key{Name: "menu"}, false, ""},
		{"ctrl unknown", event.Key{Name: "é", Mod: event.ModCtrl}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(EncodeKey(tt.key, tt.appCursor)); got != tt.want {
				t.Errorf("EncodeKey(%v) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestEncodePaste(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		bracketed bool
		want      string
	}{
		{"plain", "echo hi\n", false, "echo hi\r"},
		{"crlf", "a\r\nb", false, "a\rb"},
		{"bracketed", "echo hi\n", true, "\x1b[200~echo hi\r\x1b[201~"},
		{"end marker removed", "x\x1b[201~rm -rf /\n", true, "\x1b[200~xrm -rf /\r\x1b[201~"},
		{"empty", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(EncodePaste(tt.text, tt.bracketed)); got != tt.want {
				t.Errorf("EncodePaste(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
