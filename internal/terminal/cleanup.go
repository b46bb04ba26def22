package terminal

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// resetSequence undoes every mode the desktop enables on the host terminal.
var resetSequence = strings.Join([]string{
	ansi.ResetModeMouseNormal,
	ansi.ResetModeMouseButtonEvent,
	ansi.ResetModeMouseAnyEvent,
	ansi.ResetModeFocusEvent,
	ansi.ResetModeMouseExtSgr,
	ansi.ResetModeAltScreenSaveCursor,
	ansi.ResetStyle,
	ansi.ShowCursor,
	"\r\n",
}, "")

// ResetTerminal writes the sequences that return the host terminal to a
// clean state. It is used when startup fails after the display was taken
// over, or when the program is torn down by a signal.
func ResetTerminal(w io.Writer) {
	_, _ = io.WriteString(w, resetSequence)
	if s, ok := w.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
