package app

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Smallest terminal the desktop can lay out: menu bar, a workspace that
// fits a minimum window, taskbar and status line.
const (
	MinCols = 40
	MinRows = 10
)

// ErrFatalSetup marks failures that stop the desktop before it can start.
var ErrFatalSetup = errors.New("cannot start desktop")

// CheckTerminal verifies that in and out are terminals of a usable size.
func CheckTerminal(in, out *os.File) error {
	if !term.IsTerminal(int(in.Fd())) {
		return fmt.Errorf("%w: stdin is not a terminal", ErrFatalSetup)
	}
	if !term.IsTerminal(int(out.Fd())) {
		return fmt.Errorf("%w: stdout is not a terminal", ErrFatalSetup)
	}
	cols, rows, err := term.GetSize(int(out.Fd()))
	if err != nil {
		return fmt.Errorf("%w: query terminal size: %w", ErrFatalSetup, err)
	}
	if cols < MinCols || rows < MinRows {
		return fmt.Errorf("%w: terminal is %dx%d, need at least %dx%d", ErrFatalSetup, cols, rows, MinCols, MinRows)
	}
	return nil
}
