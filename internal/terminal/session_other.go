//go:build !unix

package terminal

import (
	"os"
	"syscall"

	"github.com/charmbracelet/x/xpty"
)

// Without job control signals a resize notification is a no-op; ConPTY
// informs the child itself.
var (
	sigWinch os.Signal
	sigInt   = os.Interrupt
)

func sysProcAttr() *syscall.SysProcAttr { return nil }

func signalForeground(_ xpty.Pty, proc *os.Process, sig os.Signal) {
	if sig != nil {
		_ = proc.Signal(sig)
	}
}

func hangup(proc *os.Process) { _ = proc.Kill() }

func kill(proc *os.Process) { _ = proc.Kill() }

func signalled(*os.ProcessState) (int, bool) { return 0, false }

func isTransient(error) bool { return false }
