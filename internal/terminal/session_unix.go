//go:build unix

package terminal

import (
	"errors"
	"os"
	"syscall"

	"github.com/charmbracelet/x/xpty"
	"golang.org/x/sys/unix"
)

const (
	sigWinch = unix.SIGWINCH
	sigInt   = unix.SIGINT
)

// sysProcAttr makes the child a session leader with the pty slave (its
// stdin) as controlling terminal. Shells such as fish refuse to start
// without one.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true, Setctty: true, Ctty: 0}
}

// foregroundGroup returns the pty's foreground process group, or 0.
func foregroundGroup(p xpty.Pty) int {
	ctl, ok := p.(interface{ Control(func(fd uintptr)) error })
	if !ok {
		return 0
	}
	var pgrp int
	_ = ctl.Control(func(fd uintptr) {
		if v, err := unix.IoctlGetInt(int(fd), unix.TIOCGPGRP); err == nil {
			pgrp = v
		}
	})
	return pgrp
}

// signalForeground delivers sig to the foreground job of the pty, falling
// back to the child itself.
func signalForeground(p xpty.Pty, proc *os.Process, sig unix.Signal) {
	if pgrp := foregroundGroup(p); pgrp > 0 {
		if err := unix.Kill(-pgrp, sig); err == nil {
			return
		}
	}
	_ = unix.Kill(proc.Pid, sig)
}

// hangup sends SIGHUP to the child's process group. The child is a session
// leader, so its pid is also its group id.
func hangup(proc *os.Process) {
	if err := unix.Kill(-proc.Pid, unix.SIGHUP); err != nil {
		_ = proc.Signal(unix.SIGHUP)
	}
}

func kill(proc *os.Process) {
	if err := unix.Kill(-proc.Pid, unix.SIGKILL); err != nil {
		_ = proc.Kill()
	}
}

func signalled(state *os.ProcessState) (int, bool) {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return int(ws.Signal()), true
}

// isTransient reports pty errors that mean "no data right now" or "the
// other side hung up" rather than a fault.
func isTransient(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) || errors.Is(err, unix.EIO)
}
