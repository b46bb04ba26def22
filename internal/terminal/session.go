// Package terminal runs child shells on pseudo-terminals and presents them as
// window contents.
//
// A Session never blocks its caller: pty reads and writes happen on worker
// goroutines that exchange bytes with the event loop through bounded queues.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"charm.land/log/v2"
	"github.com/charmbracelet/x/xpty"

	"github.com/Gaurav-Gosain/tuidesk/internal/pool"
)

// Queue limits.
const (
	DefaultWriteQueue = 64 * 1024
	DefaultReadBuffer = 1024 * 1024
)

// closeWait bounds how long Close waits for the child after hanging up.
const closeWait = 500 * time.Millisecond

// SpawnError reports a child process that could not be started.
type SpawnError struct {
	Shell string
	Err   error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("cannot start %s: %v", e.Shell, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Options configures a Session.
type Options struct {
	// Dir is the working directory; empty inherits ours.
	Dir string
	// Env is the base environment; nil uses os.Environ().
	Env []string
	// Args are passed to the shell.
	Args []string
	// WriteQueue bounds input bytes waiting for the child.
	WriteQueue int
	// ReadBuffer bounds output bytes waiting for the event loop.
	ReadBuffer int
	Logger     *log.Logger
}

// Session is one child process attached to a pseudo-terminal.
type Session struct {
	shell string
	pty   xpty.Pty
	cmd   *exec.Cmd
	log   *log.Logger

	mu         sync.Mutex
	cols, rows int

	in  *byteQueue
	out *byteQueue

	exited   chan struct{}
	exitCode int

	quit      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Open starts shell on a new pty of cols × rows cells.
func Open(shell string, cols, rows int, opts Options) (*Session, error) {
	cols, rows = max(cols, 1), max(rows, 1)
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.WriteQueue <= 0 {
		opts.WriteQueue = DefaultWriteQueue
	}
	if opts.ReadBuffer <= 0 {
		opts.ReadBuffer = DefaultReadBuffer
	}

	path, err := exec.LookPath(shell)
	if err != nil {
		return nil, &SpawnError{Shell: shell, Err: err}
	}

	pty, err := xpty.NewPty(cols, rows)
	if err != nil {
		return nil, &SpawnError{Shell: shell, Err: fmt.Errorf("allocate pty: %w", err)}
	}

	// #nosec G204 - the shell is user configured by design
	cmd := exec.Command(path, opts.Args...)
	cmd.Env = ChildEnv(opts.Env, HostProfile())
	cmd.Dir = opts.Dir
	cmd.SysProcAttr = sysProcAttr()

	if err := pty.Start(cmd); err != nil {
		_ = pty.Close()
		return nil, &SpawnError{Shell: shell, Err: err}
	}
	// Some pty implementations only honour the size once a process is attached.
	_ = pty.Resize(cols, rows)

	s := &Session{
		shell:  shell,
		pty:    pty,
		cmd:    cmd,
		log:    opts.Logger.WithPrefix(filepath.Base(shell)),
		cols:   cols,
		rows:   rows,
		in:     newByteQueue(opts.WriteQueue),
		out:    newByteQueue(opts.ReadBuffer),
		exited: make(chan struct{}),
		quit:   make(chan struct{}),
	}
	go s.readLoop()
	go s.writeLoop()
	go s.waitLoop()

	s.log.Debug("session started", "pid", cmd.Process.Pid, "cols", cols, "rows", rows)
	return s, nil
}

// Shell returns the program the session runs.
func (s *Session) Shell() string { return s.shell }

// Pid returns the child's process id.
func (s *Session) Pid() int { return s.cmd.Process.Pid }

// Size returns the current pty dimensions.
func (s *Session) Size() (cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cols, s.rows
}

func (s *Session) readLoop() {
	bufPtr := pool.GetByteSlice()
	defer pool.PutByteSlice(bufPtr)
	buf := *bufPtr

	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			s.out.Push(buf[:n])
		}
		if err != nil {
			// EOF and EIO after the child hangs up are the normal end of
			// the stream.
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) && !isTransient(err) {
				s.log.Debug("pty read ended", "err", err)
			}
			return
		}
	}
}

func (s *Session) writeLoop() {
	for {
		select {
		case <-s.quit:
			return
		case <-s.exited:
			return
		case <-s.in.ready:
		}
		if err := writeAll(s.pty, s.in.Take(), s.quit, s.exited); err != nil {
			if !errors.Is(err, errStopped) {
				s.log.Debug("pty write failed", "err", err)
			}
			return
		}
	}
}

// writeRetry is the pause before writing again after a transient error.
const writeRetry = 5 * time.Millisecond

var errStopped = errors.New("session stopped")

// writeAll writes p to w, pausing between attempts that fail with a
// transient error. It gives up with errStopped once quit or exited closes.
func writeAll(w io.Writer, p []byte, quit, exited <-chan struct{}) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		p = p[n:]
		if err == nil {
			continue
		}
		if !isTransient(err) {
			return err
		}
		select {
		case <-quit:
			return errStopped
		case <-exited:
			return errStopped
		case <-time.After(writeRetry):
		}
	}
	return nil
}

func (s *Session) waitLoop() {
	err := xpty.WaitProcess(context.Background(), s.cmd)
	s.exitCode = exitCode(s.cmd.ProcessState, err)
	close(s.exited)
	s.log.Debug("session exited", "code", s.exitCode)
}

// Write queues p for the child. It never blocks; when the queue is full the
// oldest pending bytes are dropped.
func (s *Session) Write(p []byte) (int, error) {
	select {
	case <-s.quit:
		return 0, os.ErrClosed
	default:
	}
	s.in.Push(p)
	return len(p), nil
}

// Dropped returns the number of input bytes discarded under backpressure.
func (s *Session) Dropped() int64 { return s.in.Dropped() }

// ReadAvailable returns the output gathered since the last call, or nil.
func (s *Session) ReadAvailable() []byte { return s.out.Take() }

// Resize changes the pty dimensions and notifies the foreground process.
func (s *Session) Resize(cols, rows int) error {
	cols, rows = max(cols, 1), max(rows, 1)
	s.mu.Lock()
	if cols == s.cols && rows == s.rows {
		s.mu.Unlock()
		return nil
	}
	s.cols, s.rows = cols, rows
	s.mu.Unlock()

	if err := s.pty.Resize(cols, rows); err != nil {
		return fmt.Errorf("resize pty: %w", err)
	}
	if !s.alive() {
		return nil
	}
	signalForeground(s.pty, s.cmd.Process, sigWinch)
	return nil
}

// Interrupt sends an interrupt to the foreground process group.
func (s *Session) Interrupt() {
	if s.alive() {
		signalForeground(s.pty, s.cmd.Process, sigInt)
	}
}

func (s *Session) alive() bool {
	select {
	case <-s.exited:
		return false
	default:
		return true
	}
}

// PollExit reports the child's exit code once it has terminated. It never
// blocks and keeps returning the same code after the first observation.
func (s *Session) PollExit() (code int, ok bool) {
	select {
	case <-s.exited:
		return s.exitCode, true
	default:
		return 0, false
	}
}

// Done is closed when the child exits.
func (s *Session) Done() <-chan struct{} { return s.exited }

// Close hangs up the child, force-kills it if it does not exit within a
// bounded wait, and releases the pty. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.quit)
		if s.alive() {
			hangup(s.cmd.Process)
			select {
			case <-s.exited:
			case <-time.After(closeWait):
				s.log.Debug("child ignored hangup, killing", "pid", s.cmd.Process.Pid)
				kill(s.cmd.Process)
				select {
				case <-s.exited:
				case <-time.After(closeWait):
				}
			}
		}
		if err := s.pty.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			s.closeErr = fmt.Errorf("close pty: %w", err)
		}
	})
	return s.closeErr
}

// exitCode converts a wait result to a shell-style status: the exit code, or
// 128+signal for a signalled child.
func exitCode(state *os.ProcessState, err error) int {
	if state == nil {
		if err != nil {
			return -1
		}
		return 0
	}
	if sig, ok := signalled(state); ok {
		return 128 + sig
	}
	return state.ExitCode()
}
