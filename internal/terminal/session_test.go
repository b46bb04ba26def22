package terminal

import (
	"bytes"
	"errors"
	"os"
	"runtime"
	"testing"
	"time"
)

func startShell(t *testing.T, script string) *Session {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix shell")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	s, err := Open("/bin/sh", 40, 10, Options{Args: []string{"-c", script}})
	if err != nil {
		t.Skipf("cannot open a pty here: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// readUntil collects output until it contains want or the deadline passes.
func readUntil(t *testing.T, s *Session, want string) []byte {
	t.Helper()
	var got []byte
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		got = append(got, s.ReadAvailable()...)
		if bytes.Contains(got, []byte(want)) {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("output %q never contained %q", got, want)
	return nil
}

func TestSessionOutputAndExit(t *testing.T) {
	s := startShell(t, "printf hello; exit 3")
	readUntil(t, s, "hello")

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("child did not exit")
	}
	code, ok := s.PollExit()
	if !ok || code != 3 {
		t.Errorf("PollExit = %d, %v; want 3, true", code, ok)
	}
	if again, ok := s.PollExit(); !ok || again != code {
		t.Error("PollExit not idempotent")
	}
}

func TestSessionInputAndResize(t *testing.T) {
	s := startShell(t, "read line; echo \"got $line\"; stty size")
	if _, err := s.Write([]byte("ping\r")); err != nil {
		t.Fatal(err)
	}
	// Both lines can arrive in one read.
	out := readUntil(t, s, "10 40")
	if !bytes.Contains(out, []byte("got ping")) {
		t.Errorf("output %q lacks the echoed input", out)
	}
	if cols, rows := s.Size(); cols != 40 || rows != 10 {
		t.Errorf("Size = %dx%d", cols, rows)
	}
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	s := startShell(t, "sleep 30")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := s.PollExit(); !ok {
		t.Error("child still running after Close")
	}
	if _, err := s.Write([]byte("x")); !errors.Is(err, os.ErrClosed) {
		t.Errorf("Write after Close = %v", err)
	}
}

func TestOpenMissingShell(t *testing.T) {
	_, err := Open("/definitely/not/a/shell", 10, 5, Options{})
	var se *SpawnError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SpawnError", err)
	}
	if se.Shell != "/definitely/not/a/shell" {
		t.Errorf("Shell = %q", se.Shell)
	}
}
