package app

import (
	"bytes"
	"sync"
)

// LogCapacity is how many log lines the in-app ring keeps.
const LogCapacity = 500

// LogRing keeps the most recent formatted log lines for the Log Viewer. It
// is an io.Writer so a charm logger can write into it next to the log file.
// Safe for concurrent use.
type LogRing struct {
	mu    sync.Mutex
	lines []string
	start int
	n     int
	// seq counts every line ever added, so readers can tell when to refresh.
	seq uint64
}

// NewLogRing returns a ring holding up to capacity lines.
func NewLogRing(capacity int) *LogRing {
	if capacity <= 0 {
		capacity = LogCapacity
	}
	return &LogRing{lines: make([]string, capacity)}
}

// Write adds each non-empty line of p.
func (r *LogRing) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for line := range bytes.SplitSeq(p, []byte("\n")) {
		line = bytes.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}
		r.push(string(line))
	}
	return len(p), nil
}

func (r *LogRing) push(line string) {
	c := len(r.lines)
	if r.n < c {
		r.lines[(r.start+r.n)%c] = line
		r.n++
	} else {
		r.lines[r.start] = line
		r.start = (r.start + 1) % c
	}
	r.seq++
}

// Lines returns the kept lines, oldest first.
func (r *LogRing) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, r.n)
	for i := range r.n {
		out[i] = r.lines[(r.start+i)%len(r.lines)]
	}
	return out
}

// Len returns the number of kept lines.
func (r *LogRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// Seq returns a counter that changes whenever the contents change.
func (r *LogRing) Seq() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Clear drops every line.
func (r *LogRing) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start, r.n = 0, 0
	r.seq++
}
