package terminal

import "sync"

// byteQueue is a bounded FIFO of bytes shared between a pty worker goroutine
// and the event loop. When a push would exceed the limit the oldest bytes are
// discarded and counted.
type byteQueue struct {
	mu      sync.Mutex
	buf     []byte
	limit   int
	dropped int64
	// ready receives a token whenever the queue goes from empty to non-empty.
	ready chan struct{}
}

func newByteQueue(limit int) *byteQueue {
	return &byteQueue{limit: max(limit, 1), ready: make(chan struct{}, 1)}
}

// Push appends p, evicting the oldest bytes when over the limit.
func (q *byteQueue) Push(p []byte) {
	if len(p) == 0 {
		return
	}
	q.mu.Lock()
	if len(p) >= q.limit {
		q.dropped += int64(len(q.buf) + len(p) - q.limit)
		q.buf = append(q.buf[:0], p[len(p)-q.limit:]...)
	} else {
		if over := len(q.buf) + len(p) - q.limit; over > 0 {
			q.dropped += int64(over)
			q.buf = append(q.buf[:0], q.buf[over:]...)
		}
		q.buf = append(q.buf, p...)
	}
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Take returns and clears the queued bytes. It never blocks on I/O.
func (q *byteQueue) Take() []byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buf) == 0 {
		return nil
	}
	out := q.buf
	q.buf = nil
	return out
}

// Len returns the number of queued bytes.
func (q *byteQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Dropped returns how many bytes were evicted since creation.
func (q *byteQueue) Dropped() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
