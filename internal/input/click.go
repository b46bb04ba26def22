package input

import (
	"time"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
)

// DefaultDoubleClick is the longest gap between the presses of a double
// click.
const DefaultDoubleClick = 400 * time.Millisecond

// ClickTracker recognizes double clicks: a second press of the same button
// on the same target, close in time and no more than one cell away.
type ClickTracker struct {
	Window time.Duration
	// Now is the clock; nil uses time.Now.
	Now func() time.Time

	last   time.Time
	x, y   int
	button event.Button
	target string
	armed  bool
}

// NewClickTracker returns a tracker with the given window, or the default
// when window is not positive.
func NewClickTracker(window time.Duration) *ClickTracker {
	if window <= 0 {
		window = DefaultDoubleClick
	}
	return &ClickTracker{Window: window}
}

func (c *ClickTracker) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Track returns p with its phase changed to DoubleClick when it completes a
// double click on target. Non-press events pass through untouched. A
// completed double click does not arm another one.
func (c *ClickTracker) Track(p event.Pointer, target string) event.Pointer {
	if p.Phase != event.PhasePress {
		return p
	}
	now := c.now()
	if c.armed &&
		p.Button == c.button &&
		target == c.target &&
		abs(p.X-c.x) <= 1 && abs(p.Y-c.y) <= 1 &&
		now.Sub(c.last) <= c.Window {
		c.armed = false
		p.Phase = event.PhaseDoubleClick
		return p
	}
	c.armed = true
	c.last, c.x, c.y = now, p.X, p.Y
	c.button, c.target = p.Button, target
	return p
}

// Reset forgets the previous press.
func (c *ClickTracker) Reset() { c.armed = false }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
