package app

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
	"github.com/Gaurav-Gosain/tuidesk/internal/ui"
)

func numbered(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return strings.Join(lines, "\n")
}

func TestTextViewWraps(t *testing.T) {
	v := NewTextView("t", "short\nthe quick brown fox jumps", ui.DefaultTheme(true))
	v.Resize(12, 5)

	lines := v.Lines()
	if len(lines) < 3 || lines[0] != "short" {
		t.Fatalf("lines = %q", lines)
	}
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > 10 {
			t.Errorf("line %q is %d cells wide", l, w)
		}
	}
	if got := strings.Join(strings.Fields(strings.Join(lines[1:], " ")), " "); got != "the quick brown fox jumps" {
		t.Errorf("wrapped text lost words: %q", got)
	}
}

func TestTextViewScrolls(t *testing.T) {
	v := NewTextView("t", numbered(20), ui.DefaultTheme(false))
	v.Resize(30, 5)

	steps := []struct {
		key  string
		want int
	}{
		{"down", 1},
		{"j", 2},
		{"up", 1},
		{"pgdown", 5},
		{"end", 15},
		{"down", 15},
		{"pgup", 11},
		{"home", 0},
		{"k", 0},
	}
	for _, s := range steps {
		if out := v.HandleKey(event.Key{Name: s.key}); out.Kind != event.OutcomeRefresh {
			t.Errorf("%s: outcome %v", s.key, out)
		}
		if v.Offset() != s.want {
			t.Fatalf("after %s offset = %d, want %d", s.key, v.Offset(), s.want)
		}
	}

	v.HandleScroll(100)
	if v.Offset() != 15 {
		t.Errorf("scroll past end offset = %d", v.Offset())
	}
	if out := v.HandleKey(event.Key{Name: "x", Text: "x"}); !out.IsNone() {
		t.Errorf("unbound key = %v", out)
	}
}

func TestTextViewCloses(t *testing.T) {
	v := NewTextView("t", "", ui.DefaultTheme(false))
	for _, name := range []string{"esc", "q"} {
		out := v.HandleKey(event.Key{Name: name})
		if out.Kind != event.OutcomeClose || out.Target != "" {
			t.Errorf("%s = %+v, want an untargeted close", name, out)
		}
	}
}

func TestLogViewFollows(t *testing.T) {
	ring := NewLogRing(100)
	fmt.Fprint(ring, numbered(3))
	v := NewLogView(ring, ui.DefaultTheme(false))
	v.Resize(40, 2)

	if v.Offset() != 1 {
		t.Fatalf("offset = %d, want the tail", v.Offset())
	}
	if out := v.Step(); !out.IsNone() {
		t.Errorf("Step without new lines = %v", out)
	}

	fmt.Fprintln(ring, "fresh")
	if out := v.Step(); out.Kind != event.OutcomeRefresh {
		t.Fatalf("Step = %v", out)
	}
	if len(v.Lines()) != 4 || v.Offset() != 2 {
		t.Errorf("lines = %q offset = %d", v.Lines(), v.Offset())
	}

	// Scrolling up stops following.
	v.HandleKey(event.Key{Name: "home"})
	fmt.Fprintln(ring, "more")
	v.Step()
	if v.Offset() != 0 {
		t.Errorf("offset = %d, want 0 while scrolled back", v.Offset())
	}
}

func TestLogViewClear(t *testing.T) {
	ring := NewLogRing(10)
	v := NewLogView(ring, ui.DefaultTheme(false))
	if items := v.MenuItems(); len(items) != 1 || !items[0].Disabled {
		t.Fatalf("items = %+v, want Clear disabled", items)
	}

	fmt.Fprintln(ring, "boom")
	v.Step()
	if v.MenuItems()[0].Disabled {
		t.Fatal("Clear disabled with lines present")
	}
	if out := v.HandleAction("other"); !out.IsNone() {
		t.Errorf("unknown action = %v", out)
	}
	if out := v.HandleAction(ActionClearLog); out.Kind != event.OutcomeRefresh {
		t.Errorf("clear = %v", out)
	}
	if ring.Len() != 0 || len(v.Lines()) != 0 {
		t.Error("log not cleared")
	}
}
