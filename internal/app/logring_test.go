package app

import (
	"fmt"
	"slices"
	"testing"
)

func TestLogRingWraps(t *testing.T) {
	r := NewLogRing(3)
	for i := range 5 {
		fmt.Fprintf(r, "line %d\n", i)
	}
	want := []string{"line 2", "line 3", "line 4"}
	if got := r.Lines(); !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d", r.Len())
	}
	if r.Seq() != 5 {
		t.Errorf("Seq() = %d, want 5", r.Seq())
	}
}

func TestLogRingSplitsWrites(t *testing.T) {
	r := NewLogRing(10)
	n, err := r.Write([]byte("one\r\n\ntwo\nthree"))
	if err != nil || n != 15 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	want := []string{"one", "two", "three"}
	if got := r.Lines(); !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestLogRingClear(t *testing.T) {
	r := NewLogRing(0)
	r.Write([]byte("a\nb\n"))
	seq := r.Seq()
	r.Clear()
	if r.Len() != 0 || len(r.Lines()) != 0 {
		t.Fatal("ring not empty after Clear")
	}
	if r.Seq() == seq {
		t.Error("Clear did not change Seq")
	}
	r.Write([]byte("c"))
	if got := r.Lines(); !slices.Equal(got, []string{"c"}) {
		t.Errorf("Lines() = %q", got)
	}
}
