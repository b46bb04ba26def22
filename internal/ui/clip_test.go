package ui

import (
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

func row(scr uv.ScreenBuffer, y int) string {
	return scr.Line(y).String()
}

func TestClipDropsOutsideWrites(t *testing.T) {
	scr := uv.NewScreenBuffer(10, 4)
	c := Clip(scr, uv.Rect(2, 1, 4, 2))

	for y := range 4 {
		DrawText(c, 0, y, 10, "abcdefghij", uv.Style{})
	}

	want := []string{"", "  cdef", "  cdef", ""}
	for y, w := range want {
		if got := row(scr, y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
	if c.CellAt(0, 0) != nil {
		t.Error("CellAt outside the clip should be nil")
	}
}

func TestClipWideCellAtEdge(t *testing.T) {
	scr := uv.NewScreenBuffer(6, 1)
	c := Clip(scr, uv.Rect(0, 0, 3, 1))

	// "a" fills column 0, "世" columns 1-2, "界" would straddle 3-4.
	DrawText(c, 0, 0, 6, "a世界", uv.Style{})
	if got := row(scr, 0); got != "a世" {
		t.Errorf("row = %q, want %q", got, "a世")
	}

	scr = uv.NewScreenBuffer(6, 1)
	c = Clip(scr, uv.Rect(0, 0, 2, 1))
	c.SetCell(1, 0, &uv.Cell{Content: "世", Width: 2})
	if cell := scr.CellAt(1, 0); cell == nil || cell.Content != " " || cell.Width != 1 {
		t.Errorf("wide cell crossing the edge = %+v, want a blank", cell)
	}
	if cell := scr.CellAt(2, 0); cell == nil || cell.Width != 1 {
		t.Errorf("cell past the edge changed: %+v", cell)
	}
}

func TestClipNested(t *testing.T) {
	scr := uv.NewScreenBuffer(10, 3)
	outer := Clip(scr, uv.Rect(1, 0, 6, 3))
	inner := Clip(outer, uv.Rect(4, 0, 10, 3))

	if got := inner.Bounds(); got != uv.Rect(4, 0, 3, 3) {
		t.Fatalf("nested bounds = %v", got)
	}
	Fill(inner, scr.Bounds(), "x", uv.Style{})
	if got := row(scr, 1); got != "    xxx" {
		t.Errorf("row = %q", got)
	}
}

func TestClipOutsideParent(t *testing.T) {
	scr := uv.NewScreenBuffer(5, 2)
	c := Clip(scr, uv.Rect(3, 1, 10, 10))
	if got := c.Bounds(); got != uv.Rect(3, 1, 2, 1) {
		t.Errorf("bounds = %v", got)
	}
	Fill(c, uv.Rect(0, 0, 100, 100), "#", uv.Style{})
	if got := scr.String(); got != "\n   ##" {
		t.Errorf("screen = %q", got)
	}
}

func TestDrawText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		maxW  int
		want  string
		width int
	}{
		{"fits", "hello", 10, "hello", 5},
		{"cut", "hello", 3, "hel", 3},
		{"wide does not split", "ab世", 3, "ab", 2},
		{"wide fits", "ab世", 4, "ab世", 4},
		{"controls skipped", "a\tb", 5, "ab", 2},
		{"zero width", "abc", 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scr := uv.NewScreenBuffer(10, 1)
			n := DrawText(scr, 0, 0, tt.maxW, tt.text, uv.Style{})
			if n != tt.width {
				t.Errorf("width = %d, want %d", n, tt.width)
			}
			if got := row(scr, 0); got != tt.want {
				t.Errorf("row = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	if got := Truncate("terminal", 5); got != "term…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("abc", 5); got != "abc" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Pad("ab", 4); got != "ab  " {
		t.Errorf("Pad = %q", got)
	}
	if got := Pad("abcdef", 4); got != "abcd" {
		t.Errorf("Pad long = %q", got)
	}
}

func TestDrawFrame(t *testing.T) {
	th := DefaultTheme(false)
	scr := uv.NewScreenBuffer(30, 4)
	DrawFrame(scr, uv.Rect(0, 0, 30, 4), "Shell", true, true, th)

	top := row(scr, 0)
	if !strings.HasPrefix(top, "╔═▲ Shell") {
		t.Errorf("title row = %q", top)
	}
	if !strings.HasSuffix(top, "[─][□][×]╗") {
		t.Errorf("buttons = %q", top)
	}
	if got := row(scr, 3); got != "╚"+strings.Repeat("═", 28)+"╝" {
		t.Errorf("bottom = %q", got)
	}

	scr = uv.NewScreenBuffer(30, 4)
	DrawFrame(scr, uv.Rect(0, 0, 30, 4), "Shell", false, false, DefaultTheme(true))
	if got := row(scr, 0); got != "+-Shell"+strings.Repeat("-", 13)+"[_][^][x]+" {
		t.Errorf("ascii title row = %q", got)
	}
}
