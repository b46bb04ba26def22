package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
)

// Button is a dialog button and the outcome it produces.
type Button struct {
	Label   string
	Outcome event.Outcome
}

// Dialog is a centred modal box with a word-wrapped message and a row of
// buttons.
type Dialog struct {
	Title    string
	Message  string
	Buttons  []Button
	Selected int
}

// MessageDialog returns a dialog with a single OK button.
func MessageDialog(title, msg string) *Dialog {
	return &Dialog{
		Title:   title,
		Message: msg,
		Buttons: []Button{{Label: "OK", Outcome: event.None()}},
	}
}

// ConfirmDialog returns a Yes/No dialog; Yes produces onYes.
func ConfirmDialog(title, prompt string, onYes event.Outcome) *Dialog {
	return &Dialog{
		Title:   title,
		Message: prompt,
		Buttons: []Button{
			{Label: "Yes", Outcome: onYes},
			{Label: "No", Outcome: event.None()},
		},
	}
}

// HandleKey moves the selection with left, right and tab. Enter activates
// the selected button and Esc the last one. done is set when the dialog
// should close.
func (d *Dialog) HandleKey(k event.Key) (out event.Outcome, done bool) {
	n := len(d.Buttons)
	if n == 0 {
		return event.None(), true
	}
	switch k.Name {
	case "left":
		d.Selected = (d.Selected - 1 + n) % n
	case "right", "tab":
		if k.Name == "tab" && k.Mod.Contains(event.ModShift) {
			d.Selected = (d.Selected - 1 + n) % n
		} else {
			d.Selected = (d.Selected + 1) % n
		}
	case "enter", "space":
		return d.Buttons[d.Selected].Outcome, true
	case "esc":
		return d.Buttons[n-1].Outcome, true
	}
	return event.None(), false
}

// HandlePointer activates a button under a press. Other events are
// swallowed.
func (d *Dialog) HandlePointer(p event.Pointer, bounds uv.Rectangle) (out event.Outcome, done bool) {
	if !p.IsPress() || p.Button != event.ButtonLeft {
		return event.None(), false
	}
	for i, r := range d.buttonRects(d.Rect(bounds)) {
		if uv.Pos(p.X, p.Y).In(r) {
			d.Selected = i
			return d.Buttons[i].Outcome, true
		}
	}
	return event.None(), false
}

func buttonLabel(s string) string { return "[ " + s + " ]" }

func (d *Dialog) buttonsWidth() int {
	w := 0
	for i, b := range d.Buttons {
		if i > 0 {
			w += 2
		}
		w += TextWidth(buttonLabel(b.Label))
	}
	return w
}

// layout returns the rendered box and its wrapped message lines for a
// screen of the given bounds.
func (d *Dialog) layout(bounds uv.Rectangle, ascii bool, pal Palette) (box string, lines []string) {
	maxInner := max(bounds.Dx()-8, 10)
	inner := max(TextWidth(d.Title)+2, d.buttonsWidth(), 24)
	for _, l := range strings.Split(d.Message, "\n") {
		inner = max(inner, min(TextWidth(l), maxInner*2/3))
	}
	inner = min(inner, maxInner)

	wrapped := ansi.Wrap(d.Message, inner, " -")
	lines = strings.Split(wrapped, "\n")
	if maxLines := max(bounds.Dy()-8, 1); len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	border := lipgloss.RoundedBorder()
	if ascii {
		border = lipgloss.ASCIIBorder()
	}
	body := strings.Join(lines, "\n") + "\n\n"
	st := lipgloss.NewStyle().
		Border(border).
		BorderForeground(pal[colorBCyan]).
		BorderBackground(pal[colorWhite]).
		Background(pal[colorWhite]).
		Foreground(pal[colorBlack]).
		Padding(1, 2).
		Width(inner + 6)
	return st.Render(body), lines
}

// Rect returns the dialog's box, centred in bounds.
func (d *Dialog) Rect(bounds uv.Rectangle) uv.Rectangle {
	// Both borders are one cell wide so the glyph set does not matter here.
	box, _ := d.layout(bounds, false, ANSIPalette)
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x := bounds.Min.X + max((bounds.Dx()-w)/2, 0)
	y := bounds.Min.Y + max((bounds.Dy()-h)/2, 0)
	return uv.Rect(x, y, w, h)
}

// buttonRects places the buttons centred on the last content row.
func (d *Dialog) buttonRects(r uv.Rectangle) []uv.Rectangle {
	y := r.Max.Y - 3
	x := r.Min.X + max((r.Dx()-d.buttonsWidth())/2, 0)
	out := make([]uv.Rectangle, len(d.Buttons))
	for i, b := range d.Buttons {
		w := TextWidth(buttonLabel(b.Label))
		out[i] = uv.Rect(x, y, w, 1)
		x += w + 2
	}
	return out
}

// Draw paints the dialog with its shadow, title and buttons.
func (d *Dialog) Draw(scr uv.Screen, th *Theme) {
	bounds := scr.Bounds()
	box, _ := d.layout(bounds, th.ASCII, th.Palette)
	r := d.Rect(bounds)

	Shadow(scr, r, th.Shadow)
	uv.NewStyledString(box).Draw(scr, r)

	if d.Title != "" {
		title := " " + Truncate(d.Title, r.Dx()-6) + " "
		x := r.Min.X + (r.Dx()-TextWidth(title))/2
		DrawText(scr, x, r.Min.Y, TextWidth(title), title, th.DialogButtonSelected)
	}
	for i, br := range d.buttonRects(r) {
		st := th.DialogButton
		if i == d.Selected {
			st = th.DialogButtonSelected
		}
		DrawText(scr, br.Min.X, br.Min.Y, br.Dx(), buttonLabel(d.Buttons[i].Label), st)
	}
}
