package app

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
	"github.com/Gaurav-Gosain/tuidesk/internal/ui"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
)

// ActionClearLog empties the log ring from the Log Viewer's window menu.
const ActionClearLog = "log.clear"

// TextView is a read-only scrollable text window. Lines are word wrapped to
// the content width.
type TextView struct {
	wm.NopContent

	title string
	text  []string
	lines []string
	theme *ui.Theme

	cols, rows int
	offset     int
	// follow keeps the last line in view as text is added.
	follow bool
}

// NewTextView returns a viewer for body.
func NewTextView(title, body string, th *ui.Theme) *TextView {
	v := &TextView{title: title, theme: th}
	v.SetText(strings.Split(body, "\n"))
	return v
}

// Title implements wm.Titler.
func (v *TextView) Title() string { return v.title }

// SetText replaces the shown lines.
func (v *TextView) SetText(text []string) {
	v.text = text
	v.rewrap()
	if v.follow {
		v.offset = v.maxOffset()
	}
	v.offset = min(v.offset, v.maxOffset())
}

// Lines returns the wrapped lines.
func (v *TextView) Lines() []string { return v.lines }

// Offset returns the index of the top visible line.
func (v *TextView) Offset() int { return v.offset }

func (v *TextView) width() int { return v.cols - 2 }

func (v *TextView) rewrap() {
	w := v.width()
	lines := make([]string, 0, len(v.text))
	for _, l := range v.text {
		if w <= 0 || ansi.StringWidth(l) <= w {
			lines = append(lines, l)
			continue
		}
		lines = append(lines, strings.Split(ansi.Wrap(l, w, " -"), "\n")...)
	}
	v.lines = lines
}

func (v *TextView) maxOffset() int {
	return max(len(v.lines)-v.rows, 0)
}

func (v *TextView) scroll(delta int) {
	v.offset = min(max(v.offset+delta, 0), v.maxOffset())
	v.follow = v.offset == v.maxOffset()
}

// Resize implements wm.Resizer.
func (v *TextView) Resize(cols, rows int) error {
	v.cols, v.rows = cols, rows
	v.rewrap()
	if v.follow {
		v.offset = v.maxOffset()
	}
	v.offset = min(v.offset, v.maxOffset())
	return nil
}

// HandleKey scrolls with the arrow and page keys. Esc and q close the
// window.
func (v *TextView) HandleKey(k event.Key) event.Outcome {
	page := max(v.rows-1, 1)
	switch k.Name {
	case "up", "k":
		v.scroll(-1)
	case "down", "j":
		v.scroll(1)
	case "pgup":
		v.scroll(-page)
	case "pgdown", "space":
		v.scroll(page)
	case "home":
		v.scroll(-v.offset)
	case "end":
		v.scroll(v.maxOffset())
	case "esc", "q":
		return event.Close("")
	default:
		return event.None()
	}
	return event.Refresh()
}

// HandleScroll moves the view by delta lines.
func (v *TextView) HandleScroll(delta int) event.Outcome {
	v.scroll(delta)
	return event.Refresh()
}

// Draw paints the visible lines with a one-cell margin and a scrollbar when
// the text overflows.
func (v *TextView) Draw(scr uv.Screen, area uv.Rectangle) {
	th := v.theme
	for i := range area.Dy() {
		j := v.offset + i
		if j >= len(v.lines) {
			break
		}
		ui.DrawText(scr, area.Min.X+1, area.Min.Y+i, area.Dx()-2, v.lines[j], th.Body)
	}
	if len(v.lines) > area.Dy() {
		ui.DrawScrollbar(scr, area.Max.X-1, area.Min.Y, area.Dy(), len(v.lines), area.Dy(), v.offset, th)
	}
}

// LogView is a TextView over the log ring that follows new entries.
type LogView struct {
	*TextView
	ring *LogRing
	seen uint64
}

// NewLogView returns a viewer showing ring.
func NewLogView(ring *LogRing, th *ui.Theme) *LogView {
	v := &LogView{TextView: NewTextView("Log Viewer", "", th), ring: ring}
	v.follow = true
	v.refresh()
	return v
}

func (v *LogView) refresh() {
	v.seen = v.ring.Seq()
	v.SetText(v.ring.Lines())
}

// Step picks up lines logged since the last frame.
func (v *LogView) Step() event.Outcome {
	if v.ring.Seq() == v.seen {
		return event.None()
	}
	v.refresh()
	return event.Refresh()
}

// MenuItems implements wm.Menuer.
func (v *LogView) MenuItems() []event.MenuItem {
	return []event.MenuItem{{Label: "Clear Log", Action: ActionClearLog, Disabled: v.ring.Len() == 0}}
}

// HandleAction implements wm.Menuer.
func (v *LogView) HandleAction(action string) event.Outcome {
	if action != ActionClearLog {
		return event.None()
	}
	v.ring.Clear()
	v.refresh()
	return event.Refresh()
}
