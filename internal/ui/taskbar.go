package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// maxTaskLabel bounds the title shown on a taskbar button.
const maxTaskLabel = 18

// TaskItem is a minimized window shown on the taskbar.
type TaskItem struct {
	ID    string
	Title string
}

// TaskButton is a laid out taskbar button.
type TaskButton struct {
	ID    string
	Label string
	Rect  uv.Rectangle
}

// LayoutTaskbar places one button per item on row y, left to right, dropping
// the ones that do not fit in width.
func LayoutTaskbar(items []TaskItem, y, width int) []TaskButton {
	var out []TaskButton
	x := 1
	for _, it := range items {
		label := "[" + Truncate(it.Title, maxTaskLabel) + "]"
		w := TextWidth(label)
		if x+w > width-1 {
			break
		}
		out = append(out, TaskButton{ID: it.ID, Label: label, Rect: uv.Rect(x, y, w, 1)})
		x += w + 1
	}
	return out
}

// TaskButtonAt returns the button covering (x, y).
func TaskButtonAt(buttons []TaskButton, x, y int) (TaskButton, bool) {
	for _, b := range buttons {
		if uv.Pos(x, y).In(b.Rect) {
			return b, true
		}
	}
	return TaskButton{}, false
}

// DrawTaskbar paints the taskbar row.
func DrawTaskbar(scr uv.Screen, y, width int, buttons []TaskButton, th *Theme) {
	HLine(scr, 0, width, y, " ", th.Taskbar)
	if len(buttons) == 0 {
		DrawText(scr, 1, y, width-2, "No minimized windows", th.Taskbar)
		return
	}
	for _, b := range buttons {
		DrawText(scr, b.Rect.Min.X, y, b.Rect.Dx(), b.Label, th.TaskButton)
	}
}

// StatusInfo is what the status line shows.
type StatusInfo struct {
	Visible, Total int
	Focused        string
	// SysInfo is the CPU and memory readout, empty when disabled.
	SysInfo string
	Clock   string
}

// DrawStatus paints the status line on row y.
func DrawStatus(scr uv.Screen, y, width int, info StatusInfo, th *Theme) {
	if width <= 0 {
		return
	}
	pal := th.Palette
	base := lipgloss.NewStyle().Background(pal[colorWhite]).Foreground(pal[colorBlack])
	accent := base.Foreground(pal[colorBlue]).Bold(true)
	sep := base.Foreground(pal[colorGray]).Render(" " + th.Glyphs.Normal.Left + " ")

	left := accent.Render(fmt.Sprintf(" %d/%d windows", info.Visible, info.Total))
	if info.Focused != "" {
		left += sep + base.Render(info.Focused)
	}

	var right []string
	if info.SysInfo != "" {
		right = append(right, base.Render(info.SysInfo))
	}
	if info.Clock != "" {
		right = append(right, accent.Render(info.Clock))
	}
	r := strings.Join(right, sep) + base.Render(" ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(r)
	if gap < 1 {
		left = ansi.Truncate(left, max(width-lipgloss.Width(r)-1, 0), "…")
		gap = max(width-lipgloss.Width(left)-lipgloss.Width(r), 0)
	}
	line := left + base.Render(strings.Repeat(" ", gap)) + r
	line = ansi.Truncate(line, width, "")

	HLine(scr, 0, width, y, " ", th.Status)
	uv.NewStyledString(line).Draw(scr, uv.Rect(0, y, width, 1))
}
