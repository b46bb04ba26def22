package app

import (
	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/ui"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
)

// View paints the whole desktop into a fresh screen buffer.
func (d *Desk) View() tea.View {
	if d.width <= 0 || d.height <= 0 || d.quitting {
		return tea.NewView("")
	}
	scr := uv.NewScreenBuffer(d.width, d.height)
	d.paint(scr)

	v := tea.NewView(scr.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.WindowTitle = config.AppName
	if f := d.wm.Focused(); f != nil {
		v.WindowTitle = f.Title() + " - " + config.AppName
	}
	v.Cursor = d.cursor()
	return v
}

// paint draws bottom to top: desktop, windows, bars, then the popups so
// menus opened near the bottom are not covered by the taskbar.
func (d *Desk) paint(scr uv.Screen) {
	th := d.theme
	r := d.router

	r.Desktop.Draw(scr, d.wm.Workspace(), th)
	for _, w := range d.wm.PaintOrder() {
		ui.DrawWindow(scr, w, th)
	}

	now := d.now()
	clock := ""
	if d.cfg.Appearance.ShowClock {
		clock = now.Format("Mon Jan 2 15:04")
	}
	r.MenuBar.Draw(scr, d.width, clock, th)
	ui.DrawTaskbar(scr, d.height-2, d.width, r.Taskbar, th)

	info := ui.StatusInfo{
		Visible: d.wm.Visible(),
		Total:   d.wm.Len(),
		Clock:   now.Format("15:04:05"),
	}
	if f := d.wm.Focused(); f != nil {
		info.Focused = f.Title()
	}
	if d.cfg.Appearance.ShowSysinfo {
		info.SysInfo = d.cpu.Readout(d.memPct, th.ASCII)
	}
	ui.DrawStatus(scr, d.height-1, d.width, info, th)

	r.MenuBar.DrawDropdown(scr, th)
	if r.Context != nil {
		r.Context.Draw(scr, th)
	}
	if r.Dialog != nil {
		r.Dialog.Draw(scr, th)
	}
}

// cursor places the hardware cursor for the focused content, hidden while a
// popup has input or another window covers the spot.
func (d *Desk) cursor() *tea.Cursor {
	if d.router.Modal() {
		return nil
	}
	w := d.wm.Focused()
	if w == nil {
		return nil
	}
	c, ok := w.Content().(wm.Cursorer)
	if !ok {
		return nil
	}
	x, y, visible := c.Cursor()
	if !visible {
		return nil
	}
	area := w.ContentRect()
	pos := uv.Pos(area.Min.X+x, area.Min.Y+y)
	if !pos.In(area) || d.wm.HitTest(pos.X, pos.Y).ID() != w.ID() {
		return nil
	}
	return tea.NewCursor(pos.X, pos.Y)
}
