// Package ui draws the desktop chrome: window frames, the menu bar and its
// dropdowns, context menus, modal dialogs, desktop icons, the taskbar and the
// status line. Everything paints onto an ultraviolet screen.
package ui

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// Box is a set of frame characters.
type Box struct {
	TopLeft, Top, TopRight string
	Left, Right            string
	BottomLeft, Bottom     string
	BottomRight            string
}

// Glyphs are the characters used for chrome. ASCII mode swaps every entry for
// a 7-bit equivalent.
type Glyphs struct {
	Focused, Normal Box

	Minimize, Maximize, Close string
	Pin                       string
	Pattern                   string
	Separator                 string
	ScrollThumb, ScrollTrack  string
	Check                     string
}

var (
	unicodeGlyphs = Glyphs{
		Focused:     Box{"╔", "═", "╗", "║", "║", "╚", "═", "╝"},
		Normal:      Box{"┌", "─", "┐", "│", "│", "└", "─", "┘"},
		Minimize:    "[─]",
		Maximize:    "[□]",
		Close:       "[×]",
		Pin:         "▲",
		Pattern:     "░",
		Separator:   "─",
		ScrollThumb: "█",
		ScrollTrack: "│",
		Check:       "✓",
	}
	asciiGlyphs = Glyphs{
		Focused:     Box{"#", "=", "#", "|", "|", "#", "=", "#"},
		Normal:      Box{"+", "-", "+", "|", "|", "+", "-", "+"},
		Minimize:    "[_]",
		Maximize:    "[^]",
		Close:       "[x]",
		Pin:         "^",
		Pattern:     ".",
		Separator:   "-",
		ScrollThumb: "#",
		ScrollTrack: "|",
		Check:       "*",
	}
)

// GlyphSet returns the unicode chrome characters, or the ASCII fallback.
func GlyphSet(ascii bool) Glyphs {
	if ascii {
		return asciiGlyphs
	}
	return unicodeGlyphs
}

// Palette is the 16 basic colours: black, red, green, yellow, blue,
// magenta, cyan and white, then their bright variants.
type Palette [16]color.Color

// Palette indexes used by the chrome.
const (
	colorBlack   = 0
	colorRed     = 1
	colorBlue    = 4
	colorCyan    = 6
	colorWhite   = 7
	colorGray    = 8
	colorBYellow = 11
	colorBBlue   = 12
	colorBCyan   = 14
	colorBWhite  = 15
)

// ANSIPalette defers every colour to the host terminal, so the desk looks
// the way the user's terminal is set up.
var ANSIPalette = func() Palette {
	var p Palette
	for i := range p {
		p[i] = ansi.BasicColor(i) //nolint:gosec
	}
	return p
}()

// Theme holds every style the chrome paints with.
type Theme struct {
	Glyphs Glyphs
	ASCII  bool
	// Palette is what the chrome is painted with. Tinted themes also use
	// it for the basic colours programs print in.
	Palette Palette
	Tinted  bool

	Desktop      uv.Style
	Icon         uv.Style
	IconSelected uv.Style

	Frame        uv.Style
	FrameFocused uv.Style
	Title        uv.Style
	TitleFocused uv.Style
	Button       uv.Style
	ButtonClose  uv.Style
	Body         uv.Style
	Scrollbar    uv.Style

	MenuBar       uv.Style
	MenuBarActive uv.Style
	Menu          uv.Style
	MenuSelected  uv.Style
	MenuDisabled  uv.Style

	DialogButton         uv.Style
	DialogButtonSelected uv.Style
	Shadow               uv.Style

	Taskbar      uv.Style
	TaskButton   uv.Style
	Status       uv.Style
	StatusAccent uv.Style
	Error        uv.Style
}

// DefaultTheme returns the stock colour scheme in the terminal's colours.
func DefaultTheme(ascii bool) *Theme {
	return NewTheme(ascii, ANSIPalette)
}

// NewTheme returns the stock colour scheme drawn from pal.
func NewTheme(ascii bool, pal Palette) *Theme {
	style := func(fg, bg int, attrs uint8) uv.Style {
		return uv.Style{Fg: pal[fg], Bg: pal[bg], Attrs: attrs}
	}
	return &Theme{
		Glyphs:  GlyphSet(ascii),
		ASCII:   ascii,
		Palette: pal,

		Desktop:      style(colorBBlue, colorBlue, 0),
		Icon:         style(colorBWhite, colorBlue, 0),
		IconSelected: style(colorBlack, colorCyan, 0),

		Frame:        style(colorWhite, colorBlack, 0),
		FrameFocused: style(colorBWhite, colorBlack, uv.AttrBold),
		Title:        style(colorWhite, colorBlack, 0),
		TitleFocused: style(colorBYellow, colorBlack, uv.AttrBold),
		Button:       style(colorWhite, colorBlack, 0),
		ButtonClose:  style(colorRed, colorBlack, uv.AttrBold),
		Body:         style(colorWhite, colorBlack, 0),
		Scrollbar:    style(colorGray, colorBlack, 0),

		MenuBar:       style(colorBlack, colorWhite, 0),
		MenuBarActive: style(colorBWhite, colorBlue, uv.AttrBold),
		Menu:          style(colorBlack, colorWhite, 0),
		MenuSelected:  style(colorBWhite, colorBlue, 0),
		MenuDisabled:  style(colorGray, colorWhite, 0),

		DialogButton:         style(colorBlack, colorWhite, 0),
		DialogButtonSelected: style(colorBWhite, colorBlue, uv.AttrBold),
		Shadow:               style(colorGray, colorBlack, 0),

		Taskbar:      style(colorBlack, colorCyan, 0),
		TaskButton:   style(colorBWhite, colorBlue, 0),
		Status:       style(colorBlack, colorWhite, 0),
		StatusAccent: style(colorBlue, colorWhite, uv.AttrBold),
		Error:        style(colorBYellow, colorBlack, uv.AttrBold),
	}
}

// Color maps a basic colour through a tinted palette. Other colours, and
// every colour of an untinted theme, pass through.
func (th *Theme) Color(c color.Color) color.Color {
	if !th.Tinted {
		return c
	}
	if b, ok := c.(ansi.BasicColor); ok && int(b) < len(th.Palette) {
		return th.Palette[b]
	}
	return c
}
