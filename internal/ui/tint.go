package ui

import (
	"sync"

	tint "github.com/lrstanley/bubbletint/v2"
)

// The tint registry is global; tintMu keeps lookups from racing a reload.
var (
	tintMu   sync.Mutex
	tintOnce sync.Once
)

// TintPalette returns the 16 colours of the named bubbletint palette, such
// as "dracula", "nord" or "tokyonight".
func TintPalette(id string) (Palette, bool) {
	tintMu.Lock()
	defer tintMu.Unlock()
	tintOnce.Do(func() { tint.NewDefaultRegistry() })

	if id == "" || !tint.SetTintID(id) {
		return Palette{}, false
	}
	t := tint.Current()
	if t == nil {
		return Palette{}, false
	}
	return Palette{
		t.Black, t.Red, t.Green, t.Yellow,
		t.Blue, t.Purple, t.Cyan, t.White,
		t.BrightBlack, t.BrightRed, t.BrightGreen, t.BrightYellow,
		t.BrightBlue, t.BrightPurple, t.BrightCyan, t.BrightWhite,
	}, true
}

// TintedTheme returns the stock scheme drawn in the named palette, with
// programs' basic colours mapped through it too.
func TintedTheme(ascii bool, id string) (*Theme, bool) {
	pal, ok := TintPalette(id)
	if !ok {
		return nil, false
	}
	th := NewTheme(ascii, pal)
	th.Tinted = true
	return th, true
}
