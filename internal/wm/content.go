package wm

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuidesk/internal/event"
)

// Content is what a window shows and how it reacts to input. Pointer
// coordinates passed to HandleClick are local to the content area.
type Content interface {
	Draw(scr uv.Screen, area uv.Rectangle)
	HandleKey(k event.Key) event.Outcome
	HandleClick(p event.Pointer) event.Outcome
	HandleScroll(delta int) event.Outcome
}

// NopContent implements Content with handlers that do nothing. Embed it to
// override only what you need.
type NopContent struct{}

func (NopContent) Draw(uv.Screen, uv.Rectangle)            {}
func (NopContent) HandleKey(event.Key) event.Outcome       { return event.None() }
func (NopContent) HandleClick(event.Pointer) event.Outcome { return event.None() }
func (NopContent) HandleScroll(int) event.Outcome          { return event.None() }

// Paster is implemented by contents that accept pasted text.
type Paster interface {
	HandlePaste(text string) event.Outcome
}

// Resizer is implemented by contents that track their area size.
type Resizer interface {
	Resize(cols, rows int) error
}

// Stepper is implemented by contents with per-frame work.
type Stepper interface {
	Step() event.Outcome
}

// Closer is implemented by contents owning resources.
type Closer interface {
	Close() error
}

// Titler is implemented by contents that supply their own title.
type Titler interface {
	Title() string
}

// Cursorer is implemented by contents that show a text cursor. The position
// is local to the content area.
type Cursorer interface {
	Cursor() (x, y int, visible bool)
}

// Menuer is implemented by contents that add entries to the window's context
// menu. HandleAction receives the chosen item's Action.
type Menuer interface {
	MenuItems() []event.MenuItem
	HandleAction(action string) event.Outcome
}
