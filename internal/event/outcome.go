package event

import "fmt"

// OutcomeKind enumerates the follow-up actions a handler can request.
type OutcomeKind uint8

// Outcome kinds.
const (
	OutcomeNone OutcomeKind = iota
	OutcomeRefresh
	OutcomeClose
	OutcomeOpen
	OutcomeError
	OutcomeConfirm
	OutcomeQuit
)

var outcomeNames = [...]string{"none", "refresh", "close", "open", "error", "confirm", "quit"}

func (k OutcomeKind) String() string {
	if int(k) < len(outcomeNames) {
		return outcomeNames[k]
	}
	return "unknown"
}

// Outcome is returned by every event handler. The router hands it back to the
// event loop untouched.
type Outcome struct {
	Kind OutcomeKind
	// Target is the window a Close applies to. Empty means the window whose
	// handler produced the outcome.
	Target string
	// Open describes the window to create for OutcomeOpen.
	Open Descriptor
	// Message is the error text or the confirmation prompt.
	Message string
	// OnYes is applied when a confirmation is accepted.
	OnYes *Outcome
}

// None is the zero outcome.
func None() Outcome { return Outcome{} }

// Refresh asks for a repaint.
func Refresh() Outcome { return Outcome{Kind: OutcomeRefresh} }

// Close asks the loop to close window id.
func Close(id string) Outcome { return Outcome{Kind: OutcomeClose, Target: id} }

// Open asks the loop to create a window.
func Open(d Descriptor) Outcome { return Outcome{Kind: OutcomeOpen, Open: d} }

// Error reports a user-visible failure.
func Error(msg string) Outcome { return Outcome{Kind: OutcomeError, Message: msg} }

// Errorf is Error with formatting.
func Errorf(format string, args ...any) Outcome {
	return Error(fmt.Sprintf(format, args...))
}

// Confirm asks the user a yes/no question and applies onYes on acceptance.
func Confirm(prompt string, onYes Outcome) Outcome {
	return Outcome{Kind: OutcomeConfirm, Message: prompt, OnYes: &onYes}
}

// Quit terminates the event loop.
func Quit() Outcome { return Outcome{Kind: OutcomeQuit} }

// WithTarget fills in id as the target of a Close that left it empty,
// including one deferred behind a confirmation.
func (o Outcome) WithTarget(id string) Outcome {
	if o.Kind == OutcomeClose && o.Target == "" {
		o.Target = id
	}
	if o.OnYes != nil {
		yes := o.OnYes.WithTarget(id)
		o.OnYes = &yes
	}
	return o
}

// IsNone reports whether the outcome requests nothing.
func (o Outcome) IsNone() bool { return o.Kind == OutcomeNone }

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeClose:
		return fmt.Sprintf("close(%s)", o.Target)
	case OutcomeOpen:
		return fmt.Sprintf("open(%s)", o.Open.Kind)
	case OutcomeError:
		return fmt.Sprintf("error(%q)", o.Message)
	case OutcomeConfirm:
		return fmt.Sprintf("confirm(%q)", o.Message)
	}
	return o.Kind.String()
}

// Window kinds understood by the content factory.
const (
	KindTerminal = "terminal"
	KindText     = "text"
	KindLog      = "log"
	KindHelp     = "help"
	KindAbout    = "about"
)

// Descriptor describes a window to open.
type Descriptor struct {
	// Kind selects the content factory, one of the Kind constants.
	Kind  string
	Title string
	// Width and Height of the whole window including its frame. Zero picks
	// a default.
	Width, Height int
	// X and Y are used when Positioned is set; otherwise placement is
	// automatic.
	X, Y       int
	Positioned bool
	Pinned     bool
	// Shell overrides the configured shell for terminal windows.
	Shell string
	// Body is the text of text windows.
	Body string
}
