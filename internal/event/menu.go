package event

// MenuItem is one entry of a dropdown or context menu.
type MenuItem struct {
	Label string
	// Action is the id handed back when the item is chosen.
	Action string
	// Hint is shown right-aligned, usually the key binding.
	Hint      string
	Disabled  bool
	Separator bool
}

// Separator returns a divider item.
func Separator() MenuItem { return MenuItem{Separator: true} }

// Selectable reports whether the item can be highlighted and chosen.
func (m MenuItem) Selectable() bool {
	return !m.Separator && !m.Disabled
}
