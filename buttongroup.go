package sprig

import "slices"

// ButtonGroup keeps the number of checked buttons between MinCheckCount and
// MaxCheckCount. The default limits of one and one give radio buttons.
type ButtonGroup struct {
	// MinCheckCount is the fewest buttons that may be checked.
	MinCheckCount int
	// MaxCheckCount is the most buttons that may be checked; <= 0 means no
	// limit.
	MaxCheckCount int
	// UncheckLast makes checking a button past MaxCheckCount uncheck the most
	// recently checked one instead of refusing.
	UncheckLast bool

	buttons []*Button
	checked []*Button
	last    *Button
}

// NewButtonGroup returns a radio group holding buttons. None of them is
// checked unless one already was.
func NewButtonGroup(buttons ...*Button) *ButtonGroup {
	g := &ButtonGroup{MaxCheckCount: 1, UncheckLast: true}
	for _, b := range buttons {
		g.Add(b)
	}
	g.MinCheckCount = 1
	return g
}

// Add makes b a toggle button of the group, moving it out of any previous
// group. b is checked if it was already checked or if the group has fewer
// than MinCheckCount buttons.
func (g *ButtonGroup) Add(b *Button) {
	if b.group == g {
		return
	}
	if b.group != nil {
		b.group.Remove(b)
	}
	check := b.checked || len(g.buttons) < g.MinCheckCount
	b.checked = false
	b.Toggle = true
	b.group = g
	g.buttons = append(g.buttons, b)
	b.SetChecked(check)
}

// Remove takes b out of the group. Its checked state is kept.
func (g *ButtonGroup) Remove(b *Button) {
	if b.group != g {
		return
	}
	b.group = nil
	g.buttons = slices.DeleteFunc(g.buttons, func(o *Button) bool { return o == b })
	g.checked = slices.DeleteFunc(g.checked, func(o *Button) bool { return o == b })
	if g.last == b {
		g.last = nil
	}
}

// Clear removes every button.
func (g *ButtonGroup) Clear() {
	for _, b := range g.buttons {
		b.group = nil
	}
	g.buttons, g.checked, g.last = nil, nil, nil
}

// Buttons returns the buttons in the order they were added. The returned
// slice MUST NOT be mutated.
func (g *ButtonGroup) Buttons() []*Button { return g.buttons }

// CheckedButtons returns the checked buttons in the order they were checked.
// The returned slice MUST NOT be mutated.
func (g *ButtonGroup) CheckedButtons() []*Button { return g.checked }

// Checked returns the first checked button, or nil.
func (g *ButtonGroup) Checked() *Button {
	if len(g.checked) == 0 {
		return nil
	}
	return g.checked[0]
}

// CheckedIndex returns the index in Buttons of the first checked button, or
// -1.
func (g *ButtonGroup) CheckedIndex() int {
	return slices.Index(g.buttons, g.Checked())
}

// CheckText checks the first button whose label shows text.
func (g *ButtonGroup) CheckText(text string) {
	for _, b := range g.buttons {
		if b.label != nil && b.label.Text() == text {
			b.SetChecked(true)
			return
		}
	}
}

// UncheckAll unchecks every button, ignoring MinCheckCount.
func (g *ButtonGroup) UncheckAll() {
	old := g.MinCheckCount
	g.MinCheckCount = 0
	for _, b := range g.buttons {
		b.SetChecked(false)
	}
	g.MinCheckCount = old
}

// canCheck reports whether b may change to checked. Going past
// MaxCheckCount with UncheckLast set unchecks the last checked button first.
func (g *ButtonGroup) canCheck(b *Button, checked bool) bool {
	if !checked {
		return len(g.checked) > g.MinCheckCount
	}
	if g.MaxCheckCount > 0 && len(g.checked) >= g.MaxCheckCount {
		if !g.UncheckLast || g.last == nil {
			return false
		}
		old := g.MinCheckCount
		g.MinCheckCount = 0
		g.last.SetChecked(false)
		g.MinCheckCount = old
		if len(g.checked) >= g.MaxCheckCount {
			return false
		}
	}
	return true
}

// checkedChanged records a state change that was not cancelled.
func (g *ButtonGroup) checkedChanged(b *Button, checked bool) {
	if checked {
		g.checked = append(g.checked, b)
		g.last = b
		return
	}
	g.checked = slices.DeleteFunc(g.checked, func(o *Button) bool { return o == b })
	if g.last == b {
		g.last = nil
		if n := len(g.checked); n > 0 {
			g.last = g.checked[n-1]
		}
	}
}
