package sprig

// ButtonStyle holds the drawables a button picks from for its current state.
// Nil entries fall back to Up.
type ButtonStyle struct {
	Up, Down, Over, Checked, Disabled Drawable
}

// Button is a clickable widget with an optional text label. A click fires an
// EventChange on the button; when a listener cancels it, a toggle button
// reverts its checked state.
type Button struct {
	BaseWidget
	Actor *Actor
	Click *ClickListener

	Style ButtonStyle
	Pad   float64
	// Disabled buttons ignore clicks and draw with Style.Disabled.
	Disabled bool
	// Toggle makes each click flip the checked state.
	Toggle bool

	checked bool
	label   *Label
	group   *ButtonGroup
}

// NewButton creates a button showing text. An empty text creates a button
// without a label. A nil font uses DefaultFont.
func NewButton(text string, font Font) *Button {
	b := &Button{
		Style: ButtonStyle{
			Up:   ColorDrawable{Color: Color{0.25, 0.25, 0.3, 1}},
			Down: ColorDrawable{Color: Color{0.15, 0.15, 0.2, 1}},
			Over: ColorDrawable{Color: Color{0.35, 0.35, 0.4, 1}},
		},
		Pad: 6,
	}
	b.Actor = NewWidget("button", b)
	if text != "" {
		b.label = NewLabel(text, font)
		b.label.Align = AlignCenter
		b.label.Actor.Touchable = TouchableDisabled
		b.Actor.AddActor(b.label.Actor)
	}
	b.Click = NewClickListener(func(*Event, float64, float64) {
		if b.Disabled {
			return
		}
		if b.Toggle {
			b.SetChecked(!b.checked)
			return
		}
		b.Actor.Fire(NewChangeEvent())
	})
	b.Actor.AddListener(b.Click)
	b.Actor.Pack()
	return b
}

// Label returns the button's label, or nil.
func (b *Button) Label() *Label { return b.label }

// IsChecked reports the checked state of a toggle button.
func (b *Button) IsChecked() bool { return b.checked }

// Group returns the button group the button belongs to, or nil.
func (b *Button) Group() *ButtonGroup { return b.group }

// SetChecked changes the checked state and fires an EventChange. A cancelled
// event leaves the state unchanged. A button in a ButtonGroup changes only
// when the group's check limits allow it.
func (b *Button) SetChecked(checked bool) {
	if b.checked == checked {
		return
	}
	if b.group != nil && !b.group.canCheck(b, checked) {
		return
	}
	b.checked = checked
	if b.Actor.Fire(NewChangeEvent()) {
		b.checked = !checked
		return
	}
	if b.group != nil {
		b.group.checkedChanged(b, checked)
	}
}

// IsPressed reports whether the button is held down.
func (b *Button) IsPressed() bool { return b.Click.IsPressed() }

func (b *Button) PrefWidth(*Actor) float64 {
	w := 0.0
	if b.label != nil {
		w = b.label.Actor.PrefWidth()
	}
	w += 2 * b.Pad
	if b.Style.Up != nil {
		w = max(w, b.Style.Up.MinWidth())
	}
	return w
}

func (b *Button) PrefHeight(*Actor) float64 {
	h := 0.0
	if b.label != nil {
		h = b.label.Actor.PrefHeight()
	}
	h += 2 * b.Pad
	if b.Style.Up != nil {
		h = max(h, b.Style.Up.MinHeight())
	}
	return h
}

func (b *Button) Layout(a *Actor) {
	if b.label == nil {
		return
	}
	b.label.Actor.SetBounds(b.Pad, b.Pad, max(a.width-2*b.Pad, 0), max(a.height-2*b.Pad, 0))
}

// background returns the drawable for the current state.
func (b *Button) background() Drawable {
	var d Drawable
	switch {
	case b.Disabled:
		d = b.Style.Disabled
	case b.Click.IsPressed() && b.Click.IsOver():
		d = b.Style.Down
	case b.checked && b.Style.Checked != nil:
		d = b.Style.Checked
	case b.Click.IsOver():
		d = b.Style.Over
	}
	if d == nil {
		d = b.Style.Up
	}
	return d
}

// Draw implements Drawer.
func (b *Button) Draw(a *Actor, batch Batch, alpha float64) {
	if d := b.background(); d != nil {
		d.Draw(batch, a.globalX, a.globalY, a.width, a.height, a.Tint(alpha))
	}
	a.DrawChildren(batch, alpha)
}
