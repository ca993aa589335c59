package sprig

// Widget is the layout capability. An actor created with NewWidget reports its
// sizes through the widget and recomputes its children during Layout.
//
// A maximum size of 0 means unbounded.
type Widget interface {
	MinWidth(a *Actor) float64
	MinHeight(a *Actor) float64
	PrefWidth(a *Actor) float64
	PrefHeight(a *Actor) float64
	MaxWidth(a *Actor) float64
	MaxHeight(a *Actor) float64

	// Layout positions and sizes the actor's children for its current size.
	Layout(a *Actor)
}

// BaseWidget provides the default sizes: preferred 0x0, minimum equal to
// preferred, no maximum, and an empty Layout. Embed it and override what the
// widget needs.
type BaseWidget struct{}

func (BaseWidget) MinWidth(a *Actor) float64  { return a.PrefWidth() }
func (BaseWidget) MinHeight(a *Actor) float64 { return a.PrefHeight() }
func (BaseWidget) PrefWidth(*Actor) float64   { return 0 }
func (BaseWidget) PrefHeight(*Actor) float64  { return 0 }
func (BaseWidget) MaxWidth(*Actor) float64    { return 0 }
func (BaseWidget) MaxHeight(*Actor) float64   { return 0 }
func (BaseWidget) Layout(*Actor)              {}

// StateSaver is implemented by widgets whose state outlives the process,
// such as a list's selection. The state package stores the returned bytes
// next to the actor's geometry.
type StateSaver interface {
	SaveState() ([]byte, error)
	RestoreState(data []byte) error
}

// layoutRetries bounds how often the root-most layout actor re-runs a layout
// that invalidated itself.
const layoutRetries = 5

// NewWidget creates an actor that participates in layout through w.
func NewWidget(name string, w Widget) *Actor {
	a := NewActor(name)
	a.widget = w
	return a
}

// Widget returns the actor's layout capability, or nil.
func (a *Actor) Widget() Widget {
	return a.widget
}

// --- Measurement ---
//
// Actors without a Widget report their current size as minimum and preferred
// size and no maximum.

// MinWidth returns the minimum width.
func (a *Actor) MinWidth() float64 {
	if a.widget == nil {
		return a.width
	}
	return a.widget.MinWidth(a)
}

// MinHeight returns the minimum height.
func (a *Actor) MinHeight() float64 {
	if a.widget == nil {
		return a.height
	}
	return a.widget.MinHeight(a)
}

// PrefWidth returns the preferred width.
func (a *Actor) PrefWidth() float64 {
	if a.widget == nil {
		return a.width
	}
	return a.widget.PrefWidth(a)
}

// PrefHeight returns the preferred height.
func (a *Actor) PrefHeight() float64 {
	if a.widget == nil {
		return a.height
	}
	return a.widget.PrefHeight(a)
}

// MaxWidth returns the maximum width, 0 meaning unbounded.
func (a *Actor) MaxWidth() float64 {
	if a.widget == nil {
		return 0
	}
	return a.widget.MaxWidth(a)
}

// MaxHeight returns the maximum height, 0 meaning unbounded.
func (a *Actor) MaxHeight() float64 {
	if a.widget == nil {
		return 0
	}
	return a.widget.MaxHeight(a)
}

// --- Validation protocol ---

// NeedsLayout reports whether the actor's layout has been invalidated.
func (a *Actor) NeedsLayout() bool {
	return a.needsLayout
}

// Invalidate marks the actor's layout dirty. Nothing is recomputed until the
// next Validate.
func (a *Actor) Invalidate() {
	a.needsLayout = true
}

// InvalidateHierarchy invalidates the actor and every consecutive ancestor
// that also participates in layout, stopping at the first that does not.
func (a *Actor) InvalidateHierarchy() {
	a.Invalidate()
	for p := a.parent; p != nil && p.widget != nil; p = p.parent {
		p.Invalidate()
	}
}

// FillParent reports whether the actor is sized to its parent on every
// validation.
func (a *Actor) FillParent() bool {
	return a.fillParent
}

// SetFillParent makes Validate size the actor to its parent, or to the HUD
// when the parent is the HUD root, overriding any size set by the caller.
func (a *Actor) SetFillParent(fill bool) {
	a.fillParent = fill
}

// LayoutEnabled reports whether Validate is allowed to lay the actor out.
func (a *Actor) LayoutEnabled() bool {
	return a.layoutEnabled
}

// SetLayoutEnabled enables or disables layout for the actor and every layout
// actor below it.
func (a *Actor) SetLayoutEnabled(enabled bool) {
	a.layoutEnabled = enabled
	for _, c := range a.children {
		c.SetLayoutEnabled(enabled)
	}
	if enabled {
		a.InvalidateHierarchy()
	}
}

// Validate lays the actor out if it needs layout. Calling it again without an
// intervening invalidation does nothing. No-op for actors without a Widget or
// with layout disabled.
func (a *Actor) Validate() {
	if a.widget == nil || !a.layoutEnabled {
		return
	}
	if a.fillParent && a.parent != nil {
		pw, ph := a.parent.width, a.parent.height
		if a.hud != nil && a.parent == a.hud.root {
			pw, ph = a.hud.Width(), a.hud.Height()
		}
		a.SetSize(pw, ph)
	}
	if !a.needsLayout {
		return
	}
	a.needsLayout = false
	a.widget.Layout(a)

	// Layout may invalidate the hierarchy again (a child's preferred size
	// depends on its width, for example). A layout parent will lay out again;
	// the root-most layout actor retries a bounded number of times.
	if !a.needsLayout || (a.parent != nil && a.parent.widget != nil) {
		return
	}
	for i := 0; i < layoutRetries && a.needsLayout; i++ {
		a.needsLayout = false
		a.widget.Layout(a)
	}
	if a.needsLayout && globalDebug {
		debugWarnf("layout of %q did not settle after %d passes", a.String(), layoutRetries)
	}
}

// Pack sizes the actor to its preferred size and validates it immediately.
// The second pass picks up preferred sizes that depend on the first layout.
func (a *Actor) Pack() {
	a.SetSize(a.PrefWidth(), a.PrefHeight())
	a.Validate()
	a.SetSize(a.PrefWidth(), a.PrefHeight())
	a.Validate()
}

// validateTree validates a and its descendants top-down, so that sizes a
// parent assigns during its layout are honored by its children in the same
// pass.
func validateTree(a *Actor) {
	if !a.Visible {
		return
	}
	a.Validate()
	for _, c := range a.children {
		validateTree(c)
	}
}
