package sprig

// Focusable is implemented by widgets that react to general focus changes
// made through a FocusManager.
type Focusable interface {
	FocusGained(a *Actor)
	FocusLost(a *Actor)
}

// FocusManager tracks at most one generally-focused widget. This is separate
// from a HUD's keyboard and scroll focus: a list can be the focused widget
// while a text field inside a popup holds keyboard focus.
//
// Each HUD owns one (HUD.Focus); HUDs may share a manager through
// HUD.SetFocusManager.
type FocusManager struct {
	focused *Actor
}

// Focused returns the focused widget, or nil.
func (fm *FocusManager) Focused() *Actor {
	return fm.focused
}

// SwitchFocus makes a the focused widget. No-op if it already is. Otherwise
// the previous widget loses focus, the HUD's keyboard focus is cleared (when
// hud is non-nil) and a gains focus.
func (fm *FocusManager) SwitchFocus(hud *HUD, a *Actor) {
	if fm.focused == a {
		return
	}
	if fm.focused != nil {
		notifyFocusLost(fm.focused)
	}
	fm.focused = a
	if hud != nil {
		hud.SetKeyboardFocus(nil)
	}
	if a != nil {
		if f, ok := a.widget.(Focusable); ok {
			f.FocusGained(a)
		}
	}
}

// ResetFocus clears the focused widget and the HUD's keyboard focus.
func (fm *FocusManager) ResetFocus(hud *HUD) {
	if fm.focused != nil {
		notifyFocusLost(fm.focused)
	}
	if hud != nil {
		hud.SetKeyboardFocus(nil)
	}
	fm.focused = nil
}

// ResetFocusFor clears the focused widget, but clears the HUD's keyboard focus
// only if caller holds it.
func (fm *FocusManager) ResetFocusFor(hud *HUD, caller *Actor) {
	if fm.focused != nil {
		notifyFocusLost(fm.focused)
	}
	if hud != nil && hud.KeyboardFocus() == caller {
		hud.SetKeyboardFocus(nil)
	}
	fm.focused = nil
}

func notifyFocusLost(a *Actor) {
	if f, ok := a.widget.(Focusable); ok {
		f.FocusLost(a)
	}
}
