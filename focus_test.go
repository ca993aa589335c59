package sprig

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// focusWidget records FocusGained and FocusLost calls into a shared log.
type focusWidget struct {
	BaseWidget
	log *[]string
}

func (w *focusWidget) FocusGained(a *Actor) { *w.log = append(*w.log, "gained "+a.Name) }
func (w *focusWidget) FocusLost(a *Actor)   { *w.log = append(*w.log, "lost "+a.Name) }

func newFocusWidget(name string, log *[]string) *Actor {
	return NewWidget(name, &focusWidget{log: log})
}

func TestSwitchFocus(t *testing.T) {
	var log []string
	h := NewHUD(800, 600)
	a := newFocusWidget("a", &log)
	b := newFocusWidget("b", &log)
	h.AddActor(a)
	h.AddActor(b)
	fm := h.Focus()

	fm.SwitchFocus(h, a)
	fm.SwitchFocus(h, a)
	h.SetKeyboardFocus(a)
	fm.SwitchFocus(h, b)

	want := []string{"gained a", "lost a", "gained b"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if fm.Focused() != b {
		t.Errorf("Focused = %v, want b", fm.Focused())
	}
	if h.KeyboardFocus() != nil {
		t.Error("switching focus should clear keyboard focus")
	}
}

func TestSwitchFocusPlainActor(t *testing.T) {
	fm := &FocusManager{}
	a := NewActor("plain")
	fm.SwitchFocus(nil, a)
	if fm.Focused() != a {
		t.Error("plain actors can hold focus")
	}
	fm.SwitchFocus(nil, nil)
	if fm.Focused() != nil {
		t.Error("SwitchFocus(nil) should clear focus")
	}
}

func TestResetFocus(t *testing.T) {
	var log []string
	h := NewHUD(800, 600)
	a := newFocusWidget("a", &log)
	h.AddActor(a)
	h.Focus().SwitchFocus(h, a)
	h.SetKeyboardFocus(a)

	h.Focus().ResetFocus(h)
	if h.Focus().Focused() != nil || h.KeyboardFocus() != nil {
		t.Error("ResetFocus left focus behind")
	}
	if diff := cmp.Diff([]string{"gained a", "lost a"}, log); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestResetFocusFor(t *testing.T) {
	tests := []struct {
		name        string
		callerHolds bool
		wantCleared bool
	}{
		{"caller holds keyboard focus", true, true},
		{"other actor holds keyboard focus", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			h := NewHUD(800, 600)
			caller := newFocusWidget("caller", &log)
			field := NewActor("field")
			h.AddActor(caller)
			h.AddActor(field)

			h.Focus().SwitchFocus(h, caller)
			if tt.callerHolds {
				h.SetKeyboardFocus(caller)
			} else {
				h.SetKeyboardFocus(field)
			}

			h.Focus().ResetFocusFor(h, caller)
			if h.Focus().Focused() != nil {
				t.Error("focused widget not cleared")
			}
			if cleared := h.KeyboardFocus() == nil; cleared != tt.wantCleared {
				t.Errorf("keyboard focus cleared = %v, want %v", cleared, tt.wantCleared)
			}
		})
	}
}

func TestSharedFocusManager(t *testing.T) {
	var log []string
	shared := &FocusManager{}
	h1 := NewHUD(800, 600)
	h2 := NewHUD(800, 600)
	h1.SetFocusManager(shared)
	h2.SetFocusManager(shared)
	a := newFocusWidget("a", &log)
	b := newFocusWidget("b", &log)
	h1.AddActor(a)
	h2.AddActor(b)

	h1.Focus().SwitchFocus(h1, a)
	h2.Focus().SwitchFocus(h2, b)

	if shared.Focused() != b {
		t.Errorf("Focused = %v, want b", shared.Focused())
	}
	want := []string{"gained a", "lost a", "gained b"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
