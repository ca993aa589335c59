package sprig

import "github.com/hajimehoshi/ebiten/v2"

// Listener receives events fired on, or propagated through, an actor.
// Returning true marks the event handled and skips the actor's remaining
// listeners; propagation to other actors is unaffected.
type Listener interface {
	Handle(e *Event) bool
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(e *Event) bool

// Handle calls f(e).
func (f ListenerFunc) Handle(e *Event) bool { return f(e) }

// listenerEntry pairs a listener with the id used to remove it. Functions are
// not comparable, so listeners are always identified by id.
type listenerEntry struct {
	id       uint32
	listener Listener
}

// ListenerHandle identifies a registered listener.
type ListenerHandle struct {
	actor   *Actor
	id      uint32
	capture bool
}

// Remove unregisters the listener. Safe to call during dispatch: the current
// notification pass still sees the listener, later passes do not.
func (h ListenerHandle) Remove() {
	if h.actor == nil {
		return
	}
	if h.capture {
		h.actor.captureListeners = removeListenerEntry(h.actor.captureListeners, h.id)
	} else {
		h.actor.listeners = removeListenerEntry(h.actor.listeners, h.id)
	}
}

// removeListenerEntry returns a new slice without the entry, leaving the old
// backing array intact for any dispatch iterating it.
func removeListenerEntry(s []listenerEntry, id uint32) []listenerEntry {
	for i := range s {
		if s[i].id == id {
			out := make([]listenerEntry, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

// AddListener registers l for the target and bubble phases. Listeners run in
// registration order.
func (a *Actor) AddListener(l Listener) ListenerHandle {
	return a.addListener(l, false)
}

// AddCaptureListener registers l for the capture phase.
func (a *Actor) AddCaptureListener(l Listener) ListenerHandle {
	return a.addListener(l, true)
}

func (a *Actor) addListener(l Listener, capture bool) ListenerHandle {
	if l == nil {
		panic("sprig: cannot add nil listener")
	}
	if globalDebug {
		debugCheckDisposed(a, "AddListener")
	}
	a.nextListenerID++
	entry := listenerEntry{id: a.nextListenerID, listener: l}
	if capture {
		a.captureListeners = appendListenerEntry(a.captureListeners, entry)
	} else {
		a.listeners = appendListenerEntry(a.listeners, entry)
	}
	return ListenerHandle{actor: a, id: entry.id, capture: capture}
}

// appendListenerEntry always copies, so a dispatch iterating the old slice is
// never affected.
func appendListenerEntry(s []listenerEntry, e listenerEntry) []listenerEntry {
	out := make([]listenerEntry, len(s), len(s)+1)
	copy(out, s)
	return append(out, e)
}

// ClearListeners removes all listeners and capture listeners.
func (a *Actor) ClearListeners() {
	a.listeners = nil
	a.captureListeners = nil
}

// NumListeners returns the number of target/bubble listeners.
func (a *Actor) NumListeners() int {
	return len(a.listeners)
}

// --- InputListener ---

// InputListener dispatches input events to per-type callbacks. Coordinates are
// in the listener actor's local space. Nil callbacks are skipped.
//
// Returning true from TouchDown gives the listener touch focus: it receives the
// touchDragged and touchUp events for that pointer even when the pointer leaves
// the actor.
type InputListener struct {
	TouchDown    func(e *Event, x, y float64, pointer int, button MouseButton) bool
	TouchUp      func(e *Event, x, y float64, pointer int, button MouseButton)
	TouchDragged func(e *Event, x, y float64, pointer int)
	MouseMoved   func(e *Event, x, y float64) bool
	Enter        func(e *Event, x, y float64, pointer int, from *Actor)
	Exit         func(e *Event, x, y float64, pointer int, to *Actor)
	Scrolled     func(e *Event, x, y, amount float64) bool
	KeyDown      func(e *Event, key ebiten.Key) bool
	KeyUp        func(e *Event, key ebiten.Key) bool
	KeyTyped     func(e *Event, char rune) bool
}

// Handle implements Listener.
func (l *InputListener) Handle(e *Event) bool {
	if e.Kind != EventInput {
		return false
	}
	in := &e.Input
	switch in.Type {
	case InputKeyDown:
		return l.KeyDown != nil && l.KeyDown(e, in.Key)
	case InputKeyUp:
		return l.KeyUp != nil && l.KeyUp(e, in.Key)
	case InputKeyTyped:
		return l.KeyTyped != nil && l.KeyTyped(e, in.Char)
	}

	x, y := e.LocalPosition(e.ListenerActor)
	switch in.Type {
	case InputTouchDown:
		return l.TouchDown != nil && l.TouchDown(e, x, y, in.Pointer, in.Button)
	case InputTouchUp:
		if l.TouchUp != nil {
			l.TouchUp(e, x, y, in.Pointer, in.Button)
		}
	case InputTouchDragged:
		if l.TouchDragged != nil {
			l.TouchDragged(e, x, y, in.Pointer)
		}
	case InputMouseMoved:
		return l.MouseMoved != nil && l.MouseMoved(e, x, y)
	case InputScrolled:
		return l.Scrolled != nil && l.Scrolled(e, x, y, in.ScrollAmount)
	case InputEnter:
		if l.Enter != nil {
			l.Enter(e, x, y, in.Pointer, in.RelatedActor)
		}
	case InputExit:
		if l.Exit != nil {
			l.Exit(e, x, y, in.Pointer, in.RelatedActor)
		}
	}
	return false
}

// --- FocusListener ---

// FocusListener observes keyboard and scroll focus changes. Call e.Cancel()
// to veto the change.
type FocusListener struct {
	KeyboardFocusChanged func(e *Event, a *Actor, focused bool)
	ScrollFocusChanged   func(e *Event, a *Actor, focused bool)
}

// Handle implements Listener.
func (l *FocusListener) Handle(e *Event) bool {
	if e.Kind != EventFocus {
		return false
	}
	switch e.Focus.Type {
	case FocusKeyboard:
		if l.KeyboardFocusChanged != nil {
			l.KeyboardFocusChanged(e, e.Target, e.Focus.Focused)
		}
	case FocusScroll:
		if l.ScrollFocusChanged != nil {
			l.ScrollFocusChanged(e, e.Target, e.Focus.Focused)
		}
	}
	return false
}

// --- ChangeListener ---

// ChangeListener is called for EventChange events. a is the actor that fired
// the event. Call e.Cancel() to ask the widget to revert the change.
type ChangeListener func(e *Event, a *Actor)

// Handle implements Listener.
func (f ChangeListener) Handle(e *Event) bool {
	if e.Kind == EventChange {
		f(e, e.Target)
	}
	return false
}

// --- ClickListener ---

// defaultTapSquareSize is the distance a pressed pointer may travel and still
// count as over the actor.
const defaultTapSquareSize = 14.0

// ClickListener detects a press followed by a release over the listener actor.
// It tracks whether the actor is pressed and whether a pointer is over it, so
// widgets can draw pressed and hover states.
type ClickListener struct {
	// OnClick is called with the release position in the listener actor's space.
	OnClick func(e *Event, x, y float64)
	// Button is the mouse button that starts a click. Touch pointers always do.
	Button        MouseButton
	TapSquareSize float64

	pressed        bool
	over           bool
	cancelled      bool
	pressedPointer int
	pressedButton  MouseButton
	touchDownX     float64
	touchDownY     float64
	inTapSquare    bool
}

// NewClickListener returns a listener for left-button clicks.
func NewClickListener(onClick func(e *Event, x, y float64)) *ClickListener {
	return &ClickListener{
		OnClick:        onClick,
		Button:         MouseButtonLeft,
		TapSquareSize:  defaultTapSquareSize,
		pressedPointer: -1,
	}
}

// Handle implements Listener.
func (l *ClickListener) Handle(e *Event) bool {
	if e.Kind != EventInput {
		return false
	}
	in := &e.Input
	switch in.Type {
	case InputTouchDown:
		if l.pressed {
			return false
		}
		if in.Pointer == 0 && in.Button != l.Button {
			return false
		}
		x, y := e.LocalPosition(e.ListenerActor)
		l.pressed = true
		l.pressedPointer = in.Pointer
		l.pressedButton = in.Button
		l.touchDownX, l.touchDownY = x, y
		l.inTapSquare = true
		return true

	case InputTouchDragged:
		if in.Pointer != l.pressedPointer || l.cancelled {
			return false
		}
		x, y := e.LocalPosition(e.ListenerActor)
		l.over = l.isOver(e.ListenerActor, x, y)
		if !l.over {
			l.inTapSquare = false
		}

	case InputTouchUp:
		if in.Pointer != l.pressedPointer {
			return false
		}
		if !l.cancelled && !e.IsTouchFocusCancel() {
			x, y := e.LocalPosition(e.ListenerActor)
			over := l.isOver(e.ListenerActor, x, y)
			if over && in.Pointer == 0 && in.Button != l.pressedButton {
				over = false
			}
			if over && l.OnClick != nil {
				l.OnClick(e, x, y)
			}
		}
		l.pressed = false
		l.pressedPointer = -1
		l.cancelled = false
		if e.IsTouchFocusCancel() {
			l.over = false
		}

	case InputEnter:
		if in.Pointer == -1 && !l.cancelled {
			l.over = true
		}

	case InputExit:
		if in.Pointer == -1 && !l.cancelled {
			l.over = false
		}
	}
	return false
}

// isOver reports whether (x, y) hits the listener actor or one of its
// descendants, or is still within the tap square of the press.
func (l *ClickListener) isOver(a *Actor, x, y float64) bool {
	if hit := a.Hit(x, y); hit != nil && hit.IsDescendantOf(a) {
		return true
	}
	return l.inTapSquareAt(x, y)
}

func (l *ClickListener) inTapSquareAt(x, y float64) bool {
	if !l.inTapSquare {
		return false
	}
	half := l.TapSquareSize / 2
	dx, dy := x-l.touchDownX, y-l.touchDownY
	return dx >= -half && dx <= half && dy >= -half && dy <= half
}

// Cancel drops the current press so the release does not click.
func (l *ClickListener) Cancel() {
	if l.pressedPointer == -1 {
		return
	}
	l.cancelled = true
	l.pressed = false
}

// IsPressed reports whether a press is in progress.
func (l *ClickListener) IsPressed() bool { return l.pressed }

// IsOver reports whether a pointer is over the listener actor.
func (l *ClickListener) IsOver() bool { return l.over || l.pressed }
