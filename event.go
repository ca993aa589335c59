package sprig

import "github.com/hajimehoshi/ebiten/v2"

// EventKind selects which payload of an Event is meaningful.
type EventKind uint8

const (
	EventInput  EventKind = iota // pointer, scroll and keyboard input; see Event.Input
	EventFocus                   // keyboard or scroll focus change; see Event.Focus
	EventChange                  // a widget's value changed; no payload
)

var eventKindNames = [...]string{"input", "focus", "change"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// InputType identifies the kind of input event.
type InputType uint8

const (
	InputTouchDown    InputType = iota // pointer pressed
	InputTouchUp                       // pointer released, or touch focus cancelled
	InputTouchDragged                  // pointer moved while pressed
	InputMouseMoved                    // mouse moved with no button pressed
	InputEnter                         // pointer moved over an actor
	InputExit                          // pointer moved out of an actor
	InputScrolled                      // mouse wheel
	InputKeyDown
	InputKeyUp
	InputKeyTyped
)

var inputTypeNames = [...]string{
	"touchDown", "touchUp", "touchDragged", "mouseMoved", "enter", "exit",
	"scrolled", "keyDown", "keyUp", "keyTyped",
}

func (t InputType) String() string {
	if int(t) < len(inputTypeNames) {
		return inputTypeNames[t]
	}
	return "unknown"
}

// InputData is the payload of an EventInput event. Which fields are valid
// depends on Type:
//
//   - StageX, StageY: pointer and scroll events
//   - Pointer: touch, enter and exit events (-1 for the hovering mouse)
//   - Button: touchDown and touchUp
//   - Key: keyDown and keyUp
//   - Char: keyTyped
//   - ScrollAmount: scrolled
//   - RelatedActor: enter (the actor exited) and exit (the actor entered)
type InputData struct {
	Type         InputType
	StageX       float64
	StageY       float64
	Pointer      int
	Button       MouseButton
	Key          ebiten.Key
	Char         rune
	ScrollAmount float64
	RelatedActor *Actor

	// Cancelled marks a synthetic touchUp sent when touch focus is cancelled.
	// StageX and StageY carry no position in that case.
	Cancelled bool
}

// FocusType distinguishes keyboard focus from scroll focus.
type FocusType uint8

const (
	FocusKeyboard FocusType = iota
	FocusScroll
)

// FocusData is the payload of an EventFocus event.
type FocusData struct {
	Type FocusType
	// Focused is true when the target gains focus, false when it loses it.
	Focused bool
	// RelatedActor is the actor losing focus when Focused is true, or the one
	// gaining it when Focused is false. May be nil.
	RelatedActor *Actor
}

// Event is a mutable carrier passed through the capture, target and bubble
// phases of a dispatch. Events are pooled by the HUD; listeners must not keep
// a reference after returning.
type Event struct {
	Kind  EventKind
	Input InputData
	Focus FocusData

	// Target is the actor the event was fired on. It does not change while the
	// event propagates.
	Target *Actor
	// ListenerActor is the actor whose listener is currently being notified.
	ListenerActor *Actor
	HUD           *HUD
	Modifiers     KeyModifiers

	// Capture is true while capture listeners are being notified.
	Capture bool
	// Bubbles controls whether the event continues to the target's ancestors
	// after the target's own listeners. Defaults to true.
	Bubbles bool

	handled   bool
	stopped   bool
	cancelled bool
}

// NewChangeEvent returns an event of kind EventChange ready to fire.
func NewChangeEvent() *Event {
	e := &Event{}
	e.Reset()
	e.Kind = EventChange
	return e
}

// Reset restores all fields to their defaults so the event can be reused.
func (e *Event) Reset() {
	*e = Event{Bubbles: true}
}

// Handle marks the event as handled. Propagation continues.
func (e *Event) Handle() { e.handled = true }

// Stop ends propagation after the current actor's listeners.
func (e *Event) Stop() { e.stopped = true }

// Cancel stops the event and asks the code that fired it to undo whatever
// the event announces, such as a focus change or a selection change.
func (e *Event) Cancel() {
	e.cancelled = true
	e.stopped = true
	e.handled = true
}

// IsHandled reports whether any listener handled the event.
func (e *Event) IsHandled() bool { return e.handled }

// IsStopped reports whether propagation was stopped.
func (e *Event) IsStopped() bool { return e.stopped }

// IsCancelled reports whether a listener cancelled the event.
func (e *Event) IsCancelled() bool { return e.cancelled }

// IsTouchFocusCancel reports whether this is the synthetic touchUp delivered
// when touch focus is cancelled.
func (e *Event) IsTouchFocusCancel() bool {
	return e.Kind == EventInput && e.Input.Type == InputTouchUp && e.Input.Cancelled
}

// LocalPosition converts the event's stage position into a's local space.
func (e *Event) LocalPosition(a *Actor) (x, y float64) {
	return a.StageToLocal(e.Input.StageX, e.Input.StageY)
}

// --- Dispatch ---

// maxDispatchDepth sizes the on-stack ancestor buffer used by Fire.
const maxDispatchDepth = 16

// Fire dispatches e with a as the target: capture listeners from the root down
// to a, then a's own listeners, then a's ancestors' listeners up to the root
// unless the event stops or does not bubble. Returns true if the event was
// cancelled.
func (a *Actor) Fire(e *Event) bool {
	if e.HUD == nil {
		e.HUD = a.hud
	}
	e.Target = a
	cancelled := a.dispatch(e)
	if e.HUD != nil {
		e.HUD.emitUIEvent(e)
	}
	return cancelled
}

func (a *Actor) dispatch(e *Event) bool {
	var buf [maxDispatchDepth]*Actor
	ancestors := buf[:0]
	for p := a.parent; p != nil; p = p.parent {
		ancestors = append(ancestors, p)
	}

	// Capture phase, root first.
	for i := len(ancestors) - 1; i >= 0; i-- {
		ancestors[i].notify(e, true)
		if e.stopped {
			return e.cancelled
		}
	}
	a.notify(e, true)
	if e.stopped {
		return e.cancelled
	}

	// Target and bubble phase.
	a.notify(e, false)
	if !e.Bubbles || e.stopped {
		return e.cancelled
	}
	for _, p := range ancestors {
		p.notify(e, false)
		if e.stopped {
			return e.cancelled
		}
	}
	return e.cancelled
}

// notify offers e to a's listeners in registration order. The first listener
// returning true handles the event and ends notification on this actor. A
// handled touchDown gives that listener touch focus for the pointer.
func (a *Actor) notify(e *Event, capture bool) {
	entries := a.listeners
	if capture {
		entries = a.captureListeners
	}
	if len(entries) == 0 {
		return
	}
	e.ListenerActor = a
	e.Capture = capture
	if e.HUD == nil {
		e.HUD = a.hud
	}
	for _, entry := range entries {
		if !entry.listener.Handle(e) {
			continue
		}
		e.Handle()
		if e.Kind == EventInput && e.Input.Type == InputTouchDown && e.HUD != nil {
			e.HUD.addTouchFocus(entry, a, e.Target, e.Input.Pointer, e.Input.Button)
		}
		break
	}
}
