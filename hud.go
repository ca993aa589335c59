package sprig

import "github.com/hajimehoshi/ebiten/v2"

// EntityStore is the interface for optional ECS integration.
// When set on a HUD, every fired event whose target has a non-zero EntityID
// is forwarded to the store after dispatch.
type EntityStore interface {
	EmitEvent(event UIEvent)
}

// UIEvent carries a dispatched event to the ECS bridge.
type UIEvent struct {
	Kind      EventKind
	Input     InputType // valid when Kind is EventInput
	EntityID  uint32
	StageX    float64
	StageY    float64
	Pointer   int
	Button    MouseButton
	Key       ebiten.Key
	Char      rune
	Modifiers KeyModifiers
	// Focused is valid when Kind is EventFocus.
	Focused   bool
	Handled   bool
	Cancelled bool
}

// touchFocus binds a pointer and button to the listener that handled the
// touchDown, until the pointer is released or the focus is cancelled.
type touchFocus struct {
	entry         listenerEntry
	listenerActor *Actor
	target        *Actor
	pointer       int
	button        MouseButton
}

// HUD is the head-up display: the root of an actor tree, the camera mapping
// stage space onto the screen, and the entry point for raw input.
type HUD struct {
	root   *Actor
	camera *Camera
	focus  *FocusManager
	store  EntityStore
	debug  bool

	keyboardFocus *Actor
	scrollFocus   *Actor
	touchFocuses  []*touchFocus

	// Last known pointer state, used for enter/exit in Act.
	pointerOver    [maxPointers]*Actor
	pointerTouched [maxPointers]bool
	pointerScreenX [maxPointers]float64
	pointerScreenY [maxPointers]float64
	mouseOver      *Actor
	mouseScreenX   float64
	mouseScreenY   float64
	modifiers      KeyModifiers

	eventPool []*Event

	// Device polling (input.go)
	pointers     [maxPointers]pointerState
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	keyBuf       []ebiten.Key
	charBuf      []rune

	injectQueue []injectedEvent
	testRunner  *TestRunner

	screenshotDir   string
	screenshotQueue []string
}

// NewHUD creates a HUD whose stage space matches a screen of the given size.
func NewHUD(width, height float64) *HUD {
	h := &HUD{
		camera:       newCamera(Rect{Width: width, Height: height}),
		focus:        &FocusManager{},
		dragDeadZone: defaultDragDeadZone,
	}
	h.root = NewActor("root")
	h.root.hud = h
	h.root.SetSize(width, height)
	return h
}

// Root returns the root actor.
func (h *HUD) Root() *Actor { return h.root }

// Camera returns the HUD camera.
func (h *HUD) Camera() *Camera { return h.camera }

// Focus returns the focus manager used by this HUD's widgets.
func (h *HUD) Focus() *FocusManager { return h.focus }

// SetFocusManager replaces the focus manager. HUDs sharing one manager share
// a single generally-focused widget.
func (h *HUD) SetFocusManager(fm *FocusManager) {
	if fm == nil {
		panic("sprig: focus manager cannot be nil")
	}
	h.focus = fm
}

// SetEntityStore sets the optional ECS bridge.
func (h *HUD) SetEntityStore(store EntityStore) {
	h.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-actor
// access panics, tree depth, child count and layout warnings are printed, and
// per-frame timing is logged to stderr.
func (h *HUD) SetDebugMode(enabled bool) {
	h.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set HUD debug flag so that actor
// operations, which may run before the actor joins a HUD, can check it.
var globalDebug bool

// SetDragDeadZone sets the distance in pixels a pressed pointer must move
// before touchDragged events are delivered.
func (h *HUD) SetDragDeadZone(pixels float64) {
	h.dragDeadZone = pixels
}

// Width returns the visible stage width.
func (h *HUD) Width() float64 {
	return h.camera.Viewport.Width / h.camera.Zoom
}

// Height returns the visible stage height.
func (h *HUD) Height() float64 {
	return h.camera.Viewport.Height / h.camera.Zoom
}

// Resize sets the screen viewport, recenters the camera and resizes the root.
func (h *HUD) Resize(width, height float64) {
	h.camera.Viewport = Rect{Width: width, Height: height}
	h.camera.X = width / (2 * h.camera.Zoom)
	h.camera.Y = height / (2 * h.camera.Zoom)
	h.root.SetSize(h.Width(), h.Height())
}

// AddActor adds a to the root.
func (h *HUD) AddActor(a *Actor) { h.root.AddActor(a) }

// RemoveActor removes a from the root.
func (h *HUD) RemoveActor(a *Actor) bool { return h.root.RemoveActor(a) }

// Actors returns the root's children. The returned slice MUST NOT be mutated.
func (h *HUD) Actors() []*Actor { return h.root.children }

// AddListener adds a listener to the root.
func (h *HUD) AddListener(l Listener) ListenerHandle { return h.root.AddListener(l) }

// AddCaptureListener adds a capture listener to the root.
func (h *HUD) AddCaptureListener(l Listener) ListenerHandle { return h.root.AddCaptureListener(l) }

// Hit returns the topmost touchable actor at the stage point, or nil.
func (h *HUD) Hit(stageX, stageY float64) *Actor {
	x, y := h.root.ParentToLocal(stageX, stageY)
	return h.root.Hit(x, y)
}

// ScreenToStage converts screen coordinates to stage coordinates.
func (h *HUD) ScreenToStage(sx, sy float64) (float64, float64) {
	return h.camera.ScreenToWorld(sx, sy)
}

// StageToScreen converts stage coordinates to screen coordinates.
func (h *HUD) StageToScreen(x, y float64) (float64, float64) {
	return h.camera.WorldToScreen(x, y)
}

// SetModifiers sets the modifier keys attached to subsequent events.
func (h *HUD) SetModifiers(m KeyModifiers) { h.modifiers = m }

// Modifiers returns the modifier keys attached to events.
func (h *HUD) Modifiers() KeyModifiers { return h.modifiers }

// --- Event pool ---

func (h *HUD) obtainEvent(kind EventKind) *Event {
	var e *Event
	if n := len(h.eventPool); n > 0 {
		e = h.eventPool[n-1]
		h.eventPool = h.eventPool[:n-1]
	} else {
		e = &Event{}
	}
	e.Reset()
	e.Kind = kind
	e.HUD = h
	e.Modifiers = h.modifiers
	return e
}

func (h *HUD) freeEvent(e *Event) {
	e.Reset()
	h.eventPool = append(h.eventPool, e)
}

func (h *HUD) obtainInput(t InputType, stageX, stageY float64, pointer int) *Event {
	e := h.obtainEvent(EventInput)
	e.Input.Type = t
	e.Input.StageX = stageX
	e.Input.StageY = stageY
	e.Input.Pointer = pointer
	return e
}

// --- Act ---

// Act fires enter and exit events for pointers whose hovered actor changed,
// including changes caused by actors moving, and then acts the tree.
func (h *HUD) Act(dt float64) {
	for p := range h.pointerOver {
		overLast := h.pointerOver[p]
		if !h.pointerTouched[p] {
			if overLast != nil {
				h.pointerOver[p] = nil
				x, y := h.ScreenToStage(h.pointerScreenX[p], h.pointerScreenY[p])
				e := h.obtainInput(InputExit, x, y, p)
				e.Input.RelatedActor = overLast
				overLast.Fire(e)
				h.freeEvent(e)
			}
			continue
		}
		h.pointerOver[p] = h.fireEnterAndExit(overLast, h.pointerScreenX[p], h.pointerScreenY[p], p)
	}
	h.mouseOver = h.fireEnterAndExit(h.mouseOver, h.mouseScreenX, h.mouseScreenY, -1)
	h.root.Act(dt)
}

func (h *HUD) fireEnterAndExit(overLast *Actor, sx, sy float64, pointer int) *Actor {
	x, y := h.ScreenToStage(sx, sy)
	over := h.Hit(x, y)
	if over == overLast {
		return overLast
	}
	if overLast != nil {
		e := h.obtainInput(InputExit, x, y, pointer)
		e.Input.RelatedActor = over
		overLast.Fire(e)
		h.freeEvent(e)
	}
	if over != nil {
		e := h.obtainInput(InputEnter, x, y, pointer)
		e.Input.RelatedActor = overLast
		over.Fire(e)
		h.freeEvent(e)
	}
	return over
}

// --- Raw input entry points ---
//
// Coordinates are in screen space and converted through the camera. Each
// method returns true if a listener handled the event.

// TouchDown delivers a press of pointer. Presses outside the camera viewport
// are ignored. A listener that handles the event gains touch focus.
func (h *HUD) TouchDown(sx, sy float64, pointer int, button MouseButton) bool {
	if !h.camera.InsideViewport(sx, sy) || !validPointer(pointer) {
		return false
	}
	h.pointerTouched[pointer] = true
	h.pointerScreenX[pointer] = sx
	h.pointerScreenY[pointer] = sy
	x, y := h.ScreenToStage(sx, sy)
	e := h.obtainInput(InputTouchDown, x, y, pointer)
	e.Input.Button = button
	if target := h.Hit(x, y); target != nil {
		target.Fire(e)
	} else if h.root.Touchable == TouchableEnabled {
		h.root.Fire(e)
	}
	handled := e.handled
	h.freeEvent(e)
	return handled
}

// TouchDragged delivers pointer movement to the touch focus listeners of
// pointer.
func (h *HUD) TouchDragged(sx, sy float64, pointer int) bool {
	if !validPointer(pointer) {
		return false
	}
	h.pointerScreenX[pointer] = sx
	h.pointerScreenY[pointer] = sy
	h.mouseScreenX = sx
	h.mouseScreenY = sy
	if len(h.touchFocuses) == 0 {
		return false
	}
	x, y := h.ScreenToStage(sx, sy)
	e := h.obtainInput(InputTouchDragged, x, y, pointer)

	// Listeners may add or remove touch focus while being notified.
	snapshot := append([]*touchFocus(nil), h.touchFocuses...)
	for _, f := range snapshot {
		if f.pointer != pointer || !h.hasTouchFocus(f) {
			continue
		}
		e.Target = f.target
		e.ListenerActor = f.listenerActor
		if f.entry.listener.Handle(e) {
			e.Handle()
		}
		h.emitUIEvent(e)
	}
	handled := e.handled
	h.freeEvent(e)
	return handled
}

// TouchUp delivers the release of pointer and button to the matching touch
// focus listeners and releases their focus. Other touch focuses are kept.
func (h *HUD) TouchUp(sx, sy float64, pointer int, button MouseButton) bool {
	if !validPointer(pointer) {
		return false
	}
	h.pointerTouched[pointer] = false
	h.pointerScreenX[pointer] = sx
	h.pointerScreenY[pointer] = sy
	if len(h.touchFocuses) == 0 {
		return false
	}
	released := h.takeTouchFocuses(func(f *touchFocus) bool {
		return f.pointer == pointer && f.button == button
	})
	if len(released) == 0 {
		return false
	}
	x, y := h.ScreenToStage(sx, sy)
	e := h.obtainInput(InputTouchUp, x, y, pointer)
	e.Input.Button = button
	for _, f := range released {
		e.Target = f.target
		e.ListenerActor = f.listenerActor
		if f.entry.listener.Handle(e) {
			e.Handle()
		}
		h.emitUIEvent(e)
	}
	handled := e.handled
	h.freeEvent(e)
	return handled
}

// MouseMoved delivers hover movement to the actor under the mouse, or the root.
func (h *HUD) MouseMoved(sx, sy float64) bool {
	h.mouseScreenX = sx
	h.mouseScreenY = sy
	x, y := h.ScreenToStage(sx, sy)
	e := h.obtainInput(InputMouseMoved, x, y, 0)
	target := h.Hit(x, y)
	if target == nil {
		target = h.root
	}
	target.Fire(e)
	handled := e.handled
	h.freeEvent(e)
	return handled
}

// Scrolled delivers a wheel movement to the scroll focus, or the root.
func (h *HUD) Scrolled(amount float64) bool {
	target := h.scrollFocus
	if target == nil {
		target = h.root
	}
	x, y := h.ScreenToStage(h.mouseScreenX, h.mouseScreenY)
	e := h.obtainInput(InputScrolled, x, y, 0)
	e.Input.ScrollAmount = amount
	target.Fire(e)
	handled := e.handled
	h.freeEvent(e)
	return handled
}

// KeyDown delivers a key press to the keyboard focus, or the root.
func (h *HUD) KeyDown(key ebiten.Key) bool {
	e := h.obtainEvent(EventInput)
	e.Input.Type = InputKeyDown
	e.Input.Key = key
	return h.fireKey(e)
}

// KeyUp delivers a key release to the keyboard focus, or the root.
func (h *HUD) KeyUp(key ebiten.Key) bool {
	e := h.obtainEvent(EventInput)
	e.Input.Type = InputKeyUp
	e.Input.Key = key
	return h.fireKey(e)
}

// KeyTyped delivers a typed character to the keyboard focus, or the root.
func (h *HUD) KeyTyped(char rune) bool {
	e := h.obtainEvent(EventInput)
	e.Input.Type = InputKeyTyped
	e.Input.Char = char
	return h.fireKey(e)
}

func (h *HUD) fireKey(e *Event) bool {
	target := h.keyboardFocus
	if target == nil {
		target = h.root
	}
	target.Fire(e)
	handled := e.handled
	h.freeEvent(e)
	return handled
}

func validPointer(p int) bool {
	return p >= 0 && p < maxPointers
}

// --- Touch focus ---

func (h *HUD) addTouchFocus(entry listenerEntry, listenerActor, target *Actor, pointer int, button MouseButton) {
	h.touchFocuses = append(h.touchFocuses, &touchFocus{
		entry:         entry,
		listenerActor: listenerActor,
		target:        target,
		pointer:       pointer,
		button:        button,
	})
}

func (h *HUD) hasTouchFocus(f *touchFocus) bool {
	for _, g := range h.touchFocuses {
		if g == f {
			return true
		}
	}
	return false
}

// takeTouchFocuses removes and returns the focuses matching match. The list is
// rebuilt rather than filtered in place so snapshots held by callers stay valid.
func (h *HUD) takeTouchFocuses(match func(f *touchFocus) bool) []*touchFocus {
	var taken []*touchFocus
	kept := make([]*touchFocus, 0, len(h.touchFocuses))
	for _, f := range h.touchFocuses {
		if match(f) {
			taken = append(taken, f)
		} else {
			kept = append(kept, f)
		}
	}
	if len(taken) > 0 {
		h.touchFocuses = kept
	}
	return taken
}

// NumTouchFocuses returns the number of active touch focuses.
func (h *HUD) NumTouchFocuses() int {
	return len(h.touchFocuses)
}

// RemoveTouchFocus releases touch focus for the listener actor, target, pointer
// and button without notifying the listener.
func (h *HUD) RemoveTouchFocus(listenerActor, target *Actor, pointer int, button MouseButton) {
	h.takeTouchFocuses(func(f *touchFocus) bool {
		return f.listenerActor == listenerActor && f.target == target &&
			f.pointer == pointer && f.button == button
	})
}

// CancelTouchFocus cancels every touch focus whose listener actor is a. Each
// listener receives a touchUp with Input.Cancelled set.
func (h *HUD) CancelTouchFocus(a *Actor) {
	h.cancelTouchFocuses(func(f *touchFocus) bool { return f.listenerActor == a })
}

// CancelAllTouchFocus cancels every touch focus.
func (h *HUD) CancelAllTouchFocus() {
	h.cancelTouchFocuses(func(*touchFocus) bool { return true })
}

// CancelTouchFocusExcept cancels every touch focus except the one held by the
// listener identified by except.
func (h *HUD) CancelTouchFocusExcept(except ListenerHandle) {
	h.cancelTouchFocuses(func(f *touchFocus) bool {
		return f.listenerActor != except.actor || f.entry.id != except.id
	})
}

func (h *HUD) cancelTouchFocuses(match func(f *touchFocus) bool) {
	cancelled := h.takeTouchFocuses(match)
	if len(cancelled) == 0 {
		return
	}
	e := h.obtainEvent(EventInput)
	for _, f := range cancelled {
		e.Input.Type = InputTouchUp
		e.Input.Cancelled = true
		e.Input.Pointer = f.pointer
		e.Input.Button = f.button
		e.Target = f.target
		e.ListenerActor = f.listenerActor
		f.entry.listener.Handle(e)
	}
	h.freeEvent(e)
}

// IsTouchFocusTarget reports whether a is the target of any touch focus.
func (h *HUD) IsTouchFocusTarget(a *Actor) bool {
	for _, f := range h.touchFocuses {
		if f.target == a {
			return true
		}
	}
	return false
}

// IsTouchFocusListener reports whether a is the listener actor of any touch focus.
func (h *HUD) IsTouchFocusListener(a *Actor) bool {
	for _, f := range h.touchFocuses {
		if f.listenerActor == a {
			return true
		}
	}
	return false
}

// --- Keyboard and scroll focus ---

// KeyboardFocus returns the actor receiving key events, or nil.
func (h *HUD) KeyboardFocus() *Actor { return h.keyboardFocus }

// ScrollFocus returns the actor receiving scroll events, or nil.
func (h *HUD) ScrollFocus() *Actor { return h.scrollFocus }

// SetKeyboardFocus moves keyboard focus to a, which may be nil. The actor
// losing focus and the actor gaining it each receive a focus event; if either
// is cancelled the focus is left unchanged and false is returned. When the
// gaining actor cancels, the previous holder receives a focus-gained event
// restoring its focus.
func (h *HUD) SetKeyboardFocus(a *Actor) bool {
	return h.setFocus(&h.keyboardFocus, a, FocusKeyboard)
}

// SetScrollFocus moves scroll focus to a, which may be nil. Vetoable like
// SetKeyboardFocus.
func (h *HUD) SetScrollFocus(a *Actor) bool {
	return h.setFocus(&h.scrollFocus, a, FocusScroll)
}

func (h *HUD) setFocus(slot **Actor, a *Actor, t FocusType) bool {
	if *slot == a {
		return true
	}
	e := h.obtainEvent(EventFocus)
	defer h.freeEvent(e)
	e.Focus.Type = t
	old := *slot
	if old != nil {
		e.Focus.Focused = false
		e.Focus.RelatedActor = a
		old.Fire(e)
		if e.cancelled {
			return false
		}
	}
	*slot = a
	if a == nil {
		return true
	}
	e.Reset()
	e.Kind = EventFocus
	e.HUD = h
	e.Modifiers = h.modifiers
	e.Focus.Type = t
	e.Focus.Focused = true
	e.Focus.RelatedActor = old
	a.Fire(e)
	if e.cancelled {
		*slot = old
		if old != nil {
			// old already saw the loss; give the focus back.
			e.Reset()
			e.Kind = EventFocus
			e.HUD = h
			e.Modifiers = h.modifiers
			e.Focus.Type = t
			e.Focus.Focused = true
			e.Focus.RelatedActor = a
			old.Fire(e)
		}
		return false
	}
	return true
}

// HasKeyboardFocus reports whether a has keyboard focus.
func (a *Actor) HasKeyboardFocus() bool {
	return a.hud != nil && a.hud.keyboardFocus == a
}

// HasScrollFocus reports whether a has scroll focus.
func (a *Actor) HasScrollFocus() bool {
	return a.hud != nil && a.hud.scrollFocus == a
}

// UnfocusAll clears scroll and keyboard focus and cancels all touch focus.
func (h *HUD) UnfocusAll() {
	h.SetScrollFocus(nil)
	h.SetKeyboardFocus(nil)
	h.CancelAllTouchFocus()
}

// unfocus releases every HUD-level reference to a or its descendants. Called
// when a leaves the tree. Focus vetoes are overridden: a detached actor must
// not keep focus.
func (h *HUD) unfocus(a *Actor) {
	h.cancelTouchFocuses(func(f *touchFocus) bool {
		return f.listenerActor.IsDescendantOf(a) || (f.target != nil && f.target.IsDescendantOf(a))
	})
	if h.scrollFocus != nil && h.scrollFocus.IsDescendantOf(a) && !h.SetScrollFocus(nil) {
		h.scrollFocus = nil
	}
	if h.keyboardFocus != nil && h.keyboardFocus.IsDescendantOf(a) && !h.SetKeyboardFocus(nil) {
		h.keyboardFocus = nil
	}
	if f := h.focus.Focused(); f != nil && f.IsDescendantOf(a) {
		h.focus.ResetFocus(h)
	}
	for p, over := range h.pointerOver {
		if over != nil && over.IsDescendantOf(a) {
			h.pointerOver[p] = nil
		}
	}
	if h.mouseOver != nil && h.mouseOver.IsDescendantOf(a) {
		h.mouseOver = nil
	}
}

// Clear unfocuses everything and removes all actors from the root.
func (h *HUD) Clear() {
	h.UnfocusAll()
	h.root.ClearChildren()
}

// --- ECS bridge ---

func (h *HUD) emitUIEvent(e *Event) {
	if h.store == nil || e.Target == nil || e.Target.EntityID == 0 {
		return
	}
	h.store.EmitEvent(UIEvent{
		Kind:      e.Kind,
		Input:     e.Input.Type,
		EntityID:  e.Target.EntityID,
		StageX:    e.Input.StageX,
		StageY:    e.Input.StageY,
		Pointer:   e.Input.Pointer,
		Button:    e.Input.Button,
		Key:       e.Input.Key,
		Char:      e.Input.Char,
		Modifiers: e.Modifiers,
		Focused:   e.Focus.Focused,
		Handled:   e.handled,
		Cancelled: e.cancelled,
	})
}
