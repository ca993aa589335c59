package sprig

import "github.com/hajimehoshi/ebiten/v2"

type injectKind uint8

const (
	injectPointer injectKind = iota
	injectKeyDown
	injectKeyUp
	injectChar
	injectScroll
	injectModifiers
)

// injectedEvent is one queued synthetic input event. Pointer events use
// screen coordinates and go through the camera exactly like real input.
type injectedEvent struct {
	kind             injectKind
	screenX, screenY float64
	pressed          bool
	button           MouseButton
	key              ebiten.Key
	char             rune
	amount           float64
	mods             KeyModifiers
}

// InjectPress queues a left-button press at the given screen coordinates.
// Injected events are consumed one per Update, in order.
func (h *HUD) InjectPress(x, y float64) {
	h.injectQueue = append(h.injectQueue, injectedEvent{
		kind: injectPointer, screenX: x, screenY: y, pressed: true, button: MouseButtonLeft,
	})
}

// InjectMove queues a pointer move with the button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (h *HUD) InjectMove(x, y float64) {
	h.InjectPress(x, y)
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (h *HUD) InjectRelease(x, y float64) {
	h.injectQueue = append(h.injectQueue, injectedEvent{
		kind: injectPointer, screenX: x, screenY: y, button: MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (h *HUD) InjectClick(x, y float64) {
	h.InjectPress(x, y)
	h.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves and
// a release at (toX, toY). Minimum frames is 2.
func (h *HUD) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	h.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		h.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	h.InjectRelease(toX, toY)
}

// InjectKey queues a key press followed by a release. Consumes two frames.
func (h *HUD) InjectKey(key ebiten.Key) {
	h.injectQueue = append(h.injectQueue,
		injectedEvent{kind: injectKeyDown, key: key},
		injectedEvent{kind: injectKeyUp, key: key},
	)
}

// InjectType queues one keyTyped event per rune of s.
func (h *HUD) InjectType(s string) {
	for _, r := range s {
		h.injectQueue = append(h.injectQueue, injectedEvent{kind: injectChar, char: r})
	}
}

// InjectScroll queues a wheel movement at the last mouse position.
func (h *HUD) InjectScroll(amount float64) {
	h.injectQueue = append(h.injectQueue, injectedEvent{kind: injectScroll, amount: amount})
}

// InjectModifiers queues a change of the held modifier keys, applied to all
// later injected events.
func (h *HUD) InjectModifiers(mods KeyModifiers) {
	h.injectQueue = append(h.injectQueue, injectedEvent{kind: injectModifiers, mods: mods})
}

// processInjectedInput pops one event from the queue and feeds it to the HUD.
// Returns true if an event was consumed, in which case device input is
// skipped for the frame.
func (h *HUD) processInjectedInput() bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	switch evt.kind {
	case injectPointer:
		h.processPointer(0, evt.screenX, evt.screenY, evt.pressed, evt.button)
	case injectKeyDown:
		h.KeyDown(evt.key)
	case injectKeyUp:
		h.KeyUp(evt.key)
	case injectChar:
		h.KeyTyped(evt.char)
	case injectScroll:
		h.Scrolled(evt.amount)
	case injectModifiers:
		h.modifiers = evt.mods
	}
	return true
}
