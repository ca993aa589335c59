package sprig

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

	// defaultDragDeadZone delivers touchDragged for any movement. Click
	// listeners apply their own tap square.
	defaultDragDeadZone = 0.0
)

// pointerState tracks one polled pointer between frames.
type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	button   MouseButton // button captured at press time
}

// Update polls Ebitengine input (or consumes one injected event), advances
// the camera and acts the tree. Call it once per tick.
func (h *HUD) Update() {
	dt := 1.0 / float64(ebiten.TPS())
	if h.testRunner != nil {
		h.testRunner.step(h)
	}
	h.processInput()
	h.camera.update(float32(dt))
	h.Act(dt)
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput feeds one frame of input into the HUD entry points. Injected
// events take precedence over the devices.
func (h *HUD) processInput() {
	if h.processInjectedInput() {
		return
	}
	h.modifiers = readModifiers()
	h.processMousePointer()
	h.processTouchPointers()
	if _, dy := ebiten.Wheel(); dy != 0 {
		// Ebitengine reports wheel-up as positive; scroll amounts grow downward.
		h.Scrolled(-dy)
	}
	h.processKeys()
}

// processMousePointer handles mouse input (pointer 0).
func (h *HUD) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	h.processPointer(0, float64(mx), float64(my), pressed, button)
}

// processTouchPointers handles touch input (pointers 1-9).
func (h *HUD) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(h.prevTouchIDs[:0])
	h.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := h.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		h.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	// Release slots whose touch ended this frame.
	for i := 1; i < maxPointers; i++ {
		if h.touchUsed[i] && !activeSlots[i] {
			ps := &h.pointers[i]
			if ps.down {
				h.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			h.touchUsed[i] = false
			h.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (h *HUD) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if h.touchUsed[i] && h.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !h.touchUsed[i] {
			h.touchUsed[i] = true
			h.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (h *HUD) processKeys() {
	h.keyBuf = inpututil.AppendJustPressedKeys(h.keyBuf[:0])
	for _, k := range h.keyBuf {
		h.KeyDown(k)
	}
	h.keyBuf = inpututil.AppendJustReleasedKeys(h.keyBuf[:0])
	for _, k := range h.keyBuf {
		h.KeyUp(k)
	}
	h.charBuf = ebiten.AppendInputChars(h.charBuf[:0])
	for _, r := range h.charBuf {
		h.KeyTyped(r)
	}
}

// processPointer turns the polled state of one pointer into touchDown,
// touchDragged, touchUp and mouseMoved calls.
func (h *HUD) processPointer(pointer int, sx, sy float64, pressed bool, button MouseButton) {
	ps := &h.pointers[pointer]
	moved := sx != ps.lastX || sy != ps.lastY

	switch {
	case pressed && !ps.down:
		// Keep the button for the whole interaction.
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = sx, sy
		ps.dragging = false
		h.TouchDown(sx, sy, pointer, button)

	case !pressed && ps.down:
		ps.down = false
		ps.dragging = false
		h.TouchUp(sx, sy, pointer, ps.button)

	case pressed && ps.down && moved:
		if !ps.dragging {
			dx, dy := sx-ps.startX, sy-ps.startY
			ps.dragging = math.Sqrt(dx*dx+dy*dy) > h.dragDeadZone
		}
		if ps.dragging {
			h.TouchDragged(sx, sy, pointer)
		}

	case !pressed && !ps.down && moved && pointer == 0:
		h.MouseMoved(sx, sy)
	}
	ps.lastX, ps.lastY = sx, sy
}
