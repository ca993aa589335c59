package sprig

import "github.com/hajimehoshi/ebiten/v2"

// Window is a movable panel with a title bar above a content actor. Dragging
// the title bar moves the window, and pressing anywhere in it brings it to
// the front. With KeepWithinStage set the window is held inside the area the
// camera shows.
//
// A modal window is hit everywhere on the stage and swallows the input it
// receives, so nothing behind it can be used until it is hidden.
type Window struct {
	BaseWidget
	Actor *Actor

	Background      Drawable
	TitleBackground Drawable
	Pad             float64
	Movable         bool
	KeepWithinStage bool

	title   *Label
	content *Actor
	modal   bool

	dragPointer    int
	startX, startY float64
}

// NewWindow creates a window titled title. A nil font uses DefaultFont.
func NewWindow(title string, font Font) *Window {
	w := &Window{
		Background:      ColorDrawable{Color: Color{0.18, 0.18, 0.22, 1}},
		TitleBackground: ColorDrawable{Color: Color{0.28, 0.28, 0.34, 1}},
		Pad:             6,
		Movable:         true,
		KeepWithinStage: true,
		dragPointer:     -1,
	}
	w.Actor = NewWidget("window", w)
	w.title = NewLabel(title, font)
	w.title.Actor.Name = "title"
	w.title.Actor.Touchable = TouchableDisabled
	w.Actor.AddActor(w.title.Actor)

	w.Actor.AddCaptureListener(&InputListener{
		TouchDown: func(*Event, float64, float64, int, MouseButton) bool {
			w.Actor.ToFront()
			return false
		},
	})
	w.Actor.AddListener(&InputListener{
		TouchDown:    w.touchDown,
		TouchDragged: w.touchDragged,
		TouchUp: func(_ *Event, _, _ float64, pointer int, _ MouseButton) {
			if pointer == w.dragPointer {
				w.dragPointer = -1
			}
		},
		MouseMoved: func(*Event, float64, float64) bool { return w.modal },
		Scrolled:   func(*Event, float64, float64, float64) bool { return w.modal },
		KeyDown:    func(*Event, ebiten.Key) bool { return w.modal },
		KeyUp:      func(*Event, ebiten.Key) bool { return w.modal },
		KeyTyped:   func(*Event, rune) bool { return w.modal },
	})
	return w
}

// Title returns the title label.
func (w *Window) Title() *Label { return w.title }

// Content returns the content actor, or nil.
func (w *Window) Content() *Actor { return w.content }

// SetContent replaces the content actor. The previous content is removed.
func (w *Window) SetContent(content *Actor) {
	if content == w.content {
		return
	}
	if w.content != nil {
		w.Actor.RemoveActor(w.content)
	}
	w.content = content
	if content != nil {
		w.Actor.AddActor(content)
	}
	w.Actor.InvalidateHierarchy()
}

// IsModal reports whether the window is modal.
func (w *Window) IsModal() bool { return w.modal }

// SetModal makes the window modal or not.
func (w *Window) SetModal(modal bool) {
	w.modal = modal
	if modal {
		w.Actor.HitShape = everywhere{}
	} else {
		w.Actor.HitShape = nil
	}
}

// everywhere is the hit shape of a modal window.
type everywhere struct{}

func (everywhere) Contains(float64, float64) bool { return true }

// IsDragging reports whether the title bar is being dragged.
func (w *Window) IsDragging() bool { return w.dragPointer != -1 }

// Show adds the window to h in front of the other actors, centered in the
// visible area. An unsized window is packed first. If nothing has keyboard
// focus the window takes it.
func (w *Window) Show(h *HUD) {
	if w.Actor.Width() == 0 && w.Actor.Height() == 0 {
		w.Actor.Pack()
	}
	h.AddActor(w.Actor)
	w.Actor.ToFront()
	vis := h.Camera().VisibleBounds()
	w.Actor.SetPosition(vis.X+(vis.Width-w.Actor.Width())/2, vis.Y+(vis.Height-w.Actor.Height())/2)
	if h.KeyboardFocus() == nil {
		h.SetKeyboardFocus(w.Actor)
	}
}

// Hide removes the window from its HUD.
func (w *Window) Hide() {
	w.dragPointer = -1
	w.Actor.Remove()
}

// titleHeight returns the height of the title bar.
func (w *Window) titleHeight() float64 {
	return w.title.Actor.PrefHeight() + 2*w.Pad
}

func (w *Window) touchDown(_ *Event, x, y float64, pointer int, button MouseButton) bool {
	if pointer == 0 && button != MouseButtonLeft {
		return w.modal
	}
	if w.Movable && w.dragPointer == -1 &&
		x >= 0 && x < w.Actor.width && y >= 0 && y < w.titleHeight() {
		w.dragPointer = pointer
		w.startX, w.startY = x, y
		return true
	}
	return w.modal
}

func (w *Window) touchDragged(_ *Event, x, y float64, pointer int) {
	if pointer != w.dragPointer {
		return
	}
	w.Actor.MoveBy(x-w.startX, y-w.startY)
	if w.KeepWithinStage && w.Actor.hud != nil {
		_ = KeepWithinStage(w.Actor)
	}
}

func (w *Window) PrefWidth(*Actor) float64 {
	cw := 0.0
	if w.content != nil {
		cw = w.content.PrefWidth()
	}
	pw := max(w.title.Actor.PrefWidth(), cw) + 2*w.Pad
	if w.Background != nil {
		pw = max(pw, w.Background.MinWidth())
	}
	return pw
}

func (w *Window) PrefHeight(*Actor) float64 {
	h := w.titleHeight() + w.Pad
	if w.content != nil {
		h += w.content.PrefHeight()
	}
	if w.Background != nil {
		h = max(h, w.Background.MinHeight())
	}
	return h
}

// Layout places the title across the top and stretches the content over the
// rest of the padded bounds.
func (w *Window) Layout(a *Actor) {
	innerW := max(a.width-2*w.Pad, 0)
	th := w.titleHeight()
	w.title.Actor.SetBounds(w.Pad, w.Pad, innerW, w.title.Actor.PrefHeight())
	if w.content != nil {
		w.content.SetBounds(w.Pad, th, innerW, max(a.height-th-w.Pad, 0))
	}
}

// Draw implements Drawer. The window is pulled back inside the visible area
// first when KeepWithinStage is set.
func (w *Window) Draw(a *Actor, b Batch, alpha float64) {
	if w.KeepWithinStage && a.hud != nil && w.dragPointer == -1 {
		x, y := a.x, a.y
		_ = KeepWithinStage(a)
		if a.x != x || a.y != y {
			a.UpdateTransform(true)
		}
	}
	tint := a.Tint(alpha)
	if w.Background != nil {
		w.Background.Draw(b, a.globalX, a.globalY, a.width, a.height, tint)
	}
	if w.TitleBackground != nil {
		w.TitleBackground.Draw(b, a.globalX, a.globalY, a.width, w.titleHeight(), tint)
	}
	a.DrawChildren(b, alpha)
}
