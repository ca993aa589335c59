package sprig

import "math"

const (
	defaultScrollStep = 20.0
	// scrollDragThreshold is how far a press must travel before the pane
	// takes the gesture from its children.
	scrollDragThreshold = 8.0
)

// ScrollPane shows a window onto a content actor larger than itself. The
// content scrolls with the wheel while the pane has scroll focus, and with
// a pointer drag, which cancels the touch focus of the children so a drag
// started on a button does not click it.
type ScrollPane struct {
	BaseWidget
	Actor *Actor

	Background Drawable
	// ScrollStep is the distance scrolled per wheel notch.
	ScrollStep float64
	// DragScroll enables scrolling by dragging the content.
	DragScroll bool
	// PrefMaxWidth and PrefMaxHeight cap the preferred size reported to the
	// parent, 0 meaning uncapped. Set them to keep a pane inside a group
	// smaller than its content.
	PrefMaxWidth, PrefMaxHeight float64

	content          *Actor
	scrollX, scrollY float64

	dragHandle   ListenerHandle
	dragPointer  int
	dragging     bool
	lastX, lastY float64
}

// NewScrollPane creates a pane around content, which may be nil.
func NewScrollPane(content *Actor) *ScrollPane {
	s := &ScrollPane{ScrollStep: defaultScrollStep, DragScroll: true, dragPointer: -1}
	s.Actor = NewWidget("scrollpane", s)
	s.Actor.ClipChildren = true
	s.Actor.AddListener(&InputListener{
		Enter: func(e *Event, _, _ float64, pointer int, from *Actor) {
			if pointer == -1 && (from == nil || !from.IsDescendantOf(s.Actor)) && e.HUD != nil {
				e.HUD.SetScrollFocus(s.Actor)
			}
		},
		Exit: func(e *Event, _, _ float64, pointer int, to *Actor) {
			if pointer != -1 || e.HUD == nil || (to != nil && to.IsDescendantOf(s.Actor)) {
				return
			}
			if e.HUD.ScrollFocus() == s.Actor {
				e.HUD.SetScrollFocus(nil)
			}
		},
		Scrolled: func(_ *Event, _, _, amount float64) bool {
			s.SetScrollY(s.scrollY + amount*s.ScrollStep)
			return true
		},
	})
	s.dragHandle = s.Actor.AddCaptureListener(&InputListener{
		TouchDown:    s.touchDown,
		TouchDragged: s.touchDragged,
		TouchUp: func(_ *Event, _, _ float64, pointer int, _ MouseButton) {
			if pointer == s.dragPointer {
				s.dragPointer = -1
				s.dragging = false
			}
		},
	})
	s.SetContent(content)
	return s
}

// Content returns the scrolled actor, or nil.
func (s *ScrollPane) Content() *Actor { return s.content }

// SetContent replaces the scrolled actor and resets the scroll position.
func (s *ScrollPane) SetContent(content *Actor) {
	if content == s.content {
		return
	}
	if s.content != nil {
		s.Actor.RemoveActor(s.content)
	}
	s.content = content
	s.scrollX, s.scrollY = 0, 0
	if content != nil {
		s.Actor.AddActor(content)
	}
	s.Actor.InvalidateHierarchy()
}

func (s *ScrollPane) touchDown(e *Event, _, _ float64, pointer int, _ MouseButton) bool {
	if !s.DragScroll || s.dragPointer != -1 {
		return false
	}
	s.dragPointer = pointer
	s.dragging = false
	s.lastX, s.lastY = e.Input.StageX, e.Input.StageY
	if e.HUD != nil {
		e.HUD.SetScrollFocus(s.Actor)
	}
	return true
}

func (s *ScrollPane) touchDragged(e *Event, _, _ float64, pointer int) {
	if pointer != s.dragPointer {
		return
	}
	x, y := e.Input.StageX, e.Input.StageY
	dx, dy := x-s.lastX, y-s.lastY
	if !s.dragging {
		if math.Hypot(dx, dy) < scrollDragThreshold {
			return
		}
		s.dragging = true
		if e.HUD != nil {
			e.HUD.CancelTouchFocusExcept(s.dragHandle)
		}
	}
	s.lastX, s.lastY = x, y
	s.SetScroll(s.scrollX-dx, s.scrollY-dy)
}

// IsDragging reports whether a drag gesture is scrolling the pane.
func (s *ScrollPane) IsDragging() bool { return s.dragging }

// ScrollX returns the horizontal scroll offset.
func (s *ScrollPane) ScrollX() float64 { return s.scrollX }

// ScrollY returns the vertical scroll offset.
func (s *ScrollPane) ScrollY() float64 { return s.scrollY }

// MaxScrollX returns the largest horizontal offset.
func (s *ScrollPane) MaxScrollX() float64 {
	if s.content == nil {
		return 0
	}
	return max(s.content.width-s.Actor.width, 0)
}

// MaxScrollY returns the largest vertical offset.
func (s *ScrollPane) MaxScrollY() float64 {
	if s.content == nil {
		return 0
	}
	return max(s.content.height-s.Actor.height, 0)
}

// SetScrollX scrolls horizontally, clamped to [0, MaxScrollX].
func (s *ScrollPane) SetScrollX(x float64) { s.SetScroll(x, s.scrollY) }

// SetScrollY scrolls vertically, clamped to [0, MaxScrollY].
func (s *ScrollPane) SetScrollY(y float64) { s.SetScroll(s.scrollX, y) }

// SetScroll sets both offsets, clamped to the content.
func (s *ScrollPane) SetScroll(x, y float64) {
	s.scrollX = math.Max(0, math.Min(x, s.MaxScrollX()))
	s.scrollY = math.Max(0, math.Min(y, s.MaxScrollY()))
	if s.content != nil {
		s.content.SetPosition(-s.scrollX, -s.scrollY)
	}
}

// ScrollTo scrolls the minimum distance that makes the rectangle, in content
// space, visible.
func (s *ScrollPane) ScrollTo(x, y, w, h float64) {
	sx, sy := s.scrollX, s.scrollY
	if x+w > sx+s.Actor.width {
		sx = x + w - s.Actor.width
	}
	if x < sx {
		sx = x
	}
	if y+h > sy+s.Actor.height {
		sy = y + h - s.Actor.height
	}
	if y < sy {
		sy = y
	}
	s.SetScroll(sx, sy)
}

func (s *ScrollPane) PrefWidth(*Actor) float64 {
	w := 0.0
	if s.content != nil {
		w = s.content.PrefWidth()
	}
	w = clampMax(w, s.PrefMaxWidth)
	if s.Background != nil {
		w = max(w, s.Background.MinWidth())
	}
	return w
}

func (s *ScrollPane) PrefHeight(*Actor) float64 {
	h := 0.0
	if s.content != nil {
		h = s.content.PrefHeight()
	}
	h = clampMax(h, s.PrefMaxHeight)
	if s.Background != nil {
		h = max(h, s.Background.MinHeight())
	}
	return h
}

// MinWidth and MinHeight are zero: a pane can shrink below its content.
func (s *ScrollPane) MinWidth(*Actor) float64  { return 0 }
func (s *ScrollPane) MinHeight(*Actor) float64 { return 0 }

// Layout sizes the content to at least the pane's size and re-clamps the
// scroll position.
func (s *ScrollPane) Layout(a *Actor) {
	if s.content == nil {
		return
	}
	s.content.SetSize(max(s.content.PrefWidth(), a.width), max(s.content.PrefHeight(), a.height))
	s.SetScroll(s.scrollX, s.scrollY)
}

// Draw implements Drawer.
func (s *ScrollPane) Draw(a *Actor, b Batch, alpha float64) {
	if s.Background != nil {
		s.Background.Draw(b, a.globalX, a.globalY, a.width, a.height, a.Tint(alpha))
	}
	a.DrawChildren(b, alpha)
}
