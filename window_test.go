package sprig

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"
)

func newWindowHUD(t *testing.T) (*HUD, *Window) {
	t.Helper()
	h := NewHUD(800, 600)
	w := NewWindow("win", fakeFont{})
	w.Actor.SetBounds(100, 100, 200, 150)
	h.AddActor(w.Actor)
	return h, w
}

func TestWindowLayout(t *testing.T) {
	w := NewWindow("win", fakeFont{})
	assertNear(t, "pref width", w.Actor.PrefWidth(), 36)
	assertNear(t, "pref height", w.Actor.PrefHeight(), 34)

	body := NewActor("body")
	w.SetContent(body)
	w.Actor.SetSize(200, 150)
	w.Actor.Validate()
	title := w.Title().Actor
	if got := (Rect{title.X(), title.Y(), title.Width(), title.Height()}); got != (Rect{6, 6, 188, 16}) {
		t.Errorf("title bounds = %v", got)
	}
	if got := (Rect{body.X(), body.Y(), body.Width(), body.Height()}); got != (Rect{6, 28, 188, 116}) {
		t.Errorf("content bounds = %v", got)
	}

	w.SetContent(nil)
	if body.Parent() != nil || w.Content() != nil {
		t.Error("SetContent(nil) should remove the old content")
	}
}

func TestWindowDragTitle(t *testing.T) {
	h, w := newWindowHUD(t)

	if !h.TouchDown(150, 110, 0, MouseButtonLeft) {
		t.Fatal("press on the title bar not handled")
	}
	if !w.IsDragging() {
		t.Fatal("window not dragging")
	}
	steps := []struct {
		x, y         float64
		wantX, wantY float64
	}{
		{170, 130, 120, 120},
		{180, 130, 130, 120},
		{180, 100, 130, 90},
	}
	for _, st := range steps {
		h.TouchDragged(st.x, st.y, 0)
		assertNear(t, "x", w.Actor.X(), st.wantX)
		assertNear(t, "y", w.Actor.Y(), st.wantY)
	}
	h.TouchUp(180, 100, 0, MouseButtonLeft)
	if w.IsDragging() {
		t.Error("drag should end on touch up")
	}
	h.TouchDragged(300, 300, 0)
	assertNear(t, "x after release", w.Actor.X(), 130)
}

func TestWindowDragBodyDoesNotMove(t *testing.T) {
	h, w := newWindowHUD(t)
	if h.TouchDown(150, 200, 0, MouseButtonLeft) {
		t.Error("press below the title bar of a plain window should not be handled")
	}
	h.TouchDragged(250, 250, 0)
	assertNear(t, "x", w.Actor.X(), 100)

	w.Movable = false
	h.TouchDown(150, 110, 0, MouseButtonLeft)
	if w.IsDragging() {
		t.Error("fixed window started dragging")
	}
}

func TestWindowDragKeptWithinStage(t *testing.T) {
	tests := []struct {
		name  string
		keep  bool
		wantX float64
	}{
		{"clamped", true, 600},
		{"free", false, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, w := newWindowHUD(t)
			w.KeepWithinStage = tt.keep
			h.TouchDown(150, 110, 0, MouseButtonLeft)
			h.TouchDragged(850, 110, 0)
			assertNear(t, "x", w.Actor.X(), tt.wantX)
		})
	}
}

func TestWindowPressBringsToFront(t *testing.T) {
	h, w := newWindowHUD(t)
	other := NewWindow("other", fakeFont{})
	other.Actor.SetBounds(400, 100, 100, 100)
	h.AddActor(other.Actor)

	click(h, 150, 200)
	actors := h.Actors()
	if actors[len(actors)-1] != w.Actor {
		t.Errorf("front actor = %v, want the pressed window", actors[len(actors)-1])
	}
}

func TestWindowModal(t *testing.T) {
	h := NewHUD(800, 600)
	behind := boxAt("behind", 0, 0, 100, 100)
	pressed := 0
	behind.AddListener(&InputListener{
		TouchDown: func(*Event, float64, float64, int, MouseButton) bool {
			pressed++
			return true
		},
	})
	h.AddActor(behind)
	w := NewWindow("win", fakeFont{})
	w.Actor.SetBounds(300, 200, 200, 150)
	h.AddActor(w.Actor)

	click(h, 10, 10)
	if pressed != 1 {
		t.Fatalf("pressed = %d before modal", pressed)
	}

	w.SetModal(true)
	if hit := h.Hit(10, 10); hit != w.Actor {
		t.Errorf("hit %v, want the modal window", hit)
	}
	if !h.TouchDown(10, 10, 0, MouseButtonLeft) {
		t.Error("modal window should swallow presses outside it")
	}
	h.TouchUp(10, 10, 0, MouseButtonLeft)
	if pressed != 1 {
		t.Error("actor behind a modal window was pressed")
	}

	h.SetKeyboardFocus(w.Actor)
	if !h.KeyTyped('x') || !h.KeyDown(ebiten.KeyA) {
		t.Error("modal window should swallow keys")
	}
	w.SetModal(false)
	if h.KeyTyped('x') {
		t.Error("plain window handled a typed key")
	}
	if hit := h.Hit(10, 10); hit != behind {
		t.Errorf("hit %v after SetModal(false)", hit)
	}
}

func TestWindowShow(t *testing.T) {
	h := NewHUD(800, 600)
	w := NewWindow("win", fakeFont{})
	w.Show(h)
	if w.Actor.HUD() != h {
		t.Fatal("window not added")
	}
	assertNear(t, "x", w.Actor.X(), 382)
	assertNear(t, "y", w.Actor.Y(), 283)
	if h.KeyboardFocus() != w.Actor {
		t.Error("shown window should take free keyboard focus")
	}

	other := NewWindow("other", fakeFont{})
	other.Show(h)
	if h.KeyboardFocus() != w.Actor {
		t.Error("Show took keyboard focus from another actor")
	}

	w.Hide()
	if w.Actor.HUD() != nil {
		t.Error("Hide should remove the window")
	}
}

func TestWindowDrawPullsInside(t *testing.T) {
	h := NewHUD(800, 600)
	w := NewWindow("win", fakeFont{})
	w.Actor.SetBounds(790, -10, 36, 34)
	h.AddActor(w.Actor)
	w.Actor.UpdateTransform(true)

	b := &recordingBatch{}
	w.Actor.Draw(b, 1)
	assertNear(t, "x", w.Actor.X(), 764)
	assertNear(t, "y", w.Actor.Y(), 0)
	if len(b.rects) < 2 {
		t.Fatalf("rects = %v", b.rects)
	}
	if diff := cmp.Diff([]Rect{{764, 0, 36, 34}, {764, 0, 36, 28}}, b.rects[:2]); diff != "" {
		t.Errorf("backgrounds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"win"}, b.texts); diff != "" {
		t.Errorf("texts (-want +got):\n%s", diff)
	}
}
