package sprig

import (
	"errors"
	"testing"
)

func TestKeepWithinStage(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		wantX      float64
		wantY      float64
	}{
		{"inside", 100, 100, 50, 50, 100, 100},
		{"past right", 780, 100, 50, 50, 750, 100},
		{"past left", -20, 100, 50, 50, 0, 100},
		{"past bottom", 100, 590, 50, 20, 100, 580},
		{"past top", 100, -5, 50, 20, 100, 0},
		{"corner", 790, 590, 20, 20, 780, 580},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHUD(800, 600)
			a := boxAt("a", tt.x, tt.y, tt.w, tt.h)
			h.AddActor(a)
			if err := KeepWithinStage(a); err != nil {
				t.Fatal(err)
			}
			assertNear(t, "x", a.X(), tt.wantX)
			assertNear(t, "y", a.Y(), tt.wantY)
		})
	}
}

func TestKeepWithinStageFollowsCamera(t *testing.T) {
	h := NewHUD(800, 600)
	h.Camera().X = 0
	a := boxAt("a", 400, 10, 100, 10)
	h.AddActor(a)
	if err := KeepWithinStage(a); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "right", a.Right(), 400)
	assertNear(t, "y", a.Y(), 10)
}

func TestKeepWithinStageNested(t *testing.T) {
	h := NewHUD(800, 600)
	panel := boxAt("panel", 100, 100, 10, 10)
	a := boxAt("a", 750, 0, 50, 50)
	panel.AddActor(a)
	h.AddActor(panel)
	if err := KeepWithinStage(a); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "x", a.X(), 650)
}

func TestKeepWithinStageNoHUD(t *testing.T) {
	err := KeepWithinStage(NewActor("loose"))
	if !errors.Is(err, ErrNoHUD) {
		t.Errorf("err = %v, want ErrNoHUD", err)
	}
}
