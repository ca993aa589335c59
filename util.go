package sprig

import "fmt"

// KeepWithinStage moves a so that it lies inside the area the HUD camera
// shows. On each axis where a sticks out, the offending edge is placed on the
// visible boundary; the other axis is left alone. Positions are compared in
// a's parent space, which for actors directly under the root is stage space.
//
// Returns an error wrapping ErrNoHUD if a is not attached to a HUD.
func KeepWithinStage(a *Actor) error {
	h := a.HUD()
	if h == nil {
		return fmt.Errorf("keep %s within stage: %w", a, ErrNoHUD)
	}
	vis := h.Camera().VisibleBounds()

	// Visible area in the parent's space.
	ox, oy := 0.0, 0.0
	if p := a.Parent(); p != nil {
		ox, oy = p.LocalToStage(0, 0)
	}
	left, right := vis.X-ox, vis.X+vis.Width-ox
	top, bottom := vis.Y-oy, vis.Y+vis.Height-oy

	if a.XAt(AlignRight) > right {
		a.SetPositionAligned(right, a.YAt(AlignRight), AlignRight)
	} else if a.XAt(AlignLeft) < left {
		a.SetPositionAligned(left, a.YAt(AlignLeft), AlignLeft)
	}
	if a.YAt(AlignBottom) > bottom {
		a.SetPositionAligned(a.XAt(AlignBottom), bottom, AlignBottom)
	} else if a.YAt(AlignTop) < top {
		a.SetPositionAligned(a.XAt(AlignTop), top, AlignTop)
	}
	return nil
}
