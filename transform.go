package sprig

import "fmt"

// --- Geometry accessors ---

// X returns the actor's left edge, relative to its parent.
func (a *Actor) X() float64 { return a.x }

// Y returns the actor's top edge, relative to its parent.
func (a *Actor) Y() float64 { return a.y }

// Width returns the actor's width.
func (a *Actor) Width() float64 { return a.width }

// Height returns the actor's height.
func (a *Actor) Height() float64 { return a.height }

// Right returns X plus Width.
func (a *Actor) Right() float64 { return a.x + a.width }

// Bottom returns Y plus Height.
func (a *Actor) Bottom() float64 { return a.y + a.height }

// SetPosition sets the actor's top-left corner relative to its parent.
// The global position is not refreshed until UpdateTransform is called.
func (a *Actor) SetPosition(x, y float64) {
	a.x = x
	a.y = y
}

// SetX sets the actor's left edge.
func (a *Actor) SetX(x float64) { a.x = x }

// SetY sets the actor's top edge.
func (a *Actor) SetY(y float64) { a.y = y }

// MoveBy adds (dx, dy) to the actor's position.
func (a *Actor) MoveBy(dx, dy float64) {
	a.x += dx
	a.y += dy
}

// XAt returns the X coordinate of the given alignment point.
func (a *Actor) XAt(align Align) float64 {
	x := a.x
	if align&AlignRight != 0 {
		x += a.width
	} else if align&AlignLeft == 0 {
		x += a.width / 2
	}
	return x
}

// YAt returns the Y coordinate of the given alignment point.
func (a *Actor) YAt(align Align) float64 {
	y := a.y
	if align&AlignBottom != 0 {
		y += a.height
	} else if align&AlignTop == 0 {
		y += a.height / 2
	}
	return y
}

// SetPositionAligned positions the actor so that its alignment point lies at (x, y).
func (a *Actor) SetPositionAligned(x, y float64, align Align) {
	if align&AlignRight != 0 {
		x -= a.width
	} else if align&AlignLeft == 0 {
		x -= a.width / 2
	}
	if align&AlignBottom != 0 {
		y -= a.height
	} else if align&AlignTop == 0 {
		y -= a.height / 2
	}
	a.SetPosition(x, y)
}

// SetSize sets the actor's width and height. Layout actors are invalidated
// when the size changes.
func (a *Actor) SetSize(w, h float64) {
	if a.width == w && a.height == h {
		return
	}
	a.width = w
	a.height = h
	a.sizeChanged()
}

// SetWidth sets the actor's width.
func (a *Actor) SetWidth(w float64) { a.SetSize(w, a.height) }

// SetHeight sets the actor's height.
func (a *Actor) SetHeight(h float64) { a.SetSize(a.width, h) }

// SetBounds sets position and size in one call.
func (a *Actor) SetBounds(x, y, w, h float64) {
	a.SetPosition(x, y)
	a.SetSize(w, h)
}

func (a *Actor) sizeChanged() {
	if a.widget != nil {
		a.Invalidate()
	}
}

// --- Global transform ---

// UpdateTransform recomputes the cached global position from the parent's
// cached global position. With recursive set, the whole subtree is refreshed.
// Call it after changing positions or ancestry.
func (a *Actor) UpdateTransform(recursive bool) {
	a.globalX, a.globalY = a.x, a.y
	if a.parent != nil {
		a.globalX += a.parent.globalX
		a.globalY += a.parent.globalY
	}
	if recursive {
		for _, c := range a.children {
			c.UpdateTransform(true)
		}
	}
}

// GlobalPosition returns the position cached by the last UpdateTransform.
func (a *Actor) GlobalPosition() Vec2 {
	return Vec2{a.globalX, a.globalY}
}

// --- Coordinate conversion ---
//
// Hit-test transforms are pure translations, so these conversions walk the
// parent chain and are exact inverses of each other.

// ParentToLocal converts a point in the parent's space to this actor's space.
func (a *Actor) ParentToLocal(px, py float64) (lx, ly float64) {
	return px - a.x, py - a.y
}

// LocalToParent converts a point in this actor's space to the parent's space.
func (a *Actor) LocalToParent(lx, ly float64) (px, py float64) {
	return lx + a.x, ly + a.y
}

// LocalToStage converts a local point to stage space.
func (a *Actor) LocalToStage(lx, ly float64) (sx, sy float64) {
	sx, sy = lx, ly
	for p := a; p != nil; p = p.parent {
		sx += p.x
		sy += p.y
	}
	return sx, sy
}

// StageToLocal converts a stage-space point to this actor's local space.
func (a *Actor) StageToLocal(sx, sy float64) (lx, ly float64) {
	lx, ly = sx, sy
	for p := a; p != nil; p = p.parent {
		lx -= p.x
		ly -= p.y
	}
	return lx, ly
}

// LocalToActor converts a point in this actor's space to other's space.
func (a *Actor) LocalToActor(other *Actor, lx, ly float64) (float64, float64) {
	sx, sy := a.LocalToStage(lx, ly)
	return other.StageToLocal(sx, sy)
}

// ScreenToLocal converts screen coordinates to local coordinates through the
// HUD camera. Returns ErrNoHUD if the actor is not attached.
func (a *Actor) ScreenToLocal(sx, sy float64) (lx, ly float64, err error) {
	if a.hud == nil {
		return 0, 0, fmt.Errorf("screen to local %s: %w", a, ErrNoHUD)
	}
	wx, wy := a.hud.camera.ScreenToWorld(sx, sy)
	lx, ly = a.StageToLocal(wx, wy)
	return lx, ly, nil
}

// LocalToScreen converts local coordinates to screen coordinates through the
// HUD camera. Returns ErrNoHUD if the actor is not attached.
func (a *Actor) LocalToScreen(lx, ly float64) (sx, sy float64, err error) {
	if a.hud == nil {
		return 0, 0, fmt.Errorf("local to screen %s: %w", a, ErrNoHUD)
	}
	wx, wy := a.LocalToStage(lx, ly)
	sx, sy = a.hud.camera.WorldToScreen(wx, wy)
	return sx, sy, nil
}
