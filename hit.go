package sprig

// HitShape defines a custom hit area in the actor's local coordinates.
// Without one, an actor is hit anywhere inside [0,width) x [0,height).
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates, in either
// winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside the polygon using a cross-product
// sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a, b := p.Points[i], p.Points[(i+1)%n]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// Hit returns the deepest, topmost actor at (x, y) in a's local coordinates,
// or nil. Children are tested front-to-back before the actor itself.
// Invisible actors and actors with TouchableDisabled are never hit, nor are
// their children. TouchableChildrenOnly actors pass hits to their children but
// are never hit themselves.
func (a *Actor) Hit(x, y float64) *Actor {
	if !a.Visible || a.Touchable == TouchableDisabled {
		return nil
	}
	if a.ClipChildren && (x < 0 || x >= a.width || y < 0 || y >= a.height) {
		return nil
	}
	for i := len(a.children) - 1; i >= 0; i-- {
		c := a.children[i]
		if hit := c.Hit(x-c.x, y-c.y); hit != nil {
			return hit
		}
	}
	if a.Touchable != TouchableEnabled {
		return nil
	}
	if a.HitShape != nil {
		if a.HitShape.Contains(x, y) {
			return a
		}
		return nil
	}
	if x >= 0 && x < a.width && y >= 0 && y < a.height {
		return a
	}
	return nil
}
