package sprig

// LinearGroup lays its children out in a single row or column at their
// preferred sizes. Invisible children take no space.
type LinearGroup struct {
	BaseWidget
	Actor *Actor

	Vertical bool
	Spacing  float64
	Pad      float64
	// Fill stretches children across the group on the cross axis.
	Fill bool
	// Align positions children on the cross axis when Fill is false, and the
	// run of children on the main axis when the group is larger than needed.
	Align Align
}

// NewVerticalGroup creates a group stacking children top to bottom.
func NewVerticalGroup() *LinearGroup {
	g := &LinearGroup{Vertical: true, Align: AlignTopLeft}
	g.Actor = NewWidget("vgroup", g)
	return g
}

// NewHorizontalGroup creates a group placing children left to right.
func NewHorizontalGroup() *LinearGroup {
	g := &LinearGroup{Align: AlignTopLeft}
	g.Actor = NewWidget("hgroup", g)
	return g
}

// AddActor appends a child and invalidates the group.
func (g *LinearGroup) AddActor(child *Actor) {
	g.Actor.AddActor(child)
}

func (g *LinearGroup) PrefWidth(a *Actor) float64 {
	main, cross := g.measure(a, (*Actor).PrefWidth, (*Actor).PrefHeight)
	if g.Vertical {
		return cross + 2*g.Pad
	}
	return main + 2*g.Pad
}

func (g *LinearGroup) PrefHeight(a *Actor) float64 {
	main, cross := g.measure(a, (*Actor).PrefWidth, (*Actor).PrefHeight)
	if g.Vertical {
		return main + 2*g.Pad
	}
	return cross + 2*g.Pad
}

// measure returns the summed main-axis size including spacing and the
// largest cross-axis size of the visible children.
func (g *LinearGroup) measure(a *Actor, width, height func(*Actor) float64) (main, cross float64) {
	n := 0
	for _, c := range a.children {
		if !c.Visible {
			continue
		}
		w, h := width(c), height(c)
		if g.Vertical {
			main += h
			cross = max(cross, w)
		} else {
			main += w
			cross = max(cross, h)
		}
		n++
	}
	if n > 1 {
		main += g.Spacing * float64(n-1)
	}
	return main, cross
}

func (g *LinearGroup) Layout(a *Actor) {
	innerW := a.width - 2*g.Pad
	innerH := a.height - 2*g.Pad
	main, _ := g.measure(a, (*Actor).PrefWidth, (*Actor).PrefHeight)

	var pos float64
	if g.Vertical {
		pos = g.Pad + alignOffset(g.Align, AlignTop, AlignBottom, innerH-main)
	} else {
		pos = g.Pad + alignOffset(g.Align, AlignLeft, AlignRight, innerW-main)
	}
	for _, c := range a.children {
		if !c.Visible {
			continue
		}
		w, h := c.PrefWidth(), c.PrefHeight()
		if g.Vertical {
			if g.Fill {
				w = innerW
			}
			w = clampMax(w, c.MaxWidth())
			x := g.Pad + alignOffset(g.Align, AlignLeft, AlignRight, innerW-w)
			c.SetBounds(x, pos, w, h)
			pos += h + g.Spacing
		} else {
			if g.Fill {
				h = innerH
			}
			h = clampMax(h, c.MaxHeight())
			y := g.Pad + alignOffset(g.Align, AlignTop, AlignBottom, innerH-h)
			c.SetBounds(pos, y, w, h)
			pos += w + g.Spacing
		}
	}
}

// alignOffset returns where a run of size free-space-short starts given the
// alignment flags for the low and high edges of an axis.
func alignOffset(align, low, high Align, free float64) float64 {
	switch {
	case align&low != 0:
		return 0
	case align&high != 0:
		return free
	default:
		return free / 2
	}
}

// clampMax limits v to limit, where a limit of 0 means unbounded.
func clampMax(v, limit float64) float64 {
	if limit > 0 && v > limit {
		return limit
	}
	return v
}

// --- Container ---

// Container holds a single child, sized and aligned inside its padded
// bounds, over an optional background.
type Container struct {
	BaseWidget
	Actor *Actor

	Background Drawable
	Pad        float64
	// FillX and FillY stretch the child to the padded bounds.
	FillX, FillY bool
	Align        Align

	child *Actor
}

// NewContainer creates a container around child, which may be nil.
func NewContainer(child *Actor) *Container {
	c := &Container{}
	c.Actor = NewWidget("container", c)
	c.SetChild(child)
	return c
}

// Child returns the contained actor, or nil.
func (c *Container) Child() *Actor { return c.child }

// SetChild replaces the contained actor. The previous child is removed.
func (c *Container) SetChild(child *Actor) {
	if child == c.child {
		return
	}
	if c.child != nil {
		c.Actor.RemoveActor(c.child)
	}
	c.child = child
	if child != nil {
		c.Actor.AddActor(child)
	}
	c.Actor.InvalidateHierarchy()
}

func (c *Container) PrefWidth(*Actor) float64 {
	w := 2 * c.Pad
	if c.child != nil {
		w += c.child.PrefWidth()
	}
	if c.Background != nil {
		w = max(w, c.Background.MinWidth())
	}
	return w
}

func (c *Container) PrefHeight(*Actor) float64 {
	h := 2 * c.Pad
	if c.child != nil {
		h += c.child.PrefHeight()
	}
	if c.Background != nil {
		h = max(h, c.Background.MinHeight())
	}
	return h
}

func (c *Container) Layout(a *Actor) {
	if c.child == nil {
		return
	}
	innerW := max(a.width-2*c.Pad, 0)
	innerH := max(a.height-2*c.Pad, 0)
	w, h := c.child.PrefWidth(), c.child.PrefHeight()
	if c.FillX {
		w = innerW
	}
	if c.FillY {
		h = innerH
	}
	w = max(min(w, innerW), c.child.MinWidth())
	h = max(min(h, innerH), c.child.MinHeight())
	w = clampMax(w, c.child.MaxWidth())
	h = clampMax(h, c.child.MaxHeight())
	x := c.Pad + alignOffset(c.Align, AlignLeft, AlignRight, innerW-w)
	y := c.Pad + alignOffset(c.Align, AlignTop, AlignBottom, innerH-h)
	c.child.SetBounds(x, y, w, h)
}

// Draw implements Drawer.
func (c *Container) Draw(a *Actor, b Batch, alpha float64) {
	if c.Background != nil {
		c.Background.Draw(b, a.globalX, a.globalY, a.width, a.height, a.Tint(alpha))
	}
	a.DrawChildren(b, alpha)
}
