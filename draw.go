package sprig

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Batch is the draw contract widgets render through. Coordinates are in stage
// space; the batch maps them to its target.
type Batch interface {
	DrawRect(x, y, w, h float64, c Color)
	DrawImage(img *ebiten.Image, x, y, w, h float64, c Color)
	DrawText(s string, f Font, x, y float64, c Color)

	// PushClip restricts drawing to the intersection of the current clip and
	// the rectangle. Returns false, without pushing, if the result is empty.
	PushClip(x, y, w, h float64) bool
	PopClip()
}

// Drawer is implemented by widgets that draw something of their own. Draw is
// responsible for drawing the children too, usually by calling
// a.DrawChildren(b, alpha) after its own content. alpha already includes the
// actor's Alpha.
type Drawer interface {
	Draw(a *Actor, b Batch, alpha float64)
}

// Drawable is a visual resource a widget stretches over a rectangle, such as
// a background or a selection highlight.
type Drawable interface {
	Draw(b Batch, x, y, w, h float64, tint Color)
	MinWidth() float64
	MinHeight() float64
}

// ColorDrawable fills its rectangle with a solid color.
type ColorDrawable struct {
	Color Color
	// MinW and MinH are reported as the minimum size.
	MinW, MinH float64
}

func (d ColorDrawable) Draw(b Batch, x, y, w, h float64, tint Color) {
	b.DrawRect(x, y, w, h, d.Color.mul(tint))
}

func (d ColorDrawable) MinWidth() float64  { return d.MinW }
func (d ColorDrawable) MinHeight() float64 { return d.MinH }

// ImageDrawable stretches an image over its rectangle.
type ImageDrawable struct {
	Image *ebiten.Image
}

func (d ImageDrawable) Draw(b Batch, x, y, w, h float64, tint Color) {
	b.DrawImage(d.Image, x, y, w, h, tint)
}

func (d ImageDrawable) MinWidth() float64  { return float64(d.Image.Bounds().Dx()) }
func (d ImageDrawable) MinHeight() float64 { return float64(d.Image.Bounds().Dy()) }

func (c Color) mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Tint returns the actor's color with its alpha scaled by alpha.
func (a *Actor) Tint(alpha float64) Color {
	c := a.Color
	c.A *= alpha
	return c
}

// --- Actor drawing ---

// Draw validates the actor's layout and draws it and its children. Invisible
// actors draw nothing. Alpha composes multiplicatively down the tree.
func (a *Actor) Draw(b Batch, parentAlpha float64) {
	if !a.Visible {
		return
	}
	a.Validate()
	alpha := parentAlpha * a.Alpha
	if d, ok := a.widget.(Drawer); ok {
		d.Draw(a, b, alpha)
		return
	}
	a.DrawChildren(b, alpha)
}

// DrawChildren draws the children back-to-front, clipped to the actor's
// bounds when ClipChildren is set.
func (a *Actor) DrawChildren(b Batch, alpha float64) {
	if len(a.children) == 0 {
		return
	}
	if a.ClipChildren {
		if !b.PushClip(a.globalX, a.globalY, a.width, a.height) {
			return
		}
		defer b.PopClip()
	}
	for _, c := range a.children {
		c.Draw(b, alpha)
	}
}

// --- HUD drawing ---

// Draw lays out the tree top-down, refreshes global positions and draws the
// root onto screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if h.debug {
		t0 = time.Now()
	}

	validateTree(h.root)

	if h.debug {
		stats.validateTime = time.Since(t0)
		t0 = time.Now()
	}

	h.root.UpdateTransform(true)

	if h.debug {
		stats.transformTime = time.Since(t0)
		t0 = time.Now()
	}

	h.root.Draw(NewImageBatch(screen, h.camera), 1)
	h.flushScreenshots(screen)

	if h.debug {
		stats.drawTime = time.Since(t0)
		stats.actorCount = countActors(h.root)
		h.debugLog(stats)
	}
}

// --- ImageBatch ---

// ImageBatch implements Batch on an Ebitengine image, mapping stage space to
// the screen through a camera.
type ImageBatch struct {
	camera *Camera
	// targets is the clip stack; the last entry is drawn into.
	targets []*ebiten.Image
}

// NewImageBatch returns a batch drawing onto dst. A nil camera draws stage
// coordinates unchanged.
func NewImageBatch(dst *ebiten.Image, cam *Camera) *ImageBatch {
	return &ImageBatch{camera: cam, targets: []*ebiten.Image{dst}}
}

func (b *ImageBatch) target() *ebiten.Image {
	return b.targets[len(b.targets)-1]
}

func (b *ImageBatch) toScreen(x, y float64) (float64, float64) {
	if b.camera == nil {
		return x, y
	}
	return b.camera.WorldToScreen(x, y)
}

func (b *ImageBatch) zoom() float64 {
	if b.camera == nil {
		return 1
	}
	return b.camera.Zoom
}

// whitePixel is a 1x1 white sub-image scaled to draw filled rectangles.
var whitePixel *ebiten.Image

func solidPixel() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

func colorScale(op *ebiten.ColorScale, c Color) {
	op.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
}

func (b *ImageBatch) DrawRect(x, y, w, h float64, c Color) {
	if w <= 0 || h <= 0 || c.A <= 0 {
		return
	}
	sx, sy := b.toScreen(x, y)
	z := b.zoom()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w*z, h*z)
	op.GeoM.Translate(sx, sy)
	colorScale(&op.ColorScale, c)
	b.target().DrawImage(solidPixel(), op)
}

func (b *ImageBatch) DrawImage(img *ebiten.Image, x, y, w, h float64, c Color) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 || c.A <= 0 {
		return
	}
	sx, sy := b.toScreen(x, y)
	z := b.zoom()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w*z/float64(bounds.Dx()), h*z/float64(bounds.Dy()))
	op.GeoM.Translate(sx, sy)
	colorScale(&op.ColorScale, c)
	b.target().DrawImage(img, op)
}

func (b *ImageBatch) DrawText(s string, f Font, x, y float64, c Color) {
	if s == "" || c.A <= 0 {
		return
	}
	sx, sy := b.toScreen(x, y)
	z := b.zoom()
	op := &text.DrawOptions{}
	op.GeoM.Scale(z, z)
	op.GeoM.Translate(sx, sy)
	colorScale(&op.ColorScale, c)
	op.LineSpacing = f.LineHeight()
	text.Draw(b.target(), s, f.Face(), op)
}

func (b *ImageBatch) PushClip(x, y, w, h float64) bool {
	x0, y0 := b.toScreen(x, y)
	x1, y1 := b.toScreen(x+w, y+h)
	r := image.Rect(int(x0), int(y0), int(x1+0.5), int(y1+0.5)).Intersect(b.target().Bounds())
	if r.Empty() {
		return false
	}
	b.targets = append(b.targets, b.target().SubImage(r).(*ebiten.Image))
	return true
}

func (b *ImageBatch) PopClip() {
	if len(b.targets) > 1 {
		b.targets = b.targets[:len(b.targets)-1]
	}
}
