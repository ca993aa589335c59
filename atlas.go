package sprig

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Atlas holds skin images packed by TexturePacker and hands out drawables
// for named regions.
type Atlas struct {
	Pages   []*ebiten.Image
	regions map[string]atlasRegion
}

type atlasRegion struct {
	page int
	rect image.Rectangle
}

var errRotatedRegion = errors.New("rotated regions are not supported")

// LoadAtlas parses TexturePacker JSON in either the hash format (a single
// "frames" object) or the array format (a "textures" list with one entry per
// page) and binds it to the page images.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var doc struct {
		Frames   map[string]jsonFrame `json:"frames"`
		Textures []struct {
			Frames map[string]jsonFrame `json:"frames"`
		} `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("parse atlas: %w", err)
	}
	atlas := &Atlas{Pages: pages, regions: make(map[string]atlasRegion)}
	switch {
	case doc.Textures != nil:
		for page, tex := range doc.Textures {
			if err := atlas.addFrames(tex.Frames, page); err != nil {
				return nil, err
			}
		}
	case doc.Frames != nil:
		if err := atlas.addFrames(doc.Frames, 0); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(`parse atlas: neither "frames" nor "textures" present`)
	}
	return atlas, nil
}

type jsonFrame struct {
	Frame struct {
		X, Y, W, H int
	} `json:"frame"`
	Rotated bool `json:"rotated"`
}

func (a *Atlas) addFrames(frames map[string]jsonFrame, page int) error {
	if page >= len(a.Pages) {
		return fmt.Errorf("parse atlas: page %d has no image", page)
	}
	for name, f := range frames {
		if f.Rotated {
			return fmt.Errorf("parse atlas: region %q: %w", name, errRotatedRegion)
		}
		r := f.Frame
		a.regions[name] = atlasRegion{page: page, rect: image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)}
	}
	return nil
}

// Has reports whether the atlas holds a region called name.
func (a *Atlas) Has(name string) bool {
	_, ok := a.regions[name]
	return ok
}

// Image returns the sub-image of the region called name.
func (a *Atlas) Image(name string) (*ebiten.Image, bool) {
	r, ok := a.regions[name]
	if !ok {
		return nil, false
	}
	return a.Pages[r.page].SubImage(r.rect).(*ebiten.Image), true
}

// missingDrawable stands in for regions the atlas lacks.
var missingDrawable = ColorDrawable{Color: Color{1, 0, 1, 1}}

// Drawable returns a drawable stretching the named region. A missing region
// yields a magenta placeholder, with a warning in debug mode.
func (a *Atlas) Drawable(name string) Drawable {
	img, ok := a.Image(name)
	if !ok {
		if globalDebug {
			debugWarnf("atlas region %q not found", name)
		}
		return missingDrawable
	}
	return ImageDrawable{Image: img}
}

// NinePatch returns a drawable that stretches the named region while
// keeping its borders at their original size. left, right, top and bottom
// are the border widths in pixels.
func (a *Atlas) NinePatch(name string, left, right, top, bottom int) Drawable {
	img, ok := a.Image(name)
	if !ok {
		if globalDebug {
			debugWarnf("atlas region %q not found", name)
		}
		return missingDrawable
	}
	return NewNinePatch(img, left, right, top, bottom)
}

// NinePatch draws an image as nine pieces: fixed corners, edges stretched
// along one axis, and a center stretched along both.
type NinePatch struct {
	patches                  [9]*ebiten.Image
	left, right, top, bottom float64
}

// NewNinePatch splits img with the given border widths.
func NewNinePatch(img *ebiten.Image, left, right, top, bottom int) *NinePatch {
	b := img.Bounds()
	xs := [4]int{b.Min.X, b.Min.X + left, b.Max.X - right, b.Max.X}
	ys := [4]int{b.Min.Y, b.Min.Y + top, b.Max.Y - bottom, b.Max.Y}
	np := &NinePatch{left: float64(left), right: float64(right), top: float64(top), bottom: float64(bottom)}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r := image.Rect(xs[col], ys[row], xs[col+1], ys[row+1])
			if r.Empty() {
				continue
			}
			np.patches[row*3+col] = img.SubImage(r).(*ebiten.Image)
		}
	}
	return np
}

func (np *NinePatch) MinWidth() float64  { return np.left + np.right }
func (np *NinePatch) MinHeight() float64 { return np.top + np.bottom }

func (np *NinePatch) Draw(b Batch, x, y, w, h float64, tint Color) {
	xs := [4]float64{x, x + np.left, x + w - np.right, x + w}
	ys := [4]float64{y, y + np.top, y + h - np.bottom, y + h}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			p := np.patches[row*3+col]
			pw, ph := xs[col+1]-xs[col], ys[row+1]-ys[row]
			if p == nil || pw <= 0 || ph <= 0 {
				continue
			}
			b.DrawImage(p, xs[col], ys[row], pw, ph, tint)
		}
	}
}
