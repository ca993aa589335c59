package sprig

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the measurement contract text widgets lay out with. Face is used
// by ImageBatch to draw.
type Font interface {
	MeasureString(s string) (width, height float64)
	LineHeight() float64
	Face() text.Face
}

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("sprig: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	if s == "" {
		return 0, f.lh
	}
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying face.
func (f *TTFFont) Face() text.Face {
	return f.face
}

// DefaultFontSize is the size of the font returned by DefaultFont.
const DefaultFontSize = 14

var defaultFont *TTFFont

// DefaultFont returns Go Regular at DefaultFontSize. Widgets fall back to it
// when constructed without a font.
func DefaultFont() Font {
	if defaultFont == nil {
		f, err := LoadTTFFont(goregular.TTF, DefaultFontSize)
		if err != nil {
			panic(err)
		}
		defaultFont = f
	}
	return defaultFont
}
