package sprig

import "strings"

// Label displays text. Its preferred size is the measured size of the text,
// and it never lays out children.
type Label struct {
	BaseWidget
	Actor *Actor

	Font      Font
	FontColor Color
	// Align places the text inside the label's bounds.
	Align Align
	// Background is drawn over the label's bounds when set.
	Background Drawable

	text string
}

// NewLabel creates a label showing text. A nil font uses DefaultFont.
func NewLabel(text string, font Font) *Label {
	if font == nil {
		font = DefaultFont()
	}
	l := &Label{Font: font, FontColor: ColorWhite, Align: AlignLeft, text: text}
	l.Actor = NewWidget("label", l)
	l.Actor.Pack()
	return l
}

// Text returns the displayed text.
func (l *Label) Text() string { return l.text }

// SetText changes the displayed text. Containers above the label are
// invalidated since the preferred size may have changed.
func (l *Label) SetText(s string) {
	if s == l.text {
		return
	}
	l.text = s
	l.Actor.InvalidateHierarchy()
}

func (l *Label) PrefWidth(*Actor) float64 {
	w, _ := l.Font.MeasureString(l.text)
	if l.Background != nil {
		w = max(w, l.Background.MinWidth())
	}
	return w
}

func (l *Label) PrefHeight(*Actor) float64 {
	_, h := l.Font.MeasureString(l.text)
	if l.text == "" {
		h = l.Font.LineHeight()
	}
	if l.Background != nil {
		h = max(h, l.Background.MinHeight())
	}
	return h
}

// textOrigin returns where the text block starts in local space.
func (l *Label) textOrigin(a *Actor) (x, y float64) {
	tw, th := l.Font.MeasureString(l.text)
	switch {
	case l.Align&AlignLeft != 0:
	case l.Align&AlignRight != 0:
		x = a.width - tw
	default:
		x = (a.width - tw) / 2
	}
	switch {
	case l.Align&AlignTop != 0:
	case l.Align&AlignBottom != 0:
		y = a.height - th
	default:
		y = (a.height - th) / 2
	}
	return x, y
}

// Draw implements Drawer.
func (l *Label) Draw(a *Actor, b Batch, alpha float64) {
	tint := a.Tint(alpha)
	if l.Background != nil {
		l.Background.Draw(b, a.globalX, a.globalY, a.width, a.height, tint)
	}
	if strings.TrimSpace(l.text) != "" {
		x, y := l.textOrigin(a)
		b.DrawText(l.text, l.Font, a.globalX+x, a.globalY+y, l.FontColor.mul(tint))
	}
	a.DrawChildren(b, alpha)
}
