package sprig

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewFPSLabel returns a label showing the current FPS and TPS, refreshed
// about every half second. A nil font uses DefaultFont.
func NewFPSLabel(font Font) *Label {
	l := NewLabel("FPS: 0.0\nTPS: 0.0", font)
	l.Actor.Name = "fps"
	l.Actor.Touchable = TouchableDisabled
	l.Background = ColorDrawable{Color: Color{0, 0, 0, 0.5}}
	l.Actor.Pack()

	var elapsed float64
	l.Actor.OnAct = func(_ *Actor, dt float64) {
		elapsed += dt
		if elapsed < 0.5 {
			return
		}
		elapsed = 0
		l.SetText(fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return l
}
