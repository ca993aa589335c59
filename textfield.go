package sprig

import (
	"slices"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextField is a single-line text input. It takes keyboard focus when
// pressed and edits its text from typed characters and the editing keys.
// Every edit fires an EventChange; a cancelled event undoes the edit.
type TextField struct {
	BaseWidget
	Actor *Actor

	Font      Font
	FontColor Color
	// Placeholder is shown while the text is empty.
	Placeholder      string
	PlaceholderColor Color
	Background       Drawable
	Focused          Drawable
	Cursor           Drawable
	Pad              float64
	// MaxLength limits the text to this many runes when > 0.
	MaxLength int
	// Filter rejects typed characters for which it returns false.
	Filter func(r rune) bool
	// OnCommit is called when Enter is pressed.
	OnCommit func(tf *TextField)
	Disabled bool

	text   []rune
	cursor int
	scroll float64
}

// NewTextField creates a text field holding text. A nil font uses
// DefaultFont.
func NewTextField(text string, font Font) *TextField {
	if font == nil {
		font = DefaultFont()
	}
	tf := &TextField{
		Font:             font,
		FontColor:        ColorWhite,
		PlaceholderColor: Color{1, 1, 1, 0.4},
		Background:       ColorDrawable{Color: Color{0.1, 0.1, 0.12, 1}},
		Focused:          ColorDrawable{Color: Color{0.12, 0.12, 0.16, 1}},
		Cursor:           ColorDrawable{Color: ColorWhite, MinW: 1},
		Pad:              4,
		text:             []rune(text),
	}
	tf.cursor = len(tf.text)
	tf.Actor = NewWidget("textfield", tf)
	tf.Actor.AddListener(&InputListener{
		TouchDown: tf.touchDown,
		KeyDown:   tf.keyDown,
		KeyTyped:  tf.keyTyped,
	})
	return tf
}

// Text returns the current text.
func (tf *TextField) Text() string { return string(tf.text) }

// SetText replaces the text and moves the cursor to its end. It fires an
// EventChange and keeps the old text if the event is cancelled.
func (tf *TextField) SetText(s string) {
	if s == string(tf.text) {
		return
	}
	tf.edit(func() {
		tf.text = []rune(s)
		tf.cursor = len(tf.text)
	})
}

// CursorPosition returns the cursor's rune index.
func (tf *TextField) CursorPosition() int { return tf.cursor }

// SetCursorPosition moves the cursor, clamped to the text.
func (tf *TextField) SetCursorPosition(i int) {
	tf.cursor = min(max(i, 0), len(tf.text))
}

// edit applies fn and fires an EventChange, restoring the text and cursor when
// the event is cancelled. Reports whether the edit stuck.
func (tf *TextField) edit(fn func()) bool {
	text, cursor := slices.Clone(tf.text), tf.cursor
	fn()
	if tf.Actor.Fire(NewChangeEvent()) {
		tf.text, tf.cursor = text, cursor
		return false
	}
	return true
}

func (tf *TextField) touchDown(e *Event, x, _ float64, pointer int, button MouseButton) bool {
	if pointer == 0 && button != MouseButtonLeft {
		return false
	}
	if tf.Disabled {
		return true
	}
	if h := e.HUD; h != nil {
		h.Focus().SwitchFocus(h, tf.Actor)
		h.SetKeyboardFocus(tf.Actor)
	}
	tf.cursor = tf.IndexAt(x)
	return true
}

// IndexAt returns the rune boundary nearest local x.
func (tf *TextField) IndexAt(x float64) int {
	x -= tf.Pad - tf.scroll
	prev := 0.0
	for i := range tf.text {
		w, _ := tf.Font.MeasureString(string(tf.text[:i+1]))
		if x < (prev+w)/2 {
			return i
		}
		prev = w
	}
	return len(tf.text)
}

func (tf *TextField) keyTyped(_ *Event, r rune) bool {
	if tf.Disabled {
		return false
	}
	if unicode.IsControl(r) {
		return false
	}
	if tf.Filter != nil && !tf.Filter(r) {
		return true
	}
	if tf.MaxLength > 0 && len(tf.text) >= tf.MaxLength {
		return true
	}
	tf.edit(func() {
		tf.text = slices.Insert(tf.text, tf.cursor, r)
		tf.cursor++
	})
	return true
}

func (tf *TextField) keyDown(_ *Event, key ebiten.Key) bool {
	if tf.Disabled {
		return false
	}
	switch key {
	case ebiten.KeyBackspace:
		if tf.cursor > 0 {
			tf.edit(func() {
				tf.text = slices.Delete(tf.text, tf.cursor-1, tf.cursor)
				tf.cursor--
			})
		}
	case ebiten.KeyDelete:
		if tf.cursor < len(tf.text) {
			tf.edit(func() {
				tf.text = slices.Delete(tf.text, tf.cursor, tf.cursor+1)
			})
		}
	case ebiten.KeyArrowLeft:
		tf.cursor = max(tf.cursor-1, 0)
	case ebiten.KeyArrowRight:
		tf.cursor = min(tf.cursor+1, len(tf.text))
	case ebiten.KeyHome:
		tf.cursor = 0
	case ebiten.KeyEnd:
		tf.cursor = len(tf.text)
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		if tf.OnCommit != nil {
			tf.OnCommit(tf)
		}
	default:
		return false
	}
	return true
}

func (tf *TextField) PrefWidth(*Actor) float64 {
	w := 150.0
	if tf.Background != nil {
		w = max(w, tf.Background.MinWidth())
	}
	return w
}

func (tf *TextField) PrefHeight(*Actor) float64 {
	h := tf.Font.LineHeight() + 2*tf.Pad
	if tf.Background != nil {
		h = max(h, tf.Background.MinHeight())
	}
	return h
}

// updateScroll keeps the cursor inside the visible width.
func (tf *TextField) updateScroll(visible float64) {
	cx, _ := tf.Font.MeasureString(string(tf.text[:tf.cursor]))
	switch {
	case cx-tf.scroll > visible:
		tf.scroll = cx - visible
	case cx < tf.scroll:
		tf.scroll = cx
	}
	tw, _ := tf.Font.MeasureString(string(tf.text))
	tf.scroll = max(min(tf.scroll, tw-visible), 0)
}

// Draw implements Drawer.
func (tf *TextField) Draw(a *Actor, b Batch, alpha float64) {
	tint := a.Tint(alpha)
	focused := a.HasKeyboardFocus() && !tf.Disabled
	bg := tf.Background
	if focused && tf.Focused != nil {
		bg = tf.Focused
	}
	if bg != nil {
		bg.Draw(b, a.globalX, a.globalY, a.width, a.height, tint)
	}
	visible := max(a.width-2*tf.Pad, 0)
	tf.updateScroll(visible)
	if b.PushClip(a.globalX+tf.Pad, a.globalY, visible, a.height) {
		x, y := a.globalX+tf.Pad-tf.scroll, a.globalY+tf.Pad
		if len(tf.text) == 0 && tf.Placeholder != "" {
			b.DrawText(tf.Placeholder, tf.Font, a.globalX+tf.Pad, y, tf.PlaceholderColor.mul(tint))
		} else {
			b.DrawText(string(tf.text), tf.Font, x, y, tf.FontColor.mul(tint))
		}
		if focused && tf.Cursor != nil {
			cx, _ := tf.Font.MeasureString(string(tf.text[:tf.cursor]))
			tf.Cursor.Draw(b, x+cx, y, max(tf.Cursor.MinWidth(), 1), tf.Font.LineHeight(), tint)
		}
		b.PopClip()
	}
	a.DrawChildren(b, alpha)
}
