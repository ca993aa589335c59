package sprig

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// List shows items as rows of text and lets the user select them with the
// pointer or the keyboard. Selection is an ArraySelection over the items, so
// shift and ctrl extend the selection when Multiple is set. Selection
// requires an item by default.
type List[T comparable] struct {
	BaseWidget
	Actor     *Actor
	Selection *ArraySelection[T]

	Font      Font
	FontColor Color
	// ToString renders an item. Defaults to fmt.Sprint.
	ToString func(item T) string
	// Pad is the space above and below each row's text.
	Pad        float64
	Background Drawable
	Selected   Drawable
	Over       Drawable

	items     []T
	overIndex int
	focused   bool
}

// NewList creates an empty list. A nil font uses DefaultFont.
func NewList[T comparable](font Font) *List[T] {
	if font == nil {
		font = DefaultFont()
	}
	l := &List[T]{
		Font:      font,
		FontColor: ColorWhite,
		ToString:  func(item T) string { return fmt.Sprint(item) },
		Pad:       2,
		Selected:  ColorDrawable{Color: Color{0.2, 0.4, 0.8, 1}},
		Over:      ColorDrawable{Color: Color{1, 1, 1, 0.1}},
		overIndex: -1,
	}
	l.Actor = NewWidget("list", l)
	l.Selection = NewArraySelection[T](l.Actor, nil)
	l.Selection.Required = true
	l.Actor.AddListener(&InputListener{
		TouchDown:  l.touchDown,
		MouseMoved: l.mouseMoved,
		Exit: func(_ *Event, _, _ float64, pointer int, to *Actor) {
			if pointer == -1 && (to == nil || !to.IsDescendantOf(l.Actor)) {
				l.overIndex = -1
			}
		},
		KeyDown: l.keyDown,
	})
	return l
}

// Items returns the list items. The returned slice MUST NOT be mutated.
func (l *List[T]) Items() []T { return l.items }

// SetItems replaces the items. Selected items no longer present are
// deselected, and a required selection falls back to the first item.
func (l *List[T]) SetItems(items []T) {
	l.items = slices.Clone(items)
	l.overIndex = -1
	l.Selection.SetArray(l.items)
	l.Selection.Validate()
	l.Actor.InvalidateHierarchy()
}

// ItemHeight returns the height of one row.
func (l *List[T]) ItemHeight() float64 {
	return l.Font.LineHeight() + 2*l.Pad
}

// ItemIndexAt returns the index of the row at local y, or -1.
func (l *List[T]) ItemIndexAt(y float64) int {
	ih := l.ItemHeight()
	if y < 0 || ih <= 0 {
		return -1
	}
	i := int(y / ih)
	if i >= len(l.items) {
		return -1
	}
	return i
}

// SelectedIndex returns the index of the first selected item, or -1.
func (l *List[T]) SelectedIndex() int {
	item, ok := l.Selection.First()
	if !ok {
		return -1
	}
	return slices.Index(l.items, item)
}

// SetSelectedIndex selects the item at index. -1 clears the selection.
func (l *List[T]) SetSelectedIndex(index int) {
	if index < -1 || index >= len(l.items) {
		panic(fmt.Sprintf("sprig: list index %d out of range [-1,%d)", index, len(l.items)))
	}
	if index == -1 {
		l.Selection.Clear()
		return
	}
	l.Selection.Set(l.items[index])
}

// SelectedItem returns the first selected item.
func (l *List[T]) SelectedItem() (T, bool) {
	return l.Selection.First()
}

func (l *List[T]) touchDown(e *Event, _, y float64, pointer int, button MouseButton) bool {
	if pointer == 0 && button != MouseButtonLeft {
		return false
	}
	if l.Selection.Disabled {
		return true
	}
	if h := e.HUD; h != nil {
		h.Focus().SwitchFocus(h, l.Actor)
		h.SetKeyboardFocus(l.Actor)
	}
	if len(l.items) == 0 {
		return true
	}
	index := l.ItemIndexAt(y)
	if index == -1 {
		return true
	}
	l.Selection.Choose(l.items[index], e.Modifiers)
	return true
}

func (l *List[T]) mouseMoved(_ *Event, _, y float64) bool {
	l.overIndex = l.ItemIndexAt(y)
	return false
}

func (l *List[T]) keyDown(e *Event, key ebiten.Key) bool {
	if len(l.items) == 0 || l.Selection.Disabled {
		return false
	}
	switch key {
	case ebiten.KeyA:
		if e.Modifiers.Has(ModCtrl) && l.Selection.Multiple {
			l.Selection.SetAll(l.items)
			return true
		}
	case ebiten.KeyHome:
		l.SetSelectedIndex(0)
		return true
	case ebiten.KeyEnd:
		l.SetSelectedIndex(len(l.items) - 1)
		return true
	case ebiten.KeyArrowDown:
		index := l.SelectedIndex() + 1
		if index >= len(l.items) {
			index = 0
		}
		l.SetSelectedIndex(index)
		return true
	case ebiten.KeyArrowUp:
		index := l.SelectedIndex() - 1
		if index < 0 {
			index = len(l.items) - 1
		}
		l.SetSelectedIndex(index)
		return true
	case ebiten.KeyEscape:
		if e.HUD != nil && e.HUD.KeyboardFocus() == l.Actor {
			e.HUD.SetKeyboardFocus(nil)
		}
		return true
	}
	return false
}

// FocusGained implements Focusable.
func (l *List[T]) FocusGained(*Actor) { l.focused = true }

// FocusLost implements Focusable.
func (l *List[T]) FocusLost(*Actor) { l.focused = false }

// HasFocus reports whether the list is the FocusManager's focused widget.
func (l *List[T]) HasFocus() bool { return l.focused }

// SaveState implements StateSaver. The state is the selected indices.
func (l *List[T]) SaveState() ([]byte, error) {
	indices := make([]int, 0, l.Selection.Size())
	for _, item := range l.Selection.Items() {
		if i := slices.Index(l.items, item); i >= 0 {
			indices = append(indices, i)
		}
	}
	return json.Marshal(indices)
}

// RestoreState implements StateSaver. Indices outside the current items are
// ignored.
func (l *List[T]) RestoreState(data []byte) error {
	var indices []int
	if err := json.Unmarshal(data, &indices); err != nil {
		return fmt.Errorf("restore list selection: %w", err)
	}
	items := make([]T, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(l.items) {
			items = append(items, l.items[i])
		}
	}
	if len(items) == 0 {
		return nil
	}
	if !l.Selection.Multiple {
		items = items[:1]
	}
	l.Selection.SetAll(items)
	return nil
}

func (l *List[T]) PrefWidth(*Actor) float64 {
	w := 0.0
	for _, item := range l.items {
		iw, _ := l.Font.MeasureString(l.ToString(item))
		w = max(w, iw)
	}
	w += 2 * l.Pad
	if l.Background != nil {
		w = max(w, l.Background.MinWidth())
	}
	return w
}

func (l *List[T]) PrefHeight(*Actor) float64 {
	h := float64(len(l.items)) * l.ItemHeight()
	if l.Background != nil {
		h = max(h, l.Background.MinHeight())
	}
	return h
}

// Draw implements Drawer.
func (l *List[T]) Draw(a *Actor, b Batch, alpha float64) {
	tint := a.Tint(alpha)
	if l.Background != nil {
		l.Background.Draw(b, a.globalX, a.globalY, a.width, a.height, tint)
	}
	ih := l.ItemHeight()
	fontColor := l.FontColor.mul(tint)
	for i, item := range l.items {
		y := a.globalY + float64(i)*ih
		switch {
		case l.Selected != nil && l.Selection.Contains(item):
			l.Selected.Draw(b, a.globalX, y, a.width, ih, tint)
		case l.Over != nil && i == l.overIndex:
			l.Over.Draw(b, a.globalX, y, a.width, ih, tint)
		}
		b.DrawText(l.ToString(item), l.Font, a.globalX+l.Pad, y+l.Pad, fontColor)
	}
	a.DrawChildren(b, alpha)
}
