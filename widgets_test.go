package sprig

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Label ---

func TestLabelPrefSize(t *testing.T) {
	tests := []struct {
		text  string
		wantW float64
		wantH float64
	}{
		{"hello", 40, 16},
		{"", 0, 16},
		{"ab\nlonger", 48, 32},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			l := NewLabel(tt.text, fakeFont{})
			assertNear(t, "pref width", l.Actor.PrefWidth(), tt.wantW)
			assertNear(t, "pref height", l.Actor.PrefHeight(), tt.wantH)
			assertNear(t, "packed width", l.Actor.Width(), tt.wantW)
		})
	}
}

func TestLabelSetTextInvalidatesParent(t *testing.T) {
	g := NewVerticalGroup()
	l := NewLabel("hi", fakeFont{})
	g.AddActor(l.Actor)
	g.Actor.Pack()
	if g.Actor.NeedsLayout() {
		t.Fatal("group still needs layout after Pack")
	}
	l.SetText("hi")
	if g.Actor.NeedsLayout() {
		t.Error("same text invalidated the group")
	}
	l.SetText("hello there")
	if !g.Actor.NeedsLayout() {
		t.Error("SetText should invalidate the group")
	}
	g.Actor.Pack()
	assertNear(t, "group width", g.Actor.Width(), 88)
}

func TestLabelDraw(t *testing.T) {
	l := NewLabel("hi", fakeFont{})
	l.Background = ColorDrawable{Color: Color{0, 0, 0, 1}}
	l.Actor.SetPosition(10, 20)
	l.Actor.UpdateTransform(true)

	b := &recordingBatch{}
	l.Actor.Draw(b, 0.5)
	if diff := cmp.Diff([]string{"hi"}, b.texts); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(b.rects) != 1 || b.rects[0] != (Rect{10, 20, 16, 16}) {
		t.Errorf("background rects = %v", b.rects)
	}
	assertNear(t, "text alpha", b.tints[1].A, 0.5)
}

func TestLabelBlankTextDrawsNothing(t *testing.T) {
	l := NewLabel("  ", fakeFont{})
	b := &recordingBatch{}
	l.Actor.Draw(b, 1)
	if len(b.texts) != 0 {
		t.Errorf("drew %v", b.texts)
	}
}

// --- Button ---

func newButtonHUD(t *testing.T) (*HUD, *Button) {
	t.Helper()
	h := NewHUD(800, 600)
	b := NewButton("ok", fakeFont{})
	b.Actor.SetPosition(100, 100)
	h.AddActor(b.Actor)
	return h, b
}

func click(h *HUD, x, y float64) {
	h.TouchDown(x, y, 0, MouseButtonLeft)
	h.TouchUp(x, y, 0, MouseButtonLeft)
}

func TestButtonPrefSize(t *testing.T) {
	b := NewButton("ok", fakeFont{})
	assertNear(t, "pref width", b.Actor.PrefWidth(), 28)
	assertNear(t, "pref height", b.Actor.PrefHeight(), 28)

	b.Actor.SetSize(100, 40)
	b.Actor.Validate()
	lbl := b.Label().Actor
	if got := (Rect{lbl.X(), lbl.Y(), lbl.Width(), lbl.Height()}); got != (Rect{6, 6, 88, 28}) {
		t.Errorf("label bounds = %v", got)
	}

	empty := NewButton("", fakeFont{})
	if empty.Label() != nil || empty.Actor.NumChildren() != 0 {
		t.Error("empty text should create no label")
	}
}

func TestButtonClickFiresChange(t *testing.T) {
	h, b := newButtonHUD(t)
	changes := 0
	h.AddListener(ChangeListener(func(e *Event, a *Actor) {
		if a == b.Actor {
			changes++
		}
	}))

	// The label is not touchable, so clicking the text hits the button.
	if hit := h.Hit(110, 110); hit != b.Actor {
		t.Fatalf("hit %v, want button", hit)
	}
	click(h, 110, 110)
	if changes != 1 {
		t.Errorf("changes = %d, want 1", changes)
	}

	b.Disabled = true
	click(h, 110, 110)
	if changes != 1 {
		t.Error("disabled button fired a change")
	}
}

func TestButtonToggle(t *testing.T) {
	h, b := newButtonHUD(t)
	b.Toggle = true

	click(h, 110, 110)
	if !b.IsChecked() {
		t.Fatal("toggle button not checked after click")
	}

	veto := h.AddListener(ChangeListener(func(e *Event, _ *Actor) { e.Cancel() }))
	click(h, 110, 110)
	if !b.IsChecked() {
		t.Error("cancelled change should revert the toggle")
	}
	veto.Remove()
	b.SetChecked(false)
	if b.IsChecked() {
		t.Error("SetChecked(false) ignored")
	}
}

func TestButtonBackgroundState(t *testing.T) {
	h, b := newButtonHUD(t)
	if b.background() != b.Style.Up {
		t.Error("idle button should draw Up")
	}
	h.TouchDown(110, 110, 0, MouseButtonLeft)
	if !b.IsPressed() || b.background() != b.Style.Down {
		t.Error("pressed button should draw Down")
	}
	h.TouchUp(110, 110, 0, MouseButtonLeft)
	b.Disabled = true
	b.Style.Disabled = ColorDrawable{Color: Color{0, 0, 0, 1}}
	if b.background() != b.Style.Disabled {
		t.Error("disabled button should draw Disabled")
	}
}

// --- LinearGroup ---

func TestVerticalGroupLayout(t *testing.T) {
	g := NewVerticalGroup()
	g.Spacing = 5
	g.Pad = 2
	c1 := boxAt("c1", 0, 0, 50, 10)
	c2 := boxAt("c2", 0, 0, 30, 20)
	hidden := boxAt("hidden", 0, 0, 500, 500)
	hidden.Visible = false
	g.AddActor(c1)
	g.AddActor(hidden)
	g.AddActor(c2)

	assertNear(t, "pref width", g.Actor.PrefWidth(), 54)
	assertNear(t, "pref height", g.Actor.PrefHeight(), 39)

	g.Actor.Pack()
	want := map[*Actor]Rect{c1: {2, 2, 50, 10}, c2: {2, 17, 30, 20}}
	for c, r := range want {
		if got := (Rect{c.X(), c.Y(), c.Width(), c.Height()}); got != r {
			t.Errorf("%s bounds = %v, want %v", c.Name, got, r)
		}
	}
}

func TestVerticalGroupFill(t *testing.T) {
	g := NewVerticalGroup()
	g.Fill = true
	c1 := boxAt("c1", 0, 0, 50, 10)
	c2 := boxAt("c2", 0, 0, 30, 20)
	g.AddActor(c1)
	g.AddActor(c2)
	g.Actor.Pack()
	assertNear(t, "c2 width", c2.Width(), 50)
}

func TestHorizontalGroupCrossAlign(t *testing.T) {
	g := NewHorizontalGroup()
	g.Spacing = 5
	g.Pad = 2
	g.Align = AlignLeft
	c1 := boxAt("c1", 0, 0, 50, 10)
	c2 := boxAt("c2", 0, 0, 30, 20)
	g.AddActor(c1)
	g.AddActor(c2)
	g.Actor.Pack()

	assertNear(t, "width", g.Actor.Width(), 89)
	assertNear(t, "height", g.Actor.Height(), 24)
	assertNear(t, "c1 x", c1.X(), 2)
	assertNear(t, "c1 y", c1.Y(), 7)
	assertNear(t, "c2 x", c2.X(), 57)
	assertNear(t, "c2 y", c2.Y(), 2)
}

func TestGroupRelayoutWhenChildAdded(t *testing.T) {
	g := NewVerticalGroup()
	g.Actor.Pack()
	g.AddActor(boxAt("c", 0, 0, 10, 10))
	if !g.Actor.NeedsLayout() {
		t.Error("adding a child should invalidate the group")
	}
}

// --- Container ---

func TestContainerLayout(t *testing.T) {
	tests := []struct {
		name  string
		fillX bool
		align Align
		want  Rect
	}{
		{"centered", false, AlignCenter, Rect{40, 20, 20, 10}},
		{"top left", false, AlignTopLeft, Rect{5, 5, 20, 10}},
		{"bottom right", false, AlignBottomRight, Rect{75, 35, 20, 10}},
		{"fill x", true, AlignCenter, Rect{5, 20, 90, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child := boxAt("child", 0, 0, 20, 10)
			c := NewContainer(child)
			c.Pad = 5
			c.FillX = tt.fillX
			c.Align = tt.align
			c.Actor.SetSize(100, 50)
			c.Actor.Validate()
			if got := (Rect{child.X(), child.Y(), child.Width(), child.Height()}); got != tt.want {
				t.Errorf("child bounds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainerSetChild(t *testing.T) {
	a := boxAt("a", 0, 0, 10, 10)
	b := boxAt("b", 0, 0, 30, 10)
	c := NewContainer(a)
	c.Pad = 1
	assertNear(t, "pref width", c.Actor.PrefWidth(), 12)
	c.SetChild(b)
	if a.Parent() != nil || b.Parent() != c.Actor || c.Child() != b {
		t.Error("child not replaced")
	}
	assertNear(t, "pref width", c.Actor.PrefWidth(), 32)
	c.SetChild(nil)
	assertNear(t, "empty pref width", c.Actor.PrefWidth(), 2)
}

// --- List ---

func newListHUD(t *testing.T) (*HUD, *List[string]) {
	t.Helper()
	h := NewHUD(800, 600)
	l := NewList[string](fakeFont{})
	l.SetItems([]string{"apple", "banana", "cherry"})
	l.Actor.SetBounds(0, 0, 100, 60)
	h.AddActor(l.Actor)
	return h, l
}

func TestListRequiredSelection(t *testing.T) {
	_, l := newListHUD(t)
	if l.SelectedIndex() != 0 {
		t.Errorf("SelectedIndex = %d, want 0", l.SelectedIndex())
	}
	l.SetItems([]string{"date"})
	if item, _ := l.SelectedItem(); item != "date" {
		t.Errorf("selected %q after items changed, want date", item)
	}
}

func TestListGeometry(t *testing.T) {
	_, l := newListHUD(t)
	assertNear(t, "item height", l.ItemHeight(), 20)
	assertNear(t, "pref width", l.Actor.PrefWidth(), 52)
	assertNear(t, "pref height", l.Actor.PrefHeight(), 60)
	for y, want := range map[float64]int{-1: -1, 0: 0, 19.9: 0, 20: 1, 59: 2, 60: -1} {
		if got := l.ItemIndexAt(y); got != want {
			t.Errorf("ItemIndexAt(%v) = %d, want %d", y, got, want)
		}
	}
}

func TestListClick(t *testing.T) {
	h, l := newListHUD(t)
	click(h, 10, 45)
	if l.SelectedIndex() != 2 {
		t.Errorf("SelectedIndex = %d, want 2", l.SelectedIndex())
	}
	if !l.HasFocus() || h.Focus().Focused() != l.Actor {
		t.Error("list should become the focused widget")
	}
	if h.KeyboardFocus() != l.Actor {
		t.Error("list should take keyboard focus")
	}
}

func TestListShiftClickRange(t *testing.T) {
	h, l := newListHUD(t)
	l.Selection.Multiple = true
	click(h, 10, 5)
	h.SetModifiers(ModShift)
	click(h, 10, 45)
	if diff := cmp.Diff([]string{"apple", "banana", "cherry"}, sortedItems(l.Selection.Items())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestListKeys(t *testing.T) {
	h, l := newListHUD(t)
	h.SetKeyboardFocus(l.Actor)

	steps := []struct {
		key  ebiten.Key
		want int
	}{
		{ebiten.KeyArrowDown, 1},
		{ebiten.KeyArrowDown, 2},
		{ebiten.KeyArrowDown, 0},
		{ebiten.KeyArrowUp, 2},
		{ebiten.KeyHome, 0},
		{ebiten.KeyEnd, 2},
	}
	for _, st := range steps {
		if !h.KeyDown(st.key) {
			t.Errorf("%v not handled", st.key)
		}
		if got := l.SelectedIndex(); got != st.want {
			t.Errorf("after %v: SelectedIndex = %d, want %d", st.key, got, st.want)
		}
	}

	h.KeyDown(ebiten.KeyEscape)
	if h.KeyboardFocus() != nil {
		t.Error("escape should release keyboard focus")
	}
}

func TestListSelectsZeroValueRow(t *testing.T) {
	h := NewHUD(800, 600)
	l := NewList[int](fakeFont{})
	l.SetItems([]int{0, 1, 2})
	l.Actor.SetBounds(0, 0, 100, 60)
	h.AddActor(l.Actor)
	h.SetKeyboardFocus(l.Actor)

	if got := l.SelectedIndex(); got != 0 {
		t.Fatalf("required selection index = %d, want 0", got)
	}
	steps := []struct {
		key  ebiten.Key
		want int
	}{
		{ebiten.KeyArrowDown, 1},
		{ebiten.KeyArrowUp, 0},
		{ebiten.KeyEnd, 2},
		{ebiten.KeyHome, 0},
	}
	for _, st := range steps {
		h.KeyDown(st.key)
		if got := l.SelectedIndex(); got != st.want {
			t.Errorf("after %v: SelectedIndex = %d, want %d", st.key, got, st.want)
		}
	}
	l.SetSelectedIndex(2)
	l.SetSelectedIndex(0)
	if item, ok := l.SelectedItem(); !ok || item != 0 {
		t.Errorf("SelectedItem = %d, %v; want 0, true", item, ok)
	}
}

func TestListSelectAll(t *testing.T) {
	h, l := newListHUD(t)
	h.SetKeyboardFocus(l.Actor)
	h.SetModifiers(ModCtrl)
	if h.KeyDown(ebiten.KeyA) {
		t.Error("ctrl+A handled by single-selection list")
	}
	l.Selection.Multiple = true
	h.KeyDown(ebiten.KeyA)
	if l.Selection.Size() != 3 {
		t.Errorf("selected %d items, want 3", l.Selection.Size())
	}
}

func TestListSetSelectedIndexPanics(t *testing.T) {
	_, l := newListHUD(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	l.SetSelectedIndex(3)
}

func TestListState(t *testing.T) {
	_, l := newListHUD(t)
	l.SetSelectedIndex(2)
	data, err := l.SaveState()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[2]" {
		t.Errorf("state = %s, want [2]", data)
	}

	other := NewList[string](fakeFont{})
	other.SetItems([]string{"apple", "banana", "cherry"})
	if err := other.RestoreState(data); err != nil {
		t.Fatal(err)
	}
	if other.SelectedIndex() != 2 {
		t.Errorf("restored index = %d, want 2", other.SelectedIndex())
	}
	if err := other.RestoreState([]byte("[99]")); err != nil {
		t.Fatal(err)
	}
	if other.SelectedIndex() != 2 {
		t.Error("out of range state changed the selection")
	}
	if err := other.RestoreState([]byte("nope")); err == nil {
		t.Error("expected error for malformed state")
	}
}

func TestListDraw(t *testing.T) {
	_, l := newListHUD(t)
	l.Actor.UpdateTransform(true)
	b := &recordingBatch{}
	l.Actor.Draw(b, 1)
	if diff := cmp.Diff([]string{"apple", "banana", "cherry"}, b.texts); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	// Only the selected row gets a highlight.
	if len(b.rects) != 1 || b.rects[0] != (Rect{0, 0, 100, 20}) {
		t.Errorf("highlight rects = %v", b.rects)
	}
}

// --- ScrollPane ---

func newScrollHUD(t *testing.T) (*HUD, *ScrollPane, *Button) {
	t.Helper()
	h := NewHUD(800, 600)
	content := boxAt("content", 0, 0, 100, 400)
	btn := NewButton("ok", fakeFont{})
	btn.Actor.SetBounds(0, 0, 100, 40)
	content.AddActor(btn.Actor)
	pane := NewScrollPane(content)
	pane.Actor.SetBounds(0, 0, 100, 100)
	h.AddActor(pane.Actor)
	pane.Actor.Validate()
	return h, pane, btn
}

func TestScrollPaneLayout(t *testing.T) {
	_, pane, _ := newScrollHUD(t)
	assertNear(t, "content height", pane.Content().Height(), 400)
	assertNear(t, "max scroll y", pane.MaxScrollY(), 300)
	assertNear(t, "max scroll x", pane.MaxScrollX(), 0)
	assertNear(t, "min width", pane.Actor.MinWidth(), 0)
}

func TestScrollPanePrefMax(t *testing.T) {
	_, pane, _ := newScrollHUD(t)
	assertNear(t, "uncapped", pane.Actor.PrefHeight(), 400)
	pane.PrefMaxHeight = 150
	assertNear(t, "capped", pane.Actor.PrefHeight(), 150)

	g := NewVerticalGroup()
	g.AddActor(pane.Actor)
	g.Actor.Pack()
	assertNear(t, "pane height in group", pane.Actor.Height(), 150)
	assertNear(t, "max scroll", pane.MaxScrollY(), 250)
}

func TestScrollPaneClamp(t *testing.T) {
	_, pane, _ := newScrollHUD(t)
	tests := []struct {
		set, want float64
	}{
		{50, 50},
		{1000, 300},
		{-5, 0},
	}
	for _, tt := range tests {
		pane.SetScrollY(tt.set)
		assertNear(t, "scroll y", pane.ScrollY(), tt.want)
		assertNear(t, "content y", pane.Content().Y(), -tt.want)
	}
	pane.SetScrollX(10)
	assertNear(t, "scroll x", pane.ScrollX(), 0)
}

func TestScrollPaneScrollTo(t *testing.T) {
	_, pane, _ := newScrollHUD(t)
	pane.ScrollTo(0, 350, 10, 20)
	assertNear(t, "scroll down", pane.ScrollY(), 270)
	pane.ScrollTo(0, 10, 10, 20)
	assertNear(t, "scroll up", pane.ScrollY(), 10)
	pane.ScrollTo(0, 50, 10, 20)
	assertNear(t, "already visible", pane.ScrollY(), 10)
}

func TestScrollPaneWheel(t *testing.T) {
	h, pane, _ := newScrollHUD(t)
	h.MouseMoved(50, 50)
	h.Act(0)
	if h.ScrollFocus() != pane.Actor {
		t.Fatalf("scroll focus = %v, want pane", h.ScrollFocus())
	}
	h.Scrolled(2)
	assertNear(t, "scroll y", pane.ScrollY(), 40)

	h.MouseMoved(500, 500)
	h.Act(0)
	if h.ScrollFocus() != nil {
		t.Error("leaving the pane should release scroll focus")
	}
}

func TestScrollPaneDragCancelsChildClick(t *testing.T) {
	h, pane, btn := newScrollHUD(t)
	changes := 0
	btn.Actor.AddListener(ChangeListener(func(*Event, *Actor) { changes++ }))

	h.TouchDown(50, 20, 0, MouseButtonLeft)
	if n := h.NumTouchFocuses(); n != 2 {
		t.Fatalf("NumTouchFocuses = %d, want pane and button", n)
	}
	h.TouchDragged(50, 5, 0)
	if !pane.IsDragging() {
		t.Fatal("pane not dragging")
	}
	if btn.IsPressed() {
		t.Error("button still pressed after the pane took the drag")
	}
	assertNear(t, "scroll y", pane.ScrollY(), 15)
	h.TouchUp(50, 5, 0, MouseButtonLeft)
	if changes != 0 {
		t.Error("drag clicked the button")
	}
	if pane.IsDragging() {
		t.Error("still dragging after release")
	}
}

func TestScrollPaneSmallMoveStillClicks(t *testing.T) {
	h, pane, btn := newScrollHUD(t)
	changes := 0
	btn.Actor.AddListener(ChangeListener(func(*Event, *Actor) { changes++ }))

	h.TouchDown(50, 20, 0, MouseButtonLeft)
	h.TouchDragged(50, 17, 0)
	h.TouchUp(50, 17, 0, MouseButtonLeft)
	if pane.IsDragging() || pane.ScrollY() != 0 {
		t.Error("small move scrolled the pane")
	}
	if changes != 1 {
		t.Errorf("changes = %d, want 1", changes)
	}
}

func TestScrollPaneClipsChildren(t *testing.T) {
	h, pane, _ := newScrollHUD(t)
	if hit := h.Hit(50, 150); hit == pane.Content() {
		t.Error("content hit outside the pane")
	}
	h.Root().UpdateTransform(true)
	b := &recordingBatch{}
	pane.Actor.Draw(b, 1)
	if len(b.clips) != 1 || b.clips[0] != (Rect{0, 0, 100, 100}) {
		t.Errorf("clips = %v", b.clips)
	}
	if b.depth != 0 {
		t.Errorf("clip depth = %d after draw", b.depth)
	}
}
