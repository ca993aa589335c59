package sprig

import (
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// TreeNode is a row of a Tree. A node's children are shown while it is
// expanded.
type TreeNode struct {
	Text  string
	Value any
	// Selectable nodes can be chosen by the user.
	Selectable bool

	parent   *TreeNode
	children []*TreeNode
	expanded bool
	tree     *Tree
	depth    int
}

// NewTreeNode returns a selectable, collapsed node.
func NewTreeNode(text string) *TreeNode {
	return &TreeNode{Text: text, Selectable: true}
}

// Parent returns the parent node, or nil for a root node.
func (n *TreeNode) Parent() *TreeNode { return n.parent }

// Children returns the child nodes. The returned slice MUST NOT be mutated.
func (n *TreeNode) Children() []*TreeNode { return n.children }

// Tree returns the tree the node belongs to, or nil.
func (n *TreeNode) Tree() *Tree { return n.tree }

// IsExpanded reports whether the children are shown.
func (n *TreeNode) IsExpanded() bool { return n.expanded }

// Add appends child, removing it from its previous parent or tree first.
func (n *TreeNode) Add(child *TreeNode) {
	n.Insert(len(n.children), child)
}

// Insert places child at index among the children. Panics if child is n or
// one of its ancestors.
func (n *TreeNode) Insert(index int, child *TreeNode) {
	for p := n; p != nil; p = p.parent {
		if p == child {
			panic("sprig: tree node cannot be its own descendant")
		}
	}
	child.detach()
	index = min(max(index, 0), len(n.children))
	child.parent = n
	n.children = slices.Insert(n.children, index, child)
	child.setTree(n.tree)
	n.refresh()
}

// Remove detaches the node from its parent or tree.
func (n *TreeNode) Remove() {
	t := n.tree
	n.detach()
	if t != nil {
		t.refresh()
	}
}

// RemoveAll removes every child node.
func (n *TreeNode) RemoveAll() {
	for _, c := range n.children {
		c.parent = nil
		c.setTree(nil)
	}
	n.children = nil
	n.refresh()
}

func (n *TreeNode) detach() {
	switch {
	case n.parent != nil:
		p := n.parent
		if i := slices.Index(p.children, n); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
		n.parent = nil
	case n.tree != nil:
		t := n.tree
		if i := slices.Index(t.roots, n); i >= 0 {
			t.roots = slices.Delete(t.roots, i, i+1)
		}
	}
	n.setTree(nil)
}

func (n *TreeNode) setTree(t *Tree) {
	n.tree = t
	for _, c := range n.children {
		c.setTree(t)
	}
}

// SetExpanded shows or hides the children.
func (n *TreeNode) SetExpanded(expanded bool) {
	if n.expanded == expanded {
		return
	}
	n.expanded = expanded
	n.refresh()
}

// Expand shows the children.
func (n *TreeNode) Expand() { n.SetExpanded(true) }

// Collapse hides the children.
func (n *TreeNode) Collapse() { n.SetExpanded(false) }

// ExpandAll expands this node and every node below it.
func (n *TreeNode) ExpandAll() {
	n.walk(func(c *TreeNode) { c.expanded = true })
	n.refresh()
}

// CollapseAll collapses this node and every node below it.
func (n *TreeNode) CollapseAll() {
	n.walk(func(c *TreeNode) { c.expanded = false })
	n.refresh()
}

// ExpandTo expands every ancestor so the node is shown.
func (n *TreeNode) ExpandTo() {
	for p := n.parent; p != nil; p = p.parent {
		p.expanded = true
	}
	n.refresh()
}

func (n *TreeNode) walk(fn func(*TreeNode)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

func (n *TreeNode) refresh() {
	if n.tree != nil {
		n.tree.refresh()
	}
}

// --- Tree ---

// Tree shows a hierarchy of nodes as indented rows. Nodes with children draw
// an expand marker; clicking left of the text toggles them. Selection is an
// ArraySelection over the shown rows, so collapsing a node deselects its
// hidden descendants and shift ranges follow the visible order.
type Tree struct {
	BaseWidget
	Actor     *Actor
	Selection *ArraySelection[*TreeNode]

	Font      Font
	FontColor Color
	// Indent is the horizontal offset of each level.
	Indent float64
	// ExpandWidth is the space reserved for the expand marker.
	ExpandWidth float64
	Pad         float64
	Background  Drawable
	Selected    Drawable
	Over        Drawable
	// Plus and Minus are drawn for collapsed and expanded nodes with
	// children. Nil draws "+" and "-" in the font.
	Plus, Minus Drawable

	roots     []*TreeNode
	rows      []*TreeNode
	overIndex int
}

// NewTree creates an empty tree with multiple selection. A nil font uses
// DefaultFont.
func NewTree(font Font) *Tree {
	if font == nil {
		font = DefaultFont()
	}
	t := &Tree{
		Font:        font,
		FontColor:   ColorWhite,
		Indent:      12,
		ExpandWidth: 12,
		Pad:         2,
		Selected:    ColorDrawable{Color: Color{0.2, 0.4, 0.8, 1}},
		Over:        ColorDrawable{Color: Color{1, 1, 1, 0.1}},
		overIndex:   -1,
	}
	t.Actor = NewWidget("tree", t)
	t.Selection = NewArraySelection[*TreeNode](t.Actor, nil)
	t.Selection.Multiple = true
	t.Actor.AddListener(&InputListener{
		TouchDown: t.touchDown,
		MouseMoved: func(_ *Event, _, y float64) bool {
			t.overIndex = t.RowAt(y)
			return false
		},
		Exit: func(_ *Event, _, _ float64, pointer int, to *Actor) {
			if pointer == -1 && (to == nil || !to.IsDescendantOf(t.Actor)) {
				t.overIndex = -1
			}
		},
		KeyDown: t.keyDown,
	})
	return t
}

// Nodes returns the root nodes. The returned slice MUST NOT be mutated.
func (t *Tree) Nodes() []*TreeNode { return t.roots }

// Rows returns the shown nodes in display order. The returned slice MUST NOT
// be mutated.
func (t *Tree) Rows() []*TreeNode { return t.rows }

// Add appends a root node.
func (t *Tree) Add(n *TreeNode) {
	t.Insert(len(t.roots), n)
}

// Insert places a root node at index.
func (t *Tree) Insert(index int, n *TreeNode) {
	n.detach()
	index = min(max(index, 0), len(t.roots))
	t.roots = slices.Insert(t.roots, index, n)
	n.setTree(t)
	t.refresh()
}

// Remove removes a root node or any node below one.
func (t *Tree) Remove(n *TreeNode) {
	if n.tree == t {
		n.Remove()
	}
}

// ClearNodes removes every node.
func (t *Tree) ClearNodes() {
	for _, n := range t.roots {
		n.setTree(nil)
	}
	t.roots = nil
	t.refresh()
}

// FindNode returns the first node, depth first, for which match is true.
func (t *Tree) FindNode(match func(*TreeNode) bool) *TreeNode {
	var find func(nodes []*TreeNode) *TreeNode
	find = func(nodes []*TreeNode) *TreeNode {
		for _, n := range nodes {
			if match(n) {
				return n
			}
			if found := find(n.children); found != nil {
				return found
			}
		}
		return nil
	}
	return find(t.roots)
}

// SelectedNode returns the first selected node.
func (t *Tree) SelectedNode() (*TreeNode, bool) {
	return t.Selection.First()
}

// refresh rebuilds the shown rows after the hierarchy or an expanded state
// changed.
func (t *Tree) refresh() {
	rows := make([]*TreeNode, 0, len(t.rows))
	var add func(nodes []*TreeNode, depth int)
	add = func(nodes []*TreeNode, depth int) {
		for _, n := range nodes {
			n.depth = depth
			rows = append(rows, n)
			if n.expanded {
				add(n.children, depth+1)
			}
		}
	}
	add(t.roots, 0)
	t.rows = rows
	t.overIndex = -1
	t.Selection.SetArray(rows)
	t.Selection.Validate()
	t.Actor.InvalidateHierarchy()
}

// RowHeight returns the height of one row.
func (t *Tree) RowHeight() float64 {
	return t.Font.LineHeight() + 2*t.Pad
}

// RowAt returns the index of the row at local y, or -1.
func (t *Tree) RowAt(y float64) int {
	rh := t.RowHeight()
	if y < 0 || rh <= 0 {
		return -1
	}
	i := int(y / rh)
	if i >= len(t.rows) {
		return -1
	}
	return i
}

// textX returns where a node's text starts in local space.
func (t *Tree) textX(n *TreeNode) float64 {
	return t.Pad + float64(n.depth)*t.Indent + t.ExpandWidth
}

func (t *Tree) touchDown(e *Event, x, y float64, pointer int, button MouseButton) bool {
	if pointer == 0 && button != MouseButtonLeft {
		return false
	}
	if h := e.HUD; h != nil {
		h.Focus().SwitchFocus(h, t.Actor)
		h.SetKeyboardFocus(t.Actor)
	}
	i := t.RowAt(y)
	if i == -1 {
		return true
	}
	n := t.rows[i]
	ctrl := e.Modifiers.Has(ModCtrl)
	if len(n.children) > 0 && (!t.Selection.Multiple || !ctrl) && x < t.textX(n) {
		n.SetExpanded(!n.expanded)
		return true
	}
	if n.Selectable && !t.Selection.Disabled {
		t.Selection.Choose(n, e.Modifiers)
	}
	return true
}

func (t *Tree) keyDown(e *Event, key ebiten.Key) bool {
	if len(t.rows) == 0 || t.Selection.Disabled {
		return false
	}
	cur := -1
	if n, ok := t.Selection.LastSelected(); ok {
		cur = slices.Index(t.rows, n)
	}
	switch key {
	case ebiten.KeyArrowDown:
		t.selectRow(min(cur+1, len(t.rows)-1))
	case ebiten.KeyArrowUp:
		t.selectRow(max(cur-1, 0))
	case ebiten.KeyHome:
		t.selectRow(0)
	case ebiten.KeyEnd:
		t.selectRow(len(t.rows) - 1)
	case ebiten.KeyArrowRight:
		if cur == -1 {
			return false
		}
		n := t.rows[cur]
		if len(n.children) > 0 && !n.expanded {
			n.Expand()
		} else if n.expanded && len(n.children) > 0 {
			t.selectRow(cur + 1)
		}
	case ebiten.KeyArrowLeft:
		if cur == -1 {
			return false
		}
		n := t.rows[cur]
		if n.expanded && len(n.children) > 0 {
			n.Collapse()
		} else if n.parent != nil {
			t.selectRow(slices.Index(t.rows, n.parent))
		}
	default:
		return false
	}
	return true
}

// selectRow makes the row at i the only selected node.
func (t *Tree) selectRow(i int) {
	if i < 0 || i >= len(t.rows) {
		return
	}
	t.Selection.Choose(t.rows[i], 0)
}

func (t *Tree) PrefWidth(*Actor) float64 {
	w := 0.0
	for _, n := range t.rows {
		tw, _ := t.Font.MeasureString(n.Text)
		w = max(w, t.textX(n)+tw+t.Pad)
	}
	if t.Background != nil {
		w = max(w, t.Background.MinWidth())
	}
	return w
}

func (t *Tree) PrefHeight(*Actor) float64 {
	h := float64(len(t.rows)) * t.RowHeight()
	if t.Background != nil {
		h = max(h, t.Background.MinHeight())
	}
	return h
}

// Draw implements Drawer.
func (t *Tree) Draw(a *Actor, b Batch, alpha float64) {
	tint := a.Tint(alpha)
	if t.Background != nil {
		t.Background.Draw(b, a.globalX, a.globalY, a.width, a.height, tint)
	}
	rh := t.RowHeight()
	fontColor := t.FontColor.mul(tint)
	for i, n := range t.rows {
		y := a.globalY + float64(i)*rh
		switch {
		case t.Selected != nil && t.Selection.Contains(n):
			t.Selected.Draw(b, a.globalX, y, a.width, rh, tint)
		case t.Over != nil && i == t.overIndex:
			t.Over.Draw(b, a.globalX, y, a.width, rh, tint)
		}
		if len(n.children) > 0 {
			t.drawMarker(n, b, a.globalX+t.Pad+float64(n.depth)*t.Indent, y, rh, tint)
		}
		b.DrawText(n.Text, t.Font, a.globalX+t.textX(n), y+t.Pad, fontColor)
	}
	a.DrawChildren(b, alpha)
}

func (t *Tree) drawMarker(n *TreeNode, b Batch, x, y, rh float64, tint Color) {
	d, s := t.Plus, "+"
	if n.expanded {
		d, s = t.Minus, "-"
	}
	if d != nil {
		d.Draw(b, x, y+(rh-d.MinHeight())/2, d.MinWidth(), d.MinHeight(), tint)
		return
	}
	b.DrawText(s, t.Font, x, y+t.Pad, t.FontColor.mul(tint))
}

// String implements fmt.Stringer for debugging.
func (n *TreeNode) String() string {
	return fmt.Sprintf("TreeNode(%s)", n.Text)
}
