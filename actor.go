package sprig

import (
	"strconv"
	"strings"
)

// actorIDCounter is a plain counter; sprig is single-threaded.
var actorIDCounter uint32

func nextActorID() uint32 {
	actorIDCounter++
	return actorIDCounter
}

// --- Actor ---

// Actor is the fundamental scene graph element. Any actor may hold children;
// children are drawn back-to-front in insertion order and hit-tested
// front-to-back. Actors that participate in layout carry a Widget.
type Actor struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy (non-owning back references, cleared on removal)
	parent   *Actor
	hud      *HUD
	children []*Actor

	// Geometry, local to the parent
	x, y          float64
	width, height float64

	// Derived by UpdateTransform
	globalX, globalY float64

	// Visibility & interaction
	Alpha     float64
	Color     Color
	Visible   bool
	Touchable Touchable
	HitShape  HitShape
	// ClipChildren limits drawing and hit testing of children to the
	// actor's bounds.
	ClipChildren bool

	// Metadata
	UserData any
	EntityID uint32
	Savable  bool

	// OnAct is called once per HUD.Update before the actor's children act.
	OnAct func(a *Actor, dt float64)

	listeners        []listenerEntry
	captureListeners []listenerEntry
	nextListenerID   uint32

	// Layout capability (see layout.go)
	widget        Widget
	needsLayout   bool
	layoutEnabled bool
	fillParent    bool

	disposed bool
}

// actorDefaults sets the common default field values shared by all constructors.
func actorDefaults(a *Actor) {
	a.ID = nextActorID()
	a.Alpha = 1
	a.Color = ColorWhite
	a.Visible = true
	a.Touchable = TouchableEnabled
	a.Savable = true
	a.needsLayout = true
	a.layoutEnabled = true
}

// NewActor creates a plain actor with no layout behavior.
func NewActor(name string) *Actor {
	a := &Actor{Name: name}
	actorDefaults(a)
	return a
}

// Parent returns the actor's parent, or nil.
func (a *Actor) Parent() *Actor {
	return a.parent
}

// HUD returns the HUD this actor is attached to, or nil.
func (a *Actor) HUD() *HUD {
	return a.hud
}

// String returns the actor's name, or a generated identifier when unnamed.
func (a *Actor) String() string {
	if a.Name != "" {
		return a.Name
	}
	return "actor#" + strconv.FormatUint(uint64(a.ID), 10)
}

// setHUD assigns the HUD to the actor and its whole subtree.
func (a *Actor) setHUD(h *HUD) {
	a.hud = h
	for _, c := range a.children {
		c.setHUD(h)
	}
}

// --- Tree manipulation ---

// AddActor appends child to this actor's children, removing it from its
// previous parent first. No-op if child is already a child of a.
// Panics if child is nil or child is an ancestor of a (cycle).
func (a *Actor) AddActor(child *Actor) {
	a.AddActorAt(len(a.children), child)
}

// AddActorAt inserts child at the given index. An index past the end appends.
// Same reparenting and cycle-check behavior as AddActor.
func (a *Actor) AddActorAt(index int, child *Actor) {
	if child == nil {
		panic("sprig: cannot add nil actor")
	}
	if globalDebug {
		debugCheckDisposed(a, "AddActor (parent)")
		debugCheckDisposed(child, "AddActor (child)")
	}
	if child.parent == a {
		return
	}
	if isAncestor(child, a) {
		panic("sprig: adding actor would create a cycle")
	}
	if index < 0 {
		panic("sprig: child index out of range")
	}
	if child.parent != nil {
		// Only scrub focus when the actor leaves its HUD.
		child.parent.removeActor(child, child.hud != a.hud)
	}
	if index >= len(a.children) {
		a.children = append(a.children, child)
	} else {
		a.children = append(a.children, nil)
		copy(a.children[index+1:], a.children[index:])
		a.children[index] = child
	}
	child.parent = a
	child.setHUD(a.hud)
	a.childrenChanged()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(a)
	}
}

// AddActorBefore inserts child immediately before the sibling before.
// If before is not a child of a, child is inserted first.
func (a *Actor) AddActorBefore(before, child *Actor) {
	index := a.indexOf(before)
	if index < 0 {
		index = 0
	}
	a.AddActorAt(index, child)
}

// AddActorAfter inserts child immediately after the sibling after.
// If after is not a child of a, child is appended.
func (a *Actor) AddActorAfter(after, child *Actor) {
	index := a.indexOf(after)
	if index < 0 {
		index = len(a.children)
	} else {
		index++
	}
	a.AddActorAt(index, child)
}

// RemoveActor detaches child from a and releases every HUD-level reference
// to child or its descendants (keyboard, scroll, touch and general focus).
// Returns false if child is not a child of a.
func (a *Actor) RemoveActor(child *Actor) bool {
	return a.removeActor(child, true)
}

func (a *Actor) removeActor(child *Actor, unfocus bool) bool {
	index := a.indexOf(child)
	if index < 0 {
		return false
	}
	a.removeActorAt(index, unfocus)
	return true
}

// RemoveActorAt removes and returns the child at the given index.
func (a *Actor) RemoveActorAt(index int) *Actor {
	if index < 0 || index >= len(a.children) {
		panic("sprig: child index out of range")
	}
	return a.removeActorAt(index, true)
}

func (a *Actor) removeActorAt(index int, unfocus bool) *Actor {
	child := a.children[index]
	if unfocus && a.hud != nil {
		a.hud.unfocus(child)
	}
	copy(a.children[index:], a.children[index+1:])
	a.children[len(a.children)-1] = nil
	a.children = a.children[:len(a.children)-1]
	child.parent = nil
	child.setHUD(nil)
	a.childrenChanged()
	return child
}

// Remove detaches this actor from its parent. Returns false if the actor has
// no parent.
func (a *Actor) Remove() bool {
	if a.parent == nil {
		return false
	}
	return a.parent.RemoveActor(a)
}

// ClearChildren detaches all children. Children are NOT disposed.
func (a *Actor) ClearChildren() {
	for _, child := range a.children {
		if a.hud != nil {
			a.hud.unfocus(child)
		}
		child.parent = nil
		child.setHUD(nil)
	}
	clear(a.children)
	a.children = a.children[:0]
	a.childrenChanged()
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (a *Actor) Children() []*Actor {
	return a.children
}

// NumChildren returns the number of children.
func (a *Actor) NumChildren() int {
	return len(a.children)
}

// ChildAt returns the child at the given index.
func (a *Actor) ChildAt(index int) *Actor {
	return a.children[index]
}

// SwapActors swaps the children at indexes i and j.
// Returns false if either index is out of range.
func (a *Actor) SwapActors(i, j int) bool {
	n := len(a.children)
	if i < 0 || i >= n || j < 0 || j >= n {
		return false
	}
	a.children[i], a.children[j] = a.children[j], a.children[i]
	return true
}

// ZIndex returns the actor's index among its siblings, or -1 without a parent.
func (a *Actor) ZIndex() int {
	if a.parent == nil {
		return -1
	}
	return a.parent.indexOf(a)
}

// SetZIndex moves the actor to index among its siblings. Indexes past the end
// move it to the front. Returns true if the order changed.
func (a *Actor) SetZIndex(index int) bool {
	if index < 0 {
		panic("sprig: z-index cannot be negative")
	}
	p := a.parent
	if p == nil || len(p.children) == 1 {
		return false
	}
	index = min(index, len(p.children)-1)
	old := p.indexOf(a)
	if old == index {
		return false
	}
	if old < index {
		copy(p.children[old:], p.children[old+1:index+1])
	} else {
		copy(p.children[index+1:], p.children[index:old])
	}
	p.children[index] = a
	return true
}

// ToFront moves the actor in front of all its siblings.
func (a *Actor) ToFront() {
	if a.parent != nil {
		a.SetZIndex(len(a.parent.children) - 1)
	}
}

// ToBack moves the actor behind all its siblings.
func (a *Actor) ToBack() {
	a.SetZIndex(0)
}

// FindActor returns the first descendant with the given name. Direct children
// are checked before deeper descendants.
func (a *Actor) FindActor(name string) *Actor {
	for _, c := range a.children {
		if c.Name == name {
			return c
		}
	}
	for _, c := range a.children {
		if found := c.FindActor(name); found != nil {
			return found
		}
	}
	return nil
}

// IsDescendantOf reports whether a is other or a descendant of other.
func (a *Actor) IsDescendantOf(other *Actor) bool {
	return isAncestor(other, a)
}

// IsAscendantOf reports whether a is other or an ancestor of other.
func (a *Actor) IsAscendantOf(other *Actor) bool {
	return isAncestor(a, other)
}

// AncestorsVisible reports whether a and all its ancestors are visible.
func (a *Actor) AncestorsVisible() bool {
	for p := a; p != nil; p = p.parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// Path returns the slash-separated names from the root to a. Unnamed actors
// contribute "#<index>".
func (a *Actor) Path() string {
	var parts []string
	for p := a; p != nil; p = p.parent {
		if p.Name != "" {
			parts = append(parts, p.Name)
		} else {
			parts = append(parts, "#"+strconv.Itoa(p.ZIndex()))
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Act calls OnAct and then acts every child. Children
// added or removed during the pass do not affect the current iteration.
func (a *Actor) Act(dt float64) {
	if a.OnAct != nil {
		a.OnAct(a, dt)
	}
	if len(a.children) == 0 {
		return
	}
	snapshot := make([]*Actor, len(a.children))
	copy(snapshot, a.children)
	for _, c := range snapshot {
		c.Act(dt)
	}
}

// --- Disposal ---

// Dispose removes this actor from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (a *Actor) Dispose() {
	if a.disposed {
		return
	}
	a.Remove()
	a.dispose()
}

func (a *Actor) dispose() {
	a.disposed = true
	for _, c := range a.children {
		c.parent = nil
		c.dispose()
	}
	a.children = nil
	a.parent = nil
	a.hud = nil
	a.listeners = nil
	a.captureListeners = nil
	a.widget = nil
	a.HitShape = nil
	a.UserData = nil
	a.OnAct = nil
}

// IsDisposed returns true if this actor has been disposed.
func (a *Actor) IsDisposed() bool {
	return a.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Actor) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (a *Actor) indexOf(child *Actor) int {
	for i, c := range a.children {
		if c == child {
			return i
		}
	}
	return -1
}

// childrenChanged invalidates layout up the hierarchy for layout actors.
func (a *Actor) childrenChanged() {
	if a.widget != nil {
		a.InvalidateHierarchy()
	}
}
