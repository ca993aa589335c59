package sprig

import "slices"

// SelectionListener observes individual selection changes. Nil callbacks are
// skipped.
type SelectionListener[T comparable] struct {
	Added               func(item T)
	Removed             func(item T)
	LastSelectedChanged func(item T, ok bool)
}

// Selection manages the selected items of a widget. Items are kept in
// selection order without duplicates.
//
// When Actor is set, every change fires an EventChange on it. A listener that
// cancels the event reverts the change.
type Selection[T comparable] struct {
	// Actor receives change events. May be nil.
	Actor *Actor

	Disabled bool
	// Toggle makes choosing a selected item deselect it, as if ctrl were held.
	Toggle   bool
	Multiple bool
	// Required prevents deselecting the last item through Choose, and makes
	// ArraySelection.Validate select the first item when nothing remains.
	Required bool
	// ProgrammaticChangeEvents controls whether Set, Add, Remove and Clear fire
	// change events. Choose always does.
	ProgrammaticChangeEvents bool

	selected     []T
	old          []T
	lastSelected T
	hasLast      bool
	listeners    []SelectionListener[T]

	// onChanged runs after every accepted change.
	onChanged func()
}

// NewSelection returns an empty single-item selection that fires change
// events on actor, which may be nil.
func NewSelection[T comparable](actor *Actor) *Selection[T] {
	return &Selection[T]{Actor: actor, ProgrammaticChangeEvents: true}
}

// AddListener registers l.
func (s *Selection[T]) AddListener(l SelectionListener[T]) {
	s.listeners = append(s.listeners, l)
}

// Items returns the selected items in selection order. The returned slice
// MUST NOT be mutated.
func (s *Selection[T]) Items() []T { return s.selected }

// Size returns the number of selected items.
func (s *Selection[T]) Size() int { return len(s.selected) }

// IsEmpty reports whether nothing is selected.
func (s *Selection[T]) IsEmpty() bool { return len(s.selected) == 0 }

// Contains reports whether item is selected.
func (s *Selection[T]) Contains(item T) bool {
	return slices.Contains(s.selected, item)
}

// First returns the first selected item.
func (s *Selection[T]) First() (T, bool) {
	if len(s.selected) == 0 {
		var zero T
		return zero, false
	}
	return s.selected[0], true
}

// LastSelected returns the most recently selected item, falling back to the
// first selected item.
func (s *Selection[T]) LastSelected() (T, bool) {
	if s.hasLast {
		return s.lastSelected, true
	}
	return s.First()
}

// Choose selects or deselects item the way user interaction does: ctrl (or
// Toggle) toggles it, otherwise it replaces the selection unless Multiple and
// ctrl or Toggle allow adding. Every value of T is an item, the zero value
// included; use Clear to deselect everything.
func (s *Selection[T]) Choose(item T, mods KeyModifiers) {
	if s.Disabled {
		return
	}
	s.snapshot()
	defer s.cleanup()

	ctrl := mods.Has(ModCtrl)
	if (s.Toggle || ctrl) && s.Contains(item) {
		if s.Required && len(s.selected) == 1 {
			return
		}
		s.removeItem(item)
		var zero T
		s.setLast(zero, false)
	} else {
		modified := false
		if !s.Multiple || (!s.Toggle && !ctrl) {
			if len(s.selected) == 1 && s.selected[0] == item {
				return
			}
			modified = len(s.selected) > 0
			s.clearItems()
		}
		if !s.addItem(item) && !modified {
			return
		}
		s.setLast(item, true)
	}
	if s.fireChangeEvent() {
		s.revert()
	} else {
		s.changed()
	}
}

// Set replaces the selection with item.
func (s *Selection[T]) Set(item T) {
	if len(s.selected) == 1 && s.selected[0] == item {
		return
	}
	s.snapshot()
	defer s.cleanup()
	s.clearItems()
	s.addItem(item)
	if s.ProgrammaticChangeEvents && s.fireChangeEvent() {
		s.revert()
		return
	}
	s.setLast(item, true)
	s.changed()
}

// SetAll replaces the selection with items.
func (s *Selection[T]) SetAll(items []T) {
	s.snapshot()
	defer s.cleanup()
	s.clearItems()
	added := false
	for _, item := range items {
		if s.addItem(item) {
			added = true
		}
	}
	if !added && len(s.old) == 0 {
		return
	}
	if s.ProgrammaticChangeEvents && s.fireChangeEvent() {
		s.revert()
		return
	}
	if len(items) > 0 {
		s.setLast(items[len(items)-1], true)
	} else {
		var zero T
		s.setLast(zero, false)
	}
	s.changed()
}

// Add adds item to the selection.
func (s *Selection[T]) Add(item T) {
	if !s.addItem(item) {
		return
	}
	if s.ProgrammaticChangeEvents && s.fireChangeEvent() {
		s.removeItem(item)
		return
	}
	s.setLast(item, true)
	s.changed()
}

// AddAll adds items to the selection.
func (s *Selection[T]) AddAll(items []T) {
	s.snapshot()
	defer s.cleanup()
	added := false
	for _, item := range items {
		if s.addItem(item) {
			added = true
		}
	}
	if !added {
		return
	}
	if s.ProgrammaticChangeEvents && s.fireChangeEvent() {
		s.revert()
		return
	}
	s.setLast(items[len(items)-1], true)
	s.changed()
}

// Remove removes item from the selection.
func (s *Selection[T]) Remove(item T) {
	if !s.removeItem(item) {
		return
	}
	if s.ProgrammaticChangeEvents && s.fireChangeEvent() {
		s.addItem(item)
		return
	}
	var zero T
	s.setLast(zero, false)
	s.changed()
}

// RemoveAll removes items from the selection.
func (s *Selection[T]) RemoveAll(items []T) {
	s.snapshot()
	defer s.cleanup()
	removed := false
	for _, item := range items {
		if s.removeItem(item) {
			removed = true
		}
	}
	if !removed {
		return
	}
	if s.ProgrammaticChangeEvents && s.fireChangeEvent() {
		s.revert()
		return
	}
	var zero T
	s.setLast(zero, false)
	s.changed()
}

// Clear deselects everything.
func (s *Selection[T]) Clear() {
	if len(s.selected) == 0 {
		return
	}
	s.snapshot()
	defer s.cleanup()
	s.clearItems()
	if s.ProgrammaticChangeEvents && s.fireChangeEvent() {
		s.revert()
		return
	}
	var zero T
	s.setLast(zero, false)
	s.changed()
}

// --- internals ---

func (s *Selection[T]) addItem(item T) bool {
	if s.Contains(item) {
		return false
	}
	s.selected = append(s.selected, item)
	for _, l := range s.listeners {
		if l.Added != nil {
			l.Added(item)
		}
	}
	return true
}

func (s *Selection[T]) removeItem(item T) bool {
	i := slices.Index(s.selected, item)
	if i < 0 {
		return false
	}
	s.selected = slices.Delete(s.selected, i, i+1)
	for _, l := range s.listeners {
		if l.Removed != nil {
			l.Removed(item)
		}
	}
	return true
}

func (s *Selection[T]) clearItems() {
	for len(s.selected) > 0 {
		s.removeItem(s.selected[len(s.selected)-1])
	}
}

func (s *Selection[T]) setLast(item T, ok bool) {
	s.lastSelected = item
	s.hasLast = ok
	for _, l := range s.listeners {
		if l.LastSelectedChanged != nil {
			l.LastSelectedChanged(item, ok)
		}
	}
}

func (s *Selection[T]) snapshot() {
	s.old = append(s.old[:0], s.selected...)
}

// revert restores the snapshot, notifying listeners of the difference.
func (s *Selection[T]) revert() {
	for _, item := range slices.Clone(s.selected) {
		if !slices.Contains(s.old, item) {
			s.removeItem(item)
		}
	}
	for _, item := range s.old {
		s.addItem(item)
	}
	// Restore the original order.
	s.selected = append(s.selected[:0], s.old...)
}

func (s *Selection[T]) cleanup() {
	clear(s.old)
	s.old = s.old[:0]
}

func (s *Selection[T]) changed() {
	if s.onChanged != nil {
		s.onChanged()
	}
}

// fireChangeEvent fires an EventChange on Actor and reports whether it was
// cancelled.
func (s *Selection[T]) fireChangeEvent() bool {
	if s.Actor == nil {
		return false
	}
	return s.Actor.Fire(NewChangeEvent())
}

// --- ArraySelection ---

// ArraySelection is a Selection over an ordered backing array. With Multiple
// and RangeSelect set, choosing with shift held selects the inclusive range
// between the range anchor and the chosen item; holding ctrl as well adds the
// range to the current selection.
type ArraySelection[T comparable] struct {
	Selection[T]
	RangeSelect bool

	array      []T
	rangeStart T
	hasRange   bool
}

// NewArraySelection returns a selection over array that fires change events
// on actor, which may be nil.
func NewArraySelection[T comparable](actor *Actor, array []T) *ArraySelection[T] {
	s := &ArraySelection[T]{RangeSelect: true, array: array}
	s.Actor = actor
	s.ProgrammaticChangeEvents = true
	// Any accepted change drops the range anchor. The range branch of Choose
	// restores it afterwards.
	s.onChanged = s.resetRange
	return s
}

// Array returns the backing array. The returned slice MUST NOT be mutated.
func (s *ArraySelection[T]) Array() []T { return s.array }

// SetArray replaces the backing array. Call Validate afterwards to drop
// selected items the new array no longer holds.
func (s *ArraySelection[T]) SetArray(array []T) {
	s.array = array
}

// RangeStart returns the range anchor.
func (s *ArraySelection[T]) RangeStart() (T, bool) {
	return s.rangeStart, s.hasRange
}

func (s *ArraySelection[T]) resetRange() {
	var zero T
	s.rangeStart = zero
	s.hasRange = false
}

// Choose behaves like Selection.Choose, plus shift-range selection. A plain
// choose moves the range anchor to item; a range choose keeps it.
func (s *ArraySelection[T]) Choose(item T, mods KeyModifiers) {
	if s.Disabled {
		return
	}
	if !s.RangeSelect || !s.Multiple {
		s.Selection.Choose(item, mods)
		return
	}
	if len(s.selected) > 0 && mods.Has(ModShift) && s.hasRange {
		start := slices.Index(s.array, s.rangeStart)
		end := slices.Index(s.array, item)
		if start >= 0 && end >= 0 {
			s.chooseRange(start, end, mods.Has(ModCtrl))
			return
		}
	}
	s.Selection.Choose(item, mods)
	s.rangeStart = item
	s.hasRange = true
}

func (s *ArraySelection[T]) chooseRange(start, end int, union bool) {
	oldStart := s.rangeStart
	s.snapshot()
	defer s.cleanup()
	if start > end {
		start, end = end, start
	}
	if !union {
		s.clearItems()
	}
	for i := start; i <= end; i++ {
		s.addItem(s.array[i])
	}
	if s.fireChangeEvent() {
		s.revert()
	} else {
		s.changed()
	}
	s.rangeStart = oldStart
	s.hasRange = true
}

// Validate removes selected items missing from the backing array. If the
// selection is Required and ends up empty, the first array item is selected.
// Validate fires no change events, so listeners cannot veto it.
func (s *ArraySelection[T]) Validate() {
	changed := false
	for _, item := range slices.Clone(s.selected) {
		if !slices.Contains(s.array, item) {
			s.removeItem(item)
			changed = true
			if s.hasLast && s.lastSelected == item {
				var zero T
				s.setLast(zero, false)
			}
		}
	}
	if s.Required && len(s.selected) == 0 && len(s.array) > 0 {
		s.addItem(s.array[0])
		s.setLast(s.array[0], true)
		changed = true
	}
	if changed {
		s.changed()
	}
}
