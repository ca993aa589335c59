package sprig

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sortedItems(items []string) []string {
	out := slices.Clone(items)
	slices.Sort(out)
	return out
}

func TestArraySelectionRange(t *testing.T) {
	s := NewArraySelection[string](nil, []string{"a", "b", "c", "d", "e"})
	s.Multiple = true

	s.Choose("b", 0)
	if diff := cmp.Diff([]string{"b"}, s.Items()); diff != "" {
		t.Fatalf("after choose b (-want +got):\n%s", diff)
	}
	if start, ok := s.RangeStart(); !ok || start != "b" {
		t.Fatalf("range anchor = %q, %v; want b", start, ok)
	}

	s.Choose("d", ModShift)
	if diff := cmp.Diff([]string{"b", "c", "d"}, sortedItems(s.Items())); diff != "" {
		t.Errorf("after shift choose d (-want +got):\n%s", diff)
	}
	if start, _ := s.RangeStart(); start != "b" {
		t.Errorf("range choose moved the anchor to %q", start)
	}

	s.Choose("a", ModShift|ModCtrl)
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, sortedItems(s.Items())); diff != "" {
		t.Errorf("after ctrl+shift choose a (-want +got):\n%s", diff)
	}

	// Any other accepted change drops the anchor, so shift falls back to a
	// plain choose.
	s.changed()
	s.Choose("e", ModShift)
	if diff := cmp.Diff([]string{"e"}, s.Items()); diff != "" {
		t.Errorf("after anchor reset (-want +got):\n%s", diff)
	}
	if start, _ := s.RangeStart(); start != "e" {
		t.Errorf("anchor = %q, want e", start)
	}
}

func TestArraySelectionRangeDisabledWithoutMultiple(t *testing.T) {
	s := NewArraySelection[string](nil, []string{"a", "b", "c"})
	s.Choose("a", 0)
	s.Choose("c", ModShift)
	if diff := cmp.Diff([]string{"c"}, s.Items()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestArraySelectionRangeCancelled(t *testing.T) {
	actor := NewActor("list")
	s := NewArraySelection[string](actor, []string{"a", "b", "c"})
	s.Multiple = true
	s.Choose("a", 0)

	actor.AddListener(ChangeListener(func(e *Event, _ *Actor) { e.Cancel() }))
	s.Choose("c", ModShift)
	if diff := cmp.Diff([]string{"a"}, s.Items()); diff != "" {
		t.Errorf("cancelled range not reverted (-want +got):\n%s", diff)
	}
}

func TestArraySelectionValidate(t *testing.T) {
	s := NewArraySelection[string](nil, []string{"a", "b", "c"})
	s.Required = true
	s.Set("b")

	s.SetArray([]string{"a", "c"})
	s.Validate()
	if diff := cmp.Diff([]string{"a"}, s.Items()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	s.SetArray(nil)
	s.Validate()
	if !s.IsEmpty() {
		t.Errorf("empty array left %v selected", s.Items())
	}
}

func TestArraySelectionValidateNotRequired(t *testing.T) {
	s := NewArraySelection[string](nil, []string{"a", "b", "c"})
	s.Multiple = true
	s.SetAll([]string{"a", "b"})
	s.SetArray([]string{"b", "c"})
	s.Validate()
	if diff := cmp.Diff([]string{"b"}, s.Items()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSelectionChangeEventCancelReverts(t *testing.T) {
	actor := NewActor("w")
	s := NewSelection[string](actor)
	s.Set("x")

	events := 0
	actor.AddListener(ChangeListener(func(e *Event, a *Actor) {
		events++
		if a != actor {
			t.Errorf("change target = %v", a)
		}
		e.Cancel()
	}))

	s.Choose("y", 0)
	if diff := cmp.Diff([]string{"x"}, s.Items()); diff != "" {
		t.Errorf("Choose not reverted (-want +got):\n%s", diff)
	}
	s.Clear()
	if diff := cmp.Diff([]string{"x"}, s.Items()); diff != "" {
		t.Errorf("Clear not reverted (-want +got):\n%s", diff)
	}
	s.Add("z")
	if s.Contains("z") {
		t.Error("Add not reverted")
	}
	if events != 3 {
		t.Errorf("events = %d, want 3", events)
	}
}

func TestSelectionProgrammaticChangeEvents(t *testing.T) {
	actor := NewActor("w")
	events := 0
	actor.AddListener(ChangeListener(func(*Event, *Actor) { events++ }))
	s := NewSelection[string](actor)
	s.ProgrammaticChangeEvents = false

	s.Set("a")
	s.Add("b")
	s.Remove("b")
	s.Clear()
	if events != 0 {
		t.Errorf("programmatic changes fired %d events", events)
	}
	s.Choose("a", 0)
	if events != 1 {
		t.Errorf("Choose fired %d events, want 1", events)
	}
}

func TestSelectionChoose(t *testing.T) {
	tests := []struct {
		name     string
		multiple bool
		toggle   bool
		required bool
		steps    []string // item, optionally prefixed with "^" for ctrl
		want     []string
	}{
		{"single replaces", false, false, false, []string{"a", "b"}, []string{"b"}},
		{"ctrl deselects", false, false, false, []string{"a", "^a"}, []string{}},
		{"ctrl adds when multiple", true, false, false, []string{"a", "^b"}, []string{"a", "b"}},
		{"plain choose replaces when multiple", true, false, false, []string{"a", "^b", "c"}, []string{"c"}},
		{"toggle adds and removes", true, true, false, []string{"a", "b", "a"}, []string{"b"}},
		{"required keeps last item", true, true, true, []string{"a", "a"}, []string{"a"}},
		{"required single ctrl", false, false, true, []string{"a", "^a"}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection[string](nil)
			s.Multiple = tt.multiple
			s.Toggle = tt.toggle
			s.Required = tt.required
			for _, step := range tt.steps {
				var mods KeyModifiers
				if step[0] == '^' {
					mods = ModCtrl
					step = step[1:]
				}
				s.Choose(step, mods)
			}
			got := append([]string{}, s.Items()...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectionZeroValueIsAnItem(t *testing.T) {
	s := NewSelection[int](nil)
	s.Set(0)
	if diff := cmp.Diff([]int{0}, s.Items()); diff != "" {
		t.Errorf("Set(0) (-want +got):\n%s", diff)
	}
	s.Set(1)
	s.Choose(0, 0)
	if diff := cmp.Diff([]int{0}, s.Items()); diff != "" {
		t.Errorf("Choose(0) (-want +got):\n%s", diff)
	}
	if last, ok := s.LastSelected(); !ok || last != 0 {
		t.Errorf("LastSelected = %d, %v; want 0, true", last, ok)
	}
}

func TestArraySelectionZeroValueItems(t *testing.T) {
	tests := []struct {
		name  string
		array []int
		run   func(s *ArraySelection[int])
		want  []int
	}{
		{
			name:  "required validate selects zero first item",
			array: []int{0, 1, 2},
			run: func(s *ArraySelection[int]) {
				s.Required = true
				s.SetArray([]int{6})
				s.Set(6)
				s.SetArray([]int{0, 1, 2})
				s.Validate()
			},
			want: []int{0},
		},
		{
			name:  "shift range onto zero item",
			array: []int{0, 1, 2},
			run: func(s *ArraySelection[int]) {
				s.Multiple = true
				s.Choose(2, 0)
				s.Choose(0, ModShift)
			},
			want: []int{0, 1, 2},
		},
		{
			name:  "shift range from zero item",
			array: []int{0, 1, 2},
			run: func(s *ArraySelection[int]) {
				s.Multiple = true
				s.Choose(0, 0)
				s.Choose(1, ModShift)
			},
			want: []int{0, 1},
		},
		{
			name:  "ctrl toggles zero item off",
			array: []int{0, 1, 2},
			run: func(s *ArraySelection[int]) {
				s.Multiple = true
				s.Choose(0, 0)
				s.Choose(1, ModCtrl)
				s.Choose(0, ModCtrl)
			},
			want: []int{1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewArraySelection[int](nil, tt.array)
			tt.run(s)
			got := slices.Sorted(slices.Values(s.Items()))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestArraySelectionValidateIgnoresCancel(t *testing.T) {
	tests := []struct {
		name     string
		required bool
		array    []string
		want     []string
	}{
		{"empty array", false, nil, []string{}},
		{"item dropped", false, []string{"a", "c"}, []string{}},
		{"required falls back to first", true, []string{"a", "c"}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := NewActor("list")
			s := NewArraySelection[string](actor, []string{"a", "b", "c"})
			s.Required = tt.required
			s.Set("b")

			events := 0
			actor.AddListener(ChangeListener(func(e *Event, _ *Actor) {
				events++
				e.Cancel()
			}))
			s.SetArray(tt.array)
			s.Validate()

			got := append([]string{}, s.Items()...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			for _, item := range got {
				if !slices.Contains(tt.array, item) {
					t.Errorf("selected %q is not in the array", item)
				}
			}
			if events != 0 {
				t.Errorf("Validate fired %d change events", events)
			}
		})
	}
}

func TestSelectionDisabled(t *testing.T) {
	s := NewSelection[string](nil)
	s.Disabled = true
	s.Choose("a", 0)
	if !s.IsEmpty() {
		t.Error("disabled selection changed through Choose")
	}
	s.Set("a")
	if !s.Contains("a") {
		t.Error("programmatic Set should ignore Disabled")
	}
}

func TestSelectionListeners(t *testing.T) {
	var log []string
	s := NewSelection[string](nil)
	s.Multiple = true
	s.AddListener(SelectionListener[string]{
		Added:   func(item string) { log = append(log, "+"+item) },
		Removed: func(item string) { log = append(log, "-"+item) },
		LastSelectedChanged: func(item string, ok bool) {
			if ok {
				log = append(log, "last "+item)
			}
		},
	})

	s.Set("a")
	s.Choose("b", ModCtrl)
	s.Remove("a")

	want := []string{"+a", "last a", "+b", "last b", "-a"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if last, ok := s.LastSelected(); !ok || last != "b" {
		t.Errorf("LastSelected = %q, %v; want b (first item fallback)", last, ok)
	}
}

func TestSelectionSetAll(t *testing.T) {
	actor := NewActor("w")
	events := 0
	actor.AddListener(ChangeListener(func(*Event, *Actor) { events++ }))
	s := NewSelection[string](actor)
	s.Multiple = true

	s.SetAll([]string{"a", "b", "a"})
	if diff := cmp.Diff([]string{"a", "b"}, s.Items()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	s.SetAll(nil)
	if !s.IsEmpty() {
		t.Error("SetAll(nil) should clear")
	}
	s.SetAll(nil)
	if events != 2 {
		t.Errorf("events = %d, want 2", events)
	}
	if first, ok := s.First(); ok {
		t.Errorf("First on empty = %q, true", first)
	}
}

func TestSelectionAddRemoveAll(t *testing.T) {
	s := NewSelection[string](nil)
	s.Multiple = true
	s.AddAll([]string{"a", "b", "c"})
	s.RemoveAll([]string{"a", "c", "x"})
	if diff := cmp.Diff([]string{"b"}, s.Items()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if s.Size() != 1 {
		t.Errorf("Size = %d, want 1", s.Size())
	}
}
