package sprig

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep is a single action in a test script.
type testStep struct {
	Action    string     `json:"action"`
	X         float64    `json:"x,omitempty"`
	Y         float64    `json:"y,omitempty"`
	FromX     float64    `json:"fromX,omitempty"`
	FromY     float64    `json:"fromY,omitempty"`
	ToX       float64    `json:"toX,omitempty"`
	ToY       float64    `json:"toY,omitempty"`
	Frames    int        `json:"frames,omitempty"`
	Key       ebiten.Key `json:"key,omitempty"`
	Text      string     `json:"text,omitempty"`
	Amount    float64    `json:"amount,omitempty"`
	Modifiers []string   `json:"modifiers,omitempty"`
	Label     string     `json:"label,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var modifierNames = map[string]KeyModifiers{
	"shift": ModShift,
	"ctrl":  ModCtrl,
	"alt":   ModAlt,
	"meta":  ModMeta,
}

var errNoSteps = errors.New("no steps")

// TestRunner sequences injected input across frames for automated UI tests.
// Attach it to a HUD with SetTestRunner.
//
// Actions: click (x, y), drag (fromX, fromY, toX, toY, frames), wait (frames),
// key (key), type (text), scroll (amount), modifiers (modifiers) and
// screenshot (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", errNoSteps)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "drag", "wait", "key", "type", "scroll", "screenshot":
		case "modifiers":
			for _, m := range st.Modifiers {
				if _, ok := modifierNames[m]; !ok {
					return nil, fmt.Errorf("parse test script: step %d: unknown modifier %q", i, m)
				}
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a runner. Its next step runs at the start of every
// Update.
func (h *HUD) SetTestRunner(runner *TestRunner) {
	h.testRunner = runner
}

// Done reports whether all steps have run and their input has been consumed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(h *HUD) {
	if r.done {
		return
	}
	// Let pending injections drain first.
	if len(h.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		h.InjectClick(st.X, st.Y)
	case "drag":
		h.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "key":
		h.InjectKey(st.Key)
	case "type":
		h.InjectType(st.Text)
	case "scroll":
		h.InjectScroll(st.Amount)
	case "screenshot":
		h.Screenshot(st.Label)
	case "modifiers":
		var mods KeyModifiers
		for _, m := range st.Modifiers {
			mods |= modifierNames[m]
		}
		h.InjectModifiers(mods)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(h.injectQueue) == 0 {
		r.done = true
	}
}
