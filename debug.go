package sprig

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// debugStats holds per-frame timing. Only populated when the HUD is in debug mode.
type debugStats struct {
	validateTime  time.Duration
	transformTime time.Duration
	drawTime      time.Duration
	actorCount    int
}

// debugColor is set when stderr is a terminal that understands ANSI colors.
var debugColor = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

// debugLog prints frame timing to stderr.
func (h *HUD) debugLog(stats debugStats) {
	if !h.debug {
		return
	}
	total := stats.validateTime + stats.transformTime + stats.drawTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[sprig] validate: %v | transform: %v | draw: %v | total: %v | actors: %d\n",
		stats.validateTime, stats.transformTime, stats.drawTime, total, stats.actorCount)
}

// debugWarnf prints a warning line to stderr, in yellow on terminals.
func debugWarnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if debugColor {
		_, _ = fmt.Fprintf(os.Stderr, "\x1b[33m[sprig] warning: %s\x1b[0m\n", msg)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[sprig] warning: %s\n", msg)
}

// debugCheckDisposed panics when a disposed actor is used in a tree operation.
// Only called in debug mode.
func debugCheckDisposed(a *Actor, op string) {
	if a.disposed {
		panic(fmt.Sprintf("sprig debug: %s on disposed actor %q (ID was %d)", op, a.Name, a.ID))
	}
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if the actor sits deeper than debugMaxTreeDepth.
func debugCheckTreeDepth(a *Actor) {
	depth := 0
	for p := a; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugWarnf("tree depth %d exceeds %d (actor %q)", depth, debugMaxTreeDepth, a.Name)
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns if an actor has more than debugMaxChildCount children.
func debugCheckChildCount(a *Actor) {
	if len(a.children) > debugMaxChildCount {
		debugWarnf("actor %q has %d children (threshold %d)", a.Name, len(a.children), debugMaxChildCount)
	}
}

// countActors returns the number of actors in the subtree rooted at a.
func countActors(a *Actor) int {
	n := 1
	for _, c := range a.children {
		n += countActors(c)
	}
	return n
}
