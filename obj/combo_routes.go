package obj

import (
	"slices"

	"github.com/milk9111/stickclash/prefabs"
)

// Route inputs older than this are forgotten.
const routeWindow = 1.0

// InputHistory is a short, bounded record of combat inputs ("light", "dash",
// "block", ...) used to recognise combo routes.
type InputHistory struct {
	steps []string
	limit int
	idle  float64
}

func NewInputHistory(limit int) *InputHistory {
	if limit <= 0 {
		limit = 4
	}
	return &InputHistory{limit: limit}
}

func (h *InputHistory) Push(step string) {
	if h == nil || step == "" {
		return
	}
	h.steps = append(h.steps, step)
	if len(h.steps) > h.limit {
		h.steps = h.steps[len(h.steps)-h.limit:]
	}
	h.idle = 0
}

// Tick ages the history and clears it after routeWindow seconds without input.
func (h *InputHistory) Tick(dt float64) {
	if h == nil || len(h.steps) == 0 {
		return
	}
	h.idle += dt
	if h.idle > routeWindow {
		h.Reset()
	}
}

func (h *InputHistory) Reset() {
	if h == nil {
		return
	}
	h.steps = h.steps[:0]
	h.idle = 0
}

// Steps returns a copy of the recorded inputs, oldest first.
func (h *InputHistory) Steps() []string {
	if h == nil {
		return nil
	}
	return slices.Clone(h.steps)
}

// MatchRoute returns the first route whose inputs equal the most recent
// history steps and whose positional requirements hold.
func MatchRoute(routes []prefabs.ComboRoute, history []string, cornered, grounded bool) (prefabs.ComboRoute, bool) {
	for _, route := range routes {
		n := len(route.Inputs)
		if n == 0 || n > len(history) {
			continue
		}
		tail := history[len(history)-n:]
		matched := true
		for i, step := range route.Inputs {
			if tail[i] != step {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if route.RequiresCorner && !cornered {
			continue
		}
		if route.RequiresGrounded && !grounded {
			continue
		}
		return route, true
	}
	return prefabs.ComboRoute{}, false
}

func longestRoute(routes []prefabs.ComboRoute) int {
	n := 0
	for _, r := range routes {
		n = max(n, len(r.Inputs))
	}
	return n
}
