package system

import "github.com/milk9111/stickclash/prefabs"

// RumbleRequest asks the host to vibrate the pad of the given slot. The weak
// motor runs at 70% of the strong one.
type RumbleRequest struct {
	Slot    int
	Pattern prefabs.RumblePattern
}

func (r RumbleRequest) Strong() float64 {
	return r.Pattern.Intensity
}

func (r RumbleRequest) Weak() float64 {
	return r.Pattern.Intensity * 0.7
}

// DrainRumbles returns and clears the rumble requests raised since the last
// call.
func (m *Match) DrainRumbles() []RumbleRequest {
	if m == nil || len(m.rumbles) == 0 {
		return nil
	}
	out := m.rumbles
	m.rumbles = nil
	return out
}
