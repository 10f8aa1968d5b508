package system

import (
	"math"

	"github.com/milk9111/stickclash/obj"
	"github.com/milk9111/stickclash/prefabs"
)

// ApplyComeback sets the damage multipliers for the current health gap and
// returns the boosted slot, or 0 when the fight is close. When the normalised
// gap exceeds the threshold the trailing fighter deals DamageBoost and takes
// DefenseBoost; otherwise both fighters are reset to 1. Multipliers are set
// each tick, never compounded.
func ApplyComeback(a, b *obj.Fighter, cfg prefabs.ComebackConfig) int {
	if a == nil || b == nil {
		return 0
	}
	a.DamageOutput, a.DamageTaken = 1, 1
	b.DamageOutput, b.DamageTaken = 1, 1

	fa, fb := a.Health.Fraction(), b.Health.Fraction()
	if math.Abs(fa-fb) <= cfg.Threshold {
		return 0
	}
	under := a
	if fa > fb {
		under = b
	}
	under.DamageOutput = cfg.DamageBoost
	under.DamageTaken = cfg.DefenseBoost
	return under.Slot
}
