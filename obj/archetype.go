package obj

import (
	"github.com/milk9111/stickclash/component"
	"github.com/milk9111/stickclash/prefabs"
)

// archetypeBehavior holds the per-archetype reactions to attack starts and
// special casts. Nil handlers do nothing.
type archetypeBehavior struct {
	name          string
	onAttackStart func(f *Fighter, kind component.AttackKind)
	onSpecialCast func(f *Fighter)
}

var archetypeBehaviors = map[string]archetypeBehavior{
	prefabs.ArchetypeAssassin: {
		name: prefabs.ArchetypeAssassin,
		onAttackStart: func(f *Fighter, kind component.AttackKind) {
			f.leaveAfterImages(1, 0.4)
		},
		onSpecialCast: func(f *Fighter) {
			f.leaveAfterImages(f.cfg.Dash.AfterImages, f.cfg.Dash.Opacity)
		},
	},
	prefabs.ArchetypeGrappler: {
		name: prefabs.ArchetypeGrappler,
		onAttackStart: func(f *Fighter, kind component.AttackKind) {
			if kind == component.AttackHeavy {
				f.SetArmor(grapplerHeavyArmorFrames)
			}
		},
		onSpecialCast: func(f *Fighter) {
			f.SetArmor(grapplerSpecialArmorFrames)
		},
	},
}

const (
	grapplerHeavyArmorFrames   = 6
	grapplerSpecialArmorFrames = 10
)

func behaviorFor(archetype string) archetypeBehavior {
	if b, ok := archetypeBehaviors[archetype]; ok {
		return b
	}
	return archetypeBehavior{name: "default"}
}

func (b archetypeBehavior) attackStarted(f *Fighter, kind component.AttackKind) {
	if b.onAttackStart != nil {
		b.onAttackStart(f, kind)
	}
}

func (b archetypeBehavior) specialCast(f *Fighter) {
	if b.onSpecialCast != nil {
		b.onSpecialCast(f)
	}
}
