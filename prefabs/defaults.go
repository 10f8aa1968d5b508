package prefabs

import (
	"image/color"
	"time"

	"github.com/milk9111/stickclash/common"
	"github.com/milk9111/stickclash/component"
)

const (
	ArchetypeAssassin = "assassin"
	ArchetypeGrappler = "grappler"
)

var defaultTrailColor = color.RGBA{R: 0xFF, G: 0x66, B: 0xCC, A: 0xFF}

func defaultAttacks() map[component.AttackKind]Attack {
	return map[component.AttackKind]Attack{
		component.AttackLight:   {Damage: 8, Knockback: 120},
		component.AttackHeavy:   {Damage: 20, Knockback: 300},
		component.AttackSpecial: {Damage: 35, Knockback: 420},
	}
}

func defaultComboRoutes(archetype string) []ComboRoute {
	switch archetype {
	case ArchetypeAssassin:
		return []ComboRoute{
			{Name: "light→light→heavy", Inputs: []string{"light", "light", "heavy"}, Damage: 1.8, MeterGain: 25},
			{Name: "dash→heavy→special", Inputs: []string{"dash", "heavy", "special"}, Damage: 2.2, RequiresCorner: true},
		}
	case ArchetypeGrappler:
		return []ComboRoute{
			{Name: "heavy→light→light", Inputs: []string{"heavy", "light", "light"}, Damage: 2.0, ArmorFrames: 10},
			{Name: "block→heavy→special", Inputs: []string{"block", "heavy", "special"}, Damage: 2.5, RequiresGrounded: true},
		}
	}
	return nil
}

func defaultHitSpark(archetype string) HitSparkConfig {
	switch archetype {
	case ArchetypeAssassin:
		return HitSparkConfig{Color: color.RGBA{R: 0xFF, G: 0x66, B: 0xCC, A: 0xFF}, Count: 12, Spread: 1.5}
	case ArchetypeGrappler:
		return HitSparkConfig{Color: color.RGBA{R: 0xFF, G: 0xAA, B: 0x33, A: 0xFF}, Count: 8, Spread: 2.0}
	}
	return HitSparkConfig{Color: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, Count: 8, Spread: 3}
}

func defaultRumble() map[component.AttackKind]RumblePattern {
	return map[component.AttackKind]RumblePattern{
		component.AttackLight:   {Duration: 100 * time.Millisecond, Intensity: 0.3},
		component.AttackHeavy:   {Duration: 200 * time.Millisecond, Intensity: 0.7},
		component.AttackSpecial: {Duration: 300 * time.Millisecond, Intensity: 1.0},
	}
}

func defaultHitboxes() []common.Rect {
	return []common.Rect{
		{X: -10, Y: -30, Width: 20, Height: 30},
		{X: -20, Y: -10, Width: 40, Height: 20},
	}
}

func defaultHurtboxes() []common.Rect {
	return []common.Rect{
		{X: -20, Y: -40, Width: 40, Height: 40},
		{X: -10, Y: -20, Width: 20, Height: 20},
	}
}

// ApplyDefaults fills optional fields the record left out.
func ApplyDefaults(d *FighterDefinition) {
	if d == nil {
		return
	}
	if d.Attacks == nil {
		d.Attacks = defaultAttacks()
	}
	if d.ComboRoutes == nil {
		d.ComboRoutes = defaultComboRoutes(d.Archetype)
	}
	if d.HitSpark.Count <= 0 {
		d.HitSpark = defaultHitSpark(d.Archetype)
	}
	if d.Rumble == nil {
		d.Rumble = defaultRumble()
	}
	if d.Hitboxes == nil {
		d.Hitboxes = defaultHitboxes()
	}
	if d.Hurtboxes == nil {
		d.Hurtboxes = defaultHurtboxes()
	}
	if d.Visuals.TrailColor.A == 0 {
		d.Visuals.TrailColor = defaultTrailColor
	}
}
