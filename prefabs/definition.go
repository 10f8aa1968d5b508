package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/milk9111/stickclash/common"
	"github.com/milk9111/stickclash/component"
)

// ErrInvalidFighterDefinition is returned when a definition cannot drive a match.
var ErrInvalidFighterDefinition = errors.New("invalid fighter definition")

// DefaultMaxHealth is used when a definition carries no stats.hp.
const DefaultMaxHealth = 300.0

// Special move on-cast effects.
const (
	OnHitTeleportBehind = "teleportBehind"
	OnHitKnockdown      = "knockdown"
)

// RequiredAttacks must be present in every attack table.
var RequiredAttacks = []component.AttackKind{
	component.AttackLight,
	component.AttackHeavy,
	component.AttackSpecial,
}

type Stats struct {
	HP    float64
	Atk   float64
	Def   float64
	Speed float64
}

type Attack struct {
	Damage    float64
	Knockback float64
}

type Special struct {
	Cooldown    float64
	OnHitEffect string
}

// ComboRoute is an input sequence that powers up the attack finishing it.
type ComboRoute struct {
	Name             string
	Inputs           []string
	Damage           float64
	MeterGain        float64
	ArmorFrames      int
	RequiresCorner   bool
	RequiresGrounded bool
}

type HitSparkConfig struct {
	Color  color.RGBA
	Count  int
	Spread float64
}

type RumblePattern struct {
	Duration  time.Duration
	Intensity float64
}

type Visuals struct {
	TrailColor color.RGBA
}

// FighterDefinition is the read-only template a fighter is built from.
// A Match shares one definition between setup and teardown and never mutates it.
type FighterDefinition struct {
	ID        string
	Name      string
	Template  string
	Stats     Stats
	Speed     float64
	JumpForce float64
	Weapon    string
	Archetype string

	Attacks     map[component.AttackKind]Attack
	Special     Special
	ComboRoutes []ComboRoute
	HitSpark    HitSparkConfig
	Rumble      map[component.AttackKind]RumblePattern
	Hitboxes    []common.Rect
	Hurtboxes   []common.Rect
	Visuals     Visuals
}

// Label names the definition in logs and errors.
func (d *FighterDefinition) Label() string {
	if d == nil {
		return "<nil>"
	}
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// MaxHealth returns stats.hp, or DefaultMaxHealth when unset.
func (d *FighterDefinition) MaxHealth() float64 {
	if d == nil || d.Stats.HP <= 0 {
		return DefaultMaxHealth
	}
	return d.Stats.HP
}

// AttackFor looks up an attack table entry.
func (d *FighterDefinition) AttackFor(kind component.AttackKind) (Attack, bool) {
	if d == nil {
		return Attack{}, false
	}
	a, ok := d.Attacks[kind]
	return a, ok
}

// Validate checks everything the combat core dereferences at runtime.
func (d *FighterDefinition) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil definition", ErrInvalidFighterDefinition)
	}
	label := d.Label()
	if label == "" {
		return fmt.Errorf("%w: missing id and name", ErrInvalidFighterDefinition)
	}
	if d.Speed < 0 {
		return fmt.Errorf("%w: %s: negative speed %v", ErrInvalidFighterDefinition, label, d.Speed)
	}
	if d.JumpForce < 0 {
		return fmt.Errorf("%w: %s: negative jumpForce %v", ErrInvalidFighterDefinition, label, d.JumpForce)
	}
	if d.Stats.HP < 0 {
		return fmt.Errorf("%w: %s: negative stats.hp %v", ErrInvalidFighterDefinition, label, d.Stats.HP)
	}
	for _, kind := range RequiredAttacks {
		a, ok := d.Attacks[kind]
		if !ok {
			return fmt.Errorf("%w: %s: missing attack %q", ErrInvalidFighterDefinition, label, kind)
		}
		if a.Damage < 0 {
			return fmt.Errorf("%w: %s: attack %q has negative damage", ErrInvalidFighterDefinition, label, kind)
		}
	}
	if d.Special.Cooldown <= 0 {
		return fmt.Errorf("%w: %s: special.cooldown must be > 0", ErrInvalidFighterDefinition, label)
	}
	switch d.Special.OnHitEffect {
	case "", OnHitTeleportBehind, OnHitKnockdown:
	default:
		return fmt.Errorf("%w: %s: unknown special.onHitEffect %q", ErrInvalidFighterDefinition, label, d.Special.OnHitEffect)
	}
	if len(d.Hurtboxes) == 0 {
		return fmt.Errorf("%w: %s: no hurtboxes", ErrInvalidFighterDefinition, label)
	}
	for _, r := range d.ComboRoutes {
		if len(r.Inputs) == 0 {
			return fmt.Errorf("%w: %s: combo route %q has no inputs", ErrInvalidFighterDefinition, label, r.Name)
		}
		if r.Damage < 0 {
			return fmt.Errorf("%w: %s: combo route %q has negative damage", ErrInvalidFighterDefinition, label, r.Name)
		}
	}
	return nil
}
