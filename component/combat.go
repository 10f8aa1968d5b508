package component

import "github.com/milk9111/stickclash/common"

// AttackKind names an entry in a fighter's attack table.
type AttackKind string

const (
	AttackLight   AttackKind = "light"
	AttackHeavy   AttackKind = "heavy"
	AttackSpecial AttackKind = "special"
	// AttackThrow bypasses armor.
	AttackThrow AttackKind = "throw"
)

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventHitLanded      CombatEventType = "hit_landed"
	EventAttackStarted  CombatEventType = "attack_started"
	EventSpecialCast    CombatEventType = "special_cast"
	EventDashStarted    CombatEventType = "dash_started"
	EventArmorTriggered CombatEventType = "armor_triggered"
	EventComboRoute     CombatEventType = "combo_route"
	EventKO             CombatEventType = "ko"
)

// CombatEvent is emitted by fighters and consumed by the match loop.
// Attacker and Defender are player slots (1 or 2); zero means not applicable.
type CombatEvent struct {
	Type     CombatEventType
	Attacker int
	Defender int
	Kind     AttackKind
	Blocked  bool
	Damage   float64
	PosX     float64
	PosY     float64
	Route    string
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter fans events out to subscribers in subscription order.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Subscribe registers a handler.
func (e *CombatEventEmitter) Subscribe(h CombatEventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// Hitbox represents an offensive collision area in world space.
type Hitbox struct {
	ID      string
	Rect    common.Rect
	OwnerID int
}

// Hurtbox represents a defensive collision area in world space.
type Hurtbox struct {
	ID      string
	Rect    common.Rect
	OwnerID int
}

// DamageDealerComponent exposes the hitboxes that are live this tick.
type DamageDealerComponent interface {
	ActiveHitboxes() []Hitbox
}

// HurtboxComponent exposes defensive collision data.
type HurtboxComponent interface {
	Hurtboxes() []Hurtbox
}
