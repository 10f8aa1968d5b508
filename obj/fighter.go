package obj

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stickclash/common"
	"github.com/milk9111/stickclash/component"
	"github.com/milk9111/stickclash/prefabs"
)

// FighterState is the discrete state of a fighter. Blocking, dodging and
// armor are modifiers on top of it, not states.
type FighterState string

const (
	StateIdle    FighterState = "idle"
	StateAttack  FighterState = "attack"
	StateSpecial FighterState = "special"
	StateHit     FighterState = "hit"
)

const (
	resourceMax = 100.0

	armorEffectFrames = 10
	flashEffectFrames = 20

	squashX = 1.3
	squashY = 0.7

	sparkLift = 30.0
)

var (
	armorEffectColor = color.RGBA{R: 0xFF, G: 0x99, B: 0x00, A: 0xFF}
	flashEffectColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// HitOutcome says what TakeHit did with an incoming hit.
type HitOutcome int

const (
	HitIgnored HitOutcome = iota
	HitArmored
	HitBlocked
	HitLanded
)

func (o HitOutcome) String() string {
	switch o {
	case HitArmored:
		return "armored"
	case HitBlocked:
		return "blocked"
	case HitLanded:
		return "landed"
	}
	return "ignored"
}

// HitResult reports the outcome of TakeHit and the health removed.
type HitResult struct {
	Outcome HitOutcome
	Kind    component.AttackKind
	Damage  float64
}

// Fighter is one player slot's runtime state. It is owned by a single match
// and mutated only from the game loop.
type Fighter struct {
	Def  *prefabs.FighterDefinition
	Slot int

	Position   cp.Vector
	Velocity   cp.Vector
	FacingLeft bool

	Health         component.Meter
	Stamina        component.Meter
	BlockStamina   component.Meter
	ComboPotential component.Meter

	DodgeCooldown    float64
	SpecialCooldown  float64
	DashCancelWindow float64
	// ArmorTime is the remaining armor window in seconds.
	ArmorTime float64

	State         FighterState
	StateTime     float64
	CurrentAttack component.AttackKind

	IsBlocking   bool
	IsInvincible bool
	IsGrounded   bool

	ComboCount   int
	DamageOutput float64
	DamageTaken  float64

	HitFlashFrames int
	Squash         cp.Vector
	AfterImages    []component.AfterImage
	Effects        []component.Effect
	ComboPopups    []component.ComboPopup

	// Events receives attack, special, dash, armor, route and hit events.
	Events *component.CombatEventEmitter
	// Rand drives cosmetic randomness. Nil uses the global source.
	Rand  *rand.Rand
	Debug bool

	cfg             prefabs.MatchConfig
	behavior        archetypeBehavior
	history         *InputHistory
	routeMultiplier float64
	invincibleTime  float64
	prevState       FighterState
	// comboBy is the fighter whose combo this one is caught in.
	comboBy *Fighter
}

// NewFighter places a fighter for the given slot (1 or 2) at its stage start.
func NewFighter(def *prefabs.FighterDefinition, slot int, cfg prefabs.MatchConfig, events *component.CombatEventEmitter) *Fighter {
	f := &Fighter{
		Def:             def,
		Slot:            slot,
		Events:          events,
		cfg:             cfg,
		behavior:        behaviorFor(def.Archetype),
		history:         NewInputHistory(max(longestRoute(def.ComboRoutes), 4)),
		routeMultiplier: 1,
	}
	f.Reset()
	return f
}

// Reset restores the fighter to its match-start state.
func (f *Fighter) Reset() {
	if f == nil {
		return
	}
	x := f.cfg.Stage.P1X
	if f.Slot == 2 {
		x = f.cfg.Stage.P2X
	}
	f.Position = cp.Vector{X: x, Y: f.groundY()}
	f.Velocity = cp.Vector{}
	f.FacingLeft = f.Slot == 2

	f.Health = component.NewMeter(f.Def.MaxHealth())
	f.Stamina = component.NewMeter(resourceMax)
	f.BlockStamina = component.NewMeter(resourceMax)
	f.ComboPotential = component.NewMeter(resourceMax)

	f.DodgeCooldown = 0
	f.SpecialCooldown = 0
	f.DashCancelWindow = 0
	f.ArmorTime = 0
	f.invincibleTime = 0

	f.State = StateIdle
	f.prevState = StateIdle
	f.StateTime = 0
	f.CurrentAttack = ""

	f.IsBlocking = false
	f.IsInvincible = false
	f.IsGrounded = true

	f.ComboCount = 0
	f.comboBy = nil
	f.DamageOutput = 1
	f.DamageTaken = 1

	f.HitFlashFrames = 0
	f.Squash = cp.Vector{X: 1, Y: 1}
	f.AfterImages = nil
	f.Effects = nil
	f.ComboPopups = nil

	f.routeMultiplier = 1
	f.history.Reset()
}

// Name is the definition label.
func (f *Fighter) Name() string {
	if f == nil {
		return ""
	}
	return f.Def.Label()
}

// Config returns the tuning the fighter was built with.
func (f *Fighter) Config() prefabs.MatchConfig {
	return f.cfg
}

func (f *Fighter) groundY() float64 {
	if f.cfg.Stage.GroundY > 0 {
		return f.cfg.Stage.GroundY
	}
	return common.GroundY
}

// Update advances physics, timers, regeneration and the state machine by dt
// seconds of gameplay time.
func (f *Fighter) Update(dt float64) {
	if f == nil || dt <= 0 {
		return
	}

	f.Position = f.Position.Add(f.Velocity.Mult(dt))
	ground := f.groundY()
	if f.Position.Y < ground {
		f.Velocity.Y += f.cfg.Gravity * dt
		f.IsGrounded = false
	} else {
		f.Position.Y = ground
		f.Velocity.Y = 0
		f.IsGrounded = true
	}
	if f.cfg.Stage.Width > 0 {
		f.Position.X = common.Clamp(f.Position.X, 0, f.cfg.Stage.Width)
	}

	f.DodgeCooldown = math.Max(0, f.DodgeCooldown-dt)
	f.SpecialCooldown = math.Max(0, f.SpecialCooldown-dt)
	f.DashCancelWindow = math.Max(0, f.DashCancelWindow-dt)
	f.ArmorTime = math.Max(0, f.ArmorTime-dt)
	if f.invincibleTime > 0 {
		f.invincibleTime -= dt
		if f.invincibleTime <= 0 {
			f.invincibleTime = 0
			f.IsInvincible = false
		}
	}

	if !f.IsBlocking {
		f.BlockStamina.Add(f.cfg.BlockRegen * dt)
		f.Stamina.Add(f.cfg.StaminaRegen * dt)
	}
	if f.State == StateIdle {
		f.ComboPotential.Add(f.cfg.ComboRegen * dt)
	}
	f.history.Tick(dt)

	f.StateTime += dt
	switch f.State {
	case StateAttack:
		if f.StateTime > f.cfg.AttackDuration {
			f.setState(StateIdle)
			f.Velocity = cp.Vector{}
		}
	case StateSpecial:
		if f.StateTime > f.cfg.SpecialDuration {
			f.setState(StateIdle)
		}
	case StateHit:
		if f.StateTime > f.cfg.HitRecovery {
			f.setState(StateIdle)
			f.IsInvincible = false
			f.invincibleTime = 0
			f.dropCombo()
		}
	}
}

// UpdateVisuals decays afterimages, popups, effects, hit flash and squash.
// It runs on real time so it keeps moving during hit-stop.
func (f *Fighter) UpdateVisuals(dt float64) {
	if f == nil {
		return
	}
	f.AfterImages = component.TickAfterImages(f.AfterImages, dt)
	f.ComboPopups = component.TickComboPopups(f.ComboPopups)
	f.Effects = component.TickEffects(f.Effects, dt)
	if f.HitFlashFrames > 0 {
		f.HitFlashFrames--
		if f.HitFlashFrames == 0 {
			f.Squash = cp.Vector{X: 1, Y: 1}
		}
	}
}

func (f *Fighter) setState(next FighterState) {
	if next != StateAttack && next != StateSpecial {
		f.CurrentAttack = ""
		f.routeMultiplier = 1
	}
	f.State = next
	f.StateTime = 0
	if f.prevState != next {
		if f.Debug {
			log.Printf("%s state: %s → %s", f.Name(), f.prevState, next)
		}
		f.prevState = next
	}
}

// Move sets the requested horizontal velocity. Only idle, unblocking fighters
// outside a dash translate; attack, special and hit own their velocity, so
// direction input is dropped in those states.
func (f *Fighter) Move(dirX int) {
	if f == nil || f.State != StateIdle || f.IsBlocking || f.DashCancelWindow > 0 {
		return
	}
	f.Velocity.X = float64(dirX) * f.Def.Speed
}

// Attack starts an attack of the given kind. It is rejected without side
// effects unless the fighter is idle with enough combo potential.
func (f *Fighter) Attack(kind component.AttackKind, dir Direction) bool {
	if f == nil || f.State != StateIdle {
		return false
	}
	if f.ComboPotential.Current < f.cfg.ComboGate {
		return false
	}
	if _, ok := f.Def.AttackFor(kind); !ok {
		return false
	}

	f.ComboPotential.Drain(f.cfg.ComboDecay)
	f.setState(StateAttack)
	f.CurrentAttack = kind

	if f.DashCancelWindow > 0 {
		f.Velocity.X = 0
		f.DashCancelWindow = 0
	}
	switch {
	case dir.X < 0:
		f.Velocity.X = -f.Def.Speed
	case dir.X > 0:
		f.Velocity.X = f.Def.Speed
	}
	switch {
	case dir.Y < 0:
		f.Velocity.Y = -f.cfg.VerticalImpulse
	case dir.Y > 0:
		f.Velocity.Y = f.cfg.VerticalImpulse
	}

	f.pushInput(string(kind))
	f.behavior.attackStarted(f, kind)
	f.emit(component.CombatEvent{Type: component.EventAttackStarted, Attacker: f.Slot, Kind: kind})
	return true
}

// UseSpecial casts the special move if idle and off cooldown. The on-cast
// effect applies immediately.
func (f *Fighter) UseSpecial() bool {
	if f == nil || f.State != StateIdle || f.SpecialCooldown > 0 {
		return false
	}
	f.SpecialCooldown = f.Def.Special.Cooldown
	f.setState(StateSpecial)
	f.CurrentAttack = component.AttackSpecial

	switch f.Def.Special.OnHitEffect {
	case prefabs.OnHitTeleportBehind:
		dir := 1.0
		if f.Slot != 1 {
			dir = -1
		}
		f.Position.X += f.cfg.TeleportOffset * dir
		if f.cfg.Stage.Width > 0 {
			f.Position.X = common.Clamp(f.Position.X, 0, f.cfg.Stage.Width)
		}
	case prefabs.OnHitKnockdown:
		f.Velocity.Y = -f.cfg.KnockdownImpulse
	}

	f.pushInput(string(component.AttackSpecial))
	f.behavior.specialCast(f)
	f.emit(component.CombatEvent{Type: component.EventSpecialCast, Attacker: f.Slot, Kind: component.AttackSpecial})
	return true
}

// Jump launches the fighter when grounded.
func (f *Fighter) Jump() bool {
	if f == nil || !f.IsGrounded {
		return false
	}
	f.Velocity.Y = -f.Def.JumpForce
	f.IsGrounded = false
	return true
}

// Block raises the guard while block stamina remains.
func (f *Fighter) Block() {
	if f == nil || f.BlockStamina.Empty() {
		return
	}
	if !f.IsBlocking {
		f.pushInput("block")
	}
	f.IsBlocking = true
	f.Velocity.X = 0
}

func (f *Fighter) ReleaseBlock() {
	if f == nil {
		return
	}
	f.IsBlocking = false
}

// Dodge grants a short invincibility window and starts the dodge cooldown.
// It does not interact with attack or block state.
func (f *Fighter) Dodge() bool {
	if f == nil || f.DodgeCooldown > 0 {
		return false
	}
	f.IsInvincible = true
	f.invincibleTime = math.Max(f.invincibleTime, f.cfg.DodgeInvincibility)
	f.DodgeCooldown = f.cfg.DodgeCooldown
	return true
}

// Dash bursts horizontally in dir (-1 or 1), costing stamina. The fighter is
// invincible and ignores movement input for the cancel window; an attack
// started inside the window cancels the dash momentum.
func (f *Fighter) Dash(dir int) bool {
	if f == nil || dir == 0 || f.Stamina.Current < f.cfg.Dash.Cost {
		return false
	}
	f.Stamina.Drain(f.cfg.Dash.Cost)
	f.Velocity.X = common.Sign(float64(dir)) * f.Def.Speed * f.cfg.Dash.SpeedFactor
	f.IsInvincible = true
	f.invincibleTime = math.Max(f.invincibleTime, f.cfg.Dash.CancelWindow)
	f.DashCancelWindow = f.cfg.Dash.CancelWindow
	f.AfterImages = f.AfterImages[:0]
	f.leaveAfterImages(f.cfg.Dash.AfterImages, f.cfg.Dash.Opacity)

	f.pushInput("dash")
	f.emit(component.CombatEvent{Type: component.EventDashStarted, Attacker: f.Slot, PosX: f.Position.X, PosY: f.Position.Y})
	return true
}

// SetArmor opens an armor window of at least the given number of frames.
func (f *Fighter) SetArmor(frames int) {
	if f == nil || frames <= 0 {
		return
	}
	f.ArmorTime = math.Max(f.ArmorTime, common.FramesToSeconds(frames))
}

// HasArmor reports whether non-throw hits are currently absorbed.
func (f *Fighter) HasArmor() bool {
	return f != nil && f.ArmorTime > 0
}

// IsCornered reports whether the fighter is pinned near a stage edge.
func (f *Fighter) IsCornered() bool {
	if f == nil || f.cfg.Stage.Width <= 0 {
		return false
	}
	return f.Position.X <= f.cfg.CornerDistance || f.Position.X >= f.cfg.Stage.Width-f.cfg.CornerDistance
}

// IsAttacking reports whether hitboxes are live.
func (f *Fighter) IsAttacking() bool {
	return f != nil && (f.State == StateAttack || f.State == StateSpecial)
}

// IsKO reports whether health is exhausted.
func (f *Fighter) IsKO() bool {
	return f != nil && f.Health.Empty()
}

// IncomingDamage is the damage an attack of kind from attacker deals before
// blocking or combo scaling.
func (f *Fighter) IncomingDamage(kind component.AttackKind, attacker *Fighter) float64 {
	if f == nil || attacker == nil {
		return 0
	}
	atk, ok := attacker.Def.AttackFor(kind)
	if !ok {
		return 0
	}
	return atk.Damage * attacker.DamageOutput * f.DamageTaken
}

// TakeHit resolves an incoming hit from attacker.
//
// Invincible fighters ignore it. Armor turns non-throw hits into an armor
// effect. A raised guard (not against throws) takes BlockChip of the damage
// to health and BlockDrain of it to block stamina without changing state.
// Otherwise the damage is scaled by ComboScaling^attacker.ComboCount, the
// fighter is knocked back away from the attacker and enters hit. The
// attacker's count runs until this fighter recovers to idle.
func (f *Fighter) TakeHit(kind component.AttackKind, attacker *Fighter) HitResult {
	res := HitResult{Kind: kind}
	if f == nil || attacker == nil {
		return res
	}
	if f.IsInvincible {
		return res
	}
	if f.HasArmor() && kind != component.AttackThrow {
		f.ShowEffect(component.EffectArmor)
		res.Outcome = HitArmored
		f.emit(component.CombatEvent{
			Type: component.EventArmorTriggered, Attacker: attacker.Slot, Defender: f.Slot, Kind: kind,
			PosX: f.Position.X, PosY: f.Position.Y - sparkLift,
		})
		return res
	}

	if kind == component.AttackHeavy {
		f.HitFlashFrames = f.cfg.HitStop.HeavyFrames
	} else {
		f.HitFlashFrames = f.cfg.HitStop.LightFrames
	}
	f.Squash = cp.Vector{X: squashX, Y: squashY}

	base := f.IncomingDamage(kind, attacker)
	if f.IsBlocking && !f.BlockStamina.Empty() && kind != component.AttackThrow {
		res.Outcome = HitBlocked
		res.Damage = base * f.cfg.BlockChip
		f.Health.Drain(res.Damage)
		f.BlockStamina.Drain(base * f.cfg.BlockDrain)
		if f.BlockStamina.Empty() {
			f.IsBlocking = false
		}
		f.emitHit(attacker, res)
		return res
	}

	scale := math.Pow(f.cfg.ComboScaling, float64(attacker.ComboCount))
	res.Outcome = HitLanded
	res.Damage = base * scale * attacker.routeMultiplier
	f.Health.Drain(res.Damage)

	dir := -1.0
	if attacker.Position.X < f.Position.X {
		dir = 1
	}
	if atk, ok := attacker.Def.AttackFor(kind); ok {
		f.Velocity.X = dir * atk.Knockback
	}

	attacker.ComboCount++
	f.ComboCount = 0
	f.comboBy = attacker
	f.IsBlocking = false
	f.history.Reset()
	f.setState(StateHit)
	f.emitHit(attacker, res)
	return res
}

// dropCombo ends the combo this fighter was caught in.
func (f *Fighter) dropCombo() {
	if f.comboBy != nil {
		f.comboBy.ComboCount = 0
		f.comboBy = nil
	}
}

func (f *Fighter) emitHit(attacker *Fighter, res HitResult) {
	f.emit(component.CombatEvent{
		Type:     component.EventHitLanded,
		Attacker: attacker.Slot,
		Defender: f.Slot,
		Kind:     res.Kind,
		Blocked:  res.Outcome == HitBlocked,
		Damage:   res.Damage,
		PosX:     f.Position.X,
		PosY:     f.Position.Y - sparkLift,
	})
}

// ShowEffect overlays a short tinted effect on the fighter.
func (f *Fighter) ShowEffect(t component.EffectType) {
	if f == nil {
		return
	}
	e := component.Effect{Type: t, Remaining: common.FramesToSeconds(flashEffectFrames), Color: flashEffectColor}
	if t == component.EffectArmor {
		e.Remaining = common.FramesToSeconds(armorEffectFrames)
		e.Color = armorEffectColor
	}
	f.Effects = append(f.Effects, e)
}

// ActiveHitboxes returns world-space hitboxes while attacking, mirrored when
// facing left.
func (f *Fighter) ActiveHitboxes() []component.Hitbox {
	if !f.IsAttacking() {
		return nil
	}
	out := make([]component.Hitbox, 0, len(f.Def.Hitboxes))
	for i, r := range f.Def.Hitboxes {
		out = append(out, component.Hitbox{
			ID:      fmt.Sprintf("p%d-hit-%d", f.Slot, i),
			Rect:    f.place(r),
			OwnerID: f.Slot,
		})
	}
	return out
}

// Hurtboxes returns world-space hurtboxes.
func (f *Fighter) Hurtboxes() []component.Hurtbox {
	if f == nil {
		return nil
	}
	out := make([]component.Hurtbox, 0, len(f.Def.Hurtboxes))
	for i, r := range f.Def.Hurtboxes {
		out = append(out, component.Hurtbox{
			ID:      fmt.Sprintf("p%d-hurt-%d", f.Slot, i),
			Rect:    f.place(r),
			OwnerID: f.Slot,
		})
	}
	return out
}

func (f *Fighter) place(r common.Rect) common.Rect {
	if f.FacingLeft {
		r = r.MirrorX()
	}
	return r.Offset(f.Position.X, f.Position.Y)
}

// CreateHitSparks builds a spark burst at (x, y) using this fighter's spark
// config.
func (f *Fighter) CreateHitSparks(x, y float64) component.HitSpark {
	cfg := f.Def.HitSpark
	spark := component.HitSpark{X: x, Y: y, Lifetime: component.HitSparkLifetime}
	spark.Particles = make([]component.Particle, cfg.Count)
	for i := range spark.Particles {
		spark.Particles[i] = component.Particle{
			X:        x,
			Y:        y,
			Angle:    f.randFloat() * 2 * math.Pi,
			Speed:    2 + f.randFloat()*cfg.Spread,
			Size:     2 + f.randFloat()*3,
			Color:    cfg.Color,
			Lifetime: component.HitSparkLifetime,
		}
	}
	return spark
}

// Rumble returns the gamepad pattern for being hit by kind.
func (f *Fighter) Rumble(kind component.AttackKind) (prefabs.RumblePattern, bool) {
	if f == nil {
		return prefabs.RumblePattern{}, false
	}
	p, ok := f.Def.Rumble[kind]
	return p, ok
}

// RouteMultiplier is the damage multiplier granted by the combo route that
// started the current attack, or 1.
func (f *Fighter) RouteMultiplier() float64 {
	return f.routeMultiplier
}

// History returns a copy of the recent combat inputs.
func (f *Fighter) History() []string {
	return f.history.Steps()
}

func (f *Fighter) pushInput(step string) {
	f.history.Push(step)
	if step != string(component.AttackLight) && step != string(component.AttackHeavy) && step != string(component.AttackSpecial) {
		return
	}
	route, ok := MatchRoute(f.Def.ComboRoutes, f.history.Steps(), f.IsCornered(), f.IsGrounded)
	if !ok {
		return
	}
	if route.Damage > 0 {
		f.routeMultiplier = route.Damage
	}
	f.ComboPotential.Add(route.MeterGain)
	f.SetArmor(route.ArmorFrames)
	f.ComboPopups = append(f.ComboPopups, component.ComboPopup{
		Text:  route.Name,
		Y:     f.Position.Y - 100,
		Alpha: 1,
		Scale: 1,
	})
	f.history.Reset()
	f.emit(component.CombatEvent{Type: component.EventComboRoute, Attacker: f.Slot, Kind: f.CurrentAttack, Route: route.Name})
}

func (f *Fighter) leaveAfterImages(n int, opacity float64) {
	for i := 0; i < n; i++ {
		f.AfterImages = append(f.AfterImages, component.AfterImage{
			X:          f.Position.X,
			Y:          f.Position.Y,
			Opacity:    opacity,
			FacingLeft: f.FacingLeft,
		})
	}
}

func (f *Fighter) emit(evt component.CombatEvent) {
	if f.Events == nil {
		return
	}
	f.Events.Emit(evt)
}

func (f *Fighter) randFloat() float64 {
	if f.Rand != nil {
		return f.Rand.Float64()
	}
	return rand.Float64()
}
