package system

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/milk9111/stickclash/common"
	"github.com/milk9111/stickclash/component"
	"github.com/milk9111/stickclash/obj"
	"github.com/milk9111/stickclash/prefabs"
)

// ErrMissingFighters is returned when a match is started without both fighters.
var ErrMissingFighters = errors.New("system: match needs two fighters")

// Controller feeds raw input into the match before each tick's sampling.
type Controller interface {
	Drive(m *Match) error
}

// Match owns both fighters and every shared effect for one bout. It runs on
// the game loop only; nothing in it is safe for concurrent use.
type Match struct {
	P1, P2   *obj.Fighter
	Input    *obj.InputMapper
	Camera   *obj.Camera
	Events   *component.CombatEventEmitter
	Resolver *component.CombatResolver
	Config   prefabs.MatchConfig

	Controllers []Controller

	HitSparks []component.HitSpark
	// ScreenShake is the remaining shake time in seconds.
	ScreenShake   float64
	HitStopFrames int
	// Underdog is the slot currently receiving comeback multipliers, or 0.
	Underdog int

	Over   bool
	Winner int

	Ticks   int
	Elapsed float64
	Stats   [2]FighterStats

	Debug bool
	Rand  *rand.Rand

	rumbles []RumbleRequest
}

// FighterStats accumulates per-slot counters for the match summary.
type FighterStats struct {
	HitsLanded   int
	HitsBlocked  int
	ArmorAbsorbs int
	DamageDealt  float64
	MaxCombo     int
	Specials     int
	Dashes       int
	Routes       []string
}

// NewMatch validates both definitions and sets up a fresh bout. A nil input
// mapper gets the default bindings.
func NewMatch(p1, p2 *prefabs.FighterDefinition, cfg prefabs.MatchConfig, input *obj.InputMapper) (*Match, error) {
	if p1 == nil || p2 == nil {
		return nil, ErrMissingFighters
	}
	for i, def := range []*prefabs.FighterDefinition{p1, p2} {
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("system: player %d: %w", i+1, err)
		}
	}
	if input == nil {
		input = obj.NewInputMapper(nil)
	}

	m := &Match{
		Input:    input,
		Camera:   obj.NewCamera(common.BaseWidth, common.BaseHeight),
		Events:   &component.CombatEventEmitter{},
		Resolver: component.NewCombatResolver(),
		Config:   cfg,
	}
	m.P1 = obj.NewFighter(p1, 1, cfg, m.Events)
	m.P2 = obj.NewFighter(p2, 2, cfg, m.Events)
	m.Events.Subscribe(m.onCombatEvent)
	m.snapCamera()
	return m, nil
}

// SetDebug toggles debug overlays and state-transition logging.
func (m *Match) SetDebug(on bool) {
	if m == nil {
		return
	}
	m.Debug = on
	m.P1.Debug = on
	m.P2.Debug = on
}

// SetRand makes every random draw in the match come from r.
func (m *Match) SetRand(r *rand.Rand) {
	if m == nil {
		return
	}
	m.Rand = r
	m.P1.Rand = r
	m.P2.Rand = r
}

// Fighter returns the fighter in slot 1 or 2.
func (m *Match) Fighter(slot int) *obj.Fighter {
	if m == nil {
		return nil
	}
	switch slot {
	case 1:
		return m.P1
	case 2:
		return m.P2
	}
	return nil
}

// Opponent returns the other slot's fighter.
func (m *Match) Opponent(slot int) *obj.Fighter {
	if slot == 1 {
		return m.Fighter(2)
	}
	return m.Fighter(1)
}

// Rematch resets both fighters and all match state.
func (m *Match) Rematch() {
	if m == nil {
		return
	}
	m.P1.Reset()
	m.P2.Reset()
	m.Input.ReleaseAll()
	m.Resolver = component.NewCombatResolver()
	m.HitSparks = nil
	m.ScreenShake = 0
	m.HitStopFrames = 0
	m.Underdog = 0
	m.Over = false
	m.Winner = 0
	m.Ticks = 0
	m.Elapsed = 0
	m.Stats = [2]FighterStats{}
	m.rumbles = nil
	m.snapCamera()
}

// snapCamera frames the fighters at once, then restores the configured
// smoothing for later ticks.
func (m *Match) snapCamera() {
	m.Camera.SetSmooth(0)
	m.Camera.Follow(m.P1.Position, m.P2.Position, m.Config.Camera)
	m.Camera.SetSmooth(m.Config.Camera.Smooth)
}

// Tick advances the match by dt seconds of wall time.
func (m *Match) Tick(dt float64) {
	if m == nil || dt <= 0 {
		return
	}
	if m.Config.MaxStep > 0 && dt > m.Config.MaxStep {
		dt = m.Config.MaxStep
	}
	m.Ticks++
	m.Elapsed += dt

	for _, c := range m.Controllers {
		if c == nil {
			continue
		}
		if err := c.Drive(m); err != nil && m.Debug {
			log.Printf("match: controller error: %v", err)
		}
	}

	s1 := m.Input.Sample(obj.Player1)
	s2 := m.Input.Sample(obj.Player2)

	gameDt := dt
	if m.HitStopFrames > 0 {
		gameDt = dt * m.Config.HitStop.TimeScale
		m.HitStopFrames--
	}

	if !m.Over {
		dispatchInput(m.P1, s1)
		dispatchInput(m.P2, s2)
	}

	m.P1.Update(gameDt)
	m.P2.Update(gameDt)
	m.faceEachOther()

	m.resolveHits()
	m.Underdog = ApplyComeback(m.P1, m.P2, m.Config.Comeback)
	m.checkKO()

	m.P1.UpdateVisuals(dt)
	m.P2.UpdateVisuals(dt)
	m.HitSparks = component.TickHitSparks(m.HitSparks, dt)
	m.ScreenShake = math.Max(0, m.ScreenShake-dt)
	m.Resolver.Tick()
	m.Camera.Follow(m.P1.Position, m.P2.Position, m.Config.Camera)
}

// dispatchInput turns one sampled input into fighter calls: movement, guard,
// dodge (dashing when a horizontal direction is held), at most one attack in
// light, heavy, throw order, special only when no attack was requested, then
// jump.
func dispatchInput(f *obj.Fighter, s obj.InputSample) {
	if !f.IsBlocking {
		f.Move(s.Dir.X)
	}

	if s.Block {
		f.Block()
	} else {
		f.ReleaseBlock()
	}

	if s.Dodge && f.Dodge() && s.Dir.X != 0 {
		f.Dash(s.Dir.X)
	}

	switch {
	case s.Light:
		f.Attack(component.AttackLight, s.Dir)
	case s.Heavy:
		f.Attack(component.AttackHeavy, s.Dir)
	case s.Throw:
		f.Attack(component.AttackThrow, s.Dir)
	case s.Special:
		f.UseSpecial()
	}

	if s.Jump && !f.IsBlocking {
		f.Jump()
	}
}

func (m *Match) faceEachOther() {
	m.P1.FacingLeft = m.P1.Position.X > m.P2.Position.X
	m.P2.FacingLeft = m.P2.Position.X > m.P1.Position.X
}

// resolveHits checks P1 against P2 and then P2 against P1. Each attacker hits
// at most once per tick; overlap that persists hits again next tick.
func (m *Match) resolveHits() {
	pairs := [2][2]*obj.Fighter{{m.P1, m.P2}, {m.P2, m.P1}}
	for _, pair := range pairs {
		attacker, defender := pair[0], pair[1]
		if !attacker.IsAttacking() {
			continue
		}
		if _, ok := m.Resolver.Resolve(attacker, defender); !ok {
			continue
		}
		defender.TakeHit(attacker.CurrentAttack, attacker)
	}
}

func (m *Match) checkKO() {
	if m.Over {
		return
	}
	ko1, ko2 := m.P1.IsKO(), m.P2.IsKO()
	if !ko1 && !ko2 {
		return
	}
	m.Over = true
	switch {
	case ko1 && ko2:
		m.Winner = 0
	case ko2:
		m.Winner = 1
	default:
		m.Winner = 2
	}
	loser := 0
	if m.Winner != 0 {
		loser = 3 - m.Winner
	}
	m.Events.Emit(component.CombatEvent{Type: component.EventKO, Attacker: m.Winner, Defender: loser})
}

func (m *Match) onCombatEvent(evt component.CombatEvent) {
	stats := m.stats(evt.Attacker)
	switch evt.Type {
	case component.EventHitLanded:
		// Hits landing inside an open window do not extend it.
		if m.HitStopFrames == 0 {
			m.HitStopFrames = m.Config.HitStop.LightFrames
			if evt.Kind == component.AttackHeavy {
				m.HitStopFrames = m.Config.HitStop.HeavyFrames
			}
		}
		if evt.Kind == component.AttackHeavy && !evt.Blocked {
			m.ScreenShake = m.Config.ScreenShake.Duration
		}
		if attacker := m.Fighter(evt.Attacker); attacker != nil {
			m.HitSparks = append(m.HitSparks, attacker.CreateHitSparks(evt.PosX, evt.PosY))
			if stats != nil {
				stats.MaxCombo = max(stats.MaxCombo, attacker.ComboCount)
			}
		}
		if defender := m.Fighter(evt.Defender); defender != nil {
			if p, ok := defender.Rumble(evt.Kind); ok {
				m.rumbles = append(m.rumbles, RumbleRequest{Slot: evt.Defender, Pattern: p})
			}
		}
		if stats != nil {
			stats.DamageDealt += evt.Damage
			if evt.Blocked {
				stats.HitsBlocked++
			} else {
				stats.HitsLanded++
			}
		}
	case component.EventArmorTriggered:
		if s := m.stats(evt.Defender); s != nil {
			s.ArmorAbsorbs++
		}
	case component.EventSpecialCast:
		if stats != nil {
			stats.Specials++
		}
	case component.EventDashStarted:
		if stats != nil {
			stats.Dashes++
		}
	case component.EventComboRoute:
		if stats != nil {
			stats.Routes = append(stats.Routes, evt.Route)
		}
	}
}

func (m *Match) stats(slot int) *FighterStats {
	if slot < 1 || slot > 2 {
		return nil
	}
	return &m.Stats[slot-1]
}

// ShakeOffset returns this frame's screen-shake translation.
func (m *Match) ShakeOffset() (float64, float64) {
	if m == nil || m.ScreenShake <= 0 {
		return 0, 0
	}
	intensity := m.ScreenShake * m.Config.ScreenShake.Intensity
	return (m.randFloat() - 0.5) * intensity, (m.randFloat() - 0.5) * intensity
}

func (m *Match) randFloat() float64 {
	if m.Rand != nil {
		return m.Rand.Float64()
	}
	return rand.Float64()
}
