package obj

import (
	"math"
	"math/rand"
	"testing"

	"github.com/milk9111/stickclash/common"
	"github.com/milk9111/stickclash/component"
	"github.com/milk9111/stickclash/prefabs"
)

func testDefinition(name, archetype string) *prefabs.FighterDefinition {
	d := &prefabs.FighterDefinition{
		Name:      name,
		Speed:     200,
		JumpForce: 600,
		Archetype: archetype,
		Attacks: map[component.AttackKind]prefabs.Attack{
			component.AttackLight:   {Damage: 8, Knockback: 120},
			component.AttackHeavy:   {Damage: 20, Knockback: 300},
			component.AttackSpecial: {Damage: 35, Knockback: 420},
			component.AttackThrow:   {Damage: 12, Knockback: 260},
		},
		Special: prefabs.Special{Cooldown: 2},
	}
	prefabs.ApplyDefaults(d)
	return d
}

func newPair(t *testing.T) (*Fighter, *Fighter, *[]component.CombatEvent) {
	t.Helper()
	cfg := prefabs.DefaultMatchConfig()
	events := &component.CombatEventEmitter{}
	var seen []component.CombatEvent
	events.Subscribe(func(evt component.CombatEvent) { seen = append(seen, evt) })
	a := NewFighter(testDefinition("A", ""), 1, cfg, events)
	b := NewFighter(testDefinition("B", ""), 2, cfg, events)
	a.Rand = rand.New(rand.NewSource(1))
	b.Rand = rand.New(rand.NewSource(2))
	return a, b, &seen
}

func TestNewFighterStartState(t *testing.T) {
	a, b, _ := newPair(t)
	if a.Position.X != 200 || b.Position.X != 600 || a.Position.Y != common.GroundY {
		t.Fatalf("start positions = %v / %v", a.Position, b.Position)
	}
	if a.Health.Current != 300 || a.ComboPotential.Current != 100 || a.State != StateIdle {
		t.Fatalf("start state = %+v", a)
	}
	if a.DamageOutput != 1 || a.DamageTaken != 1 {
		t.Fatalf("multipliers = %v/%v", a.DamageOutput, a.DamageTaken)
	}
}

func TestLightAttackScenario(t *testing.T) {
	a, b, _ := newPair(t)
	if !a.Attack(component.AttackLight, Direction{}) {
		t.Fatalf("expected attack to start")
	}
	res := b.TakeHit(component.AttackLight, a)
	if res.Outcome != HitLanded {
		t.Fatalf("outcome = %v", res.Outcome)
	}
	if b.Health.Current != 292 {
		t.Fatalf("defender health = %v, want 292", b.Health.Current)
	}
	if a.ComboPotential.Current != 85 {
		t.Fatalf("attacker combo potential = %v, want 85", a.ComboPotential.Current)
	}
	if a.State != StateAttack || b.State != StateHit {
		t.Fatalf("states = %s / %s", a.State, b.State)
	}
	if a.ComboCount != 1 || b.ComboCount != 0 {
		t.Fatalf("combo counts = %d / %d", a.ComboCount, b.ComboCount)
	}
}

func TestAttackRejectedWithoutSideEffects(t *testing.T) {
	cases := []struct {
		name  string
		setup func(f *Fighter)
	}{
		{"already_attacking", func(f *Fighter) { f.Attack(component.AttackLight, Direction{}) }},
		{"in_hit", func(f *Fighter) { f.setState(StateHit) }},
		{"in_special", func(f *Fighter) { f.UseSpecial() }},
		{"low_combo_potential", func(f *Fighter) { f.ComboPotential.Set(19) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, _, _ := newPair(t)
			c.setup(a)
			state, vel, cp, st := a.State, a.Velocity, a.ComboPotential.Current, a.StateTime
			for _, kind := range []component.AttackKind{component.AttackLight, component.AttackHeavy} {
				if a.Attack(kind, Direction{X: 1, Y: -1}) {
					t.Fatalf("attack %s accepted", kind)
				}
			}
			if a.State != state || a.Velocity != vel || a.ComboPotential.Current != cp || a.StateTime != st {
				t.Fatalf("rejected attack changed fighter")
			}
		})
	}
}

func TestAttackUnknownKindRejected(t *testing.T) {
	a, _, _ := newPair(t)
	delete(a.Def.Attacks, component.AttackThrow)
	if a.Attack(component.AttackThrow, Direction{}) {
		t.Fatalf("attack without a table entry accepted")
	}
	if a.ComboPotential.Current != 100 {
		t.Fatalf("combo potential spent on rejected attack")
	}
}

func TestAttackDirectionalImpulse(t *testing.T) {
	cases := []struct {
		name   string
		dir    Direction
		vx, vy float64
	}{
		{"right", Direction{X: 1}, 200, 0},
		{"left", Direction{X: -1}, -200, 0},
		{"up", Direction{Y: -1}, 0, -300},
		{"down", Direction{Y: 1}, 0, 300},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, _, _ := newPair(t)
			a.Attack(component.AttackLight, c.dir)
			if a.Velocity.X != c.vx || a.Velocity.Y != c.vy {
				t.Fatalf("velocity = %v, want (%v, %v)", a.Velocity, c.vx, c.vy)
			}
		})
	}
}

func TestAttackReturnsToIdleAfterDuration(t *testing.T) {
	a, _, _ := newPair(t)
	a.Attack(component.AttackLight, Direction{})
	a.Update(0.1)
	if a.State != StateAttack {
		t.Fatalf("state after 0.1s = %s", a.State)
	}
	a.Update(0.1)
	if a.State != StateAttack {
		t.Fatalf("state at exactly 0.2s = %s, want attack", a.State)
	}
	a.Update(0.01)
	if a.State != StateIdle {
		t.Fatalf("state after 0.21s = %s, want idle", a.State)
	}
	if a.Velocity.X != 0 || a.Velocity.Y != 0 {
		t.Fatalf("velocity not zeroed: %v", a.Velocity)
	}
}

func TestHitRecovery(t *testing.T) {
	a, b, _ := newPair(t)
	a.Attack(component.AttackLight, Direction{})
	b.TakeHit(component.AttackLight, a)
	b.Update(0.3)
	if b.State != StateHit {
		t.Fatalf("state at 0.3s = %s", b.State)
	}
	b.Update(0.05)
	if b.State != StateIdle || b.IsInvincible {
		t.Fatalf("after recovery state=%s invincible=%v", b.State, b.IsInvincible)
	}
}

func TestComboScaling(t *testing.T) {
	a, b, _ := newPair(t)
	a.ComboCount = 2
	res := b.TakeHit(component.AttackHeavy, a)
	if !common.Approx(res.Damage, 12.8) {
		t.Fatalf("damage = %v, want 12.8", res.Damage)
	}
	if !common.Approx(b.Health.Current, 300-12.8) {
		t.Fatalf("health = %v", b.Health.Current)
	}
	if a.ComboCount != 3 {
		t.Fatalf("attacker combo count = %d, want 3", a.ComboCount)
	}
}

func TestComboEndsWhenDefenderRecovers(t *testing.T) {
	a, b, _ := newPair(t)
	first := b.TakeHit(component.AttackLight, a)
	second := b.TakeHit(component.AttackLight, a)
	if !common.Approx(first.Damage, 8) || !common.Approx(second.Damage, 6.4) {
		t.Fatalf("damage inside combo = %v, %v", first.Damage, second.Damage)
	}
	if a.ComboCount != 2 {
		t.Fatalf("combo count = %d, want 2", a.ComboCount)
	}

	b.Update(0.2)
	if b.State != StateHit || a.ComboCount != 2 {
		t.Fatalf("combo dropped before recovery: state=%s combo=%d", b.State, a.ComboCount)
	}
	for i := 0; i < 120; i++ {
		a.Update(1.0 / 60)
		b.Update(1.0 / 60)
	}
	if b.State != StateIdle || a.ComboCount != 0 {
		t.Fatalf("after recovery state=%s combo=%d", b.State, a.ComboCount)
	}

	fresh := b.TakeHit(component.AttackLight, a)
	if !common.Approx(fresh.Damage, 8) || a.ComboCount != 1 {
		t.Fatalf("fresh combo damage=%v count=%d, want 8 and 1", fresh.Damage, a.ComboCount)
	}
}

func TestMoveOnlyWhileIdle(t *testing.T) {
	tests := []struct {
		name  string
		setup func(a, b *Fighter)
		want  float64
	}{
		{name: "idle", setup: func(a, b *Fighter) {}, want: 200},
		{name: "blocking", setup: func(a, b *Fighter) { a.Block() }, want: 0},
		{name: "attack", setup: func(a, b *Fighter) { a.Attack(component.AttackLight, Direction{}) }, want: 0},
		{name: "special", setup: func(a, b *Fighter) { a.UseSpecial() }, want: 0},
		{name: "hit", setup: func(a, b *Fighter) {
			a.TakeHit(component.AttackLight, b)
			a.Velocity.X = 0
		}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, _ := newPair(t)
			tt.setup(a, b)
			a.Move(1)
			if a.Velocity.X != tt.want {
				t.Fatalf("velocity x = %v, want %v", a.Velocity.X, tt.want)
			}
		})
	}
}

func TestHistoryIsACopy(t *testing.T) {
	a, b, _ := newPair(t)
	a.Attack(component.AttackLight, Direction{})
	got := a.History()

	a.TakeHit(component.AttackLight, b)
	a.Update(0.35)
	if !a.Attack(component.AttackHeavy, Direction{}) {
		t.Fatalf("heavy attack rejected after recovery")
	}
	if len(got) != 1 || got[0] != "light" {
		t.Fatalf("earlier History changed to %q", got)
	}
}

func TestBlockMath(t *testing.T) {
	a, b, _ := newPair(t)
	b.Block()
	res := b.TakeHit(component.AttackLight, a)
	if res.Outcome != HitBlocked {
		t.Fatalf("outcome = %v", res.Outcome)
	}
	if !common.Approx(b.Health.Current, 300-2.4) {
		t.Fatalf("health = %v, want 297.6", b.Health.Current)
	}
	if !common.Approx(b.BlockStamina.Current, 100-5.6) {
		t.Fatalf("block stamina = %v, want 94.4", b.BlockStamina.Current)
	}
	if b.State != StateIdle || !b.IsBlocking {
		t.Fatalf("blocked hit changed state: %s blocking=%v", b.State, b.IsBlocking)
	}
	if b.HitFlashFrames != 8 || b.Squash.X != 1.3 || b.Squash.Y != 0.7 {
		t.Fatalf("blocked hit visuals = %d %v", b.HitFlashFrames, b.Squash)
	}
	if a.ComboCount != 0 {
		t.Fatalf("blocked hit counted toward combo")
	}
}

func TestGuardBreak(t *testing.T) {
	a, b, _ := newPair(t)
	b.BlockStamina.Set(3)
	b.Block()
	b.TakeHit(component.AttackLight, a)
	if !b.BlockStamina.Empty() || b.IsBlocking {
		t.Fatalf("guard should break: stamina=%v blocking=%v", b.BlockStamina.Current, b.IsBlocking)
	}
	b.Block()
	if b.IsBlocking {
		t.Fatalf("block accepted with empty block stamina")
	}
}

func TestThrowBypassesBlockAndArmor(t *testing.T) {
	a, b, _ := newPair(t)
	b.Block()
	b.SetArmor(10)
	res := b.TakeHit(component.AttackThrow, a)
	if res.Outcome != HitLanded || b.Health.Current != 288 {
		t.Fatalf("throw = %+v health=%v", res, b.Health.Current)
	}
}

func TestArmorAbsorbsHit(t *testing.T) {
	a, b, seen := newPair(t)
	b.SetArmor(10)
	res := b.TakeHit(component.AttackHeavy, a)
	if res.Outcome != HitArmored || b.Health.Current != 300 || b.State != StateIdle {
		t.Fatalf("armored hit = %+v health=%v state=%s", res, b.Health.Current, b.State)
	}
	if len(b.Effects) != 1 || b.Effects[0].Type != component.EffectArmor {
		t.Fatalf("effects = %+v", b.Effects)
	}
	last := (*seen)[len(*seen)-1]
	if last.Type != component.EventArmorTriggered {
		t.Fatalf("last event = %+v", last)
	}
	b.Update(common.FramesToSeconds(10) + 0.01)
	if b.HasArmor() {
		t.Fatalf("armor should expire")
	}
}

func TestDodgeInvincibility(t *testing.T) {
	a, b, _ := newPair(t)
	if !b.Dodge() {
		t.Fatalf("dodge rejected")
	}
	if res := b.TakeHit(component.AttackHeavy, a); res.Outcome != HitIgnored || b.Health.Current != 300 {
		t.Fatalf("invincible fighter took %+v", res)
	}
	b.Update(0.3)
	if b.IsInvincible {
		t.Fatalf("i-frames should end after 0.25s")
	}
	if b.Dodge() {
		t.Fatalf("dodge accepted during cooldown")
	}
	b.Update(1.3)
	if !b.Dodge() {
		t.Fatalf("dodge rejected after cooldown")
	}
}

func TestDodgeDuringAttack(t *testing.T) {
	a, _, _ := newPair(t)
	a.Attack(component.AttackLight, Direction{})
	if !a.Dodge() || a.State != StateAttack {
		t.Fatalf("dodge should not interact with attack state")
	}
}

func TestSpecialCooldownGate(t *testing.T) {
	a, _, seen := newPair(t)
	a.Def.Special.OnHitEffect = prefabs.OnHitTeleportBehind
	if !a.UseSpecial() {
		t.Fatalf("first special rejected")
	}
	if a.Position.X != 300 {
		t.Fatalf("teleport x = %v, want 300", a.Position.X)
	}
	a.Update(0.5)
	if a.State != StateIdle {
		t.Fatalf("special should end after 0.4s, state=%s", a.State)
	}
	if a.UseSpecial() {
		t.Fatalf("second special inside cooldown accepted")
	}
	if a.Position.X != 300 {
		t.Fatalf("rejected special moved fighter")
	}
	casts := 0
	for _, evt := range *seen {
		if evt.Type == component.EventSpecialCast {
			casts++
		}
	}
	if casts != 1 {
		t.Fatalf("special casts = %d, want 1", casts)
	}
	a.Update(1.6)
	if !a.UseSpecial() {
		t.Fatalf("special rejected after cooldown")
	}
}

func TestSpecialKnockdownAndSlotDirection(t *testing.T) {
	_, b, _ := newPair(t)
	b.Def.Special.OnHitEffect = prefabs.OnHitKnockdown
	b.UseSpecial()
	if b.Velocity.Y != -900 {
		t.Fatalf("knockdown vy = %v", b.Velocity.Y)
	}

	_, c, _ := newPair(t)
	c.Def.Special.OnHitEffect = prefabs.OnHitTeleportBehind
	c.UseSpecial()
	if c.Position.X != 500 {
		t.Fatalf("player 2 teleport x = %v, want 500", c.Position.X)
	}
}

func TestKnockbackAwayFromAttacker(t *testing.T) {
	a, b, _ := newPair(t)
	b.TakeHit(component.AttackLight, a)
	if b.Velocity.X != 120 {
		t.Fatalf("knockback = %v, want +120", b.Velocity.X)
	}
	a2, b2, _ := newPair(t)
	a2.Position.X, b2.Position.X = 500, 400
	b2.TakeHit(component.AttackHeavy, a2)
	if b2.Velocity.X != -300 {
		t.Fatalf("knockback = %v, want -300", b2.Velocity.X)
	}
}

func TestComebackMultipliersApply(t *testing.T) {
	a, b, _ := newPair(t)
	a.DamageOutput = 1.2
	b.DamageTaken = 0.8
	res := b.TakeHit(component.AttackLight, a)
	if !common.Approx(res.Damage, 8*1.2*0.8) {
		t.Fatalf("damage = %v", res.Damage)
	}
}

func TestDash(t *testing.T) {
	a, _, seen := newPair(t)
	if !a.Dash(1) {
		t.Fatalf("dash rejected")
	}
	if a.Stamina.Current != 85 || a.Velocity.X != 500 || !a.IsInvincible {
		t.Fatalf("dash state stamina=%v vx=%v inv=%v", a.Stamina.Current, a.Velocity.X, a.IsInvincible)
	}
	if len(a.AfterImages) != 3 || a.AfterImages[0].Opacity != 0.7 {
		t.Fatalf("afterimages = %+v", a.AfterImages)
	}
	if (*seen)[len(*seen)-1].Type != component.EventDashStarted {
		t.Fatalf("expected dash event")
	}
	a.Move(-1)
	if a.Velocity.X != 500 {
		t.Fatalf("movement overrode dash inside cancel window")
	}
	a.Attack(component.AttackLight, Direction{})
	if a.Velocity.X != 0 || a.DashCancelWindow != 0 {
		t.Fatalf("attack should cancel dash momentum, vx=%v", a.Velocity.X)
	}

	b, _, _ := newPair(t)
	b.Stamina.Set(10)
	if b.Dash(-1) || b.Stamina.Current != 10 {
		t.Fatalf("dash without stamina accepted")
	}
}

func TestRegeneration(t *testing.T) {
	a, _, _ := newPair(t)
	a.Stamina.Set(50)
	a.BlockStamina.Set(50)
	a.ComboPotential.Set(50)
	a.Update(1)
	if !common.Approx(a.Stamina.Current, 55) || !common.Approx(a.BlockStamina.Current, 60) || !common.Approx(a.ComboPotential.Current, 55) {
		t.Fatalf("regen = %v %v %v", a.Stamina.Current, a.BlockStamina.Current, a.ComboPotential.Current)
	}
	a.Block()
	a.Update(1)
	if !common.Approx(a.BlockStamina.Current, 60) || !common.Approx(a.Stamina.Current, 55) {
		t.Fatalf("regen while blocking = %v %v", a.BlockStamina.Current, a.Stamina.Current)
	}
	a.ReleaseBlock()
	a.Attack(component.AttackLight, Direction{})
	before := a.ComboPotential.Current
	a.Update(0.1)
	if a.ComboPotential.Current != before {
		t.Fatalf("combo potential regenerated while attacking")
	}
}

func TestJump(t *testing.T) {
	a, _, _ := newPair(t)
	if !a.Jump() {
		t.Fatalf("grounded jump rejected")
	}
	if a.Jump() {
		t.Fatalf("air jump accepted")
	}
	a.Update(0.1)
	if a.Position.Y >= common.GroundY || a.IsGrounded {
		t.Fatalf("fighter did not leave the ground: %v", a.Position)
	}
	for i := 0; i < 120; i++ {
		a.Update(1.0 / 60.0)
	}
	if !a.IsGrounded || a.Position.Y != common.GroundY {
		t.Fatalf("fighter did not land: %v", a.Position)
	}
}

func TestStageClamp(t *testing.T) {
	a, _, _ := newPair(t)
	a.Position.X = 5
	a.Velocity.X = -1000
	a.Update(0.1)
	if a.Position.X != 0 {
		t.Fatalf("x = %v, want clamped to 0", a.Position.X)
	}
}

func TestHitboxesOnlyWhileAttacking(t *testing.T) {
	a, _, _ := newPair(t)
	if len(a.ActiveHitboxes()) != 0 {
		t.Fatalf("idle fighter has live hitboxes")
	}
	if len(a.Hurtboxes()) != 2 {
		t.Fatalf("hurtboxes = %d", len(a.Hurtboxes()))
	}
	a.Def.Hitboxes = []common.Rect{{X: 10, Y: -30, Width: 30, Height: 20}}
	a.Attack(component.AttackLight, Direction{})
	boxes := a.ActiveHitboxes()
	if len(boxes) != 1 || boxes[0].Rect.X != 210 || boxes[0].OwnerID != 1 {
		t.Fatalf("hitboxes = %+v", boxes)
	}
	a.FacingLeft = true
	if got := a.ActiveHitboxes()[0].Rect.X; got != 160 {
		t.Fatalf("mirrored hitbox x = %v, want 160", got)
	}
}

func TestComboRouteTriggers(t *testing.T) {
	cfg := prefabs.DefaultMatchConfig()
	events := &component.CombatEventEmitter{}
	var routes []string
	events.Subscribe(func(evt component.CombatEvent) {
		if evt.Type == component.EventComboRoute {
			routes = append(routes, evt.Route)
		}
	})
	a := NewFighter(testDefinition("Kira", prefabs.ArchetypeAssassin), 1, cfg, events)
	b := NewFighter(testDefinition("B", ""), 2, cfg, events)

	a.Attack(component.AttackLight, Direction{})
	a.Update(0.25)
	a.Attack(component.AttackLight, Direction{})
	a.Update(0.25)
	if !a.Attack(component.AttackHeavy, Direction{}) {
		t.Fatalf("heavy rejected")
	}
	if len(routes) != 1 || routes[0] != "light→light→heavy" {
		t.Fatalf("routes = %q", routes)
	}
	if a.RouteMultiplier() != 1.8 {
		t.Fatalf("route multiplier = %v", a.RouteMultiplier())
	}
	if len(a.ComboPopups) != 1 || a.ComboPopups[0].Text != "light→light→heavy" {
		t.Fatalf("popups = %+v", a.ComboPopups)
	}
	if len(a.AfterImages) == 0 {
		t.Fatalf("assassin attack start should leave afterimages")
	}
	res := b.TakeHit(component.AttackHeavy, a)
	if !common.Approx(res.Damage, 36) {
		t.Fatalf("route damage = %v, want 36", res.Damage)
	}
	a.Update(0.25)
	if a.RouteMultiplier() != 1 {
		t.Fatalf("route multiplier should reset after the attack")
	}
}

func TestGrapplerSpecialGrantsArmor(t *testing.T) {
	cfg := prefabs.DefaultMatchConfig()
	g := NewFighter(testDefinition("Brick", prefabs.ArchetypeGrappler), 1, cfg, nil)
	g.UseSpecial()
	if !g.HasArmor() {
		t.Fatalf("grappler special should grant armor")
	}
}

func TestVisualDecay(t *testing.T) {
	a, b, _ := newPair(t)
	b.TakeHit(component.AttackHeavy, a)
	if b.HitFlashFrames != 12 {
		t.Fatalf("heavy flash frames = %d", b.HitFlashFrames)
	}
	for i := 0; i < 12; i++ {
		b.UpdateVisuals(1.0 / 60.0)
	}
	if b.HitFlashFrames != 0 || b.Squash.X != 1 || b.Squash.Y != 1 {
		t.Fatalf("flash=%d squash=%v", b.HitFlashFrames, b.Squash)
	}
}

func TestCreateHitSparks(t *testing.T) {
	a, _, _ := newPair(t)
	spark := a.CreateHitSparks(100, 200)
	if len(spark.Particles) != a.Def.HitSpark.Count || spark.Lifetime != component.HitSparkLifetime {
		t.Fatalf("spark = %+v", spark)
	}
	for _, p := range spark.Particles {
		if p.Angle < 0 || p.Angle >= 2*math.Pi || p.Speed < 2 || p.Speed > 2+a.Def.HitSpark.Spread {
			t.Fatalf("particle out of range: %+v", p)
		}
	}
}

func TestResourceBoundsHold(t *testing.T) {
	a, b, _ := newPair(t)
	rng := rand.New(rand.NewSource(42))
	kinds := []component.AttackKind{component.AttackLight, component.AttackHeavy, component.AttackSpecial, component.AttackThrow}
	fighters := []*Fighter{a, b}
	for tick := 0; tick < 2000; tick++ {
		for i, f := range fighters {
			other := fighters[1-i]
			switch rng.Intn(8) {
			case 0:
				f.Attack(kinds[rng.Intn(2)], Direction{X: rng.Intn(3) - 1})
			case 1:
				f.Block()
			case 2:
				f.ReleaseBlock()
			case 3:
				f.Dodge()
			case 4:
				f.Dash(rng.Intn(2)*2 - 1)
			case 5:
				f.UseSpecial()
			case 6:
				other.TakeHit(kinds[rng.Intn(len(kinds))], f)
			case 7:
				f.Jump()
			}
			f.Update(1.0 / 60.0)
			f.UpdateVisuals(1.0 / 60.0)
			if f.Health.Current < 0 || f.Health.Current > f.Health.Max {
				t.Fatalf("tick %d: health %v", tick, f.Health.Current)
			}
			for _, m := range []component.Meter{f.Stamina, f.BlockStamina, f.ComboPotential} {
				if m.Current < 0 || m.Current > 100 {
					t.Fatalf("tick %d: resource %v out of range", tick, m.Current)
				}
			}
			if f.DodgeCooldown < 0 || f.SpecialCooldown < 0 || f.DashCancelWindow < 0 || f.ArmorTime < 0 {
				t.Fatalf("tick %d: negative timer", tick)
			}
		}
	}
}
