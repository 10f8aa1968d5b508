package component

import (
	"image/color"
	"math"
)

// Particle is a single spark fragment travelling outward from its spawn point.
type Particle struct {
	X, Y     float64
	Angle    float64
	Speed    float64
	Size     float64
	Color    color.RGBA
	Lifetime float64
}

// HitSpark is an engine-owned burst of particles spawned where a hit lands.
type HitSpark struct {
	X, Y      float64
	Lifetime  float64
	Particles []Particle
}

// HitSparkLifetime is how long a spark burst lives, in seconds.
const HitSparkLifetime = 0.5

// particleTravel scales particle speed into world units per second.
const particleTravel = 10.0

// TickHitSparks advances particles by dt seconds and drops expired bursts.
func TickHitSparks(sparks []HitSpark, dt float64) []HitSpark {
	out := sparks[:0]
	for _, s := range sparks {
		s.Lifetime -= dt
		if s.Lifetime <= 0 {
			continue
		}
		for i := range s.Particles {
			p := &s.Particles[i]
			p.X += math.Cos(p.Angle) * p.Speed * particleTravel * dt
			p.Y += math.Sin(p.Angle) * p.Speed * particleTravel * dt
			p.Lifetime -= dt
		}
		out = append(out, s)
	}
	return out
}

// ComboPopup is floating text above a fighter ("3 HIT", route names).
// It decays by a fixed step per tick rather than by elapsed time.
type ComboPopup struct {
	Text  string
	Y     float64
	Alpha float64
	Scale float64
}

// TickComboPopups rises, fades and grows each popup by one step.
func TickComboPopups(popups []ComboPopup) []ComboPopup {
	out := popups[:0]
	for _, p := range popups {
		p.Y--
		p.Alpha -= 0.01
		p.Scale += 0.01
		if p.Alpha <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AfterImage is a fading silhouette left behind by dashes and fast attacks.
type AfterImage struct {
	X, Y       float64
	Opacity    float64
	FacingLeft bool
}

// TickAfterImages fades afterimages by dt and drops the invisible ones.
func TickAfterImages(images []AfterImage, dt float64) []AfterImage {
	out := images[:0]
	for _, img := range images {
		img.Opacity -= dt
		if img.Opacity <= 0 {
			continue
		}
		out = append(out, img)
	}
	return out
}

// EffectType names a cosmetic overlay on a fighter.
type EffectType string

const (
	EffectArmor EffectType = "armor"
	EffectFlash EffectType = "flash"
)

// Effect is a tinted overlay drawn over a fighter for a short time.
type Effect struct {
	Type      EffectType
	Remaining float64
	Color     color.RGBA
}

// TickEffects counts effects down by dt and drops the expired ones.
func TickEffects(effects []Effect, dt float64) []Effect {
	out := effects[:0]
	for _, e := range effects {
		e.Remaining -= dt
		if e.Remaining <= 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}
