package component

import (
	"math"
	"testing"
)

func TestTickHitSparks(t *testing.T) {
	sparks := []HitSpark{
		{X: 10, Y: 10, Lifetime: HitSparkLifetime, Particles: []Particle{{X: 10, Y: 10, Angle: 0, Speed: 2, Lifetime: HitSparkLifetime}}},
		{X: 0, Y: 0, Lifetime: 0.05},
	}

	sparks = TickHitSparks(sparks, 0.1)
	if len(sparks) != 1 {
		t.Fatalf("expected expired burst to be dropped, got %d bursts", len(sparks))
	}
	p := sparks[0].Particles[0]
	if math.Abs(p.X-12) > 1e-9 || p.Y != 10 {
		t.Fatalf("particle moved to (%f,%f), want (12,10)", p.X, p.Y)
	}

	for i := 0; i < 5; i++ {
		sparks = TickHitSparks(sparks, 0.1)
	}
	if len(sparks) != 0 {
		t.Fatalf("expected all bursts expired, got %d", len(sparks))
	}
}

func TestTickComboPopups(t *testing.T) {
	popups := []ComboPopup{{Text: "2 HIT", Y: 100, Alpha: 0.02, Scale: 1}}

	popups = TickComboPopups(popups)
	if len(popups) != 1 || popups[0].Y != 99 || math.Abs(popups[0].Scale-1.01) > 1e-9 {
		t.Fatalf("unexpected popup after one step: %+v", popups)
	}
	popups = TickComboPopups(popups)
	if len(popups) != 0 {
		t.Fatalf("expected popup to fade out, got %+v", popups)
	}
}

func TestTickAfterImagesAndEffects(t *testing.T) {
	images := []AfterImage{{Opacity: 0.7}, {Opacity: 0.2}}
	images = TickAfterImages(images, 0.3)
	if len(images) != 1 || math.Abs(images[0].Opacity-0.4) > 1e-9 {
		t.Fatalf("unexpected afterimages: %+v", images)
	}

	effects := []Effect{{Type: EffectArmor, Remaining: 0.1}, {Type: EffectFlash, Remaining: 1}}
	effects = TickEffects(effects, 0.1)
	if len(effects) != 1 || effects[0].Type != EffectFlash {
		t.Fatalf("unexpected effects: %+v", effects)
	}
}
