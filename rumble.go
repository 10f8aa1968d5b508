package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stickclash/system"
)

// applyRumble vibrates the pads of the fighters that were hit this tick.
func applyRumble(p *Poller, reqs []system.RumbleRequest) {
	for _, r := range reqs {
		id, ok := p.gamepadForSlot(r.Slot)
		if !ok || r.Pattern.Duration <= 0 {
			continue
		}
		ebiten.VibrateGamepad(id, &ebiten.VibrateGamepadOptions{
			Duration:        r.Pattern.Duration,
			StrongMagnitude: r.Strong(),
			WeakMagnitude:   r.Weak(),
		})
	}
}
