package main

import (
	"log"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stickclash/obj"
)

const stickDeadzone = 0.3

var padButtons = map[string]ebiten.StandardGamepadButton{
	"RightBottom":      ebiten.StandardGamepadButtonRightBottom,
	"RightRight":       ebiten.StandardGamepadButtonRightRight,
	"RightLeft":        ebiten.StandardGamepadButtonRightLeft,
	"RightTop":         ebiten.StandardGamepadButtonRightTop,
	"FrontTopLeft":     ebiten.StandardGamepadButtonFrontTopLeft,
	"FrontTopRight":    ebiten.StandardGamepadButtonFrontTopRight,
	"FrontBottomLeft":  ebiten.StandardGamepadButtonFrontBottomLeft,
	"FrontBottomRight": ebiten.StandardGamepadButtonFrontBottomRight,
	"CenterLeft":       ebiten.StandardGamepadButtonCenterLeft,
	"CenterRight":      ebiten.StandardGamepadButtonCenterRight,
	"LeftStick":        ebiten.StandardGamepadButtonLeftStick,
	"RightStick":       ebiten.StandardGamepadButtonRightStick,
	"LeftTop":          ebiten.StandardGamepadButtonLeftTop,
	"LeftBottom":       ebiten.StandardGamepadButtonLeftBottom,
	"LeftLeft":         ebiten.StandardGamepadButtonLeftLeft,
	"LeftRight":        ebiten.StandardGamepadButtonLeftRight,
}

type padSource struct {
	index  int
	button ebiten.StandardGamepadButton
}

// Poller copies ebiten keyboard and gamepad state into the input mapper for
// the human-controlled players. Sources are "<KeyName>" or
// "pad<N>.<StandardGamepadButton>".
type Poller struct {
	mapper *obj.InputMapper
	keys   map[string]ebiten.Key
	pads   map[string]padSource
	ids    []ebiten.GamepadID
}

func NewPoller(mapper *obj.InputMapper, players ...obj.PlayerID) *Poller {
	p := &Poller{
		mapper: mapper,
		keys:   map[string]ebiten.Key{},
		pads:   map[string]padSource{},
	}
	for _, player := range players {
		for _, src := range mapper.Sources(player) {
			p.add(src)
		}
	}
	return p
}

func (p *Poller) add(src string) {
	if _, ok := p.keys[src]; ok {
		return
	}
	if _, ok := p.pads[src]; ok {
		return
	}
	if pad, ok := parsePadSource(src); ok {
		p.pads[src] = pad
		return
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(src)); err != nil {
		log.Printf("input: unknown source %q", src)
		return
	}
	p.keys[src] = k
}

func parsePadSource(src string) (padSource, bool) {
	rest, ok := strings.CutPrefix(src, "pad")
	if !ok {
		return padSource{}, false
	}
	idx, name, ok := strings.Cut(rest, ".")
	if !ok {
		return padSource{}, false
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return padSource{}, false
	}
	btn, ok := padButtons[name]
	if !ok {
		return padSource{}, false
	}
	return padSource{index: n, button: btn}, true
}

// Poll samples every tracked source once.
func (p *Poller) Poll() {
	if p == nil {
		return
	}
	for src, k := range p.keys {
		p.mapper.SetDown(src, ebiten.IsKeyPressed(k))
	}
	p.ids = ebiten.AppendGamepadIDs(p.ids[:0])
	for src, pad := range p.pads {
		p.mapper.SetDown(src, p.padPressed(pad))
	}
}

func (p *Poller) padPressed(pad padSource) bool {
	if pad.index >= len(p.ids) {
		return false
	}
	id := p.ids[pad.index]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return false
	}
	if ebiten.IsStandardGamepadButtonPressed(id, pad.button) {
		return true
	}

	// the d-pad directions also read the left stick
	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	switch pad.button {
	case ebiten.StandardGamepadButtonLeftLeft:
		return x < -stickDeadzone
	case ebiten.StandardGamepadButtonLeftRight:
		return x > stickDeadzone
	case ebiten.StandardGamepadButtonLeftTop:
		return y < -stickDeadzone
	case ebiten.StandardGamepadButtonLeftBottom:
		return y > stickDeadzone
	}
	return false
}

// gamepadForSlot returns the pad a fighter slot vibrates, if connected.
func (p *Poller) gamepadForSlot(slot int) (ebiten.GamepadID, bool) {
	idx := slot - 1
	if p == nil || idx < 0 || idx >= len(p.ids) {
		return 0, false
	}
	return p.ids[idx], true
}
