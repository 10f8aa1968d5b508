package system

import (
	"fmt"
	"image/color"

	"github.com/milk9111/stickclash/common"
	"github.com/milk9111/stickclash/component"
	"github.com/milk9111/stickclash/obj"
)

// Surface is the 2D drawing target the match renders into. Save and Restore
// bracket transform and alpha changes.
type Surface interface {
	Save()
	Restore()
	Translate(x, y float64)
	Scale(sx, sy float64)
	SetAlpha(a float64)

	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, width float64, c color.Color)
	StrokeLine(x1, y1, x2, y2, width float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	Text(s string, x, y float64, c color.Color)
}

// sparkMargin keeps sparks near the view edge drawn while the screen shakes.
const sparkMargin = 60.0

var (
	backgroundColor = color.RGBA{R: 0x1e, G: 0x1e, B: 0x28, A: 0xff}
	groundColor     = color.RGBA{R: 0x55, G: 0x55, B: 0x66, A: 0xff}
	figureColor     = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	weaponColor     = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	hitFlashColor   = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0x80}
	barBackColor    = color.RGBA{A: 0x80}
	healthHigh      = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	healthMid       = color.RGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
	healthLow       = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	staminaColor    = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	hitboxColor     = color.RGBA{G: 0xff, A: 0xb3}
	hurtboxColor    = color.RGBA{R: 0xff, A: 0x80}
	contactColor    = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
	textColor       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Render draws one frame: shake, camera transform, fighters, debug overlays
// and sparks in world space, then the HUD in screen space.
func Render(m *Match, s Surface) {
	if m == nil || s == nil {
		return
	}
	s.Clear(backgroundColor)

	s.Save()
	if dx, dy := m.ShakeOffset(); dx != 0 || dy != 0 {
		s.Translate(dx, dy)
	}
	w, h := m.Camera.Screen()
	s.Translate(float64(w)/2, float64(h)/2)
	s.Scale(m.Camera.Zoom(), m.Camera.Zoom())
	s.Translate(-m.Camera.PosX, -m.Camera.PosY)

	drawStage(m, s)
	for _, f := range []*obj.Fighter{m.P1, m.P2} {
		drawFighter(s, f)
	}
	if m.Debug {
		for _, f := range []*obj.Fighter{m.P1, m.P2} {
			drawDebug(s, f)
		}
		for _, rec := range m.Resolver.Recent {
			strokeRect(s, rec.Hit, 2, contactColor)
			strokeRect(s, rec.Hurt, 2, contactColor)
		}
	}
	drawHitSparks(s, m.Camera, m.HitSparks)
	s.Restore()

	drawHUD(m, s)
}

func drawStage(m *Match, s Surface) {
	width := m.Config.Stage.Width
	if width <= 0 {
		width = common.BaseWidth
	}
	ground := m.Config.Stage.GroundY
	if ground <= 0 {
		ground = common.GroundY
	}
	s.StrokeLine(-width, ground+20, width*2, ground+20, 2, groundColor)
}

func drawFighter(s Surface, f *obj.Fighter) {
	x, y := f.Position.X, f.Position.Y
	trail := f.Def.Visuals.TrailColor

	for _, img := range f.AfterImages {
		s.Save()
		s.Translate(img.X, img.Y)
		s.SetAlpha(img.Opacity)
		drawStickFigure(s, img.FacingLeft, false)
		s.Restore()
	}

	s.Save()
	s.SetAlpha(0.7)
	s.StrokeLine(x-30, y, x+30, y, 3, trail)
	s.Restore()

	s.Save()
	s.Translate(x, y)
	if f.Squash.X != 1 || f.Squash.Y != 1 {
		s.Scale(f.Squash.X, f.Squash.Y)
	}
	if f.State == obj.StateAttack {
		s.Save()
		s.SetAlpha(0.7)
		wx1, wx2 := 15.0, 30.0
		if f.FacingLeft {
			wx1, wx2 = -wx1, -wx2
		}
		s.StrokeLine(wx1, -10, wx2, -20, 3, trail)
		s.Restore()
	}
	drawStickFigure(s, f.FacingLeft, f.Def.Weapon != "")
	s.Restore()

	if f.HitFlashFrames > 0 {
		s.FillRect(x-30, y-60, 60, 90, hitFlashColor)
	}
	for _, e := range f.Effects {
		s.FillRect(x-20, y-40, 40, 40, e.Color)
	}

	drawBars(s, f)
	for _, p := range f.ComboPopups {
		s.Save()
		s.Translate(x, p.Y)
		s.Scale(p.Scale, p.Scale)
		s.SetAlpha(p.Alpha)
		s.Text(p.Text, -float64(len(p.Text))*3.5, 0, textColor)
		s.Restore()
	}
}

func drawStickFigure(s Surface, facingLeft, weapon bool) {
	s.FillCircle(0, -40, 10, figureColor)
	s.StrokeLine(0, -30, 0, 0, 2, figureColor)
	s.StrokeLine(0, -20, -15, -10, 2, figureColor)
	s.StrokeLine(0, -20, 15, -10, 2, figureColor)
	s.StrokeLine(0, 0, -15, 20, 2, figureColor)
	s.StrokeLine(0, 0, 15, 20, 2, figureColor)
	if weapon {
		dir := 1.0
		if facingLeft {
			dir = -1
		}
		s.StrokeLine(15*dir, -10, 30*dir, -20, 2, weaponColor)
	}
}

func drawBars(s Surface, f *obj.Fighter) {
	x, y := f.Position.X, f.Position.Y
	s.FillRect(x-35, y-80, 70, 10, barBackColor)
	s.FillRect(x-33, y-78, 66*f.Health.Fraction(), 6, healthColor(f.Health.Fraction()))
	if !f.Stamina.Full() {
		s.FillRect(x-35, y-65, 70, 5, barBackColor)
		s.FillRect(x-33, y-64, 66*f.Stamina.Fraction(), 3, staminaColor)
	}
}

func healthColor(frac float64) color.RGBA {
	switch {
	case frac > 0.5:
		return healthHigh
	case frac > 0.25:
		return healthMid
	}
	return healthLow
}

func drawDebug(s Surface, f *obj.Fighter) {
	for _, hb := range f.ActiveHitboxes() {
		strokeRect(s, hb.Rect, 2, hitboxColor)
	}
	for _, hu := range f.Hurtboxes() {
		strokeRect(s, hu.Rect, 2, hurtboxColor)
	}
	s.Text(fmt.Sprintf("State: %s (%.2fs)", f.State, f.StateTime), f.Position.X-40, f.Position.Y-60, textColor)
}

func strokeRect(s Surface, r common.Rect, width float64, c color.Color) {
	s.StrokeRect(r.X, r.Y, r.Width, r.Height, width, c)
}

// drawHitSparks skips particles outside the camera view.
func drawHitSparks(s Surface, cam *obj.Camera, sparks []component.HitSpark) {
	w, h := cam.Screen()
	left, top := cam.ViewTopLeft()
	right := left + float64(w)/cam.Zoom()
	bottom := top + float64(h)/cam.Zoom()
	for _, spark := range sparks {
		for _, p := range spark.Particles {
			if p.Lifetime <= 0 {
				continue
			}
			if p.X+p.Size < left-sparkMargin || p.X > right+sparkMargin || p.Y+p.Size < top-sparkMargin || p.Y > bottom+sparkMargin {
				continue
			}
			s.Save()
			s.SetAlpha(p.Lifetime / component.HitSparkLifetime)
			s.FillRect(p.X, p.Y, p.Size, p.Size, p.Color)
			s.Restore()
		}
	}
}

func drawHUD(m *Match, s Surface) {
	w, _ := m.Camera.Screen()
	const barW, barH, margin = 300.0, 14.0, 20.0

	for i, f := range []*obj.Fighter{m.P1, m.P2} {
		x := margin
		if i == 1 {
			x = float64(w) - margin - barW
		}
		frac := f.Health.Fraction()
		s.FillRect(x, margin, barW, barH, barBackColor)
		fillX := x
		if i == 1 {
			fillX = x + barW*(1-frac)
		}
		s.FillRect(fillX, margin, barW*frac, barH, healthColor(frac))
		s.FillRect(x, margin+barH+4, barW*f.ComboPotential.Fraction(), 4, staminaColor)
		s.Text(f.Name(), x, margin+barH+20, textColor)

		// Screen space so the counter keeps its size under zoom.
		if f.ComboCount > 1 {
			cx, cy := m.Camera.WorldToScreen(f.Position.X, f.Position.Y-100)
			s.Text(fmt.Sprintf("%d HIT", f.ComboCount), cx-20, cy, textColor)
		}
	}

	if m.Debug {
		s.Text(fmt.Sprintf("Frame %d", m.Resolver.Frame()), float64(w)/2-30, margin, textColor)
	}

	if m.Over {
		msg := "DRAW"
		if winner := m.Fighter(m.Winner); winner != nil {
			msg = fmt.Sprintf("K.O.  %s WINS", winner.Name())
		}
		s.Text(msg, float64(w)/2-float64(len(msg))*3.5, 120, textColor)
	}
}
