package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

type surfaceState struct {
	geom  ebiten.GeoM
	alpha float64
}

// Surface draws onto an ebiten image with a canvas-style transform stack.
// Transforms are axis aligned, so rects stay rects after mapping.
type Surface struct {
	dst   *ebiten.Image
	cur   surfaceState
	stack []surfaceState
	face  ebtext.Face
}

func NewSurface() *Surface {
	return &Surface{
		cur:  surfaceState{alpha: 1},
		face: ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

// Bind targets dst for the next frame and resets the transform stack.
func (s *Surface) Bind(dst *ebiten.Image) *Surface {
	s.dst = dst
	s.cur = surfaceState{alpha: 1}
	s.stack = s.stack[:0]
	return s
}

func (s *Surface) Save() {
	s.stack = append(s.stack, s.cur)
}

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) Translate(x, y float64) {
	var t ebiten.GeoM
	t.Translate(x, y)
	t.Concat(s.cur.geom)
	s.cur.geom = t
}

func (s *Surface) Scale(sx, sy float64) {
	var t ebiten.GeoM
	t.Scale(sx, sy)
	t.Concat(s.cur.geom)
	s.cur.geom = t
}

func (s *Surface) SetAlpha(a float64) {
	s.cur.alpha = math.Max(0, math.Min(1, a))
}

func (s *Surface) Clear(c color.Color) {
	s.dst.Fill(c)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	x0, y0, x1, y1 := s.rect(x, y, w, h)
	vector.FillRect(s.dst, x0, y0, x1-x0, y1-y0, s.tint(c), false)
}

func (s *Surface) StrokeRect(x, y, w, h, width float64, c color.Color) {
	x0, y0, x1, y1 := s.rect(x, y, w, h)
	vector.StrokeRect(s.dst, x0, y0, x1-x0, y1-y0, s.width(width), s.tint(c), false)
}

func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	ax, ay := s.cur.geom.Apply(x1, y1)
	bx, by := s.cur.geom.Apply(x2, y2)
	vector.StrokeLine(s.dst, float32(ax), float32(ay), float32(bx), float32(by), s.width(width), s.tint(c), true)
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	x, y := s.cur.geom.Apply(cx, cy)
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), s.width(r), s.tint(c), true)
}

func (s *Surface) Text(str string, x, y float64, c color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.cur.geom)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(s.cur.alpha))
	ebtext.Draw(s.dst, str, s.face, op)
}

func (s *Surface) rect(x, y, w, h float64) (float32, float32, float32, float32) {
	ax, ay := s.cur.geom.Apply(x, y)
	bx, by := s.cur.geom.Apply(x+w, y+h)
	return float32(math.Min(ax, bx)), float32(math.Min(ay, by)), float32(math.Max(ax, bx)), float32(math.Max(ay, by))
}

// width maps a length through the current horizontal scale.
func (s *Surface) width(v float64) float32 {
	return float32(v * math.Abs(s.cur.geom.Element(0, 0)))
}

func (s *Surface) tint(c color.Color) color.Color {
	if s.cur.alpha >= 1 {
		return c
	}
	r, g, b, a := c.RGBA()
	k := s.cur.alpha
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(a) * k),
	}
}
