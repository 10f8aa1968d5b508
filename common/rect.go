package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned box in world units. Y grows downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// BB converts the rect into a chipmunk bounding box.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}

// Intersects reports whether two non-empty rects overlap. Touching edges count.
func (r Rect) Intersects(other Rect) bool {
	if r.Width <= 0 || r.Height <= 0 || other.Width <= 0 || other.Height <= 0 {
		return false
	}
	return r.BB().Intersects(other.BB())
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// MirrorX reflects a rect defined relative to an origin across the vertical axis.
func (r Rect) MirrorX() Rect {
	r.X = -r.X - r.Width
	return r
}

// Center returns the rect midpoint.
func (r Rect) Center() cp.Vector {
	return r.BB().Center()
}
