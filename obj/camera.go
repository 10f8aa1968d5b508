package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stickclash/common"
	"github.com/milk9111/stickclash/prefabs"
)

// Camera frames the midpoint between the two fighters and zooms in a little
// when they are close.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). 0 snaps to the target.
	smooth float64
}

// NewCamera creates a camera with the given logical screen size.
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		screenW: screenW,
		screenH: screenH,
		zoom:    1,
		PosX:    float64(screenW) / 2.0,
		PosY:    float64(screenH) / 2.0,
	}
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// Zoom returns the current camera zoom.
func (c *Camera) Zoom() float64 {
	if c == nil || c.zoom <= 0 {
		return 1
	}
	return c.zoom
}

// Screen returns the logical screen size.
func (c *Camera) Screen() (int, int) {
	return c.screenW, c.screenH
}

// Follow centres the camera on the midpoint of a and b, raised by the
// configured vertical offset, and picks the zoom from their horizontal gap.
func (c *Camera) Follow(a, b cp.Vector, cfg prefabs.CameraConfig) {
	if c == nil {
		return
	}
	mid := a.Lerp(b, 0.5)
	targetX := mid.X
	targetY := mid.Y - cfg.VerticalOffset

	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX = common.Lerp(c.PosX, targetX, c.smooth)
		c.PosY = common.Lerp(c.PosY, targetY, c.smooth)
	}

	c.zoom = 1
	if cfg.CloseZoom > 0 && math.Abs(a.X-b.X) < cfg.CloseDistance {
		c.zoom = cfg.CloseZoom
	}
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	viewW := float64(c.screenW) / c.Zoom()
	viewH := float64(c.screenH) / c.Zoom()
	return c.PosX - viewW/2.0, c.PosY - viewH/2.0
}

// WorldToScreen maps a world point into screen pixels.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	z := c.Zoom()
	return (x-c.PosX)*z + float64(c.screenW)/2.0, (y-c.PosY)*z + float64(c.screenH)/2.0
}
