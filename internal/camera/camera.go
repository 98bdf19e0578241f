// Package camera maps between world space and the screen viewport.
package camera

import (
	"github.com/samdwyer/noxistown/internal/config"
	"github.com/samdwyer/noxistown/internal/world"
)

// Camera is a viewport-sized window into world space.
type Camera struct {
	X, Y           float64 // Viewport offset in world pixels
	ViewportWidth  float64
	ViewportHeight float64
	WorldWidth     float64
	WorldHeight    float64
}

// New creates a camera at the world origin.
func New(cfg config.Config, worldWidth, worldHeight float64) *Camera {
	return &Camera{
		ViewportWidth:  float64(cfg.ViewportWidth),
		ViewportHeight: float64(cfg.ViewportHeight),
		WorldWidth:     worldWidth,
		WorldHeight:    worldHeight,
	}
}

// SetWorld changes the world size, e.g. when the active location changes,
// and re-clamps the current offset.
func (c *Camera) SetWorld(width, height float64) {
	c.WorldWidth = width
	c.WorldHeight = height
	c.clamp()
}

// Follow centers the target in the viewport and clamps the offset so the
// viewport stays inside the world. When the world is smaller than the
// viewport the offset on that axis is 0.
func (c *Camera) Follow(target world.Rect) {
	cx, cy := target.Center()
	c.X = cx - c.ViewportWidth/2
	c.Y = cy - c.ViewportHeight/2
	c.clamp()
}

func (c *Camera) clamp() {
	c.X = max(0, min(c.X, c.WorldWidth-c.ViewportWidth))
	c.Y = max(0, min(c.Y, c.WorldHeight-c.ViewportHeight))
}

// WorldToScreen converts a world point to viewport coordinates.
func (c *Camera) WorldToScreen(worldX, worldY float64) (float64, float64) {
	return worldX - c.X, worldY - c.Y
}

// ScreenToWorld converts a viewport point back to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float64) (float64, float64) {
	return screenX + c.X, screenY + c.Y
}

// IsVisible reports whether a world rect overlaps the viewport. Used for
// draw culling only.
func (c *Camera) IsVisible(x, y, w, h float64) bool {
	return x+w > c.X &&
		x < c.X+c.ViewportWidth &&
		y+h > c.Y &&
		y < c.Y+c.ViewportHeight
}

// Viewport returns the visible world rect.
func (c *Camera) Viewport() world.Rect {
	return world.Rect{X: c.X, Y: c.Y, W: c.ViewportWidth, H: c.ViewportHeight}
}
