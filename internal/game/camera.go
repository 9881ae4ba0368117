package game

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Camera follows the player with exponential smoothing.
type Camera struct {
	X, Y             float64 // Top-left world offset
	TargetX, TargetY float64
	ViewW, ViewH     float64
	FollowSpeed      float64 // Fraction of the remaining distance covered per update
}

// NewCamera creates a camera with the given viewport.
func NewCamera(viewW, viewH, followSpeed float64) Camera {
	return Camera{ViewW: viewW, ViewH: viewH, FollowSpeed: followSpeed}
}

// Update moves the camera toward the target that centers (px, py).
// Target and position are clamped to [0, levelSize-viewSize] independently.
func (c *Camera) Update(px, py, levelW, levelH float64) {
	maxX := math.Max(0, levelW-c.ViewW)
	maxY := math.Max(0, levelH-c.ViewH)

	c.TargetX = core.ClampF(px-c.ViewW/2, 0, maxX)
	c.TargetY = core.ClampF(py-c.ViewH/2, 0, maxY)

	c.X = core.ClampF(c.X+(c.TargetX-c.X)*c.FollowSpeed, 0, maxX)
	c.Y = core.ClampF(c.Y+(c.TargetY-c.Y)*c.FollowSpeed, 0, maxY)
}

// SnapTo places the camera so (px, py) is as centered as the level allows.
func (c *Camera) SnapTo(px, py, levelW, levelH float64) {
	c.X = core.ClampF(px-c.ViewW/2, 0, math.Max(0, levelW-c.ViewW))
	c.Y = core.ClampF(py-c.ViewH/2, 0, math.Max(0, levelH-c.ViewH))
	c.TargetX, c.TargetY = c.X, c.Y
}

// WorldToScreen translates a world position into viewport coordinates.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	return x - c.X, y - c.Y
}

// ScreenToWorld translates a viewport position into world coordinates.
func (c *Camera) ScreenToWorld(x, y float64) (float64, float64) {
	return x + c.X, y + c.Y
}

// View returns the visible world rectangle.
func (c *Camera) View() core.Rect {
	return core.NewRect(c.X, c.Y, c.ViewW, c.ViewH)
}
