package game

import (
	"math"
	"testing"
)

func TestCameraSmoothsTowardTarget(t *testing.T) {
	c := NewCamera(960, 528, 0.12)

	c.Update(2000, 264, 4000, 720)

	wantTarget := 2000 - 480.0
	if c.TargetX != wantTarget {
		t.Errorf("TargetX = %v, expected %v", c.TargetX, wantTarget)
	}
	if want := wantTarget * 0.12; math.Abs(c.X-want) > 1e-9 {
		t.Errorf("X = %v after one update, expected %v", c.X, want)
	}

	for i := 0; i < 500; i++ {
		c.Update(2000, 264, 4000, 720)
	}
	if math.Abs(c.X-wantTarget) > 1e-6 {
		t.Errorf("X = %v, expected convergence to %v", c.X, wantTarget)
	}
}

func TestCameraClampsTarget(t *testing.T) {
	tests := []struct {
		name         string
		px, py       float64
		wantX, wantY float64
	}{
		{"left top", 10, 10, 0, 0},
		{"right bottom", 3990, 710, 4000 - 960, 720 - 528},
		{"middle", 2000, 360, 1520, 96},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(960, 528, 0.12)
			c.Update(tc.px, tc.py, 4000, 720)
			if c.TargetX != tc.wantX || c.TargetY != tc.wantY {
				t.Errorf("target = (%v, %v), expected (%v, %v)", c.TargetX, c.TargetY, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestCameraPositionClampedIndependently(t *testing.T) {
	c := NewCamera(960, 528, 0.5)
	// Left over from a wider level
	c.X, c.Y = 5000, 900

	c.Update(3990, 710, 4000, 720)

	if c.X > 4000-960 || c.Y > 720-528 {
		t.Errorf("camera (%v, %v) past the level bounds", c.X, c.Y)
	}
}

func TestCameraSmallLevel(t *testing.T) {
	c := NewCamera(960, 528, 1)
	c.Update(300, 200, 600, 400)

	if c.X != 0 || c.Y != 0 {
		t.Errorf("camera (%v, %v), expected (0, 0) for a level smaller than the view", c.X, c.Y)
	}
}

func TestCameraTransforms(t *testing.T) {
	c := NewCamera(960, 528, 1)
	c.SnapTo(2000, 400, 4000, 720)

	sx, sy := c.WorldToScreen(2100, 450)
	wx, wy := c.ScreenToWorld(sx, sy)
	if wx != 2100 || wy != 450 {
		t.Errorf("round trip gave (%v, %v)", wx, wy)
	}
	if sx != 2100-c.X || sy != 450-c.Y {
		t.Errorf("WorldToScreen = (%v, %v), expected offset-only translation", sx, sy)
	}
	if v := c.View(); v.W != 960 || v.X != c.X {
		t.Errorf("View() = %+v", v)
	}
}
