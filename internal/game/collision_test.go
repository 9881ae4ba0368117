package game

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func platformAt(x, y, w, h float64) Platform {
	return Platform{X: x, Y: y, W: w, H: h, Direction: 1}
}

func playerAt(x, y float64) Player {
	p := NewPlayer(30, 44)
	p.X, p.Y = x, y
	return p
}

func TestResolveNoOverlap(t *testing.T) {
	pl := platformAt(0, 600, 400, 20)
	// Touching the top edge is not an overlap
	p := playerAt(100, 556)
	p.VY = 50

	if ResolvePlatformCollision(&p, &pl, 0) {
		t.Error("touching rectangles should not resolve")
	}
	if p.Y != 556 || p.VY != 50 || p.OnGround {
		t.Errorf("player changed without overlap: %+v", p)
	}
}

func TestResolveLanding(t *testing.T) {
	pl := platformAt(0, 600, 400, 20)
	p := playerAt(100, 561)
	p.VY = 300

	if !ResolvePlatformCollision(&p, &pl, 3) {
		t.Fatal("expected a resolution")
	}
	if p.Y+p.H != pl.Y {
		t.Errorf("player bottom = %v, expected platform top %v", p.Y+p.H, pl.Y)
	}
	if p.VY > 0 {
		t.Errorf("VY = %v after landing, expected <= 0", p.VY)
	}
	if !p.OnGround || p.Ground != 3 {
		t.Errorf("OnGround = %v, Ground = %d, expected true and 3", p.OnGround, p.Ground)
	}
}

func TestResolveHeadBump(t *testing.T) {
	tests := []struct {
		name   string
		vy     float64
		wantVY float64
	}{
		{"rising keeps upward velocity", -400, -400},
		{"falling is clamped", 50, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pl := platformAt(0, 300, 400, 20)
			p := playerAt(100, 315)
			p.VY = tc.vy

			ResolvePlatformCollision(&p, &pl, 0)

			if p.Y != pl.Y+pl.H {
				t.Errorf("Y = %v, expected platform bottom %v", p.Y, pl.Y+pl.H)
			}
			if p.VY != tc.wantVY {
				t.Errorf("VY = %v, expected %v", p.VY, tc.wantVY)
			}
			if p.OnGround {
				t.Error("head bump should not ground the player")
			}
		})
	}
}

func TestResolveHorizontal(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		wantX float64
	}{
		{"from the left", 175, 170},
		{"from the right", 295, 300},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pl := platformAt(200, 500, 100, 100)
			p := playerAt(tc.x, 520)
			p.VX = 200

			ResolvePlatformCollision(&p, &pl, 0)

			if p.X != tc.wantX {
				t.Errorf("X = %v, expected %v", p.X, tc.wantX)
			}
			if p.VX != 0 {
				t.Errorf("VX = %v, expected 0", p.VX)
			}
			if p.Y != 520 {
				t.Errorf("Y changed to %v on a horizontal push", p.Y)
			}
		})
	}
}

func TestResolveEqualDepthsPickVertical(t *testing.T) {
	pl := platformAt(0, 0, 100, 100)
	p := NewPlayer(30, 30)
	p.X, p.Y = 90, -20 // 10 deep on both axes

	ResolvePlatformCollision(&p, &pl, 0)

	if p.X != 90 {
		t.Errorf("X = %v, expected unchanged 90", p.X)
	}
	if p.Y != -30 || !p.OnGround {
		t.Errorf("Y = %v OnGround = %v, expected landing at -30", p.Y, p.OnGround)
	}
}

func TestResolveIdempotentAndSeparating(t *testing.T) {
	tests := []struct {
		name string
		pl   Platform
		x, y float64
	}{
		{"landing", platformAt(0, 600, 400, 20), 100, 561},
		{"head bump", platformAt(0, 300, 400, 20), 100, 315},
		{"wall left", platformAt(200, 500, 100, 100), 175, 520},
		{"wall right", platformAt(200, 500, 100, 100), 295, 520},
		{"corner", platformAt(0, 0, 100, 100), 90, -20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := playerAt(tc.x, tc.y)
			p.VX, p.VY = 120, 240

			ResolvePlatformCollision(&p, &tc.pl, 0)
			if core.Overlaps(p.Rect(), tc.pl.Rect()) {
				t.Errorf("residual overlap after resolution: player %+v", p.Rect())
			}

			x, y := p.X, p.Y
			ResolvePlatformCollision(&p, &tc.pl, 0)
			if p.X != x || p.Y != y {
				t.Errorf("second resolution moved player from (%v, %v) to (%v, %v)", x, y, p.X, p.Y)
			}
		})
	}
}
