package game

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ResolvePlatformCollision pushes the player out of a platform along the
// axis of least penetration. Landing on top zeroes vertical velocity and
// records ref as the player's ground. It reports whether the rectangles
// overlapped.
func ResolvePlatformCollision(p *Player, pl *Platform, ref PlatformRef) bool {
	pr, plr := p.Rect(), pl.Rect()
	if !core.Overlaps(pr, plr) {
		return false
	}

	pcx, pcy := pr.Center()
	plcx, plcy := plr.Center()

	var overlapX, overlapY float64
	if pcx < plcx {
		overlapX = pr.Right() - plr.X
	} else {
		overlapX = plr.Right() - pr.X
	}
	if pcy < plcy {
		overlapY = pr.Bottom() - plr.Y
	} else {
		overlapY = plr.Bottom() - pr.Y
	}

	// Strict comparison: equal depths resolve vertically
	if overlapX < overlapY {
		if pr.X < plr.X {
			p.X = plr.X - p.W
		} else {
			p.X = plr.Right()
		}
		p.VX = 0
		return true
	}

	if pr.Y < plr.Y {
		p.Y = plr.Y - p.H
		p.VY = 0
		p.OnGround = true
		p.Ground = ref
	} else {
		p.Y = plr.Bottom()
		p.VY = math.Min(p.VY, 0)
	}
	return true
}
