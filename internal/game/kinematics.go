package game

import "math"

// Update moves a moving platform along its patrol and records DeltaX.
// Static platforms report a zero delta.
func (p *Platform) Update(dt float64) {
	prev := p.X
	if p.IsMoving() {
		p.X += p.Speed * dt * float64(p.Direction)
		lo, hi := p.OriginX-p.Range, p.OriginX+p.Range
		if p.X <= lo {
			p.X = lo
			p.Direction = 1
		} else if p.X >= hi {
			p.X = hi
			p.Direction = -1
		}
	}
	p.DeltaX = p.X - prev
}

// Update moves the enemy one patrol step. Range bounds take priority and
// clamp with a direction flip. Otherwise a step that would leave the enemy
// without support is reverted and the direction reversed. With no platforms
// at all the support check is skipped.
func (e *Enemy) Update(dt float64, platforms []Platform, tolerance float64) {
	prev := e.X
	next := e.X + e.Speed*dt*float64(e.Direction)
	lo, hi := e.OriginX-e.Range, e.OriginX+e.Range

	switch {
	case next <= lo:
		e.X = lo
		e.Direction = 1
	case next >= hi:
		e.X = hi
		e.Direction = -1
	case len(platforms) > 0 && !e.supportedAt(next, platforms, tolerance):
		e.X = prev
		e.Direction = -e.Direction
	default:
		e.X = next
	}
}

// supportedAt reports whether the enemy's feet would rest on some platform
// top with its left edge at x.
func (e *Enemy) supportedAt(x float64, platforms []Platform, tolerance float64) bool {
	feet := e.Y + e.H
	for i := range platforms {
		pl := &platforms[i]
		if x+e.W > pl.X && x < pl.X+pl.W && math.Abs(feet-pl.Y) < tolerance {
			return true
		}
	}
	return false
}
