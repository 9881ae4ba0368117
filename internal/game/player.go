package game

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Animation tuning.
const (
	movingThreshold = 60.0 // Horizontal speed that counts as running
	floatRate       = 3.0  // Float phase speed while airborne
	runRateBase     = 6.0
	runRateBySpeed  = 6.0
)

// Player is the controlled avatar.
type Player struct {
	X, Y   float64
	VX, VY float64
	W, H   float64

	OnGround bool
	Ground   PlatformRef // Platform the player stands on, or NoPlatform

	Invulnerable float64 // Seconds of damage immunity left
	Facing       int     // -1 left, +1 right

	Moving     bool
	RunPhase   float64 // Advances while running, 0 when stopped
	FloatPhase float64 // Advances while airborne
}

// NewPlayer creates a player of the given size at rest.
func NewPlayer(w, h float64) Player {
	p := Player{W: w, H: h}
	p.Reset(0, 0)
	return p
}

// Reset places the player at (x, y) and clears all motion state.
func (p *Player) Reset(x, y float64) {
	*p = Player{
		X:      x,
		Y:      y,
		W:      p.W,
		H:      p.H,
		Ground: NoPlatform,
		Facing: 1,
	}
}

// Rect returns the player bounds.
func (p *Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Update advances the player by dt. Grounded state is cleared here and
// re-derived by collision resolution later in the same tick.
func (p *Player) Update(dt float64, in Input, phys config.PhysicsConfig, levelWidth float64) {
	wasGrounded := p.OnGround
	p.OnGround = false
	p.Ground = NoPlatform

	left := in.IsPressed(core.ActionLeft)
	right := in.IsPressed(core.ActionRight)
	switch {
	case left:
		p.VX = math.Max(p.VX-phys.Acceleration*dt, -phys.MaxSpeed)
	case right:
		p.VX = math.Min(p.VX+phys.Acceleration*dt, phys.MaxSpeed)
	case p.VX > 0:
		p.VX = math.Max(p.VX-phys.Friction*dt, 0)
	case p.VX < 0:
		p.VX = math.Min(p.VX+phys.Friction*dt, 0)
	}

	if p.VX > phys.FacingDeadzone {
		p.Facing = 1
	} else if p.VX < -phys.FacingDeadzone {
		p.Facing = -1
	}

	// No double jump and no variable height
	if wasGrounded && in.IsPressed(core.ActionJump) {
		p.VY = -phys.JumpForce
	}

	// Applied even while grounded, collision cancels it
	p.VY += phys.Gravity * dt

	p.X += p.VX * dt
	p.Y += p.VY * dt

	// Horizontal bounds only, falling out of the level is the pit mechanism
	if p.X < 0 {
		p.X = 0
		p.VX = 0
	} else if p.X+p.W > levelWidth {
		p.X = levelWidth - p.W
		p.VX = 0
	}

	if p.Invulnerable > 0 {
		p.Invulnerable = math.Max(0, p.Invulnerable-dt)
	}

	p.animate(dt, wasGrounded, phys.MaxSpeed)
}

func (p *Player) animate(dt float64, wasGrounded bool, maxSpeed float64) {
	if p.OnGround {
		p.FloatPhase = 0
	} else {
		p.FloatPhase += dt * floatRate
	}

	speed := math.Abs(p.VX)
	p.Moving = wasGrounded && speed > movingThreshold
	if !p.Moving {
		p.RunPhase = 0
		return
	}

	factor := 1.0
	if maxSpeed > 0 {
		factor = math.Min(speed/maxSpeed, 1)
	}
	p.RunPhase = math.Mod(p.RunPhase+dt*(runRateBase+factor*runRateBySpeed), 2*math.Pi)
}

// ClampToLevel keeps the player inside [0, levelWidth] horizontally.
func (p *Player) ClampToLevel(levelWidth float64) {
	p.X = core.ClampF(p.X, 0, math.Max(0, levelWidth-p.W))
}

// IsInvulnerable reports whether damage is currently ignored.
func (p *Player) IsInvulnerable() bool {
	return p.Invulnerable > 0
}
