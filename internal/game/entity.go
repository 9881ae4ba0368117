// Package game implements the platformer simulation: entity updates,
// collision resolution, the fixed-step loop and the session state machine.
// It performs no drawing and reads no raw keys.
package game

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levelgen"
)

// Pulse rates in radians per second.
const (
	collectiblePulseRate = 2
	notePulseRate        = 2
	pickupPulseRate      = 3
)

// PlatformRef identifies a platform of the current level by index.
// It is invalidated wholesale when a new level loads.
type PlatformRef int

// NoPlatform is the ground reference of an airborne player.
const NoPlatform PlatformRef = -1

// Input is the held-action source read by the simulation.
// core.InputFrame satisfies it.
type Input interface {
	IsPressed(a core.Action) bool
}

// Platform is a live static or moving platform.
type Platform struct {
	X, Y, W, H float64
	Kind       levelgen.PlatformKind
	Role       levelgen.PlatformRole

	OriginX   float64 // Patrol anchor of a moving platform
	Range     float64
	Speed     float64
	Direction int

	DeltaX float64 // Displacement during the last update
}

// NewPlatform builds a live platform from its descriptor.
func NewPlatform(spec levelgen.PlatformSpec) Platform {
	dir := spec.Direction
	if dir == 0 {
		dir = 1
	}
	return Platform{
		X:         spec.X,
		Y:         spec.Y,
		W:         spec.W,
		H:         spec.H,
		Kind:      spec.Kind,
		Role:      spec.Role,
		OriginX:   spec.X,
		Range:     spec.Range,
		Speed:     spec.Speed,
		Direction: dir,
	}
}

// Rect returns the platform bounds.
func (p *Platform) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// IsMoving reports whether the platform oscillates.
func (p *Platform) IsMoving() bool {
	return p.Kind == levelgen.PlatformMoving
}

// Enemy is a patrolling hazard.
type Enemy struct {
	X, Y, W, H float64
	OriginX    float64
	Range      float64
	Speed      float64
	Direction  int
}

// NewEnemy builds a live enemy from its descriptor.
func NewEnemy(spec levelgen.EnemySpec) Enemy {
	dir := spec.Direction
	if dir == 0 {
		dir = 1
	}
	return Enemy{
		X:         spec.X,
		Y:         spec.Y,
		W:         spec.W,
		H:         spec.H,
		OriginX:   spec.X,
		Range:     spec.Range,
		Speed:     spec.Speed,
		Direction: dir,
	}
}

// Rect returns the enemy bounds.
func (e *Enemy) Rect() core.Rect {
	return core.NewRect(e.X, e.Y, e.W, e.H)
}

// item holds the fields shared by round pickups.
type item struct {
	X, Y      float64 // Center
	Radius    float64
	Collected bool
	Pulse     float64
}

// Rect returns the bounding square of the item.
func (i *item) Rect() core.Rect {
	return core.NewRect(i.X-i.Radius, i.Y-i.Radius, i.Radius*2, i.Radius*2)
}

func (i *item) pulse(dt, rate float64) {
	if i.Collected {
		return
	}
	i.Pulse = math.Mod(i.Pulse+dt*rate, 2*math.Pi)
}

// initialPulse staggers pulse phases so neighbouring items do not blink in
// lockstep.
func initialPulse(x, y float64) float64 {
	return math.Mod(math.Abs(x*0.037+y*0.011), 2*math.Pi)
}

// Collectible is a score item.
type Collectible struct {
	item
	Value int
}

// NewCollectible builds a live collectible from its descriptor.
func NewCollectible(spec levelgen.CollectibleSpec) Collectible {
	return Collectible{
		item:  item{X: spec.X, Y: spec.Y, Radius: spec.Radius, Pulse: initialPulse(spec.X, spec.Y)},
		Value: spec.Value,
	}
}

// Update advances the decorative pulse.
func (c *Collectible) Update(dt float64) {
	c.pulse(dt, collectiblePulseRate)
}

// HealthPickup restores health when touched.
type HealthPickup struct {
	item
}

// NewHealthPickup builds a live pickup from its descriptor.
func NewHealthPickup(spec levelgen.PickupSpec) HealthPickup {
	return HealthPickup{
		item: item{X: spec.X, Y: spec.Y, Radius: spec.Radius, Pulse: initialPulse(spec.X, spec.Y)},
	}
}

// Update advances the decorative pulse.
func (h *HealthPickup) Update(dt float64) {
	h.pulse(dt, pickupPulseRate)
}

// NotePayload is the text of a collected note.
type NotePayload struct {
	Title string
	Text  string
}

// Note is a narrative item.
type Note struct {
	item
	NotePayload
}

// NewNote builds a live note from its descriptor.
func NewNote(spec levelgen.NoteSpec) Note {
	return Note{
		item:        item{X: spec.X, Y: spec.Y, Radius: spec.Radius, Pulse: initialPulse(spec.X, spec.Y)},
		NotePayload: NotePayload{Title: spec.Title, Text: spec.Text},
	}
}

// Update advances the decorative pulse.
func (n *Note) Update(dt float64) {
	n.pulse(dt, notePulseRate)
}
