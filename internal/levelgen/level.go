// Package levelgen builds procedural platformer levels.
//
// A Level is an immutable bundle of typed entity descriptors. The game
// package turns each descriptor kind into a live entity with its own
// constructor when a level is loaded.
package levelgen

import "github.com/vovakirdan/tui-platformer/internal/core"

// PlatformKind distinguishes static and moving platforms.
type PlatformKind int

const (
	PlatformStatic PlatformKind = iota
	PlatformMoving
)

// String returns the kind name used in level dumps.
func (k PlatformKind) String() string {
	if k == PlatformMoving {
		return "moving"
	}
	return "static"
}

// MarshalYAML renders the kind by name.
func (k PlatformKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// PlatformRole records why the generator placed a platform.
type PlatformRole int

const (
	RoleGround PlatformRole = iota
	RoleFloating
	RoleGoal
)

// String returns the role name used in level dumps.
func (r PlatformRole) String() string {
	switch r {
	case RoleGround:
		return "ground"
	case RoleFloating:
		return "floating"
	case RoleGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// MarshalYAML renders the role by name.
func (r PlatformRole) MarshalYAML() (any, error) {
	return r.String(), nil
}

// Point is a world position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PlatformSpec describes a platform. X and Y are the top-left corner; for
// moving platforms they are also the patrol anchor.
type PlatformSpec struct {
	X         float64      `yaml:"x"`
	Y         float64      `yaml:"y"`
	W         float64      `yaml:"w"`
	H         float64      `yaml:"h"`
	Kind      PlatformKind `yaml:"kind"`
	Role      PlatformRole `yaml:"role"`
	Range     float64      `yaml:"range,omitempty"`
	Speed     float64      `yaml:"speed,omitempty"`
	Direction int          `yaml:"direction,omitempty"`
}

// Rect returns the platform's bounding box at its anchor.
func (p PlatformSpec) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// CollectibleSpec describes a score item centered at (X, Y).
type CollectibleSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Value  int     `yaml:"value"`
}

// PickupSpec describes a health pickup centered at (X, Y).
type PickupSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// NoteSpec describes a narrative note centered at (X, Y).
type NoteSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Title  string  `yaml:"title"`
	Text   string  `yaml:"text"`
}

// EnemySpec describes a patrolling enemy. X is both the start position and
// the patrol origin.
type EnemySpec struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	W         float64 `yaml:"w"`
	H         float64 `yaml:"h"`
	Range     float64 `yaml:"range"`
	Speed     float64 `yaml:"speed"`
	Direction int     `yaml:"direction"`
}

// Level is the generator output for one level.
type Level struct {
	Number       int               `yaml:"number"` // 1-based
	Difficulty   float64           `yaml:"difficulty"`
	Width        float64           `yaml:"width"`
	Height       float64           `yaml:"height"`
	GroundY      float64           `yaml:"ground_y"`
	Spawn        Point             `yaml:"spawn"`
	Goal         core.Rect         `yaml:"goal"`
	Story        string            `yaml:"story,omitempty"`
	Platforms    []PlatformSpec    `yaml:"platforms"`
	Collectibles []CollectibleSpec `yaml:"collectibles"`
	Enemies      []EnemySpec       `yaml:"enemies"`
	Pickups      []PickupSpec      `yaml:"pickups"`
	Notes        []NoteSpec        `yaml:"notes"`
}

// PlatformsByRole returns the platforms with the given role, in placement order.
func (l *Level) PlatformsByRole(role PlatformRole) []PlatformSpec {
	var out []PlatformSpec
	for _, p := range l.Platforms {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// TotalValue returns the score available from all collectibles.
func (l *Level) TotalValue() int {
	total := 0
	for _, c := range l.Collectibles {
		total += c.Value
	}
	return total
}
