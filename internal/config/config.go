// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

// PlatformerConfig contains all configuration for the platformer.
type PlatformerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	World      WorldConfig      `yaml:"world"`
	Camera     CameraConfig     `yaml:"camera"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Session    SessionConfig    `yaml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Story      []string         `yaml:"story"` // Intro shown when a level starts, indexed by level
	Notes      []NoteConfig     `yaml:"notes"` // Collectible note payloads, indexed by level
}

// PhysicsConfig defines movement physics in world units per second.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	JumpForce      float64 `yaml:"jump_force"`
	Acceleration   float64 `yaml:"acceleration"`
	Friction       float64 `yaml:"friction"`
	MaxSpeed       float64 `yaml:"max_speed"`
	FacingDeadzone float64 `yaml:"facing_deadzone"` // Speed needed before facing flips
}

// PlayerConfig defines the player's collision box.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// WorldConfig defines level dimensions.
type WorldConfig struct {
	BaseWidth       float64 `yaml:"base_width"`
	WidthPerLevel   float64 `yaml:"width_per_level"`
	Height          float64 `yaml:"height"`
	GroundY         float64 `yaml:"ground_y"` // Top of ground segments
	GroundThickness float64 `yaml:"ground_thickness"`
	SpawnX          float64 `yaml:"spawn_x"`
}

// CameraConfig defines the viewport and terminal cell scale.
type CameraConfig struct {
	ViewWidth   float64 `yaml:"view_width"`
	ViewHeight  float64 `yaml:"view_height"`
	FollowSpeed float64 `yaml:"follow_speed"` // Exponential smoothing factor per tick
	CellWidth   float64 `yaml:"cell_width"`   // World units per terminal column
	CellHeight  float64 `yaml:"cell_height"`  // World units per terminal row
}

// GeneratorConfig groups level generator parameters.
type GeneratorConfig struct {
	Ground   GroundGen   `yaml:"ground"`
	Floating FloatingGen `yaml:"floating"`
	Items    ItemGen     `yaml:"items"`
	Enemies  EnemyGen    `yaml:"enemies"`
	Goal     GoalGen     `yaml:"goal"`
}

// GroundGen defines ground segment layout.
type GroundGen struct {
	MinLength      float64 `yaml:"min_length"`
	MaxLength      float64 `yaml:"max_length"`
	LengthPerLevel float64 `yaml:"length_per_level"` // Added to both bounds per difficulty point
	MinGap         float64 `yaml:"min_gap"`
	MaxGap         float64 `yaml:"max_gap"`
}

// FloatingGen defines floating platform layout.
type FloatingGen struct {
	MinWidth            float64   `yaml:"min_width"`
	MaxWidth            float64   `yaml:"max_width"`
	Height              float64   `yaml:"height"`
	MinSpacing          float64   `yaml:"min_spacing"`
	MaxSpacing          float64   `yaml:"max_spacing"`
	StartX              float64   `yaml:"start_x"`
	EndMargin           float64   `yaml:"end_margin"`
	Tiers               []float64 `yaml:"tiers"`        // Height offsets above ground
	MinStep             float64   `yaml:"min_step"`     // Consecutive tiers must differ by more than this
	ReachFactor         float64   `yaml:"reach_factor"` // Fraction of the jump apex considered reachable
	MovingBase          float64   `yaml:"moving_base"`
	MovingPerLevel      float64   `yaml:"moving_per_level"`
	MaxMovingFraction   float64   `yaml:"max_moving_fraction"`
	MovingRange         float64   `yaml:"moving_range"`
	MovingRangePerLevel float64   `yaml:"moving_range_per_level"`
	MovingSpeed         float64   `yaml:"moving_speed"`
	MovingSpeedPerLevel float64   `yaml:"moving_speed_per_level"`
}

// ItemGen defines collectible, pickup and note placement.
type ItemGen struct {
	Collectibles         int     `yaml:"collectibles"`
	CollectiblesPerLevel float64 `yaml:"collectibles_per_level"`
	CollectibleValue     int     `yaml:"collectible_value"`
	CollectibleRadius    float64 `yaml:"collectible_radius"`
	Pickups              int     `yaml:"pickups"`
	PickupsPerLevel      float64 `yaml:"pickups_per_level"`
	PickupRadius         float64 `yaml:"pickup_radius"`
	NoteRadius           float64 `yaml:"note_radius"`
	Lift                 float64 `yaml:"lift"` // Height of item centers above their surface
	MinPlatformWidth     float64 `yaml:"min_platform_width"`
	EdgeMargin           float64 `yaml:"edge_margin"`
}

// EnemyGen defines enemy placement.
type EnemyGen struct {
	Count         int     `yaml:"count"`
	PerLevel      float64 `yaml:"per_level"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Range         float64 `yaml:"range"`
	Speed         float64 `yaml:"speed"`
	SpeedPerLevel float64 `yaml:"speed_per_level"`
	MinSegment    float64 `yaml:"min_segment"` // Shortest ground segment that can host a patrol
}

// GoalGen defines the goal region at the far right.
type GoalGen struct {
	Width          float64 `yaml:"width"`
	WidthPerLevel  float64 `yaml:"width_per_level"`
	Height         float64 `yaml:"height"`
	HeightPerLevel float64 `yaml:"height_per_level"`
	PlatformWidth  float64 `yaml:"platform_width"`
	EndMargin      float64 `yaml:"end_margin"`
}

// SessionConfig defines rules of a play session.
type SessionConfig struct {
	Levels           int     `yaml:"levels"`
	MaxHealth        int     `yaml:"max_health"`
	ContactDamage    int     `yaml:"contact_damage"`
	InvulnerableTime float64 `yaml:"invulnerable_time"` // Seconds of immunity after a hit
	StoryDelay       float64 `yaml:"story_delay"`       // Seconds between goal contact and next level
	PitMargin        float64 `yaml:"pit_margin"`        // Distance below ground that counts as a fall
	SupportTolerance float64 `yaml:"support_tolerance"` // Enemy feet distance accepted as standing
}

// NoteConfig is the payload of a collectible note.
type NoteConfig struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// DifficultyConfig defines how difficulty grows with the level number.
type DifficultyConfig struct {
	Base     float64 `yaml:"base"`      // Difficulty of level 1
	PerLevel float64 `yaml:"per_level"` // Added for every following level
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
