package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
// It mirrors defaults/platformer.yaml and is used when the embedded file
// cannot be parsed.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:        1900,
			JumpForce:      720,
			Acceleration:   2200,
			Friction:       2600,
			MaxSpeed:       280,
			FacingDeadzone: 40,
		},
		Player: PlayerConfig{
			Width:  30,
			Height: 44,
		},
		World: WorldConfig{
			BaseWidth:       3200,
			WidthPerLevel:   480,
			Height:          720,
			GroundY:         620,
			GroundThickness: 100,
			SpawnX:          60,
		},
		Camera: CameraConfig{
			ViewWidth:   960,
			ViewHeight:  528,
			FollowSpeed: 0.12,
			CellWidth:   12,
			CellHeight:  24,
		},
		Generator: GeneratorConfig{
			Ground: GroundGen{
				MinLength:      320,
				MaxLength:      640,
				LengthPerLevel: 40,
				MinGap:         90,
				MaxGap:         160,
			},
			Floating: FloatingGen{
				MinWidth:            110,
				MaxWidth:            190,
				Height:              22,
				MinSpacing:          70,
				MaxSpacing:          150,
				StartX:              360,
				EndMargin:           360,
				Tiers:               []float64{90, 150, 210, 270, 330},
				MinStep:             10,
				ReachFactor:         0.9,
				MovingBase:          0.15,
				MovingPerLevel:      0.08,
				MaxMovingFraction:   0.6,
				MovingRange:         60,
				MovingRangePerLevel: 15,
				MovingSpeed:         45,
				MovingSpeedPerLevel: 12,
			},
			Items: ItemGen{
				Collectibles:         8,
				CollectiblesPerLevel: 2,
				CollectibleValue:     10,
				CollectibleRadius:    10,
				Pickups:              1,
				PickupsPerLevel:      0.34,
				PickupRadius:         12,
				NoteRadius:           12,
				Lift:                 36,
				MinPlatformWidth:     100,
				EdgeMargin:           20,
			},
			Enemies: EnemyGen{
				Count:         1,
				PerLevel:      1,
				Width:         30,
				Height:        30,
				Range:         120,
				Speed:         60,
				SpeedPerLevel: 10,
				MinSegment:    200,
			},
			Goal: GoalGen{
				Width:          48,
				WidthPerLevel:  6,
				Height:         80,
				HeightPerLevel: 10,
				PlatformWidth:  160,
				EndMargin:      40,
			},
		},
		Session: SessionConfig{
			Levels:           5,
			MaxHealth:        3,
			ContactDamage:    1,
			InvulnerableTime: 1.2,
			StoryDelay:       2.5,
			PitMargin:        200,
			SupportTolerance: 6,
		},
		Difficulty: DifficultyConfig{
			Base:     1,
			PerLevel: 1,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
