package config

import "math"

// DifficultyManager derives generator scaling from the level number.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// Level returns the difficulty of the given 1-based level number.
// Numbers below 1 are treated as level 1. The result is never below 0.1.
func (d *DifficultyManager) Level(number int) float64 {
	if number < 1 {
		number = 1
	}
	level := d.cfg.Base + d.cfg.PerLevel*float64(number-1)
	return math.Max(0.1, level)
}

// Scale returns base + perPoint*(difficulty-1), never less than base when
// perPoint is positive and difficulty is at least 1.
func Scale(base, perPoint, difficulty float64) float64 {
	return base + perPoint*(difficulty-1)
}

// Fraction returns base + perPoint*(difficulty-1) clamped to [0, max].
func Fraction(base, perPoint, max, difficulty float64) float64 {
	return clampF(Scale(base, perPoint, difficulty), 0.0, max)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
