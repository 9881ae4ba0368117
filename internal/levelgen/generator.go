package levelgen

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Rand is the random source used by the generator. *rand.Rand satisfies it;
// tests inject seeded or scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a time-seeded source, or a fixed one when seed is non-zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generator builds levels from a platformer configuration.
type Generator struct {
	cfg        config.PlatformerConfig
	rng        Rand
	difficulty *config.DifficultyManager
	maxStep    float64
}

// New creates a generator. A nil rng falls back to a time-seeded source, so
// repeated sessions produce different levels.
func New(cfg config.PlatformerConfig, rng Rand) *Generator {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Generator{
		cfg:        cfg,
		rng:        rng,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		maxStep:    MaxStep(cfg.Physics, cfg.Generator.Floating.ReachFactor),
	}
}

// MaxStep returns the largest height difference a standard jump can clear:
// the jump apex JumpForce²/(2·Gravity) scaled by reach.
func MaxStep(p config.PhysicsConfig, reach float64) float64 {
	if p.Gravity <= 0 {
		return 0
	}
	if reach <= 0 {
		reach = 1
	}
	return p.JumpForce * p.JumpForce / (2 * p.Gravity) * reach
}

// MaxStep returns the reachable step height this generator enforces.
func (g *Generator) MaxStep() float64 {
	return g.maxStep
}

// GenerateAll builds count levels numbered 1..count.
func (g *Generator) GenerateAll(count int) []Level {
	levels := make([]Level, 0, count)
	for n := 1; n <= count; n++ {
		levels = append(levels, g.Generate(n))
	}
	return levels
}

// Generate builds the level with the given 1-based number.
func (g *Generator) Generate(number int) Level {
	if number < 1 {
		number = 1
	}
	d := g.difficulty.Level(number)
	world := g.cfg.World

	lvl := Level{
		Number:     number,
		Difficulty: d,
		Width:      world.BaseWidth + world.WidthPerLevel*float64(number-1),
		Height:     world.Height,
		GroundY:    world.GroundY,
		Spawn:      Point{X: world.SpawnX, Y: world.GroundY - g.cfg.Player.Height},
		Story:      pick(g.cfg.Story, number),
	}

	lvl.Platforms = append(lvl.Platforms, g.groundSegments(lvl.Width, d)...)
	lvl.Platforms = append(lvl.Platforms, g.floatingPlatforms(lvl.Width, d)...)

	goalPlatform, goal := g.goal(lvl.Width, d)
	lvl.Platforms = append(lvl.Platforms, goalPlatform)
	lvl.Goal = goal

	lvl.Collectibles = g.collectibles(&lvl, d)
	lvl.Pickups = g.pickups(&lvl, d)
	lvl.Notes = g.notes(&lvl, number)
	lvl.Enemies = g.enemies(&lvl, d)

	return lvl
}

// groundSegments lays out ground greedily from x=0. Gaps stay within
// [MinGap, MaxGap] and the final segment always reaches the right edge.
func (g *Generator) groundSegments(width, d float64) []PlatformSpec {
	gc := g.cfg.Generator.Ground
	minLen := config.Scale(gc.MinLength, gc.LengthPerLevel, d)
	maxLen := math.Max(minLen, config.Scale(gc.MaxLength, gc.LengthPerLevel, d))

	// The spawn segment must hold the player with room to start running
	spawnClear := g.cfg.World.SpawnX + g.cfg.Player.Width*2

	var segments []PlatformSpec
	x := 0.0
	for x < width {
		length := g.uniform(minLen, maxLen)
		if len(segments) == 0 && length < spawnClear {
			length = spawnClear
		}
		// Absorb a tail too short to host another gap and segment
		if width-(x+length) < minLen+gc.MaxGap {
			length = width - x
		}

		segments = append(segments, PlatformSpec{
			X:    x,
			Y:    g.cfg.World.GroundY,
			W:    length,
			H:    g.cfg.World.GroundThickness,
			Kind: PlatformStatic,
			Role: RoleGround,
		})

		x += length
		if x >= width {
			break
		}
		x += g.uniform(gc.MinGap, gc.MaxGap)
	}
	return segments
}

// floatingPlatforms places platforms left to right at tiered heights.
func (g *Generator) floatingPlatforms(width, d float64) []PlatformSpec {
	fc := g.cfg.Generator.Floating
	movingFraction := config.Fraction(fc.MovingBase, fc.MovingPerLevel, fc.MaxMovingFraction, d)
	moveRange := config.Scale(fc.MovingRange, fc.MovingRangePerLevel, d)
	moveSpeed := config.Scale(fc.MovingSpeed, fc.MovingSpeedPerLevel, d)

	var platforms []PlatformSpec
	prevOffset := 0.0 // ground level
	x := fc.StartX
	for {
		w := g.uniform(fc.MinWidth, fc.MaxWidth)
		moving := moveRange > 0 && g.rng.Float64() < movingFraction

		// A moving platform sweeps [anchor-range, anchor+range+w]
		sweep := 0.0
		if moving {
			sweep = moveRange
		}
		if x+w+2*sweep > width-fc.EndMargin {
			break
		}

		offset := g.nextTier(prevOffset)
		p := PlatformSpec{
			X:    x + sweep,
			Y:    g.cfg.World.GroundY - offset,
			W:    w,
			H:    fc.Height,
			Kind: PlatformStatic,
			Role: RoleFloating,
		}
		if moving {
			p.Kind = PlatformMoving
			p.Range = moveRange
			p.Speed = moveSpeed
			p.Direction = g.direction()
		}

		platforms = append(platforms, p)
		prevOffset = offset
		x += w + 2*sweep + g.uniform(fc.MinSpacing, fc.MaxSpacing)
	}
	return platforms
}

// nextTier picks a height offset whose distance from prev is above MinStep
// and within the reachable step. When no tier qualifies it falls back to a
// step of exactly maxStep, which stays reachable but is not a tier.
func (g *Generator) nextTier(prev float64) float64 {
	fc := g.cfg.Generator.Floating

	candidates := make([]float64, 0, len(fc.Tiers))
	top := 0.0
	for _, t := range fc.Tiers {
		delta := math.Abs(t - prev)
		if delta > fc.MinStep && delta <= g.maxStep {
			candidates = append(candidates, t)
		}
		top = math.Max(top, t)
	}
	if len(candidates) > 0 {
		return candidates[g.rng.Intn(len(candidates))]
	}

	if up := prev + g.maxStep; up <= top {
		return up
	}
	if down := prev - g.maxStep; down > fc.MinStep {
		return down
	}
	return prev + g.maxStep
}

// goal returns the platform under the goal and the goal region itself.
func (g *Generator) goal(width, d float64) (PlatformSpec, core.Rect) {
	gc := g.cfg.Generator.Goal
	offset := g.goalOffset()

	platform := PlatformSpec{
		X:    width - gc.PlatformWidth - gc.EndMargin,
		Y:    g.cfg.World.GroundY - offset,
		W:    gc.PlatformWidth,
		H:    g.cfg.Generator.Floating.Height,
		Kind: PlatformStatic,
		Role: RoleGoal,
	}

	w := math.Min(config.Scale(gc.Width, gc.WidthPerLevel, d), gc.PlatformWidth)
	h := config.Scale(gc.Height, gc.HeightPerLevel, d)
	goal := core.NewRect(platform.X+(platform.W-w)/2, platform.Y-h, w, h)

	return platform, goal
}

// goalOffset is the lowest tier reachable from the ground.
func (g *Generator) goalOffset() float64 {
	fc := g.cfg.Generator.Floating
	best := math.Inf(1)
	for _, t := range fc.Tiers {
		if t > fc.MinStep && t <= g.maxStep && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		return g.maxStep
	}
	return best
}

// collectibles splits items between the ground (first half, rounded up)
// and floating platforms (the rest).
func (g *Generator) collectibles(lvl *Level, d float64) []CollectibleSpec {
	ic := g.cfg.Generator.Items
	count := ic.Collectibles + int(ic.CollectiblesPerLevel*d)
	onGround := (count + 1) / 2

	ground := lvl.PlatformsByRole(RoleGround)
	floating := lvl.PlatformsByRole(RoleFloating)

	items := make([]CollectibleSpec, 0, count)
	for i := 0; i < count; i++ {
		pool := floating
		if i < onGround || len(floating) == 0 {
			pool = ground
		}
		x, y := g.placeOn(pool, lvl, 0, ic.EdgeMargin)
		items = append(items, CollectibleSpec{X: x, Y: y, Radius: ic.CollectibleRadius, Value: ic.CollectibleValue})
	}
	return items
}

// pickups places health pickups on sufficiently wide platforms.
func (g *Generator) pickups(lvl *Level, d float64) []PickupSpec {
	ic := g.cfg.Generator.Items
	count := ic.Pickups + int(ic.PickupsPerLevel*(d-1))
	pool := placeablePlatforms(lvl)

	items := make([]PickupSpec, 0, count)
	for i := 0; i < count; i++ {
		x, y := g.placeOn(pool, lvl, ic.MinPlatformWidth, ic.EdgeMargin)
		items = append(items, PickupSpec{X: x, Y: y, Radius: ic.PickupRadius})
	}
	return items
}

// notes places the level's narrative note, if any notes are configured.
func (g *Generator) notes(lvl *Level, number int) []NoteSpec {
	if len(g.cfg.Notes) == 0 {
		return nil
	}
	ic := g.cfg.Generator.Items
	payload := g.cfg.Notes[(number-1)%len(g.cfg.Notes)]

	x, y := g.placeOn(placeablePlatforms(lvl), lvl, ic.MinPlatformWidth, ic.EdgeMargin)
	return []NoteSpec{{X: x, Y: y, Radius: ic.NoteRadius, Title: payload.Title, Text: payload.Text}}
}

// enemies puts patrols on ground segments away from the spawn.
func (g *Generator) enemies(lvl *Level, d float64) []EnemySpec {
	ec := g.cfg.Generator.Enemies
	count := ec.Count + int(ec.PerLevel*(d-1))
	margin := g.cfg.Generator.Items.EdgeMargin

	var hosts []PlatformSpec
	for i, p := range lvl.PlatformsByRole(RoleGround) {
		if i == 0 || p.W < ec.MinSegment {
			continue
		}
		hosts = append(hosts, p)
	}
	if len(hosts) == 0 {
		return nil
	}

	speed := config.Scale(ec.Speed, ec.SpeedPerLevel, d)
	enemies := make([]EnemySpec, 0, count)
	for i := 0; i < count; i++ {
		host := hosts[g.rng.Intn(len(hosts))]
		patrol := math.Min(ec.Range, (host.W-ec.Width)/2-margin)
		if patrol <= 0 {
			continue
		}
		enemies = append(enemies, EnemySpec{
			X:         host.X + (host.W-ec.Width)/2,
			Y:         host.Y - ec.Height,
			W:         ec.Width,
			H:         ec.Height,
			Range:     patrol,
			Speed:     speed,
			Direction: g.direction(),
		})
	}
	return enemies
}

// placeablePlatforms returns the platforms items may sit on.
func placeablePlatforms(lvl *Level) []PlatformSpec {
	var out []PlatformSpec
	for _, p := range lvl.Platforms {
		if p.Role != RoleGoal {
			out = append(out, p)
		}
	}
	return out
}

// placeOn returns an item center above a random platform of at least
// minWidth, inset by margin from its edges. With no wide enough platform it
// uses any platform; with no platforms at all, a random world position.
func (g *Generator) placeOn(pool []PlatformSpec, lvl *Level, minWidth, margin float64) (float64, float64) {
	lift := g.cfg.Generator.Items.Lift

	filtered := make([]PlatformSpec, 0, len(pool))
	for _, p := range pool {
		if p.W >= minWidth {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		filtered = pool
	}
	if len(filtered) == 0 {
		return g.uniform(0, lvl.Width), g.uniform(0, lvl.GroundY-lift)
	}

	p := filtered[g.rng.Intn(len(filtered))]
	inset := math.Min(margin, p.W/2)
	return g.uniform(p.X+inset, p.X+p.W-inset), p.Y - lift
}

// uniform returns a value uniformly distributed in [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Float64()*(hi-lo)
}

// direction returns -1 or +1 with equal probability.
func (g *Generator) direction() int {
	if g.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// pick returns the entry for a 1-based number, cycling through the list.
func pick(list []string, number int) string {
	if len(list) == 0 {
		return ""
	}
	return list[(number-1)%len(list)]
}
