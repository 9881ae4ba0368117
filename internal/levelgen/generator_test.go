package levelgen

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

const eps = 1e-6

func newTestGenerator(seed int64) *Generator {
	return New(config.DefaultPlatformerConfig(), NewRand(seed))
}

func TestMaxStep(t *testing.T) {
	p := config.PhysicsConfig{Gravity: 1900, JumpForce: 720}

	apex := 720.0 * 720.0 / (2 * 1900)
	if got := MaxStep(p, 1); math.Abs(got-apex) > eps {
		t.Errorf("MaxStep(reach=1) = %v, expected %v", got, apex)
	}
	if got := MaxStep(p, 0.9); math.Abs(got-apex*0.9) > eps {
		t.Errorf("MaxStep(reach=0.9) = %v, expected %v", got, apex*0.9)
	}
	if got := MaxStep(config.PhysicsConfig{}, 1); got != 0 {
		t.Errorf("MaxStep without gravity = %v, expected 0", got)
	}
}

func TestGroundSegmentsCoverLevel(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()

	for seed := int64(1); seed <= 50; seed++ {
		g := New(cfg, NewRand(seed))
		for n := 1; n <= 5; n++ {
			lvl := g.Generate(n)
			ground := lvl.PlatformsByRole(RoleGround)
			if len(ground) == 0 {
				t.Fatalf("seed %d level %d: no ground segments", seed, n)
			}

			if ground[0].X != 0 {
				t.Errorf("seed %d level %d: first segment at %v, expected 0", seed, n, ground[0].X)
			}
			last := ground[len(ground)-1]
			if math.Abs(last.X+last.W-lvl.Width) > eps {
				t.Errorf("seed %d level %d: last segment ends at %v, expected %v",
					seed, n, last.X+last.W, lvl.Width)
			}

			for i := 1; i < len(ground); i++ {
				gap := ground[i].X - (ground[i-1].X + ground[i-1].W)
				if gap < cfg.Generator.Ground.MinGap-eps || gap > cfg.Generator.Ground.MaxGap+eps {
					t.Errorf("seed %d level %d: gap %d = %v outside [%v, %v]", seed, n, i, gap,
						cfg.Generator.Ground.MinGap, cfg.Generator.Ground.MaxGap)
				}
			}
		}
	}
}

func TestFloatingPlatformsReachable(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	groundY := cfg.World.GroundY

	for seed := int64(1); seed <= 50; seed++ {
		g := New(cfg, NewRand(seed))
		for n := 1; n <= 5; n++ {
			lvl := g.Generate(n)
			prev := 0.0
			for i, p := range lvl.PlatformsByRole(RoleFloating) {
				offset := groundY - p.Y
				delta := math.Abs(offset - prev)
				if delta <= cfg.Generator.Floating.MinStep || delta > g.MaxStep()+eps {
					t.Errorf("seed %d level %d platform %d: step %v outside (%v, %v]",
						seed, n, i, delta, cfg.Generator.Floating.MinStep, g.MaxStep())
				}
				if p.X+p.W+p.Range > lvl.Width-cfg.Generator.Floating.EndMargin+eps {
					t.Errorf("seed %d level %d platform %d: ends past the end margin", seed, n, i)
				}
				prev = offset
			}
		}
	}
}

func TestNextTierFallback(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	// A single tier too high to reach from the ground
	cfg.Generator.Floating.Tiers = []float64{300}
	g := New(cfg, NewRand(7))
	step := g.MaxStep()

	first := g.nextTier(0)
	if math.Abs(first-step) > eps {
		t.Fatalf("nextTier(0) = %v, expected fallback step %v", first, step)
	}
	second := g.nextTier(first)
	if math.Abs(second-2*step) > eps {
		t.Fatalf("nextTier(%v) = %v, expected %v", first, second, 2*step)
	}
	// Now the real tier is within reach again
	if got := g.nextTier(second); got != 300 {
		t.Errorf("nextTier(%v) = %v, expected tier 300", second, got)
	}
}

func TestMovingPlatforms(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Generator.Floating.MovingBase = 1
	cfg.Generator.Floating.MaxMovingFraction = 1
	g := New(cfg, NewRand(3))

	lvl := g.Generate(2)
	floating := lvl.PlatformsByRole(RoleFloating)
	if len(floating) == 0 {
		t.Fatal("expected floating platforms")
	}

	d := lvl.Difficulty
	wantRange := config.Scale(cfg.Generator.Floating.MovingRange, cfg.Generator.Floating.MovingRangePerLevel, d)
	wantSpeed := config.Scale(cfg.Generator.Floating.MovingSpeed, cfg.Generator.Floating.MovingSpeedPerLevel, d)
	for i, p := range floating {
		if p.Kind != PlatformMoving {
			t.Fatalf("platform %d: kind %v, expected moving", i, p.Kind)
		}
		if p.Range != wantRange || p.Speed != wantSpeed {
			t.Errorf("platform %d: range/speed = %v/%v, expected %v/%v", i, p.Range, p.Speed, wantRange, wantSpeed)
		}
		if p.Direction != 1 && p.Direction != -1 {
			t.Errorf("platform %d: direction %d, expected ±1", i, p.Direction)
		}
	}

	// Patrol envelopes of neighbours never overlap
	for i := 1; i < len(floating); i++ {
		prevRight := floating[i-1].X + floating[i-1].W + floating[i-1].Range
		if left := floating[i].X - floating[i].Range; left < prevRight-eps {
			t.Errorf("platforms %d and %d can collide: %v < %v", i-1, i, left, prevRight)
		}
	}
}

func TestGoalBackedByPlatform(t *testing.T) {
	g := newTestGenerator(11)

	for n := 1; n <= 5; n++ {
		lvl := g.Generate(n)
		goals := lvl.PlatformsByRole(RoleGoal)
		if len(goals) != 1 {
			t.Fatalf("level %d: %d goal platforms, expected 1", n, len(goals))
		}
		p := goals[0]

		if math.Abs(lvl.Goal.Bottom()-p.Y) > eps {
			t.Errorf("level %d: goal bottom %v, expected platform top %v", n, lvl.Goal.Bottom(), p.Y)
		}
		if lvl.Goal.X < p.X-eps || lvl.Goal.Right() > p.X+p.W+eps {
			t.Errorf("level %d: goal [%v, %v] not over platform [%v, %v]",
				n, lvl.Goal.X, lvl.Goal.Right(), p.X, p.X+p.W)
		}
		if p.X+p.W > lvl.Width {
			t.Errorf("level %d: goal platform past level edge", n)
		}
	}
}

func TestGoalGrowsWithDifficulty(t *testing.T) {
	g := newTestGenerator(5)
	first := g.Generate(1)
	fifth := g.Generate(5)

	if fifth.Goal.H <= first.Goal.H {
		t.Errorf("goal height should grow: level 1 %v, level 5 %v", first.Goal.H, fifth.Goal.H)
	}
	if fifth.Width <= first.Width {
		t.Errorf("level width should grow: level 1 %v, level 5 %v", first.Width, fifth.Width)
	}
}

func TestEnemiesStayOnTheirSegment(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()

	for seed := int64(1); seed <= 30; seed++ {
		g := New(cfg, NewRand(seed))
		lvl := g.Generate(4)
		ground := lvl.PlatformsByRole(RoleGround)

		for i, e := range lvl.Enemies {
			if math.Abs(e.Y+e.H-lvl.GroundY) > eps {
				t.Errorf("seed %d enemy %d: feet at %v, expected %v", seed, i, e.Y+e.H, lvl.GroundY)
			}
			if e.Range <= 0 {
				t.Errorf("seed %d enemy %d: non-positive range %v", seed, i, e.Range)
			}

			hosted := false
			for j, seg := range ground {
				if j == 0 {
					continue
				}
				if e.X-e.Range >= seg.X-eps && e.X+e.Range+e.W <= seg.X+seg.W+eps {
					hosted = true
					break
				}
			}
			if !hosted {
				t.Errorf("seed %d enemy %d: patrol [%v, %v] leaves every ground segment",
					seed, i, e.X-e.Range, e.X+e.Range+e.W)
			}
		}
	}
}

func TestItemCounts(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	g := New(cfg, NewRand(9))

	for n := 1; n <= 5; n++ {
		lvl := g.Generate(n)
		d := lvl.Difficulty

		want := cfg.Generator.Items.Collectibles + int(cfg.Generator.Items.CollectiblesPerLevel*d)
		if len(lvl.Collectibles) != want {
			t.Errorf("level %d: %d collectibles, expected %d", n, len(lvl.Collectibles), want)
		}
		wantPickups := cfg.Generator.Items.Pickups + int(cfg.Generator.Items.PickupsPerLevel*(d-1))
		if len(lvl.Pickups) != wantPickups {
			t.Errorf("level %d: %d pickups, expected %d", n, len(lvl.Pickups), wantPickups)
		}
		if lvl.TotalValue() != want*cfg.Generator.Items.CollectibleValue {
			t.Errorf("level %d: total value %d", n, lvl.TotalValue())
		}
	}
}

func TestCollectiblesPreferGroundFirst(t *testing.T) {
	tests := []struct {
		count      int
		wantGround int
	}{
		{4, 2},
		{5, 3},
		{7, 4},
		{1, 1},
	}

	for _, tc := range tests {
		cfg := config.DefaultPlatformerConfig()
		cfg.Generator.Items.Collectibles = tc.count
		cfg.Generator.Items.CollectiblesPerLevel = 0
		lvl := New(cfg, NewRand(21)).Generate(1)

		if len(lvl.Collectibles) != tc.count {
			t.Fatalf("count %d: generated %d collectibles", tc.count, len(lvl.Collectibles))
		}
		groundItemY := cfg.World.GroundY - cfg.Generator.Items.Lift
		for i, c := range lvl.Collectibles {
			onGround := c.Y == groundItemY
			if want := i < tc.wantGround; onGround != want {
				t.Errorf("count %d: collectible %d at y = %v, on ground %v, expected %v",
					tc.count, i, c.Y, onGround, want)
			}
		}
	}
}

func TestNotesCycleThroughPayloads(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Notes = []config.NoteConfig{
		{Title: "First", Text: "one"},
		{Title: "Second", Text: "two"},
	}
	cfg.Story = []string{"a", "b"}
	g := New(cfg, NewRand(2))

	tests := []struct {
		level     int
		wantTitle string
		wantStory string
	}{
		{1, "First", "a"},
		{2, "Second", "b"},
		{3, "First", "a"},
	}
	for _, tc := range tests {
		lvl := g.Generate(tc.level)
		if len(lvl.Notes) != 1 {
			t.Fatalf("level %d: %d notes, expected 1", tc.level, len(lvl.Notes))
		}
		if lvl.Notes[0].Title != tc.wantTitle {
			t.Errorf("level %d: note %q, expected %q", tc.level, lvl.Notes[0].Title, tc.wantTitle)
		}
		if lvl.Story != tc.wantStory {
			t.Errorf("level %d: story %q, expected %q", tc.level, lvl.Story, tc.wantStory)
		}
	}

	cfg.Notes = nil
	if notes := New(cfg, NewRand(2)).Generate(1).Notes; notes != nil {
		t.Errorf("expected no notes without payloads, got %d", len(notes))
	}
}

func TestPlaceOnDegrades(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	g := New(cfg, NewRand(4))
	lvl := &Level{Width: 1000, GroundY: 600}

	narrow := []PlatformSpec{{X: 100, Y: 400, W: 40, H: 20}}
	x, y := g.placeOn(narrow, lvl, 200, 10)
	if x < 110 || x > 130 || y != 400-cfg.Generator.Items.Lift {
		t.Errorf("narrow fallback placed at (%v, %v)", x, y)
	}

	x, y = g.placeOn(nil, lvl, 200, 10)
	if x < 0 || x > lvl.Width || y < 0 || y > lvl.GroundY {
		t.Errorf("world fallback placed at (%v, %v) outside the level", x, y)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := newTestGenerator(42).GenerateAll(3)
	b := newTestGenerator(42).GenerateAll(3)

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce identical levels")
	}
	if len(a) != 3 || a[2].Number != 3 {
		t.Errorf("GenerateAll(3) returned %d levels", len(a))
	}

	c := newTestGenerator(43).GenerateAll(3)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds should produce different levels")
	}
}

func TestSpawnOnFirstSegment(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lvl := New(cfg, NewRand(8)).Generate(1)

	first := lvl.PlatformsByRole(RoleGround)[0]
	if lvl.Spawn.X+cfg.Player.Width > first.X+first.W {
		t.Errorf("spawn x %v does not fit on first segment ending at %v", lvl.Spawn.X, first.X+first.W)
	}
	if lvl.Spawn.Y+cfg.Player.Height != first.Y {
		t.Errorf("spawn feet at %v, expected ground top %v", lvl.Spawn.Y+cfg.Player.Height, first.Y)
	}
}
