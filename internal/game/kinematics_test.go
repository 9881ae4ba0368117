package game

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/levelgen"
)

const testDT = 1.0 / 60

func TestMovingPlatformStaysInRange(t *testing.T) {
	pl := NewPlatform(levelgen.PlatformSpec{
		X: 100, Y: 400, W: 120, H: 22,
		Kind: levelgen.PlatformMoving, Range: 50, Speed: 170, Direction: 1,
	})

	flips := 0
	dir := pl.Direction
	for i := 0; i < 2000; i++ {
		prev := pl.X
		pl.Update(testDT)

		if pl.X < pl.OriginX-pl.Range || pl.X > pl.OriginX+pl.Range {
			t.Fatalf("step %d: x = %v outside [%v, %v]", i, pl.X, pl.OriginX-pl.Range, pl.OriginX+pl.Range)
		}
		if pl.DeltaX != pl.X-prev {
			t.Fatalf("step %d: DeltaX = %v, expected %v", i, pl.DeltaX, pl.X-prev)
		}
		if pl.Direction != dir {
			flips++
			dir = pl.Direction
		}
	}
	if flips < 2 {
		t.Errorf("platform flipped %d times, expected it to oscillate", flips)
	}
}

func TestMovingPlatformClampsAtBound(t *testing.T) {
	pl := NewPlatform(levelgen.PlatformSpec{
		X: 0, Y: 0, W: 10, H: 10,
		Kind: levelgen.PlatformMoving, Range: 10, Speed: 100, Direction: 1,
	})
	pl.X = 9

	pl.Update(0.1)

	if pl.X != 10 {
		t.Errorf("X = %v, expected hard clamp at 10", pl.X)
	}
	if pl.Direction != -1 {
		t.Errorf("Direction = %d, expected -1", pl.Direction)
	}
	if pl.DeltaX != 1 {
		t.Errorf("DeltaX = %v, expected 1", pl.DeltaX)
	}
}

func TestStaticPlatformHasNoDelta(t *testing.T) {
	pl := NewPlatform(levelgen.PlatformSpec{X: 5, Y: 5, W: 10, H: 10, Speed: 100, Range: 20})
	pl.Update(testDT)

	if pl.X != 5 || pl.DeltaX != 0 {
		t.Errorf("static platform moved: x = %v, delta = %v", pl.X, pl.DeltaX)
	}
}

func TestEnemyPatrolBound(t *testing.T) {
	ground := []Platform{platformAt(0, 600, 2000, 100)}
	e := NewEnemy(levelgen.EnemySpec{X: 500, Y: 570, W: 30, H: 30, Range: 120, Speed: 70, Direction: 1})

	for i := 0; i < 1000 && e.X < 620; i++ {
		e.Update(testDT, ground, 6)
	}

	if e.X != 620 {
		t.Errorf("X = %v, expected exact clamp at 620", e.X)
	}
	if e.Direction != -1 {
		t.Errorf("Direction = %d, expected -1", e.Direction)
	}
}

func TestEnemyTurnsAtPlatformEdge(t *testing.T) {
	// Patrol range reaches past both ends of the platform
	ground := []Platform{platformAt(400, 600, 200, 100)}
	e := NewEnemy(levelgen.EnemySpec{X: 500, Y: 570, W: 30, H: 30, Range: 300, Speed: 90, Direction: 1})

	flips := 0
	dir := e.Direction
	for i := 0; i < 2000; i++ {
		e.Update(testDT, ground, 6)
		if e.X+e.W <= 400 || e.X >= 600 {
			t.Fatalf("step %d: enemy left the platform at x = %v", i, e.X)
		}
		if e.Direction != dir {
			flips++
			dir = e.Direction
		}
	}
	if flips < 2 {
		t.Errorf("enemy flipped %d times, expected it to pace the platform", flips)
	}
}

func TestEnemyRevertsUnsupportedStep(t *testing.T) {
	ground := []Platform{platformAt(0, 600, 100, 100)}
	e := NewEnemy(levelgen.EnemySpec{X: 99, Y: 570, W: 30, H: 30, Range: 500, Speed: 60, Direction: 1})

	e.Update(testDT, ground, 6)

	if e.X != 99 {
		t.Errorf("X = %v, expected revert to 99", e.X)
	}
	if e.Direction != -1 {
		t.Errorf("Direction = %d, expected reversal", e.Direction)
	}
}

func TestEnemyWithoutPlatformsIgnoresSupport(t *testing.T) {
	e := NewEnemy(levelgen.EnemySpec{X: 100, Y: 0, W: 30, H: 30, Range: 50, Speed: 60, Direction: 1})

	e.Update(testDT, nil, 6)

	if e.X <= 100 {
		t.Errorf("X = %v, expected the enemy to keep walking", e.X)
	}
}

func TestItemPulseStopsWhenCollected(t *testing.T) {
	c := NewCollectible(levelgen.CollectibleSpec{X: 10, Y: 10, Radius: 10, Value: 5})
	start := c.Pulse

	c.Update(0.1)
	if c.Pulse == start {
		t.Error("pulse should advance while not collected")
	}

	c.Collected = true
	frozen := c.Pulse
	c.Update(0.1)
	if c.Pulse != frozen {
		t.Error("pulse should not advance after collection")
	}
	if r := c.Rect(); r.X != 0 || r.W != 20 {
		t.Errorf("Rect() = %+v, expected square around the center", r)
	}
}
