package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{Player: "ann", Level: 2, Levels: 5, Score: 40, Outcome: OutcomePit}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns("ann", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run after reopen, got %d", len(runs))
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Player: "ann", Preset: "normal", Level: 3, Levels: 5, Score: 100, Outcome: OutcomeHealth, Duration: 90 * time.Second},
		{Player: "ann", Preset: "normal", Level: 1, Levels: 5, Score: 50, Outcome: OutcomePit},
		{Player: "bob", Preset: "hard", Level: 5, Levels: 5, Score: 200, Outcome: OutcomeWon},
		{Player: "", Level: 2, Levels: 5, Score: 75, Outcome: OutcomeQuit},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}
	wantScores := []int{200, 100, 75}
	for i, want := range wantScores {
		if top[i].Score != want {
			t.Errorf("top[%d].Score = %d, expected %d", i, top[i].Score, want)
		}
	}
	if !top[0].Won() || top[0].Preset != "hard" {
		t.Errorf("top run = %+v, expected bob's win on hard", top[0])
	}
	if top[2].Player != DefaultPlayer {
		t.Errorf("empty player stored as %q, expected %q", top[2].Player, DefaultPlayer)
	}

	recent, err := store.RecentRuns("ann", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 runs for ann, got %d", len(recent))
	}
	// Newest first
	if recent[0].Score != 50 || recent[1].Score != 100 {
		t.Errorf("RecentRuns() order = %d, %d; expected 50, 100", recent[0].Score, recent[1].Score)
	}
	if recent[1].Duration != 90*time.Second {
		t.Errorf("Duration = %v, expected 1m30s", recent[1].Duration)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Player: "ann", Level: 1, Levels: 5, Score: 10, Outcome: OutcomePit})
	store.SaveRun(Run{Player: "bob", Level: 1, Levels: 5, Score: 20, Outcome: OutcomePit})
	store.RaiseBestScore("ann", 10)

	if err := store.ClearRuns("ann"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	ann, _ := store.RecentRuns("ann", 10)
	if len(ann) != 0 {
		t.Errorf("Expected no runs for ann, got %d", len(ann))
	}
	bob, _ := store.RecentRuns("bob", 10)
	if len(bob) != 1 {
		t.Errorf("Expected bob's run to survive, got %d", len(bob))
	}
	if best, _ := store.BestScore("ann"); best != 10 {
		t.Errorf("BestScore() = %d after ClearRuns, expected 10", best)
	}
}

func TestStoreBestScoreNeverDecreases(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("ann")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for a new player, got %d", best)
	}

	steps := []struct {
		score int
		want  int
	}{
		{30, 30},
		{10, 30},
		{55, 55},
		{55, 55},
		{0, 55},
	}
	for _, s := range steps {
		if err := store.RaiseBestScore("ann", s.score); err != nil {
			t.Fatalf("RaiseBestScore(%d) failed: %v", s.score, err)
		}
		got, err := store.BestScore("ann")
		if err != nil {
			t.Fatalf("BestScore() failed: %v", err)
		}
		if got != s.want {
			t.Errorf("after RaiseBestScore(%d): BestScore() = %d, expected %d", s.score, got, s.want)
		}
	}

	if other, _ := store.BestScore("bob"); other != 0 {
		t.Errorf("best scores leaked between players: bob = %d", other)
	}
}

func TestPlayerBestImplementsStore(t *testing.T) {
	store := openTestStore(t)
	var best game.BestScoreStore = store.ForPlayer("")

	if err := best.SaveBestScore(42); err != nil {
		t.Fatalf("SaveBestScore() failed: %v", err)
	}
	got, err := best.LoadBestScore()
	if err != nil {
		t.Fatalf("LoadBestScore() failed: %v", err)
	}
	if got != 42 {
		t.Errorf("LoadBestScore() = %d, expected 42", got)
	}
	if direct, _ := store.BestScore(DefaultPlayer); direct != 42 {
		t.Errorf("empty player should map to %q, got %d", DefaultPlayer, direct)
	}
}

func TestStorePlayerStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Player: "ann", Level: 5, Levels: 5, Score: 100, Outcome: OutcomeWon, Duration: time.Minute})
	store.SaveRun(Run{Player: "ann", Level: 2, Levels: 5, Score: 50, Outcome: OutcomePit, Duration: 30 * time.Second})
	store.SaveRun(Run{Player: "bob", Level: 1, Levels: 5, Score: 999, Outcome: OutcomeWon})

	stats, err := store.PlayerStats("ann")
	if err != nil {
		t.Fatalf("PlayerStats() failed: %v", err)
	}
	if stats.RunsCount != 2 {
		t.Errorf("RunsCount = %d, expected 2", stats.RunsCount)
	}
	if stats.Wins != 1 {
		t.Errorf("Wins = %d, expected 1", stats.Wins)
	}
	if stats.HighScore != 100 {
		t.Errorf("HighScore = %d, expected 100", stats.HighScore)
	}
	if stats.AvgScore != 75 {
		t.Errorf("AvgScore = %v, expected 75", stats.AvgScore)
	}
	if stats.TotalTime != 90*time.Second {
		t.Errorf("TotalTime = %v, expected 1m30s", stats.TotalTime)
	}

	empty, err := store.PlayerStats("nobody")
	if err != nil {
		t.Fatalf("PlayerStats() for empty player failed: %v", err)
	}
	if empty.RunsCount != 0 || empty.HighScore != 0 {
		t.Errorf("Expected zero stats, got %+v", empty)
	}
}

func TestOutcomeForFailure(t *testing.T) {
	if got := OutcomeForFailure(game.CausePit); got != OutcomePit {
		t.Errorf("OutcomeForFailure(pit) = %q", got)
	}
	if got := OutcomeForFailure(game.CauseHealth); got != OutcomeHealth {
		t.Errorf("OutcomeForFailure(health) = %q", got)
	}
}
