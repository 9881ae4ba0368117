package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// testClock is a controllable time source for models.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Unix(1_000_000, 0)}
	m := NewModel(GameOptions{
		Config:   config.DefaultPlatformerConfig(),
		Preset:   "normal",
		Seed:     7,
		Store:    store,
		Width:    80,
		Height:   24,
		Embedded: true,
	})
	m.now = clock.Now
	return m, clock
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model, cmd
}

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

func TestModelStartsOnEnter(t *testing.T) {
	m, _ := newTestModel(t, nil)
	if m.Init() != nil {
		t.Error("idle model should not tick")
	}
	if m.Session().State() != game.StateIdle {
		t.Fatalf("initial state %v, expected idle", m.Session().State())
	}

	m, cmd := send(t, m, enterKey)

	if m.Session().State() != game.StateRunning {
		t.Errorf("state %v after enter, expected running", m.Session().State())
	}
	if cmd == nil || !m.ticking {
		t.Error("starting should schedule a tick")
	}
}

func TestModelTickAdvancesSimulation(t *testing.T) {
	m, clock := newTestModel(t, nil)
	m, _ = send(t, m, enterKey)

	m, cmd := send(t, m, TickMsg(clock.Advance(100*time.Millisecond)))

	if got := m.Session().Tick(); got != 6 {
		t.Errorf("Tick() = %d after 100ms, expected 6", got)
	}
	if cmd == nil {
		t.Error("running model should keep ticking")
	}
}

func TestModelStepIndependentOfFPS(t *testing.T) {
	for _, fps := range []int{20, 30, 60, 120} {
		m := NewModel(GameOptions{
			Config:   config.DefaultPlatformerConfig(),
			Seed:     7,
			FPS:      fps,
			Embedded: true,
		})
		clock := &testClock{now: time.Unix(1_000_000, 0)}
		m.now = clock.Now

		if got, want := m.loop.Step(), game.DefaultStep.Seconds(); got != want {
			t.Errorf("fps %d: loop step = %v, expected %v", fps, got, want)
		}

		m, _ = send(t, m, enterKey)
		m, _ = send(t, m, TickMsg(clock.Advance(100*time.Millisecond)))
		if got := m.Session().Tick(); got != 6 {
			t.Errorf("fps %d: Tick() = %d after 100ms, expected 6", fps, got)
		}
	}
}

func TestModelPauseStopsTicking(t *testing.T) {
	m, clock := newTestModel(t, nil)
	m, _ = send(t, m, enterKey)
	m, _ = send(t, m, TickMsg(clock.Advance(50*time.Millisecond)))
	before := m.Session().Tick()

	m, cmd := send(t, m, runeKey('p'))
	if m.Session().State() != game.StatePaused || cmd != nil {
		t.Fatalf("state %v cmd %v after pause", m.Session().State(), cmd != nil)
	}

	// The tick already in flight ends the chain
	m, cmd = send(t, m, TickMsg(clock.Advance(time.Second)))
	if cmd != nil || m.ticking {
		t.Error("paused model should stop ticking")
	}

	clock.Advance(10 * time.Second)
	m, cmd = send(t, m, runeKey('p'))
	if m.Session().State() != game.StateRunning || cmd == nil {
		t.Fatalf("resume: state %v, tick scheduled %v", m.Session().State(), cmd != nil)
	}

	// Time spent paused is not simulated
	m, _ = send(t, m, TickMsg(clock.Advance(10*time.Millisecond)))
	if got := m.Session().Tick(); got != before {
		t.Errorf("Tick() = %d after resume, expected %d", got, before)
	}
}

func TestModelRecordsFailedRun(t *testing.T) {
	store := openStore(t)
	m, clock := newTestModel(t, store)
	m, _ = send(t, m, enterKey)

	m.Session().TakeDamage(100)
	m, cmd := send(t, m, TickMsg(clock.Advance(20*time.Millisecond)))
	if cmd != nil {
		t.Error("game over should stop ticking")
	}

	runs, err := store.RecentRuns(storage.DefaultPlayer, 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Outcome != storage.OutcomeHealth || runs[0].Preset != "normal" || runs[0].Level != 1 {
		t.Errorf("run = %+v", runs[0])
	}

	// A second tick does not record the run again
	send(t, m, TickMsg(clock.Advance(20*time.Millisecond)))
	if runs, _ := store.RecentRuns(storage.DefaultPlayer, 10); len(runs) != 1 {
		t.Errorf("run recorded %d times", len(runs))
	}
}

func TestModelQuitRecordsStartedRunOnly(t *testing.T) {
	store := openStore(t)

	idle, _ := newTestModel(t, store)
	idle, cmd := send(t, idle, runeKey('q'))
	if !idle.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if runs, _ := store.RecentRuns(storage.DefaultPlayer, 10); len(runs) != 0 {
		t.Errorf("idle quit recorded %d runs", len(runs))
	}

	m, clock := newTestModel(t, store)
	m, _ = send(t, m, enterKey)
	clock.Advance(3 * time.Second)
	send(t, m, runeKey('q'))

	runs, _ := store.RecentRuns(storage.DefaultPlayer, 10)
	if len(runs) != 1 || runs[0].Outcome != storage.OutcomeQuit {
		t.Fatalf("runs = %+v, expected one quit", runs)
	}
	if runs[0].Duration != 3*time.Second {
		t.Errorf("Duration = %v, expected 3s", runs[0].Duration)
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = send(t, m, enterKey)

	m, _ = send(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back must be ignored while running")
	}

	m, _ = send(t, m, runeKey('p'))
	m, cmd := send(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
	if cmd != nil {
		t.Error("embedded model must not quit the program on back")
	}
}

func TestModelRestartReturnsToIdle(t *testing.T) {
	m, clock := newTestModel(t, nil)
	m, _ = send(t, m, enterKey)
	m, _ = send(t, m, TickMsg(clock.Advance(100*time.Millisecond)))

	m, _ = send(t, m, runeKey('r'))

	if m.Session().State() != game.StateIdle {
		t.Errorf("state %v after restart, expected idle", m.Session().State())
	}
	if m.Session().Tick() != 0 {
		t.Errorf("Tick() = %d after restart", m.Session().Tick())
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, nil)
	view := m.View()

	for _, want := range []string{"Level 1/", "Score 0", "to start"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelHUDMarksFixedPreset(t *testing.T) {
	m, _ := newTestModel(t, nil)
	snap := m.session.Snapshot()
	if strings.Contains(m.hudView(&snap), "fixed") {
		t.Error("normal preset should not be marked fixed")
	}

	m.opts.Preset = "fixed"
	if !strings.Contains(m.hudView(&snap), "fixed") {
		t.Error("fixed preset missing from HUD")
	}
}
