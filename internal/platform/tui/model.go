package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/levelgen"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// GameOptions configures a game view.
type GameOptions struct {
	Config config.PlatformerConfig
	Preset string // Difficulty preset name recorded with runs
	Seed   int64  // Level seed, 0 for time based
	FPS    int    // Redraw rate; the simulation always steps at game.DefaultStep
	Player string // Profile name for run history and best score

	// Store keeps run history and the player's best score. When nil, Best
	// is used for the best score alone.
	Store *storage.Store
	Best  game.BestScoreStore

	Logger *log.Logger
	Width  int
	Height int

	// Embedded models report Back through BackToMenu instead of quitting
	// the program, so a parent model can switch views.
	Embedded bool
}

// runTracker records how the current run ends.
type runTracker struct {
	game.NopListener
	outcome string
}

func (r *runTracker) LevelCompleted(_ int, final bool) {
	if final {
		r.outcome = storage.OutcomeWon
	}
}

func (r *runTracker) Failed(cause game.FailureCause) {
	r.outcome = storage.OutcomeForFailure(cause)
}

// Model is the Bubble Tea model for a platformer session.
type Model struct {
	opts     GameOptions
	session  *game.Session
	loop     *game.Loop
	renderer Renderer
	latch    *KeyLatch
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	run      *runTracker
	log      *log.Logger
	now      func() time.Time

	width      int
	height     int
	lastTick   time.Time
	ticking    bool // A tick command is in flight
	runStart   time.Time
	runSaved   bool
	status     string
	quitting   bool
	backToMenu bool
}

// NewModel creates a game view with a fresh session.
func NewModel(opts GameOptions) Model {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Player == "" {
		opts.Player = storage.DefaultPlayer
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	best := opts.Best
	if opts.Store != nil {
		best = opts.Store.ForPlayer(opts.Player)
	}

	run := &runTracker{}
	gen := levelgen.New(opts.Config, levelgen.NewRand(opts.Seed))
	session := game.NewSession(opts.Config, gen,
		game.WithListener(run),
		game.WithBestScoreStore(best),
		game.WithLogger(logger),
	)

	h := help.New()
	h.Width = opts.Width

	return Model{
		opts:     opts,
		session:  session,
		loop:     game.NewLoop(session, game.DefaultStep),
		renderer: NewRenderer(opts.Config.Camera.CellWidth, opts.Config.Camera.CellHeight),
		latch:    NewKeyLatch(DefaultHoldWindow),
		screen:   core.NewScreen(opts.Width, core.Max(1, opts.Height-2)),
		keys:     DefaultKeyMap(),
		help:     h,
		run:      run,
		log:      logger,
		now:      time.Now,
		width:    opts.Width,
		height:   opts.Height,
	}
}

// Init does nothing. Ticking starts with the run.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.now()
	m.status = ""

	// Any key closes a note
	if m.session.ShowingNote() {
		m.session.DismissNote()
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	state := m.session.State()
	finished := state == game.StateGameOver || (state == game.StateVictory && m.session.Won())

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.finishRun(now, storage.OutcomeQuit)
		m.session.Quit()
		m.quitting = true
		return m, tea.Quit

	case core.ActionLeft, core.ActionRight, core.ActionJump:
		m.latch.Press(action, now)
		if state == game.StateIdle && action == core.ActionJump {
			return m.start(now)
		}

	case core.ActionConfirm:
		switch {
		case state == game.StateIdle:
			return m.start(now)
		case finished:
			m.restart(now)
			return m.start(now)
		case state == game.StatePaused:
			m.session.TogglePause()
			return m.resume(now)
		}

	case core.ActionPause:
		m.session.TogglePause()
		if m.session.State() == game.StateRunning {
			return m.resume(now)
		}
		m.latch.Release()

	case core.ActionRestart:
		m.restart(now)

	case core.ActionBack:
		if state == game.StateRunning {
			return m, nil
		}
		m.finishRun(now, storage.OutcomeQuit)
		m.session.Quit()
		m.backToMenu = true
		if !m.opts.Embedded {
			return m, tea.Quit
		}
	}

	return m, nil
}

// start begins a run from the idle state.
func (m Model) start(now time.Time) (tea.Model, tea.Cmd) {
	m.session.Start()
	m.run.outcome = ""
	m.runStart = now
	m.runSaved = false
	return m.resume(now)
}

// resume restarts ticking without simulating the time spent stopped.
func (m Model) resume(now time.Time) (tea.Model, tea.Cmd) {
	m.loop.Reset()
	m.lastTick = now
	if m.ticking || !m.loop.Active() {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.opts.FPS)
}

// restart abandons the current run and returns to the idle state with new levels.
func (m *Model) restart(now time.Time) {
	m.finishRun(now, storage.OutcomeQuit)
	m.session.Restart()
	m.latch.Release()
	m.run.outcome = ""
	m.runStart = time.Time{}
	m.runSaved = false
}

// handleTick runs the fixed steps covered by the time since the last tick.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if m.loop.Active() {
		elapsed := t.Sub(m.lastTick)
		if elapsed < 0 {
			elapsed = 0
		}
		m.lastTick = t
		m.loop.Advance(elapsed, m.latch.Frame(t))
	}

	if m.run.outcome != "" {
		m.finishRun(t, m.run.outcome)
	}

	if m.loop.Active() {
		return m, tickCmd(m.opts.FPS)
	}
	m.ticking = false
	return m, nil
}

// finishRun records the current run once. Runs that never started are skipped.
func (m *Model) finishRun(now time.Time, outcome string) {
	if m.runSaved || m.runStart.IsZero() {
		return
	}
	m.runSaved = true
	if m.opts.Store == nil {
		return
	}

	run := storage.Run{
		Player:   m.opts.Player,
		Preset:   m.opts.Preset,
		Level:    m.session.LevelNumber(),
		Levels:   m.session.LevelCount(),
		Score:    m.session.Score(),
		Outcome:  outcome,
		Duration: now.Sub(m.runStart),
	}
	if _, err := m.opts.Store.SaveRun(run); err != nil {
		m.log.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current frame to a text file.
func (m *Model) saveScreenshot() {
	snap := m.session.Snapshot()
	m.renderer.Draw(m.screen, &snap)

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed"
		return
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "screenshot failed"
		return
	}

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("platformer_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("could not save screenshot", "error", err)
		m.status = "screenshot failed"
		return
	}
	m.status = "saved " + path
}

var (
	hudStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	heartStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// hudView renders the status line above the world.
func (m Model) hudView(snap *game.Snapshot) string {
	hearts := strings.Repeat("♥", snap.Health) + strings.Repeat("♡", core.Max(0, snap.MaxHealth-snap.Health))
	parts := []string{
		hudStyle.Render(fmt.Sprintf("Level %d/%d", snap.Level, snap.LevelCount)),
		hudStyle.Render(fmt.Sprintf("Score %d", snap.Score)),
		hudStyle.Render(fmt.Sprintf("Best %d", snap.Best)),
		heartStyle.Render(hearts),
		fmt.Sprintf("◆ %d left", snap.Remaining()),
	}
	if n := len(snap.CollectedNotes); n > 0 {
		parts = append(parts, fmt.Sprintf("notes %d", n))
	}
	if config.IsFixedPreset(config.DifficultyPreset(m.opts.Preset)) {
		parts = append(parts, "fixed")
	}
	line := strings.Join(parts, "  ")
	if m.status != "" {
		line += "  " + statusStyle.Render(m.status)
	}
	return line
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := helpStyle.Render(m.help.View(m.keys))
	rows := core.Max(1, m.height-1-lipgloss.Height(helpView))
	m.screen.Resize(m.width, rows)

	snap := m.session.Snapshot()
	m.renderer.Draw(m.screen, &snap)
	if o, ok := overlayFor(&snap, m.keys); ok {
		drawOverlay(m.screen, o)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.hudView(&snap), RenderScreen(m.screen), helpView)
}

// Session returns the simulated session.
func (m Model) Session() *game.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone game program. It returns true when the user
// asked to go back to the menu rather than quit.
func Run(opts GameOptions) (backToMenu bool, err error) {
	opts.Embedded = false
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
