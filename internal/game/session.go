package game

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levelgen"
)

// Option configures a Session.
type Option func(*Session)

// WithListener sets the receiver of HUD events.
func WithListener(l Listener) Option {
	return func(s *Session) {
		if l != nil {
			s.listener = l
		}
	}
}

// WithBestScoreStore sets the durable best score backend.
func WithBestScoreStore(store BestScoreStore) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithLogger sets the logger. Sessions log nothing by default.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.log = logger
		}
	}
}

// Session owns all simulation state of one play session.
type Session struct {
	cfg      config.PlatformerConfig
	gen      *levelgen.Generator
	listener Listener
	store    BestScoreStore
	log      *log.Logger

	levels     []levelgen.Level
	levelIndex int
	level      *levelgen.Level

	state     State
	won       bool
	score     int
	best      int
	persisted int // Best score known to be stored
	health    int

	player       Player
	camera       Camera
	platforms    []Platform
	collectibles []Collectible
	pickups      []HealthPickup
	notes        []Note
	enemies      []Enemy

	space           *SpatialIndex
	platformObjs    []*resolv.Object
	enemyObjs       []*resolv.Object
	collectibleObjs []*resolv.Object
	pickupObjs      []*resolv.Object
	noteObjs        []*resolv.Object

	safeX, safeY   float64
	collectedNotes []NotePayload
	showingStory   bool
	showingNote    bool

	scheduler *Scheduler
	epoch     uint64 // Bumped on restart to invalidate pending transitions
	tick      uint64
}

// NewSession creates an idle session with freshly generated levels.
// A nil generator uses a time-seeded one.
func NewSession(cfg config.PlatformerConfig, gen *levelgen.Generator, opts ...Option) *Session {
	if gen == nil {
		gen = levelgen.New(cfg, nil)
	}
	s := &Session{
		cfg:       cfg,
		gen:       gen,
		listener:  NopListener{},
		log:       log.New(io.Discard),
		scheduler: NewScheduler(),
		player:    NewPlayer(cfg.Player.Width, cfg.Player.Height),
		camera:    NewCamera(cfg.Camera.ViewWidth, cfg.Camera.ViewHeight, cfg.Camera.FollowSpeed),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.best = s.loadBestScore()
	s.persisted = s.best
	s.reset()
	return s
}

// reset regenerates the level set and returns to the idle state on level 1.
func (s *Session) reset() {
	s.state = StateIdle
	s.won = false
	s.score = 0
	s.health = s.cfg.Session.MaxHealth
	s.tick = 0

	count := s.cfg.Session.Levels
	if count < 1 {
		count = 1
	}
	s.levels = s.gen.GenerateAll(count)
	if err := s.LoadLevel(0); err != nil {
		s.log.Error("could not load first level", "error", err)
	}
	s.showingStory = true
}

// Start begins play from the idle state or resumes a paused session.
// Victory and game over need Restart first.
func (s *Session) Start() {
	switch s.state {
	case StateIdle:
		s.state = StateRunning
		s.showingStory = false
		s.log.Info("session started", "levels", len(s.levels))
		s.listener.LevelStarted(s.levelIndex + 1)
		s.listener.HealthChanged(s.health)
		s.listener.ScoreChanged(s.score, s.best)
	case StatePaused:
		s.state = StateRunning
	}
}

// TogglePause switches between running and paused.
func (s *Session) TogglePause() {
	switch s.state {
	case StateRunning:
		s.state = StatePaused
		s.player.Moving = false
	case StatePaused:
		s.state = StateRunning
	}
}

// Restart cancels any pending transition, persists the best score and
// returns to idle with newly generated levels.
func (s *Session) Restart() {
	s.epoch++
	s.scheduler.Cancel()
	s.commitBestScore()
	s.reset()
	s.log.Info("session restarted")
}

// Quit persists the best score. The session stays usable.
func (s *Session) Quit() {
	s.commitBestScore()
}

// LoadLevel replaces all level entities with fresh ones built from the
// level at index.
func (s *Session) LoadLevel(index int) error {
	if index < 0 || index >= len(s.levels) {
		return fmt.Errorf("%w: index %d of %d", ErrLevelNotFound, index, len(s.levels))
	}

	lvl := &s.levels[index]
	s.levelIndex = index
	s.level = lvl

	s.platforms = make([]Platform, len(lvl.Platforms))
	for i, spec := range lvl.Platforms {
		s.platforms[i] = NewPlatform(spec)
	}
	s.collectibles = make([]Collectible, len(lvl.Collectibles))
	for i, spec := range lvl.Collectibles {
		s.collectibles[i] = NewCollectible(spec)
	}
	s.pickups = make([]HealthPickup, len(lvl.Pickups))
	for i, spec := range lvl.Pickups {
		s.pickups[i] = NewHealthPickup(spec)
	}
	s.notes = make([]Note, len(lvl.Notes))
	for i, spec := range lvl.Notes {
		s.notes[i] = NewNote(spec)
	}
	s.enemies = make([]Enemy, len(lvl.Enemies))
	for i, spec := range lvl.Enemies {
		s.enemies[i] = NewEnemy(spec)
	}

	s.buildSpatialIndex()

	s.player.Reset(lvl.Spawn.X, lvl.Spawn.Y)
	s.safeX, s.safeY = lvl.Spawn.X, lvl.Spawn.Y
	s.camera.SnapTo(s.player.X+s.player.W/2, s.player.Y+s.player.H/2, lvl.Width, lvl.Height)
	s.collectedNotes = nil
	s.showingNote = false

	s.log.Debug("level loaded",
		"number", lvl.Number,
		"difficulty", lvl.Difficulty,
		"platforms", len(s.platforms),
		"enemies", len(s.enemies),
	)
	return nil
}

func (s *Session) buildSpatialIndex() {
	// Room below the ground for falling bodies and above for jumps
	s.space = NewSpatialIndex(s.level.Width, s.level.Height+s.cfg.Session.PitMargin)

	s.platformObjs = make([]*resolv.Object, len(s.platforms))
	for i := range s.platforms {
		s.platformObjs[i] = s.space.Insert(tagPlatform, i, s.platforms[i].Rect())
	}
	s.enemyObjs = make([]*resolv.Object, len(s.enemies))
	for i := range s.enemies {
		s.enemyObjs[i] = s.space.Insert(tagEnemy, i, s.enemies[i].Rect())
	}
	s.collectibleObjs = make([]*resolv.Object, len(s.collectibles))
	for i := range s.collectibles {
		s.collectibleObjs[i] = s.space.Insert(tagCollectible, i, s.collectibles[i].Rect())
	}
	s.pickupObjs = make([]*resolv.Object, len(s.pickups))
	for i := range s.pickups {
		s.pickupObjs[i] = s.space.Insert(tagPickup, i, s.pickups[i].Rect())
	}
	s.noteObjs = make([]*resolv.Object, len(s.notes))
	for i := range s.notes {
		s.noteObjs[i] = s.space.Insert(tagNote, i, s.notes[i].Rect())
	}
}

// Step advances the simulation by one fixed step of dt seconds.
// Only the transition scheduler runs outside the running state.
func (s *Session) Step(dt float64, in Input) {
	s.scheduler.Update(dt, s.epoch)
	if s.state != StateRunning {
		return
	}
	s.tick++

	s.player.Update(dt, in, s.cfg.Physics, s.level.Width)

	for i := range s.platforms {
		pl := &s.platforms[i]
		pl.Update(dt)
		if pl.IsMoving() {
			s.space.Move(s.platformObjs[i], pl.Rect())
		}
	}

	s.resolvePlatforms()

	s.camera.Update(s.player.X+s.player.W/2, s.player.Y+s.player.H/2, s.level.Width, s.level.Height)

	s.checkCollectibles(dt)
	s.checkNotes(dt)
	s.checkPickups(dt)
	s.updateEnemies(dt)
	if s.state != StateRunning {
		return
	}

	if core.Overlaps(s.player.Rect(), s.level.Goal) {
		s.completeLevel()
		return
	}

	if s.player.OnGround {
		s.safeX, s.safeY = s.player.X, s.player.Y
	}

	if s.player.Rect().Bottom() > s.level.GroundY+s.cfg.Session.PitMargin {
		s.fail(CausePit)
	}
}

// resolvePlatforms pushes the player out of nearby platforms, then carries
// it with the platform it ended up standing on.
func (s *Session) resolvePlatforms() {
	p := &s.player
	reach := math.Max(p.W, p.H)
	for _, i := range s.space.Query(p.Rect().Expand(reach), tagPlatform) {
		ResolvePlatformCollision(p, &s.platforms[i], PlatformRef(i))
	}

	if p.Ground == NoPlatform {
		return
	}
	if ground := &s.platforms[p.Ground]; ground.DeltaX != 0 {
		p.X += ground.DeltaX
		p.ClampToLevel(s.level.Width)
	}
}

func (s *Session) checkCollectibles(dt float64) {
	pr := s.player.Rect()
	for i := range s.collectibles {
		s.collectibles[i].Update(dt)
	}
	for _, i := range s.space.Query(pr, tagCollectible) {
		c := &s.collectibles[i]
		if c.Collected || !core.Overlaps(pr, c.Rect()) {
			continue
		}
		c.Collected = true
		s.space.Remove(s.collectibleObjs[i])
		s.addScore(c.Value)
	}
}

func (s *Session) checkNotes(dt float64) {
	pr := s.player.Rect()
	for i := range s.notes {
		s.notes[i].Update(dt)
	}
	for _, i := range s.space.Query(pr, tagNote) {
		n := &s.notes[i]
		if n.Collected || !core.Overlaps(pr, n.Rect()) {
			continue
		}
		n.Collected = true
		s.space.Remove(s.noteObjs[i])
		s.collectedNotes = append(s.collectedNotes, n.NotePayload)
		s.showingNote = true
		s.listener.NoteCollected(n.NotePayload)
	}
}

func (s *Session) checkPickups(dt float64) {
	pr := s.player.Rect()
	for i := range s.pickups {
		s.pickups[i].Update(dt)
	}
	for _, i := range s.space.Query(pr, tagPickup) {
		h := &s.pickups[i]
		if h.Collected || !core.Overlaps(pr, h.Rect()) {
			continue
		}
		h.Collected = true
		s.space.Remove(s.pickupObjs[i])
		s.health = core.Min(s.cfg.Session.MaxHealth, s.health+1)
		s.listener.HealthChanged(s.health)
	}
}

func (s *Session) updateEnemies(dt float64) {
	for i := range s.enemies {
		e := &s.enemies[i]
		e.Update(dt, s.platforms, s.cfg.Session.SupportTolerance)
		s.space.Move(s.enemyObjs[i], e.Rect())
	}

	pr := s.player.Rect()
	for _, i := range s.space.Query(pr, tagEnemy) {
		if core.Overlaps(pr, s.enemies[i].Rect()) {
			s.TakeDamage(s.cfg.Session.ContactDamage)
		}
	}
}

// TakeDamage reduces health unless the player is invulnerable, then opens
// a new invulnerability window. Reaching zero health fails the run.
// It does nothing outside the running state.
func (s *Session) TakeDamage(amount int) {
	if s.state != StateRunning || s.player.IsInvulnerable() {
		return
	}
	s.health = core.Max(0, s.health-amount)
	s.player.Invulnerable = s.cfg.Session.InvulnerableTime
	s.player.Moving = false
	s.listener.HealthChanged(s.health)

	if s.health <= 0 {
		s.fail(CauseHealth)
	}
}

// fail moves to game over. It fires at most once per run.
func (s *Session) fail(cause FailureCause) {
	if s.state == StateGameOver {
		return
	}
	s.state = StateGameOver
	s.player.Moving = false
	s.log.Info("run failed", "cause", cause, "level", s.levelIndex+1, "score", s.score)
	s.commitBestScore()
	s.listener.Failed(cause)
}

// completeLevel enters victory. The next level loads after the story delay,
// unless this was the last one.
func (s *Session) completeLevel() {
	s.state = StateVictory
	s.player.Moving = false
	final := s.levelIndex >= len(s.levels)-1
	number := s.levelIndex + 1

	s.log.Info("level complete", "level", number, "score", s.score, "final", final)
	s.commitBestScore()
	s.listener.LevelCompleted(number, final)

	if final {
		s.won = true
		return
	}

	s.showingStory = true
	next := s.levelIndex + 1
	s.scheduler.After(s.cfg.Session.StoryDelay, s.epoch, func() {
		s.showingStory = false
		if err := s.LoadLevel(next); err != nil {
			s.log.Error("could not load next level", "error", err)
			return
		}
		s.state = StateRunning
		s.listener.LevelStarted(next + 1)
	})
}

// DismissNote hides the note overlay. Collected notes stay listed.
func (s *Session) DismissNote() {
	s.showingNote = false
}

func (s *Session) addScore(value int) {
	s.score += value
	if s.score > s.best {
		s.best = s.score
	}
	s.listener.ScoreChanged(s.score, s.best)
}

// loadBestScore reads the stored best score. Failures degrade to zero.
func (s *Session) loadBestScore() int {
	if s.store == nil {
		return 0
	}
	best, err := s.store.LoadBestScore()
	if err != nil {
		s.log.Warn("could not load best score", "error", err)
		return 0
	}
	return best
}

// commitBestScore stores the best score if it grew since the last write.
// Failures are logged and otherwise ignored.
func (s *Session) commitBestScore() {
	if s.store == nil || s.best <= s.persisted {
		return
	}
	if err := s.store.SaveBestScore(s.best); err != nil {
		s.log.Warn("could not save best score", "error", err, "best", s.best)
		return
	}
	s.persisted = s.best
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Won reports whether the last level has been completed.
func (s *Session) Won() bool { return s.won }

// Score returns the score of the current run.
func (s *Session) Score() int { return s.score }

// BestScore returns the best score seen, including the current run.
func (s *Session) BestScore() int { return s.best }

// Health returns the player's health.
func (s *Session) Health() int { return s.health }

// LevelNumber returns the 1-based number of the current level.
func (s *Session) LevelNumber() int { return s.levelIndex + 1 }

// LevelCount returns the number of generated levels.
func (s *Session) LevelCount() int { return len(s.levels) }

// Level returns the descriptor of the current level.
func (s *Session) Level() *levelgen.Level { return s.level }

// Player returns the player state.
func (s *Session) Player() *Player { return &s.player }

// Camera returns the camera state.
func (s *Session) Camera() *Camera { return &s.camera }

// SafePosition returns the last position where the player stood on a platform.
func (s *Session) SafePosition() (float64, float64) { return s.safeX, s.safeY }

// ShowingStory reports whether the level story overlay is up.
func (s *Session) ShowingStory() bool { return s.showingStory }

// ShowingNote reports whether a collected note should be displayed.
func (s *Session) ShowingNote() bool { return s.showingNote }

// CollectedNotes returns the notes collected on the current level.
func (s *Session) CollectedNotes() []NotePayload { return s.collectedNotes }

// Tick returns the number of running steps since the last restart.
func (s *Session) Tick() uint64 { return s.tick }
