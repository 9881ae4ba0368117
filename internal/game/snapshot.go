package game

import (
	"hash/fnv"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Snapshot is a read-only copy of the state a renderer needs for one frame.
type Snapshot struct {
	State      State
	Won        bool
	Level      int // 1-based
	LevelCount int
	Tick       uint64

	Score     int
	Best      int
	Health    int
	MaxHealth int

	LevelWidth  float64
	LevelHeight float64
	GroundY     float64
	Goal        core.Rect

	Player       Player
	Camera       Camera
	Platforms    []Platform
	Collectibles []Collectible
	Pickups      []HealthPickup
	Notes        []Note
	Enemies      []Enemy

	ShowingStory   bool
	Story          string  // Story of the level being introduced
	StoryProgress  float64 // Fraction of the story delay elapsed
	ShowingNote    bool
	CollectedNotes []NotePayload
}

// Snapshot copies the current state. The result shares nothing mutable
// with the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:      s.state,
		Won:        s.won,
		Level:      s.levelIndex + 1,
		LevelCount: len(s.levels),
		Tick:       s.tick,

		Score:     s.score,
		Best:      s.best,
		Health:    s.health,
		MaxHealth: s.cfg.Session.MaxHealth,

		Player: s.player,
		Camera: s.camera,

		Platforms:    append([]Platform(nil), s.platforms...),
		Collectibles: append([]Collectible(nil), s.collectibles...),
		Pickups:      append([]HealthPickup(nil), s.pickups...),
		Notes:        append([]Note(nil), s.notes...),
		Enemies:      append([]Enemy(nil), s.enemies...),

		ShowingStory:   s.showingStory,
		StoryProgress:  s.scheduler.Progress(),
		ShowingNote:    s.showingNote,
		CollectedNotes: append([]NotePayload(nil), s.collectedNotes...),
	}

	if s.level != nil {
		snap.LevelWidth = s.level.Width
		snap.LevelHeight = s.level.Height
		snap.GroundY = s.level.GroundY
		snap.Goal = s.level.Goal
	}
	if s.showingStory {
		snap.Story = s.storyText()
	}
	return snap
}

// storyText returns the story of the level about to be played.
func (s *Session) storyText() string {
	index := s.levelIndex
	if s.state == StateVictory && !s.won {
		index++
	}
	if index < 0 || index >= len(s.levels) {
		return ""
	}
	return s.levels[index].Story
}

// Remaining returns the collectibles not yet picked up.
func (snap *Snapshot) Remaining() int {
	n := 0
	for i := range snap.Collectibles {
		if !snap.Collectibles[i].Collected {
			n++
		}
	}
	return n
}

// Hash returns a fingerprint of the simulation state for determinism checks.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	write := func(v float64) {
		bits := math.Float64bits(v)
		for i := range buf {
			buf[i] = byte(bits >> (8 * i))
		}
		h.Write(buf[:])
	}

	write(float64(snap.State))
	write(float64(snap.Level))
	write(float64(snap.Score))
	write(float64(snap.Health))
	write(snap.Player.X)
	write(snap.Player.Y)
	write(snap.Player.VX)
	write(snap.Player.VY)
	for i := range snap.Platforms {
		write(snap.Platforms[i].X)
	}
	for i := range snap.Enemies {
		write(snap.Enemies[i].X)
	}
	return h.Sum64()
}
