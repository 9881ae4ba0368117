package game

import "errors"

// ErrLevelNotFound is returned when a level index is outside the generated set.
var ErrLevelNotFound = errors.New("game: level not found")

// State is the session state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateVictory  // Level complete, or the whole game when Won is set
	StateGameOver // Terminal until restart
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateVictory:
		return "victory"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// FailureCause explains why a run ended.
type FailureCause int

const (
	CauseHealth FailureCause = iota // Health reached zero
	CausePit                        // Fell below the ground line
)

// String returns the cause name.
func (c FailureCause) String() string {
	if c == CausePit {
		return "pit"
	}
	return "health"
}

// Listener receives HUD-relevant changes. Callbacks run synchronously on
// the simulation goroutine and must not call back into the session.
type Listener interface {
	ScoreChanged(score, best int)
	HealthChanged(health int)
	LevelStarted(number int)
	NoteCollected(note NotePayload)
	LevelCompleted(number int, final bool)
	Failed(cause FailureCause)
}

// NopListener ignores every event. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) ScoreChanged(int, int) {}
func (NopListener) HealthChanged(int) {}
func (NopListener) LevelStarted(int) {}
func (NopListener) NoteCollected(NotePayload) {}
func (NopListener) LevelCompleted(int, bool) {}
func (NopListener) Failed(FailureCause) {}

// BestScoreStore persists the best score across processes. Failures are
// logged by the session and never interrupt play.
type BestScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
}
