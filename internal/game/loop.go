package game

import "time"

// Fixed step defaults.
const (
	DefaultStep     = time.Second / 60
	DefaultMaxFrame = 250 * time.Millisecond // Longer frames are clamped
)

// stepEpsilon absorbs float drift when draining the accumulator.
const stepEpsilon = 1e-9

// Loop drives a session with a fixed-step accumulator. Each call to
// Advance runs zero or more steps depending on elapsed wall time.
type Loop struct {
	session     *Session
	step        float64
	maxFrame    float64
	accumulator float64
}

// NewLoop creates a loop for s. A non-positive step uses DefaultStep.
func NewLoop(s *Session, step time.Duration) *Loop {
	if step <= 0 {
		step = DefaultStep
	}
	return &Loop{
		session:  s,
		step:     step.Seconds(),
		maxFrame: DefaultMaxFrame.Seconds(),
	}
}

// Step returns the fixed step length in seconds.
func (l *Loop) Step() float64 {
	return l.step
}

// Active reports whether the session needs frames scheduled.
// Paused, idle and terminal sessions need none.
func (l *Loop) Active() bool {
	switch l.session.State() {
	case StateRunning:
		return true
	case StateVictory:
		return l.session.scheduler.Pending() > 0
	default:
		return false
	}
}

// Advance accumulates elapsed time and drains it in fixed steps, returning
// how many steps ran. Inactive sessions drop the accumulated time.
func (l *Loop) Advance(elapsed time.Duration, in Input) int {
	if !l.Active() {
		l.accumulator = 0
		return 0
	}

	dt := elapsed.Seconds()
	if dt > l.maxFrame {
		dt = l.maxFrame
	}
	if dt > 0 {
		l.accumulator += dt
	}

	steps := 0
	for l.accumulator+stepEpsilon >= l.step {
		l.session.Step(l.step, in)
		l.accumulator -= l.step
		steps++
		if !l.Active() {
			l.accumulator = 0
			break
		}
	}
	return steps
}

// Reset drops accumulated time, used when resuming after a pause so the
// paused interval is not simulated.
func (l *Loop) Reset() {
	l.accumulator = 0
}
