package game

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scheduledEvent is a deferred callback bound to a session epoch.
type scheduledEvent struct {
	tween *gween.Tween
	epoch uint64
	fire  func()
}

// Scheduler runs deferred transitions on simulation time. Every event
// carries the epoch it was scheduled in and is dropped unfired once the
// epoch moves on.
type Scheduler struct {
	events []*scheduledEvent
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once delay seconds of simulation time pass.
func (s *Scheduler) After(delay float64, epoch uint64, fn func()) {
	if delay <= 0 {
		delay = 0
	}
	s.events = append(s.events, &scheduledEvent{
		tween: gween.New(0, 1, float32(delay), ease.Linear),
		epoch: epoch,
		fire:  fn,
	})
}

// Update advances all events by dt. Finished events of the current epoch
// fire in scheduling order; events of other epochs are discarded.
func (s *Scheduler) Update(dt float64, epoch uint64) {
	if len(s.events) == 0 {
		return
	}

	var due []func()
	pending := s.events[:0]
	for _, ev := range s.events {
		if ev.epoch != epoch {
			continue
		}
		if _, finished := ev.tween.Update(float32(dt)); finished {
			due = append(due, ev.fire)
			continue
		}
		pending = append(pending, ev)
	}
	s.events = pending

	// Callbacks may schedule again
	for _, fn := range due {
		fn()
	}
}

// Progress returns how far the oldest pending event is, in [0, 1].
// It returns 0 when nothing is pending.
func (s *Scheduler) Progress() float64 {
	if len(s.events) == 0 {
		return 0
	}
	current, _ := s.events[0].tween.Update(0)
	return float64(current)
}

// Pending returns the number of events waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.events)
}

// Cancel drops every pending event.
func (s *Scheduler) Cancel() {
	s.events = nil
}
