package dragdrop

import (
	"sort"
	"time"
)

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop cancels the callback and reports whether it was still pending.
	Stop() bool
}

// Scheduler runs callbacks after a delay. Callbacks must be delivered on
// the same loop that drives the engine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// ManualScheduler is a Scheduler driven by an explicit clock. Callbacks run
// synchronously inside Advance, in deadline order.
type ManualScheduler struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Duration
	seq     int
	f       func()
	stopped bool
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.pending = append(s.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.s.drop(t)
	return true
}

func (s *ManualScheduler) drop(t *manualTimer) {
	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Now returns the elapsed manual time.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// Pending returns the number of armed timers.
func (s *ManualScheduler) Pending() int { return len(s.pending) }

// Advance moves the clock forward by d, firing every timer that comes due,
// including timers armed by callbacks fired during this call.
func (s *ManualScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		next := s.next(end)
		if next == nil {
			break
		}
		s.now = next.at
		next.stopped = true
		s.drop(next)
		next.f()
	}
	s.now = end
}

func (s *ManualScheduler) next(end time.Duration) *manualTimer {
	if len(s.pending) == 0 {
		return nil
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].at == s.pending[j].at {
			return s.pending[i].seq < s.pending[j].seq
		}
		return s.pending[i].at < s.pending[j].at
	})
	if s.pending[0].at > end {
		return nil
	}
	return s.pending[0]
}
