package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/dragboard/internal/dragdrop"
)

// timerMsg delivers an expired timer to Update so engine callbacks run on
// the program goroutine.
type timerMsg struct{ t *teaTimer }

// Scheduler is a dragdrop.Scheduler backed by time.AfterFunc. Expiry is
// posted to the program and the callback runs when Update handles it.
type Scheduler struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func NewScheduler() *Scheduler { return &Scheduler{} }

// Bind sets the sink for expired timers, normally (*tea.Program).Send.
func (s *Scheduler) Bind(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	s.mu.Unlock()
}

func (s *Scheduler) AfterFunc(d time.Duration, f func()) dragdrop.Timer {
	t := &teaTimer{f: f}
	t.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		send := s.send
		s.mu.Unlock()
		if send != nil {
			send(timerMsg{t: t})
		}
	})
	return t
}

// teaTimer is only touched from Update, apart from the runtime timer.
type teaTimer struct {
	f     func()
	timer *time.Timer
	done  bool
}

func (t *teaTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.timer.Stop()
	return true
}

// fire runs the callback unless the timer was stopped after it expired.
func (t *teaTimer) fire() {
	if t.done {
		return
	}
	t.done = true
	t.f()
}
