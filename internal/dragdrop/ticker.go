package dragdrop

import "time"

// Ticker keeps at most one pending tick. Reset cancels whatever is pending
// and arms a fresh tick; a tick never runs while another is running.
type Ticker struct {
	sched    Scheduler
	interval time.Duration
	fn       func()

	timer   Timer
	running bool
	fired   int
}

// NewTicker returns a stopped ticker that calls fn interval after each Reset.
func NewTicker(sched Scheduler, interval time.Duration, fn func()) *Ticker {
	return &Ticker{sched: sched, interval: interval, fn: fn}
}

// Reset cancels the pending tick, if any, and schedules a new one.
func (t *Ticker) Reset() {
	t.Stop()
	t.timer = t.sched.AfterFunc(t.interval, t.fire)
}

// Stop cancels the pending tick.
func (t *Ticker) Stop() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Pending reports whether a tick is armed.
func (t *Ticker) Pending() bool { return t.timer != nil }

// Fired returns how many ticks have run.
func (t *Ticker) Fired() int { return t.fired }

func (t *Ticker) fire() {
	t.timer = nil
	if t.running {
		return
	}
	t.running = true
	defer func() { t.running = false }()
	t.fired++
	t.fn()
}
