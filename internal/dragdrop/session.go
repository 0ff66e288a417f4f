package dragdrop

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidDistance is returned for a drag threshold that is NaN,
	// infinite or negative.
	ErrInvalidDistance = errors.New("dragdrop: drag distance must be finite and non-negative")
	// ErrInvalidInterval is returned for a non-positive re-poll interval.
	ErrInvalidInterval = errors.New("dragdrop: poll interval must be positive")
)

const (
	DefaultDistance     = 10
	DefaultPollInterval = 100 * time.Millisecond
)

// State is the phase of a Session.
type State uint8

const (
	Idle State = iota
	PendingStart
	Dragging
)

func (s State) String() string {
	switch s {
	case PendingStart:
		return "pending"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// ValidateDistance checks a drag threshold.
func ValidateDistance(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDistance, d)
	}
	return nil
}

// SessionConfig holds the drag-session tunables.
type SessionConfig struct {
	// Distance the pointer must travel from the press point before a drag
	// starts.
	Distance float64
	// PollInterval re-runs the last tick while the pointer rests.
	PollInterval time.Duration
}

// DefaultSessionConfig returns the stock thresholds.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{Distance: DefaultDistance, PollInterval: DefaultPollInterval}
}

// Source describes what a press would drag.
type Source struct {
	Channel string
	Payload any
	Hooks   DragHooks
	// Distance overrides the session threshold when positive.
	Distance float64
}

// Outcome describes how a session ended.
type Outcome struct {
	Dropped  bool
	Canceled bool
	Winner   *Zone
	Payload  any
}

// Session drives drags from raw pointer input: the press threshold, one
// tick per move, a re-poll while the pointer rests, and drop or cancel on
// button changes. Only one drag runs at a time.
type Session struct {
	reg      *Registry
	sched    Scheduler
	resolver Resolver
	cfg      SessionConfig

	state     State
	source    Source
	press     Event
	draggable *Draggable
	last      Event
	poll      *Ticker
	ticking   bool
	rejected  bool

	onRejected func(bool)
	onEnd      func(Outcome)
}

// NewSession validates cfg and returns an idle session. resolver may be
// nil, in which case drops are resolved by zone geometry.
func NewSession(reg *Registry, sched Scheduler, resolver Resolver, cfg SessionConfig) (*Session, error) {
	if err := ValidateDistance(cfg.Distance); err != nil {
		return nil, err
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, cfg.PollInterval)
	}
	s := &Session{reg: reg, sched: sched, resolver: resolver, cfg: cfg}
	s.poll = NewTicker(sched, cfg.PollInterval, s.repoll)
	return s, nil
}

// OnRejectedChange registers a callback fired whenever DropRejected flips
// during a drag.
func (s *Session) OnRejectedChange(f func(bool)) { s.onRejected = f }

// OnEnd registers a callback fired after a drag ends.
func (s *Session) OnEnd(f func(Outcome)) { s.onEnd = f }

// State returns the session phase.
func (s *Session) State() State { return s.state }

// Draggable returns the draggable of the running drag, or nil.
func (s *Session) Draggable() *Draggable { return s.draggable }

// DropRejected reports the rejection state computed at the last tick.
func (s *Session) DropRejected() bool { return s.rejected }

// PollPending reports whether a re-poll tick is armed.
func (s *Session) PollPending() bool { return s.poll.Pending() }

// Press records a press. A primary press while idle arms a pending start;
// any press while dragging is a button change and cancels the drag.
func (s *Session) Press(ev Event, src Source) error {
	switch s.state {
	case Dragging:
		s.cancel(ev)
		return nil
	case PendingStart:
		s.reset()
	}
	if ev.Button != ButtonPrimary {
		return nil
	}
	if src.Distance != 0 {
		if err := ValidateDistance(src.Distance); err != nil {
			return err
		}
	}
	s.state = PendingStart
	s.source = src
	s.press = ev
	return nil
}

// Move handles pointer motion. ev.Button is the button held during the move.
func (s *Session) Move(ev Event) {
	switch s.state {
	case PendingStart:
		if ev.Button != ButtonPrimary {
			s.reset()
			return
		}
		if ev.Point().Distance(s.press.Point()) > s.threshold() {
			s.start(ev)
		}
	case Dragging:
		if ev.Button != ButtonPrimary {
			s.cancel(ev)
			return
		}
		s.poll.Stop()
		s.tick(ev)
	}
}

// Release handles a button release. Releasing the primary button drops;
// releasing any other button cancels.
func (s *Session) Release(ev Event) {
	switch s.state {
	case PendingStart:
		s.reset()
	case Dragging:
		if ev.Button != ButtonPrimary {
			s.cancel(ev)
			return
		}
		s.drop(ev)
	}
}

// Abort ends whatever is in progress without a drop.
func (s *Session) Abort(ev Event) {
	switch s.state {
	case PendingStart:
		s.reset()
	case Dragging:
		s.cancel(ev)
	}
}

func (s *Session) threshold() float64 {
	if s.source.Distance > 0 {
		return s.source.Distance
	}
	return s.cfg.Distance
}

func (s *Session) start(ev Event) {
	d := NewDraggable(s.reg, s.source.Channel, s.source.Payload, s.source.Hooks)
	if !d.StartDrag(s.press) {
		s.reset()
		return
	}
	s.draggable = d
	s.state = Dragging
	s.rejected = false
	s.tick(ev)
}

// tick runs one drag update and re-arms the re-poll. A tick requested while
// another is running only records the event for the next poll.
func (s *Session) tick(ev Event) {
	s.last = ev
	if s.ticking || s.draggable == nil {
		return
	}
	s.ticking = true
	s.draggable.Drag(ev)
	s.ticking = false
	if s.state != Dragging {
		return
	}
	if rejected := s.draggable.DropRejected(); rejected != s.rejected {
		s.rejected = rejected
		if s.onRejected != nil {
			s.onRejected(rejected)
		}
	}
	s.poll.Reset()
}

// Refresh re-runs the last tick immediately. Hosts call it after replacing
// zones mid-drag so the new zones see the pointer before the next move.
func (s *Session) Refresh() {
	if s.state != Dragging {
		return
	}
	s.poll.Stop()
	s.tick(s.last)
}

func (s *Session) repoll() {
	if s.state == Dragging {
		s.tick(s.last)
	}
}

func (s *Session) drop(ev Event) {
	s.poll.Stop()
	d := s.draggable
	var target Region
	if s.resolver != nil {
		target = s.resolver.RegionAt(ev.Point())
	}
	s.reset()
	var winner *Zone
	if s.resolver != nil {
		winner = d.DropAt(ev, target)
	} else {
		winner = d.Drop(ev)
	}
	s.finish(Outcome{Dropped: winner != nil, Winner: winner, Payload: d.Payload()})
}

func (s *Session) cancel(ev Event) {
	s.poll.Stop()
	d := s.draggable
	s.reset()
	d.Teardown(ev)
	d.CancelDrag(ev)
	s.finish(Outcome{Canceled: true, Payload: d.Payload()})
}

func (s *Session) finish(o Outcome) {
	if s.onEnd != nil {
		s.onEnd(o)
	}
}

func (s *Session) reset() {
	s.poll.Stop()
	s.state = Idle
	s.source = Source{}
	s.draggable = nil
	s.rejected = false
	s.ticking = false
}
