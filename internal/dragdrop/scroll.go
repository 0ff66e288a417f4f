package dragdrop

import (
	"math"
	"time"
)

// Band is the part of a scroll container the pointer is in.
type Band uint8

const (
	BandCenter Band = iota
	BandTop
	BandBottom
)

func (b Band) String() string {
	switch b {
	case BandTop:
		return "top"
	case BandBottom:
		return "bottom"
	default:
		return "center"
	}
}

const (
	DefaultScrollDeltaMin = 5
	DefaultScrollDeltaMax = 30
	DefaultScrollInterval = 100 * time.Millisecond
)

// ScrollOption customises a ScrollArea.
type ScrollOption func(*ScrollArea)

// WithScrollDelta overrides the per-tick scroll delta range.
func WithScrollDelta(lo, hi float64) ScrollOption {
	return func(s *ScrollArea) {
		s.deltaMin = lo
		s.deltaMax = hi
	}
}

// ScrollArea scrolls a container while a drag hovers near its top or
// bottom edge. Geometry is captured when the area is created.
type ScrollArea struct {
	container ScrollContainer
	sched     Scheduler
	delay     time.Duration

	box      Rect
	margin   float64
	deltaMin float64
	deltaMax float64

	band      Band
	scrolling bool
	timer     Timer
}

// NewScrollArea captures the container's geometry. The scroll margin is a
// tenth of the visible height, rounded down.
func NewScrollArea(container ScrollContainer, delay time.Duration, sched Scheduler, opts ...ScrollOption) *ScrollArea {
	box, _ := container.Bounds()
	s := &ScrollArea{
		container: container,
		sched:     sched,
		delay:     delay,
		box:       box,
		margin:    math.Floor(box.Height / 10),
		deltaMin:  DefaultScrollDeltaMin,
		deltaMax:  DefaultScrollDeltaMax,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Margin returns the band height at either edge.
func (s *ScrollArea) Margin() float64 { return s.margin }

// Band returns the band seen by the last Scroll call.
func (s *ScrollArea) Band() Band { return s.band }

// Scrolling reports whether the activation delay has elapsed in an edge band.
func (s *ScrollArea) Scrolling() bool { return s.scrolling }

// Scroll samples the pointer once and scrolls the container if needed.
func (s *ScrollArea) Scroll(x, y float64) {
	topLimit := s.box.Top + s.margin
	bottomLimit := s.box.Bottom() - s.margin

	band := BandCenter
	switch {
	case y < topLimit:
		band = BandTop
	case y > bottomLimit:
		band = BandBottom
	}
	if band != s.band {
		s.Stop()
		s.band = band
		s.enter(band)
	}
	if !s.scrolling {
		return
	}
	switch s.band {
	case BandTop:
		s.container.SetScrollTop(s.container.ScrollTop() - s.delta(topLimit-y))
	case BandBottom:
		s.container.SetScrollTop(s.container.ScrollTop() + s.delta(y-bottomLimit))
	}
}

func (s *ScrollArea) delta(past float64) float64 {
	speed := 1.0
	if s.margin > 0 {
		speed = clamp(past/s.margin, 0, 1)
	}
	return s.deltaMin + speed*(s.deltaMax-s.deltaMin)
}

func (s *ScrollArea) enter(band Band) {
	if band == BandCenter {
		return
	}
	if s.delay <= 0 {
		s.scrolling = true
		return
	}
	s.timer = s.sched.AfterFunc(s.delay, func() {
		s.timer = nil
		s.scrolling = true
	})
}

// Stop cancels a pending activation and halts scrolling.
func (s *ScrollArea) Stop() {
	s.scrolling = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// AutoScrollOptions configure an AutoScroll binding.
type AutoScrollOptions struct {
	Delay    time.Duration
	Interval time.Duration
	Scroll   []ScrollOption
}

// AutoScroll scrolls a container while a drag on a channel hovers over it.
// It registers an event zone for the container; entering the zone creates a
// ScrollArea and starts a repeating interval that samples the last pointer
// position seen, and leaving stops both.
type AutoScroll struct {
	container ScrollContainer
	sched     Scheduler
	opts      AutoScrollOptions

	reg    *Registration
	area   *ScrollArea
	ticker *Ticker
	last   Point
}

// NewAutoScroll registers container as an event zone on channel.
func NewAutoScroll(reg *Registry, channel string, container ScrollContainer, sched Scheduler, opts AutoScrollOptions) *AutoScroll {
	if opts.Interval <= 0 {
		opts.Interval = DefaultScrollInterval
	}
	a := &AutoScroll{container: container, sched: sched, opts: opts}
	a.ticker = NewTicker(sched, opts.Interval, a.tick)
	a.reg = reg.AddEventZone(channel, container, nil, Hooks{
		Enter: a.enter,
		Over:  a.over,
		Leave: a.leave,
	})
	return a
}

// Area returns the scroll area of the current hover, or nil.
func (a *AutoScroll) Area() *ScrollArea { return a.area }

// Dispose stops scrolling and removes the binding's zone.
func (a *AutoScroll) Dispose() {
	a.reg.Dispose()
	a.stop()
}

func (a *AutoScroll) enter(ev Event, _, _ any) Verdict {
	a.stop()
	a.last = ev.Point()
	a.area = NewScrollArea(a.container, a.opts.Delay, a.sched, a.opts.Scroll...)
	a.ticker.Reset()
	return Accept
}

func (a *AutoScroll) over(ev Event, _, _ any) {
	a.last = ev.Point()
}

func (a *AutoScroll) leave(Event, any) {
	a.stop()
}

func (a *AutoScroll) stop() {
	a.ticker.Stop()
	if a.area != nil {
		a.area.Stop()
		a.area = nil
	}
}

func (a *AutoScroll) tick() {
	if a.area == nil {
		return
	}
	a.area.Scroll(a.last.X, a.last.Y)
	a.ticker.Reset()
}
