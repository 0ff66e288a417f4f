package dragdrop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func container(top, height float64) *testContainer {
	return &testContainer{testRegion: testRegion{rect: Rect{Top: top, Left: 0, Width: 200, Height: height}}, top: 1000}
}

func TestScrollAreaTopBand(t *testing.T) {
	c := container(0, 500)
	s := NewScrollArea(c, 0, NewManualScheduler())
	require.Equal(t, 50.0, s.Margin())

	s.Scroll(100, 10)

	require.True(t, s.Scrolling())
	require.Equal(t, BandTop, s.Band())
	require.InDelta(t, 1000-25, c.top, 1e-9)
}

func TestScrollAreaBottomBand(t *testing.T) {
	c := container(100, 500)
	s := NewScrollArea(c, 0, NewManualScheduler())

	s.Scroll(100, 100+500-25)

	require.Equal(t, BandBottom, s.Band())
	require.InDelta(t, 1000+5+0.5*25, c.top, 1e-9)
}

func TestScrollAreaCenterDoesNotScroll(t *testing.T) {
	c := container(0, 500)
	s := NewScrollArea(c, 0, NewManualScheduler())

	s.Scroll(100, 250)
	s.Scroll(100, 50)
	s.Scroll(100, 450)

	require.False(t, s.Scrolling())
	require.Equal(t, BandCenter, s.Band())
	require.Equal(t, 1000.0, c.top)
}

func TestScrollAreaSpeedIsClamped(t *testing.T) {
	c := container(100, 500)
	s := NewScrollArea(c, 0, NewManualScheduler())

	s.Scroll(100, 0)

	require.InDelta(t, 1000-30, c.top, 1e-9)
}

func TestScrollAreaDelayedActivation(t *testing.T) {
	c := container(0, 500)
	sched := NewManualScheduler()
	s := NewScrollArea(c, 200*time.Millisecond, sched)

	s.Scroll(100, 10)
	require.False(t, s.Scrolling())
	require.Equal(t, 1000.0, c.top)

	sched.Advance(200 * time.Millisecond)
	require.True(t, s.Scrolling())

	s.Scroll(100, 10)
	require.InDelta(t, 975, c.top, 1e-9)
}

func TestScrollAreaLeavingBandCancelsActivation(t *testing.T) {
	c := container(0, 500)
	sched := NewManualScheduler()
	s := NewScrollArea(c, 200*time.Millisecond, sched)

	s.Scroll(100, 10)
	sched.Advance(100 * time.Millisecond)
	s.Scroll(100, 250)
	sched.Advance(500 * time.Millisecond)

	require.False(t, s.Scrolling())
	require.Zero(t, sched.Pending())

	s.Scroll(100, 495)
	require.Equal(t, BandBottom, s.Band())
	require.False(t, s.Scrolling())
}

func TestScrollAreaCustomDelta(t *testing.T) {
	c := container(0, 500)
	s := NewScrollArea(c, 0, NewManualScheduler(), WithScrollDelta(1, 3))

	s.Scroll(100, 0)

	require.InDelta(t, 997, c.top, 1e-9)
}

func TestAutoScrollFollowsDrag(t *testing.T) {
	reg := NewRegistry()
	sched := NewManualScheduler()
	c := container(0, 500)
	auto := NewAutoScroll(reg, "cards", c, sched, AutoScrollOptions{})
	d := NewDraggable(reg, "cards", "card", DragHooks{})

	d.Drag(at(100, 250))
	require.NotNil(t, auto.Area())
	sched.Advance(100 * time.Millisecond)
	require.Equal(t, 1000.0, c.top)

	d.Drag(at(100, 10))
	sched.Advance(100 * time.Millisecond)
	require.InDelta(t, 975, c.top, 1e-9)
	sched.Advance(100 * time.Millisecond)
	require.InDelta(t, 950, c.top, 1e-9)

	d.Drag(at(300, 10))
	require.Nil(t, auto.Area())
	sched.Advance(time.Second)
	require.InDelta(t, 950, c.top, 1e-9)
	require.Zero(t, sched.Pending())
}

func TestAutoScrollDisposeStops(t *testing.T) {
	reg := NewRegistry()
	sched := NewManualScheduler()
	auto := NewAutoScroll(reg, "cards", container(0, 500), sched, AutoScrollOptions{})
	NewDraggable(reg, "cards", "card", DragHooks{}).Drag(at(100, 10))
	require.Equal(t, 1, sched.Pending())

	auto.Dispose()

	require.Zero(t, sched.Pending())
	_, events := reg.Len("cards")
	require.Zero(t, events)
}
