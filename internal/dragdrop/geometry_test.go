package dragdrop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRectContainsIsInclusive(t *testing.T) {
	r := Rect{Top: 10, Left: 20, Width: 30, Height: 40}

	require.True(t, r.Contains(Point{X: 20, Y: 10}))
	require.True(t, r.Contains(Point{X: 50, Y: 50}))
	require.True(t, r.Contains(Point{X: 35, Y: 30}))
	require.False(t, r.Contains(Point{X: 19.9, Y: 30}))
	require.False(t, r.Contains(Point{X: 50.1, Y: 30}))
	require.False(t, r.Contains(Point{X: 35, Y: 9}))
	require.False(t, r.Contains(Point{X: 35, Y: 51}))
}

func TestPointDistance(t *testing.T) {
	require.InDelta(t, 5.0, Point{X: 0, Y: 0}.Distance(Point{X: 3, Y: 4}), 1e-9)
}
