package dragdrop

import "math"

// Point is a position in the host's shared coordinate space.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned region.
type Rect struct {
	Top, Left     float64
	Width, Height float64
}

// Contains reports whether p lies within r. Edges are inclusive.
func (r Rect) Contains(p Point) bool {
	if p.X < r.Left || p.Y < r.Top {
		return false
	}
	if r.Left+r.Width < p.X {
		return false
	}
	if r.Top+r.Height < p.Y {
		return false
	}
	return true
}

// Bottom returns the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
