package tui

import (
	"math"

	zone "github.com/lrstanley/bubblezone"

	"github.com/jask/dragboard/internal/dragdrop"
)

// boundsFunc reports the screen box of a marked zone.
type boundsFunc func(id string) (dragdrop.Rect, bool)

// zoneBounds reads geometry recorded by the last zone.Manager.Scan. Edges
// are cell coordinates and inclusive.
func zoneBounds(m *zone.Manager) boundsFunc {
	return func(id string) (dragdrop.Rect, bool) {
		z := m.Get(id)
		if z == nil || z.IsZero() {
			return dragdrop.Rect{}, false
		}
		return dragdrop.Rect{
			Top:    float64(z.StartY),
			Left:   float64(z.StartX),
			Width:  float64(z.EndX - z.StartX),
			Height: float64(z.EndY - z.StartY),
		}, true
	}
}

// zoneRegion is a marked area of the screen.
type zoneRegion struct {
	id     string
	bounds boundsFunc
}

func (r *zoneRegion) Bounds() (dragdrop.Rect, bool) { return r.bounds(r.id) }

// columnPane is one board column on screen. It is the drop region, the
// autoscroll container and the resolver target for that column.
type columnPane struct {
	zoneRegion
	columnID string
	scroll   float64
	maxTop   int
	visual   dragdrop.VisualState
}

func newColumnPane(columnID string, bounds boundsFunc) *columnPane {
	return &columnPane{zoneRegion: zoneRegion{id: "col:" + columnID, bounds: bounds}, columnID: columnID}
}

func (p *columnPane) ScrollTop() float64 { return p.scroll }

func (p *columnPane) SetScrollTop(v float64) {
	p.scroll = math.Max(0, math.Min(float64(p.maxTop), v))
}

// Offset returns the first visible card index.
func (p *columnPane) Offset() int { return int(math.Floor(p.scroll)) }

// setMaxTop updates the scroll limit and clamps the current offset.
func (p *columnPane) setMaxTop(n int) {
	p.maxTop = max(0, n)
	p.SetScrollTop(p.scroll)
}

// bodyTop is the screen row of the first card row: below the border and
// the title line.
func (p *columnPane) bodyTop() (float64, bool) {
	box, ok := p.Bounds()
	if !ok {
		return 0, false
	}
	return box.Top + 2, true
}

// paneResolver finds the column under a point.
func paneResolver(panes func() []*columnPane) dragdrop.Resolver {
	return dragdrop.ResolverFunc(func(pt dragdrop.Point) dragdrop.Region {
		for _, p := range panes() {
			if box, ok := p.Bounds(); ok && box.Contains(pt) {
				return p
			}
		}
		return nil
	})
}
