package dragdrop

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDragHitTestsAgainstTickStartGeometry(t *testing.T) {
	reg := NewRegistry()
	a := region("a", 0, 0, 10, 10)
	b := region("b", 0, 0, 10, 10)
	reg.AddDropZone(DropZoneSpec{
		Accepts: []string{"cards"},
		Region:  a,
		Hooks: Hooks{Enter: func(Event, any, any) Verdict {
			b.rect.Left = 500
			return Accept
		}},
	})
	zb := reg.AddDropZone(DropZoneSpec{Accepts: []string{"cards"}, Region: b}).Zone()
	d := NewDraggable(reg, "cards", "card", DragHooks{})

	d.Drag(at(5, 5))
	require.True(t, zb.Inside(), "b was moved mid-tick but must be tested against the captured frame")

	d.Drag(at(5, 5))
	require.False(t, zb.Inside())
}

func TestInsideMatchesCapturedGeometry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	reg := NewRegistry()
	var regions []*testRegion
	var zones []*Zone
	for i := 0; i < 8; i++ {
		r := region("z", float64(rng.Intn(80)), float64(rng.Intn(80)), float64(10+rng.Intn(40)), float64(10+rng.Intn(40)))
		regions = append(regions, r)
		if i%3 == 0 {
			zones = append(zones, reg.AddEventZone("cards", r, nil, Hooks{}).Zone())
			continue
		}
		verdict := Accept
		if i%2 == 0 {
			verdict = Reject
		}
		zones = append(zones, reg.AddDropZone(DropZoneSpec{
			Accepts: []string{"cards"},
			Region:  r,
			Hooks:   Hooks{Enter: func(Event, any, any) Verdict { return verdict }},
		}).Zone())
	}
	d := NewDraggable(reg, "cards", "card", DragHooks{})

	for step := 0; step < 500; step++ {
		if step%25 == 0 {
			r := regions[rng.Intn(len(regions))]
			r.rect.Left = float64(rng.Intn(80))
			r.hidden = rng.Intn(4) == 0
		}
		p := Point{X: float64(rng.Intn(130)), Y: float64(rng.Intn(130))}
		d.Drag(at(p.X, p.Y))
		for i, z := range zones {
			want := !regions[i].hidden && regions[i].rect.Contains(p)
			require.Equal(t, want, z.Inside(), "step %d zone %d", step, i)
			if !z.Inside() {
				require.False(t, z.Active())
			}
			require.False(t, z.Dirty(), "dirty must be cleared after the visual refresh")
		}
	}
}

func TestDropRejectedEquivalence(t *testing.T) {
	reg := NewRegistry()
	accept := recorder{}
	reject := recorder{verdict: Reject}
	reg.AddDropZone(accept.dropZone("cards", region("a", 0, 0, 10, 10)))
	reg.AddDropZone(reject.dropZone("cards", region("b", 5, 0, 10, 10)))
	reg.AddEventZone("cards", region("e", 0, 0, 100, 100), nil, Hooks{})
	d := NewDraggable(reg, "cards", "card", DragHooks{})

	d.Drag(at(50, 50))
	require.True(t, d.DropRejected(), "no drop zone inside")

	d.Drag(at(12, 5))
	require.True(t, d.DropRejected(), "only a rejecting zone inside")

	d.Drag(at(7, 5))
	require.False(t, d.DropRejected(), "an accepting zone is inside")

	d.Drag(at(2, 5))
	require.False(t, d.DropRejected())
}

func TestDropWinnerIsFirstRegisteredActiveZone(t *testing.T) {
	reg := NewRegistry()
	shared := region("shared", 0, 0, 10, 10)
	var first, second, third recorder
	reg.AddDropZone(first.dropZone("cards", shared))
	reg.AddDropZone(second.dropZone("cards", shared))
	reg.AddDropZone(third.dropZone("cards", region("c", 0, 0, 20, 20)))
	d := NewDraggable(reg, "cards", "card", DragHooks{})

	d.Drag(at(5, 5))
	winner := d.DropAt(at(5, 5), shared)

	require.NotNil(t, winner)
	require.Equal(t, []any{"card"}, first.drops)
	require.Empty(t, second.drops)
	require.Empty(t, third.drops)
}

func TestDropMatchesResolvedRegion(t *testing.T) {
	reg := NewRegistry()
	outer := region("outer", 0, 0, 100, 100)
	inner := region("inner", 10, 10, 10, 10)
	var o, i recorder
	reg.AddDropZone(o.dropZone("cards", outer))
	zi := reg.AddDropZone(i.dropZone("cards", inner)).Zone()
	d := NewDraggable(reg, "cards", "card", DragHooks{})

	d.Drag(at(15, 15))
	require.Same(t, zi, d.DropAt(at(15, 15), inner))
	require.Empty(t, o.drops)
	require.Len(t, i.drops, 1)
}

func TestDropWithoutTargetFallsBackToGeometry(t *testing.T) {
	reg := NewRegistry()
	var a, b recorder
	reg.AddDropZone(a.dropZone("cards", region("a", 0, 0, 10, 10)))
	zb := reg.AddDropZone(b.dropZone("cards", region("b", 0, 0, 10, 10))).Zone()
	a.verdict = Reject
	d := NewDraggable(reg, "cards", "card", DragHooks{})

	d.Drag(at(5, 5))
	require.Same(t, zb, d.Drop(at(5, 5)))
}

func TestDropRejectedScenarioRunsEndWithoutDrop(t *testing.T) {
	reg := NewRegistry()
	rec := recorder{verdict: Reject}
	area := region("column", 0, 0, 10, 10)
	z := reg.AddDropZone(rec.dropZone("cards", area)).Zone()
	var ended []any
	d := NewDraggable(reg, "cards", "card-1", DragHooks{
		End: func(payload any, _ Event) { ended = append(ended, payload) },
	})

	d.Drag(at(5, 5))
	require.True(t, z.Inside())
	require.False(t, z.Active())
	require.True(t, d.DropRejected())

	require.Nil(t, d.DropAt(at(5, 5), area))
	require.Empty(t, rec.drops)
	require.Equal(t, []any{"card-1"}, ended)
	require.False(t, z.Inside())
}

func TestDropTearsDownEveryZone(t *testing.T) {
	reg := NewRegistry()
	var drop, events recorder
	zd := reg.AddDropZone(drop.dropZone("cards", region("a", 0, 0, 10, 10))).Zone()
	ze := reg.AddEventZone("cards", region("e", 0, 0, 10, 10), nil, events.hooks()).Zone()
	var order []string
	d := NewDraggable(reg, "cards", "card", DragHooks{
		End: func(any, Event) { order = append(order, "end") },
	})

	d.Drag(at(5, 5))
	require.True(t, ze.Inside())
	d.Drop(at(50, 50))

	require.False(t, zd.Inside())
	require.False(t, zd.Active())
	require.False(t, ze.Inside())
	require.Equal(t, 1, drop.leaves)
	require.Equal(t, 1, events.leaves)
	require.Equal(t, []VisualState{{Accepting: true}, {}}, drop.states)
	require.Equal(t, []string{"end"}, order)
}

func TestDropCallbackRunsBeforeEnd(t *testing.T) {
	reg := NewRegistry()
	var order []string
	area := region("a", 0, 0, 10, 10)
	reg.AddDropZone(DropZoneSpec{
		Accepts: []string{"cards"},
		Region:  area,
		Hooks:   Hooks{Leave: func(Event, any) { order = append(order, "leave") }},
		Drop:    func(any, any) { order = append(order, "drop") },
	})
	d := NewDraggable(reg, "cards", "card", DragHooks{
		End: func(any, Event) { order = append(order, "end") },
	})

	d.Drag(at(5, 5))
	d.DropAt(at(5, 5), area)

	require.Equal(t, []string{"leave", "drop", "end"}, order)
}

func TestStartDragReject(t *testing.T) {
	d := NewDraggable(NewRegistry(), "cards", "card", DragHooks{
		Start: func(any, Event) Verdict { return Reject },
	})
	require.False(t, d.StartDrag(at(0, 0)))

	d = NewDraggable(NewRegistry(), "cards", "card", DragHooks{})
	require.True(t, d.StartDrag(at(0, 0)))
}

func TestVisualStateEmittedOnlyWhenDirty(t *testing.T) {
	reg := NewRegistry()
	var rec recorder
	reg.AddDropZone(rec.dropZone("cards", region("a", 0, 0, 10, 10)))
	d := NewDraggable(reg, "cards", "card", DragHooks{})

	d.Drag(at(5, 5))
	d.Drag(at(6, 6))
	d.Drag(at(7, 7))
	d.Drag(at(50, 50))
	d.Drag(at(60, 60))

	require.Equal(t, []VisualState{{Accepting: true}, {}}, rec.states)
}

func TestDropAtNilTargetDropsNowhere(t *testing.T) {
	reg := NewRegistry()
	var rec recorder
	var ended bool
	reg.AddDropZone(rec.dropZone("cards", region("a", 0, 0, 50, 50)))
	d := NewDraggable(reg, "cards", "card", DragHooks{End: func(any, Event) { ended = true }})

	d.Drag(at(30, 30))
	require.False(t, d.DropRejected())

	require.Nil(t, d.DropAt(at(30, 30), nil))
	require.Empty(t, rec.drops)
	require.True(t, ended)
}

func TestEventZoneDirtyClearedEachTick(t *testing.T) {
	reg := NewRegistry()
	var events recorder
	ze := reg.AddEventZone("cards", region("e", 0, 0, 10, 10), nil, events.hooks()).Zone()
	d := NewDraggable(reg, "cards", "card", DragHooks{})

	d.Drag(at(5, 5))
	require.True(t, ze.Inside())
	require.False(t, ze.Dirty())

	d.Drag(at(50, 50))
	require.False(t, ze.Inside())
	require.False(t, ze.Dirty())
}
