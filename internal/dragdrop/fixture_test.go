package dragdrop

type testRegion struct {
	name   string
	rect   Rect
	hidden bool
}

func (r *testRegion) Bounds() (Rect, bool) { return r.rect, !r.hidden }

func region(name string, left, top, width, height float64) *testRegion {
	return &testRegion{name: name, rect: Rect{Top: top, Left: left, Width: width, Height: height}}
}

type testContainer struct {
	testRegion
	top float64
}

func (c *testContainer) ScrollTop() float64     { return c.top }
func (c *testContainer) SetScrollTop(v float64) { c.top = v }

type recorder struct {
	enters, overs, leaves int
	leaveTargets          []Region
	states                []VisualState
	drops                 []any
	verdict               Verdict
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		Enter: func(Event, any, any) Verdict {
			r.enters++
			return r.verdict
		},
		Over: func(Event, any, any) { r.overs++ },
		Leave: func(ev Event, _ any) {
			r.leaves++
			r.leaveTargets = append(r.leaveTargets, ev.Target)
		},
	}
}

func (r *recorder) dropZone(channel string, reg Region) DropZoneSpec {
	return DropZoneSpec{
		Accepts: []string{channel},
		Region:  reg,
		Hooks:   r.hooks(),
		Drop:    func(payload, _ any) { r.drops = append(r.drops, payload) },
		State:   func(s VisualState) { r.states = append(r.states, s) },
	}
}

func at(x, y float64) Event {
	return Event{X: x, Y: y, Button: ButtonPrimary}
}
