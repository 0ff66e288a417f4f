package dragdrop

// Zone is a registered region taking part in hit-testing. A zone carrying
// the droppable capability is a drop zone; one without it only observes the
// drag (an event zone) and never wins a drop.
type Zone struct {
	region Region
	data   any
	hooks  Hooks
	drop   *droppable

	box    Rect
	hidden bool

	inside  bool
	active  bool
	dirty   bool
	retired bool
}

type droppable struct {
	accepts []string
	onDrop  func(payload, data any)
	onState func(VisualState)
}

func newZone(region Region, data any, hooks Hooks) *Zone {
	return &Zone{region: region, data: data, hooks: hooks}
}

// Region returns the host handle the zone was registered with.
func (z *Zone) Region() Region { return z.region }

// Data returns the value handed to the zone's hooks.
func (z *Zone) Data() any { return z.data }

// Inside reports whether the pointer was inside the zone at the last tick.
func (z *Zone) Inside() bool { return z.inside }

// Active reports whether the zone accepts the drag in progress.
func (z *Zone) Active() bool { return z.active }

// Dirty reports whether the zone changed during the tick in progress. It is
// cleared for every zone, drop or event, at the end of each tick.
func (z *Zone) Dirty() bool { return z.dirty }

// Droppable reports whether the zone can receive drops.
func (z *Zone) Droppable() bool { return z.drop != nil }

// Accepts returns the channels a drop zone accepts.
func (z *Zone) Accepts() []string {
	if z.drop == nil {
		return nil
	}
	return append([]string(nil), z.drop.accepts...)
}

// Bounds returns the geometry captured by the last refresh.
func (z *Zone) Bounds() (Rect, bool) { return z.box, !z.hidden }

// VisualState derives the presentation state from the zone state.
func (z *Zone) VisualState() VisualState {
	return VisualState{Accepting: z.active, Rejecting: z.inside && !z.active}
}

func (z *Zone) refresh() {
	box, visible := z.region.Bounds()
	z.hidden = !visible
	if visible {
		z.box = box
	}
}

// Contains tests p against the last refreshed geometry.
func (z *Zone) Contains(p Point) bool {
	if z.hidden {
		return false
	}
	return z.box.Contains(p)
}

func (z *Zone) update(ev Event, payload any) {
	if z.retired {
		return
	}
	ev = ev.withTarget(z.region)
	if !z.Contains(ev.Point()) {
		z.leave(&ev)
		return
	}
	if !z.inside {
		z.enter(ev, payload)
	}
	if z.hooks.Over != nil {
		z.hooks.Over(ev, payload, z.data)
	}
}

func (z *Zone) enter(ev Event, payload any) {
	z.inside = true
	if z.hooks.Enter != nil {
		z.active = z.hooks.Enter(ev, payload, z.data) != Reject
	} else {
		z.active = true
	}
	z.dirty = true
}

// leave is a no-op unless the zone is inside. The Leave hook always sees an
// event targeting this zone's region, whatever is under the pointer.
func (z *Zone) leave(ev *Event) {
	if !z.inside {
		return
	}
	var out Event
	if ev != nil {
		out = *ev
	}
	out.Target = z.region
	z.inside = false
	z.active = false
	z.dirty = true
	if z.hooks.Leave != nil {
		z.hooks.Leave(out, z.data)
	}
}

// refreshVisual emits the visual state of a dirty drop zone and clears the
// dirty flag. Event zones only have the flag cleared.
func (z *Zone) refreshVisual() {
	if z.dirty && z.drop != nil && z.drop.onState != nil {
		z.drop.onState(z.VisualState())
	}
	z.dirty = false
}

func (z *Zone) dropPayload(payload any) {
	if z.drop != nil && z.drop.onDrop != nil {
		z.drop.onDrop(payload, z.data)
	}
}
