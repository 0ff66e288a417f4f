package dragdrop

// Draggable orchestrates a single drag session on one channel. It is
// created when a drag starts and discarded when it ends.
type Draggable struct {
	reg     *Registry
	channel string
	payload any
	hooks   DragHooks
}

// NewDraggable returns a draggable carrying payload on channel.
func NewDraggable(reg *Registry, channel string, payload any, hooks DragHooks) *Draggable {
	return &Draggable{reg: reg, channel: channel, payload: payload, hooks: hooks}
}

// Channel returns the channel the draggable belongs to.
func (d *Draggable) Channel() string { return d.channel }

// Payload returns the dragged value.
func (d *Draggable) Payload() any { return d.payload }

// StartDrag runs the Start hook and reports whether the drag may begin.
func (d *Draggable) StartDrag(ev Event) bool {
	if d.hooks.Start != nil && d.hooks.Start(d.payload, ev) == Reject {
		return false
	}
	return true
}

// Drag runs one tick. All geometry is refreshed before any zone is updated
// so that every zone is hit-tested against the same frame, and visual state
// is refreshed only after every update.
func (d *Draggable) Drag(ev Event) {
	snap := d.reg.Snapshot(d.channel)
	zones := snap.All()
	for _, z := range zones {
		z.refresh()
	}
	for _, z := range zones {
		z.update(ev, d.payload)
	}
	for _, z := range zones {
		z.refreshVisual()
	}
}

// DropRejected reports whether a release now would drop nowhere: either no
// drop zone is inside, or every zone that is inside rejected the payload.
func (d *Draggable) DropRejected() bool {
	for _, z := range d.reg.drop[d.channel] {
		if z.inside && z.active {
			return false
		}
	}
	return true
}

// Drop resolves the winning zone for the release event by geometry, tears
// the session down and runs the drop and end callbacks. It returns the
// winner, or nil. Hosts that can resolve the region under the pointer
// should use DropAt.
func (d *Draggable) Drop(ev Event) *Zone {
	ev.Target = nil
	return d.finishDrop(ev, false)
}

// DropAt is Drop for a release the host has resolved to target. Only the
// active zone registered with target can win; a nil target drops nowhere.
func (d *Draggable) DropAt(ev Event, target Region) *Zone {
	ev.Target = target
	return d.finishDrop(ev, true)
}

func (d *Draggable) finishDrop(ev Event, resolved bool) *Zone {
	snap := d.reg.Snapshot(d.channel)
	winner := d.winner(snap, ev, resolved)

	d.teardown(snap, ev)

	if winner != nil {
		winner.dropPayload(d.payload)
	}
	if d.hooks.End != nil {
		d.hooks.End(d.payload, ev)
	}
	return winner
}

func (d *Draggable) winner(snap Snapshot, ev Event, resolved bool) *Zone {
	if resolved && ev.Target == nil {
		return nil
	}
	p := ev.Point()
	for _, z := range snap.Drop {
		if !z.active {
			continue
		}
		if resolved {
			if z.region == ev.Target {
				return z
			}
			continue
		}
		if z.Contains(p) {
			return z
		}
	}
	return nil
}

// CancelDrag ends the session without resolving a drop. Only the End hook
// runs; the caller is responsible for Teardown.
func (d *Draggable) CancelDrag(ev Event) {
	if d.hooks.End != nil {
		d.hooks.End(d.payload, ev)
	}
}

// Teardown forces every zone on the channel to leave and refreshes the
// visual state of the drop zones. No zone keeps inside or active state
// after it returns.
func (d *Draggable) Teardown(ev Event) {
	d.teardown(d.reg.Snapshot(d.channel), ev)
}

func (d *Draggable) teardown(snap Snapshot, ev Event) {
	zones := snap.All()
	for _, z := range zones {
		z.leave(&ev)
	}
	for _, z := range zones {
		z.refreshVisual()
	}
}
