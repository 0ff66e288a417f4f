package dragdrop

import "slices"

// Kind selects what a registration produces.
type Kind uint8

const (
	// Droppable zones can win a drop.
	Droppable Kind = iota
	// EventOnly zones observe the drag without accepting drops.
	EventOnly
)

// Registry maps channel names to the zones taking part in drags on that
// channel. Registration order is preserved and decides drop ties.
type Registry struct {
	drop   map[string][]*Zone
	events map[string][]*Zone
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		drop:   make(map[string][]*Zone),
		events: make(map[string][]*Zone),
	}
}

// DropZoneSpec describes a drop zone registration.
type DropZoneSpec struct {
	Accepts []string
	Region  Region
	Data    any
	Hooks   Hooks
	Drop    func(payload, data any)
	State   func(VisualState)
}

// Registration is the disposable returned by every registration.
type Registration struct {
	reg  *Registry
	zone *Zone
}

// Zone returns the registered zone.
func (r *Registration) Zone() *Zone { return r.zone }

// Dispose retires the zone: a zone that is inside is forced to leave, then
// the zone is removed from every channel list. Dispose is idempotent.
func (r *Registration) Dispose() {
	if r == nil || r.zone.retired {
		return
	}
	r.zone.leave(nil)
	r.zone.retired = true
	r.reg.remove(r.zone)
}

// Register is the generic registration entry point. Droppable zones
// registered this way accept only channel and have no drop callback; use
// AddDropZone for the full set of options.
func (r *Registry) Register(channel string, kind Kind, region Region, data any, hooks Hooks) *Registration {
	if kind == EventOnly {
		return r.AddEventZone(channel, region, data, hooks)
	}
	return r.AddDropZone(DropZoneSpec{Accepts: []string{channel}, Region: region, Data: data, Hooks: hooks})
}

// AddDropZone registers a drop zone on every channel it accepts.
func (r *Registry) AddDropZone(spec DropZoneSpec) *Registration {
	accepts := make([]string, 0, len(spec.Accepts))
	for _, name := range spec.Accepts {
		if !slices.Contains(accepts, name) {
			accepts = append(accepts, name)
		}
	}
	z := newZone(spec.Region, spec.Data, spec.Hooks)
	z.drop = &droppable{accepts: accepts, onDrop: spec.Drop, onState: spec.State}
	for _, name := range accepts {
		r.drop[name] = append(r.drop[name], z)
	}
	return &Registration{reg: r, zone: z}
}

// AddEventZone registers an event-only zone on channel.
func (r *Registry) AddEventZone(channel string, region Region, data any, hooks Hooks) *Registration {
	z := newZone(region, data, hooks)
	r.events[channel] = append(r.events[channel], z)
	return &Registration{reg: r, zone: z}
}

func (r *Registry) remove(z *Zone) {
	for name, list := range r.drop {
		if i := slices.Index(list, z); i >= 0 {
			r.drop[name] = slices.Delete(list, i, i+1)
		}
	}
	for name, list := range r.events {
		if i := slices.Index(list, z); i >= 0 {
			r.events[name] = slices.Delete(list, i, i+1)
		}
	}
}

// Snapshot is a stable copy of a channel's zone lists taken for one tick.
type Snapshot struct {
	Drop   []*Zone
	Events []*Zone
}

// All returns drop zones followed by event zones.
func (s Snapshot) All() []*Zone {
	out := make([]*Zone, 0, len(s.Drop)+len(s.Events))
	out = append(out, s.Drop...)
	return append(out, s.Events...)
}

// Snapshot copies the current zone lists for channel.
func (r *Registry) Snapshot(channel string) Snapshot {
	return Snapshot{
		Drop:   slices.Clone(r.drop[channel]),
		Events: slices.Clone(r.events[channel]),
	}
}

// Len returns the number of drop and event zones on channel.
func (r *Registry) Len(channel string) (drop, events int) {
	return len(r.drop[channel]), len(r.events[channel])
}
