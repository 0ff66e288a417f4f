package dragdrop

// Region is a handle into the host's UI tree. Implementations must be
// comparable; the engine matches drop targets by identity.
type Region interface {
	// Bounds returns the region's current box and whether it is visible.
	Bounds() (Rect, bool)
}

// ScrollContainer is a Region whose content can be scrolled vertically.
type ScrollContainer interface {
	Region
	ScrollTop() float64
	SetScrollTop(float64)
}

// Resolver maps a release point to the drop region under it, or nil.
type Resolver interface {
	RegionAt(p Point) Region
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(p Point) Region

func (f ResolverFunc) RegionAt(p Point) Region { return f(p) }

// Button identifies the pointer button reported with an event.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonMiddle
	ButtonSecondary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonMiddle:
		return "middle"
	case ButtonSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// Event is a pointer sample. Target is rewritten by the engine before it is
// handed to zone hooks so that each hook sees its own region.
type Event struct {
	X, Y   float64
	Button Button
	Target Region
}

// Point returns the event position.
func (e Event) Point() Point { return Point{X: e.X, Y: e.Y} }

func (e Event) withTarget(r Region) Event {
	e.Target = r
	return e
}

// Verdict is returned by Enter and Start hooks. The zero value accepts.
type Verdict uint8

const (
	Accept Verdict = iota
	Reject
)

// Hooks are the optional per-zone callbacks.
type Hooks struct {
	Enter func(ev Event, payload, data any) Verdict
	Over  func(ev Event, payload, data any)
	Leave func(ev Event, data any)
}

// DragHooks are the optional per-draggable callbacks.
type DragHooks struct {
	Start func(payload any, ev Event) Verdict
	End   func(payload any, ev Event)
}

// VisualState is emitted once per tick for every drop zone whose state
// changed. Accepting and Rejecting are never both true.
type VisualState struct {
	Accepting bool
	Rejecting bool
}
