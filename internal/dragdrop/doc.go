// Package dragdrop is a pointer-driven drag-and-drop engine.
//
// Hosts register rectangular regions on named channels through a Registry.
// A Session turns raw pointer input into a drag: it waits for the pointer to
// travel past a distance threshold, then runs one tick per move (and one per
// re-poll interval while the pointer rests), and finally resolves a drop
// target on release. Each tick refreshes the geometry of every zone on the
// channel before any zone is updated, so overlapping zones always see the
// same frame.
//
// The engine is single-threaded. Every call, including Scheduler callbacks,
// must happen on the host's event loop.
package dragdrop
