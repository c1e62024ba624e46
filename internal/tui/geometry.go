package tui

import "sync/atomic"

// Geometry records where the list was painted in the last frame. Clicks are
// resolved against it because they refer to what is on screen.
type Geometry struct {
	Top    int // screen row of the first list row
	Rows   int // list rows painted; 0 means unbounded
	Offset int // scroll offset at paint time
	Count  int // size of the visible set at paint time
}

// ListIndex maps a screen row to an index of the visible set. The result is
// row - Top + Offset and is only accepted inside [0, Count).
func (g Geometry) ListIndex(row int) (int, bool) {
	rel := row - g.Top
	if rel < 0 || (g.Rows > 0 && rel >= g.Rows) {
		return 0, false
	}

	idx := rel + g.Offset
	if idx < 0 || idx >= g.Count {
		return 0, false
	}
	return idx, true
}

// FrameGeometry publishes the latest Geometry from the control loop to the
// input producer. The loop is the only writer.
type FrameGeometry struct {
	p atomic.Pointer[Geometry]
}

// Store publishes g.
func (f *FrameGeometry) Store(g Geometry) {
	f.p.Store(&g)
}

// Load returns the last published geometry, if any frame has been painted.
func (f *FrameGeometry) Load() (Geometry, bool) {
	if f == nil {
		return Geometry{}, false
	}
	g := f.p.Load()
	if g == nil {
		return Geometry{}, false
	}
	return *g, true
}
