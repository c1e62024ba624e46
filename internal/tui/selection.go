package tui

// Selection tracks the selected row and the first visible row of a list
// window. All inputs are clamped; there are no error cases.
//
// While the list is non-empty, Offset() <= Index() < Offset()+Height().
type Selection struct {
	index  int
	offset int
	height int
}

// Index returns the selected position within the visible set.
func (s Selection) Index() int { return s.index }

// Offset returns the first visible row.
func (s Selection) Offset() int { return s.offset }

// Height returns the cached viewport height.
func (s Selection) Height() int { return s.height }

// SetViewportHeight caches the number of list rows. It does not move the
// selection; the next Select re-clamps the scroll offset.
func (s *Selection) SetViewportHeight(h int) {
	s.height = max(h, 0)
}

// Select moves the selection to target, clamped to [0, count-1], and scrolls
// just enough to keep it in view.
func (s *Selection) Select(target, count int) {
	if count <= 0 {
		s.index, s.offset = 0, 0
		return
	}

	// A zero-height viewport still shows the selected row.
	h := max(s.height, 1)

	s.index = clamp(target, 0, count-1)
	if s.index < s.offset {
		s.offset = s.index
	} else if s.index >= s.offset+h {
		s.offset = s.index - h + 1
	}
	s.offset = clamp(s.offset, 0, max(0, count-h))
}

// Move steps the selection one row in dir, wrapping from the last row to the
// first and back. An empty list is a no-op.
func (s *Selection) Move(dir Direction, count int) {
	if count <= 0 {
		return
	}

	next := s.index
	switch dir {
	case Down:
		next++
		if next >= count {
			next = 0
		}
	case Up:
		next--
		if next < 0 {
			next = count - 1
		}
	}
	s.Select(next, count)
}

// Window returns the half-open range of visible rows.
func (s Selection) Window(count int) (start, end int) {
	if count <= 0 {
		return 0, 0
	}
	start = min(s.offset, count)
	end = min(start+max(s.height, 1), count)
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
