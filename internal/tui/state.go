package tui

import (
	"slices"

	"github.com/hay-kot/sshdeck/internal/core/entry"
)

// Outcome reports what the control loop should do after applying a command.
type Outcome int

const (
	Continue Outcome = iota
	Quit
	Interrupted
)

// BrowserState is the mutable UI state. It is owned by the control loop and
// never shared with producers.
type BrowserState struct {
	store     *entry.Store
	all       []int
	sel       Selection
	mode      Mode
	popupOpen bool
}

// NewBrowserState returns the initial state for store: Normal mode, first
// entry selected, popup closed.
func NewBrowserState(store *entry.Store) *BrowserState {
	s := &BrowserState{
		store: store,
		all:   entry.Filter(store.Entries(), ""),
		mode:  Normal{},
	}
	s.sel.Select(0, len(s.all))
	return s
}

func (s *BrowserState) match(query string) []int {
	return entry.Filter(s.store.Entries(), query)
}

// Visible returns the store indices currently eligible for display: the
// match set in Search mode, every entry otherwise. Callers must not modify
// the result.
func (s *BrowserState) Visible() []int {
	if m, ok := s.mode.(Search); ok {
		return m.Matches
	}
	return s.all
}

// Mode returns the active mode.
func (s *BrowserState) Mode() Mode { return s.mode }

// Selection returns a copy of the selection state.
func (s *BrowserState) Selection() Selection { return s.sel }

// PopupOpen reports whether the detail popup is showing.
func (s *BrowserState) PopupOpen() bool { return s.popupOpen }

// Selected returns the entry under the cursor.
func (s *BrowserState) Selected() (entry.Entry, bool) {
	idx, ok := s.selectedStoreIndex()
	if !ok {
		return entry.Entry{}, false
	}
	return s.store.At(idx), true
}

func (s *BrowserState) selectedStoreIndex() (int, bool) {
	vis := s.Visible()
	i := s.sel.Index()
	if i < 0 || i >= len(vis) {
		return 0, false
	}
	return vis[i], true
}

// SetViewportHeight records the number of list rows available in the next
// frame and re-clamps the scroll offset.
func (s *BrowserState) SetViewportHeight(h int) {
	s.sel.SetViewportHeight(h)
	s.sel.Select(s.sel.Index(), len(s.Visible()))
}

// Apply mutates the state for cmd and reports whether the loop should keep
// running.
func (s *BrowserState) Apply(cmd Command) Outcome {
	switch c := cmd.(type) {
	case FatalSignal:
		return Interrupted
	case Exit:
		if s.mode.Kind() == KindNormal {
			return Quit
		}
		return Continue
	case MoveSelection:
		if s.mode.Kind() != KindHelp {
			s.sel.Move(c.Dir, len(s.Visible()))
		}
		return Continue
	case SetSelection:
		if s.mode.Kind() != KindHelp {
			s.sel.Select(c.Index, len(s.Visible()))
		}
		return Continue
	case TogglePopup:
		s.togglePopup()
		return Continue
	case ExitToNormal:
		// Esc in Normal only dismisses the popup.
		s.popupOpen = false
	}

	s.transition(cmd)
	return Continue
}

func (s *BrowserState) togglePopup() {
	if s.popupOpen {
		s.popupOpen = false
		return
	}
	if s.mode.Kind() == KindHelp {
		return
	}
	if _, ok := s.selectedStoreIndex(); ok {
		s.popupOpen = true
	}
}

func (s *BrowserState) transition(cmd Command) {
	prev := s.mode
	next := Next(prev, cmd, s.match)
	if sameMode(prev, next) {
		return
	}

	// Remember which entry was under the cursor so leaving search keeps it.
	selected, hadSelection := s.selectedStoreIndex()

	s.mode = next
	if prev.Kind() != next.Kind() {
		s.popupOpen = false
	}

	count := len(s.Visible())
	switch {
	case next.Kind() == KindSearch:
		// Every query change starts at the best (first) match.
		s.sel.Select(0, count)
	case prev.Kind() == KindSearch && hadSelection:
		s.sel.Select(slices.Index(s.all, selected), count)
	default:
		s.sel.Select(s.sel.Index(), count)
	}
}

func sameMode(a, b Mode) bool {
	sa, aok := a.(Search)
	sb, bok := b.(Search)
	if aok && bok {
		return sa.Query == sb.Query
	}
	return a.Kind() == b.Kind()
}

// View is a read-only snapshot handed to the renderer for one frame.
type View struct {
	Entries   []entry.Entry // the full store; index with Visible
	Visible   []int
	Selected  int // position within Visible
	Offset    int
	Height    int
	Mode      Mode
	PopupOpen bool
}

// View returns the snapshot for the current frame. Slices are shared with
// the state, which only ever replaces them, so the snapshot stays valid.
func (s *BrowserState) View() View {
	return View{
		Entries:   s.store.Entries(),
		Visible:   s.Visible(),
		Selected:  s.sel.Index(),
		Offset:    s.sel.Offset(),
		Height:    s.sel.Height(),
		Mode:      s.mode,
		PopupOpen: s.popupOpen,
	}
}

// SelectedEntry returns the entry under the cursor in v.
func (v View) SelectedEntry() (entry.Entry, bool) {
	if v.Selected < 0 || v.Selected >= len(v.Visible) {
		return entry.Entry{}, false
	}
	return v.Entries[v.Visible[v.Selected]], true
}
