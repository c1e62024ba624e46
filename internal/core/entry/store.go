package entry

import "slices"

// Store is the immutable, ordered set of entries for one session.
type Store struct {
	entries []Entry
}

// NewStore copies entries into a new Store.
func NewStore(entries []Entry) *Store {
	owned := make([]Entry, len(entries))
	for i, e := range entries {
		owned[i] = New(e.Host, e.Options, e.Comments, e.Tag)
	}
	return &Store{entries: owned}
}

// Len returns the number of entries.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// At returns the entry at index i. It panics if i is out of range.
func (s *Store) At(i int) Entry {
	return s.entries[i]
}

// All returns a copy of the entry list.
func (s *Store) All() []Entry {
	if s == nil {
		return nil
	}
	return slices.Clone(s.entries)
}

// Entries exposes the backing slice for read-only use by the browser.
// Callers must not modify it.
func (s *Store) Entries() []Entry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Tags returns the distinct tags in first-seen order.
func (s *Store) Tags() []string {
	var tags []string
	for _, e := range s.Entries() {
		if e.HasTag() && !slices.Contains(tags, e.Tag) {
			tags = append(tags, e.Tag)
		}
	}
	return tags
}
