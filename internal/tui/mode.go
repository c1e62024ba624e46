package tui

import "unicode/utf8"

// ModeKind identifies a Mode variant.
type ModeKind int

const (
	KindNormal ModeKind = iota
	KindHelp
	KindSearch
)

func (k ModeKind) String() string {
	switch k {
	case KindHelp:
		return "help"
	case KindSearch:
		return "search"
	default:
		return "normal"
	}
}

// Mode is the browser's modal state. Exactly one variant is active and a
// transition always replaces the whole value.
type Mode interface {
	Kind() ModeKind
}

// Normal is the initial mode: plain list navigation.
type Normal struct{}

// Help shows the key reference overlay.
type Help struct{}

// Search narrows the list to entries matching Query. Matches holds store
// indices in store order. Cursor is the insertion point in runes.
type Search struct {
	Query   string
	Matches []int
	Cursor  int
}

func (Normal) Kind() ModeKind { return KindNormal }
func (Help) Kind() ModeKind   { return KindHelp }
func (Search) Kind() ModeKind { return KindSearch }

// MatchFunc computes the match set for a search query.
type MatchFunc func(query string) []int

// Next returns the mode that follows m when cmd is applied. Commands that
// have no transition from m return m unchanged. match may be nil when the
// caller only tracks the mode kind.
func Next(m Mode, cmd Command, match MatchFunc) Mode {
	if match == nil {
		match = func(string) []int { return nil }
	}

	switch cur := m.(type) {
	case Normal:
		switch cmd.(type) {
		case EnterSearch:
			return Search{Query: "", Matches: match(""), Cursor: 0}
		case ShowHelp:
			return Help{}
		}
	case Help:
		if _, ok := cmd.(ExitToNormal); ok {
			return Normal{}
		}
	case Search:
		switch c := cmd.(type) {
		case AppendToQuery:
			q := cur.Query + string(c.Char)
			return Search{Query: q, Matches: match(q), Cursor: utf8.RuneCountInString(q)}
		case BackspaceQuery:
			if cur.Query == "" {
				return cur
			}
			_, size := utf8.DecodeLastRuneInString(cur.Query)
			q := cur.Query[:len(cur.Query)-size]
			return Search{Query: q, Matches: match(q), Cursor: utf8.RuneCountInString(q)}
		case ExitToNormal:
			return Normal{}
		}
	}

	return m
}
