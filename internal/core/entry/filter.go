package entry

import "strings"

// Filter returns the indices of entries matching query, in store order.
//
// An empty query matches everything. Otherwise an entry matches when query is
// a case-insensitive substring of its host or of the value of any HostName
// option.
func Filter(entries []Entry, query string) []int {
	out := make([]int, 0, len(entries))
	if query == "" {
		for i := range entries {
			out = append(out, i)
		}
		return out
	}

	needle := strings.ToLower(query)
	for i, e := range entries {
		if matches(e, needle) {
			out = append(out, i)
		}
	}
	return out
}

func matches(e Entry, needle string) bool {
	if strings.Contains(strings.ToLower(e.Host), needle) {
		return true
	}
	for _, opt := range e.Options {
		if strings.EqualFold(opt.Key, "hostname") && strings.Contains(strings.ToLower(opt.Value), needle) {
			return true
		}
	}
	return false
}
