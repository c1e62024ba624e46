// Package entry defines the host records browsed by sshdeck.
package entry

import (
	"slices"
	"strings"
)

// Option is a single key/value line inside a host block.
type Option struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Entry is one host block. Options keep their file order and may repeat.
// An empty Tag means the entry is untagged.
type Entry struct {
	Host     string   `json:"host"`
	Options  []Option `json:"options"`
	Comments []string `json:"comments,omitempty"`
	Tag      string   `json:"tag,omitempty"`
}

// New builds an Entry that owns copies of the given slices.
func New(host string, options []Option, comments []string, tag string) Entry {
	return Entry{
		Host:     host,
		Options:  slices.Clone(options),
		Comments: slices.Clone(comments),
		Tag:      tag,
	}
}

// HasTag reports whether the entry belongs to a tag group.
func (e Entry) HasTag() bool {
	return e.Tag != ""
}

// Lookup returns the value of the first option whose key matches key,
// ignoring case.
func (e Entry) Lookup(key string) (string, bool) {
	for _, opt := range e.Options {
		if strings.EqualFold(opt.Key, key) {
			return opt.Value, true
		}
	}
	return "", false
}

// Hostname returns the HostName option, or "" when the entry has none.
func (e Entry) Hostname() string {
	v, _ := e.Lookup("hostname")
	return v
}

// Display renders the entry as plain text:
//
//	Host: web1
//	  HostName => 10.0.0.1
//	  // primary web node
//	  >> production
func (e Entry) Display() string {
	var sb strings.Builder
	sb.WriteString("Host: ")
	sb.WriteString(e.Host)
	sb.WriteByte('\n')

	for _, opt := range e.Options {
		sb.WriteString("  ")
		sb.WriteString(opt.Key)
		sb.WriteString(" => ")
		sb.WriteString(opt.Value)
		sb.WriteByte('\n')
	}

	for _, c := range e.Comments {
		sb.WriteString("  // ")
		sb.WriteString(c)
		sb.WriteByte('\n')
	}

	if e.HasTag() {
		sb.WriteString("  >> ")
		sb.WriteString(e.Tag)
		sb.WriteByte('\n')
	}

	return sb.String()
}
