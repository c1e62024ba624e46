// Package sshconfig reads OpenSSH client configuration files into browser
// entries.
package sshconfig

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/sshdeck/internal/core/entry"
	"github.com/kevinburke/ssh_config"
	"github.com/rs/zerolog/log"
)

// tagPattern matches the text of a group marker comment such as
// "# --- production ---". The marker tags every host that follows it.
var tagPattern = regexp.MustCompile(`^-+\s+([^-]+?)\s+-+$`)

// Parse decodes a single ssh_config document.
//
// Each Host block becomes one entry. Comments directly above a Host line
// belong to that host; other comments belong to the block they sit in.
// Settings before the first Host line are global defaults and are not
// returned.
func Parse(r io.Reader) ([]entry.Entry, error) {
	cfg, err := ssh_config.Decode(r)
	if err != nil {
		return nil, err
	}

	var (
		out     []entry.Entry
		tag     string
		leading []string
	)

	for i, h := range cfg.Hosts {
		// Hosts[0] is the implicit block holding everything above the first
		// Host line.
		implicit := i == 0
		last := i == len(cfg.Hosts)-1

		var (
			options  []entry.Option
			comments = leading
			run      []string
			nextTag  = tag
		)
		leading = nil

		if c := strings.TrimSpace(h.EOLComment); c != "" {
			comments = append(comments, c)
		}

		for _, node := range h.Nodes {
			switch n := node.(type) {
			case *ssh_config.KV:
				comments = append(comments, run...)
				run = nil
				options = append(options, entry.Option{Key: n.Key, Value: n.Value})
			case *ssh_config.Empty:
				text := strings.TrimSpace(n.Comment)
				if text == "" {
					comments = append(comments, run...)
					run = nil
					continue
				}
				if m := tagPattern.FindStringSubmatch(text); m != nil {
					comments = append(comments, run...)
					run = nil
					nextTag = strings.TrimSpace(m[1])
					continue
				}
				run = append(run, text)
			}
		}

		if last {
			comments = append(comments, run...)
		} else {
			leading = run
		}

		if !implicit {
			out = append(out, entry.New(hostName(h), options, comments, tag))
		}
		tag = nextTag
	}

	return out, nil
}

func hostName(h *ssh_config.Host) string {
	parts := make([]string, 0, len(h.Patterns))
	for _, p := range h.Patterns {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) ([]entry.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	entries, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

// Resolve expands each glob pattern to the files it matches. A leading "~"
// is replaced by the home directory. Duplicate paths are dropped and order
// follows the pattern list.
func Resolve(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		expanded := ExpandHome(pattern)

		matches, err := doublestar.FilepathGlob(expanded)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}

		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if !slices.Contains(files, m) {
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// Load resolves patterns and parses every matching file in order.
func Load(patterns []string) ([]entry.Entry, error) {
	files, err := Resolve(patterns)
	if err != nil {
		return nil, err
	}

	var all []entry.Entry
	for _, f := range files {
		entries, err := ParseFile(f)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("file", f).Int("hosts", len(entries)).Msg("loaded ssh config")
		all = append(all, entries...)
	}
	return all, nil
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
