// Package terminal switches the controlling terminal into the state the
// browser needs and puts it back exactly once, whatever ends the session.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the browser is started without a tty.
var ErrNotTerminal = errors.New("not a terminal")

// RawMode toggles line discipline on the input device.
type RawMode interface {
	MakeRaw() error
	Restore() error
}

// FileRawMode puts a file descriptor into raw mode with x/term.
type FileRawMode struct {
	fd    int
	state *term.State
}

// NewFileRawMode returns a RawMode for f.
func NewFileRawMode(f *os.File) *FileRawMode {
	return &FileRawMode{fd: int(f.Fd())}
}

func (r *FileRawMode) MakeRaw() error {
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return err
	}
	r.state = state
	return nil
}

func (r *FileRawMode) Restore() error {
	if r.state == nil {
		return nil
	}
	return term.Restore(r.fd, r.state)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SizeOf returns a size probe for f.
func SizeOf(f *os.File) func() (int, int, error) {
	fd := int(f.Fd())
	return func() (int, int, error) { return term.GetSize(fd) }
}

// Options selects optional terminal features.
type Options struct {
	Mouse bool
}

// Manager owns the terminal for one session. Acquire applies each change in
// order and records how to undo it; Release undoes them in reverse and runs
// at most once.
type Manager struct {
	out  io.Writer
	raw  RawMode
	opts Options

	mu       sync.Mutex
	undo     []step
	done     bool
	released int
	err      error
}

type step struct {
	name string
	fn   func() error
}

// New returns a Manager writing control sequences to out.
func New(out io.Writer, raw RawMode, opts Options) *Manager {
	return &Manager{out: out, raw: raw, opts: opts}
}

// Acquire enters raw mode and the alternate screen, enables mouse reporting
// when configured and hides the cursor. When a step fails, the steps already
// applied are undone before returning.
func (m *Manager) Acquire() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return errors.New("terminal already released")
	}

	if err := m.raw.MakeRaw(); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	m.push("raw mode", m.raw.Restore)

	if err := m.write(ansi.SetModeAltScreenSaveCursor); err != nil {
		return m.abort("enter alternate screen", err)
	}
	m.push("alternate screen", func() error {
		return m.write(ansi.EraseEntireScreen + ansi.ResetModeAltScreenSaveCursor)
	})

	if m.opts.Mouse {
		if err := m.write(ansi.SetModeMouseButtonEvent + ansi.SetModeMouseExtSgr); err != nil {
			return m.abort("enable mouse", err)
		}
		m.push("mouse", func() error {
			return m.write(ansi.ResetModeMouseExtSgr + ansi.ResetModeMouseButtonEvent)
		})
	}

	if err := m.write(ansi.HideCursor); err != nil {
		return m.abort("hide cursor", err)
	}
	m.push("cursor", func() error { return m.write(ansi.ShowCursor) })

	log.Debug().Bool("mouse", m.opts.Mouse).Msg("terminal acquired")
	return nil
}

// Release restores everything Acquire changed. It is safe to call from any
// exit path and from several goroutines; only the first call does work and
// later calls return its result.
func (m *Manager) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return m.err
	}
	m.done = true
	m.released++

	m.err = m.unwind()
	if m.err != nil {
		log.Error().Err(m.err).Msg("terminal restore incomplete")
	} else {
		log.Debug().Msg("terminal restored")
	}
	return m.err
}

// Releases reports how many times restoration actually ran.
func (m *Manager) Releases() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}

func (m *Manager) push(name string, fn func() error) {
	m.undo = append(m.undo, step{name: name, fn: fn})
}

// abort undoes the steps applied so far and consumes the release, so a
// deferred Release after a failed Acquire is a no-op.
func (m *Manager) abort(what string, cause error) error {
	undoErr := m.unwind()
	m.done = true
	m.released++
	m.err = undoErr
	return errors.Join(fmt.Errorf("%s: %w", what, cause), undoErr)
}

// unwind runs every undo step in reverse. A failing step does not stop the
// rest.
func (m *Manager) unwind() error {
	var errs []error
	for i := len(m.undo) - 1; i >= 0; i-- {
		s := m.undo[i]
		if err := s.fn(); err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", s.name, err))
		}
	}
	m.undo = nil
	return errors.Join(errs...)
}

func (m *Manager) write(seq string) error {
	_, err := io.WriteString(m.out, seq)
	return err
}
