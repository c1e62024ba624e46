package tui

import (
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/input"
)

// Dispatcher turns raw input events into commands.
//
// It keeps its own copy of the mode, advanced only by commands it has
// successfully sent. The control loop changes modes only in response to
// those same commands, so the copy agrees with the loop without reading its
// state.
type Dispatcher struct {
	keys     KeyMap
	mode     Mode
	geometry *FrameGeometry
}

// NewDispatcher returns a dispatcher starting in Normal mode. geometry may be
// nil, in which case mouse clicks are ignored.
func NewDispatcher(keys KeyMap, geometry *FrameGeometry) *Dispatcher {
	return &Dispatcher{
		keys:     keys,
		mode:     Normal{},
		geometry: geometry,
	}
}

// Mode returns the dispatcher's view of the current mode.
func (d *Dispatcher) Mode() ModeKind { return d.mode.Kind() }

// Dispatch decodes ev and passes the result to send. The tracked mode only
// advances when send accepts the command. It reports whether a command was
// delivered.
func (d *Dispatcher) Dispatch(ev input.Event, send func(Command) bool) bool {
	cmd, ok := d.Decode(ev)
	if !ok {
		return false
	}
	if !send(cmd) {
		return false
	}
	d.mode = Next(d.mode, cmd, nil)
	return true
}

// Decode maps ev to at most one command for the current mode.
func (d *Dispatcher) Decode(ev input.Event) (Command, bool) {
	switch e := ev.(type) {
	case input.KeyPressEvent:
		return d.decodeKey(e)
	case input.MouseClickEvent:
		return d.decodeClick(e.Mouse())
	case input.MouseWheelEvent:
		return d.decodeWheel(e.Mouse())
	}
	return nil, false
}

func (d *Dispatcher) decodeKey(k input.KeyPressEvent) (Command, bool) {
	if key.Matches(k, d.keys.Interrupt) {
		return FatalSignal{Reason: "ctrl+c"}, true
	}

	switch d.mode.Kind() {
	case KindHelp:
		if key.Matches(k, d.keys.Back) {
			return ExitToNormal{}, true
		}
	case KindSearch:
		switch {
		case key.Matches(k, d.keys.Back):
			return ExitToNormal{}, true
		case key.Matches(k, d.keys.Backspace):
			return BackspaceQuery{}, true
		case key.Matches(k, d.keys.SearchUp):
			return MoveSelection{Dir: Up}, true
		case key.Matches(k, d.keys.SearchDown):
			return MoveSelection{Dir: Down}, true
		}
		// Printable keys are query text, including q, h and /.
		if r, ok := printable(k); ok {
			return AppendToQuery{Char: r}, true
		}
		if key.Matches(k, d.keys.Details) {
			return TogglePopup{}, true
		}
	default:
		switch {
		case key.Matches(k, d.keys.Quit):
			return Exit{}, true
		case key.Matches(k, d.keys.Search):
			return EnterSearch{}, true
		case key.Matches(k, d.keys.Help):
			return ShowHelp{}, true
		case key.Matches(k, d.keys.Up):
			return MoveSelection{Dir: Up}, true
		case key.Matches(k, d.keys.Down):
			return MoveSelection{Dir: Down}, true
		case key.Matches(k, d.keys.Top):
			return SetSelection{Index: 0}, true
		case key.Matches(k, d.keys.Bottom):
			// Clamped to the last visible row by the loop.
			return SetSelection{Index: math.MaxInt}, true
		case key.Matches(k, d.keys.Details):
			return TogglePopup{}, true
		case key.Matches(k, d.keys.Back):
			return ExitToNormal{}, true
		}
	}

	return nil, false
}

func (d *Dispatcher) decodeClick(m input.Mouse) (Command, bool) {
	if m.Button != input.MouseLeft || d.mode.Kind() == KindHelp {
		return nil, false
	}

	g, ok := d.geometry.Load()
	if !ok {
		return nil, false
	}

	idx, ok := g.ListIndex(m.Y)
	if !ok {
		return nil, false
	}
	return SetSelection{Index: idx}, true
}

func (d *Dispatcher) decodeWheel(m input.Mouse) (Command, bool) {
	if d.mode.Kind() == KindHelp {
		return nil, false
	}

	switch m.Button {
	case input.MouseWheelUp:
		return MoveSelection{Dir: Up}, true
	case input.MouseWheelDown:
		return MoveSelection{Dir: Down}, true
	}
	return nil, false
}

// printable returns the character typed by k when it is plain text input.
func printable(k input.KeyPressEvent) (rune, bool) {
	if k.Mod.Contains(input.ModCtrl) || k.Mod.Contains(input.ModAlt) || k.Mod.Contains(input.ModMeta) || k.Mod.Contains(input.ModSuper) {
		return 0, false
	}
	if k.Text == "" || utf8.RuneCountInString(k.Text) != 1 {
		return 0, false
	}

	r, _ := utf8.DecodeRuneInString(k.Text)
	if !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}
