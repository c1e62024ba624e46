package tui

import (
	"fmt"
	"strings"
)

// Direction is a selection step.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Command is an instruction decoded by a producer and applied by the control
// loop. The set of commands is closed.
type Command interface {
	command()
}

type (
	// MoveSelection steps the selection one row, wrapping at the ends.
	MoveSelection struct{ Dir Direction }
	// SetSelection jumps to an index of the visible set. Out-of-range values
	// are clamped.
	SetSelection struct{ Index int }
	// EnterSearch starts an incremental search with an empty query.
	EnterSearch struct{}
	// ExitToNormal leaves Search or Help and closes the detail popup.
	ExitToNormal struct{}
	// ShowHelp opens the help overlay.
	ShowHelp struct{}
	// TogglePopup opens or closes the detail popup for the selected entry.
	TogglePopup struct{}
	// AppendToQuery adds one character to the search query.
	AppendToQuery struct{ Char rune }
	// BackspaceQuery removes the last character of the search query.
	BackspaceQuery struct{}
	// Exit ends the session normally.
	Exit struct{}
	// FatalSignal ends the session immediately, skipping queued commands.
	FatalSignal struct{ Reason string }
)

func (MoveSelection) command()  {}
func (SetSelection) command()   {}
func (EnterSearch) command()    {}
func (ExitToNormal) command()   {}
func (ShowHelp) command()       {}
func (TogglePopup) command()    {}
func (AppendToQuery) command()  {}
func (BackspaceQuery) command() {}
func (Exit) command()           {}
func (FatalSignal) command()    {}

// commandName returns the bare type name of cmd for logging.
func commandName(cmd Command) string {
	name := fmt.Sprintf("%T", cmd)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
