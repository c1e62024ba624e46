// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/input"
)

// StripANSI removes ANSI escape codes and trailing whitespace so rendered
// frames can be compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	var result []string
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " ")
		result = append(result, trimmed)
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press event for a printable rune, shaped the way
// the terminal decoder reports it: upper case letters carry the shift
// modifier.
func KeyPress(r rune) input.KeyPressEvent {
	k := input.KeyPressEvent{Code: r, Text: string(r)}
	if unicode.IsUpper(r) {
		k.Code = unicode.ToLower(r)
		k.ShiftedCode = r
		k.Mod |= input.ModShift
	}
	return k
}

// KeyPresses creates one key press event per rune of s.
func KeyPresses(s string) []input.Event {
	events := make([]input.Event, 0, len(s))
	for _, r := range s {
		events = append(events, KeyPress(r))
	}
	return events
}

// KeyCode creates a key press event for a special key such as
// input.KeyEnter or input.KeyUp.
func KeyCode(code rune) input.KeyPressEvent {
	k := input.KeyPressEvent{Code: code}
	if code == input.KeySpace {
		k.Text = " "
	}
	return k
}

// Ctrl creates a ctrl+<r> key press event.
func Ctrl(r rune) input.KeyPressEvent {
	return input.KeyPressEvent{Code: r, Mod: input.ModCtrl}
}

// KeyEsc creates an escape key press event.
func KeyEsc() input.KeyPressEvent { return KeyCode(input.KeyEscape) }

// KeyEnter creates an enter key press event.
func KeyEnter() input.KeyPressEvent { return KeyCode(input.KeyEnter) }

// KeyBackspace creates a backspace key press event.
func KeyBackspace() input.KeyPressEvent { return KeyCode(input.KeyBackspace) }

// KeyUp creates an up arrow key press event.
func KeyUp() input.KeyPressEvent { return KeyCode(input.KeyUp) }

// KeyDown creates a down arrow key press event.
func KeyDown() input.KeyPressEvent { return KeyCode(input.KeyDown) }

// Click creates a left button press at column x, row y (zero based).
func Click(x, y int) input.MouseClickEvent {
	return input.MouseClickEvent{X: x, Y: y, Button: input.MouseLeft}
}

// Wheel creates a scroll wheel event.
func Wheel(up bool) input.MouseWheelEvent {
	btn := input.MouseWheelDown
	if up {
		btn = input.MouseWheelUp
	}
	return input.MouseWheelEvent{Button: btn}
}
