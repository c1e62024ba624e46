package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Overlay draws modal centered on top of background, which is treated as a
// width x height canvas. Background cells outside the modal keep their
// styling; a modal larger than the canvas is clipped.
func Overlay(background, modal string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	bg := strings.Split(background, "\n")
	for len(bg) < height {
		bg = append(bg, "")
	}
	bg = bg[:height]

	fg := strings.Split(modal, "\n")
	if len(fg) > height {
		fg = fg[:height]
	}
	modalW := min(lipgloss.Width(modal), width)

	x := max((width-modalW)/2, 0)
	y := max((height-len(fg))/2, 0)

	for i, line := range fg {
		row := y + i
		base := bg[row]
		if w := ansi.StringWidth(base); w < width {
			base += strings.Repeat(" ", width-w)
		}

		line = ansi.Truncate(line, modalW, "")
		if w := ansi.StringWidth(line); w < modalW {
			line += strings.Repeat(" ", modalW-w)
		}

		left := ansi.Truncate(base, x, "")
		right := ansi.TruncateLeft(base, x+modalW, "")
		bg[row] = left + ansi.ResetStyle + line + ansi.ResetStyle + right
	}

	return strings.Join(bg, "\n")
}
