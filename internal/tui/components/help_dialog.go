// Package components provides overlay widgets drawn on top of the host list.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/hay-kot/sshdeck/internal/core/styles"
)

// HelpEntry represents a single keyboard shortcut entry.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpDialogSection groups related help entries under a title.
type HelpDialogSection struct {
	Title   string
	Entries []HelpEntry
}

// SectionsFromBindings builds help sections from grouped key bindings. The
// titles are matched to groups by position; extra groups get no title.
// Disabled bindings are skipped.
func SectionsFromBindings(titles []string, groups [][]key.Binding) []HelpDialogSection {
	sections := make([]HelpDialogSection, 0, len(groups))
	for i, group := range groups {
		var s HelpDialogSection
		if i < len(titles) {
			s.Title = titles[i]
		}
		for _, b := range group {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			s.Entries = append(s.Entries, HelpEntry{Key: h.Key, Desc: h.Desc})
		}
		sections = append(sections, s)
	}
	return sections
}

// HelpDialog displays all available keyboard shortcuts.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
}

// NewHelpDialog creates a new help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpDialogSection) *HelpDialog {
	return &HelpDialog{
		title:    title,
		sections: sections,
	}
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	title := styles.TextForegroundBoldStyle.Render(h.title)

	var lines []string
	separator := styles.TextMutedStyle.Render(strings.Repeat(styles.IconDivider, 25))

	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.HelpDialogSectionStyle.Render(section.Title), separator)
		}

		for _, entry := range section.Entries {
			lines = append(lines, formatKeyDesc(entry.Key, entry.Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(lines, "\n"),
		styles.HelpDialogHelpStyle.Render("esc close"),
	)

	return styles.HelpDialogModalStyle.Render(content)
}

// Overlay renders the dialog centered over background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	return Overlay(background, h.View(), width, height)
}

// formatKeyDesc pads the key to a fixed display width so descriptions line up.
func formatKeyDesc(key, desc string) string {
	const keyWidth = 12

	pad := max(keyWidth-lipgloss.Width(key), 1)
	return styles.TextPrimaryBoldStyle.Render(key+strings.Repeat(" ", pad)) + styles.TextForegroundStyle.Render(desc)
}
