package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hay-kot/sshdeck/internal/core/entry"
	"github.com/hay-kot/sshdeck/internal/core/styles"
	"github.com/rs/zerolog/log"
)

const (
	detailMinWidth = 30
	detailMargin   = 4
	detailChrome   = 4 // border + padding
)

// DetailPopup shows every field of one entry: its options as a table and its
// comments as rendered notes.
type DetailPopup struct {
	entry entry.Entry
	width int

	view string
}

// NewDetailPopup renders the popup for e, fitting it into a screen of the
// given width.
func NewDetailPopup(e entry.Entry, width int) *DetailPopup {
	d := &DetailPopup{entry: e, width: width}
	d.view = d.render()
	return d
}

// Entry returns the entry the popup was built for.
func (d *DetailPopup) Entry() entry.Entry { return d.entry }

// Width returns the screen width the popup was laid out for.
func (d *DetailPopup) Width() int { return d.width }

// View returns the bordered popup.
func (d *DetailPopup) View() string { return d.view }

// Overlay renders the popup centered over background.
func (d *DetailPopup) Overlay(background string, width, height int) string {
	return Overlay(background, d.view, width, height)
}

func (d *DetailPopup) render() string {
	maxWidth := max(d.width-detailMargin, detailMinWidth)
	inner := maxWidth - detailChrome

	parts := []string{
		styles.ModalTitleStyle.Render(d.entry.Host),
		d.optionsTable(inner),
	}

	if notes := d.notes(inner); notes != "" {
		parts = append(parts, styles.HelpDialogSectionStyle.Render("Notes"), notes)
	}

	parts = append(parts, styles.HelpDialogHelpStyle.Render("enter/esc close"))

	return styles.DetailModalStyle.
		MaxWidth(maxWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (d *DetailPopup) optionsTable(width int) string {
	rows := make([][]string, 0, len(d.entry.Options)+2)
	rows = append(rows, []string{"Host", d.entry.Host})
	for _, opt := range d.entry.Options {
		rows = append(rows, []string{opt.Key, opt.Value})
	}
	if d.entry.Tag != "" {
		rows = append(rows, []string{"Tag", d.entry.Tag})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TextMutedStyle).
		Headers("Key", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.HelpDialogSectionStyle.Padding(0, 1)
			case col == 0:
				return styles.DetailKeyStyle
			default:
				return styles.DetailValueStyle
			}
		})

	if lipgloss.Width(t.Render()) > width {
		t = t.Width(width)
	}
	return t.Render()
}

// notes renders the entry's comments as markdown. Rendering failures fall
// back to the raw text.
func (d *DetailPopup) notes(width int) string {
	if len(d.entry.Comments) == 0 {
		return ""
	}
	raw := strings.Join(d.entry.Comments, "\n")

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithColorProfile(lipgloss.ColorProfile()),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		log.Warn().Err(err).Msg("create notes renderer")
		return styles.TextForegroundStyle.Render(raw)
	}

	out, err := r.Render(raw)
	if err != nil {
		log.Warn().Err(err).Str("host", d.entry.Host).Msg("render notes")
		return styles.TextForegroundStyle.Render(raw)
	}
	return strings.Trim(out, "\n")
}
