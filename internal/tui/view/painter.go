// Package view paints browser frames to the terminal.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/x/ansi"
	"github.com/hay-kot/sshdeck/internal/core/entry"
	"github.com/hay-kot/sshdeck/internal/core/styles"
	"github.com/hay-kot/sshdeck/internal/tui"
	"github.com/hay-kot/sshdeck/internal/tui/components"
)

// Rows above and below the list.
const (
	headerRows = 2 // title bar, mode line
	footerRows = 1
)

var helpSectionTitles = []string{"Navigation", "Actions", "Exit"}

// Painter draws frames for the control loop. It is only used from the loop
// goroutine.
type Painter struct {
	out   io.Writer
	title string
	keys  tui.KeyMap
	help  help.Model

	helpDialog *components.HelpDialog

	popup      *components.DetailPopup
	popupIndex int
}

// NewPainter returns a Painter writing to out. Styles are read when it is
// created, so the theme must already be applied.
func NewPainter(out io.Writer, title string, keys tui.KeyMap) *Painter {
	h := help.New()
	h.Styles.ShortKey = styles.TextPrimaryBoldStyle
	h.Styles.ShortDesc = styles.TextMutedStyle
	h.Styles.ShortSeparator = styles.TextMutedStyle
	h.Styles.Ellipsis = styles.TextMutedStyle

	return &Painter{
		out:   out,
		title: title,
		keys:  keys,
		help:  h,
		helpDialog: components.NewHelpDialog("Keyboard shortcuts",
			components.SectionsFromBindings(helpSectionTitles, keys.FullHelp())),
		popupIndex: -1,
	}
}

// chrome returns how many header and footer rows fit at height. The footer
// goes first on short terminals, then the header; the list keeps one row.
func chrome(height int) (header, footer int) {
	switch {
	case height >= headerRows+1+footerRows:
		return headerRows, footerRows
	case height >= headerRows+1:
		return headerRows, 0
	default:
		return 0, 0
	}
}

// Layout puts the list below the title bar and mode line, above the footer.
func (p *Painter) Layout(_, height int) tui.Layout {
	header, footer := chrome(height)
	return tui.Layout{
		ListTop:  header,
		ListRows: max(height-header-footer, 1),
	}
}

// Render paints v in a single write: cursor home, each line followed by an
// erase to end of line, then an erase of whatever is left below.
func (p *Painter) Render(v tui.View, width, height int) error {
	lines := p.Frame(v, width, height)

	var b strings.Builder
	b.WriteString(ansi.CursorHomePosition)
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(line)
		b.WriteString(ansi.EraseLineRight)
	}
	b.WriteString(ansi.EraseScreenBelow)

	_, err := io.WriteString(p.out, b.String())
	return err
}

// Frame builds the lines of one frame, each no wider than width.
func (p *Painter) Frame(v tui.View, width, height int) []string {
	layout := p.Layout(width, height)
	header, footer := chrome(height)

	lines := make([]string, 0, header+layout.ListRows+footer)
	if header > 0 {
		lines = append(lines, p.titleBar(v), p.modeLine(v))
	}
	lines = append(lines, p.list(v, width, layout.ListRows)...)
	if footer > 0 {
		lines = append(lines, p.footer(v, width))
	}

	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], width, "…")
	}

	switch {
	case v.Mode.Kind() == tui.KindHelp:
		lines = strings.Split(p.helpDialog.Overlay(strings.Join(lines, "\n"), width, len(lines)), "\n")
	case v.PopupOpen:
		if popup := p.detail(v, width); popup != nil {
			lines = strings.Split(popup.Overlay(strings.Join(lines, "\n"), width, len(lines)), "\n")
		}
	default:
		p.popup, p.popupIndex = nil, -1
	}

	return lines
}

func (p *Painter) titleBar(v tui.View) string {
	count := fmt.Sprintf("%d hosts", len(v.Entries))
	if len(v.Visible) != len(v.Entries) {
		count = fmt.Sprintf("%d of %d hosts", len(v.Visible), len(v.Entries))
	}
	return styles.TitleStyle.Render(p.title) + styles.CountStyle.Render(count)
}

func (p *Painter) modeLine(v tui.View) string {
	switch m := v.Mode.(type) {
	case tui.Search:
		prompt := styles.SearchPromptStyle.Render(styles.IconSearch + " ")
		query := styles.SearchQueryStyle.Render(m.Query)
		cursor := styles.ListCursorStyle.Render("_")
		return prompt + query + cursor
	case tui.Help:
		return styles.ModeLabelStyle.Render("HELP")
	default:
		return styles.TextMutedStyle.Render("press / to search, h for help")
	}
}

func (p *Painter) list(v tui.View, width, rows int) []string {
	out := make([]string, 0, rows)

	if len(v.Visible) == 0 {
		msg := "no hosts loaded"
		if v.Mode.Kind() == tui.KindSearch {
			msg = "no matching hosts"
		}
		out = append(out, styles.EmptyStateStyle.Render(msg))
	}

	end := min(v.Offset+rows, len(v.Visible))
	for i := v.Offset; i < end; i++ {
		out = append(out, p.row(v.Entries[v.Visible[i]], i == v.Selected, width))
	}

	for len(out) < rows {
		out = append(out, "")
	}
	return out
}

func (p *Painter) row(e entry.Entry, selected bool, width int) string {
	cursor := "  "
	host := styles.ListItemStyle.Render(e.Host)
	if selected {
		cursor = styles.ListCursorStyle.Render(styles.IconCursor) + " "
		host = styles.ListSelectedStyle.Render(e.Host)
	}

	var b strings.Builder
	b.WriteString(cursor)
	b.WriteString(host)

	if name := e.Hostname(); name != "" && name != e.Host {
		b.WriteString(" ")
		b.WriteString(styles.HostnameStyle.Render(name))
	}

	line := b.String()
	if e.Tag != "" {
		badge := styles.TagBadge(e.Tag)
		// Right align the badge when it fits.
		gap := width - ansi.StringWidth(line) - ansi.StringWidth(badge)
		if gap >= 1 {
			line += strings.Repeat(" ", gap) + badge
		}
	}
	return line
}

func (p *Painter) footer(v tui.View, width int) string {
	p.help.Width = width
	return p.help.ShortHelpView(p.keys.ShortHelp(v.Mode.Kind()))
}

// detail returns the popup for the selected entry, rebuilding it only when
// the entry or the width changes.
func (p *Painter) detail(v tui.View, width int) *components.DetailPopup {
	if v.Selected < 0 || v.Selected >= len(v.Visible) {
		return nil
	}
	idx := v.Visible[v.Selected]

	if p.popup == nil || p.popupIndex != idx || p.popup.Width() != width {
		p.popup = components.NewDetailPopup(v.Entries[idx], width)
		p.popupIndex = idx
	}
	return p.popup
}
