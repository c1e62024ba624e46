// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color

	// TagSaturation and TagValue shape generated tag badge colors.
	TagSaturation float64
	TagValue      float64
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	SuccessStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style

	// Text styles.
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextMutedStyle          lipgloss.Style

	// Browser chrome.
	TitleStyle        lipgloss.Style
	CountStyle        lipgloss.Style
	SearchPromptStyle lipgloss.Style
	SearchQueryStyle  lipgloss.Style
	ModeLabelStyle    lipgloss.Style
	EmptyStateStyle   lipgloss.Style

	// List rows.
	ListItemStyle     lipgloss.Style
	ListSelectedStyle lipgloss.Style
	ListCursorStyle   lipgloss.Style
	HostnameStyle     lipgloss.Style
	TagBadgeStyle     lipgloss.Style

	// Overlays.
	ModalStyle             lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	DetailModalStyle       lipgloss.Style
	DetailKeyStyle         lipgloss.Style
	DetailValueStyle       lipgloss.Style
	HelpDialogModalStyle   lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style
	HelpDialogHelpStyle    lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	CountStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		PaddingLeft(1)
	SearchPromptStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)
	SearchQueryStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	ModeLabelStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	EmptyStateStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		PaddingLeft(2)

	ListItemStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	ListSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Background(ColorSurface).
		Bold(true)
	ListCursorStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	HostnameStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	TagBadgeStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	DetailModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1)
	DetailKeyStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Padding(0, 1)
	DetailValueStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Padding(0, 1)
	HelpDialogModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	HelpDialogSectionStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	HelpDialogHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
}

// DisableColor switches lipgloss to plain ASCII output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// TagColor returns a deterministic badge color for a tag. The same tag always
// produces the same color.
func TagColor(tag string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tag))
	hue := float64(h.Sum32() % 360)
	sat, val := CurrentPalette.TagSaturation, CurrentPalette.TagValue
	if sat == 0 || val == 0 {
		sat, val = 0.45, 0.85
	}
	return lipgloss.Color(colorful.Hsv(hue, sat, val).Hex())
}

// TagBadge renders a tag as a colored badge.
func TagBadge(tag string) string {
	return TagBadgeStyle.Background(TagColor(tag)).Render(tag)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
