package styles

import (
	"maps"
	"slices"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// theme is a compact palette definition. The two tag tones set the
// saturation and value of generated tag badge colors so badges stay readable
// on the theme's background.
type theme struct {
	accent, accent2 string
	text, dim       string
	base, raised    string
	good, warn, bad string
	tagSat, tagVal  float64
}

func (t theme) palette() Palette {
	return Palette{
		Primary:       lipgloss.Color(t.accent),
		Secondary:     lipgloss.Color(t.accent2),
		Foreground:    lipgloss.Color(t.text),
		Muted:         lipgloss.Color(t.dim),
		Background:    lipgloss.Color(t.base),
		Surface:       lipgloss.Color(t.raised),
		Success:       lipgloss.Color(t.good),
		Warning:       lipgloss.Color(t.warn),
		Error:         lipgloss.Color(t.bad),
		TagSaturation: t.tagSat,
		TagValue:      t.tagVal,
	}
}

var themes = map[string]Palette{
	"tokyo-night": theme{
		accent: "#7aa2f7", accent2: "#7dcfff",
		text: "#c0caf5", dim: "#565f89",
		base: "#1a1b26", raised: "#3b4261",
		good: "#9ece6a", warn: "#e0af68", bad: "#f7768e",
		tagSat: 0.45, tagVal: 0.85,
	}.palette(),
	"gruvbox": theme{
		accent: "#83a598", accent2: "#8ec07c",
		text: "#ebdbb2", dim: "#665c54",
		base: "#282828", raised: "#3c3836",
		good: "#b8bb26", warn: "#fabd2f", bad: "#fb4934",
		tagSat: 0.55, tagVal: 0.75,
	}.palette(),
	"catppuccin": theme{
		accent: "#89b4fa", accent2: "#94e2d5",
		text: "#cdd6f4", dim: "#6c7086",
		base: "#1e1e2e", raised: "#313244",
		good: "#a6e3a1", warn: "#f9e2af", bad: "#f38ba8",
		tagSat: 0.35, tagVal: 0.9,
	}.palette(),
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	return slices.Sorted(maps.Keys(themes))
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

func colorHexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	cc, err := colorful.Hex(string(c))
	if err != nil {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)

	// Notes are rendered inside a bordered popup; drop the outer margin.
	var zero uint
	cfg.Document.Margin = &zero
	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}
