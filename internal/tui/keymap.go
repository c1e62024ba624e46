package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the browser's key bindings. The dispatcher matches against
// them and the footer renders their help text.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Search    key.Binding
	Help      key.Binding
	Details   key.Binding
	Back      key.Binding
	Backspace key.Binding
	Quit      key.Binding
	Interrupt key.Binding

	// SearchUp and SearchDown are the navigation keys that stay active while
	// typing a query; letters are query text there.
	SearchUp   key.Binding
	SearchDown key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "shift+g", "G"),
			key.WithHelp("G", "bottom"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "help"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete char"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "abort"),
		),
		SearchUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		SearchDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer for a mode.
func (k KeyMap) ShortHelp(mode ModeKind) []key.Binding {
	switch mode {
	case KindSearch:
		return []key.Binding{k.SearchUp, k.SearchDown, k.Details, k.Backspace, k.Back}
	case KindHelp:
		return []key.Binding{k.Back, k.Interrupt}
	default:
		return []key.Binding{k.Up, k.Down, k.Search, k.Details, k.Help, k.Quit}
	}
}

// FullHelp returns every binding grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Search, k.Details, k.Help, k.Back},
		{k.Quit, k.Interrupt},
	}
}
