package shared

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	NextScreen key.Binding
	PrevScreen key.Binding
	Add        key.Binding
	Tour       key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	Escape     key.Binding
}

var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("C-d", "page down"),
	),
	NextScreen: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next screen"),
	),
	PrevScreen: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev screen"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add entry"),
	),
	Tour: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "replay tour"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScreen, k.Tour, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.NextScreen, k.PrevScreen, k.Add},
		{k.Tour, k.Help, k.Quit, k.Escape},
	}
}

// TourKeyMap drives the overlay while a tour is active.
type TourKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Dismiss key.Binding
}

var TourKeys = TourKeyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "l", "enter"),
		key.WithHelp("→/l/enter", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc/q", "skip tour"),
	),
}

func (k TourKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Dismiss}
}

func (k TourKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
