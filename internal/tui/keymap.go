package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings.
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Search     key.Binding
	Back       key.Binding
	NextScreen key.Binding
	PrevScreen key.Binding
	FocusBar   key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Select   key.Binding
	PlayAll  key.Binding
	Queue    key.Binding
	PlayNext key.Binding
	Yank     key.Binding
	Sort     key.Binding

	PrevTab  key.Binding
	NextTab  key.Binding
	RaiseTab key.Binding
	PopTab   key.Binding

	TogglePlay key.Binding
	Next       key.Binding
	Prev       key.Binding
	Stop       key.Binding
	SeekBack   key.Binding
	SeekAhead  key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Mute       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		NextScreen: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next screen"),
		),
		PrevScreen: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous screen"),
		),
		FocusBar: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "focus bar playlist"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play / open"),
		),
		PlayAll: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "play album / push artist"),
		),
		Queue: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "queue song"),
		),
		PlayNext: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "play song next"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy song query"),
		),
		Sort: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "sort by column"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous playlist tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next playlist tab"),
		),
		RaiseTab: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "raise playlist tab"),
		),
		PopTab: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "pop playlist"),
		),
		TogglePlay: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next song"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous song"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "seek back"),
		),
		SeekAhead: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "seek ahead"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
	}
}

// helpGroups orders the bindings for the help overlay.
func (k KeyMap) helpGroups() []struct {
	name     string
	bindings []key.Binding
} {
	return []struct {
		name     string
		bindings []key.Binding
	}{
		{"Global", []key.Binding{k.Quit, k.Help, k.Search, k.Back, k.NextScreen, k.PrevScreen, k.FocusBar}},
		{"Navigation", []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom}},
		{"Lists", []key.Binding{k.Select, k.PlayAll, k.Queue, k.PlayNext, k.Yank, k.Sort}},
		{"Playlists", []key.Binding{k.PrevTab, k.NextTab, k.RaiseTab, k.PopTab}},
		{"Playback", []key.Binding{k.TogglePlay, k.Next, k.Prev, k.Stop, k.SeekBack, k.SeekAhead, k.VolumeUp, k.VolumeDown, k.Mute}},
	}
}
