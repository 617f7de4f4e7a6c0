package model

import "charm.land/bubbles/v2/key"

type KeyMap struct {
	List struct {
		Up          key.Binding
		Down        key.Binding
		UpDown      key.Binding
		PageUp      key.Binding
		PageDown    key.Binding
		Home        key.Binding
		End         key.Binding
		PrevSection key.Binding
		NextSection key.Binding
		Sections    key.Binding
		SelectNext  key.Binding
		SelectPrev  key.Binding
		Choose      key.Binding
	}

	Filter struct {
		Open   key.Binding
		Accept key.Binding
		Clear  key.Binding
	}

	Toggle struct {
		Sticky    key.Binding
		DrawUnder key.Binding
		Clip      key.Binding
	}

	// Global key maps
	Quit key.Binding
	Help key.Binding
}

func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}

	km.List.Up = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	)
	km.List.Down = key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	)
	km.List.UpDown = key.NewBinding(
		key.WithKeys("up", "down"),
		key.WithHelp("↑↓", "scroll"),
	)
	km.List.PageUp = key.NewBinding(
		key.WithKeys("pgup", "b"),
		key.WithHelp("b/pgup", "page up"),
	)
	km.List.PageDown = key.NewBinding(
		key.WithKeys("pgdown", "space", "f"),
		key.WithHelp("f/pgdn", "page down"),
	)
	km.List.Home = key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "top"),
	)
	km.List.End = key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "bottom"),
	)
	km.List.PrevSection = key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "prev section"),
	)
	km.List.NextSection = key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next section"),
	)
	km.List.Sections = key.NewBinding(
		key.WithKeys("[", "]"),
		key.WithHelp("[ ]", "sections"),
	)
	km.List.SelectNext = key.NewBinding(
		key.WithKeys("tab", "ctrl+n"),
		key.WithHelp("tab", "select next"),
	)
	km.List.SelectPrev = key.NewBinding(
		key.WithKeys("shift+tab", "ctrl+p"),
		key.WithHelp("shift+tab", "select prev"),
	)
	km.List.Choose = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	)

	km.Filter.Open = key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	)
	km.Filter.Accept = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	)
	km.Filter.Clear = key.NewBinding(
		key.WithKeys("esc", "alt+esc"),
		key.WithHelp("esc", "clear filter"),
	)

	km.Toggle.Sticky = key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sticky"),
	)
	km.Toggle.DrawUnder = key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "draw under header"),
	)
	km.Toggle.Clip = key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "clip to padding"),
	)

	return km
}
