package tui

import "charm.land/bubbles/v2/key"

// keyMap holds the bindings for normal and insert mode.
type keyMap struct {
	Edit     key.Binding
	Review   key.Binding
	Cancel   key.Binding
	Copy     key.Binding
	Download key.Binding
	Theme    key.Binding
	Focus    key.Binding
	Up       key.Binding
	Down     key.Binding
	Help     key.Binding
	Quit     key.Binding

	// insert mode
	Leave        key.Binding
	InsertReview key.Binding
	Indent       key.Binding
	ForceQuit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Edit: key.NewBinding(
			key.WithKeys("i", "enter"),
			key.WithHelp("i", "edit"),
		),
		Review: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "review"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cancel review"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy review"),
		),
		Download: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save review.txt"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch pane"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "stop editing"),
		),
		InsertReview: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "review"),
		),
		Indent: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "indent"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
	}
}

// normalHelp is the keyMap as seen from normal mode.
type normalHelp struct{ k keyMap }

func (h normalHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Edit, h.k.Review, h.k.Copy, h.k.Download, h.k.Theme, h.k.Help, h.k.Quit}
}

func (h normalHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Edit, h.k.Review, h.k.Cancel},
		{h.k.Copy, h.k.Download, h.k.Theme},
		{h.k.Focus, h.k.Up, h.k.Down},
		{h.k.Help, h.k.Quit},
	}
}

// insertHelp is the keyMap as seen from insert mode.
type insertHelp struct{ k keyMap }

func (h insertHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Leave, h.k.InsertReview, h.k.Indent, h.k.ForceQuit}
}

func (h insertHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
