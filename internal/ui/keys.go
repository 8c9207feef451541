package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap describes the bindings shown in the footer. Input handling lives in
// the input package; these exist for display.
type keyMap struct {
	Search key.Binding
	Browse key.Binding
	Move   key.Binding
	Play   key.Binding
	Stop   key.Binding
	Open   key.Binding
	Page   key.Binding
	Tags   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(key.WithKeys("tab", "/"), key.WithHelp("tab", "search")),
		Browse: key.NewBinding(key.WithKeys("tab", "esc"), key.WithHelp("tab", "browse")),
		Move:   key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "move")),
		Play:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Open:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "watch")),
		Page:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "player page")),
		Tags:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "suggestions")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// searchKeys is the footer while the query has focus
type searchKeys struct{ k keyMap }

func (s searchKeys) ShortHelp() []key.Binding {
	quit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	return []key.Binding{s.k.Browse, quit}
}

func (s searchKeys) FullHelp() [][]key.Binding { return [][]key.Binding{s.ShortHelp()} }

// browseKeys is the footer while moving between cards
type browseKeys struct {
	k       keyMap
	welcome bool
}

func (b browseKeys) ShortHelp() []key.Binding {
	if b.welcome {
		return []key.Binding{b.k.Tags, b.k.Search, b.k.Page, b.k.Help, b.k.Quit}
	}
	return []key.Binding{b.k.Move, b.k.Play, b.k.Stop, b.k.Open, b.k.Search, b.k.Help, b.k.Quit}
}

func (b browseKeys) FullHelp() [][]key.Binding { return [][]key.Binding{b.ShortHelp()} }
