package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	More     key.Binding
	Less     key.Binding
	MoreTen  key.Binding
	LessTen  key.Binding
	Arrange  key.Binding
	Layout   key.Binding
	Theme    key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Controls key.Binding
	Focus    key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Close    key.Binding
	Restart  key.Binding
	Cat      key.Binding
	Rabbit   key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var desktopKeys = keyMap{
	More:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add terminal")),
	Less:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "remove terminal")),
	MoreTen:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "+10")),
	LessTen:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "-10")),
	Arrange:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "arrange")),
	Layout:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "layout")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Faster:   key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "faster")),
	Slower:   key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "slower")),
	Controls: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "controls")),
	Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next window")),
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
	Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "move left")),
	Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "move right")),
	Close:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close window")),
	Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart typing")),
	Cat:      key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "add cat")),
	Rabbit:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "add rabbit")),
	Clear:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "clear sprites")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.More, k.Less, k.Arrange, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.More, k.Less, k.MoreTen, k.LessTen},
		{k.Arrange, k.Layout, k.Theme, k.Controls},
		{k.Faster, k.Slower, k.Restart, k.Focus},
		{k.Up, k.Down, k.Left, k.Right, k.Close},
		{k.Cat, k.Rabbit, k.Clear, k.Help, k.Quit},
	}
}
