package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the terminal client's bindings.
type keyMap struct {
	Focus     key.Binding
	Blur      key.Binding
	NextType  key.Binding
	PrevType  key.Binding
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Menu      key.Binding
	Link      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Back      key.Binding
	Logout    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Focus:     key.NewBinding(key.WithKeys("/", "i"), key.WithHelp("/", "buscar")),
		Blur:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "salir del campo")),
		NextType:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "tipo siguiente")),
		PrevType:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "tipo anterior")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "arriba")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "abajo")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "buscar")),
		Menu:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menú")),
		Link:      key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "ir a")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "página arriba")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "página abajo")),
		Back:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "volver")),
		Logout:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "cerrar sesión")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "salir")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.NextType, k.Enter, k.Menu, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Blur, k.NextType, k.PrevType, k.Enter},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Back},
		{k.Menu, k.Link, k.Logout, k.Help, k.Quit},
	}
}
