package header

// MenuState is the mobile navigation state.
type MenuState int

const (
	MenuClosed MenuState = iota
	MenuOpen
)

func (s MenuState) String() string {
	if s == MenuOpen {
		return "open"
	}
	return "closed"
}

// Menu is the mobile navigation toggle. The zero value is closed.
type Menu struct {
	state MenuState
}

// Toggle flips the menu between open and closed.
func (m *Menu) Toggle() {
	if m.state == MenuOpen {
		m.state = MenuClosed
		return
	}
	m.state = MenuOpen
}

// Close forces the menu closed.
func (m *Menu) Close() {
	m.state = MenuClosed
}

// State returns the current state.
func (m *Menu) State() MenuState {
	return m.state
}

// IsOpen reports whether the menu is open.
func (m *Menu) IsOpen() bool {
	return m.state == MenuOpen
}
