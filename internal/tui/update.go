package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/evcraddock/gardet/internal/header"
	"github.com/evcraddock/gardet/internal/search"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerLines-footerLines, 3)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case filtersLoadedMsg:
		if msg.Err != nil {
			m.errorMsg = fmt.Sprintf("No se pudieron cargar los filtros: %v", msg.Err)
			return m, nil
		}
		m.filters = msg.Counts
		return m, nil

	case sessionLoadedMsg:
		if msg.Err != nil {
			m.errorMsg = fmt.Sprintf("No se pudo cargar la sesión: %v", msg.Err)
			return m, nil
		}
		m.header.SetSession(header.SessionFor(msg.User))
		return m, nil

	case listingsLoadedMsg:
		// Only the latest search may fill the listing.
		if msg.Seq != m.searchSeq || m.screen != screenListing {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.errorMsg = fmt.Sprintf("La búsqueda falló: %v", msg.Err)
			m.results = nil
		} else {
			m.errorMsg = ""
			m.results = msg.Properties
		}
		m.refreshViewport()
		return m, nil

	case logoutDoneMsg:
		m.loggingOut = false
		m.header.CompleteLogout(msg.Err)
		if msg.Err != nil {
			m.errorMsg = fmt.Sprintf("No se pudo cerrar la sesión: %v", msg.Err)
		}
		return m, nil
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}
	if m.input.Focused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Focus):
		if m.screen != screenLanding {
			m.navigate("/")
		}
		return m, m.focusInput()

	case key.Matches(msg, m.keys.Menu):
		m.header.ToggleMenu()
		return m, nil

	case key.Matches(msg, m.keys.Link) && m.header.State().MobileMenuOpen:
		return m.followLink(msg.String())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		return m.logout()

	case key.Matches(msg, m.keys.Back):
		if m.screen != screenLanding {
			m.navigate("/")
		}
		return m, nil
	}

	if m.screen == screenLanding {
		return m.handleLandingKey(msg)
	}
	return m.handleScrollKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.blurInput()
		return m, nil
	case tea.KeyEnter:
		return m.enter()
	case tea.KeyUp:
		m.moveSuggestion(-1)
		return m, nil
	case tea.KeyDown:
		m.moveSuggestion(1)
		return m, nil
	case tea.KeyTab:
		m.cycleType(1)
		return m, nil
	case tea.KeyShiftTab:
		m.cycleType(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.search.Query().Text {
		m.search.SetQueryText(v)
		m.suggestionCursor = -1
	}
	return m, cmd
}

func (m Model) handleLandingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextType):
		m.cycleType(1)
	case key.Matches(msg, m.keys.PrevType):
		m.cycleType(-1)
	case key.Matches(msg, m.keys.Up):
		m.moveSuggestion(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSuggestion(1)
	case key.Matches(msg, m.keys.Enter):
		return m.enter()
	}
	return m, nil
}

func (m Model) handleScrollKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.viewport.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.viewport.Height)
	}
	return m, nil
}

func (m *Model) focusInput() tea.Cmd {
	m.search.FocusInput()
	m.suggestionCursor = -1
	return m.input.Focus()
}

func (m *Model) blurInput() {
	m.search.BlurInput()
	m.input.Blur()
}

// moveSuggestion walks the highlighted suggestion while the panel shows.
func (m *Model) moveSuggestion(step int) {
	n := len(m.search.VisibleSuggestions())
	if n == 0 {
		m.suggestionCursor = -1
		return
	}
	if m.suggestionCursor < 0 {
		if step > 0 {
			m.suggestionCursor = 0
		} else {
			m.suggestionCursor = n - 1
		}
		return
	}
	m.suggestionCursor = (m.suggestionCursor + step + n) % n
}

// enter selects the highlighted suggestion, or submits the typed text when
// none is highlighted.
func (m Model) enter() (tea.Model, tea.Cmd) {
	if visible := m.search.VisibleSuggestions(); m.suggestionCursor >= 0 && m.suggestionCursor < len(visible) {
		label := visible[m.suggestionCursor].Label
		m.search.SelectSuggestion(label)
		m.input.SetValue(label)
	} else {
		m.search.Submit()
	}
	m.suggestionCursor = -1

	req, ok := m.nav.take()
	if !ok {
		return m, nil
	}
	m.blurInput()
	return m, m.openListing(req)
}

// openListing navigates to the listing screen and starts the search.
func (m *Model) openListing(req search.Request) tea.Cmd {
	m.searchSeq++
	m.lastRequest = req
	m.loading = true
	m.results = nil
	m.errorMsg = ""
	m.navigate(req.Path)
	return searchCmd(m.backend, req, m.searchSeq)
}

// followLink follows the n-th header link while the menu is open.
func (m Model) followLink(n string) (tea.Model, tea.Cmd) {
	links := m.header.Links()
	idx := int(n[0] - '1')
	if idx < 0 || idx >= len(links) {
		return m, nil
	}

	path := links[idx].Path
	if path == search.ListingPath {
		return m, m.openListing(m.lastRequest)
	}
	m.navigate(path)
	return m, nil
}

// logout starts an asynchronous logout. The header stays signed in until
// the server confirms.
func (m Model) logout() (tea.Model, tea.Cmd) {
	if m.loggingOut || !m.header.Session().LoggedIn() {
		return m, nil
	}
	m.loggingOut = true
	return m, logoutCmd(m.backend)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.header.Unmount()
	return m, tea.Quit
}

// refreshViewport renders the scrollable body for the current screen.
func (m *Model) refreshViewport() {
	switch m.screen {
	case screenListing:
		m.viewport.SetContent(m.listingContent())
	case screenContact:
		m.viewport.SetContent(m.contactContent())
	default:
		m.viewport.SetContent("")
	}
}

func (m *Model) listingContent() string {
	if m.loading {
		return m.styles.muted.Render("Buscando…")
	}
	if len(m.results) == 0 {
		return m.styles.muted.Render("No hay propiedades para esta búsqueda.")
	}

	var sb strings.Builder
	for i, p := range m.results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s\n", m.styles.brand.Render(p.Title))
		fmt.Fprintf(&sb, "  %s · %s · %s\n", p.Location, typeLabel(p.Type), p.PriceLabel())
	}
	return sb.String()
}

func (m *Model) contactContent() string {
	return "¿Quieres publicar una propiedad o tienes preguntas sobre un anuncio?\n" +
		"Escríbenos desde el sitio web."
}

// typeLabel is the display label for a property type.
func typeLabel(t search.PropertyType) string {
	if t == search.TypeAll {
		return "Todas"
	}
	return string(t)
}
