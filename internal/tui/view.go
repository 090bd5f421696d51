package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/evcraddock/gardet/internal/search"
)

const (
	headerLines = 3
	footerLines = 2
)

// View renders the model
func (m Model) View() string {
	var sections []string
	sections = append(sections, m.renderHeader())
	if m.header.State().MobileMenuOpen {
		sections = append(sections, m.renderMenu())
	}

	switch m.screen {
	case screenListing:
		sections = append(sections, m.renderListingTitle(), m.viewport.View())
	case screenContact:
		sections = append(sections, m.styles.title.Render("Contacto"), m.viewport.View())
	default:
		sections = append(sections, m.renderLanding())
	}

	if m.errorMsg != "" {
		sections = append(sections, m.styles.err.Render(m.errorMsg))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	h := m.header
	state := h.State()

	parts := []string{m.styles.brand.Render(h.BrandName())}
	for _, l := range h.Links() {
		if l.Active {
			parts = append(parts, m.styles.activeLink.Render(l.Name))
		} else {
			parts = append(parts, m.styles.link.Render(l.Name))
		}
	}

	sess := h.Session()
	switch {
	case m.loggingOut:
		parts = append(parts, m.styles.muted.Render("Cerrando sesión…"))
	case sess.LoggedIn():
		parts = append(parts, m.styles.badge.Render(h.Indicator()))
	default:
		parts = append(parts, m.styles.appName.Render(h.AppName()))
	}

	line := strings.Join(parts, "  ")
	if state.Scrolled {
		return m.styles.scrolled.Render(line)
	}
	return m.styles.header.Render(line)
}

func (m Model) renderMenu() string {
	var lines []string
	for i, l := range m.header.Links() {
		lines = append(lines, fmt.Sprintf("%d  %s", i+1, l.Name))
	}
	return m.styles.menu.Render(strings.Join(lines, "\n"))
}

func (m Model) renderLanding() string {
	query := m.search.Query()

	filters := []string{m.renderFilter(typeLabel(search.TypeAll), 0, query.PropertyType == search.TypeAll, false)}
	for _, fc := range m.filters {
		filters = append(filters, m.renderFilter(string(fc.Type), fc.Count, query.PropertyType == fc.Type, true))
	}

	inputStyle := m.styles.input
	if m.search.InputFocused() {
		inputStyle = m.styles.focused
	}

	sections := []string{
		m.styles.title.Render("Encuentra tu próximo hogar"),
		strings.Join(filters, " "),
		inputStyle.Render(m.input.View()),
	}

	if suggestions := m.search.VisibleSuggestions(); len(suggestions) > 0 {
		var lines []string
		for i, s := range suggestions {
			if i == m.suggestionCursor {
				lines = append(lines, m.styles.cursor.Render("› "+s.Label))
			} else {
				lines = append(lines, m.styles.suggestion.Render(s.Label))
			}
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderFilter(label string, count int, selected, showCount bool) string {
	if showCount {
		label = fmt.Sprintf("%s %d", label, count)
	}
	if selected {
		return m.styles.selected.Render(label)
	}
	return m.styles.filter.Render(label)
}

func (m Model) renderListingTitle() string {
	title := "Propiedades"
	if loc := m.lastRequest.Location(); loc != "" {
		title += " en " + loc
	}
	title += " · " + typeLabel(m.lastRequest.Type())
	return m.styles.title.Render(title)
}
