// Package tui is the terminal client: the site header and search widget
// driven by key and scroll events instead of a browser.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/evcraddock/gardet/internal/header"
	"github.com/evcraddock/gardet/internal/property"
	"github.com/evcraddock/gardet/internal/search"
)

// navRecorder captures the request the search controller navigates to so
// Update can act on it after the controller call returns.
type navRecorder struct {
	pending *search.Request
}

func (n *navRecorder) Navigate(req search.Request) {
	n.pending = &req
}

func (n *navRecorder) take() (search.Request, bool) {
	if n.pending == nil {
		return search.Request{}, false
	}
	req := *n.pending
	n.pending = nil
	return req, true
}

// Model is the terminal client's bubbletea model.
type Model struct {
	backend Backend

	// Shared state, driven only from Update.
	header *header.Header
	search *search.Controller
	nav    *navRecorder
	scroll *header.Feed[int]
	routes *header.Feed[string]

	// Components
	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	styles   styles

	// Screen state
	screen           screen
	filters          []property.FilterCount
	results          []*property.Property
	lastRequest      search.Request
	searchSeq        int
	suggestionCursor int
	loading          bool
	loggingOut       bool
	errorMsg         string

	width  int
	height int
}

// NewModel creates the terminal client model. The header is mounted on the
// client's scroll and route feeds right away; Update unmounts it on quit.
func NewModel(backend Backend, opts header.Options) Model {
	opts.Logout = backend.Logout

	ti := textinput.New()
	ti.Placeholder = "¿Dónde quieres vivir?"
	ti.CharLimit = 200
	ti.Width = 40

	nav := &navRecorder{}
	m := Model{
		backend:          backend,
		header:           header.New(opts, "/", header.Anonymous{}),
		search:           search.NewController(nav, nil),
		nav:              nav,
		scroll:           header.NewFeed[int](),
		routes:           header.NewFeed[string](),
		input:            ti,
		viewport:         viewport.New(80, 16),
		help:             help.New(),
		keys:             defaultKeyMap(),
		styles:           newStyles(opts.Palette),
		screen:           screenLanding,
		lastRequest:      search.Request{Path: search.ListingPath},
		suggestionCursor: -1,
		width:            80,
		height:           24,
	}
	m.header.Mount(m.scroll, m.routes, 0)
	return m
}

// Init loads the quick filters and the session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadFiltersCmd(m.backend),
		loadSessionCmd(m.backend),
		textinput.Blink,
	)
}

// typeCycle is the order tab walks through the filters.
func typeCycle() []search.PropertyType {
	return append([]search.PropertyType{search.TypeAll}, search.QuickFilters...)
}

// cycleType moves the selected filter by step, wrapping around.
func (m *Model) cycleType(step int) {
	types := typeCycle()
	current := m.search.Query().PropertyType
	idx := 0
	for i, t := range types {
		if t == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(types)) % len(types)
	m.search.SelectPropertyType(types[idx])
}

// navigate publishes a route change and switches screens. The header
// listens on the route feed and closes its menu.
func (m *Model) navigate(path string) {
	m.routes.Publish(path)
	m.screen = screenFor(path)
	m.viewport.SetYOffset(0)
	m.scroll.Publish(0)
	m.refreshViewport()
}

// scrollBy moves the viewport and reports the new offset to the header.
func (m *Model) scrollBy(lines int) {
	m.viewport.SetYOffset(m.viewport.YOffset + lines)
	m.scroll.Publish(m.viewport.YOffset)
}

// Header exposes the header state for callers embedding the model.
func (m Model) Header() *header.Header {
	return m.header
}

// Search exposes the search widget state.
func (m Model) Search() *search.Controller {
	return m.search
}
