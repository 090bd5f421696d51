package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evcraddock/gardet/internal/search"
)

const logoutTimeout = 15 * time.Second

// loadFiltersCmd fetches the quick-filter counts.
func loadFiltersCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		counts, err := b.QuickFilters()
		return filtersLoadedMsg{Counts: counts, Err: err}
	}
}

// loadSessionCmd asks the server who the API key belongs to.
func loadSessionCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		user, err := b.Session()
		return sessionLoadedMsg{User: user, Err: err}
	}
}

// searchCmd runs a search request tagged with seq.
func searchCmd(b Backend, req search.Request, seq int) tea.Cmd {
	return func() tea.Msg {
		props, err := b.Search(req)
		return listingsLoadedMsg{Seq: seq, Request: req, Properties: props, Err: err}
	}
}

// logoutCmd ends the session on the server in the background.
func logoutCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
		defer cancel()
		return logoutDoneMsg{Err: b.Logout(ctx)}
	}
}
