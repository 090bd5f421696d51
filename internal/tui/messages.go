package tui

import (
	"github.com/evcraddock/gardet/internal/header"
	"github.com/evcraddock/gardet/internal/property"
	"github.com/evcraddock/gardet/internal/search"
)

// screen is the page the terminal client shows.
type screen int

const (
	screenLanding screen = iota
	screenListing
	screenContact
)

// screenFor maps a navigation path to its screen.
func screenFor(path string) screen {
	switch path {
	case search.ListingPath:
		return screenListing
	case "/contact":
		return screenContact
	default:
		return screenLanding
	}
}

// filtersLoadedMsg carries the quick-filter counts.
type filtersLoadedMsg struct {
	Counts []property.FilterCount
	Err    error
}

// sessionLoadedMsg carries the identity behind the API key, nil when
// anonymous.
type sessionLoadedMsg struct {
	User *header.Identity
	Err  error
}

// listingsLoadedMsg carries the results of a search request. Seq identifies
// the search that produced it.
type listingsLoadedMsg struct {
	Seq        int
	Request    search.Request
	Properties []*property.Property
	Err        error
}

// logoutDoneMsg reports the outcome of a logout call.
type logoutDoneMsg struct {
	Err error
}
