package tui

import (
	"context"

	"github.com/evcraddock/gardet/internal/header"
	"github.com/evcraddock/gardet/internal/property"
	"github.com/evcraddock/gardet/internal/search"
)

// Backend is what the terminal client needs from the server. The API
// client satisfies it.
type Backend interface {
	Search(req search.Request) ([]*property.Property, error)
	QuickFilters() ([]property.FilterCount, error)
	Session() (*header.Identity, error)
	Logout(ctx context.Context) error
}
