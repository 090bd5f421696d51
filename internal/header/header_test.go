package header

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/gardet/internal/theme"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "G"},
		{"   ", "G"},
		{"Ana García", "AG"},
		{"madonna", "M"},
		{"ana maría garcía", "AM"},
		{"  ana   garcía  ", "AG"},
		{"ana@example.com", "A"},
		{"élodie ñúñez", "ÉÑ"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.in))
		})
	}
}

func TestSessionFor(t *testing.T) {
	assert.False(t, SessionFor(nil).LoggedIn())
	assert.Equal(t, "G", SessionFor(nil).Indicator())

	s := SessionFor(&Identity{Name: "Ana García", Email: "ana@example.com"})
	assert.True(t, s.LoggedIn())
	assert.Equal(t, "Ana García", s.DisplayName())
	assert.Equal(t, "AG", s.Indicator())
}

func TestAuthenticatedFallsBackToEmail(t *testing.T) {
	s := Authenticated{User: Identity{Email: "bruno@example.com"}}
	assert.Equal(t, "bruno@example.com", s.DisplayName())
	assert.Equal(t, "B", s.Indicator())

	empty := Authenticated{}
	assert.Equal(t, "G", empty.Indicator())
}

func TestScrollTrackerEvaluatesAtMount(t *testing.T) {
	assert.True(t, NewScrollTracker(12, 200).PastThreshold())
	assert.False(t, NewScrollTracker(12, 0).PastThreshold())
	assert.False(t, NewScrollTracker(12, 12).PastThreshold())
	assert.True(t, NewScrollTracker(12, 13).PastThreshold())
}

func TestScrollTrackerNegativeThresholdUsesDefault(t *testing.T) {
	tr := NewScrollTracker(-1, 0)
	assert.Equal(t, DefaultScrollThreshold, tr.Threshold())
}

func TestScrollTrackerAttach(t *testing.T) {
	feed := NewFeed[int]()
	tr := NewScrollTracker(12, 0)

	detach := tr.Attach(feed)
	feed.Publish(40)
	assert.True(t, tr.PastThreshold())

	feed.Publish(3)
	assert.False(t, tr.PastThreshold())

	detach()
	assert.Equal(t, 0, feed.Len())
	feed.Publish(40)
	assert.False(t, tr.PastThreshold(), "detached tracker must not observe")
}

func TestMenuToggle(t *testing.T) {
	var m Menu
	assert.Equal(t, MenuClosed, m.State())

	m.Toggle()
	assert.True(t, m.IsOpen())
	assert.Equal(t, "open", m.State().String())

	m.Toggle()
	assert.False(t, m.IsOpen())

	m.Toggle()
	m.Close()
	assert.Equal(t, MenuClosed, m.State())
}

func TestFeedCancelIsIdempotent(t *testing.T) {
	feed := NewFeed[string]()
	var got []string

	cancelA := feed.Subscribe(func(s string) { got = append(got, "a:"+s) })
	feed.Subscribe(func(s string) { got = append(got, "b:"+s) })

	feed.Publish("x")
	cancelA()
	cancelA()
	feed.Publish("y")

	assert.Equal(t, []string{"a:x", "b:x", "b:y"}, got)
	assert.Equal(t, 1, feed.Len())
}

func testHeader(logout LogoutFunc) *Header {
	return New(Options{
		BrandName:       "Gardet",
		AppName:         "Gardet",
		Palette:         theme.Derive("#C7A046"),
		ScrollThreshold: 12,
		Logout:          logout,
	}, "/", nil)
}

func TestHeaderRouteChangeClosesMenu(t *testing.T) {
	h := testHeader(nil)
	routes := NewFeed[string]()
	h.Mount(nil, routes, 0)
	defer h.Unmount()

	h.ToggleMenu()
	require.True(t, h.State().MobileMenuOpen)

	routes.Publish("/properties")
	assert.False(t, h.State().MobileMenuOpen)
	assert.Equal(t, "/properties", h.State().CurrentPath)

	// Same-path navigation still closes the menu.
	h.ToggleMenu()
	routes.Publish("/properties")
	assert.False(t, h.State().MobileMenuOpen)
}

func TestHeaderMountReflectsInitialScroll(t *testing.T) {
	h := testHeader(nil)
	scroll := NewFeed[int]()

	h.Mount(scroll, nil, 300)
	assert.True(t, h.State().Scrolled)

	scroll.Publish(0)
	assert.False(t, h.State().Scrolled)
}

func TestHeaderRemountDoesNotDuplicateListeners(t *testing.T) {
	h := testHeader(nil)
	scroll := NewFeed[int]()
	routes := NewFeed[string]()

	h.Mount(scroll, routes, 0)
	h.Mount(scroll, routes, 0)
	assert.Equal(t, 1, scroll.Len())
	assert.Equal(t, 1, routes.Len())

	h.Unmount()
	assert.Equal(t, 0, scroll.Len())
	assert.Equal(t, 0, routes.Len())
	assert.False(t, h.Mounted())
}

func TestHeaderLinks(t *testing.T) {
	h := testHeader(nil)
	h.RouteChanged("/properties/4")

	links := h.Links()
	require.Len(t, links, 3)
	assert.False(t, links[0].Active)
	assert.True(t, links[1].Active)
	assert.False(t, links[2].Active)

	h.RouteChanged("/")
	assert.True(t, h.Links()[0].Active)
}

func TestHeaderLogoutSuccess(t *testing.T) {
	called := false
	h := testHeader(func(ctx context.Context) error {
		called = true
		return nil
	})
	h.SetSession(Authenticated{User: Identity{Name: "Ana García"}})
	require.Equal(t, "AG", h.Indicator())

	require.NoError(t, h.Logout(context.Background()))
	assert.True(t, called)
	assert.False(t, h.Session().LoggedIn())
}

func TestHeaderLogoutFailureKeepsSession(t *testing.T) {
	h := testHeader(func(ctx context.Context) error {
		return errors.New("provider unavailable")
	})
	h.SetSession(Authenticated{User: Identity{Name: "Ana García"}})

	err := h.Logout(context.Background())
	assert.Error(t, err)
	assert.True(t, h.Session().LoggedIn())
}

func TestHeaderLogoutWithoutProvider(t *testing.T) {
	h := testHeader(nil)
	h.SetSession(Authenticated{User: Identity{Name: "Ana"}})

	require.NoError(t, h.Logout(context.Background()))
	assert.True(t, h.Session().LoggedIn())
}

func TestHeaderNilSessionIsAnonymous(t *testing.T) {
	h := testHeader(nil)
	h.SetSession(nil)
	assert.False(t, h.Session().LoggedIn())
	assert.Equal(t, "Gardet", h.BrandName())
	assert.Equal(t, "#C7A046", h.Palette().Base)
}

func TestHeaderScrollThreshold(t *testing.T) {
	h := testHeader(nil)
	assert.Equal(t, 12, h.ScrollThreshold())

	scroll := NewFeed[int]()
	h.Mount(scroll, nil, 12)
	defer h.Unmount()

	assert.False(t, h.State().Scrolled, "offset equal to the threshold is not past it")
	scroll.Publish(13)
	assert.True(t, h.State().Scrolled)
}
