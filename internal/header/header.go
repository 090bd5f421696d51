package header

import (
	"context"
	"strings"

	"github.com/evcraddock/gardet/internal/theme"
)

// Link is a primary navigation entry.
type Link struct {
	Name string
	Path string
}

// Links are the header's navigation entries in display order.
var Links = []Link{
	{Name: "Inicio", Path: "/"},
	{Name: "Propiedades", Path: "/properties"},
	{Name: "Contacto", Path: "/contact"},
}

// NavLink is a Link resolved against the current path.
type NavLink struct {
	Link
	Active bool
}

// NavState is the header's presentational state.
type NavState struct {
	Scrolled       bool   `json:"scrolled"`
	MobileMenuOpen bool   `json:"mobile_menu_open"`
	CurrentPath    string `json:"current_path"`
}

// LogoutFunc ends the external session.
type LogoutFunc func(ctx context.Context) error

// Options configures a Header.
type Options struct {
	BrandName       string
	AppName         string
	Palette         theme.Palette
	ScrollThreshold int
	Logout          LogoutFunc
}

// Header coordinates session, scroll, menu and route state for one mounted
// header instance. It is not safe for concurrent use; drive it from a
// single event loop.
type Header struct {
	opts    Options
	session Session
	scroll  *ScrollTracker
	menu    Menu
	path    string
	detach  []func()
}

// New creates a header for the given path and session. A nil session is
// treated as anonymous.
func New(opts Options, path string, session Session) *Header {
	if session == nil {
		session = Anonymous{}
	}
	return &Header{
		opts:    opts,
		session: session,
		scroll:  NewScrollTracker(opts.ScrollThreshold, 0),
		path:    path,
	}
}

// Mount evaluates the initial scroll offset and attaches the header to the
// scroll and route feeds. Mounting again first releases the previous
// subscriptions so events never fire twice.
func (h *Header) Mount(scroll *Feed[int], routes *Feed[string], initialOffset int) {
	h.Unmount()

	h.scroll = NewScrollTracker(h.opts.ScrollThreshold, initialOffset)
	if scroll != nil {
		h.detach = append(h.detach, h.scroll.Attach(scroll))
	}
	if routes != nil {
		h.detach = append(h.detach, routes.Subscribe(h.RouteChanged))
	}
}

// Unmount releases every feed subscription.
func (h *Header) Unmount() {
	for _, d := range h.detach {
		d()
	}
	h.detach = nil
}

// Mounted reports whether the header holds live subscriptions.
func (h *Header) Mounted() bool {
	return len(h.detach) > 0
}

// RouteChanged records a completed navigation and closes the mobile menu.
func (h *Header) RouteChanged(path string) {
	h.path = path
	h.menu.Close()
}

// ToggleMenu flips the mobile menu.
func (h *Header) ToggleMenu() {
	h.menu.Toggle()
}

// ScrollThreshold is the offset past which the header counts as scrolled.
func (h *Header) ScrollThreshold() int {
	return h.scroll.Threshold()
}

// State returns the current NavState.
func (h *Header) State() NavState {
	return NavState{
		Scrolled:       h.scroll.PastThreshold(),
		MobileMenuOpen: h.menu.IsOpen(),
		CurrentPath:    h.path,
	}
}

// Links resolves the navigation entries against the current path. The root
// link only matches exactly; the others also match nested paths.
func (h *Header) Links() []NavLink {
	out := make([]NavLink, len(Links))
	for i, l := range Links {
		out[i] = NavLink{Link: l, Active: linkActive(l.Path, h.path)}
	}
	return out
}

func linkActive(linkPath, current string) bool {
	if linkPath == "/" {
		return current == "/"
	}
	return current == linkPath || strings.HasPrefix(current, linkPath+"/")
}

// Session returns the current session.
func (h *Header) Session() Session {
	return h.session
}

// SetSession replaces the session, e.g. after the provider reports a login.
func (h *Header) SetSession(s Session) {
	if s == nil {
		s = Anonymous{}
	}
	h.session = s
}

// Indicator is the session token for the header badge.
func (h *Header) Indicator() string {
	return h.session.Indicator()
}

// BrandName returns the configured brand name.
func (h *Header) BrandName() string {
	return h.opts.BrandName
}

// AppName returns the text shown to anonymous visitors.
func (h *Header) AppName() string {
	return h.opts.AppName
}

// Palette returns the derived theme.
func (h *Header) Palette() theme.Palette {
	return h.opts.Palette
}

// Logout calls the session provider and waits for it. The header only
// becomes anonymous once the call succeeds; on error the previous session
// is kept and the error is returned. Without a provider this is a no-op.
func (h *Header) Logout(ctx context.Context) error {
	if h.opts.Logout == nil {
		return nil
	}
	err := h.opts.Logout(ctx)
	h.CompleteLogout(err)
	return err
}

// CompleteLogout applies the outcome of a logout call made elsewhere, such
// as from a background command.
func (h *Header) CompleteLogout(err error) {
	if err == nil {
		h.session = Anonymous{}
	}
}
