package web

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/evcraddock/gardet/internal/auth"
	"github.com/evcraddock/gardet/internal/header"
	"github.com/evcraddock/gardet/internal/search"
)

var funcMap = template.FuncMap{
	"formatFloat": tmplFormatFloat,
	"formatInt":   tmplFormatInt,
	"typeLabel":   typeLabel,
}

// headerView is what the header template renders.
type headerView struct {
	Brand       string
	AppName     string
	Links       []header.NavLink
	LoggedIn    bool
	DisplayName string
	Indicator   string
	MenuOpen    bool
	MenuURL     string
	Threshold   int
}

// page carries the parts every template shares.
type page struct {
	Title  string
	Header headerView
	Style  template.CSS
	Error  string
}

// newHeader builds the header state for one page view.
func (s *Server) newHeader(r *http.Request) *header.Header {
	return s.newHeaderWithLogout(r, nil)
}

func (s *Server) newHeaderWithLogout(r *http.Request, logout header.LogoutFunc) *header.Header {
	opts := s.cfg.HeaderOptions()
	opts.Logout = logout
	h := header.New(opts, r.URL.Path, header.SessionFor(auth.IdentityFrom(r.Context())))
	if r.URL.Query().Get("menu") == "open" {
		h.ToggleMenu()
	}
	return h
}

// newPage builds the shared page data for r.
func (s *Server) newPage(r *http.Request, title string) page {
	return s.pageFor(r, s.newHeader(r), title)
}

func (s *Server) pageFor(r *http.Request, h *header.Header, title string) page {
	state := h.State()
	sess := h.Session()

	if title == "" {
		title = h.BrandName()
	} else {
		title = title + " · " + h.BrandName()
	}

	return page{
		Title: title,
		Header: headerView{
			Brand:       h.BrandName(),
			AppName:     h.AppName(),
			Links:       h.Links(),
			LoggedIn:    sess.LoggedIn(),
			DisplayName: sess.DisplayName(),
			Indicator:   h.Indicator(),
			MenuOpen:    state.MobileMenuOpen,
			MenuURL:     menuToggleURL(r.URL, state.MobileMenuOpen),
			Threshold:   h.ScrollThreshold(),
		},
		// Palette values are stripped of CSS breakout characters.
		Style: template.CSS(h.Palette().CSS()),
	}
}

// menuToggleURL returns the current URL with the menu flag flipped.
func menuToggleURL(u *url.URL, open bool) string {
	q := u.Query()
	if open {
		q.Del("menu")
	} else {
		q.Set("menu", "open")
	}
	out := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return out.String()
}

// render executes a page template into a buffer so a failed render never
// sends a half-written page.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	s.renderStatus(w, http.StatusOK, name, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, code int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("rendering template", "template", name, "err", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("writing response", "err", err)
	}
}

type notFoundData struct {
	page
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderStatus(w, http.StatusNotFound, "not_found.html", notFoundData{page: s.newPage(r, "No encontrado")})
}

// Template helper functions

func tmplFormatFloat(f *float64) string {
	if f == nil {
		return "—"
	}
	if *f == float64(int64(*f)) {
		return fmt.Sprintf("%d", int64(*f))
	}
	return fmt.Sprintf("%.1f", *f)
}

func tmplFormatInt(i *int64) string {
	if i == nil {
		return "—"
	}
	return fmt.Sprintf("%d", *i)
}

// typeLabel is the display label for a property type.
func typeLabel(t search.PropertyType) string {
	if t == search.TypeAll {
		return "Todas"
	}
	return string(t)
}
