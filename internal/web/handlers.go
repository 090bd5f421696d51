package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/gardet/internal/property"
	"github.com/evcraddock/gardet/internal/search"
)

// redirectNavigator records the request a controller navigates to so the
// handler can answer with a redirect.
type redirectNavigator struct {
	target *search.Request
}

func (n *redirectNavigator) Navigate(req search.Request) {
	n.target = &req
}

type filterView struct {
	Type     search.PropertyType
	Count    int
	Selected bool
	URL      string
}

type landingData struct {
	page
	Query           search.Query
	Filters         []filterView
	AllURL          string
	AllSelected     bool
	ShowSuggestions bool
	InputFocused    bool
	Suggestions     []search.Suggestion
}

// newController builds a controller seeded from the query string:
// q for the text, type for the filter and focus=1 for a focused input.
func newController(r *http.Request, nav search.Navigator) *search.Controller {
	q := r.URL.Query()
	c := search.NewController(nav, nil)
	t, _ := search.ParsePropertyType(q.Get("type"))
	c.SelectPropertyType(t)
	c.SetQueryText(q.Get("q"))
	if q.Get("focus") == "1" {
		c.FocusInput()
	}
	return c
}

// handleLanding renders the landing page with the header and search widget.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.renderLanding(w, r, newController(r, nil))
}

// handleSearch runs a submit or suggestion pick. A navigable query answers
// with a redirect to the listing; a blank one re-renders the landing page.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	nav := &redirectNavigator{}
	c := newController(r, nav)

	if q := r.URL.Query(); q.Has("suggestion") {
		c.SelectSuggestion(q.Get("suggestion"))
	} else {
		c.Submit()
	}

	if nav.target != nil {
		http.Redirect(w, r, nav.target.String(), http.StatusSeeOther)
		return
	}

	c.FocusInput()
	s.renderLanding(w, r, c)
}

func (s *Server) renderLanding(w http.ResponseWriter, r *http.Request, c *search.Controller) {
	counts, err := s.listings.QuickFilterCounts()
	if err != nil {
		slog.ErrorContext(r.Context(), "counting listings", "err", err)
		http.Error(w, "Error loading listings", http.StatusInternalServerError)
		return
	}

	query := c.Query()
	filters := make([]filterView, 0, len(counts))
	for _, fc := range counts {
		filters = append(filters, filterView{
			Type:     fc.Type,
			Count:    fc.Count,
			Selected: query.PropertyType == fc.Type,
			URL:      landingURL(query.Text, fc.Type, c.InputFocused()),
		})
	}

	s.render(w, "landing.html", landingData{
		page:            s.newPage(r, ""),
		Query:           query,
		Filters:         filters,
		AllURL:          landingURL(query.Text, search.TypeAll, c.InputFocused()),
		AllSelected:     query.PropertyType == search.TypeAll,
		ShowSuggestions: c.ShowSuggestions(),
		InputFocused:    c.InputFocused(),
		Suggestions:     c.VisibleSuggestions(),
	})
}

// landingURL links back to the landing page with a different filter while
// keeping the typed text and focus.
func landingURL(text string, t search.PropertyType, focused bool) string {
	u := "/?type=" + search.EncodeComponent(string(t))
	if text != "" {
		u += "&q=" + search.EncodeComponent(text)
	}
	if focused {
		u += "&focus=1"
	}
	return u
}

type listingData struct {
	page
	Location   string
	Type       search.PropertyType
	Properties []*property.Property
}

// handleListing renders the listing page for a location and type.
func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t, _ := search.ParsePropertyType(q.Get("type"))
	loc := q.Get("location")

	props, err := s.props.List(property.ListOptions{Location: loc, Type: t})
	if err != nil {
		slog.ErrorContext(r.Context(), "listing properties", "err", err)
		http.Error(w, "Error loading properties", http.StatusInternalServerError)
		return
	}

	s.render(w, "listing.html", listingData{
		page:       s.newPage(r, "Propiedades"),
		Location:   loc,
		Type:       t,
		Properties: props,
	})
}

type detailData struct {
	page
	Property *property.Property
}

// handleDetail renders one property.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	prop, err := s.props.GetByID(id)
	if errors.Is(err, property.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "loading property", "id", id, "err", err)
		http.Error(w, "Error loading property", http.StatusInternalServerError)
		return
	}

	s.render(w, "detail.html", detailData{page: s.newPage(r, prop.Title), Property: prop})
}

type contactData struct {
	page
	Email string
}

// handleContact renders the contact page.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, "contact.html", contactData{
		page:  s.newPage(r, "Contacto"),
		Email: s.cfg.Auth.AdminEmail,
	})
}
