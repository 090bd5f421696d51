package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/gardet/internal/auth"
	"github.com/evcraddock/gardet/internal/header"
	"github.com/evcraddock/gardet/internal/property"
	"github.com/evcraddock/gardet/internal/search"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encoding response", "err", err)
	}
}

func propertyID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// apiListProperties returns the listings matching ?location= and ?type=.
func (s *Server) apiListProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t := search.TypeAll
	if raw := q.Get("type"); raw != "" {
		var ok bool
		if t, ok = search.ParsePropertyType(raw); !ok {
			apiError(w, "unknown property type: "+raw, http.StatusBadRequest)
			return
		}
	}

	props, err := s.props.List(property.ListOptions{Location: q.Get("location"), Type: t})
	if err != nil {
		slog.ErrorContext(r.Context(), "listing properties", "err", err)
		apiError(w, "listing properties failed", http.StatusInternalServerError)
		return
	}
	if props == nil {
		props = []*property.Property{}
	}
	apiJSON(w, props, http.StatusOK)
}

// apiGetProperty returns one listing.
func (s *Server) apiGetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyID(r)
	if !ok {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return
	}

	p, err := s.props.GetByID(id)
	if errors.Is(err, property.ErrNotFound) {
		apiError(w, "property not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "loading property", "id", id, "err", err)
		apiError(w, "loading property failed", http.StatusInternalServerError)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

// apiAddProperty creates a listing from a JSON body.
func (s *Server) apiAddProperty(w http.ResponseWriter, r *http.Request) {
	var in property.Input
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	p, err := s.listings.Add(in)
	var ve *property.ValidationError
	if errors.As(err, &ve) {
		apiError(w, ve.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "adding property", "err", err)
		apiError(w, "adding property failed", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "property added", "id", p.ID, "by", auth.IdentityFrom(r.Context()).Email)
	apiJSON(w, p, http.StatusCreated)
}

// apiDeleteProperty removes a listing.
func (s *Server) apiDeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyID(r)
	if !ok {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return
	}

	err := s.props.Delete(id)
	if errors.Is(err, property.ErrNotFound) {
		apiError(w, "property not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "deleting property", "id", id, "err", err)
		apiError(w, "deleting property failed", http.StatusInternalServerError)
		return
	}
	apiJSON(w, map[string]any{"id": id, "removed": true}, http.StatusOK)
}

// apiQuickFilters returns the quick filters with their listing counts.
func (s *Server) apiQuickFilters(w http.ResponseWriter, r *http.Request) {
	counts, err := s.listings.QuickFilterCounts()
	if err != nil {
		slog.ErrorContext(r.Context(), "counting listings", "err", err)
		apiError(w, "counting listings failed", http.StatusInternalServerError)
		return
	}
	apiJSON(w, counts, http.StatusOK)
}

// sessionResponse is the body of GET /api/session.
type sessionResponse struct {
	User *header.Identity `json:"user"`
}

// apiSession reports who the API key belongs to, or a null user.
func (s *Server) apiSession(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, sessionResponse{User: auth.IdentityFrom(r.Context())}, http.StatusOK)
}

// apiLogout revokes the API key the request was made with.
func (s *Server) apiLogout(w http.ResponseWriter, r *http.Request) {
	key, _ := auth.APIKeyFrom(r.Context())
	if err := s.apiKeys.Revoke(key); err != nil && !errors.Is(err, auth.ErrKeyNotFound) {
		slog.ErrorContext(r.Context(), "revoking api key", "err", err)
		apiError(w, "logout failed", http.StatusInternalServerError)
		return
	}
	apiJSON(w, map[string]string{"status": "logged out"}, http.StatusOK)
}
