// Package web provides the HTTP server for the gardet site and JSON API.
package web

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/evcraddock/gardet/internal/auth"
	"github.com/evcraddock/gardet/internal/config"
	"github.com/evcraddock/gardet/internal/logging"
	"github.com/evcraddock/gardet/internal/property"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the site HTTP server.
type Server struct {
	cfg       config.Config
	props     *property.Repository
	listings  *property.Service
	sessions  *auth.SessionStore
	tokens    *auth.TokenStore
	apiKeys   *auth.APIKeyStore
	users     *auth.UserStore
	mailer    auth.Sender
	limiter   *auth.RateLimiter
	templates *template.Template
	router    chi.Router
}

// Option customizes a Server.
type Option func(*Server)

// WithSender replaces the SMTP mailer used for magic links.
func WithSender(sender auth.Sender) Option {
	return func(s *Server) { s.mailer = sender }
}

// NewServer creates a server backed by db.
func NewServer(db *sql.DB, cfg config.Config, opts ...Option) (*Server, error) {
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	repo := property.NewRepository(db)
	s := &Server{
		cfg:       cfg,
		props:     repo,
		listings:  property.NewService(repo),
		sessions:  auth.NewSessionStore(db),
		tokens:    auth.NewTokenStore(db),
		apiKeys:   auth.NewAPIKeyStore(db),
		users:     auth.NewUserStore(db, cfg.Auth.AdminEmail),
		mailer:    auth.NewMailer(cfg.Auth),
		limiter:   auth.NewRateLimiter(auth.RateLimitWindow, auth.RateLimitMaxFail),
		templates: tmpl,
	}
	for _, opt := range opts {
		opt(s)
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.router = s.routes(http.FileServer(http.FS(staticContent)))
	return s, nil
}

func (s *Server) routes(static http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, logging.RequestLogger, middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", static))
	r.Get("/health", s.handleHealth)

	// Site pages. The session is optional everywhere except the CLI key page.
	r.Group(func(r chi.Router) {
		r.Use(auth.LoadSession(s.sessions, s.users))

		r.Get("/", s.handleLanding)
		r.Get("/search", s.handleSearch)
		r.Get("/properties", s.handleListing)
		r.Get("/properties/{id}", s.handleDetail)
		r.Get("/contact", s.handleContact)

		r.Get("/login", s.handleLoginPage)
		r.Post("/auth/login", s.handleLoginSubmit)
		r.Get("/auth/verify", s.handleVerify)
		r.Post("/auth/logout", s.handleLogout)

		r.Get("/cli/auth", s.handleCLIAuthPage)
		r.Post("/cli/auth", s.handleCLIAuthSubmit)
		r.Get("/cli/auth/verify", s.handleCLIAuthVerify)
		r.With(auth.RequireSession).Get("/cli/auth/complete", s.handleCLIAuthComplete)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", logging.RequestIDHeader},
			ExposedHeaders: []string{logging.RequestIDHeader},
			MaxAge:         300,
		}))
		r.Use(auth.LoadAPIKey(s.apiKeys, s.users, s.limiter))

		r.Get("/properties", s.apiListProperties)
		r.Get("/properties/{id}", s.apiGetProperty)
		r.Get("/filters", s.apiQuickFilters)
		r.Get("/session", s.apiSession)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAPIKey)
			r.Post("/properties", s.apiAddProperty)
			r.Delete("/properties/{id}", s.apiDeleteProperty)
			r.Post("/logout", s.apiLogout)
		})
	})

	r.NotFound(s.handleNotFound)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.cleanupLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting web server", "addr", addr, "base_url", s.cfg.BaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down web server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// cleanupLoop prunes expired sessions and tokens every hour.
func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.sessions.Cleanup(); err != nil {
				slog.Warn("cleaning sessions", "err", err)
			}
			if err := s.tokens.Cleanup(); err != nil {
				slog.Warn("cleaning tokens", "err", err)
			}
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
