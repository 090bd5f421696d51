package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/evcraddock/gardet/internal/auth"
)

type cliAuthData struct {
	page
	APIKey  string
	Message string
}

// handleCLIAuthPage serves the terminal login form.
func (s *Server) handleCLIAuthPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "cli_auth.html", cliAuthData{page: s.newPage(r, "Acceso desde la terminal")})
}

// handleCLIAuthSubmit mails a CLI magic link to an authorized email.
func (s *Server) handleCLIAuthSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := cliAuthData{page: s.newPage(r, "Acceso desde la terminal")}
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	if email == "" {
		data.Error = "El correo es obligatorio"
		s.render(w, "cli_auth.html", data)
		return
	}

	if s.users.IsAuthorized(email) {
		token, err := s.tokens.Create(email)
		if err != nil {
			slog.ErrorContext(r.Context(), "creating token", "err", err)
		} else if _, err := s.mailer.SendCLIMagicLink(email, token); err != nil {
			slog.ErrorContext(r.Context(), "sending cli magic link", "err", err)
		}
	}

	data.Message = loginSent
	s.render(w, "cli_auth.html", data)
}

// handleCLIAuthVerify redeems the token, starts a session and moves on to
// the page that shows the new key.
func (s *Server) handleCLIAuthVerify(w http.ResponseWriter, r *http.Request) {
	data := cliAuthData{page: s.newPage(r, "Acceso desde la terminal")}

	token := r.URL.Query().Get("token")
	if token == "" {
		data.Error = "Enlace de acceso no válido"
		s.render(w, "cli_auth.html", data)
		return
	}

	email, err := s.tokens.Validate(token)
	if err != nil {
		data.Error = "El enlace no es válido o ha caducado. Vuelve a intentarlo."
		s.render(w, "cli_auth.html", data)
		return
	}

	if err := s.sessions.Create(w, email); err != nil {
		slog.ErrorContext(r.Context(), "creating session", "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cli/auth/complete", http.StatusSeeOther)
}

// handleCLIAuthComplete issues an API key for the signed-in user and shows
// it once.
func (s *Server) handleCLIAuthComplete(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFrom(r.Context())

	rawKey, _, err := s.apiKeys.Create("CLI", id.Email)
	if err != nil {
		slog.ErrorContext(r.Context(), "creating api key", "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, "cli_auth.html", cliAuthData{
		page:   s.newPage(r, "Acceso desde la terminal"),
		APIKey: rawKey,
	})
}
