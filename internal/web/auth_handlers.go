package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// loginSent is shown whether or not the email is authorized so the form
// cannot be used to probe for accounts.
const loginSent = "Si el correo está registrado, te enviamos un enlace de acceso. Revisa tu bandeja de entrada."

type loginData struct {
	page
	Message string
}

// handleLoginPage renders the login form.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.html", loginData{page: s.newPage(r, "Entrar")})
}

// handleLoginSubmit sends a magic link to an authorized email.
func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := loginData{page: s.newPage(r, "Entrar")}
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	if email == "" {
		data.Error = "El correo es obligatorio"
		s.render(w, "login.html", data)
		return
	}

	if s.users.IsAuthorized(email) {
		token, err := s.tokens.Create(email)
		if err != nil {
			slog.ErrorContext(r.Context(), "creating token", "err", err)
		} else if _, err := s.mailer.SendMagicLink(email, token); err != nil {
			slog.ErrorContext(r.Context(), "sending magic link", "err", err)
		}
	}

	data.Message = loginSent
	s.render(w, "login.html", data)
}

// handleVerify redeems a magic link token and starts a session.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	data := loginData{page: s.newPage(r, "Entrar")}

	token := r.URL.Query().Get("token")
	if token == "" {
		data.Error = "Enlace de acceso no válido"
		s.render(w, "login.html", data)
		return
	}

	email, err := s.tokens.Validate(token)
	if err != nil {
		data.Error = "El enlace no es válido o ha caducado. Solicita uno nuevo."
		s.render(w, "login.html", data)
		return
	}

	if err := s.sessions.Create(w, email); err != nil {
		slog.ErrorContext(r.Context(), "creating session", "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout ends the session through the header's logout flow. The
// visitor is only sent home once the session is gone.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	h := s.newHeaderWithLogout(r, func(ctx context.Context) error {
		return s.sessions.Destroy(w, r)
	})

	if err := h.Logout(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "destroying session", "err", err)
		http.Error(w, "No se pudo cerrar la sesión", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
