package web

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/evcraddock/gardet/internal/auth"
	"github.com/evcraddock/gardet/internal/config"
	"github.com/evcraddock/gardet/internal/db"
	"github.com/evcraddock/gardet/internal/property"
	"github.com/evcraddock/gardet/internal/theme"
)

const testAdmin = "admin@example.com"

// fakeSender records magic link tokens instead of mailing them.
type fakeSender struct {
	web []string
	cli []string
}

func (f *fakeSender) SendMagicLink(email, token string) (string, error) {
	f.web = append(f.web, token)
	return "http://localhost:8080/auth/verify?token=" + token, nil
}

func (f *fakeSender) SendCLIMagicLink(email, token string) (string, error) {
	f.cli = append(f.cli, token)
	return "http://localhost:8080/cli/auth/verify?token=" + token, nil
}

func testConfig() config.Config {
	return config.Config{
		BrandName:       "Gardet",
		AppName:         "Gardet Propiedades",
		ThemeColor:      theme.DefaultColor,
		ScrollThreshold: 12,
		BaseURL:         "http://localhost:8080",
		CORSOrigins:     []string{"http://localhost:5173"},
		Auth: auth.Config{
			AdminEmail: testAdmin,
			BaseURL:    "http://localhost:8080",
			DevMode:    true,
		},
		Palette: theme.Derive(theme.DefaultColor),
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	srv, _, _ := testServerWithDB(t)
	return srv
}

func testServerWithDB(t *testing.T) (*Server, *sql.DB, *fakeSender) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})

	sender := &fakeSender{}
	srv, err := NewServer(d, testConfig(), WithSender(sender))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, d, sender
}

func insertTestProperty(t *testing.T, d *sql.DB, title, location, typ string) *property.Property {
	t.Helper()
	price := int64(1250000)
	p, err := property.NewService(property.NewRepository(d)).Add(property.Input{
		Title:    title,
		Location: location,
		Type:     typ,
		Price:    &price,
	})
	if err != nil {
		t.Fatalf("add property: %v", err)
	}
	return p
}

// loginCookie creates a session for email and returns its cookie.
func loginCookie(t *testing.T, d *sql.DB, email string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	if err := auth.NewSessionStore(d).Create(w, email); err != nil {
		t.Fatalf("create session: %v", err)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatalf("expected cookie named %q", auth.CookieName)
	return nil
}

// testAPIKey issues an API key for email.
func testAPIKey(t *testing.T, d *sql.DB, email string) string {
	t.Helper()
	raw, _, err := auth.NewAPIKeyStore(d).Create("test", email)
	if err != nil {
		t.Fatalf("create api key: %v", err)
	}
	return raw
}

func get(srv http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest("GET", target, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}
