package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func apiRequest(srv http.Handler, method, target, key, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if key != "" {
		r.Header.Set("Authorization", "Bearer "+key)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func TestAPIListEmpty(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(srv, "GET", "/api/properties", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestAPIListFilters(t *testing.T) {
	srv, d, _ := testServerWithDB(t)
	insertTestProperty(t, d, "Villa del Mar", "Madrid", "Villas")
	insertTestProperty(t, d, "Casa Centro", "Madrid", "Casas")

	w := apiRequest(srv, "GET", "/api/properties?location=Madrid&type=Casas", "", "")
	var got []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0]["title"] != "Casa Centro" {
		t.Errorf("got %v, want only Casa Centro", got)
	}
}

func TestAPIListRejectsUnknownType(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(srv, "GET", "/api/properties?type=Castillos", "", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAPIGetProperty(t *testing.T) {
	srv, d, _ := testServerWithDB(t)
	p := insertTestProperty(t, d, "Villa del Mar", "Madrid", "Villas")

	w := apiRequest(srv, "GET", fmt.Sprintf("/api/properties/%d", p.ID), "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"type":"Villas"`) {
		t.Errorf("body = %s, want type Villas", w.Body.String())
	}

	tests := []struct {
		target string
		code   int
	}{
		{"/api/properties/999", http.StatusNotFound},
		{"/api/properties/abc", http.StatusBadRequest},
		{"/api/properties/0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if w := apiRequest(srv, "GET", tt.target, "", ""); w.Code != tt.code {
			t.Errorf("%s status = %d, want %d", tt.target, w.Code, tt.code)
		}
	}
}

func TestAPIAddRequiresKey(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(srv, "POST", "/api/properties", "", `{"title":"x","location":"y","type":"Casas"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAPIInvalidKey(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(srv, "GET", "/api/properties", "gd_wrong", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAPIAddProperty(t *testing.T) {
	srv, d, _ := testServerWithDB(t)
	key := testAPIKey(t, d, testAdmin)

	body := `{"title":" Estudio Centro ","location":"Santiago","type":"Estudios","price":95000,"area_m2":38.5}`
	w := apiRequest(srv, "POST", "/api/properties", key, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var got map[string]any
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["title"] != "Estudio Centro" {
		t.Errorf("title = %v, want trimmed title", got["title"])
	}
	if got["id"] == nil {
		t.Error("expected id in response")
	}
}

func TestAPIAddPropertyValidation(t *testing.T) {
	srv, d, _ := testServerWithDB(t)
	key := testAPIKey(t, d, testAdmin)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing title", `{"location":"Madrid","type":"Casas"}`, "title"},
		{"bad type", `{"title":"x","location":"Madrid","type":"Castillos"}`, "type"},
		{"negative price", `{"title":"x","location":"Madrid","type":"Casas","price":-1}`, "price"},
		{"unknown field", `{"title":"x","location":"Madrid","type":"Casas","pool":true}`, "invalid JSON"},
		{"not json", `{`, "invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apiRequest(srv, "POST", "/api/properties", key, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body = %s, want mention of %q", w.Body.String(), tt.want)
			}
		})
	}
}

func TestAPIDeleteProperty(t *testing.T) {
	srv, d, _ := testServerWithDB(t)
	key := testAPIKey(t, d, testAdmin)
	p := insertTestProperty(t, d, "Villa del Mar", "Madrid", "Villas")
	target := fmt.Sprintf("/api/properties/%d", p.ID)

	if w := apiRequest(srv, "DELETE", target, "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous delete status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	w := apiRequest(srv, "DELETE", target, key, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"removed":true`) {
		t.Errorf("body = %s, want removed", w.Body.String())
	}

	if w := apiRequest(srv, "DELETE", target, key, ""); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAPIQuickFilters(t *testing.T) {
	srv, d, _ := testServerWithDB(t)
	insertTestProperty(t, d, "Casa Centro", "Madrid", "Casas")

	w := apiRequest(srv, "GET", "/api/filters", "", "")
	want := `[{"type":"Departamentos","count":0},{"type":"Casas","count":1},{"type":"Villas","count":0},{"type":"Estudios","count":0}]`
	if got := strings.TrimSpace(w.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestAPISession(t *testing.T) {
	srv, d, _ := testServerWithDB(t)

	w := apiRequest(srv, "GET", "/api/session", "", "")
	if got := strings.TrimSpace(w.Body.String()); got != `{"user":null}` {
		t.Errorf("anonymous body = %s, want null user", got)
	}

	key := testAPIKey(t, d, testAdmin)
	w = apiRequest(srv, "GET", "/api/session", key, "")
	if !strings.Contains(w.Body.String(), `"email":"`+testAdmin+`"`) {
		t.Errorf("body = %s, want admin email", w.Body.String())
	}
}

func TestAPILogoutRevokesKey(t *testing.T) {
	srv, d, _ := testServerWithDB(t)
	key := testAPIKey(t, d, testAdmin)

	w := apiRequest(srv, "POST", "/api/logout", key, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	w = apiRequest(srv, "GET", "/api/session", key, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("revoked key status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAPICORS(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("OPTIONS", "/api/properties", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	r.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin = %q, want the configured origin", got)
	}

	r = httptest.NewRequest("GET", "/api/properties", nil)
	r.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow origin = %q, want none", got)
	}
}
