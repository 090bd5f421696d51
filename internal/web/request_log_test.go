package web

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evcraddock/gardet/internal/logging"
)

func TestHandlerErrorLogCarriesRequestID(t *testing.T) {
	srv, d, _ := testServerWithDB(t)
	if _, err := d.Exec("DROP TABLE properties"); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	var buf bytes.Buffer
	logging.SetupTo(&buf, false)

	const id = "3f2b8c1e-9d4a-4e6f-8a7b-1c2d3e4f5a6b"
	req := httptest.NewRequest("GET", "/properties?location=Madrid", nil)
	req.Header.Set(logging.RequestIDHeader, id)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		if entry["msg"] == "listing properties" {
			found = true
			if entry["request_id"] != id {
				t.Errorf("request_id = %v, want %q", entry["request_id"], id)
			}
		}
	}
	if !found {
		t.Errorf("no handler error logged in %q", buf.String())
	}
}
