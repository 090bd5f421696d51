package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

// captureLogs points the default logger at a JSON buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	var buf bytes.Buffer
	SetupTo(&buf, false)
	return &buf
}

func TestNewHandlerDevMode(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, true))

	logger.Debug("test debug")
	logger.Info("test info", "k", "v")

	output := buf.String()
	if !strings.Contains(output, "test debug") {
		t.Error("expected debug message visible in dev mode")
	}
	if !strings.Contains(output, "k=v") {
		t.Errorf("expected key=value attrs, got %q", output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Error("expected no color codes when writing to a buffer")
	}
}

func TestNewHandlerProdMode(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, false))

	logger.Debug("hidden")
	logger.Info("prod test")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug should be filtered in prod mode")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "prod test" {
		t.Errorf("msg = %v, want %q", entry["msg"], "prod test")
	}
}

func TestRequestLogger(t *testing.T) {
	buf := captureLogs(t)

	var seenID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestID(r.Context())
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest("GET", "/properties", nil)
	rec := httptest.NewRecorder()
	RequestLogger(inner).ServeHTTP(rec, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log: %v (%q)", err, buf.String())
	}
	if entry["method"] != "GET" || entry["path"] != "/properties" {
		t.Errorf("entry = %v", entry)
	}
	if entry["status"] != float64(200) {
		t.Errorf("status = %v, want 200", entry["status"])
	}
	if seenID == "" || entry["request_id"] != seenID {
		t.Errorf("request_id = %v, handler saw %q", entry["request_id"], seenID)
	}
	if rec.Header().Get(RequestIDHeader) != seenID {
		t.Errorf("response header = %q, want %q", rec.Header().Get(RequestIDHeader), seenID)
	}
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	captureLogs(t)
	const id = "3f2b8c1e-9d4a-4e6f-8a7b-1c2d3e4f5a6b"

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"uuid kept", id, true},
		{"garbage replaced", "not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set(RequestIDHeader, tt.header)
			rec := httptest.NewRecorder()
			RequestLogger(http.NotFoundHandler()).ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if tt.keep && got != tt.header {
				t.Errorf("id = %q, want %q", got, tt.header)
			}
			if !tt.keep && (got == tt.header || got == "") {
				t.Errorf("id = %q, want a fresh uuid", got)
			}
		})
	}
}

func TestRequestLoggerSkipsNoisyPaths(t *testing.T) {
	for _, path := range []string{"/static/style.css", "/health"} {
		t.Run(path, func(t *testing.T) {
			buf := captureLogs(t)

			req := httptest.NewRequest("GET", path, nil)
			rec := httptest.NewRecorder()
			RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)

			if buf.Len() > 0 {
				t.Errorf("expected no log for %s, got %q", path, buf.String())
			}
		})
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			buf := captureLogs(t)

			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			RequestLogger(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/x", nil))

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("decode log: %v", err)
			}
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
		})
	}
}

func TestHandlerLogsCarryRequestID(t *testing.T) {
	buf := captureLogs(t)

	var seenID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestID(r.Context())
		slog.ErrorContext(r.Context(), "listing properties", "err", "disk full")
		w.WriteHeader(http.StatusInternalServerError)
	})

	RequestLogger(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/properties", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected handler and request log lines, got %q", buf.String())
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		if entry["request_id"] != seenID {
			t.Errorf("%v: request_id = %v, want %q", entry["msg"], entry["request_id"], seenID)
		}
	}
}

func TestLogsWithoutRequestHaveNoID(t *testing.T) {
	buf := captureLogs(t)

	slog.Info("starting web server")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("unexpected request_id in %q", buf.String())
	}
}

func TestDevHandlerKeepsRequestIDAcrossWith(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, true)).With("component", "web")

	logger.InfoContext(WithRequestID(context.Background(), "abc-123"), "rendered")

	out := buf.String()
	if !strings.Contains(out, "request_id=abc-123") || !strings.Contains(out, "component=web") {
		t.Errorf("output = %q", out)
	}
}

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	if isTerminal(f) {
		t.Error("regular file reported as terminal")
	}
	if isTerminal(&bytes.Buffer{}) {
		t.Error("buffer reported as terminal")
	}
}
