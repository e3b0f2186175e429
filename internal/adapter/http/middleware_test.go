package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriterCapturesStatusAndBytes(t *testing.T) {
	inner := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: inner, status: http.StatusOK}

	rw.WriteHeader(http.StatusTeapot)
	_, _ = rw.Write([]byte("short"))
	_, _ = rw.Write([]byte(" and stout"))

	if rw.status != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rw.status, http.StatusTeapot)
	}
	if rw.written != len("short and stout") {
		t.Errorf("written = %d", rw.written)
	}
	if rw.Unwrap() != inner {
		t.Error("Unwrap should return the wrapped writer")
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"ok", http.StatusOK, "INFO"},
		{"client error", http.StatusNotFound, "INFO"},
		{"server error", http.StatusInternalServerError, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			h := Logger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/projects", http.NoBody))

			var rec map[string]any
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("decode log line %q: %v", buf.String(), err)
			}
			if rec["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", rec["level"], tt.wantLevel)
			}
			if int(rec["status"].(float64)) != tt.status {
				t.Errorf("status = %v, want %d", rec["status"], tt.status)
			}
			if rec["path"] != "/api/projects" {
				t.Errorf("path = %v", rec["path"])
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS("https://app.example.com")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/tasks/1/status", http.NoBody))

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if called {
		t.Error("preflight should not reach the handler")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allow-origin = %q", got)
	}
	if !bytes.Contains([]byte(w.Header().Get("Access-Control-Allow-Methods")), []byte("PATCH")) {
		t.Error("PATCH must be an allowed method")
	}
}

func TestCORSPassesThrough(t *testing.T) {
	h := CORS("*")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if w.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}
