package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/Strob0t/Workboard/internal/config"
)

func TestNew(t *testing.T) {
	cfg := config.Logging{Level: "debug", Service: "test-svc"}
	l, closer := New(cfg)
	defer closer.Close()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewAsync(t *testing.T) {
	cfg := config.Logging{Level: "debug", Service: "test-svc", Async: true}
	l, closer := New(cfg)
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	closer.Close()
}

func TestNew_AddsServiceAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	l, closer := newWithWriter(config.Logging{Level: "info", Service: "workboard-test"}, &buf)
	defer closer.Close()

	ctx := WithRequestID(context.Background(), "req-42")
	l.InfoContext(ctx, "tenant registered", "tenant_id", "t1")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line["service"] != "workboard-test" {
		t.Errorf("service = %v, want workboard-test", line["service"])
	}
	if line["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", line["request_id"])
	}
	if line["tenant_id"] != "t1" {
		t.Errorf("tenant_id = %v, want t1", line["tenant_id"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, closer := newWithWriter(config.Logging{Level: "warn", Service: "svc"}, &buf)
	defer closer.Close()

	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info record should be filtered at warn level, got %s", buf.String())
	}
	l.Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("warn record should be written")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
		{"", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLevel(tt.input).String()
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()

	if got := RequestID(ctx); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}

	ctx = WithRequestID(ctx, "req-123")
	if got := RequestID(ctx); got != "req-123" {
		t.Errorf("expected req-123, got %q", got)
	}
}
