package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Strob0t/Workboard/internal/adapter/ristretto"
	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/middleware"
)

func newTestCache(t *testing.T) *ristretto.Cache {
	t.Helper()
	c, err := ristretto.New(1 << 20)
	if err != nil {
		t.Fatalf("ristretto.New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func makeTestHandler(counter *int, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*counter++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"call":%d}`, *counter)
	})
}

func post(handler http.Handler, key, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/projects", http.NoBody)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency_NoHeader(t *testing.T) {
	counter := 0
	handler := middleware.Idempotency(newTestCache(t), time.Minute)(makeTestHandler(&counter, http.StatusCreated))

	post(handler, "", "10.0.0.1:1234")
	post(handler, "", "10.0.0.1:1234")
	if counter != 2 {
		t.Fatalf("expected 2 calls, got %d", counter)
	}
}

func TestIdempotency_SecondRequestReplays(t *testing.T) {
	counter := 0
	handler := middleware.Idempotency(newTestCache(t), time.Minute)(makeTestHandler(&counter, http.StatusCreated))

	first := post(handler, "key-1", "10.0.0.1:1234")
	second := post(handler, "key-1", "10.0.0.1:1234")

	if counter != 1 {
		t.Fatalf("expected handler called once, got %d", counter)
	}
	if second.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Errorf("replayed body = %q, want %q", second.Body.String(), first.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Error("expected Idempotent-Replayed header")
	}
}

func TestIdempotency_ScopedPerClient(t *testing.T) {
	counter := 0
	handler := middleware.Idempotency(newTestCache(t), time.Minute)(makeTestHandler(&counter, http.StatusCreated))

	post(handler, "shared", "10.0.0.1:1234")
	post(handler, "shared", "10.0.0.2:1234")
	if counter != 2 {
		t.Fatalf("expected 2 calls for different clients, got %d", counter)
	}
}

func TestIdempotency_ScopedPerPrincipal(t *testing.T) {
	counter := 0
	c := newTestCache(t)
	inner := middleware.Idempotency(c, time.Minute)(makeTestHandler(&counter, http.StatusCreated))

	send := func(userID string) {
		req := httptest.NewRequest(http.MethodPost, "/api/projects", http.NoBody)
		req.Header.Set("Idempotency-Key", "k")
		ctx := middleware.ContextWithPrincipal(req.Context(), &user.Principal{UserID: userID, TenantID: "t", Role: user.RoleUser})
		inner.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
	}
	send("u1")
	send("u1")
	send("u2")
	if counter != 2 {
		t.Fatalf("expected 2 calls, got %d", counter)
	}
}

func TestIdempotency_FailuresNotStored(t *testing.T) {
	counter := 0
	handler := middleware.Idempotency(newTestCache(t), time.Minute)(makeTestHandler(&counter, http.StatusForbidden))

	post(handler, "key-q", "10.0.0.1:1234")
	post(handler, "key-q", "10.0.0.1:1234")
	if counter != 2 {
		t.Fatalf("expected rejected request to be retried, got %d calls", counter)
	}
}

func TestIdempotency_GETIgnored(t *testing.T) {
	counter := 0
	handler := middleware.Idempotency(newTestCache(t), time.Minute)(makeTestHandler(&counter, http.StatusOK))

	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", http.NoBody)
		req.Header.Set("Idempotency-Key", "key-get")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	if counter != 2 {
		t.Fatalf("expected 2 calls, got %d", counter)
	}
}

func TestIdempotency_ReplayKeepsOwnRequestID(t *testing.T) {
	counter := 0
	handler := middleware.RequestID(
		middleware.Idempotency(newTestCache(t), time.Minute)(makeTestHandler(&counter, http.StatusCreated)),
	)

	send := func(requestID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/projects", http.NoBody)
		req.Header.Set("Idempotency-Key", "key-rid")
		req.Header.Set("X-Request-ID", requestID)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	send("first-request")
	replay := send("second-request")

	if counter != 1 {
		t.Fatalf("expected 1 call, got %d", counter)
	}
	ids := replay.Header().Values("X-Request-ID")
	if len(ids) != 1 || ids[0] != "second-request" {
		t.Fatalf("X-Request-ID on replay = %v, want [second-request]", ids)
	}
	if got := replay.Header().Values("Content-Type"); len(got) != 1 {
		t.Errorf("Content-Type on replay = %v, want one value", got)
	}
}
