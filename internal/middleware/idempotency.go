package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Strob0t/Workboard/internal/port/cache"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	maxIdempotencyBody   = 1 << 20 // 1 MB
	maxIdempotencyKeyLen = 255
)

// idempotencyEntry stores a replayable HTTP response.
type idempotencyEntry struct {
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	Body       []byte              `json:"body"`
}

// Idempotency returns middleware that replays the stored response of a POST
// carrying an Idempotency-Key header the same actor already sent. Keys are
// scoped to the principal when one is present, otherwise to the client IP.
// Only 2xx responses are stored, so a rejected create can be retried.
func Idempotency(c cache.Cache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(headerIdempotencyKey)
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLen {
				writeError(w, http.StatusBadRequest, "Idempotency-Key is too long")
				return
			}

			cacheKey := idempotencyScope(r) + ":" + r.URL.Path + ":" + key
			if data, ok, err := c.Get(r.Context(), cacheKey); err == nil && ok {
				var cached idempotencyEntry
				if err := json.Unmarshal(data, &cached); err == nil {
					for k, vals := range cached.Headers {
						name := http.CanonicalHeaderKey(k)
						if name == http.CanonicalHeaderKey(headerRequestID) {
							continue
						}
						w.Header()[name] = vals
					}
					w.Header().Set("Idempotent-Replayed", "true")
					w.WriteHeader(cached.StatusCode)
					_, _ = w.Write(cached.Body)
					return
				}
				slog.WarnContext(r.Context(), "idempotency: corrupt cache entry", "key", key)
			}

			rec := &responseRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				body:           &bytes.Buffer{},
			}
			next.ServeHTTP(rec, r)

			if rec.statusCode < 200 || rec.statusCode >= 300 || rec.body.Len() > maxIdempotencyBody {
				return
			}
			// The replay carries its own request id.
			headers := w.Header().Clone()
			headers.Del(headerRequestID)
			data, err := json.Marshal(idempotencyEntry{
				StatusCode: rec.statusCode,
				Headers:    headers,
				Body:       rec.body.Bytes(),
			})
			if err != nil {
				return
			}
			if err := c.Set(r.Context(), cacheKey, data, ttl); err != nil {
				slog.WarnContext(r.Context(), "idempotency: failed to store response", "key", key, "error", err)
			}
		})
	}
}

func idempotencyScope(r *http.Request) string {
	if p := PrincipalFromContext(r.Context()); p != nil {
		return "idem:user:" + p.UserID
	}
	return "idem:ip:" + clientIP(r)
}

// responseRecorder wraps http.ResponseWriter to capture the response.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
