package middleware

import (
	"encoding/json"
	"net"
	"net/http"
)

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeError writes the failure envelope used across the API.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: false, Message: message})
}

// clientIP extracts the client IP from RemoteAddr. chi's RealIP middleware
// rewrites RemoteAddr from proxy headers when it runs first.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
