package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// ClientIPContextKey is the context key for storing the client IP address
const ClientIPContextKey contextKey = "client_ip"

// WithClientIP stores the client address in the context for logging and
// rate limiting.
//
// Note: proxy headers can be spoofed; only trust them behind a reverse proxy
// that overwrites them.
func WithClientIP() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ClientIPContextKey, GetClientIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClientIPFromContext returns "" when WithClientIP was not applied.
func GetClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ClientIPContextKey).(string); ok {
		return ip
	}
	return ""
}

// GetClientIP checks X-Forwarded-For and X-Real-IP before RemoteAddr.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
