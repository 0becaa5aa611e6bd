package middleware

import (
	"context"
	"net/http"
	"time"
)

// Common size limits
const (
	KB = 1024
	MB = 1024 * KB

	// DefaultMaxBodySize covers the largest checkout payload with room to spare.
	DefaultMaxBodySize = 1 * MB
)

// MaxBodySize rejects declared oversize bodies with 413 and caps the rest
// with http.MaxBytesReader. If no size is provided, DefaultMaxBodySize is used.
func MaxBodySize(maxBytes ...int64) func(http.Handler) http.Handler {
	limit := int64(DefaultMaxBodySize)
	if len(maxBytes) > 0 {
		limit = maxBytes[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.ContentLength > limit {
				respondTooLarge(w, r, "Request body too large")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// DefaultTimeout bounds how long a request may hold database resources.
const DefaultTimeout = 15 * time.Second

// Timeout attaches a deadline to the request context so repository calls
// abort once it passes. If no duration is provided, DefaultTimeout is used.
func Timeout(timeout ...time.Duration) func(http.Handler) http.Handler {
	d := DefaultTimeout
	if len(timeout) > 0 {
		d = timeout[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
