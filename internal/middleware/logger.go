package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dukerupert/tabletab/internal/domain"
)

type contextKey string

// LoggerContextKey is the context key for storing the request-scoped logger
const LoggerContextKey contextKey = "logger"

// WithRequestLogger injects a logger carrying the request id, client IP and
// the authenticated username. Place it after RequestID and Authenticate.
func WithRequestLogger(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestLogger := baseLogger.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			if requestID := GetRequestID(r.Context()); requestID != "" {
				requestLogger = requestLogger.With(slog.String("request_id", requestID))
			}
			if ip := GetClientIPFromContext(r.Context()); ip != "" {
				requestLogger = requestLogger.With(slog.String("client_ip", ip))
			}
			if p := domain.PrincipalFromContext(r.Context()); p != nil {
				requestLogger = requestLogger.With(
					slog.String("username", p.Username),
					slog.String("role", string(p.Role)),
				)
			}

			ctx := context.WithValue(r.Context(), LoggerContextKey, requestLogger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLogger retrieves the request-scoped logger from the context.
// If no logger is found, returns the provided fallback logger.
// If no fallback is provided, returns slog.Default().
func GetLogger(ctx context.Context, fallback ...*slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*slog.Logger); ok {
		return logger
	}
	if len(fallback) > 0 && fallback[0] != nil {
		return fallback[0]
	}
	return slog.Default()
}
