package middleware

import (
	"net/http"
	"strings"

	"github.com/dukerupert/tabletab/internal/domain"
)

// TokenVerifier turns a bearer token into the caller. auth.TokenIssuer
// satisfies it.
type TokenVerifier interface {
	Verify(token string) (*domain.Principal, error)
}

// Authenticate reads "Authorization: Bearer <token>" and stores the caller
// in the request context. Requests without the header pass through
// anonymously; a malformed or expired token is rejected with 401.
func Authenticate(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				respondUnauthorized(w, r, "Malformed authorization header")
				return
			}

			principal, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				respondUnauthorized(w, r, "Invalid or expired token")
				return
			}

			ctx := domain.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if domain.PrincipalFromContext(r.Context()) == nil {
			respondUnauthorized(w, r, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
