package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[string]*domain.Principal

func (s stubVerifier) Verify(token string) (*domain.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, errors.New("bad token")
}

// whoami echoes the caller's username, or "anonymous".
var whoami = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if p := domain.PrincipalFromContext(r.Context()); p != nil {
		w.Write([]byte(p.Username))
		return
	}
	w.Write([]byte("anonymous"))
})

func TestAuthenticate(t *testing.T) {
	verifier := stubVerifier{"good": {Username: "asha", Role: domain.RoleCashier}}
	h := Authenticate(verifier)(whoami)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"no header", "", http.StatusOK, "anonymous"},
		{"valid token", "Bearer good", http.StatusOK, "asha"},
		{"lowercase scheme", "bearer good", http.StatusOK, "asha"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic Zm9vOmJhcg==", http.StatusUnauthorized, ""},
		{"missing token", "Bearer ", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, rec.Body.String())
				return
			}
			var body struct {
				Error struct{ Code string } `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, domain.EUNAUTHORIZED, body.Error.Code)
			assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(whoami)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/open", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/open", nil)
	req = req.WithContext(domain.WithPrincipal(req.Context(), &domain.Principal{Username: "raj", Role: domain.RoleCaptain}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = domain.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "from-proxy")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "from-proxy", seen)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.5, BurstSize: 2})
	defer rl.Stop()
	h := rl.Middleware(whoami)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "2", rec.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	assert.True(t, rl.Allow("10.0.0.8"), "other clients have their own bucket")
}

func TestMaxBodySize(t *testing.T) {
	h := MaxBodySize(8)(whoami)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"items":[]}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", GetClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", GetClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", GetClientIP(req))
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/api/orders/open":                         "/api/orders/open",
		"/api/orders/INV-20250305-000001":          "/api/orders/:invoice_number",
		"/api/orders/INV-20250305-000001/paid":     "/api/orders/:invoice_number/paid",
		"/api/orders/INV-20250305-000001/einvoice": "/api/orders/:invoice_number/einvoice",
		"/api/menu/42":                             "/api/menu/:id",
		"/api/menu":                                "/api/menu",
		"/health":                                  "/health",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizePath(in), in)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "test")
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/orders", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "/api/orders", "201")))
}
