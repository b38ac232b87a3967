package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newAuthHandler(t *testing.T) (http.Handler, *[]*CustomerClaims) {
	t.Helper()
	var seen []*CustomerClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := CustomerFromContext(r.Context())
		seen = append(seen, claims)
		w.WriteHeader(http.StatusOK)
	})
	return CustomerAuth(secret)(next), &seen
}

func sign(t *testing.T, secret string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomerClaims{
		CustomerID: 42,
		StoreID:    10,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestCustomerAuthValidToken(t *testing.T) {
	h, seen := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, secret, time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, *seen, 1)
	claims := (*seen)[0]
	require.NotNil(t, claims)
	assert.Equal(t, int64(42), claims.CustomerID)
	assert.Equal(t, int64(10), claims.StoreID)
}

func TestCustomerAuthNoTokenPassesThrough(t *testing.T) {
	h, seen := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, *seen, 1)
	assert.Nil(t, (*seen)[0])
}

func TestCustomerAuthRejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"wrong secret", "Bearer " + sign(t, "other-secret", time.Now().Add(time.Hour))},
		{"expired", "Bearer " + sign(t, secret, time.Now().Add(-time.Hour))},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, seen := newAuthHandler(t)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Empty(t, *seen)
		})
	}
}
