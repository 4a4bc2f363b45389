package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenmarket/internal/models"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func testClaims(role string) *Claims {
	return &Claims{
		UserID:      7,
		Email:       "user@example.com",
		Role:        role,
		ProductType: "HEMP",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestAuthenticationPopulatesContext(t *testing.T) {
	var gotUserID int64
	var gotRole models.AccountType
	var gotProductType models.ProductType

	handler := Authentication(testSecret, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r)
		gotRole, _ = GetUserRole(r)
		gotProductType, _ = GetProductType(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, testClaims("SELLER")))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotUserID)
	assert.Equal(t, models.AccountTypeSeller, gotRole)
	assert.Equal(t, models.ProductTypeHemp, gotProductType)
}

func TestAuthenticationRejectsBadTokens(t *testing.T) {
	handler := Authentication(testSecret, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthenticationRejectsExpiredToken(t *testing.T) {
	claims := testClaims("BUYER")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	handler := Authentication(testSecret, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, claims))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	chain := func(role string, allowed ...models.AccountType) *httptest.ResponseRecorder {
		handler := Authentication(testSecret, zerolog.Nop())(
			RequireRole(allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, testClaims(role)))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, chain("ADMIN", models.AccountTypeAdmin).Code)
	assert.Equal(t, http.StatusForbidden, chain("BUYER", models.AccountTypeAdmin).Code)
	assert.Equal(t, http.StatusOK, chain("SELLER", models.AccountTypeAdmin, models.AccountTypeSeller).Code)
}
