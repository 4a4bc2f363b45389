package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenmarket/internal/config"
	"greenmarket/internal/models"
)

func testAuthService(expiry time.Duration) *AuthService {
	cfg := config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: expiry,
	}
	return NewAuthService(cfg, zerolog.Nop())
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testAuthService(time.Hour)

	user := &models.User{
		ID:          42,
		Email:       "seller@example.com",
		AccountType: models.AccountTypeSeller,
		ProductType: models.ProductTypeHemp,
	}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "seller@example.com", claims.Email)
	assert.Equal(t, string(models.AccountTypeSeller), claims.Role)
	assert.Equal(t, string(models.ProductTypeHemp), claims.ProductType)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := testAuthService(-time.Minute)

	token, err := svc.GenerateToken(&models.User{ID: 1, Email: "a@b.com"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := testAuthService(time.Hour)

	token, err := svc.GenerateToken(&models.User{ID: 1, Email: "a@b.com"})
	require.NoError(t, err)

	other := NewAuthService(config.Config{JWTSecret: "another-secret", JWTExpiry: time.Hour}, zerolog.Nop())
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9', "OTP must be numeric, got %q", otp)
		}
	}
}
