package models

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenmarket/internal/apperr"
)

func TestUserDisplayID(t *testing.T) {
	tests := []struct {
		name      string
		first     string
		last      string
		counter   int64
		want      string
	}{
		{"plain", "John", "Doe", 2001, "JD2001"},
		{"lowercase input", "jane", "smith", 2002, "JS2002"},
		{"leading spaces", " amy", " brown", 2103, "AB2103"},
		{"empty last name", "Solo", "", 2004, "S2004"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserDisplayID(tt.first, tt.last, tt.counter))
		})
	}
}

func TestCanLogin(t *testing.T) {
	tests := []struct {
		name       string
		user       User
		wantStatus int
	}{
		{"pending account", User{AccountStatus: AccountStatusPending}, http.StatusUnauthorized},
		{"rejected account", User{AccountStatus: AccountStatusRejected}, http.StatusUnauthorized},
		{"blocked account", User{AccountStatus: AccountStatusApproved, IsBlocked: true}, http.StatusUnprocessableEntity},
		{"rejected and blocked", User{AccountStatus: AccountStatusRejected, IsBlocked: true}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.CanLogin()
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, apperr.From(err).Status)
		})
	}

	t.Run("approved unblocked account", func(t *testing.T) {
		u := User{AccountStatus: AccountStatusApproved}
		assert.NoError(t, u.CanLogin())
	})
}

func TestCanTransitionTo(t *testing.T) {
	pending := User{AccountStatus: AccountStatusPending}
	assert.NoError(t, pending.CanTransitionTo(AccountStatusApproved))
	assert.NoError(t, pending.CanTransitionTo(AccountStatusRejected))

	err := pending.CanTransitionTo(AccountStatusPending)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.From(err).Status)

	approved := User{AccountStatus: AccountStatusApproved}
	err = approved.CanTransitionTo(AccountStatusRejected)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.From(err).Status)

	rejected := User{AccountStatus: AccountStatusRejected}
	err = rejected.CanTransitionTo(AccountStatusApproved)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.From(err).Status)
}

func TestResetOTPRedeemable(t *testing.T) {
	now := time.Now()
	hash := "$2a$10$someotphash"

	tests := []struct {
		name    string
		hash    *string
		expires *time.Time
		want    bool
	}{
		{"no reset requested", nil, nil, false},
		{"hash without expiry", &hash, nil, false},
		{"expired code", &hash, ptrTime(now.Add(-time.Second)), false},
		{"long expired code", &hash, ptrTime(now.Add(-16 * time.Minute)), false},
		{"still valid", &hash, ptrTime(now.Add(14 * time.Minute)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{ResetOTPHash: tt.hash, ResetOTPExpires: tt.expires}
			assert.Equal(t, tt.want, u.ResetOTPRedeemable(now))
		})
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
