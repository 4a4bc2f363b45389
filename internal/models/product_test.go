package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenmarket/internal/apperr"
)

func TestCanAddMargin(t *testing.T) {
	pending := &Product{Status: ProductStatusPending}
	assert.NoError(t, pending.CanAddMargin())

	approved := &Product{Status: ProductStatusApproved}
	err := approved.CanAddMargin()
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.From(err).Status)
}

func TestCanUpdateMargin(t *testing.T) {
	approved := &Product{Status: ProductStatusApproved}
	assert.NoError(t, approved.CanUpdateMargin())

	pending := &Product{Status: ProductStatusPending}
	err := pending.CanUpdateMargin()
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.From(err).Status)
	assert.Equal(t, "Profit margin can only be updated for approved products.", apperr.From(err).Message)
}

func TestApplyPriceChange(t *testing.T) {
	tests := []struct {
		name       string
		status     ProductStatus
		oldPrice   float64
		margin     float64
		newPrice   float64
		wantStatus ProductStatus
		wantMargin float64
	}{
		{"approved listing, price raised", ProductStatusApproved, 10, 2.5, 12, ProductStatusPending, 0},
		{"approved listing, price lowered", ProductStatusApproved, 10, 2.5, 8, ProductStatusPending, 0},
		{"pending listing, price changed", ProductStatusPending, 10, 0, 11, ProductStatusPending, 0},
		{"approved listing, price unchanged", ProductStatusApproved, 10, 2.5, 10, ProductStatusApproved, 2.5},
		{"pending listing, price unchanged", ProductStatusPending, 10, 0, 10, ProductStatusPending, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Status: tt.status, SellerPrice: tt.oldPrice, ProfitMargin: tt.margin}
			status, margin := p.ApplyPriceChange(tt.newPrice)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMargin, margin)
		})
	}
}
