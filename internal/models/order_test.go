package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenmarket/internal/apperr"
)

func validOrderRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerID:     7,
		WhitneyBlockID: 3,
		PaymentMethod:  "CARD",
		SubOrders: []SubOrderRequest{
			{
				SellerID:   11,
				Categories: []string{"Flower"},
				Products: []OrderItemRequest{
					{ProductID: 42, Qty: 2, SellerPrice: 10, ProfitMargin: 1},
				},
				Subtotal:     22,
				ShippingCost: 5,
				Total:        27,
			},
		},
	}
}

func TestCreateOrderRequestValid(t *testing.T) {
	req := validOrderRequest()
	assert.NoError(t, req.Validate())
}

func TestCreateOrderRequestViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateOrderRequest)
		wantMsg string
	}{
		{"missing customer", func(r *CreateOrderRequest) { r.CustomerID = 0 },
			"Customer ID, order details, Whitney block ID, and payment method are required."},
		{"missing payment method", func(r *CreateOrderRequest) { r.PaymentMethod = "" },
			"Customer ID, order details, Whitney block ID, and payment method are required."},
		{"unknown payment method", func(r *CreateOrderRequest) { r.PaymentMethod = "BARTER" },
			"Invalid payment method."},
		{"empty sub-order list", func(r *CreateOrderRequest) { r.SubOrders = []SubOrderRequest{} },
			"Order must be a non-empty array."},
		{"bad seller id", func(r *CreateOrderRequest) { r.SubOrders[0].SellerID = -1 },
			"Invalid seller ID in order."},
		{"no categories", func(r *CreateOrderRequest) { r.SubOrders[0].Categories = nil },
			"Categories are required for each sub-order."},
		{"no products", func(r *CreateOrderRequest) { r.SubOrders[0].Products = nil },
			"Products are required for each sub-order."},
		{"bad product id", func(r *CreateOrderRequest) { r.SubOrders[0].Products[0].ProductID = 0 },
			"Invalid product ID in order."},
		{"zero quantity", func(r *CreateOrderRequest) { r.SubOrders[0].Products[0].Qty = 0 },
			"Product quantity must be at least 1."},
		{"negative price", func(r *CreateOrderRequest) { r.SubOrders[0].Products[0].SellerPrice = -1 },
			"Seller price must be a positive number."},
		{"negative margin", func(r *CreateOrderRequest) { r.SubOrders[0].Products[0].ProfitMargin = -0.5 },
			"Profit margin cannot be negative."},
		{"negative subtotal", func(r *CreateOrderRequest) { r.SubOrders[0].Subtotal = -1 },
			"Subtotal must be a positive number."},
		{"negative shipping", func(r *CreateOrderRequest) { r.SubOrders[0].ShippingCost = -1 },
			"Shipping cost must be a positive number."},
		{"negative total", func(r *CreateOrderRequest) { r.SubOrders[0].Total = -27 },
			"Total must be a positive number."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validOrderRequest()
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			appErr := apperr.From(err)
			assert.Equal(t, http.StatusBadRequest, appErr.Status)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestUpdateOrderRequestValidatesReplacementFieldsOnly(t *testing.T) {
	assert.NoError(t, (&UpdateOrderRequest{}).Validate())
	assert.NoError(t, (&UpdateOrderRequest{PaymentMethod: "ACH"}).Validate())

	err := (&UpdateOrderRequest{PaymentMethod: "CRYPTO"}).Validate()
	require.Error(t, err)

	err = (&UpdateOrderRequest{SubOrders: []SubOrderRequest{}}).Validate()
	require.Error(t, err)
	assert.Equal(t, "Order must be a non-empty array.", apperr.From(err).Message)
}

func TestIsValidPaymentMethod(t *testing.T) {
	assert.True(t, IsValidPaymentMethod("CARD"))
	assert.True(t, IsValidPaymentMethod("COD"))
	assert.True(t, IsValidPaymentMethod("ACH"))
	assert.False(t, IsValidPaymentMethod("card"))
	assert.False(t, IsValidPaymentMethod(""))
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		limit   int
		total   int64
		fetched int
		want    Pagination
	}{
		{"first of three pages", 1, 10, 25, 10,
			Pagination{CurrentPage: 1, TotalPages: 3, TotalOrders: 25, HasNextPage: true, HasPrevPage: false}},
		{"middle page", 2, 10, 25, 10,
			Pagination{CurrentPage: 2, TotalPages: 3, TotalOrders: 25, HasNextPage: true, HasPrevPage: true}},
		{"last page", 3, 10, 25, 5,
			Pagination{CurrentPage: 3, TotalPages: 3, TotalOrders: 25, HasNextPage: false, HasPrevPage: true}},
		{"empty result", 1, 10, 0, 0,
			Pagination{CurrentPage: 1, TotalPages: 0, TotalOrders: 0, HasNextPage: false, HasPrevPage: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.limit, tt.total, tt.fetched))
		})
	}
}
