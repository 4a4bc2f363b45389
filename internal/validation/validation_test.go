package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenmarket/internal/apperr"
	"greenmarket/internal/models"
)

func TestStructTrimsBeforeValidating(t *testing.T) {
	req := models.LoginRequest{Email: "  user@example.com  ", Password: " secret1 "}
	require.NoError(t, Struct(&req))
	assert.Equal(t, "user@example.com", req.Email)
	assert.Equal(t, "secret1", req.Password)
}

func TestStructReportsMissingField(t *testing.T) {
	req := models.LoginRequest{Email: "user@example.com"}
	err := Struct(&req)
	require.Error(t, err)
	appErr := apperr.From(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Missing required field: password", appErr.Message)
}

func TestStructEnumViolation(t *testing.T) {
	req := models.CategoryRequest{Name: "Flower", ImageURL: "https://cdn.example.com/flower.png", ProductType: "TOBACCO"}
	err := Struct(&req)
	require.Error(t, err)
	assert.Contains(t, apperr.From(err).Message, "productType must be one of")
}

func TestWhitneyBlockPatterns(t *testing.T) {
	valid := models.WhitneyBlockRequest{
		FirstName: "Whitney", LastName: "Block", Address: "1 Main St",
		StrAptBid: "Apt 4", City: "Portland", State: "OR",
		ZipCode: "97201", PhoneNo: "+1 (503) 555-0100",
	}
	require.NoError(t, Struct(&valid))

	extended := valid
	extended.ZipCode = "97201-1234"
	require.NoError(t, Struct(&extended))

	tests := []struct {
		name    string
		mutate  func(*models.WhitneyBlockRequest)
		wantMsg string
	}{
		{"bad zip", func(r *models.WhitneyBlockRequest) { r.ZipCode = "972o1" }, "Please enter a valid zip code."},
		{"zip too long", func(r *models.WhitneyBlockRequest) { r.ZipCode = "972011" }, "Please enter a valid zip code."},
		{"bad phone", func(r *models.WhitneyBlockRequest) { r.PhoneNo = "call me" }, "Please enter a valid phone number."},
		{"short first name", func(r *models.WhitneyBlockRequest) { r.FirstName = "Al" }, "firstName must be at least 3 characters long."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := Struct(&req)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, apperr.From(err).Message)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42", "Product ID")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "-1", "0", "1.5"} {
		_, err := ParseID(raw, "Product ID")
		require.Error(t, err, raw)
		assert.Equal(t, "Product ID is not a valid ID.", apperr.From(err).Message)
	}
}
