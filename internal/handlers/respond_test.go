package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenmarket/internal/apperr"
	"greenmarket/internal/models"
)

func TestHandleErrorRendersEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, zerolog.Nop(), apperr.Conflict("Profit margin can only be updated for approved products."))

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp models.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Profit margin can only be updated for approved products.", resp.Message)
}

func TestHandleErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, zerolog.Nop(), assert.AnError)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp models.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "An internal error occurred.", resp.Message)
	assert.NotContains(t, resp.Message, assert.AnError.Error())
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
		var dst models.LoginRequest
		err := decodeAndValidate(req, &dst)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperr.From(err).Status)
	})

	t.Run("missing field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com"}`))
		var dst models.LoginRequest
		err := decodeAndValidate(req, &dst)
		require.Error(t, err)
		assert.Equal(t, "Missing required field: password", apperr.From(err).Message)
	})

	t.Run("valid body trims strings", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"  a@b.com ","password":"secret1"}`))
		var dst models.LoginRequest
		require.NoError(t, decodeAndValidate(req, &dst))
		assert.Equal(t, "a@b.com", dst.Email)
	})
}

func TestPageParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=25", nil)
	page, limit := pageParams(req)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	req = httptest.NewRequest(http.MethodGet, "/?page=0&limit=-4", nil)
	page, limit = pageParams(req)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	req = httptest.NewRequest(http.MethodGet, "/?limit=5000", nil)
	_, limit = pageParams(req)
	assert.Equal(t, maxPageLimit, limit)
}

func TestDateParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?startDate=2026-01-15", nil)
	start, err := dateParam(req, "startDate")
	require.NoError(t, err)
	require.NotNil(t, start)
	assert.Equal(t, 2026, start.Year())

	req = httptest.NewRequest(http.MethodGet, "/?startDate=15-01-2026", nil)
	_, err = dateParam(req, "startDate")
	assert.Error(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	missing, err := dateParam(req, "startDate")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
