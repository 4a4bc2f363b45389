package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"greenmarket/internal/apperr"
	"greenmarket/internal/models"
	"greenmarket/internal/validation"
)

func writeJSON(w http.ResponseWriter, statusCode int, resp models.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func respond(w http.ResponseWriter, statusCode int, message string, data any) {
	writeJSON(w, statusCode, models.Response{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

func respondWithToken(w http.ResponseWriter, statusCode int, message, token string, data any) {
	writeJSON(w, statusCode, models.Response{
		StatusCode: statusCode,
		Message:    message,
		Token:      token,
		Data:       data,
	})
}

// handleError renders any error through the application error taxonomy;
// unknown errors are logged and surface as a plain 500.
func handleError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	appErr := apperr.From(err)
	if appErr.Status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("Request failed")
	}
	writeJSON(w, appErr.Status, models.Response{
		StatusCode: appErr.Status,
		Message:    appErr.Message,
	})
}

// decodeAndValidate parses the JSON body into dst and applies its validate
// tags.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.BadRequest("Invalid request body.")
	}
	return validation.Struct(dst)
}

const maxPageLimit = 100

func pageParams(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
	}
	return page, limit
}

func dateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperr.BadRequest(name + " must be a date in YYYY-MM-DD format.")
	}
	return &t, nil
}
