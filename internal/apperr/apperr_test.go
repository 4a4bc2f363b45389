package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
	}{
		{"bad request", BadRequest("bad"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("no"), http.StatusUnauthorized},
		{"forbidden", Forbidden("no"), http.StatusForbidden},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"conflict", Conflict("state"), http.StatusConflict},
		{"unprocessable", Unprocessable("blocked"), http.StatusUnprocessableEntity},
		{"internal", Internal("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestFromWrappedError(t *testing.T) {
	inner := Conflict("duplicate tag")
	wrapped := fmt.Errorf("adding tag: %w", inner)

	got := From(wrapped)
	assert.Equal(t, http.StatusConflict, got.Status)
	assert.Equal(t, "duplicate tag", got.Message)
}

func TestFromUnknownErrorDefaultsTo500(t *testing.T) {
	got := From(errors.New("driver: bad connection"))
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.NotContains(t, got.Message, "driver")
}
