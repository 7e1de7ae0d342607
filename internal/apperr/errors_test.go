package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom_KeepsAppError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Conflict("username taken"))

	appErr := From(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "username taken", appErr.Message)
}

func TestFrom_UnknownIsInternal(t *testing.T) {
	cause := errors.New("disk full")

	appErr := From(cause)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "internal server error", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
}

func TestIs(t *testing.T) {
	assert.True(t, Is(NotFound("product"), "NOT_FOUND"))
	assert.False(t, Is(BadRequest("x", nil), "NOT_FOUND"))
	assert.False(t, Is(errors.New("plain"), "NOT_FOUND"))
}

func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "product not found", NotFound("product").Message)
}
