package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryKindAndStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		kind Kind
		code int
	}{
		{"not found", NewNotFoundError("Sale"), KindNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("taken"), KindConflict, http.StatusConflict},
		{"invalid input", NewInvalidInputError("bad"), KindInvalidInput, http.StatusBadRequest},
		{"invalid state", NewInvalidStateError("closed"), KindInvalidState, http.StatusUnprocessableEntity},
		{"storage", NewStorageError(), KindStorageFailure, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestIsKindUnwraps(t *testing.T) {
	err := fmt.Errorf("submit order: %w", NewInvalidStateError("closed"))

	assert.True(t, IsKind(err, KindInvalidState))
	assert.False(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(errors.New("plain"), KindInvalidState))
	assert.False(t, IsKind(nil, KindInvalidState))
}

func TestGetAppError(t *testing.T) {
	appErr := NewNotFoundError("Table")
	assert.Equal(t, appErr, GetAppError(fmt.Errorf("wrapped: %w", appErr)))

	fallback := GetAppError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, fallback.Code)
	assert.Equal(t, KindStorageFailure, fallback.Kind)
}
