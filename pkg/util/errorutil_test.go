package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation passes through", NewValidationError("bad page", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"wrapped domain error", fmt.Errorf("listing: %w", NewValidationError("bad size", nil)), "VALIDATION_FAILED", http.StatusBadRequest},
		{"data integrity", NewDataIntegrityError(errors.New("key X")), "DATA_INTEGRITY", http.StatusInternalServerError},
		{"plain error", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"unrecognized sentinel", errors.New("no rows in result set"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
		})
	}
	assert.Nil(t, ToDomainError(nil))
}

func TestDataIntegrityErrorKeepsCause(t *testing.T) {
	cause := errors.New("ticket key has no numeric component")
	err := NewDataIntegrityError(cause)
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, ToDomainError(err).Message, "numeric")
}
