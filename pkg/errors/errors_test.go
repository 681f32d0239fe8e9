package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{NewValidationError("name is required"), http.StatusBadRequest},
		{NewNotFoundError("wishlist"), http.StatusNotFound},
		{NewUnauthorizedError(""), http.StatusUnauthorized},
		{NewForbiddenError(""), http.StatusForbidden},
		{NewTimeoutError("store query"), http.StatusGatewayTimeout},
		{NewStoreError("store query", assert.AnError), http.StatusInternalServerError},
		{NewInternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.status, tc.err.HTTPStatus, tc.err.Error())
	}
}

func TestIsNotFoundThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading parent: %w", NewNotFoundError("wishlist"))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsForbidden(err))
}

func TestStoreErrorKeepsCause(t *testing.T) {
	err := NewStoreError("store put", assert.AnError)
	assert.ErrorIs(t, err, assert.AnError)

	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeStore, appErr.Type)
}

func TestGetAppErrorNilForPlainErrors(t *testing.T) {
	assert.Nil(t, GetAppError(assert.AnError))
	assert.False(t, IsNotFound(assert.AnError))
}
