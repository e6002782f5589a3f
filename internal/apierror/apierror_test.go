/*
Copyright 2025 Zeta Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package apierror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zetafinance/zeta/internal/apierror"
)

func TestNewAPIError(t *testing.T) {
	details := "Some internal error details"
	apiErr := apierror.NewAPIError(apierror.ErrInternalServer, "Something went wrong", details)

	assert.Equal(t, apierror.ErrInternalServer, apiErr.Code)
	assert.Equal(t, "Something went wrong", apiErr.Message)
	assert.Equal(t, details, apiErr.Details)
	assert.Equal(t, "INTERNAL_SERVER_ERROR: Something went wrong", apiErr.Error())
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "NotFound Error",
			err:      apierror.NewAPIError(apierror.ErrNotFound, "Account not found", nil),
			expected: http.StatusNotFound,
		},
		{
			name:     "Conflict Error",
			err:      apierror.NewAPIError(apierror.ErrConflict, "Account with this account number already exists", nil),
			expected: http.StatusConflict,
		},
		{
			name:     "Inactive Account Error",
			err:      apierror.NewAPIError(apierror.ErrAccountInactive, "Account is inactive", nil),
			expected: http.StatusBadRequest,
		},
		{
			name:     "Currency Mismatch Error",
			err:      apierror.NewAPIError(apierror.ErrCurrencyMismatch, "Currency mismatch", nil),
			expected: http.StatusBadRequest,
		},
		{
			name:     "Insufficient Funds Error",
			err:      apierror.NewAPIError(apierror.ErrInsufficientFunds, "Insufficient funds", nil),
			expected: http.StatusBadRequest,
		},
		{
			name:     "InvalidInput Error",
			err:      apierror.NewAPIError(apierror.ErrInvalidInput, "Invalid input", nil),
			expected: http.StatusBadRequest,
		},
		{
			name:     "Transient Storage Error",
			err:      apierror.NewAPIError(apierror.ErrTransientStorage, "Failed to process transaction due to database error", nil),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "InternalServerError",
			err:      apierror.NewAPIError(apierror.ErrInternalServer, "Internal server error", nil),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Unknown Error",
			err:      errors.New("Unknown error"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statusCode := apierror.MapErrorToHTTPStatus(tt.err)
			assert.Equal(t, tt.expected, statusCode)
		})
	}
}

func TestIsRetryable(t *testing.T) {
	transient := apierror.NewAPIError(apierror.ErrTransientStorage, "connection reset", nil)
	assert.True(t, apierror.IsRetryable(transient))

	wrapped := fmt.Errorf("posting transaction: %w", transient)
	assert.True(t, apierror.IsRetryable(wrapped))

	assert.False(t, apierror.IsRetryable(apierror.NewAPIError(apierror.ErrInsufficientFunds, "Insufficient funds", nil)))
	assert.False(t, apierror.IsRetryable(apierror.NewAPIError(apierror.ErrNotFound, "Account not found", nil)))
	assert.False(t, apierror.IsRetryable(errors.New("plain error")))
	assert.False(t, apierror.IsRetryable(nil))
}
