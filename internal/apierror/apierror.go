package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ErrorCode string

const (
	ErrNotFound          ErrorCode = "NOT_FOUND"
	ErrConflict          ErrorCode = "CONFLICT"
	ErrAccountInactive   ErrorCode = "ACCOUNT_INACTIVE"
	ErrCurrencyMismatch  ErrorCode = "CURRENCY_MISMATCH"
	ErrInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrBadRequest        ErrorCode = "BAD_REQUEST"
	ErrInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrTransientStorage  ErrorCode = "TRANSIENT_STORAGE"
	ErrInternalServer    ErrorCode = "INTERNAL_SERVER_ERROR"
)

type APIError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code ErrorCode, message string, details interface{}) APIError {
	logrus.Error(details)
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// IsRetryable reports whether err may be retried. Only transient storage
// failures qualify; business-rule failures are terminal.
func IsRetryable(err error) bool {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == ErrTransientStorage
	}
	return false
}

func MapErrorToHTTPStatus(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case ErrNotFound:
			return http.StatusNotFound
		case ErrConflict:
			return http.StatusConflict
		case ErrAccountInactive, ErrCurrencyMismatch, ErrInsufficientFunds:
			return http.StatusBadRequest
		case ErrBadRequest, ErrInvalidInput:
			return http.StatusBadRequest
		case ErrTransientStorage, ErrInternalServer:
			return http.StatusInternalServerError
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
