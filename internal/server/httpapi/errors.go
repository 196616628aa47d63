package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/nutriscan/internal/common"
)

// APIError is the body of every error response, wrapped as {"error": ...}.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e *APIError) WithMessage(message string) *APIError {
	return &APIError{Code: e.Code, Message: message, StatusCode: e.StatusCode}
}

var (
	ErrBadRequest = &APIError{
		Code:       "validation_error",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	ErrUnauthorized = &APIError{
		Code:       "unauthorized",
		Message:    "Authentication failed",
		StatusCode: http.StatusUnauthorized,
	}

	ErrForbidden = &APIError{
		Code:       "forbidden",
		Message:    "Session token does not belong to this user",
		StatusCode: http.StatusForbidden,
	}

	ErrNotFound = &APIError{
		Code:       "not_found",
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}

	ErrConflict = &APIError{
		Code:       "conflict",
		Message:    "Resource already exists",
		StatusCode: http.StatusConflict,
	}

	ErrRateLimited = &APIError{
		Code:       "rate_limited",
		Message:    "Too many requests. Please try again later.",
		StatusCode: http.StatusTooManyRequests,
	}

	ErrUpstream = &APIError{
		Code:       "upstream_error",
		Message:    "Asset store unavailable",
		StatusCode: http.StatusBadGateway,
	}

	ErrServiceUnavailable = &APIError{
		Code:       "service_unavailable",
		Message:    "Service temporarily unavailable",
		StatusCode: http.StatusServiceUnavailable,
	}

	ErrInternal = &APIError{
		Code:       "internal_error",
		Message:    "An internal error occurred",
		StatusCode: http.StatusInternalServerError,
	}
)

// AsAPIError maps service errors to API errors. Client-facing errors keep the
// service's message; storage and unknown failures get a generic one.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, common.ErrorValidation):
		return ErrBadRequest.WithMessage(detail(err, common.ErrorValidation))
	case errors.Is(err, common.ErrorAlreadyExists):
		return ErrConflict.WithMessage(detail(err, common.ErrorAlreadyExists))
	case errors.Is(err, common.ErrorNotFound):
		return ErrNotFound.WithMessage(detail(err, common.ErrorNotFound))
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorInvalidToken):
		return ErrUnauthorized.WithMessage(detail(err, common.ErrorUnauthorized))
	case errors.Is(err, common.ErrorUpstream):
		return ErrUpstream
	default:
		return ErrInternal
	}
}

// detail strips the sentinel prefix added by fmt.Errorf("%w: ...").
func detail(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}
