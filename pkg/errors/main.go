package errors

import (
	"errors"
	"fmt"
)

const (
	StatusOK                  = 200
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusRequestTimeout      = 408
	StatusRequestTooLarge     = 413
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
)

// Error types form a closed set. Callers switch on GetErrorType instead of
// inspecting status codes from third-party clients.
const (
	ErrorTypeInvalidRequest      = "INVALID_REQUEST"
	ErrorTypeConfiguration       = "CONFIGURATION_ERROR"
	ErrorTypeUnauthorized        = "UNAUTHORIZED"
	ErrorTypeForbidden           = "FORBIDDEN"
	ErrorTypeNotFound            = "NOT_FOUND"
	ErrorTypeRemoteService       = "REMOTE_SERVICE_ERROR"
	ErrorTypePayloadTooLarge     = "PAYLOAD_TOO_LARGE"
	ErrorTypeUnsupportedMedia    = "UNSUPPORTED_MEDIA"
	ErrorTypeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorTypeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	ErrorTypeRequestTimeout      = "REQUEST_TIMEOUT"
	ErrorTypeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrorTypeUnknown             = "UNKNOWN_ERROR"
)

type AppError struct {
	Type    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Detail returns the wrapped error text, or "" when nothing is wrapped.
func (e *AppError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func NewAppError(errType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

func NewInvalidRequestError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInvalidRequest, message, err)
}

func NewConfigurationError(message string, err error) *AppError {
	return NewAppError(ErrorTypeConfiguration, message, err)
}

func NewUnauthorizedError(message string, err error) *AppError {
	return NewAppError(ErrorTypeUnauthorized, message, err)
}

func NewForbiddenError(message string, err error) *AppError {
	return NewAppError(ErrorTypeForbidden, message, err)
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, err)
}

func NewRemoteServiceError(message string, err error) *AppError {
	return NewAppError(ErrorTypeRemoteService, message, err)
}

func NewPayloadTooLargeError(message string, err error) *AppError {
	return NewAppError(ErrorTypePayloadTooLarge, message, err)
}

func NewUnsupportedMediaError(message string, err error) *AppError {
	return NewAppError(ErrorTypeUnsupportedMedia, message, err)
}

func NewInternalServerError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInternalServerError, message, err)
}

func GetErrorType(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}

	return ErrorTypeUnknown
}

func IsType(err error, errType string) bool {
	return err != nil && GetErrorType(err) == errType
}
