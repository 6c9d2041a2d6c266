package errors

import (
	"errors"
)

func HTTPStatusCode(err error) int {
	if err == nil {
		return StatusInternalServerError
	}

	switch GetErrorType(err) {
	case ErrorTypeInvalidRequest, ErrorTypeUnsupportedMedia, ErrorTypePayloadTooLarge:
		// Upload size and type failures are reported as 400.
		return StatusBadRequest
	case ErrorTypeUnauthorized:
		return StatusUnauthorized
	case ErrorTypeForbidden:
		return StatusForbidden
	case ErrorTypeNotFound:
		return StatusNotFound
	case ErrorTypeRateLimitExceeded:
		return StatusTooManyRequests
	case ErrorTypeRequestTimeout:
		return StatusRequestTimeout
	case ErrorTypeMethodNotAllowed:
		return StatusMethodNotAllowed
	case ErrorTypeRemoteService:
		return StatusInternalServerError
	case ErrorTypeConfiguration, ErrorTypeInternalServerError:
		return StatusInternalServerError
	default:
		return StatusInternalServerError
	}
}

func GetHumanReadableMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	// SECURITY: avoid leaking internal error strings (client libraries, stack messages, etc.)
	return "An unexpected error occurred"
}

// MessageWithDetail appends the wrapped error text to the user-facing message
// when includeDetail is set. Production callers pass false.
func MessageWithDetail(err error, includeDetail bool) string {
	msg := GetHumanReadableMessage(err)
	if !includeDetail {
		return msg
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Detail() != "" {
		return msg + " (" + appErr.Detail() + ")"
	}

	return msg
}
