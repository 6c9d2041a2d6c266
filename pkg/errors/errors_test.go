package errors

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"invalid request":  {NewInvalidRequestError("bad", nil), StatusBadRequest},
		"too large upload": {NewPayloadTooLargeError("big", nil), StatusBadRequest},
		"wrong media":      {NewUnsupportedMediaError("nope", nil), StatusBadRequest},
		"configuration":    {NewConfigurationError("missing", nil), StatusInternalServerError},
		"unauthorized":     {NewUnauthorizedError("auth", nil), StatusUnauthorized},
		"forbidden":        {NewForbiddenError("perm", nil), StatusForbidden},
		"not found":        {NewNotFoundError("gone", nil), StatusNotFound},
		"remote":           {NewRemoteServiceError("down", nil), StatusInternalServerError},
		"wrapped":          {fmt.Errorf("outer: %w", NewForbiddenError("perm", nil)), StatusForbidden},
		"plain error":      {fmt.Errorf("boom"), StatusInternalServerError},
		"nil":              {nil, StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatusCode(tc.err))
		})
	}
}

func TestGetHumanReadableMessage_DoesNotLeakPlainErrors(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetHumanReadableMessage(fmt.Errorf("pq: password authentication failed")))
	assert.Equal(t, "spreadsheet down", GetHumanReadableMessage(NewRemoteServiceError("spreadsheet down", fmt.Errorf("dial tcp: timeout"))))
}

func TestMessageWithDetail(t *testing.T) {
	err := NewRemoteServiceError("Failed to add to waitlist", fmt.Errorf("quota exceeded"))

	assert.Equal(t, "Failed to add to waitlist", MessageWithDetail(err, false))
	assert.Equal(t, "Failed to add to waitlist (quota exceeded)", MessageWithDetail(err, true))
	assert.Equal(t, "no detail", MessageWithDetail(NewRemoteServiceError("no detail", nil), true))
}

func TestFormatValidationErrors_UsesJSONFieldNames(t *testing.T) {
	type request struct {
		Email string `json:"email" validate:"required,contains=@"`
	}

	err := validator.New().Struct(&request{Email: "not-an-email"})

	got := FormatValidationErrors(err, &request{})

	if assert.Len(t, got, 1) {
		assert.Equal(t, "email", got[0].Field)
		assert.Equal(t, `Value must contain "@"`, got[0].Message)
	}
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("append: %w", NewUnauthorizedError("bad key", nil))

	assert.True(t, IsType(err, ErrorTypeUnauthorized))
	assert.False(t, IsType(err, ErrorTypeForbidden))
	assert.False(t, IsType(nil, ErrorTypeUnauthorized))
}
