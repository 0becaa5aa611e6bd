package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "message only",
			err:      &Error{Code: EINVALID, Message: "invalid input"},
			expected: "invalid input",
		},
		{
			name:     "with operation",
			err:      &Error{Code: EINVALID, Op: "order.create", Message: "invalid input"},
			expected: "order.create: invalid input",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "order.create",
				Message: "failed to save",
				Err:     errors.New("database connection failed"),
			},
			expected: "order.create: failed to save: database connection failed",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to save",
				Err:     errors.New("database connection failed"),
			},
			expected: "failed to save: database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"domain error", NotFound("order.get", "order", "INV-1"), ENOTFOUND},
		{"wrapped domain error", fmt.Errorf("handler: %w", Conflict("order.pay", "settled")), ECONFLICT},
		{"validation error", NewValidationError("order.create", "lines[0].quantity", "must be at least 1"), EINVALID},
		{"plain error", errors.New("boom"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestErrorMessage_HidesInternalDetails(t *testing.T) {
	err := Internal(errors.New("dial tcp 10.0.0.5:5432"), "order.create", "insert failed")

	assert.Equal(t, "An internal error occurred. Please try again later.", ErrorMessage(err))
	assert.Equal(t, "order.create", ErrorOp(err))
	assert.Equal(t, "order not found: INV-9", ErrorMessage(NotFound("order.get", "order", "INV-9")))
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, EINTERNAL, "op", "msg"))

	cause := errors.New("underlying")
	err := WrapError(cause, EINTERNAL, "menu.update", "failed to save")
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsCode(err, EINTERNAL))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("order.create", "lines[0].quantity", "must be at least 1")
	assert.Equal(t, "order.create: lines[0].quantity: must be at least 1", err.Error())

	err = AddFieldError(err, "lines[1].rate", "must not be negative")
	assert.Equal(t, "order.create: validation failed for 2 fields", err.Error())
	assert.True(t, IsValidationError(err))

	fields := GetValidationFields(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "must not be negative", fields["lines[1].rate"])

	assert.Nil(t, GetValidationFields(errors.New("other")))
	assert.False(t, IsValidationError(Invalid("op", "x")))
}

func TestAddFieldError_FromNonValidation(t *testing.T) {
	err := AddFieldError(errors.New("unrelated"), "table", "required")
	assert.Equal(t, map[string]string{"table": "required"}, GetValidationFields(err))
}

func TestPersistence(t *testing.T) {
	assert.Nil(t, Persistence(nil, "order.create"))

	cause := errors.New("serialization failure")
	err := Persistence(cause, "order.create")

	assert.True(t, IsPersistence(err))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, EINTERNAL, ErrorCode(err))
	assert.False(t, IsPersistence(Internal(cause, "x", "y")))
}

func TestConvenienceFunctions(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{NotFound("op", "order", "1"), ENOTFOUND},
		{Unauthorized("op", "token expired"), EUNAUTHORIZED},
		{Forbidden("op", "nope"), EFORBIDDEN},
		{Invalid("op", "bad"), EINVALID},
		{Conflict("op", "dup"), ECONFLICT},
		{Internal(nil, "op", "oops"), EINTERNAL},
		{Errorf(ERATELIMIT, "op", "slow down %d", 1), ERATELIMIT},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, ErrorCode(tt.err))
		})
	}
}
