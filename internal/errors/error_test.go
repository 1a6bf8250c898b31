package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"phone": "must be digits", "email": "is required"}}
	assert.Equal(t, "validation failed: email: is required, phone: must be digits", err.Error())
}

func TestErrorsSurviveWrapping(t *testing.T) {
	testCases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "validation", err: NewValidationError("quantity", "must be at least 1"), check: IsValidation},
		{name: "not found", err: NewNotFoundError("product", "1"), check: IsNotFound},
		{name: "conflict", err: NewConflictError("total mismatch"), check: IsConflict},
		{name: "dependency", err: NewDependencyError("database", errors.New("boom")), check: IsDependency},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("failed operation with error=%w", tt.err)
			assert.True(t, tt.check(wrapped))
		})
	}
}

func TestDependencyErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("failed inserting order with error=%w", NewDependencyError("database", cause))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsNotFound(err))
}
