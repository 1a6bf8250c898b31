package token

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

const secret = "super-secret"

func TestNewTokenVerifyToken(t *testing.T) {
	c := context.Background()
	userId := uuid.New()

	signed, err := NewToken(c, secret, userId, RoleVendor, time.Now())
	require.NoError(t, err)

	claims, err := VerifyToken(c, secret, signed)
	require.NoError(t, err)
	assert.Equal(t, userId.String(), claims.Subject)
	assert.Equal(t, RoleVendor, claims.Role)

	c = AttachClaims(c, claims)
	got, err := UserIdFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, userId, got)
}

func TestVerifyTokenRejects(t *testing.T) {
	c := context.Background()
	userId := uuid.New()

	testCases := []struct {
		name  string
		token func() string
	}{
		{
			name: "wrong secret",
			token: func() string {
				signed, _ := NewToken(c, "other-secret", userId, RoleCustomer, time.Now())
				return signed
			},
		},
		{
			name: "expired",
			token: func() string {
				signed, _ := NewToken(c, secret, userId, RoleCustomer, time.Now().Add(-time.Hour))
				return signed
			},
		},
		{
			name:  "garbage",
			token: func() string { return "not-a-jwt" },
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyToken(c, secret, tt.token())
			assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)
		})
	}
}

func TestUserIdFromContextWithoutClaims(t *testing.T) {
	_, err := UserIdFromContext(context.Background())
	assert.ErrorIs(t, err, inErrors.ErrEmptyAuth)
}
