package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal/config"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/testutil"
	"github.com/Alturino/storefront/internal/token"
	"github.com/Alturino/storefront/user/pkg/request"
)

const secretKey = "test-secret-key"

func newRegister(email, role string) request.Register {
	register := request.Register{
		Username: "jane",
		Email:    email,
		Password: "correct-horse",
		Role:     role,
		Address:  "12 Market Street",
		City:     "Springfield",
		State:    "Oregon",
		Country:  "USA",
		PinCode:  "97477",
	}
	if role == token.RoleVendor {
		register.ShopName = "Capes and Hats"
	}
	return register
}

func TestUserService(t *testing.T) {
	c := testutil.Context(t)
	pool := testutil.NewPostgres(t, c, "../../../migrations")
	queries := repository.New(pool)
	svc := NewUserService(pool, queries, config.Application{SecretKey: secretKey})
	now := time.Now()
	svc.now = func() time.Time { return now }

	t.Run("register customer creates a default address", func(t *testing.T) {
		user, err := svc.Register(c, newRegister("customer@storefront.test", token.RoleCustomer))
		require.NoError(t, err)
		assert.Equal(t, token.RoleCustomer, user.Role)

		var addresses int
		require.NoError(t, pool.QueryRow(c,
			"SELECT count(*) FROM addresses WHERE user_id = $1 AND type = 'default'", user.ID,
		).Scan(&addresses))
		assert.Equal(t, 1, addresses)

		_, err = queries.FindVendorByUserId(c, user.ID)
		assert.Error(t, err)
	})

	t.Run("register vendor creates a vendor profile", func(t *testing.T) {
		user, err := svc.Register(c, newRegister("vendor@storefront.test", token.RoleVendor))
		require.NoError(t, err)

		vendor, err := queries.FindVendorByUserId(c, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Capes and Hats", vendor.ShopName)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := svc.Register(c, newRegister("twice@storefront.test", token.RoleCustomer))
		require.NoError(t, err)
		_, err = svc.Register(c, newRegister("twice@storefront.test", token.RoleCustomer))
		assert.True(t, inErrors.IsConflict(err))
	})

	t.Run("invalid registrations are rejected", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*request.Register)
			field  string
		}{
			{name: "short password", mutate: func(r *request.Register) { r.Password = "short" }, field: "password"},
			{name: "bad email", mutate: func(r *request.Register) { r.Email = "nope" }, field: "email"},
			{name: "admin role", mutate: func(r *request.Register) { r.Role = token.RoleAdmin }, field: "role"},
			{name: "vendor without shop", mutate: func(r *request.Register) { r.Role = token.RoleVendor }, field: "shop_name"},
			{name: "letters in pin code", mutate: func(r *request.Register) { r.PinCode = "97A77" }, field: "pin_code"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				register := newRegister(uuid.NewString()+"@storefront.test", token.RoleCustomer)
				tt.mutate(&register)
				_, err := svc.Register(c, register)
				var validationErr *inErrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Contains(t, validationErr.Fields, tt.field)
			})
		}
	})

	t.Run("login issues a token carrying the role", func(t *testing.T) {
		user, err := svc.Register(c, newRegister("login@storefront.test", token.RoleVendor))
		require.NoError(t, err)

		login, err := svc.Login(c, request.Login{Email: "login@storefront.test", Password: "correct-horse"})
		require.NoError(t, err)
		require.NotEmpty(t, login.Token)

		claims, err := token.VerifyToken(c, secretKey, login.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.Subject)
		assert.Equal(t, token.RoleVendor, claims.Role)
		assert.WithinDuration(t, now.Add(30*time.Minute), claims.ExpiresAt.Time, time.Second)
	})

	t.Run("login rejects bad credentials", func(t *testing.T) {
		_, err := svc.Register(c, newRegister("wrong@storefront.test", token.RoleCustomer))
		require.NoError(t, err)

		_, err = svc.Login(c, request.Login{Email: "wrong@storefront.test", Password: "incorrect-horse"})
		assert.True(t, errors.Is(err, inErrors.ErrInvalidCredentials))

		_, err = svc.Login(c, request.Login{Email: "missing@storefront.test", Password: "correct-horse"})
		assert.True(t, errors.Is(err, inErrors.ErrInvalidCredentials))
	})

	t.Run("find user by id", func(t *testing.T) {
		user, err := svc.Register(c, newRegister("find@storefront.test", token.RoleCustomer))
		require.NoError(t, err)

		found, err := svc.FindUserById(c, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "find@storefront.test", found.Email)

		_, err = svc.FindUserById(c, uuid.New())
		assert.True(t, inErrors.IsNotFound(err))
	})
}
