package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/testutil"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/wishlist/pkg/request"
	"github.com/Alturino/storefront/wishlist/pkg/response"
)

func assertTotalInvariant(t *testing.T, wishlist response.Wishlist) {
	t.Helper()
	var total int64
	for _, item := range wishlist.WishlistItems {
		total += item.UnitPrice
	}
	assert.Equal(t, total, wishlist.TotalPrice)
}

func TestWishlistService(t *testing.T) {
	c := testutil.Context(t)
	pool := testutil.NewPostgres(t, c, "../../../migrations")
	queries := repository.New(pool)
	svc := NewWishlistService(pool, queries, catalog.NewReader(queries, nil, 0))

	_, vendor := testutil.SeedVendor(t, c, queries)
	productC := testutil.SeedProduct(t, c, queries, vendor.ID, "Fairy Wings", 200, nil, nil)
	productD := testutil.SeedProduct(t, c, queries, vendor.ID, "Clown Nose", 50, nil, nil)

	newCustomer := func(t *testing.T) uuid.UUID {
		return testutil.SeedUser(t, c, queries, repository.UserRoleCustomer).ID
	}

	t.Run("adding the same product twice keeps one item", func(t *testing.T) {
		userId := newCustomer(t)

		wishlist, err := svc.InsertWishlistItem(c, userId, request.InsertWishlistItem{ProductId: productC.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 200, wishlist.TotalPrice)
		assert.Len(t, wishlist.WishlistItems, 1)

		wishlist, err = svc.InsertWishlistItem(c, userId, request.InsertWishlistItem{ProductId: productC.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 200, wishlist.TotalPrice)
		assert.Len(t, wishlist.WishlistItems, 1)
		assertTotalInvariant(t, wishlist)
	})

	t.Run("add then remove restores the wishlist", func(t *testing.T) {
		userId := newCustomer(t)
		before, err := svc.InsertWishlistItem(c, userId, request.InsertWishlistItem{ProductId: productC.ID})
		require.NoError(t, err)

		after, err := svc.InsertWishlistItem(c, userId, request.InsertWishlistItem{ProductId: productD.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 250, after.TotalPrice)
		assertTotalInvariant(t, after)

		restored, err := svc.RemoveWishlistItem(c, userId, productD.ID)
		require.NoError(t, err)
		assert.Equal(t, before.TotalPrice, restored.TotalPrice)
		require.Len(t, restored.WishlistItems, 1)
		assert.Equal(t, productC.ID, restored.WishlistItems[0].ProductID)
		assertTotalInvariant(t, restored)
	})

	t.Run("removing a product that is not wishlisted is not found", func(t *testing.T) {
		userId := newCustomer(t)
		_, err := svc.RemoveWishlistItem(c, userId, productC.ID)
		assert.True(t, inErrors.IsNotFound(err))

		_, err = svc.InsertWishlistItem(c, userId, request.InsertWishlistItem{ProductId: productC.ID})
		require.NoError(t, err)
		_, err = svc.RemoveWishlistItem(c, userId, productD.ID)
		assert.True(t, inErrors.IsNotFound(err))
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		userId := newCustomer(t)
		_, err := svc.InsertWishlistItem(c, userId, request.InsertWishlistItem{ProductId: uuid.New()})
		assert.True(t, inErrors.IsNotFound(err))

		wishlist, err := svc.FindWishlistByUserId(c, userId)
		require.NoError(t, err)
		assert.EqualValues(t, 0, wishlist.TotalPrice)
		assert.Empty(t, wishlist.WishlistItems)
	})

	t.Run("products referenced by a wishlist cannot be deleted", func(t *testing.T) {
		userId := newCustomer(t)
		doomed := testutil.SeedProduct(t, c, queries, vendor.ID, "Ghost Sheet", 400, nil, nil)
		before, err := svc.InsertWishlistItem(c, userId, request.InsertWishlistItem{ProductId: doomed.ID})
		require.NoError(t, err)

		_, err = pool.Exec(c, "DELETE FROM products WHERE id = $1", doomed.ID)
		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "23503", pgErr.Code)

		found, err := svc.FindWishlistByUserId(c, userId)
		require.NoError(t, err)
		assert.Equal(t, before.TotalPrice, found.TotalPrice)
		assert.Len(t, found.WishlistItems, 1)
		assertTotalInvariant(t, found)
	})

	t.Run("concurrent adds of one product count once", func(t *testing.T) {
		userId := newCustomer(t)
		g, gc := errgroup.WithContext(c)
		for i := 0; i < 5; i++ {
			g.Go(func() error {
				_, err := svc.InsertWishlistItem(gc, userId, request.InsertWishlistItem{ProductId: productD.ID})
				return err
			})
		}
		require.NoError(t, g.Wait())

		wishlist, err := svc.FindWishlistByUserId(c, userId)
		require.NoError(t, err)
		assert.Len(t, wishlist.WishlistItems, 1)
		assert.EqualValues(t, 50, wishlist.TotalPrice)
	})
}

// Runs in its own container because it alters the wishlist_items table.
func TestWishlistServiceDatabaseFailures(t *testing.T) {
	c := testutil.Context(t)
	pool := testutil.NewPostgres(t, c, "../../../migrations")
	queries := repository.New(pool)
	svc := NewWishlistService(pool, queries, catalog.NewReader(queries, nil, 0))

	_, vendor := testutil.SeedVendor(t, c, queries)
	product := testutil.SeedProduct(t, c, queries, vendor.ID, "Fairy Wings", 200, nil, nil)
	userId := testutil.SeedUser(t, c, queries, repository.UserRoleCustomer).ID

	_, err := pool.Exec(c, "ALTER TABLE wishlist_items ADD CONSTRAINT reject_all CHECK (false) NOT VALID")
	require.NoError(t, err)

	cases := []struct {
		name string
		call func() error
	}{
		{
			name: "insert",
			call: func() error {
				_, err := svc.InsertWishlistItem(c, userId, request.InsertWishlistItem{ProductId: product.ID})
				return err
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)

			var dependencyErr *inErrors.DependencyError
			require.ErrorAs(t, err, &dependencyErr)
			assert.Equal(t, "database", dependencyErr.Dependency)
		})
	}

	wishlist, err := svc.FindWishlistByUserId(c, userId)
	require.NoError(t, err)
	assert.Empty(t, wishlist.WishlistItems)
	assert.EqualValues(t, 0, wishlist.TotalPrice)
}
