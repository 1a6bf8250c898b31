package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/config"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/testutil"
	"github.com/Alturino/storefront/product/pkg/catalog"
)

func sumLineTotals(t *testing.T, cart response.Cart) int64 {
	t.Helper()
	var total int64
	for _, item := range cart.CartItems {
		line, err := item.LineTotal()
		require.NoError(t, err)
		total += line
	}
	return total
}

func assertTotalInvariant(t *testing.T, cart response.Cart) {
	t.Helper()
	assert.Equal(t, sumLineTotals(t, cart), cart.TotalPrice)
	assert.GreaterOrEqual(t, cart.TotalPrice, int64(0))
}

func TestCartService(t *testing.T) {
	c := testutil.Context(t)
	pool := testutil.NewPostgres(t, c, "../../../migrations")
	queries := repository.New(pool)
	reader := catalog.NewReader(queries, nil, 0)

	_, vendor := testutil.SeedVendor(t, c, queries)
	productA := testutil.SeedProduct(t, c, queries, vendor.ID, "Superhero Cape", 500, nil, nil)
	productB := testutil.SeedProduct(t, c, queries, vendor.ID, "Pirate Hat", 300, nil, nil)
	sized := testutil.SeedProduct(t, c, queries, vendor.ID, "Wizard Robe", 700, []string{"M", "L"}, []string{"Purple"})
	const crownPrice int64 = 9_999_999_999
	priciest := testutil.SeedProduct(t, c, queries, vendor.ID, "Crown Jewels", crownPrice, nil, nil)

	svc := NewCartService(pool, queries, reader, config.Cart{})

	newCustomer := func(t *testing.T) uuid.UUID {
		return testutil.SeedUser(t, c, queries, repository.UserRoleCustomer).ID
	}

	t.Run("total follows add adjust and remove", func(t *testing.T) {
		userId := newCustomer(t)

		cart, err := svc.InsertCartItem(c, userId, request.InsertCartItem{
			ProductId: productA.ID, Size: "M", Color: "Red", Quantity: 2,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1000, cart.TotalPrice)
		assertTotalInvariant(t, cart)

		cart, err = svc.InsertCartItem(c, userId, request.InsertCartItem{
			ProductId: productB.ID, Size: "L", Color: "Blue", Quantity: 1,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1300, cart.TotalPrice)
		require.Len(t, cart.CartItems, 2)
		assertTotalInvariant(t, cart)

		itemA := cart.CartItems[0]
		cart, err = svc.AdjustCartItemQuantity(c, userId, itemA.ID, request.AdjustCartItemQuantity{
			Direction: request.DirectionIncrease,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1800, cart.TotalPrice)
		assertTotalInvariant(t, cart)

		cart, err = svc.AdjustCartItemQuantity(c, userId, itemA.ID, request.AdjustCartItemQuantity{
			Direction: request.DirectionDecrease,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1300, cart.TotalPrice)
		assertTotalInvariant(t, cart)

		cart, err = svc.RemoveCartItem(c, userId, itemA.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 300, cart.TotalPrice)
		assert.Len(t, cart.CartItems, 1)
		assertTotalInvariant(t, cart)

		found, err := svc.FindCartByUserId(c, userId)
		require.NoError(t, err)
		assert.Equal(t, cart.TotalPrice, found.TotalPrice)
		assertTotalInvariant(t, found)
	})

	t.Run("add then remove restores the cart", func(t *testing.T) {
		userId := newCustomer(t)
		before, err := svc.InsertCartItem(c, userId, request.InsertCartItem{
			ProductId: productB.ID, Size: "S", Color: "Black", Quantity: 1,
		})
		require.NoError(t, err)

		after, err := svc.InsertCartItem(c, userId, request.InsertCartItem{
			ProductId: productA.ID, Size: "XL", Color: "Gold", Quantity: 3,
		})
		require.NoError(t, err)
		require.Len(t, after.CartItems, 2)

		var added uuid.UUID
		for _, item := range after.CartItems {
			if item.ProductID == productA.ID {
				added = item.ID
			}
		}
		restored, err := svc.RemoveCartItem(c, userId, added)
		require.NoError(t, err)
		assert.Equal(t, before.TotalPrice, restored.TotalPrice)
		require.Len(t, restored.CartItems, 1)
		assert.Equal(t, before.CartItems[0].ID, restored.CartItems[0].ID)
	})

	t.Run("decrease at quantity one removes the item", func(t *testing.T) {
		userId := newCustomer(t)
		cart, err := svc.InsertCartItem(c, userId, request.InsertCartItem{
			ProductId: productB.ID, Size: "M", Color: "Green", Quantity: 1,
		})
		require.NoError(t, err)
		require.Len(t, cart.CartItems, 1)

		cart, err = svc.AdjustCartItemQuantity(c, userId, cart.CartItems[0].ID, request.AdjustCartItemQuantity{
			Direction: request.DirectionDecrease,
		})
		require.NoError(t, err)
		assert.Empty(t, cart.CartItems)
		assert.EqualValues(t, 0, cart.TotalPrice)
	})

	t.Run("adding an existing variant adds one unit by default", func(t *testing.T) {
		userId := newCustomer(t)
		item := request.InsertCartItem{ProductId: productA.ID, Size: "M", Color: "Red", Quantity: 2}
		_, err := svc.InsertCartItem(c, userId, item)
		require.NoError(t, err)

		item.Quantity = 5
		cart, err := svc.InsertCartItem(c, userId, item)
		require.NoError(t, err)
		require.Len(t, cart.CartItems, 1)
		assert.EqualValues(t, 3, cart.CartItems[0].Quantity)
		assert.EqualValues(t, 1500, cart.TotalPrice)
		assertTotalInvariant(t, cart)
	})

	t.Run("adding an existing variant merges the requested quantity when enabled", func(t *testing.T) {
		merging := NewCartService(pool, queries, reader, config.Cart{MergeRequestedQuantity: true})
		userId := newCustomer(t)
		item := request.InsertCartItem{ProductId: productA.ID, Size: "M", Color: "Red", Quantity: 2}
		_, err := merging.InsertCartItem(c, userId, item)
		require.NoError(t, err)

		item.Quantity = 5
		cart, err := merging.InsertCartItem(c, userId, item)
		require.NoError(t, err)
		require.Len(t, cart.CartItems, 1)
		assert.EqualValues(t, 7, cart.CartItems[0].Quantity)
		assert.EqualValues(t, 3500, cart.TotalPrice)
		assertTotalInvariant(t, cart)
	})

	t.Run("different variants are separate items", func(t *testing.T) {
		userId := newCustomer(t)
		_, err := svc.InsertCartItem(c, userId, request.InsertCartItem{
			ProductId: productA.ID, Size: "M", Color: "Red", Quantity: 1,
		})
		require.NoError(t, err)
		cart, err := svc.InsertCartItem(c, userId, request.InsertCartItem{
			ProductId: productA.ID, Size: "L", Color: "Red", Quantity: 1,
		})
		require.NoError(t, err)
		assert.Len(t, cart.CartItems, 2)
		assert.EqualValues(t, 1000, cart.TotalPrice)
	})

	t.Run("invalid requests leave no cart behind", func(t *testing.T) {
		userId := newCustomer(t)
		cases := []struct {
			name  string
			param request.InsertCartItem
			check func(error) bool
		}{
			{"zero quantity", request.InsertCartItem{ProductId: productA.ID, Size: "M", Color: "Red"}, inErrors.IsValidation},
			{"quantity above the cap", request.InsertCartItem{ProductId: productA.ID, Size: "M", Color: "Red", Quantity: request.MaxQuantity + 1}, inErrors.IsValidation},
			{"max int32 quantity", request.InsertCartItem{ProductId: productA.ID, Size: "M", Color: "Red", Quantity: math.MaxInt32}, inErrors.IsValidation},
			{"unknown size", request.InsertCartItem{ProductId: productA.ID, Size: "XXXL", Color: "Red", Quantity: 1}, inErrors.IsValidation},
			{"unknown color", request.InsertCartItem{ProductId: productA.ID, Size: "M", Color: "Plaid", Quantity: 1}, inErrors.IsValidation},
			{"missing size", request.InsertCartItem{ProductId: productA.ID, Color: "Red", Quantity: 1}, inErrors.IsValidation},
			{"size not offered", request.InsertCartItem{ProductId: sized.ID, Size: "S", Color: "Purple", Quantity: 1}, inErrors.IsValidation},
			{"color not offered", request.InsertCartItem{ProductId: sized.ID, Size: "M", Color: "Red", Quantity: 1}, inErrors.IsValidation},
			{"unknown product", request.InsertCartItem{ProductId: uuid.New(), Size: "M", Color: "Red", Quantity: 1}, inErrors.IsNotFound},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.InsertCartItem(c, userId, tc.param)
				require.Error(t, err)
				assert.True(t, tc.check(err), err.Error())
			})
		}

		cart, err := svc.FindCartByUserId(c, userId)
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, cart.ID)
		assert.EqualValues(t, 0, cart.TotalPrice)
		assert.Empty(t, cart.CartItems)
	})

	t.Run("items in another user's cart are not found", func(t *testing.T) {
		owner := newCustomer(t)
		cart, err := svc.InsertCartItem(c, owner, request.InsertCartItem{
			ProductId: productA.ID, Size: "M", Color: "Red", Quantity: 1,
		})
		require.NoError(t, err)

		intruder := newCustomer(t)
		_, err = svc.RemoveCartItem(c, intruder, cart.CartItems[0].ID)
		assert.True(t, inErrors.IsNotFound(err))
		_, err = svc.AdjustCartItemQuantity(c, intruder, cart.CartItems[0].ID, request.AdjustCartItemQuantity{
			Direction: request.DirectionIncrease,
		})
		assert.True(t, inErrors.IsNotFound(err))

		unchanged, err := svc.FindCartByUserId(c, owner)
		require.NoError(t, err)
		assert.EqualValues(t, 500, unchanged.TotalPrice)
	})

	t.Run("unknown direction is rejected", func(t *testing.T) {
		userId := newCustomer(t)
		cart, err := svc.InsertCartItem(c, userId, request.InsertCartItem{
			ProductId: productA.ID, Size: "M", Color: "Red", Quantity: 1,
		})
		require.NoError(t, err)
		_, err = svc.AdjustCartItemQuantity(c, userId, cart.CartItems[0].ID, request.AdjustCartItemQuantity{
			Direction: "sideways",
		})
		assert.True(t, inErrors.IsValidation(err))
	})

	t.Run("quantity never passes the per line cap", func(t *testing.T) {
		merging := NewCartService(pool, queries, reader, config.Cart{MergeRequestedQuantity: true})
		increase := func(svc *CartService) func(uuid.UUID, response.CartItem) (response.Cart, error) {
			return func(userId uuid.UUID, item response.CartItem) (response.Cart, error) {
				return svc.AdjustCartItemQuantity(c, userId, item.ID, request.AdjustCartItemQuantity{
					Direction: request.DirectionIncrease,
				})
			}
		}
		add := func(svc *CartService, quantity int32) func(uuid.UUID, response.CartItem) (response.Cart, error) {
			return func(userId uuid.UUID, _ response.CartItem) (response.Cart, error) {
				return svc.InsertCartItem(c, userId, request.InsertCartItem{
					ProductId: priciest.ID, Size: "M", Color: "Gold", Quantity: quantity,
				})
			}
		}

		cases := []struct {
			name     string
			initial  int32
			next     func(uuid.UUID, response.CartItem) (response.Cart, error)
			expected int32
			rejected bool
		}{
			{name: "increase below the cap", initial: request.MaxQuantity - 1, next: increase(svc), expected: request.MaxQuantity},
			{name: "increase at the cap", initial: request.MaxQuantity, next: increase(svc), rejected: true},
			{name: "add one unit at the cap", initial: request.MaxQuantity, next: add(svc, 1), rejected: true},
			{name: "merge up to the cap", initial: 600, next: add(merging, 400), expected: request.MaxQuantity},
			{name: "merge past the cap", initial: 600, next: add(merging, 401), rejected: true},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				userId := newCustomer(t)
				before, err := svc.InsertCartItem(c, userId, request.InsertCartItem{
					ProductId: priciest.ID, Size: "M", Color: "Gold", Quantity: tc.initial,
				})
				require.NoError(t, err)
				require.Len(t, before.CartItems, 1)
				assert.Equal(t, crownPrice*int64(tc.initial), before.TotalPrice)

				cart, err := tc.next(userId, before.CartItems[0])
				if !tc.rejected {
					require.NoError(t, err)
					require.Len(t, cart.CartItems, 1)
					assert.Equal(t, tc.expected, cart.CartItems[0].Quantity)
					assert.Equal(t, crownPrice*int64(tc.expected), cart.TotalPrice)
					assertTotalInvariant(t, cart)
					return
				}

				require.Error(t, err)
				assert.True(t, inErrors.IsValidation(err), err.Error())
				found, err := svc.FindCartByUserId(c, userId)
				require.NoError(t, err)
				require.Len(t, found.CartItems, 1)
				assert.Equal(t, tc.initial, found.CartItems[0].Quantity)
				assert.Equal(t, before.TotalPrice, found.TotalPrice)
				assertTotalInvariant(t, found)
			})
		}
	})

	t.Run("products referenced by a cart cannot be deleted", func(t *testing.T) {
		userId := newCustomer(t)
		doomed := testutil.SeedProduct(t, c, queries, vendor.ID, "Ghost Sheet", 400, nil, nil)
		before, err := svc.InsertCartItem(c, userId, request.InsertCartItem{
			ProductId: doomed.ID, Size: "M", Color: "White", Quantity: 3,
		})
		require.NoError(t, err)

		_, err = pool.Exec(c, "DELETE FROM products WHERE id = $1", doomed.ID)
		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "23503", pgErr.Code)

		found, err := svc.FindCartByUserId(c, userId)
		require.NoError(t, err)
		assert.Equal(t, before.TotalPrice, found.TotalPrice)
		assert.Equal(t, before.CartItems, found.CartItems)
		assertTotalInvariant(t, found)
	})

	t.Run("concurrent increase and decrease serialize", func(t *testing.T) {
		userId := newCustomer(t)
		cart, err := svc.InsertCartItem(c, userId, request.InsertCartItem{
			ProductId: productA.ID, Size: "M", Color: "Red", Quantity: 10,
		})
		require.NoError(t, err)
		itemId := cart.CartItems[0].ID

		g, gc := errgroup.WithContext(c)
		for i := 0; i < 10; i++ {
			direction := request.DirectionIncrease
			if i%2 == 1 {
				direction = request.DirectionDecrease
			}
			g.Go(func() error {
				_, err := svc.AdjustCartItemQuantity(gc, userId, itemId, request.AdjustCartItemQuantity{
					Direction: direction,
				})
				return err
			})
		}
		require.NoError(t, g.Wait())

		found, err := svc.FindCartByUserId(c, userId)
		require.NoError(t, err)
		require.Len(t, found.CartItems, 1)
		assert.EqualValues(t, 10, found.CartItems[0].Quantity)
		assert.EqualValues(t, 5000, found.TotalPrice)
		assertTotalInvariant(t, found)
	})

	t.Run("concurrent first adds create a single cart", func(t *testing.T) {
		userId := newCustomer(t)
		g, gc := errgroup.WithContext(context.WithoutCancel(c))
		for i := 0; i < 5; i++ {
			g.Go(func() error {
				_, err := svc.InsertCartItem(gc, userId, request.InsertCartItem{
					ProductId: productB.ID, Size: "S", Color: "White", Quantity: 1,
				})
				return err
			})
		}
		require.NoError(t, g.Wait())

		found, err := svc.FindCartByUserId(c, userId)
		require.NoError(t, err)
		require.Len(t, found.CartItems, 1)
		assert.EqualValues(t, 5, found.CartItems[0].Quantity)
		assert.EqualValues(t, 1500, found.TotalPrice)
	})
}
