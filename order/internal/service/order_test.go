package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/event"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/testutil"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.OrderPlaced
	err    error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, e event.OrderPlaced) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type cartLine struct {
	product  repository.Product
	price    int64
	quantity int32
	size     string
	color    string
}

func seedCart(t *testing.T, c context.Context, queries *repository.Queries, userId uuid.UUID, lines ...cartLine) repository.Cart {
	t.Helper()
	cart, err := queries.UpsertCartByUserId(c, userId)
	require.NoError(t, err)
	for _, line := range lines {
		_, err = queries.InsertCartItem(c, repository.InsertCartItemParams{
			CartID:    cart.ID,
			ProductID: line.product.ID,
			Quantity:  line.quantity,
			UnitPrice: line.price,
			Size:      line.size,
			Color:     line.color,
		})
		require.NoError(t, err)
		cart, err = queries.AddCartTotalPrice(c, repository.AddCartTotalPriceParams{
			Delta: line.price * int64(line.quantity),
			ID:    cart.ID,
		})
		require.NoError(t, err)
	}
	return cart
}

func validBilling() request.BillingDetails {
	return request.BillingDetails{
		Name:      "Jane Doe",
		Address:   "12 Market Street",
		City:      "Springfield",
		State:     "Oregon",
		Country:   "USA",
		PinCode:   "97477",
		Phone:     "5550100",
		Email:     "jane@storefront.test",
		OrderNote: "leave at the door",
	}
}

func countRows(t *testing.T, c context.Context, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()
	var count int
	require.NoError(t, pool.QueryRow(c, query, args...).Scan(&count))
	return count
}

func TestPlaceOrder(t *testing.T) {
	c := testutil.Context(t)
	pool := testutil.NewPostgres(t, c, "../../../migrations")
	queries := repository.New(pool)
	publisher := &recordingPublisher{}
	svc := NewOrderService(pool, queries, publisher)

	_, vendor := testutil.SeedVendor(t, c, queries)
	productA := testutil.SeedProduct(t, c, queries, vendor.ID, "Superhero Cape", 500, nil, nil)
	productB := testutil.SeedProduct(t, c, queries, vendor.ID, "Pirate Hat", 300, nil, nil)

	t.Run("checkout converts the cart into an order", func(t *testing.T) {
		user := testutil.SeedUser(t, c, queries, repository.UserRoleCustomer)
		cart := seedCart(t, c, queries, user.ID,
			cartLine{productA, 500, 2, "M", "Red"},
			cartLine{productB, 300, 1, "L", "Blue"},
		)
		require.EqualValues(t, 1300, cart.TotalPrice)

		order, err := svc.PlaceOrder(c, user.ID, validBilling())
		require.NoError(t, err)
		assert.EqualValues(t, 1300, order.Amount)
		assert.Equal(t, "leave at the door", order.OrderNote)
		require.Len(t, order.OrderItems, 2)
		for _, item := range order.OrderItems {
			assert.Equal(t, string(repository.OrderItemStatusPlaced), item.Status)
		}
		require.NotNil(t, order.BillingDetail)
		assert.Equal(t, "Jane Doe", order.BillingDetail.Name)
		assert.Equal(t, string(repository.AddressTypeBilling), order.BillingDetail.Address.Type)

		_, err = queries.FindCartByUserId(c, user.ID)
		assert.Error(t, err)
		assert.Zero(t, countRows(t, c, pool, "SELECT count(*) FROM cart_items WHERE cart_id = $1", cart.ID))
		assert.Equal(t, 1, countRows(t, c, pool, "SELECT count(*) FROM billing_details WHERE order_id = $1", order.ID))

		found, err := svc.FindOrderById(c, user.ID, order.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1300, found.Amount)
		assert.Len(t, found.OrderItems, 2)
		require.NotNil(t, found.BillingDetail)
		assert.Equal(t, order.BillingDetail.Address.ID, found.BillingDetail.Address.ID)

		publisher.mu.Lock()
		defer publisher.mu.Unlock()
		require.NotEmpty(t, publisher.events)
		last := publisher.events[len(publisher.events)-1]
		assert.Equal(t, order.ID, last.OrderID)
		assert.Len(t, last.Items, 2)
	})

	t.Run("second checkout reuses the billing address", func(t *testing.T) {
		user := testutil.SeedUser(t, c, queries, repository.UserRoleCustomer)
		seedCart(t, c, queries, user.ID, cartLine{productB, 300, 1, "S", "Black"})
		first, err := svc.PlaceOrder(c, user.ID, validBilling())
		require.NoError(t, err)

		seedCart(t, c, queries, user.ID, cartLine{productA, 500, 1, "S", "Black"})
		second, err := svc.PlaceOrder(c, user.ID, validBilling())
		require.NoError(t, err)

		assert.Equal(t, first.BillingDetail.Address.ID, second.BillingDetail.Address.ID)
		orders, err := svc.FindOrders(c, user.ID)
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("checkout without a cart is rejected", func(t *testing.T) {
		user := testutil.SeedUser(t, c, queries, repository.UserRoleCustomer)
		_, err := svc.PlaceOrder(c, user.ID, validBilling())
		var validationErr *inErrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "cart is empty", validationErr.Fields["cart"])

		seedCart(t, c, queries, user.ID)
		_, err = svc.PlaceOrder(c, user.ID, validBilling())
		assert.True(t, inErrors.IsValidation(err))
	})

	t.Run("invalid billing details change nothing", func(t *testing.T) {
		user := testutil.SeedUser(t, c, queries, repository.UserRoleCustomer)
		seedCart(t, c, queries, user.ID, cartLine{productA, 500, 1, "M", "Red"})

		billing := validBilling()
		billing.Email = "not-an-email"
		billing.Phone = "phone"
		billing.Name = ""
		_, err := svc.PlaceOrder(c, user.ID, billing)
		var validationErr *inErrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "email")
		assert.Contains(t, validationErr.Fields, "phone")
		assert.Contains(t, validationErr.Fields, "name")

		cart, err := queries.FindCartByUserId(c, user.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 500, cart.TotalPrice)
		assert.Zero(t, countRows(t, c, pool, "SELECT count(*) FROM orders WHERE user_id = $1", user.ID))
	})

	t.Run("drifted cart total is a conflict", func(t *testing.T) {
		user := testutil.SeedUser(t, c, queries, repository.UserRoleCustomer)
		cart := seedCart(t, c, queries, user.ID, cartLine{productA, 500, 1, "M", "Red"})
		_, err := pool.Exec(c, "UPDATE carts SET total_price = 900 WHERE id = $1", cart.ID)
		require.NoError(t, err)

		_, err = svc.PlaceOrder(c, user.ID, validBilling())
		assert.True(t, inErrors.IsConflict(err))
		assert.Zero(t, countRows(t, c, pool, "SELECT count(*) FROM orders WHERE user_id = $1", user.ID))
	})

	t.Run("publish failure does not fail checkout", func(t *testing.T) {
		failing := NewOrderService(pool, queries, &recordingPublisher{err: errors.New("broker down")})
		user := testutil.SeedUser(t, c, queries, repository.UserRoleCustomer)
		seedCart(t, c, queries, user.ID, cartLine{productB, 300, 2, "M", "Red"})

		order, err := failing.PlaceOrder(c, user.ID, validBilling())
		require.NoError(t, err)
		assert.EqualValues(t, 600, order.Amount)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		user := testutil.SeedUser(t, c, queries, repository.UserRoleCustomer)
		_, err := svc.FindOrderById(c, user.ID, uuid.New())
		assert.True(t, inErrors.IsNotFound(err))
	})
}

// Runs in its own container because it alters the billing_details table.
func TestPlaceOrderRollsBackOnBillingFailure(t *testing.T) {
	c := testutil.Context(t)
	pool := testutil.NewPostgres(t, c, "../../../migrations")
	queries := repository.New(pool)
	publisher := &recordingPublisher{}
	svc := NewOrderService(pool, queries, publisher)

	_, vendor := testutil.SeedVendor(t, c, queries)
	productA := testutil.SeedProduct(t, c, queries, vendor.ID, "Superhero Cape", 500, nil, nil)
	productB := testutil.SeedProduct(t, c, queries, vendor.ID, "Pirate Hat", 300, nil, nil)

	user := testutil.SeedUser(t, c, queries, repository.UserRoleCustomer)
	cart := seedCart(t, c, queries, user.ID,
		cartLine{productA, 500, 2, "M", "Red"},
		cartLine{productB, 300, 1, "L", "Blue"},
	)

	_, err := pool.Exec(c, "ALTER TABLE billing_details ADD CONSTRAINT reject_all CHECK (false) NOT VALID")
	require.NoError(t, err)

	_, err = svc.PlaceOrder(c, user.ID, validBilling())
	require.Error(t, err)
	assert.True(t, inErrors.IsDependency(err))

	survived, err := queries.FindCartByUserId(c, user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, survived.ID)
	assert.EqualValues(t, 1300, survived.TotalPrice)
	assert.Equal(t, 2, countRows(t, c, pool, "SELECT count(*) FROM cart_items WHERE cart_id = $1", cart.ID))
	assert.Zero(t, countRows(t, c, pool, "SELECT count(*) FROM orders WHERE user_id = $1", user.ID))
	assert.Zero(t, countRows(t, c, pool, "SELECT count(*) FROM order_items"))
	assert.Zero(t, countRows(t, c, pool, "SELECT count(*) FROM addresses WHERE user_id = $1", user.ID))
	assert.Empty(t, publisher.events)
}

func TestUpdateOrderItemStatus(t *testing.T) {
	c := testutil.Context(t)
	pool := testutil.NewPostgres(t, c, "../../../migrations")
	queries := repository.New(pool)
	svc := NewOrderService(pool, queries, nil)

	vendorUser, vendor := testutil.SeedVendor(t, c, queries)
	otherVendorUser, _ := testutil.SeedVendor(t, c, queries)
	product := testutil.SeedProduct(t, c, queries, vendor.ID, "Superhero Cape", 500, nil, nil)

	placeItem := func(t *testing.T) uuid.UUID {
		t.Helper()
		user := testutil.SeedUser(t, c, queries, repository.UserRoleCustomer)
		seedCart(t, c, queries, user.ID, cartLine{product, 500, 1, "M", "Red"})
		order, err := svc.PlaceOrder(c, user.ID, validBilling())
		require.NoError(t, err)
		require.Len(t, order.OrderItems, 1)
		return order.OrderItems[0].ID
	}

	tests := []struct {
		name     string
		path     []string
		next     string
		expected string
		check    func(error) bool
	}{
		{name: "placed to processing", next: "processing", expected: "processing"},
		{name: "placed to completed skips ahead", next: "completed", expected: "completed"},
		{name: "processing to shipped", path: []string{"processing"}, next: "shipped", expected: "shipped"},
		{name: "same status is a no-op", path: []string{"processing"}, next: "processing", expected: "processing"},
		{name: "shipped back to placed is rejected", path: []string{"shipped"}, next: "placed", check: inErrors.IsValidation},
		{name: "completed back to processing is rejected", path: []string{"completed"}, next: "processing", check: inErrors.IsValidation},
		{name: "unknown status is rejected", next: "lost", check: inErrors.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			itemId := placeItem(t)
			for _, status := range tt.path {
				_, err := svc.UpdateOrderItemStatus(c, vendorUser.ID, itemId, request.UpdateOrderItemStatus{Status: status})
				require.NoError(t, err)
			}

			item, err := svc.UpdateOrderItemStatus(c, vendorUser.ID, itemId, request.UpdateOrderItemStatus{Status: tt.next})
			if tt.check != nil {
				require.Error(t, err)
				assert.True(t, tt.check(err), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, item.Status)
		})
	}

	t.Run("other vendors cannot update the item", func(t *testing.T) {
		itemId := placeItem(t)
		_, err := svc.UpdateOrderItemStatus(c, otherVendorUser.ID, itemId, request.UpdateOrderItemStatus{Status: "processing"})
		assert.True(t, inErrors.IsNotFound(err))
	})

	t.Run("completed items leave the pending list", func(t *testing.T) {
		itemId := placeItem(t)
		pending, err := svc.FindPendingOrderItems(c, vendorUser.ID)
		require.NoError(t, err)
		assert.True(t, containsItem(pending, itemId))

		_, err = svc.UpdateOrderItemStatus(c, vendorUser.ID, itemId, request.UpdateOrderItemStatus{Status: "completed"})
		require.NoError(t, err)

		pending, err = svc.FindPendingOrderItems(c, vendorUser.ID)
		require.NoError(t, err)
		assert.False(t, containsItem(pending, itemId))

		others, err := svc.FindPendingOrderItems(c, otherVendorUser.ID)
		require.NoError(t, err)
		assert.Empty(t, others)
	})
}

func containsItem(items []response.OrderItem, id uuid.UUID) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
