package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductResponsePrice(t *testing.T) {
	p := Product{
		ID:    uuid.New(),
		Price: NumericFromDecimal(decimal.RequireFromString("1500")),
	}
	got := p.Response()
	assert.Equal(t, int64(1500), got.Price)
	assert.NotNil(t, got.Sizes)
	assert.NotNil(t, got.Colors)
}

func TestCartResponse(t *testing.T) {
	cartId := uuid.New()
	cart := Cart{ID: cartId, TotalPrice: 1300}
	items := []CartItem{
		{ID: uuid.New(), CartID: cartId, Quantity: 2, UnitPrice: 500},
		{ID: uuid.New(), CartID: cartId, Quantity: 1, UnitPrice: 300},
	}

	got := cart.Response(items)
	assert.Len(t, got.CartItems, 2)

	var sum int64
	for _, item := range got.CartItems {
		line, err := item.LineTotal()
		require.NoError(t, err)
		sum += line
	}
	assert.Equal(t, got.TotalPrice, sum)
}
