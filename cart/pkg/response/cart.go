package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/Alturino/storefront/internal/money"
)

type Cart struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TotalPrice int64      `json:"total_price"`
	CartItems  []CartItem `json:"cart_items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uuid.UUID `json:"id"`
	CartID    uuid.UUID `json:"cart_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c CartItem) LineTotal() (int64, error) {
	return money.LineTotal(c.UnitPrice, c.Quantity)
}
