package response

import (
	"time"

	"github.com/google/uuid"
)

type Wishlist struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	TotalPrice    int64          `json:"total_price"`
	WishlistItems []WishlistItem `json:"wishlist_items"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type WishlistItem struct {
	ID         uuid.UUID `json:"id"`
	WishlistID uuid.UUID `json:"wishlist_id"`
	ProductID  uuid.UUID `json:"product_id"`
	UnitPrice  int64     `json:"unit_price"`
	CreatedAt  time.Time `json:"created_at"`
}
