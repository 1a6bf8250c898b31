package request

import (
	"github.com/google/uuid"
)

type InsertWishlistItem struct {
	ProductId uuid.UUID `validate:"required" json:"product_id"`
}
