package request

import (
	"github.com/google/uuid"
)

const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// MaxQuantity caps a single cart line. Keep it in sync with the lte rule below and the
// cart_items check constraint.
const MaxQuantity = 1000

type InsertCartItem struct {
	ProductId uuid.UUID `validate:"required"             json:"product_id"`
	Size      string    `validate:"required,size"        json:"size"`
	Color     string    `validate:"required,color"       json:"color"`
	Quantity  int32     `validate:"gte=1,lte=1000"       json:"quantity"`
}

type AdjustCartItemQuantity struct {
	Direction string `validate:"required,oneof=increase decrease" json:"direction"`
}
