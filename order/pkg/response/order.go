package response

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	Amount        int64          `json:"amount"`
	OrderNote     string         `json:"order_note"`
	OrderItems    []OrderItem    `json:"order_items"`
	BillingDetail *BillingDetail `json:"billing_detail,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BillingDetail struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type Address struct {
	ID      uuid.UUID `json:"id"`
	Address string    `json:"address"`
	PinCode string    `json:"pin_code"`
	City    string    `json:"city"`
	State   string    `json:"state"`
	Country string    `json:"country"`
	Type    string    `json:"type"`
}
