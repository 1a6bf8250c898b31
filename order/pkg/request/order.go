package request

import (
	"github.com/rs/zerolog"
)

type BillingDetails struct {
	Name      string `validate:"required,max=100"        json:"name"`
	Address   string `validate:"required"                json:"address"`
	City      string `validate:"required,max=50"         json:"city"`
	State     string `validate:"required,max=50"         json:"state"`
	Country   string `validate:"required,max=50"         json:"country"`
	PinCode   string `validate:"required,max=10,digits"  json:"pin_code"`
	Phone     string `validate:"required,max=10,digits"  json:"phone"`
	Email     string `validate:"required,email,max=254"  json:"email"`
	OrderNote string `validate:"max=1000"                json:"order_note"`
}

func (b BillingDetails) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", b.Name).
		Str("city", b.City).
		Str("state", b.State).
		Str("country", b.Country).
		Str("phone", "***").
		Str("email", "***")
}

type UpdateOrderItemStatus struct {
	Status string `validate:"required,oneof=placed processing shipped completed" json:"status"`
}
