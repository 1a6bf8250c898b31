package request

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

type Register struct {
	Username string `validate:"required,max=150"                json:"username"`
	Email    string `validate:"required,email,max=254"          json:"email"`
	Password string `validate:"required,min=8"                  json:"password"`
	Role     string `validate:"required,oneof=customer vendor"  json:"role"`
	ShopName string `validate:"required_if=Role vendor,max=100" json:"shop_name"`
	Address  string `validate:"required"                        json:"address"`
	City     string `validate:"required,max=50"                 json:"city"`
	State    string `validate:"required,max=50"                 json:"state"`
	Country  string `validate:"required,max=50"                 json:"country"`
	PinCode  string `validate:"required,max=10,digits"          json:"pin_code"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).Str("username", r.Username).Str("role", r.Role)
}

func (r Register) MarshalJSON() ([]byte, error) {
	r.Password = "***"
	type R Register
	return json.Marshal(R(r))
}
