package request

import (
	"github.com/google/uuid"
)

type InsertProduct struct {
	Name        string   `validate:"required,max=255"        json:"name"`
	Category    string   `validate:"required,max=100"        json:"category"`
	Subcategory string   `validate:"required,max=100"        json:"subcategory"`
	Price       string   `validate:"required,price"          json:"price"`
	Sizes       []string `validate:"omitempty,dive,size"     json:"sizes"`
	Colors      []string `validate:"omitempty,dive,color"    json:"colors"`
	Description string   `                                   json:"description"`
}

type FindProducts struct {
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	VendorID    uuid.UUID `json:"vendor_id"`
	Limit       int32     `json:"limit"       validate:"gte=0,lte=100"`
	Offset      int32     `json:"offset"      validate:"gte=0"`
}
