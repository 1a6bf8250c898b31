package response

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"id"`
	VendorID    uuid.UUID `json:"vendor_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Price       int64     `json:"price"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OffersSize reports whether size can be ordered. A product without declared sizes accepts any.
func (p Product) OffersSize(size string) bool {
	return len(p.Sizes) == 0 || slices.Contains(p.Sizes, size)
}

func (p Product) OffersColor(color string) bool {
	return len(p.Colors) == 0 || slices.Contains(p.Colors, color)
}
