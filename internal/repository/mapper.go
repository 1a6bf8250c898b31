package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	cartResponse "github.com/Alturino/storefront/cart/pkg/response"
	orderResponse "github.com/Alturino/storefront/order/pkg/response"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
	userResponse "github.com/Alturino/storefront/user/pkg/response"
	wishlistResponse "github.com/Alturino/storefront/wishlist/pkg/response"
)

func NumericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func (p Product) Response() productResponse.Product {
	price := decimal.Zero
	if p.Price.Valid {
		price = decimal.NewFromBigInt(p.Price.Int, p.Price.Exp)
	}
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	colors := p.Colors
	if colors == nil {
		colors = []string{}
	}
	return productResponse.Product{
		ID:          p.ID,
		VendorID:    p.VendorID,
		Name:        p.Name,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Price:       price.IntPart(),
		Sizes:       sizes,
		Colors:      colors,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}

func (c CartItem) Response() cartResponse.CartItem {
	return cartResponse.CartItem{
		ID:        c.ID,
		CartID:    c.CartID,
		ProductID: c.ProductID,
		Quantity:  c.Quantity,
		UnitPrice: c.UnitPrice,
		Size:      c.Size,
		Color:     c.Color,
		CreatedAt: c.CreatedAt.Time,
		UpdatedAt: c.UpdatedAt.Time,
	}
}

func (c Cart) Response(items []CartItem) cartResponse.Cart {
	cartItems := make([]cartResponse.CartItem, len(items))
	for i, item := range items {
		cartItems[i] = item.Response()
	}
	return cartResponse.Cart{
		ID:         c.ID,
		UserID:     c.UserID,
		TotalPrice: c.TotalPrice,
		CartItems:  cartItems,
		CreatedAt:  c.CreatedAt.Time,
		UpdatedAt:  c.UpdatedAt.Time,
	}
}

func (w WishlistItem) Response() wishlistResponse.WishlistItem {
	return wishlistResponse.WishlistItem{
		ID:         w.ID,
		WishlistID: w.WishlistID,
		ProductID:  w.ProductID,
		UnitPrice:  w.UnitPrice,
		CreatedAt:  w.CreatedAt.Time,
	}
}

func (w Wishlist) Response(items []WishlistItem) wishlistResponse.Wishlist {
	wishlistItems := make([]wishlistResponse.WishlistItem, len(items))
	for i, item := range items {
		wishlistItems[i] = item.Response()
	}
	return wishlistResponse.Wishlist{
		ID:            w.ID,
		UserID:        w.UserID,
		TotalPrice:    w.TotalPrice,
		WishlistItems: wishlistItems,
		CreatedAt:     w.CreatedAt.Time,
		UpdatedAt:     w.UpdatedAt.Time,
	}
}

func (o OrderItem) Response() orderResponse.OrderItem {
	return orderResponse.OrderItem{
		ID:        o.ID,
		OrderID:   o.OrderID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		UnitPrice: o.UnitPrice,
		Size:      o.Size,
		Color:     o.Color,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt.Time,
		UpdatedAt: o.UpdatedAt.Time,
	}
}

func (o Order) Response(items []OrderItem) orderResponse.Order {
	orderItems := make([]orderResponse.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = item.Response()
	}
	return orderResponse.Order{
		ID:         o.ID,
		UserID:     o.UserID,
		Amount:     o.Amount,
		OrderNote:  o.OrderNote,
		OrderItems: orderItems,
		CreatedAt:  o.CreatedAt.Time,
		UpdatedAt:  o.UpdatedAt.Time,
	}
}

func (b BillingDetail) Response(address Address) *orderResponse.BillingDetail {
	return &orderResponse.BillingDetail{
		ID:      b.ID,
		OrderID: b.OrderID,
		Name:    b.Name,
		Phone:   b.Phone,
		Email:   b.Email,
		Address: orderResponse.Address{
			ID:      address.ID,
			Address: address.Address,
			PinCode: address.PinCode,
			City:    address.City,
			State:   address.State,
			Country: address.Country,
			Type:    string(address.Type),
		},
		CreatedAt: b.CreatedAt.Time,
	}
}

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Time,
		UpdatedAt: u.UpdatedAt.Time,
	}
}
