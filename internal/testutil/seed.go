package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/internal/repository"
)

func SeedUser(t *testing.T, c context.Context, queries *repository.Queries, role repository.UserRole) repository.User {
	t.Helper()
	id := uuid.NewString()
	user, err := queries.InsertUser(c, repository.InsertUserParams{
		Username: fmt.Sprintf("user-%s", id[:8]),
		Email:    fmt.Sprintf("%s@storefront.test", id),
		Password: "not-a-real-hash",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("failed seeding user with error: %s", err)
	}
	return user
}

// SeedVendor returns the vendor's user and its vendor row.
func SeedVendor(t *testing.T, c context.Context, queries *repository.Queries) (repository.User, repository.Vendor) {
	t.Helper()
	user := SeedUser(t, c, queries, repository.UserRoleVendor)
	vendor, err := queries.InsertVendor(c, repository.InsertVendorParams{
		UserID:   user.ID,
		ShopName: fmt.Sprintf("shop of %s", user.Username),
	})
	if err != nil {
		t.Fatalf("failed seeding vendor with error: %s", err)
	}
	return user, vendor
}

func SeedProduct(
	t *testing.T,
	c context.Context,
	queries *repository.Queries,
	vendorId uuid.UUID,
	name string,
	price int64,
	sizes []string,
	colors []string,
) repository.Product {
	t.Helper()
	if sizes == nil {
		sizes = []string{}
	}
	if colors == nil {
		colors = []string{}
	}
	product, err := queries.InsertProduct(c, repository.InsertProductParams{
		VendorID:    vendorId,
		Name:        name,
		Category:    "Costume",
		Subcategory: "Party",
		Price:       repository.NumericFromDecimal(decimal.NewFromInt(price)),
		Sizes:       sizes,
		Colors:      colors,
		Description: name,
	})
	if err != nil {
		t.Fatalf("failed seeding product with error: %s", err)
	}
	return product
}
