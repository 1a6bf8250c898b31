package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/testutil"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/product/pkg/request"
)

func TestProductService(t *testing.T) {
	c := testutil.Context(t)
	pool := testutil.NewPostgres(t, c, "../../../migrations")
	cache := testutil.NewRedis(t, c)
	queries := repository.New(pool)
	svc := NewProductService(pool, queries, cache, time.Minute)

	vendorUser, vendor := testutil.SeedVendor(t, c, queries)

	t.Run("insert product and read it back through the cache", func(t *testing.T) {
		product, err := svc.InsertProduct(c, vendorUser.ID, request.InsertProduct{
			Name:        "Superhero Cape",
			Category:    "Costume",
			Subcategory: "Party",
			Price:       "300",
			Sizes:       []string{"M", "L"},
			Colors:      []string{"Red"},
		})
		require.NoError(t, err)
		assert.Equal(t, vendor.ID, product.VendorID)
		assert.EqualValues(t, 300, product.Price)
		assert.Equal(t, []string{"M", "L"}, product.Sizes)

		cached, err := cache.Get(c, catalog.CacheKey(product.ID)).Result()
		require.NoError(t, err)
		assert.Contains(t, cached, product.ID.String())

		found, err := svc.FindProductById(c, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
		assert.Equal(t, product.Price, found.Price)
	})

	t.Run("find product missing from cache fills the cache", func(t *testing.T) {
		seeded := testutil.SeedProduct(t, c, queries, vendor.ID, "Pirate Hat", 120, nil, nil)
		key := catalog.CacheKey(seeded.ID)
		require.NoError(t, cache.Del(c, key).Err())

		found, err := svc.FindProductById(c, seeded.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 120, found.Price)
		assert.Empty(t, found.Sizes)

		cached, err := cache.Get(c, key).Result()
		require.NoError(t, err)
		assert.True(t, json.Valid([]byte(cached)))
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		_, err := svc.FindProductById(c, uuid.New())
		assert.True(t, inErrors.IsNotFound(err))
	})

	t.Run("customer cannot list products", func(t *testing.T) {
		customer := testutil.SeedUser(t, c, queries, repository.UserRoleCustomer)
		_, err := svc.InsertProduct(c, customer.ID, request.InsertProduct{
			Name:        "Wizard Robe",
			Category:    "Costume",
			Subcategory: "Party",
			Price:       "500",
		})
		assert.True(t, inErrors.IsNotFound(err))
	})

	t.Run("fractional price is rejected", func(t *testing.T) {
		_, err := svc.InsertProduct(c, vendorUser.ID, request.InsertProduct{
			Name:        "Wizard Robe",
			Category:    "Costume",
			Subcategory: "Party",
			Price:       "10.5",
		})
		assert.True(t, inErrors.IsValidation(err))
	})

	t.Run("filter products by vendor and category", func(t *testing.T) {
		_, otherVendor := testutil.SeedVendor(t, c, queries)
		testutil.SeedProduct(t, c, queries, otherVendor.ID, "Ninja Mask", 80, nil, nil)

		products, err := svc.FindProducts(c, request.FindProducts{VendorID: otherVendor.ID})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Ninja Mask", products[0].Name)

		products, err = svc.FindProducts(c, request.FindProducts{Category: "Costume", Limit: 2})
		require.NoError(t, err)
		assert.Len(t, products, 2)

		products, err = svc.FindProducts(c, request.FindProducts{Category: "Kitchen"})
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}
