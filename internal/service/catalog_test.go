package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaishnavicode/rentagora/internal/models"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestCreateProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	vendor := env.createUser(t, "vendor@example.com", "vendor", "")

	product, err := env.Catalog.CreateProduct(ctx, vendor, ProductParams{
		Name:         "Projector",
		Description:  "4K projector",
		Qty:          intPtr(2),
		CategoryName: "Electronics",
	})
	require.NoError(t, err)
	assert.True(t, product.Active)
	assert.Equal(t, vendor.ID, product.CreatedByID)

	var category models.Category
	require.NoError(t, env.DB.Where("name = ?", "Electronics").First(&category).Error)
	assert.Equal(t, category.ID, product.CategoryID)

	_, err = env.Catalog.CreateProduct(ctx, vendor, ProductParams{})
	assert.ErrorIs(t, err, ErrValidation, "name is required")
}

func TestUpdateProduct_OwnerOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	vendor := env.createUser(t, "vendor@example.com", "vendor", "")
	intruder := env.createUser(t, "intruder@example.com", "vendor", "")
	product := env.createProduct(t, vendor)

	_, err := env.Catalog.UpdateProduct(ctx, intruder, product.ID, ProductParams{Name: "Hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := env.Catalog.UpdateProduct(ctx, vendor, product.ID, ProductParams{
		Name:   "Camera Mk II",
		Qty:    intPtr(5),
		Active: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Camera Mk II", updated.Name)
	assert.Equal(t, 5, updated.Qty)
	assert.False(t, updated.Active)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	vendor := env.createUser(t, "vendor@example.com", "vendor", "")
	intruder := env.createUser(t, "intruder@example.com", "vendor", "")
	product := env.createProduct(t, vendor)

	assert.ErrorIs(t, env.Catalog.DeleteProduct(ctx, intruder, product.ID), ErrForbidden)

	require.NoError(t, env.Catalog.DeleteProduct(ctx, vendor, product.ID))
	_, err := env.Catalog.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLike(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	vendor := env.createUser(t, "vendor@example.com", "vendor", "")
	customer := env.createUser(t, "customer@example.com", "customer", "")
	other := env.createUser(t, "other@example.com", "customer", "")
	product := env.createProduct(t, vendor)

	liked, likes, err := env.Catalog.ToggleLike(ctx, customer, product.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, likes)

	liked, likes, err = env.Catalog.ToggleLike(ctx, other, product.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 2, likes)

	// toggling off decrements, never double-counts
	liked, likes, err = env.Catalog.ToggleLike(ctx, customer, product.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 1, likes)

	_, _, err = env.Catalog.ToggleLike(ctx, customer, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleWishlist(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	vendor := env.createUser(t, "vendor@example.com", "vendor", "")
	customer := env.createUser(t, "customer@example.com", "customer", "")
	product := env.createProduct(t, vendor)

	added, err := env.Catalog.ToggleWishlist(ctx, customer, product.ID)
	require.NoError(t, err)
	assert.True(t, added)

	items, meta, err := env.Catalog.Wishlist(ctx, customer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ID)
	assert.EqualValues(t, 1, meta.Total)

	added, err = env.Catalog.ToggleWishlist(ctx, customer, product.ID)
	require.NoError(t, err)
	assert.False(t, added)

	items, _, err = env.Catalog.Wishlist(ctx, customer.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreatePrice(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	vendor := env.createUser(t, "vendor@example.com", "vendor", "")
	intruder := env.createUser(t, "intruder@example.com", "vendor", "")
	product := env.createProduct(t, vendor)

	_, err := env.Catalog.CreatePrice(ctx, intruder, product.ID, PriceParams{
		Price: intPtr(10), TimeDuration: "hour",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.Catalog.CreatePrice(ctx, vendor, product.ID, PriceParams{
		Price: intPtr(10), TimeDuration: "fortnight",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.Catalog.CreatePrice(ctx, vendor, product.ID, PriceParams{
		Price: intPtr(-1), TimeDuration: "hour",
	})
	assert.ErrorIs(t, err, ErrValidation)

	price, err := env.Catalog.CreatePrice(ctx, vendor, product.ID, PriceParams{
		Price: intPtr(10), TimeDuration: "hour",
	})
	require.NoError(t, err)
	assert.True(t, price.Active)

	// one active price per duration
	_, err = env.Catalog.CreatePrice(ctx, vendor, product.ID, PriceParams{
		Price: intPtr(12), TimeDuration: "hour",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// deactivating the first makes room for a replacement
	_, err = env.Catalog.UpdatePrice(ctx, vendor, product.ID, price.ID, PriceParams{
		Active: boolPtr(false),
	})
	require.NoError(t, err)

	_, err = env.Catalog.CreatePrice(ctx, vendor, product.ID, PriceParams{
		Price: intPtr(12), TimeDuration: "hour",
	})
	require.NoError(t, err)
}

func TestDeletePrice(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	vendor := env.createUser(t, "vendor@example.com", "vendor", "")
	product := env.createProduct(t, vendor)

	price, err := env.Catalog.CreatePrice(ctx, vendor, product.ID, PriceParams{
		Price: intPtr(10), TimeDuration: "day",
	})
	require.NoError(t, err)

	require.NoError(t, env.Catalog.DeletePrice(ctx, vendor, product.ID, price.ID))
	assert.ErrorIs(t, env.Catalog.DeletePrice(ctx, vendor, product.ID, price.ID), ErrNotFound)
}

func TestListProducts_Paged(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	vendor := env.createUser(t, "vendor@example.com", "vendor", "")
	for i := 0; i < 3; i++ {
		env.createProduct(t, vendor)
	}

	items, meta, err := env.Catalog.ListProducts(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 3, meta.Total)
	assert.EqualValues(t, 2, meta.TotalPages)
	assert.True(t, meta.HasNext)
}
