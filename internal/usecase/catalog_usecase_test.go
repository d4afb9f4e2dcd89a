package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

func TestCategorySlugs(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	phones, err := e.catalog.CreateCategory(ctx, CategoryInput{Name: "Smart Phones"})
	require.NoError(t, err)
	assert.Equal(t, "smart-phones", phones.Slug)
	assert.True(t, phones.IsActive)

	_, err = e.catalog.CreateCategory(ctx, CategoryInput{Name: "Smart phones!"})
	assert.True(t, errors.Is(err, errors.CodeConflict))

	// updating a record with its own slug is fine
	updated, err := e.catalog.UpdateCategory(ctx, phones.ID, CategoryInput{Name: "Smart Phones", Description: "All phones"})
	require.NoError(t, err)
	assert.Equal(t, "All phones", updated.Description)

	_, err = e.catalog.UpdateCategory(ctx, phones.ID, CategoryInput{Name: "Smart Phones", ParentID: phones.ID})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	found, err := e.catalog.GetCategoryBySlug(ctx, "smart-phones")
	require.NoError(t, err)
	assert.Equal(t, phones.ID, found.ID)
}

func TestBrandLifecycle(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	inactive := false

	brand, err := e.catalog.CreateBrand(ctx, BrandInput{Name: "Samsung", IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "samsung", brand.Slug)

	active, err := e.catalog.ListBrands(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = e.catalog.CreateBrand(ctx, BrandInput{Name: "Samsung"})
	assert.True(t, errors.Is(err, errors.CodeConflict))

	require.NoError(t, e.catalog.DeleteBrand(ctx, brand.ID))
	_, err = e.catalog.GetBrand(ctx, brand.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestCreateProductValidatesReferences(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.catalog.CreateProduct(ctx, ProductInput{Name: "X1", CategoryID: "missing"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	category, err := e.catalog.CreateCategory(ctx, CategoryInput{Name: "Phones"})
	require.NoError(t, err)
	_, err = e.catalog.CreateProduct(ctx, ProductInput{Name: "X1", CategoryID: category.ID, BrandID: "missing"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	product, err := e.catalog.CreateProduct(ctx, ProductInput{Name: "X1", CategoryID: category.ID, BasePrice: 500})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductTypeBasic, product.ProductType)
	assert.True(t, product.IsActive)
	assert.True(t, product.IsOnline)
}

func TestDeleteProductIsSoft(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 10)

	require.NoError(t, e.catalog.DeleteProduct(ctx, cat.product.ID))
	_, err := e.catalog.GetProduct(ctx, cat.product.ID)
	assert.True(t, errors.IsNotFound(err))

	products, total, err := e.catalog.ListProducts(ctx, repository.ProductFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, products)
}

func TestProductDetailTree(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 10)

	loose, err := e.variants.CreateColor(ctx, ColorInput{ProductID: cat.product.ID, Name: "White"})
	require.NoError(t, err)
	network, err := e.variants.CreateNetwork(ctx, NetworkInput{ProductID: cat.product.ID, Name: "5G"})
	require.NoError(t, err)
	_, err = e.variants.CreateColor(ctx, ColorInput{ProductID: cat.product.ID, NetworkID: network.ID, Name: "Green"})
	require.NoError(t, err)

	plan, err := e.catalog.CreateCarePlan(ctx, CarePlanInput{Name: "Screen care", DurationMonths: 12, Price: 30, CategoryIDs: []string{cat.category.ID}})
	require.NoError(t, err)
	_, err = e.catalog.CreateCarePlan(ctx, CarePlanInput{Name: "Laptop care", DurationMonths: 12, ProductIDs: []string{"other"}})
	require.NoError(t, err)

	detail, err := e.catalog.GetProductDetailBySlug(ctx, "x1")
	require.NoError(t, err)

	require.NotNil(t, detail.Category)
	assert.Equal(t, "Phones", detail.Category.Name)

	require.Len(t, detail.Regions, 1)
	require.Len(t, detail.Regions[0].Colors, 1)
	black := detail.Regions[0].Colors[0]
	assert.Equal(t, cat.color.ID, black.ID)
	require.Len(t, black.Storages, 1)
	require.NotNil(t, black.Storages[0].Price)
	assert.Equal(t, cat.price.ID, black.Storages[0].Price.ID)

	require.Len(t, detail.Networks, 1)
	require.Len(t, detail.Networks[0].Colors, 1)
	assert.Equal(t, "Green", detail.Networks[0].Colors[0].Name)

	require.Len(t, detail.Colors, 1)
	assert.Equal(t, loose.ID, detail.Colors[0].ID)

	require.Len(t, detail.CarePlans, 1)
	assert.Equal(t, plan.ID, detail.CarePlans[0].ID)

	plans, err := e.catalog.CarePlansForProduct(ctx, cat.product.ID)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}
