package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemart/internal/domain/entity"
)

type colorFixture struct {
	product  *entity.Product
	region   *entity.Region
	network  *entity.Network
	regional *entity.Color
	networky *entity.Color
	plain    *entity.Color
}

// seedColors creates three "Blue" colors on one product: one under a region,
// one under a network and one directly on the product.
func seedColors(t *testing.T, e *testEnv) colorFixture {
	t.Helper()
	ctx := context.Background()
	f := colorFixture{product: &entity.Product{Name: "Tab", ProductType: entity.ProductTypeVariant, StockQuantity: 30}}
	require.NoError(t, e.productRepo.Create(ctx, f.product))

	f.region = &entity.Region{ProductID: f.product.ID, Name: "India"}
	require.NoError(t, e.variantRepo.CreateRegion(ctx, f.region))
	f.network = &entity.Network{ProductID: f.product.ID, Name: "5G"}
	require.NoError(t, e.variantRepo.CreateNetwork(ctx, f.network))

	f.regional = &entity.Color{ProductID: f.product.ID, RegionID: f.region.ID, Name: "Blue", StockQuantity: 5, DisplayOrder: 2}
	f.networky = &entity.Color{ProductID: f.product.ID, NetworkID: f.network.ID, Name: "Blue", StockQuantity: 6, DisplayOrder: 3}
	f.plain = &entity.Color{ProductID: f.product.ID, Name: "Blue", StockQuantity: 9, DisplayOrder: 1}
	for _, c := range []*entity.Color{f.regional, f.networky, f.plain} {
		require.NoError(t, e.variantRepo.CreateColor(ctx, c))
	}
	return f
}

func colorStock(t *testing.T, e *testEnv, id string) int {
	t.Helper()
	c, err := e.variantRepo.GetColor(context.Background(), id)
	require.NoError(t, err)
	return c.StockQuantity
}

func TestStockAdjusterColorResolution(t *testing.T) {
	tests := []struct {
		name   string
		item   func(f colorFixture) *entity.OrderItem
		target func(f colorFixture) *entity.Color
	}{
		{
			name: "region and name",
			item: func(f colorFixture) *entity.OrderItem {
				return &entity.OrderItem{ProductID: f.product.ID, RegionID: f.region.ID, ColorName: "Blue", Quantity: 1}
			},
			target: func(f colorFixture) *entity.Color { return f.regional },
		},
		{
			name: "network and name",
			item: func(f colorFixture) *entity.OrderItem {
				return &entity.OrderItem{ProductID: f.product.ID, NetworkID: f.network.ID, ColorName: "Blue", Quantity: 1}
			},
			target: func(f colorFixture) *entity.Color { return f.networky },
		},
		{
			name: "unknown region falls back to product and name",
			item: func(f colorFixture) *entity.OrderItem {
				return &entity.OrderItem{ProductID: f.product.ID, RegionID: "gone", ColorName: "Blue", Quantity: 1}
			},
			target: func(f colorFixture) *entity.Color { return f.plain },
		},
		{
			name: "color id only",
			item: func(f colorFixture) *entity.OrderItem {
				return &entity.OrderItem{ProductID: f.product.ID, ColorID: f.networky.ID, Quantity: 1}
			},
			target: func(f colorFixture) *entity.Color { return f.networky },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			f := seedColors(t, e)
			adjuster := NewStockAdjuster(e.variantRepo, e.inventoryRepo)
			target := tt.target(f)
			before := target.StockQuantity

			report, err := adjuster.Adjust(context.Background(), []*entity.OrderItem{tt.item(f)})
			require.NoError(t, err)
			require.Len(t, report.Adjustments, 1)

			adj := report.Adjustments[0]
			assert.True(t, adj.Resolved)
			assert.Equal(t, StockLevelColor, adj.Level)
			assert.Equal(t, target.ID, adj.RecordID)
			assert.Equal(t, before-1, colorStock(t, e, target.ID))

			product, err := e.productRepo.GetByID(context.Background(), f.product.ID)
			require.NoError(t, err)
			assert.Equal(t, 30, product.StockQuantity)
		})
	}
}

func TestStockAdjusterPrefersSingleStock(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	single := 4
	color := &entity.Color{ProductID: "p1", Name: "Red", StockQuantity: 10, SingleStockQuantity: &single}
	require.NoError(t, e.variantRepo.CreateColor(ctx, color))

	report, err := NewStockAdjuster(e.variantRepo, e.inventoryRepo).Adjust(ctx, []*entity.OrderItem{{ProductID: "p1", ColorID: color.ID, Quantity: 3}})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Adjustments[0].Before)
	assert.Equal(t, 1, report.Adjustments[0].After)

	stored, err := e.variantRepo.GetColor(ctx, color.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SingleStockQuantity)
	assert.Equal(t, 1, *stored.SingleStockQuantity)
	assert.Equal(t, 10, stored.StockQuantity)
}

func TestStockAdjusterLeavesUnresolvedItemsAlone(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	f := seedColors(t, e)
	adjuster := NewStockAdjuster(e.variantRepo, e.inventoryRepo)

	report, err := adjuster.Adjust(ctx, []*entity.OrderItem{
		{ID: "a", ProductID: f.product.ID, ColorID: "missing", Quantity: 2},
		{ID: "b", ProductID: "no-such-product", Quantity: 1},
		{ID: "c", ProductID: f.product.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, report.Adjustments, 3)

	unresolved := report.Unresolved()
	require.Len(t, unresolved, 2)
	assert.Equal(t, "a", unresolved[0].ItemID)
	assert.Equal(t, StockLevelColor, unresolved[0].Level)
	assert.Equal(t, "b", unresolved[1].ItemID)
	assert.Equal(t, StockLevelProduct, unresolved[1].Level)

	product, err := e.productRepo.GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 29, product.StockQuantity, "only the product-level item decrements product stock")
	assert.Equal(t, 9, colorStock(t, e, f.plain.ID))
}
