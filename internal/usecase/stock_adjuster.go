package usecase

import (
	"context"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
	"telemart/pkg/logger"
)

const (
	StockLevelStorage = "storage"
	StockLevelColor   = "color"
	StockLevelProduct = "product"
)

// inventoryHandle names the single record a line item draws stock from.
type inventoryHandle struct {
	level string
	id    string
}

// stockResolver returns nil when it cannot find a record for the item.
type stockResolver func(ctx context.Context, item *entity.OrderItem) (*inventoryHandle, error)

// stockLevel is chosen when applies matches; its resolvers are then tried in
// order and later levels are never consulted.
type stockLevel struct {
	name      string
	applies   func(item *entity.OrderItem) bool
	resolvers []stockResolver
}

type StockAdjustment struct {
	ItemID    string `json:"item_id"`
	ProductID string `json:"product_id"`
	Level     string `json:"level"`
	RecordID  string `json:"record_id,omitempty"`
	Resolved  bool   `json:"resolved"`
	Quantity  int    `json:"quantity"`
	Before    int    `json:"before"`
	After     int    `json:"after"`
}

type AdjustmentReport struct {
	Adjustments []StockAdjustment `json:"adjustments"`
}

func (r AdjustmentReport) Unresolved() []StockAdjustment {
	var out []StockAdjustment
	for _, a := range r.Adjustments {
		if !a.Resolved {
			out = append(out, a)
		}
	}
	return out
}

type StockAdjuster struct {
	variantRepo   repository.VariantRepository
	inventoryRepo repository.InventoryRepository
	levels        []stockLevel
}

func NewStockAdjuster(variantRepo repository.VariantRepository, inventoryRepo repository.InventoryRepository) *StockAdjuster {
	a := &StockAdjuster{
		variantRepo:   variantRepo,
		inventoryRepo: inventoryRepo,
	}
	a.levels = []stockLevel{
		{
			name:      StockLevelStorage,
			applies:   func(item *entity.OrderItem) bool { return item.StorageID != "" },
			resolvers: []stockResolver{a.priceByStorage},
		},
		{
			name: StockLevelColor,
			applies: func(item *entity.OrderItem) bool {
				return item.ColorID != "" || item.ColorName != "" || item.RegionID != "" || item.NetworkID != ""
			},
			resolvers: []stockResolver{a.colorByRegion, a.colorByNetwork, a.colorByProduct, a.colorByID},
		},
		{
			name:      StockLevelProduct,
			applies:   func(item *entity.OrderItem) bool { return true },
			resolvers: []stockResolver{productStock},
		},
	}
	return a
}

// Adjust decrements inventory for every item, clamping at zero. Items with no
// matching record are left untouched and reported unresolved. Repository
// errors other than not-found stop the walk.
func (a *StockAdjuster) Adjust(ctx context.Context, items []*entity.OrderItem) (AdjustmentReport, error) {
	var report AdjustmentReport
	for _, item := range items {
		adj, err := a.adjustItem(ctx, item)
		if err != nil {
			return report, err
		}
		if !adj.Resolved {
			logger.Warn("No inventory record for item: product=%s, level=%s", item.ProductID, adj.Level)
		}
		report.Adjustments = append(report.Adjustments, adj)
	}
	return report, nil
}

func (a *StockAdjuster) adjustItem(ctx context.Context, item *entity.OrderItem) (StockAdjustment, error) {
	adj := StockAdjustment{ItemID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity}

	level := a.levelFor(item)
	adj.Level = level.name

	handle, err := resolve(ctx, level.resolvers, item)
	if err != nil || handle == nil {
		return adj, err
	}

	change, err := a.decrement(ctx, handle, item.Quantity)
	if err != nil {
		if errors.IsNotFound(err) {
			return adj, nil
		}
		return adj, err
	}

	adj.RecordID = handle.id
	adj.Resolved = true
	adj.Before = change.Before
	adj.After = change.After
	return adj, nil
}

func (a *StockAdjuster) levelFor(item *entity.OrderItem) stockLevel {
	for _, level := range a.levels {
		if level.applies(item) {
			return level
		}
	}
	return a.levels[len(a.levels)-1]
}

func resolve(ctx context.Context, resolvers []stockResolver, item *entity.OrderItem) (*inventoryHandle, error) {
	for _, r := range resolvers {
		handle, err := r(ctx, item)
		if err != nil {
			return nil, err
		}
		if handle != nil {
			return handle, nil
		}
	}
	return nil, nil
}

func (a *StockAdjuster) decrement(ctx context.Context, h *inventoryHandle, qty int) (repository.StockChange, error) {
	switch h.level {
	case StockLevelStorage:
		return a.inventoryRepo.DecrementPriceStock(ctx, h.id, qty)
	case StockLevelColor:
		return a.inventoryRepo.DecrementColorStock(ctx, h.id, qty)
	default:
		return a.inventoryRepo.DecrementProductStock(ctx, h.id, qty)
	}
}

// found turns a lookup into a handle, treating not-found as "try the next
// resolver".
func found(level, id string, err error) (*inventoryHandle, error) {
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &inventoryHandle{level: level, id: id}, nil
}

func (a *StockAdjuster) priceByStorage(ctx context.Context, item *entity.OrderItem) (*inventoryHandle, error) {
	price, err := a.variantRepo.GetPriceByStorageID(ctx, item.StorageID)
	if err != nil {
		return found(StockLevelStorage, "", err)
	}
	return found(StockLevelStorage, price.ID, nil)
}

func (a *StockAdjuster) findColor(ctx context.Context, q repository.ColorQuery) (*inventoryHandle, error) {
	color, err := a.variantRepo.FindColor(ctx, q)
	if err != nil {
		return found(StockLevelColor, "", err)
	}
	return found(StockLevelColor, color.ID, nil)
}

func (a *StockAdjuster) colorByRegion(ctx context.Context, item *entity.OrderItem) (*inventoryHandle, error) {
	if item.RegionID == "" || item.ColorName == "" {
		return nil, nil
	}
	return a.findColor(ctx, repository.ColorQuery{ProductID: item.ProductID, RegionID: item.RegionID, Name: item.ColorName})
}

func (a *StockAdjuster) colorByNetwork(ctx context.Context, item *entity.OrderItem) (*inventoryHandle, error) {
	if item.NetworkID == "" || item.ColorName == "" {
		return nil, nil
	}
	return a.findColor(ctx, repository.ColorQuery{ProductID: item.ProductID, NetworkID: item.NetworkID, Name: item.ColorName})
}

func (a *StockAdjuster) colorByProduct(ctx context.Context, item *entity.OrderItem) (*inventoryHandle, error) {
	if item.ProductID == "" || item.ColorName == "" {
		return nil, nil
	}
	return a.findColor(ctx, repository.ColorQuery{ProductID: item.ProductID, Name: item.ColorName})
}

func (a *StockAdjuster) colorByID(ctx context.Context, item *entity.OrderItem) (*inventoryHandle, error) {
	if item.ColorID == "" {
		return nil, nil
	}
	_, err := a.variantRepo.GetColor(ctx, item.ColorID)
	return found(StockLevelColor, item.ColorID, err)
}

func productStock(ctx context.Context, item *entity.OrderItem) (*inventoryHandle, error) {
	if item.ProductID == "" {
		return nil, nil
	}
	return &inventoryHandle{level: StockLevelProduct, id: item.ProductID}, nil
}
