package repository

import (
	"context"

	"telemart/internal/domain/entity"
)

// ColorQuery matches on every non-empty field.
type ColorQuery struct {
	ProductID string
	RegionID  string
	NetworkID string
	Name      string
}

type VariantRepository interface {
	CreateRegion(ctx context.Context, region *entity.Region) error
	GetRegion(ctx context.Context, id string) (*entity.Region, error)
	ListRegions(ctx context.Context, productID string) ([]*entity.Region, error)
	UpdateRegion(ctx context.Context, region *entity.Region) error
	DeleteRegion(ctx context.Context, id string) error

	CreateNetwork(ctx context.Context, network *entity.Network) error
	GetNetwork(ctx context.Context, id string) (*entity.Network, error)
	ListNetworks(ctx context.Context, productID string) ([]*entity.Network, error)
	UpdateNetwork(ctx context.Context, network *entity.Network) error
	DeleteNetwork(ctx context.Context, id string) error

	CreateColor(ctx context.Context, color *entity.Color) error
	GetColor(ctx context.Context, id string) (*entity.Color, error)
	FindColor(ctx context.Context, q ColorQuery) (*entity.Color, error)
	ListColors(ctx context.Context, productID string) ([]*entity.Color, error)
	// UpdateColor applies fn to the stored color and saves the result in one
	// step, so a stock decrement cannot land between the read and the write.
	UpdateColor(ctx context.Context, id string, fn func(*entity.Color) error) (*entity.Color, error)
	DeleteColor(ctx context.Context, id string) error

	CreateStorage(ctx context.Context, storage *entity.Storage) error
	GetStorage(ctx context.Context, id string) (*entity.Storage, error)
	ListStorages(ctx context.Context, productID string) ([]*entity.Storage, error)
	UpdateStorage(ctx context.Context, storage *entity.Storage) error
	DeleteStorage(ctx context.Context, id string) error

	CreatePrice(ctx context.Context, price *entity.Price) error
	GetPrice(ctx context.Context, id string) (*entity.Price, error)
	GetPriceByStorageID(ctx context.Context, storageID string) (*entity.Price, error)
	ListPrices(ctx context.Context, productID string) ([]*entity.Price, error)
	UpdatePrice(ctx context.Context, id string, fn func(*entity.Price) error) (*entity.Price, error)
	DeletePrice(ctx context.Context, id string) error
}

// StockChange is the quantity of one inventory record around a decrement.
type StockChange struct {
	Before int `json:"before"`
	After  int `json:"after"`
}

// InventoryRepository decrements stock atomically per record, clamped at zero.
type InventoryRepository interface {
	DecrementProductStock(ctx context.Context, productID string, qty int) (StockChange, error)
	DecrementColorStock(ctx context.Context, colorID string, qty int) (StockChange, error)
	DecrementPriceStock(ctx context.Context, priceID string, qty int) (StockChange, error)
}
