package usecase

import (
	"context"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type VariantUseCase struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

func NewVariantUseCase(productRepo repository.ProductRepository, variantRepo repository.VariantRepository) *VariantUseCase {
	return &VariantUseCase{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

func (uc *VariantUseCase) requireProduct(ctx context.Context, productID string) error {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		if errors.IsNotFound(err) {
			return errors.BadRequest("Invalid product", err)
		}
		return err
	}
	return nil
}

type RegionInput struct {
	ProductID    string `json:"product_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	IsDefault    bool   `json:"is_default"`
	DisplayOrder int    `json:"display_order"`
}

func (uc *VariantUseCase) CreateRegion(ctx context.Context, input RegionInput) (*entity.Region, error) {
	if err := uc.requireProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}
	region := &entity.Region{
		ProductID:    input.ProductID,
		Name:         input.Name,
		IsDefault:    input.IsDefault,
		DisplayOrder: input.DisplayOrder,
	}
	if err := uc.variantRepo.CreateRegion(ctx, region); err != nil {
		return nil, err
	}
	if region.IsDefault {
		if err := uc.clearDefaultRegions(ctx, region); err != nil {
			return nil, err
		}
	}
	return region, nil
}

func (uc *VariantUseCase) UpdateRegion(ctx context.Context, id string, input RegionInput) (*entity.Region, error) {
	region, err := uc.variantRepo.GetRegion(ctx, id)
	if err != nil {
		return nil, err
	}
	region.Name = input.Name
	region.IsDefault = input.IsDefault
	region.DisplayOrder = input.DisplayOrder
	if err := uc.variantRepo.UpdateRegion(ctx, region); err != nil {
		return nil, err
	}
	if region.IsDefault {
		if err := uc.clearDefaultRegions(ctx, region); err != nil {
			return nil, err
		}
	}
	return region, nil
}

// clearDefaultRegions keeps at most one default region per product.
func (uc *VariantUseCase) clearDefaultRegions(ctx context.Context, keep *entity.Region) error {
	siblings, err := uc.variantRepo.ListRegions(ctx, keep.ProductID)
	if err != nil {
		return err
	}
	for _, r := range siblings {
		if r.ID == keep.ID || !r.IsDefault {
			continue
		}
		r.IsDefault = false
		if err := uc.variantRepo.UpdateRegion(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (uc *VariantUseCase) ListRegions(ctx context.Context, productID string) ([]*entity.Region, error) {
	return uc.variantRepo.ListRegions(ctx, productID)
}

func (uc *VariantUseCase) DeleteRegion(ctx context.Context, id string) error {
	if _, err := uc.variantRepo.GetRegion(ctx, id); err != nil {
		return err
	}
	return uc.variantRepo.DeleteRegion(ctx, id)
}

type NetworkInput struct {
	ProductID    string `json:"product_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	DisplayOrder int    `json:"display_order"`
}

func (uc *VariantUseCase) CreateNetwork(ctx context.Context, input NetworkInput) (*entity.Network, error) {
	if err := uc.requireProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}
	network := &entity.Network{
		ProductID:    input.ProductID,
		Name:         input.Name,
		DisplayOrder: input.DisplayOrder,
	}
	if err := uc.variantRepo.CreateNetwork(ctx, network); err != nil {
		return nil, err
	}
	return network, nil
}

func (uc *VariantUseCase) UpdateNetwork(ctx context.Context, id string, input NetworkInput) (*entity.Network, error) {
	network, err := uc.variantRepo.GetNetwork(ctx, id)
	if err != nil {
		return nil, err
	}
	network.Name = input.Name
	network.DisplayOrder = input.DisplayOrder
	if err := uc.variantRepo.UpdateNetwork(ctx, network); err != nil {
		return nil, err
	}
	return network, nil
}

func (uc *VariantUseCase) ListNetworks(ctx context.Context, productID string) ([]*entity.Network, error) {
	return uc.variantRepo.ListNetworks(ctx, productID)
}

func (uc *VariantUseCase) DeleteNetwork(ctx context.Context, id string) error {
	if _, err := uc.variantRepo.GetNetwork(ctx, id); err != nil {
		return err
	}
	return uc.variantRepo.DeleteNetwork(ctx, id)
}

type ColorInput struct {
	ProductID           string   `json:"product_id" validate:"required"`
	RegionID            string   `json:"region_id"`
	NetworkID           string   `json:"network_id"`
	Name                string   `json:"name" validate:"required"`
	Code                string   `json:"code"`
	Image               string   `json:"image"`
	DisplayOrder        int      `json:"display_order"`
	StockQuantity       *int     `json:"stock_quantity" validate:"omitempty,gte=0"`
	SingleStockQuantity *int     `json:"single_stock_quantity" validate:"omitempty,gte=0"`
	SinglePrice         *float64 `json:"single_price" validate:"omitempty,gte=0"`
}

// checkColorParent ensures a color hangs off at most one parent, and that the
// parent belongs to the same product.
func (uc *VariantUseCase) checkColorParent(ctx context.Context, input ColorInput) error {
	if input.RegionID != "" && input.NetworkID != "" {
		return errors.BadRequest("Color can belong to a region or a network, not both", nil)
	}
	if input.RegionID != "" {
		region, err := uc.variantRepo.GetRegion(ctx, input.RegionID)
		if err != nil || region.ProductID != input.ProductID {
			return errors.BadRequest("Invalid region", err)
		}
	}
	if input.NetworkID != "" {
		network, err := uc.variantRepo.GetNetwork(ctx, input.NetworkID)
		if err != nil || network.ProductID != input.ProductID {
			return errors.BadRequest("Invalid network", err)
		}
	}
	return nil
}

func applyColor(color *entity.Color, input ColorInput) {
	color.ProductID = input.ProductID
	color.RegionID = input.RegionID
	color.NetworkID = input.NetworkID
	color.Name = input.Name
	color.Code = input.Code
	color.Image = input.Image
	color.DisplayOrder = input.DisplayOrder
	if input.StockQuantity != nil {
		color.StockQuantity = *input.StockQuantity
	}
	if input.SingleStockQuantity != nil {
		single := *input.SingleStockQuantity
		color.SingleStockQuantity = &single
	}
	color.SinglePrice = input.SinglePrice
}

func (uc *VariantUseCase) CreateColor(ctx context.Context, input ColorInput) (*entity.Color, error) {
	if err := uc.requireProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}
	if err := uc.checkColorParent(ctx, input); err != nil {
		return nil, err
	}
	color := &entity.Color{}
	applyColor(color, input)
	if err := uc.variantRepo.CreateColor(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

func (uc *VariantUseCase) UpdateColor(ctx context.Context, id string, input ColorInput) (*entity.Color, error) {
	color, err := uc.variantRepo.GetColor(ctx, id)
	if err != nil {
		return nil, err
	}
	input.ProductID = color.ProductID
	if err := uc.checkColorParent(ctx, input); err != nil {
		return nil, err
	}
	return uc.variantRepo.UpdateColor(ctx, id, func(stored *entity.Color) error {
		applyColor(stored, input)
		return nil
	})
}

func (uc *VariantUseCase) ListColors(ctx context.Context, productID string) ([]*entity.Color, error) {
	return uc.variantRepo.ListColors(ctx, productID)
}

func (uc *VariantUseCase) DeleteColor(ctx context.Context, id string) error {
	if _, err := uc.variantRepo.GetColor(ctx, id); err != nil {
		return err
	}
	return uc.variantRepo.DeleteColor(ctx, id)
}

type StorageInput struct {
	ColorID      string `json:"color_id" validate:"required"`
	Size         string `json:"size" validate:"required"`
	DisplayOrder int    `json:"display_order"`
}

func (uc *VariantUseCase) CreateStorage(ctx context.Context, input StorageInput) (*entity.Storage, error) {
	color, err := uc.variantRepo.GetColor(ctx, input.ColorID)
	if err != nil {
		return nil, errors.BadRequest("Invalid color", err)
	}
	storage := &entity.Storage{
		ProductID:    color.ProductID,
		ColorID:      color.ID,
		Size:         input.Size,
		DisplayOrder: input.DisplayOrder,
	}
	if err := uc.variantRepo.CreateStorage(ctx, storage); err != nil {
		return nil, err
	}
	return storage, nil
}

func (uc *VariantUseCase) UpdateStorage(ctx context.Context, id string, input StorageInput) (*entity.Storage, error) {
	storage, err := uc.variantRepo.GetStorage(ctx, id)
	if err != nil {
		return nil, err
	}
	storage.Size = input.Size
	storage.DisplayOrder = input.DisplayOrder
	if err := uc.variantRepo.UpdateStorage(ctx, storage); err != nil {
		return nil, err
	}
	return storage, nil
}

func (uc *VariantUseCase) ListStorages(ctx context.Context, productID string) ([]*entity.Storage, error) {
	return uc.variantRepo.ListStorages(ctx, productID)
}

func (uc *VariantUseCase) DeleteStorage(ctx context.Context, id string) error {
	if _, err := uc.variantRepo.GetStorage(ctx, id); err != nil {
		return err
	}
	return uc.variantRepo.DeleteStorage(ctx, id)
}

type PriceInput struct {
	StorageID         string  `json:"storage_id" validate:"required"`
	RegularPrice      float64 `json:"regular_price" validate:"gte=0"`
	ComparePrice      float64 `json:"compare_price" validate:"gte=0"`
	DiscountPrice     float64 `json:"discount_price" validate:"gte=0"`
	CampaignPrice     float64 `json:"campaign_price" validate:"gte=0"`
	StockQuantity     *int    `json:"stock_quantity" validate:"omitempty,gte=0"`
	LowStockThreshold int     `json:"low_stock_threshold" validate:"gte=0"`
}

func applyPrice(price *entity.Price, input PriceInput) {
	price.RegularPrice = input.RegularPrice
	price.ComparePrice = input.ComparePrice
	price.DiscountPrice = input.DiscountPrice
	price.CampaignPrice = input.CampaignPrice
	if input.StockQuantity != nil {
		price.StockQuantity = *input.StockQuantity
	}
	price.LowStockThreshold = input.LowStockThreshold
}

// CreatePrice enforces one price per storage.
func (uc *VariantUseCase) CreatePrice(ctx context.Context, input PriceInput) (*entity.Price, error) {
	storage, err := uc.variantRepo.GetStorage(ctx, input.StorageID)
	if err != nil {
		return nil, errors.BadRequest("Invalid storage", err)
	}
	_, err = uc.variantRepo.GetPriceByStorageID(ctx, storage.ID)
	switch {
	case err == nil:
		return nil, errors.Conflict("Storage already has a price")
	case !errors.IsNotFound(err):
		return nil, err
	}

	price := &entity.Price{ProductID: storage.ProductID, StorageID: storage.ID}
	applyPrice(price, input)
	if err := uc.variantRepo.CreatePrice(ctx, price); err != nil {
		return nil, err
	}
	return price, nil
}

// UpdatePrice changes amounts and, when given, stock. The storage link is
// fixed. Omitted stock keeps the stored quantity.
func (uc *VariantUseCase) UpdatePrice(ctx context.Context, id string, input PriceInput) (*entity.Price, error) {
	return uc.variantRepo.UpdatePrice(ctx, id, func(price *entity.Price) error {
		if input.StorageID != "" && input.StorageID != price.StorageID {
			return errors.BadRequest("Price storage cannot be changed", nil)
		}
		applyPrice(price, input)
		return nil
	})
}

func (uc *VariantUseCase) ListPrices(ctx context.Context, productID string) ([]*entity.Price, error) {
	return uc.variantRepo.ListPrices(ctx, productID)
}

func (uc *VariantUseCase) DeletePrice(ctx context.Context, id string) error {
	if _, err := uc.variantRepo.GetPrice(ctx, id); err != nil {
		return err
	}
	return uc.variantRepo.DeletePrice(ctx, id)
}
