package memory

import (
	"context"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type variantRepository struct{ s *Store }

func NewVariantRepository(s *Store) repository.VariantRepository {
	return &variantRepository{s: s}
}

func (r *variantRepository) CreateRegion(ctx context.Context, region *entity.Region) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	region.ID = newID(region.ID)
	region.CreatedAt = r.s.now()
	region.UpdatedAt = region.CreatedAt
	r.s.regions[region.ID] = clone(region)
	return nil
}

func (r *variantRepository) GetRegion(ctx context.Context, id string) (*entity.Region, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.regions[id]
	if !ok {
		return nil, errors.NotFound("Region", nil)
	}
	return clone(v), nil
}

func (r *variantRepository) ListRegions(ctx context.Context, productID string) ([]*entity.Region, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Region
	for _, v := range r.s.regions {
		if v.ProductID == productID {
			out = append(out, clone(v))
		}
	}
	return byDisplayOrder(out, func(v *entity.Region) int { return v.DisplayOrder }), nil
}

func (r *variantRepository) UpdateRegion(ctx context.Context, region *entity.Region) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.regions[region.ID]; !ok {
		return errors.NotFound("Region", nil)
	}
	region.UpdatedAt = r.s.now()
	r.s.regions[region.ID] = clone(region)
	return nil
}

func (r *variantRepository) DeleteRegion(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.regions, id)
	return nil
}

func (r *variantRepository) CreateNetwork(ctx context.Context, network *entity.Network) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	network.ID = newID(network.ID)
	network.CreatedAt = r.s.now()
	network.UpdatedAt = network.CreatedAt
	r.s.networks[network.ID] = clone(network)
	return nil
}

func (r *variantRepository) GetNetwork(ctx context.Context, id string) (*entity.Network, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.networks[id]
	if !ok {
		return nil, errors.NotFound("Network", nil)
	}
	return clone(v), nil
}

func (r *variantRepository) ListNetworks(ctx context.Context, productID string) ([]*entity.Network, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Network
	for _, v := range r.s.networks {
		if v.ProductID == productID {
			out = append(out, clone(v))
		}
	}
	return byDisplayOrder(out, func(v *entity.Network) int { return v.DisplayOrder }), nil
}

func (r *variantRepository) UpdateNetwork(ctx context.Context, network *entity.Network) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.networks[network.ID]; !ok {
		return errors.NotFound("Network", nil)
	}
	network.UpdatedAt = r.s.now()
	r.s.networks[network.ID] = clone(network)
	return nil
}

func (r *variantRepository) DeleteNetwork(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.networks, id)
	return nil
}

func (r *variantRepository) CreateColor(ctx context.Context, color *entity.Color) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	color.ID = newID(color.ID)
	color.CreatedAt = r.s.now()
	color.UpdatedAt = color.CreatedAt
	r.s.colors[color.ID] = cloneColor(color)
	return nil
}

func (r *variantRepository) GetColor(ctx context.Context, id string) (*entity.Color, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.colors[id]
	if !ok {
		return nil, errors.NotFound("Color", nil)
	}
	return cloneColor(v), nil
}

func (r *variantRepository) FindColor(ctx context.Context, q repository.ColorQuery) (*entity.Color, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var best *entity.Color
	for _, v := range r.s.colors {
		switch {
		case q.ProductID != "" && v.ProductID != q.ProductID:
			continue
		case q.RegionID != "" && v.RegionID != q.RegionID:
			continue
		case q.NetworkID != "" && v.NetworkID != q.NetworkID:
			continue
		case q.Name != "" && v.Name != q.Name:
			continue
		}
		if best == nil || v.DisplayOrder < best.DisplayOrder {
			best = v
		}
	}
	if best == nil {
		return nil, errors.NotFound("Color", nil)
	}
	return cloneColor(best), nil
}

func (r *variantRepository) ListColors(ctx context.Context, productID string) ([]*entity.Color, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Color
	for _, v := range r.s.colors {
		if v.ProductID == productID {
			out = append(out, cloneColor(v))
		}
	}
	return byDisplayOrder(out, func(v *entity.Color) int { return v.DisplayOrder }), nil
}

func (r *variantRepository) UpdateColor(ctx context.Context, id string, fn func(*entity.Color) error) (*entity.Color, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.colors[id]
	if !ok {
		return nil, errors.NotFound("Color", nil)
	}
	color := cloneColor(stored)
	if err := fn(color); err != nil {
		return nil, err
	}
	color.ID = id
	color.UpdatedAt = r.s.now()
	r.s.colors[id] = cloneColor(color)
	return color, nil
}

func (r *variantRepository) DeleteColor(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.colors, id)
	return nil
}

func (r *variantRepository) CreateStorage(ctx context.Context, storage *entity.Storage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	storage.ID = newID(storage.ID)
	storage.CreatedAt = r.s.now()
	storage.UpdatedAt = storage.CreatedAt
	r.s.storages[storage.ID] = clone(storage)
	return nil
}

func (r *variantRepository) GetStorage(ctx context.Context, id string) (*entity.Storage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.storages[id]
	if !ok {
		return nil, errors.NotFound("Storage", nil)
	}
	return clone(v), nil
}

func (r *variantRepository) ListStorages(ctx context.Context, productID string) ([]*entity.Storage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Storage
	for _, v := range r.s.storages {
		if v.ProductID == productID {
			out = append(out, clone(v))
		}
	}
	return byDisplayOrder(out, func(v *entity.Storage) int { return v.DisplayOrder }), nil
}

func (r *variantRepository) UpdateStorage(ctx context.Context, storage *entity.Storage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.storages[storage.ID]; !ok {
		return errors.NotFound("Storage", nil)
	}
	storage.UpdatedAt = r.s.now()
	r.s.storages[storage.ID] = clone(storage)
	return nil
}

func (r *variantRepository) DeleteStorage(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.storages, id)
	return nil
}

func (r *variantRepository) CreatePrice(ctx context.Context, price *entity.Price) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	price.ID = newID(price.ID)
	price.CreatedAt = r.s.now()
	price.UpdatedAt = price.CreatedAt
	r.s.prices[price.ID] = clone(price)
	return nil
}

func (r *variantRepository) GetPrice(ctx context.Context, id string) (*entity.Price, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.prices[id]
	if !ok {
		return nil, errors.NotFound("Price", nil)
	}
	return clone(v), nil
}

func (r *variantRepository) GetPriceByStorageID(ctx context.Context, storageID string) (*entity.Price, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.prices {
		if v.StorageID == storageID {
			return clone(v), nil
		}
	}
	return nil, errors.NotFound("Price", nil)
}

func (r *variantRepository) ListPrices(ctx context.Context, productID string) ([]*entity.Price, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Price
	for _, v := range r.s.prices {
		if v.ProductID == productID {
			out = append(out, clone(v))
		}
	}
	return out, nil
}

func (r *variantRepository) UpdatePrice(ctx context.Context, id string, fn func(*entity.Price) error) (*entity.Price, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.prices[id]
	if !ok {
		return nil, errors.NotFound("Price", nil)
	}
	price := clone(stored)
	if err := fn(price); err != nil {
		return nil, err
	}
	price.ID = id
	price.UpdatedAt = r.s.now()
	r.s.prices[id] = clone(price)
	return price, nil
}

func (r *variantRepository) DeletePrice(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.prices, id)
	return nil
}

type inventoryRepository struct{ s *Store }

func NewInventoryRepository(s *Store) repository.InventoryRepository {
	return &inventoryRepository{s: s}
}

func (r *inventoryRepository) DecrementProductStock(ctx context.Context, productID string, qty int) (repository.StockChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return repository.StockChange{}, errors.NotFound("Product", nil)
	}
	change := repository.StockChange{Before: p.StockQuantity, After: entity.ClampedDecrement(p.StockQuantity, qty)}
	p.StockQuantity = change.After
	p.UpdatedAt = r.s.now()
	return change, nil
}

func (r *inventoryRepository) DecrementColorStock(ctx context.Context, colorID string, qty int) (repository.StockChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.colors[colorID]
	if !ok {
		return repository.StockChange{}, errors.NotFound("Color", nil)
	}
	var change repository.StockChange
	if c.SingleStockQuantity != nil {
		change = repository.StockChange{Before: *c.SingleStockQuantity, After: entity.ClampedDecrement(*c.SingleStockQuantity, qty)}
		c.SingleStockQuantity = &change.After
	} else {
		change = repository.StockChange{Before: c.StockQuantity, After: entity.ClampedDecrement(c.StockQuantity, qty)}
		c.StockQuantity = change.After
	}
	c.UpdatedAt = r.s.now()
	return change, nil
}

func (r *inventoryRepository) DecrementPriceStock(ctx context.Context, priceID string, qty int) (repository.StockChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.prices[priceID]
	if !ok {
		return repository.StockChange{}, errors.NotFound("Price", nil)
	}
	change := repository.StockChange{Before: p.StockQuantity, After: entity.ClampedDecrement(p.StockQuantity, qty)}
	p.StockQuantity = change.After
	p.UpdatedAt = r.s.now()
	return change, nil
}
