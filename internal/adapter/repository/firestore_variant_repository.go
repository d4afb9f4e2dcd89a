package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type firestoreVariantRepository struct {
	client *firestore.Client
}

func NewFirestoreVariantRepository(client *firestore.Client) repository.VariantRepository {
	return &firestoreVariantRepository{client: client}
}

func (r *firestoreVariantRepository) ref(collection, id string) *firestore.DocumentRef {
	return r.client.Collection(collection).Doc(id)
}

func (r *firestoreVariantRepository) newID(collection, id string) string {
	if id != "" {
		return id
	}
	return r.client.Collection(collection).NewDoc().ID
}

func (r *firestoreVariantRepository) byProduct(collection, productID string) firestore.Query {
	return r.client.Collection(collection).Where("productId", "==", productID)
}

func (r *firestoreVariantRepository) CreateRegion(ctx context.Context, region *entity.Region) error {
	region.ID = r.newID(colRegions, region.ID)
	region.CreatedAt = time.Now()
	region.UpdatedAt = region.CreatedAt
	return setDoc(ctx, r.ref(colRegions, region.ID), region, "create region")
}

func (r *firestoreVariantRepository) GetRegion(ctx context.Context, id string) (*entity.Region, error) {
	return getDoc[entity.Region](ctx, r.ref(colRegions, id), "Region")
}

func (r *firestoreVariantRepository) ListRegions(ctx context.Context, productID string) ([]*entity.Region, error) {
	items, err := collect[entity.Region](r.byProduct(colRegions, productID).Documents(ctx), "regions")
	if err != nil {
		return nil, err
	}
	return byDisplayOrder(items, func(v *entity.Region) int { return v.DisplayOrder }), nil
}

func (r *firestoreVariantRepository) UpdateRegion(ctx context.Context, region *entity.Region) error {
	region.UpdatedAt = time.Now()
	return updateDoc(ctx, r.ref(colRegions, region.ID), region, "Region")
}

func (r *firestoreVariantRepository) DeleteRegion(ctx context.Context, id string) error {
	return deleteDoc(ctx, r.ref(colRegions, id), "region")
}

func (r *firestoreVariantRepository) CreateNetwork(ctx context.Context, network *entity.Network) error {
	network.ID = r.newID(colNetworks, network.ID)
	network.CreatedAt = time.Now()
	network.UpdatedAt = network.CreatedAt
	return setDoc(ctx, r.ref(colNetworks, network.ID), network, "create network")
}

func (r *firestoreVariantRepository) GetNetwork(ctx context.Context, id string) (*entity.Network, error) {
	return getDoc[entity.Network](ctx, r.ref(colNetworks, id), "Network")
}

func (r *firestoreVariantRepository) ListNetworks(ctx context.Context, productID string) ([]*entity.Network, error) {
	items, err := collect[entity.Network](r.byProduct(colNetworks, productID).Documents(ctx), "networks")
	if err != nil {
		return nil, err
	}
	return byDisplayOrder(items, func(v *entity.Network) int { return v.DisplayOrder }), nil
}

func (r *firestoreVariantRepository) UpdateNetwork(ctx context.Context, network *entity.Network) error {
	network.UpdatedAt = time.Now()
	return updateDoc(ctx, r.ref(colNetworks, network.ID), network, "Network")
}

func (r *firestoreVariantRepository) DeleteNetwork(ctx context.Context, id string) error {
	return deleteDoc(ctx, r.ref(colNetworks, id), "network")
}

func (r *firestoreVariantRepository) CreateColor(ctx context.Context, color *entity.Color) error {
	color.ID = r.newID(colColors, color.ID)
	color.CreatedAt = time.Now()
	color.UpdatedAt = color.CreatedAt
	return setDoc(ctx, r.ref(colColors, color.ID), color, "create color")
}

func (r *firestoreVariantRepository) GetColor(ctx context.Context, id string) (*entity.Color, error) {
	return getDoc[entity.Color](ctx, r.ref(colColors, id), "Color")
}

func (r *firestoreVariantRepository) FindColor(ctx context.Context, q repository.ColorQuery) (*entity.Color, error) {
	query := r.client.Collection(colColors).Query
	if q.ProductID != "" {
		query = query.Where("productId", "==", q.ProductID)
	}
	if q.RegionID != "" {
		query = query.Where("regionId", "==", q.RegionID)
	}
	if q.NetworkID != "" {
		query = query.Where("networkId", "==", q.NetworkID)
	}
	if q.Name != "" {
		query = query.Where("name", "==", q.Name)
	}
	items, err := collect[entity.Color](query.Documents(ctx), "colors")
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.NotFound("Color", nil)
	}
	return byDisplayOrder(items, func(v *entity.Color) int { return v.DisplayOrder })[0], nil
}

func (r *firestoreVariantRepository) ListColors(ctx context.Context, productID string) ([]*entity.Color, error) {
	items, err := collect[entity.Color](r.byProduct(colColors, productID).Documents(ctx), "colors")
	if err != nil {
		return nil, err
	}
	return byDisplayOrder(items, func(v *entity.Color) int { return v.DisplayOrder }), nil
}

func (r *firestoreVariantRepository) UpdateColor(ctx context.Context, id string, fn func(*entity.Color) error) (*entity.Color, error) {
	return mutateDoc(ctx, r.client, r.ref(colColors, id), "Color", func(color *entity.Color) error {
		if err := fn(color); err != nil {
			return err
		}
		color.ID = id
		color.UpdatedAt = time.Now()
		return nil
	})
}

func (r *firestoreVariantRepository) DeleteColor(ctx context.Context, id string) error {
	return deleteDoc(ctx, r.ref(colColors, id), "color")
}

func (r *firestoreVariantRepository) CreateStorage(ctx context.Context, storage *entity.Storage) error {
	storage.ID = r.newID(colStorages, storage.ID)
	storage.CreatedAt = time.Now()
	storage.UpdatedAt = storage.CreatedAt
	return setDoc(ctx, r.ref(colStorages, storage.ID), storage, "create storage")
}

func (r *firestoreVariantRepository) GetStorage(ctx context.Context, id string) (*entity.Storage, error) {
	return getDoc[entity.Storage](ctx, r.ref(colStorages, id), "Storage")
}

func (r *firestoreVariantRepository) ListStorages(ctx context.Context, productID string) ([]*entity.Storage, error) {
	items, err := collect[entity.Storage](r.byProduct(colStorages, productID).Documents(ctx), "storages")
	if err != nil {
		return nil, err
	}
	return byDisplayOrder(items, func(v *entity.Storage) int { return v.DisplayOrder }), nil
}

func (r *firestoreVariantRepository) UpdateStorage(ctx context.Context, storage *entity.Storage) error {
	storage.UpdatedAt = time.Now()
	return updateDoc(ctx, r.ref(colStorages, storage.ID), storage, "Storage")
}

func (r *firestoreVariantRepository) DeleteStorage(ctx context.Context, id string) error {
	return deleteDoc(ctx, r.ref(colStorages, id), "storage")
}

func (r *firestoreVariantRepository) CreatePrice(ctx context.Context, price *entity.Price) error {
	price.ID = r.newID(colPrices, price.ID)
	price.CreatedAt = time.Now()
	price.UpdatedAt = price.CreatedAt
	return setDoc(ctx, r.ref(colPrices, price.ID), price, "create price")
}

func (r *firestoreVariantRepository) GetPrice(ctx context.Context, id string) (*entity.Price, error) {
	return getDoc[entity.Price](ctx, r.ref(colPrices, id), "Price")
}

func (r *firestoreVariantRepository) GetPriceByStorageID(ctx context.Context, storageID string) (*entity.Price, error) {
	return first[entity.Price](ctx, r.client.Collection(colPrices).Where("storageId", "==", storageID), "Price")
}

func (r *firestoreVariantRepository) ListPrices(ctx context.Context, productID string) ([]*entity.Price, error) {
	return collect[entity.Price](r.byProduct(colPrices, productID).Documents(ctx), "prices")
}

func (r *firestoreVariantRepository) UpdatePrice(ctx context.Context, id string, fn func(*entity.Price) error) (*entity.Price, error) {
	return mutateDoc(ctx, r.client, r.ref(colPrices, id), "Price", func(price *entity.Price) error {
		if err := fn(price); err != nil {
			return err
		}
		price.ID = id
		price.UpdatedAt = time.Now()
		return nil
	})
}

func (r *firestoreVariantRepository) DeletePrice(ctx context.Context, id string) error {
	return deleteDoc(ctx, r.ref(colPrices, id), "price")
}
