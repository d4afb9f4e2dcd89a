package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
	"telemart/pkg/utils"
)

type firestoreCategoryRepository struct {
	client *firestore.Client
}

func NewFirestoreCategoryRepository(client *firestore.Client) repository.CategoryRepository {
	return &firestoreCategoryRepository{client: client}
}

func (r *firestoreCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == "" {
		category.ID = r.client.Collection(colCategories).NewDoc().ID
	}
	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	if _, err := r.client.Collection(colCategories).Doc(category.ID).Set(ctx, category); err != nil {
		return errors.Internal("Failed to create category", err)
	}
	return nil
}

func (r *firestoreCategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return getDoc[entity.Category](ctx, r.client.Collection(colCategories).Doc(id), "Category")
}

func (r *firestoreCategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return first[entity.Category](ctx, r.client.Collection(colCategories).Where("slug", "==", slug), "Category")
}

func (r *firestoreCategoryRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	query := r.client.Collection(colCategories).Query
	if activeOnly {
		query = query.Where("isActive", "==", true)
	}
	items, err := collect[entity.Category](query.Documents(ctx), "categories")
	if err != nil {
		return nil, err
	}
	return byDisplayOrder(items, func(c *entity.Category) int { return c.DisplayOrder }), nil
}

func (r *firestoreCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	category.UpdatedAt = time.Now()
	if _, err := r.client.Collection(colCategories).Doc(category.ID).Set(ctx, category); err != nil {
		return errors.Internal("Failed to update category", err)
	}
	return nil
}

func (r *firestoreCategoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(colCategories).Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete category", err)
	}
	return nil
}

type firestoreBrandRepository struct {
	client *firestore.Client
}

func NewFirestoreBrandRepository(client *firestore.Client) repository.BrandRepository {
	return &firestoreBrandRepository{client: client}
}

func (r *firestoreBrandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	if brand.ID == "" {
		brand.ID = r.client.Collection(colBrands).NewDoc().ID
	}
	now := time.Now()
	if brand.CreatedAt.IsZero() {
		brand.CreatedAt = now
	}
	brand.UpdatedAt = now

	if _, err := r.client.Collection(colBrands).Doc(brand.ID).Set(ctx, brand); err != nil {
		return errors.Internal("Failed to create brand", err)
	}
	return nil
}

func (r *firestoreBrandRepository) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	return getDoc[entity.Brand](ctx, r.client.Collection(colBrands).Doc(id), "Brand")
}

func (r *firestoreBrandRepository) GetBySlug(ctx context.Context, slug string) (*entity.Brand, error) {
	return first[entity.Brand](ctx, r.client.Collection(colBrands).Where("slug", "==", slug), "Brand")
}

func (r *firestoreBrandRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Brand, error) {
	query := r.client.Collection(colBrands).OrderBy("name", firestore.Asc)
	items, err := collect[entity.Brand](query.Documents(ctx), "brands")
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return items, nil
	}
	active := items[:0]
	for _, b := range items {
		if b.IsActive {
			active = append(active, b)
		}
	}
	return active, nil
}

func (r *firestoreBrandRepository) Update(ctx context.Context, brand *entity.Brand) error {
	brand.UpdatedAt = time.Now()
	if _, err := r.client.Collection(colBrands).Doc(brand.ID).Set(ctx, brand); err != nil {
		return errors.Internal("Failed to update brand", err)
	}
	return nil
}

func (r *firestoreBrandRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(colBrands).Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete brand", err)
	}
	return nil
}

type firestoreCarePlanRepository struct {
	client *firestore.Client
}

func NewFirestoreCarePlanRepository(client *firestore.Client) repository.CarePlanRepository {
	return &firestoreCarePlanRepository{client: client}
}

func (r *firestoreCarePlanRepository) Create(ctx context.Context, plan *entity.CarePlan) error {
	if plan.ID == "" {
		plan.ID = r.client.Collection(colCarePlans).NewDoc().ID
	}
	now := time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	if _, err := r.client.Collection(colCarePlans).Doc(plan.ID).Set(ctx, plan); err != nil {
		return errors.Internal("Failed to create care plan", err)
	}
	return nil
}

func (r *firestoreCarePlanRepository) GetByID(ctx context.Context, id string) (*entity.CarePlan, error) {
	return getDoc[entity.CarePlan](ctx, r.client.Collection(colCarePlans).Doc(id), "Care plan")
}

func (r *firestoreCarePlanRepository) List(ctx context.Context, activeOnly bool) ([]*entity.CarePlan, error) {
	query := r.client.Collection(colCarePlans).Query
	if activeOnly {
		query = query.Where("isActive", "==", true)
	}
	items, err := collect[entity.CarePlan](query.Documents(ctx), "care plans")
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	return items, nil
}

func (r *firestoreCarePlanRepository) Update(ctx context.Context, plan *entity.CarePlan) error {
	plan.UpdatedAt = time.Now()
	if _, err := r.client.Collection(colCarePlans).Doc(plan.ID).Set(ctx, plan); err != nil {
		return errors.Internal("Failed to update care plan", err)
	}
	return nil
}

func (r *firestoreCarePlanRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(colCarePlans).Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete care plan", err)
	}
	return nil
}

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{client: client}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = r.client.Collection(colProducts).NewDoc().ID
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	if _, err := r.client.Collection(colProducts).Doc(product.ID).Set(ctx, product); err != nil {
		return errors.Internal("Failed to create product", err)
	}
	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := getDoc[entity.Product](ctx, r.client.Collection(colProducts).Doc(id), "Product")
	if err != nil {
		return nil, err
	}
	if product.DeletedAt != nil {
		return nil, errors.NotFound("Product", nil)
	}
	return product, nil
}

func (r *firestoreProductRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	items, err := collect[entity.Product](r.client.Collection(colProducts).Where("slug", "==", slug).Documents(ctx), "products")
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		if p.DeletedAt == nil {
			return p, nil
		}
	}
	return nil, errors.NotFound("Product", nil)
}

func (r *firestoreProductRepository) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.client.Collection(colProducts).Query
	if filter.CategoryID != "" {
		query = query.Where("categoryId", "==", filter.CategoryID)
	}
	if filter.BrandID != "" {
		query = query.Where("brandId", "==", filter.BrandID)
	}
	if filter.ActiveOnly {
		query = query.Where("isActive", "==", true)
	}
	if filter.OnlineOnly {
		query = query.Where("isOnline", "==", true)
	}

	all, err := collect[entity.Product](query.Documents(ctx), "products")
	if err != nil {
		return nil, 0, err
	}

	// Firestore has no substring search, so name matching runs here.
	search := strings.ToLower(filter.Search)
	products := all[:0]
	for _, p := range all {
		if p.DeletedAt != nil {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		products = append(products, p)
	}

	field, desc := "createdAt", true
	if filter.Sort != "" {
		parts := strings.Split(filter.Sort, "_")
		field = parts[0]
		desc = len(parts) > 1 && parts[1] == "desc"
	}
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if desc {
			a, b = b, a
		}
		switch field {
		case "name":
			return a.Name < b.Name
		case "basePrice":
			return a.BasePrice < b.BasePrice
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})

	start, end := utils.Window(len(products), limit, offset)
	return products[start:end], int64(len(products)), nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, id string, fn func(*entity.Product) error) (*entity.Product, error) {
	return mutateDoc(ctx, r.client, r.client.Collection(colProducts).Doc(id), "Product", func(product *entity.Product) error {
		if err := fn(product); err != nil {
			return err
		}
		product.ID = id
		product.UpdatedAt = time.Now()
		return nil
	})
}

func (r *firestoreProductRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection(colProducts).Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "isActive", Value: false},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to soft delete product", err)
	}
	return nil
}
