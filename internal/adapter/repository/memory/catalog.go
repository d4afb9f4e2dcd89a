package memory

import (
	"context"
	"sort"
	"strings"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
	"telemart/pkg/utils"
)

type categoryRepository struct{ s *Store }

func NewCategoryRepository(s *Store) repository.CategoryRepository {
	return &categoryRepository{s: s}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	category.ID = newID(category.ID)
	now := r.s.now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now
	r.s.categories[category.ID] = clone(category)
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, errors.NotFound("Category", nil)
	}
	return clone(c), nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Slug == slug {
			return clone(c), nil
		}
	}
	return nil, errors.NotFound("Category", nil)
}

func (r *categoryRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Category
	for _, c := range r.s.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, clone(c))
	}
	return byDisplayOrder(out, func(c *entity.Category) int { return c.DisplayOrder }), nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; !ok {
		return errors.NotFound("Category", nil)
	}
	category.UpdatedAt = r.s.now()
	r.s.categories[category.ID] = clone(category)
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	return nil
}

type brandRepository struct{ s *Store }

func NewBrandRepository(s *Store) repository.BrandRepository {
	return &brandRepository{s: s}
}

func (r *brandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	brand.ID = newID(brand.ID)
	now := r.s.now()
	if brand.CreatedAt.IsZero() {
		brand.CreatedAt = now
	}
	brand.UpdatedAt = now
	r.s.brands[brand.ID] = clone(brand)
	return nil
}

func (r *brandRepository) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.brands[id]
	if !ok {
		return nil, errors.NotFound("Brand", nil)
	}
	return clone(b), nil
}

func (r *brandRepository) GetBySlug(ctx context.Context, slug string) (*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.brands {
		if b.Slug == slug {
			return clone(b), nil
		}
	}
	return nil, errors.NotFound("Brand", nil)
}

func (r *brandRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Brand
	for _, b := range r.s.brands {
		if activeOnly && !b.IsActive {
			continue
		}
		out = append(out, clone(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *brandRepository) Update(ctx context.Context, brand *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.brands[brand.ID]; !ok {
		return errors.NotFound("Brand", nil)
	}
	brand.UpdatedAt = r.s.now()
	r.s.brands[brand.ID] = clone(brand)
	return nil
}

func (r *brandRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.brands, id)
	return nil
}

type carePlanRepository struct{ s *Store }

func NewCarePlanRepository(s *Store) repository.CarePlanRepository {
	return &carePlanRepository{s: s}
}

func (r *carePlanRepository) Create(ctx context.Context, plan *entity.CarePlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	plan.ID = newID(plan.ID)
	now := r.s.now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now
	r.s.carePlans[plan.ID] = clone(plan)
	return nil
}

func (r *carePlanRepository) GetByID(ctx context.Context, id string) (*entity.CarePlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.carePlans[id]
	if !ok {
		return nil, errors.NotFound("Care plan", nil)
	}
	return clone(p), nil
}

func (r *carePlanRepository) List(ctx context.Context, activeOnly bool) ([]*entity.CarePlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.CarePlan
	for _, p := range r.s.carePlans {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (r *carePlanRepository) Update(ctx context.Context, plan *entity.CarePlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.carePlans[plan.ID]; !ok {
		return errors.NotFound("Care plan", nil)
	}
	plan.UpdatedAt = r.s.now()
	r.s.carePlans[plan.ID] = clone(plan)
	return nil
}

func (r *carePlanRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.carePlans, id)
	return nil
}

type productRepository struct{ s *Store }

func NewProductRepository(s *Store) repository.ProductRepository {
	return &productRepository{s: s}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	product.ID = newID(product.ID)
	now := r.s.now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, errors.NotFound("Product", nil)
	}
	return cloneProduct(p), nil
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Slug == slug && p.DeletedAt == nil {
			return cloneProduct(p), nil
		}
	}
	return nil, errors.NotFound("Product", nil)
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	r.s.mu.RLock()
	var out []*entity.Product
	search := strings.ToLower(filter.Search)
	for _, p := range r.s.products {
		switch {
		case p.DeletedAt != nil:
			continue
		case filter.CategoryID != "" && p.CategoryID != filter.CategoryID:
			continue
		case filter.BrandID != "" && p.BrandID != filter.BrandID:
			continue
		case filter.ActiveOnly && !p.IsActive:
			continue
		case filter.OnlineOnly && !p.IsOnline:
			continue
		case search != "" && !strings.Contains(strings.ToLower(p.Name), search):
			continue
		}
		out = append(out, cloneProduct(p))
	}
	r.s.mu.RUnlock()

	field, desc := "createdAt", true
	if filter.Sort != "" {
		parts := strings.Split(filter.Sort, "_")
		field = parts[0]
		desc = len(parts) > 1 && parts[1] == "desc"
	}
	less := func(a, b *entity.Product) bool {
		switch field {
		case "name":
			return a.Name < b.Name
		case "basePrice":
			return a.BasePrice < b.BasePrice
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})

	start, end := utils.Window(len(out), limit, offset)
	return out[start:end], int64(len(out)), nil
}

func (r *productRepository) Update(ctx context.Context, id string, fn func(*entity.Product) error) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	product := cloneProduct(stored)
	if err := fn(product); err != nil {
		return nil, err
	}
	product.ID = id
	product.UpdatedAt = r.s.now()
	r.s.products[id] = cloneProduct(product)
	return product, nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	now := r.s.now()
	p.DeletedAt = &now
	p.IsActive = false
	p.UpdatedAt = now
	return nil
}
