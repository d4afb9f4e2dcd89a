package repository

import (
	"context"

	"telemart/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}

type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Brand, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.Brand, error)
	Update(ctx context.Context, brand *entity.Brand) error
	Delete(ctx context.Context, id string) error
}

type CarePlanRepository interface {
	Create(ctx context.Context, plan *entity.CarePlan) error
	GetByID(ctx context.Context, id string) (*entity.CarePlan, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.CarePlan, error)
	Update(ctx context.Context, plan *entity.CarePlan) error
	Delete(ctx context.Context, id string) error
}

type ProductFilter struct {
	CategoryID string
	BrandID    string
	ActiveOnly bool
	OnlineOnly bool
	Search     string
	Sort       string // field_asc | field_desc
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int64, error)
	// Update applies fn to the stored product and saves the result in one
	// step, so a stock decrement cannot land between the read and the write.
	Update(ctx context.Context, id string, fn func(*entity.Product) error) (*entity.Product, error)
	SoftDelete(ctx context.Context, id string) error
}
