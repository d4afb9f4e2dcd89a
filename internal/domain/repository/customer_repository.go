package repository

import (
	"context"

	"telemart/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type WarrantyRepository interface {
	Create(ctx context.Context, record *entity.WarrantyRecord) error
	GetByID(ctx context.Context, id string) (*entity.WarrantyRecord, error)
	GetByIMEI(ctx context.Context, imei string) (*entity.WarrantyRecord, error)
	GetBySerial(ctx context.Context, serial string) (*entity.WarrantyRecord, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.WarrantyRecord, int64, error)
	Update(ctx context.Context, record *entity.WarrantyRecord) error
	Delete(ctx context.Context, id string) error
}

type LoyaltyRepository interface {
	Get(ctx context.Context, userID string) (*entity.LoyaltyPoints, error)
	// Apply runs fn on the user's account (a zero account when none exists)
	// and saves the result atomically.
	Apply(ctx context.Context, userID string, fn func(*entity.LoyaltyPoints) error) (*entity.LoyaltyPoints, error)
}
