package repository

import (
	"context"

	"telemart/internal/domain/entity"
)

type CorporateDealRepository interface {
	Create(ctx context.Context, deal *entity.CorporateDeal) error
	GetByID(ctx context.Context, id string) (*entity.CorporateDeal, error)
	GetByCompanyName(ctx context.Context, companyName string) (*entity.CorporateDeal, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.CorporateDeal, int64, error)
	Update(ctx context.Context, deal *entity.CorporateDeal) error
}

type GiveawayRepository interface {
	Create(ctx context.Context, entry *entity.GiveawayEntry) error
	GetByID(ctx context.Context, id string) (*entity.GiveawayEntry, error)
	List(ctx context.Context, campaign string, limit, offset int) ([]*entity.GiveawayEntry, int64, error)
	Update(ctx context.Context, entry *entity.GiveawayEntry) error
}

type StockRequestRepository interface {
	Create(ctx context.Context, request *entity.StockRequest) error
	GetByID(ctx context.Context, id string) (*entity.StockRequest, error)
	List(ctx context.Context, productID, status string, limit, offset int) ([]*entity.StockRequest, int64, error)
	Update(ctx context.Context, request *entity.StockRequest) error
}
