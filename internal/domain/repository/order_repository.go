package repository

import (
	"context"

	"telemart/internal/domain/entity"
)

type OrderFilter struct {
	UserID        string
	Status        string
	PaymentStatus string
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]*entity.Order, int64, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
}

type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
}
