package memory

import (
	"context"
	"sort"
	"time"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type orderRepository struct{ s *Store }

func NewOrderRepository(s *Store) repository.OrderRepository {
	return &orderRepository{s: s}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order.ID = newID(order.ID)
	for _, o := range r.s.orders {
		if o.OrderNumber == order.OrderNumber {
			return errors.Conflict("Order number already exists")
		}
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return cloneOrder(o), nil
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.orders {
		if o.OrderNumber == orderNumber {
			return cloneOrder(o), nil
		}
	}
	return nil, errors.NotFound("Order", nil)
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Order
	for _, o := range r.s.orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.PaymentStatus != "" && o.PaymentStatus != filter.PaymentStatus {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	items, total := page(out, func(o *entity.Order) time.Time { return o.CreatedAt }, limit, offset)
	return items, total, nil
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[order.ID]; !ok {
		return errors.NotFound("Order", nil)
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

// Delete leaves the order's items in place.
func (r *orderRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return errors.NotFound("Order", nil)
	}
	delete(r.s.orders, id)
	return nil
}

type orderItemRepository struct{ s *Store }

func NewOrderItemRepository(s *Store) repository.OrderItemRepository {
	return &orderItemRepository{s: s}
}

func (r *orderItemRepository) Create(ctx context.Context, item *entity.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = newID(item.ID)
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.s.now()
	}
	r.s.orderItems[item.ID] = clone(item)
	return nil
}

func (r *orderItemRepository) ListByOrderID(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.OrderItem
	for _, it := range r.s.orderItems {
		if it.OrderID == orderID {
			out = append(out, clone(it))
		}
	}
	sortOrderItems(out)
	return out, nil
}

// sortOrderItems restores submission order. ID breaks ties for items
// written before positions were recorded.
func sortOrderItems(items []*entity.OrderItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Position != items[j].Position {
			return items[i].Position < items[j].Position
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
