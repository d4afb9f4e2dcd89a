package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{client: client}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = r.client.Collection(colOrders).NewDoc().ID
	}
	if _, err := r.client.Collection(colOrders).Doc(order.ID).Create(ctx, order); err != nil {
		return errors.Internal("Failed to create order", err)
	}
	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return getDoc[entity.Order](ctx, r.client.Collection(colOrders).Doc(id), "Order")
}

func (r *firestoreOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	return first[entity.Order](ctx, r.client.Collection(colOrders).Where("orderNumber", "==", orderNumber), "Order")
}

func (r *firestoreOrderRepository) List(ctx context.Context, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection(colOrders).Query
	if filter.UserID != "" {
		query = query.Where("userId", "==", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status", "==", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("paymentStatus", "==", filter.PaymentStatus)
	}

	orders, err := collect[entity.Order](query.Documents(ctx), "orders")
	if err != nil {
		return nil, 0, err
	}
	items, total := newestPage(orders, func(o *entity.Order) time.Time { return o.CreatedAt }, limit, offset)
	return items, total, nil
}

func (r *firestoreOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	return updateDoc(ctx, r.client.Collection(colOrders).Doc(order.ID), order, "Order")
}

// Delete removes the order document only; order_items are left in place.
func (r *firestoreOrderRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(colOrders).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return errors.NotFound("Order", err)
		}
		return errors.Internal("Failed to get order", err)
	}
	return deleteDoc(ctx, ref, "order")
}

type firestoreOrderItemRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderItemRepository(client *firestore.Client) repository.OrderItemRepository {
	return &firestoreOrderItemRepository{client: client}
}

func (r *firestoreOrderItemRepository) Create(ctx context.Context, item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = r.client.Collection(colOrderItems).NewDoc().ID
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	return setDoc(ctx, r.client.Collection(colOrderItems).Doc(item.ID), item, "create order item")
}

func (r *firestoreOrderItemRepository) ListByOrderID(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	items, err := collect[entity.OrderItem](r.client.Collection(colOrderItems).Where("orderId", "==", orderID).Documents(ctx), "order items")
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Position != items[j].Position {
			return items[i].Position < items[j].Position
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}
