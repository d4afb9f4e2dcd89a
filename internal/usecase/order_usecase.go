package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/internal/domain/service"
	"telemart/pkg/errors"
	"telemart/pkg/logger"
)

type OrderUseCase struct {
	orderRepo      repository.OrderRepository
	orderItemRepo  repository.OrderItemRepository
	productRepo    repository.ProductRepository
	stockAdjuster  *StockAdjuster
	notificationUC *NotificationUseCase
	loyaltyUC      *LoyaltyUseCase
	publisher      service.EventPublisher
	now            func() time.Time
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
	stockAdjuster *StockAdjuster,
	notificationUC *NotificationUseCase,
	loyaltyUC *LoyaltyUseCase,
	publisher service.EventPublisher,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:      orderRepo,
		orderItemRepo:  orderItemRepo,
		productRepo:    productRepo,
		stockAdjuster:  stockAdjuster,
		notificationUC: notificationUC,
		loyaltyUC:      loyaltyUC,
		publisher:      publisher,
		now:            time.Now,
	}
}

type CustomerInput struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"required"`
	Address        string `json:"address" validate:"required"`
	City           string `json:"city"`
	Area           string `json:"area"`
	PaymentMethod  string `json:"payment_method" validate:"required"`
	DeliveryMethod string `json:"delivery_method" validate:"required"`
	Notes          string `json:"notes"`
}

type OrderItemInput struct {
	ProductID        string                 `json:"product_id" validate:"required"`
	ProductName      string                 `json:"product_name"`
	RegionID         string                 `json:"region_id"`
	RegionName       string                 `json:"region_name"`
	NetworkID        string                 `json:"network_id"`
	NetworkName      string                 `json:"network_name"`
	ColorID          string                 `json:"color_id"`
	ColorName        string                 `json:"color_name"`
	StorageID        string                 `json:"storage_id"`
	StorageSize      string                 `json:"storage_size"`
	UnitPrice        float64                `json:"unit_price" validate:"gte=0"`
	Quantity         int                    `json:"quantity" validate:"required,min=1"`
	Image            string                 `json:"image"`
	VariantSelection map[string]interface{} `json:"variant_selection"`
}

type CreateOrderInput struct {
	Customer     CustomerInput    `json:"customer" validate:"required"`
	Items        []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	ShippingCost float64          `json:"shipping_cost" validate:"gte=0"`
	// Computed from the items when omitted.
	TotalAmount *float64 `json:"total_amount" validate:"omitempty,gte=0"`
}

type OrderItemView struct {
	*entity.OrderItem
	LineTotal   float64 `json:"line_total"`
	ProductSlug string  `json:"product_slug,omitempty"`
}

type OrderDetail struct {
	*entity.Order
	Items []OrderItemView `json:"items"`

	Stock         AdjustmentReport `json:"-"`
	Notifications DispatchResult   `json:"-"`
}

func generateOrderNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

// CreateOrder persists the order and then its items, adjusts stock and
// dispatches notifications. Item persistence failures leave the order in
// place. Notification and event failures are logged and never fail the call.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID string, input CreateOrderInput) (*OrderDetail, error) {
	if len(input.Items) == 0 {
		return nil, errors.BadRequest("Order must contain at least one item", nil)
	}
	var itemsTotal float64
	for i, it := range input.Items {
		if it.Quantity < 1 {
			return nil, errors.BadRequest(fmt.Sprintf("Item %d: quantity must be at least 1", i+1), nil)
		}
		if it.ProductID == "" {
			return nil, errors.BadRequest(fmt.Sprintf("Item %d: product_id is required", i+1), nil)
		}
		itemsTotal += it.UnitPrice * float64(it.Quantity)
	}

	total := itemsTotal + input.ShippingCost
	if input.TotalAmount != nil {
		total = *input.TotalAmount
	}

	now := uc.now()
	order := &entity.Order{
		OrderNumber:   generateOrderNumber(now),
		UserID:        userID,
		Customer:      entity.CustomerInfo(input.Customer),
		TotalAmount:   total,
		ShippingCost:  input.ShippingCost,
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		StatusHistory: []entity.StatusHistoryEntry{{
			Status:    entity.OrderStatusPending,
			Note:      "Order placed",
			ChangedBy: userID,
			ChangedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	items := make([]*entity.OrderItem, 0, len(input.Items))
	for i, in := range input.Items {
		item := &entity.OrderItem{
			OrderID:          order.ID,
			Position:         i,
			ProductID:        in.ProductID,
			ProductName:      in.ProductName,
			RegionID:         in.RegionID,
			RegionName:       in.RegionName,
			NetworkID:        in.NetworkID,
			NetworkName:      in.NetworkName,
			ColorID:          in.ColorID,
			ColorName:        in.ColorName,
			StorageID:        in.StorageID,
			StorageSize:      in.StorageSize,
			UnitPrice:        in.UnitPrice,
			Quantity:         in.Quantity,
			Image:            in.Image,
			VariantSelection: in.VariantSelection,
			CreatedAt:        now,
		}
		uc.fillProductFields(ctx, item)
		if err := uc.orderItemRepo.Create(ctx, item); err != nil {
			logger.Error("Order %s persisted but item %s failed: %v", order.OrderNumber, in.ProductID, err)
			return nil, err
		}
		items = append(items, item)
	}

	report, err := uc.stockAdjuster.Adjust(ctx, items)
	if err != nil {
		return nil, err
	}

	dispatch := uc.notificationUC.Dispatch(ctx, orderPlacedEvent(order, len(items)))
	if err := dispatch.Err(); err != nil {
		logger.LogSideEffectError(order.OrderNumber, "notify_order_placed", err)
	}

	uc.publish(ctx, service.EventOrderPlaced, order, map[string]interface{}{
		"orderNumber": order.OrderNumber,
		"totalAmount": order.TotalAmount,
		"itemCount":   len(items),
		"userId":      order.UserID,
	})

	logger.Info("Order %s created with %d item(s)", order.OrderNumber, len(items))

	detail, err := uc.detail(ctx, order)
	if err != nil {
		return nil, err
	}
	detail.Stock = report
	detail.Notifications = dispatch
	return detail, nil
}

// fillProductFields completes display fields the client left out.
func (uc *OrderUseCase) fillProductFields(ctx context.Context, item *entity.OrderItem) {
	if item.ProductName != "" && item.Image != "" {
		return
	}
	product, err := uc.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return
	}
	if item.ProductName == "" {
		item.ProductName = product.Name
	}
	if item.Image == "" {
		item.Image = product.PrimaryImage()
	}
}

func (uc *OrderUseCase) detail(ctx context.Context, order *entity.Order) (*OrderDetail, error) {
	items, err := uc.orderItemRepo.ListByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	slugs := make(map[string]string)
	views := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		slug, ok := slugs[item.ProductID]
		if !ok {
			if product, err := uc.productRepo.GetByID(ctx, item.ProductID); err == nil {
				slug = product.Slug
			}
			slugs[item.ProductID] = slug
		}
		views = append(views, OrderItemView{
			OrderItem:   item,
			LineTotal:   item.LineTotal(),
			ProductSlug: slug,
		})
	}

	return &OrderDetail{Order: order, Items: views}, nil
}

func (uc *OrderUseCase) publish(ctx context.Context, eventType string, order *entity.Order, payload map[string]interface{}) {
	if uc.publisher == nil {
		return
	}
	event := service.DomainEvent{
		Type:        eventType,
		AggregateID: order.ID,
		OccurredAt:  uc.now(),
		Payload:     payload,
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		logger.LogSideEffectError(order.OrderNumber, "publish_"+eventType, err)
	}
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*OrderDetail, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, order)
}

func (uc *OrderUseCase) GetOrderByNumber(ctx context.Context, orderNumber string) (*OrderDetail, error) {
	order, err := uc.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, order)
}

// GetUserOrder returns the order only when it belongs to userID.
func (uc *OrderUseCase) GetUserOrder(ctx context.Context, userID, id string) (*OrderDetail, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, errors.Forbidden("You don't have access to this order", nil)
	}
	return uc.detail(ctx, order)
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	if filter.Status != "" && !entity.IsValidOrderStatus(filter.Status) {
		return nil, 0, errors.BadRequest("Invalid order status", nil)
	}
	if filter.PaymentStatus != "" && !entity.IsValidPaymentStatus(filter.PaymentStatus) {
		return nil, 0, errors.BadRequest("Invalid payment status", nil)
	}
	return uc.orderRepo.List(ctx, filter, limit, offset)
}

func (uc *OrderUseCase) ListUserOrders(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.List(ctx, repository.OrderFilter{UserID: userID}, limit, offset)
}

// UpdateOrderStatus appends a history entry. Customer notification, event
// publishing and the loyalty award on delivery are best-effort.
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, id, status, note, actor string) (*entity.Order, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, errors.BadRequest("Invalid order status", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	now := uc.now()
	order.Status = status
	order.StatusHistory = append(order.StatusHistory, entity.StatusHistoryEntry{
		Status:    status,
		Note:      note,
		ChangedBy: actor,
		ChangedAt: now,
	})
	order.UpdatedAt = now

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if res := uc.notificationUC.Dispatch(ctx, orderStatusEvent(order)); res.Err() != nil {
		logger.LogSideEffectError(order.OrderNumber, "notify_status_change", res.Err())
	}

	uc.publish(ctx, service.EventOrderStatusChanged, order, map[string]interface{}{
		"orderNumber": order.OrderNumber,
		"from":        previous,
		"to":          status,
	})

	if status == entity.OrderStatusDelivered && previous != entity.OrderStatusDelivered && order.UserID != "" && uc.loyaltyUC != nil {
		if _, err := uc.loyaltyUC.AwardForOrder(ctx, order); err != nil {
			logger.LogSideEffectError(order.OrderNumber, "loyalty_award", err)
		}
	}

	return order, nil
}

func (uc *OrderUseCase) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) (*entity.Order, error) {
	if !entity.IsValidPaymentStatus(paymentStatus) {
		return nil, errors.BadRequest("Invalid payment status", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.PaymentStatus = paymentStatus
	order.UpdatedAt = uc.now()
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes the order record only. Its items stay behind.
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	if items, err := uc.orderItemRepo.ListByOrderID(ctx, id); err == nil && len(items) > 0 {
		logger.Warn("Order %s deleted, %d item(s) left orphaned", order.OrderNumber, len(items))
	}
	return nil
}

type TrackingStage struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Completed bool       `json:"completed"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type OrderTracking struct {
	OrderNumber   string          `json:"order_number"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Cancelled     bool            `json:"cancelled"`
	Stages        []TrackingStage `json:"stages"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

var trackingStages = []struct {
	key, label string
	reachedBy  map[string]bool
}{
	{"placed", "Order Placed", nil},
	{"confirmed", "Confirmed", statusSet(entity.OrderStatusConfirmed, entity.OrderStatusProcessing, entity.OrderStatusShipped, entity.OrderStatusOutForDelivery, entity.OrderStatusDelivered)},
	{"shipped", "Shipped", statusSet(entity.OrderStatusShipped, entity.OrderStatusOutForDelivery, entity.OrderStatusDelivered)},
	{"out_for_delivery", "Out for Delivery", statusSet(entity.OrderStatusOutForDelivery, entity.OrderStatusDelivered)},
	{"delivered", "Delivered", statusSet(entity.OrderStatusDelivered)},
}

func statusSet(statuses ...string) map[string]bool {
	m := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		m[s] = true
	}
	return m
}

// TrackOrder looks the reference up as an order number, then as an id.
// Completed stages all carry the order's creation time; per-stage times are
// not recorded.
func (uc *OrderUseCase) TrackOrder(ctx context.Context, ref string) (*OrderTracking, error) {
	order, err := uc.orderRepo.GetByOrderNumber(ctx, ref)
	if errors.IsNotFound(err) {
		order, err = uc.orderRepo.GetByID(ctx, ref)
	}
	if err != nil {
		return nil, err
	}

	tracking := &OrderTracking{
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Cancelled:     order.Status == entity.OrderStatusCancelled,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}

	for _, stage := range trackingStages {
		completed := stage.reachedBy == nil || stage.reachedBy[order.Status]
		ts := TrackingStage{Key: stage.key, Label: stage.label, Completed: completed}
		if completed {
			createdAt := order.CreatedAt
			ts.Timestamp = &createdAt
		}
		tracking.Stages = append(tracking.Stages, ts)
	}

	return tracking, nil
}
