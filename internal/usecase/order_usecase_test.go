package usecase

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/internal/domain/service"
	"telemart/pkg/errors"
)

func TestCreateOrderDecrementsStorageStockAndNotifies(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 10)
	assert.Equal(t, "phones", cat.category.Slug)

	detail, err := e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{
		Customer:     testCustomer(),
		Items:        []OrderItemInput{cat.storageItem(2)},
		ShippingCost: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, detail.Status)
	assert.Equal(t, entity.PaymentStatusPending, detail.PaymentStatus)
	assert.Equal(t, 1060.0, detail.TotalAmount)
	require.Len(t, detail.StatusHistory, 1)
	assert.Equal(t, entity.OrderStatusPending, detail.StatusHistory[0].Status)

	require.Len(t, detail.Items, 1)
	assert.Equal(t, "X1", detail.Items[0].ProductName)
	assert.Equal(t, "x1", detail.Items[0].ProductSlug)
	assert.Equal(t, "https://cdn.test/x1.png", detail.Items[0].Image)
	assert.Equal(t, 1000.0, detail.Items[0].LineTotal)

	price, err := e.variantRepo.GetPriceByStorageID(ctx, cat.storage.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, price.StockQuantity)

	color, err := e.variantRepo.GetColor(ctx, cat.color.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, color.StockQuantity, "color stock is not touched when a storage record exists")

	product, err := e.productRepo.GetByID(ctx, cat.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, product.StockQuantity)

	require.Len(t, detail.Stock.Adjustments, 1)
	adj := detail.Stock.Adjustments[0]
	assert.Equal(t, StockLevelStorage, adj.Level)
	assert.Equal(t, cat.price.ID, adj.RecordID)
	assert.Equal(t, 10, adj.Before)
	assert.Equal(t, 8, adj.After)

	assert.NoError(t, detail.Notifications.Err())
	assert.Len(t, detail.Notifications.Created(), 2)

	_, adminTotal, err := e.notificationRepo.ListAdmin(ctx, false, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), adminTotal)
	userNotes, userTotal, err := e.notificationRepo.ListByUser(ctx, "user-1", false, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userTotal)
	assert.Equal(t, entity.NotificationOrderPlaced, userNotes[0].Type)
	assert.Equal(t, detail.OrderNumber, userNotes[0].Metadata["orderNumber"])

	assert.Equal(t, []string{"user-1"}, e.pusher.users)
	assert.Equal(t, 1, e.pusher.admins)
	assert.Equal(t, []string{service.EventOrderPlaced}, e.publisher.types())
}

func TestCreateGuestOrderNotifiesAdminsOnly(t *testing.T) {
	e := newTestEnv(t)
	cat := e.seedPhone(t, 10)

	detail, err := e.orders.CreateOrder(context.Background(), "", CreateOrderInput{
		Customer: testCustomer(),
		Items:    []OrderItemInput{cat.storageItem(1)},
	})
	require.NoError(t, err)

	created := detail.Notifications.Created()
	require.Len(t, created, 1)
	assert.True(t, created[0].IsAdmin)
	assert.Empty(t, e.pusher.users)
}

func TestCreateOrderUsesExplicitTotal(t *testing.T) {
	e := newTestEnv(t)
	cat := e.seedPhone(t, 10)
	total := 900.0

	detail, err := e.orders.CreateOrder(context.Background(), "user-1", CreateOrderInput{
		Customer:     testCustomer(),
		Items:        []OrderItemInput{cat.storageItem(2)},
		ShippingCost: 60,
		TotalAmount:  &total,
	})
	require.NoError(t, err)
	assert.Equal(t, 900.0, detail.TotalAmount)
}

func TestCreateOrderValidatesItems(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{Customer: testCustomer()})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{
		Customer: testCustomer(),
		Items:    []OrderItemInput{{ProductID: "p1", Quantity: 0}},
	})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, total, err := e.orderRepo.List(ctx, repository.OrderFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateOrderClampsStockAtZero(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	category, err := e.catalog.CreateCategory(ctx, CategoryInput{Name: "Accessories"})
	require.NoError(t, err)
	product, err := e.catalog.CreateProduct(ctx, ProductInput{Name: "Charger", CategoryID: category.ID, BasePrice: 20, StockQuantity: intPtr(2)})
	require.NoError(t, err)

	detail, err := e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{
		Customer: testCustomer(),
		Items:    []OrderItemInput{{ProductID: product.ID, UnitPrice: 20, Quantity: 5}},
	})
	require.NoError(t, err)

	stored, err := e.productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.StockQuantity)

	adj := detail.Stock.Adjustments[0]
	assert.Equal(t, StockLevelProduct, adj.Level)
	assert.Equal(t, 2, adj.Before)
	assert.Equal(t, 0, adj.After)
}

func TestCreateOrderReportsUnresolvedStock(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 10)

	item := cat.storageItem(1)
	item.StorageID = "missing-storage"
	detail, err := e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{
		Customer: testCustomer(),
		Items:    []OrderItemInput{item},
	})
	require.NoError(t, err)

	unresolved := detail.Stock.Unresolved()
	require.Len(t, unresolved, 1)
	assert.Equal(t, StockLevelStorage, unresolved[0].Level)

	color, err := e.variantRepo.GetColor(ctx, cat.color.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, color.StockQuantity)
	product, err := e.productRepo.GetByID(ctx, cat.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, product.StockQuantity)
}

func TestOrderNumbersAreUnique(t *testing.T) {
	e := newTestEnv(t)
	cat := e.seedPhone(t, 100)
	pattern := regexp.MustCompile(`^ORD-\d+-[0-9a-f]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		detail, err := e.orders.CreateOrder(context.Background(), "user-1", CreateOrderInput{
			Customer: testCustomer(),
			Items:    []OrderItemInput{cat.storageItem(1)},
		})
		require.NoError(t, err)
		assert.Regexp(t, pattern, detail.OrderNumber)
		assert.False(t, seen[detail.OrderNumber], "duplicate order number %s", detail.OrderNumber)
		seen[detail.OrderNumber] = true
	}
}

func TestGetOrderIsStableAcrossReads(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 10)
	names := []string{"a", "b", "c", "d", "e", "f"}
	var inputs []OrderItemInput
	for _, name := range names {
		item := cat.storageItem(1)
		item.ProductName = name
		item.Image = "/img/" + name + ".png"
		inputs = append(inputs, item)
	}
	created, err := e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{
		Customer: testCustomer(),
		Items:    inputs,
	})
	require.NoError(t, err)
	assert.Equal(t, names, itemNames(created.Items))

	first, err := e.orders.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := e.orders.GetOrder(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, names, itemNames(again.Items))
		assert.Equal(t, first, again)
	}

	byNumber, err := e.orders.GetOrderByNumber(ctx, created.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, first, byNumber)

	price, err := e.variantRepo.GetPriceByStorageID(ctx, cat.storage.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, price.StockQuantity, "reads never touch stock")
}

func itemNames(items []OrderItemView) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ProductName)
	}
	return out
}

func TestCreateOrderSurvivesNotificationFailure(t *testing.T) {
	e := newTestEnv(t, withFailingNotifications())
	ctx := context.Background()
	cat := e.seedPhone(t, 10)

	detail, err := e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{
		Customer: testCustomer(),
		Items:    []OrderItemInput{cat.storageItem(3)},
	})
	require.NoError(t, err)
	assert.Error(t, detail.Notifications.Err())
	assert.Empty(t, detail.Notifications.Created())

	price, err := e.variantRepo.GetPriceByStorageID(ctx, cat.storage.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, price.StockQuantity)
}

func TestGetUserOrderRejectsOtherUsers(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 10)
	created, err := e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{
		Customer: testCustomer(),
		Items:    []OrderItemInput{cat.storageItem(1)},
	})
	require.NoError(t, err)

	_, err = e.orders.GetUserOrder(ctx, "user-2", created.ID)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	own, err := e.orders.GetUserOrder(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, own.ID)

	orders, total, err := e.orders.ListUserOrders(ctx, "user-2", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)
}

func TestUpdateOrderStatus(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 10)
	created, err := e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{
		Customer: testCustomer(),
		Items:    []OrderItemInput{cat.storageItem(2)},
	})
	require.NoError(t, err)

	_, err = e.orders.UpdateOrderStatus(ctx, created.ID, "lost", "", "admin-1")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	order, err := e.orders.UpdateOrderStatus(ctx, created.ID, entity.OrderStatusDelivered, "Handed over", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, order.Status)
	require.Len(t, order.StatusHistory, 2)
	assert.Equal(t, "admin-1", order.StatusHistory[1].ChangedBy)

	_, unread, err := e.notificationRepo.ListByUser(ctx, "user-1", true, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	acct, err := e.loyalty.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, acct.Points)

	// delivering twice must not award twice
	_, err = e.orders.UpdateOrderStatus(ctx, created.ID, entity.OrderStatusDelivered, "", "admin-1")
	require.NoError(t, err)
	acct, err = e.loyalty.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, acct.Points)

	assert.Contains(t, e.publisher.types(), service.EventOrderStatusChanged)
}

func TestUpdatePaymentStatus(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 10)
	created, err := e.orders.CreateOrder(ctx, "", CreateOrderInput{
		Customer: testCustomer(),
		Items:    []OrderItemInput{cat.storageItem(1)},
	})
	require.NoError(t, err)

	_, err = e.orders.UpdatePaymentStatus(ctx, created.ID, "maybe")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	order, err := e.orders.UpdatePaymentStatus(ctx, created.ID, entity.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, order.PaymentStatus)
}

func TestDeleteOrderLeavesItems(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 10)
	created, err := e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{
		Customer: testCustomer(),
		Items:    []OrderItemInput{cat.storageItem(1)},
	})
	require.NoError(t, err)

	require.NoError(t, e.orders.DeleteOrder(ctx, created.ID))

	_, err = e.orders.GetOrder(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))

	items, err := e.orderItemRepo.ListByOrderID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	assert.True(t, errors.IsNotFound(e.orders.DeleteOrder(ctx, created.ID)))
}

func TestTrackOrder(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 10)
	created, err := e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{
		Customer: testCustomer(),
		Items:    []OrderItemInput{cat.storageItem(1)},
	})
	require.NoError(t, err)
	_, err = e.orders.UpdateOrderStatus(ctx, created.ID, entity.OrderStatusShipped, "", "admin-1")
	require.NoError(t, err)

	byNumber, err := e.orders.TrackOrder(ctx, created.OrderNumber)
	require.NoError(t, err)
	byID, err := e.orders.TrackOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, byNumber, byID)

	assert.False(t, byNumber.Cancelled)
	require.Len(t, byNumber.Stages, 5)
	completed := map[string]bool{}
	for _, s := range byNumber.Stages {
		completed[s.Key] = s.Completed
		if s.Completed {
			require.NotNil(t, s.Timestamp)
			assert.Equal(t, fixedNow, *s.Timestamp)
		} else {
			assert.Nil(t, s.Timestamp)
		}
	}
	assert.Equal(t, map[string]bool{
		"placed":           true,
		"confirmed":        true,
		"shipped":          true,
		"out_for_delivery": false,
		"delivered":        false,
	}, completed)

	_, err = e.orders.TrackOrder(ctx, "ORD-0-000000")
	assert.True(t, errors.IsNotFound(err))
}

func TestTrackCancelledOrder(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 10)
	created, err := e.orders.CreateOrder(ctx, "user-1", CreateOrderInput{
		Customer: testCustomer(),
		Items:    []OrderItemInput{cat.storageItem(1)},
	})
	require.NoError(t, err)
	_, err = e.orders.UpdateOrderStatus(ctx, created.ID, entity.OrderStatusCancelled, "Customer request", "admin-1")
	require.NoError(t, err)

	tracking, err := e.orders.TrackOrder(ctx, created.OrderNumber)
	require.NoError(t, err)
	assert.True(t, tracking.Cancelled)
	assert.True(t, tracking.Stages[0].Completed)
	for _, s := range tracking.Stages[1:] {
		assert.False(t, s.Completed, s.Key)
	}
}

// Two read-modify-write decrements that both read before either writes lose
// one update. The inventory repository avoids that.
func TestConcurrentStockDecrements(t *testing.T) {
	t.Run("read-modify-write loses an update", func(t *testing.T) {
		e := newTestEnv(t)
		ctx := context.Background()
		cat := e.seedPhone(t, 10)

		a, err := e.variantRepo.GetPrice(ctx, cat.price.ID)
		require.NoError(t, err)
		b, err := e.variantRepo.GetPrice(ctx, cat.price.ID)
		require.NoError(t, err)

		for _, stale := range []*entity.Price{a, b} {
			after := entity.ClampedDecrement(stale.StockQuantity, 3)
			_, err := e.variantRepo.UpdatePrice(ctx, cat.price.ID, func(p *entity.Price) error {
				p.StockQuantity = after
				return nil
			})
			require.NoError(t, err)
		}

		got, err := e.variantRepo.GetPrice(ctx, cat.price.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, got.StockQuantity)
	})

	t.Run("atomic decrement keeps both", func(t *testing.T) {
		e := newTestEnv(t)
		ctx := context.Background()
		cat := e.seedPhone(t, 10)
		adjuster := NewStockAdjuster(e.variantRepo, e.inventoryRepo)

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := adjuster.Adjust(ctx, []*entity.OrderItem{{ProductID: cat.product.ID, StorageID: cat.storage.ID, Quantity: 3}})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := e.variantRepo.GetPrice(ctx, cat.price.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.StockQuantity)
	})
}
