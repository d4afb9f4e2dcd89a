package usecase

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"telemart/internal/adapter/repository/memory"
	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/internal/domain/service"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type recordingPusher struct {
	mu     sync.Mutex
	users  []string
	admins int
}

func (p *recordingPusher) PushToUser(userID string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users = append(p.users, userID)
}

func (p *recordingPusher) PushToAdmins(payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.admins++
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []service.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event service.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// failingNotificationRepo rejects every insert.
type failingNotificationRepo struct {
	repository.NotificationRepository
}

func (failingNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	return stderrors.New("notification store unavailable")
}

type testEnv struct {
	store *memory.Store

	categoryRepo     repository.CategoryRepository
	brandRepo        repository.BrandRepository
	carePlanRepo     repository.CarePlanRepository
	productRepo      repository.ProductRepository
	variantRepo      repository.VariantRepository
	inventoryRepo    repository.InventoryRepository
	orderRepo        repository.OrderRepository
	orderItemRepo    repository.OrderItemRepository
	notificationRepo repository.NotificationRepository
	loyaltyRepo      repository.LoyaltyRepository

	pusher    *recordingPusher
	publisher *recordingPublisher

	catalog       *CatalogUseCase
	variants      *VariantUseCase
	notifications *NotificationUseCase
	loyalty       *LoyaltyUseCase
	orders        *OrderUseCase
	leads         *LeadUseCase
}

type envOption func(*testEnv)

func withFailingNotifications() envOption {
	return func(e *testEnv) {
		e.notificationRepo = failingNotificationRepo{e.notificationRepo}
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	store := memory.NewStore()
	e := &testEnv{
		store:            store,
		categoryRepo:     memory.NewCategoryRepository(store),
		brandRepo:        memory.NewBrandRepository(store),
		carePlanRepo:     memory.NewCarePlanRepository(store),
		productRepo:      memory.NewProductRepository(store),
		variantRepo:      memory.NewVariantRepository(store),
		inventoryRepo:    memory.NewInventoryRepository(store),
		orderRepo:        memory.NewOrderRepository(store),
		orderItemRepo:    memory.NewOrderItemRepository(store),
		notificationRepo: memory.NewNotificationRepository(store),
		loyaltyRepo:      memory.NewLoyaltyRepository(store),
		pusher:           &recordingPusher{},
		publisher:        &recordingPublisher{},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.catalog = NewCatalogUseCase(e.categoryRepo, e.brandRepo, e.carePlanRepo, e.productRepo, e.variantRepo)
	e.variants = NewVariantUseCase(e.productRepo, e.variantRepo)
	e.notifications = NewNotificationUseCase(e.notificationRepo, e.pusher)
	e.loyalty = NewLoyaltyUseCase(e.loyaltyRepo, 100)
	e.orders = NewOrderUseCase(
		e.orderRepo,
		e.orderItemRepo,
		e.productRepo,
		NewStockAdjuster(e.variantRepo, e.inventoryRepo),
		e.notifications,
		e.loyalty,
		e.publisher,
	)
	e.orders.now = func() time.Time { return fixedNow }
	e.leads = NewLeadUseCase(
		memory.NewCorporateDealRepository(store),
		memory.NewGiveawayRepository(store),
		memory.NewStockRequestRepository(store),
		e.productRepo,
		e.notifications,
	)
	return e
}

// phoneCatalog is a "Phones" category holding product X1 with one color,
// one storage and a price carrying the given stock.
type phoneCatalog struct {
	category *entity.Category
	product  *entity.Product
	region   *entity.Region
	color    *entity.Color
	storage  *entity.Storage
	price    *entity.Price
}

func (e *testEnv) seedPhone(t *testing.T, priceStock int) phoneCatalog {
	t.Helper()
	ctx := context.Background()

	category, err := e.catalog.CreateCategory(ctx, CategoryInput{Name: "Phones"})
	require.NoError(t, err)
	product, err := e.catalog.CreateProduct(ctx, ProductInput{
		Name:          "X1",
		CategoryID:    category.ID,
		ProductType:   entity.ProductTypeVariant,
		BasePrice:     500,
		StockQuantity: intPtr(50),
		Images:        []ProductImageInput{{URL: "https://cdn.test/x1.png"}},
	})
	require.NoError(t, err)
	region, err := e.variants.CreateRegion(ctx, RegionInput{ProductID: product.ID, Name: "Global", IsDefault: true})
	require.NoError(t, err)
	color, err := e.variants.CreateColor(ctx, ColorInput{ProductID: product.ID, RegionID: region.ID, Name: "Black", StockQuantity: intPtr(20)})
	require.NoError(t, err)
	storage, err := e.variants.CreateStorage(ctx, StorageInput{ColorID: color.ID, Size: "128GB"})
	require.NoError(t, err)
	price, err := e.variants.CreatePrice(ctx, PriceInput{StorageID: storage.ID, RegularPrice: 500, StockQuantity: intPtr(priceStock)})
	require.NoError(t, err)

	return phoneCatalog{category: category, product: product, region: region, color: color, storage: storage, price: price}
}

func (c phoneCatalog) storageItem(qty int) OrderItemInput {
	return OrderItemInput{
		ProductID:   c.product.ID,
		RegionID:    c.region.ID,
		ColorID:     c.color.ID,
		ColorName:   c.color.Name,
		StorageID:   c.storage.ID,
		StorageSize: c.storage.Size,
		UnitPrice:   500,
		Quantity:    qty,
	}
}

func testCustomer() CustomerInput {
	return CustomerInput{
		Name:           "Rahim Uddin",
		Email:          "rahim@example.com",
		Phone:          "01700000000",
		Address:        "House 1, Road 2",
		City:           "Dhaka",
		PaymentMethod:  "cod",
		DeliveryMethod: "home",
	}
}

func intPtr(v int) *int { return &v }
