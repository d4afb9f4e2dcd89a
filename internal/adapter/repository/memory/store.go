// Package memory holds process-local repository implementations used for
// local development (STORAGE_DRIVER=memory) and use-case tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"telemart/internal/domain/entity"
	"telemart/pkg/utils"
)

// Store is shared by every repository so inventory decrements and catalog
// writes see the same records.
type Store struct {
	mu sync.RWMutex

	categories map[string]*entity.Category
	brands     map[string]*entity.Brand
	carePlans  map[string]*entity.CarePlan
	products   map[string]*entity.Product
	regions    map[string]*entity.Region
	networks   map[string]*entity.Network
	colors     map[string]*entity.Color
	storages   map[string]*entity.Storage
	prices     map[string]*entity.Price

	orders     map[string]*entity.Order
	orderItems map[string]*entity.OrderItem

	notifications map[string]*entity.Notification
	users         map[string]*entity.User
	warranties    map[string]*entity.WarrantyRecord
	loyalty       map[string]*entity.LoyaltyPoints
	deals         map[string]*entity.CorporateDeal
	giveaways     map[string]*entity.GiveawayEntry
	stockRequests map[string]*entity.StockRequest

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		categories:    make(map[string]*entity.Category),
		brands:        make(map[string]*entity.Brand),
		carePlans:     make(map[string]*entity.CarePlan),
		products:      make(map[string]*entity.Product),
		regions:       make(map[string]*entity.Region),
		networks:      make(map[string]*entity.Network),
		colors:        make(map[string]*entity.Color),
		storages:      make(map[string]*entity.Storage),
		prices:        make(map[string]*entity.Price),
		orders:        make(map[string]*entity.Order),
		orderItems:    make(map[string]*entity.OrderItem),
		notifications: make(map[string]*entity.Notification),
		users:         make(map[string]*entity.User),
		warranties:    make(map[string]*entity.WarrantyRecord),
		loyalty:       make(map[string]*entity.LoyaltyPoints),
		deals:         make(map[string]*entity.CorporateDeal),
		giveaways:     make(map[string]*entity.GiveawayEntry),
		stockRequests: make(map[string]*entity.StockRequest),
		now:           time.Now,
	}
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.StatusHistory = append([]entity.StatusHistoryEntry(nil), o.StatusHistory...)
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	c.Images = append([]entity.ProductImage(nil), p.Images...)
	c.CarePlanIDs = append([]string(nil), p.CarePlanIDs...)
	return &c
}

func cloneColor(col *entity.Color) *entity.Color {
	c := *col
	if col.SingleStockQuantity != nil {
		q := *col.SingleStockQuantity
		c.SingleStockQuantity = &q
	}
	if col.SinglePrice != nil {
		p := *col.SinglePrice
		c.SinglePrice = &p
	}
	return &c
}

func cloneLoyalty(l *entity.LoyaltyPoints) *entity.LoyaltyPoints {
	c := *l
	c.History = append([]entity.LoyaltyTransaction(nil), l.History...)
	return &c
}

// page sorts items newest first by createdAt and cuts one page out.
func page[T any](items []*T, createdAt func(*T) time.Time, limit, offset int) ([]*T, int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
	start, end := utils.Window(len(items), limit, offset)
	return items[start:end], int64(len(items))
}

func byDisplayOrder[T any](items []*T, order func(*T) int) []*T {
	sort.SliceStable(items, func(i, j int) bool {
		return order(items[i]) < order(items[j])
	})
	return items
}
