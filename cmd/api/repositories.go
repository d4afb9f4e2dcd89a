package main

import (
	"cloud.google.com/go/firestore"

	"telemart/internal/adapter/repository"
	"telemart/internal/adapter/repository/memory"
	domainrepo "telemart/internal/domain/repository"
)

type repositories struct {
	categories    domainrepo.CategoryRepository
	brands        domainrepo.BrandRepository
	carePlans     domainrepo.CarePlanRepository
	products      domainrepo.ProductRepository
	variants      domainrepo.VariantRepository
	inventory     domainrepo.InventoryRepository
	orders        domainrepo.OrderRepository
	orderItems    domainrepo.OrderItemRepository
	notifications domainrepo.NotificationRepository
	users         domainrepo.UserRepository
	warranties    domainrepo.WarrantyRepository
	loyalty       domainrepo.LoyaltyRepository
	deals         domainrepo.CorporateDealRepository
	giveaways     domainrepo.GiveawayRepository
	stockRequests domainrepo.StockRequestRepository
}

func newFirestoreRepositories(client *firestore.Client) *repositories {
	return &repositories{
		categories:    repository.NewFirestoreCategoryRepository(client),
		brands:        repository.NewFirestoreBrandRepository(client),
		carePlans:     repository.NewFirestoreCarePlanRepository(client),
		products:      repository.NewFirestoreProductRepository(client),
		variants:      repository.NewFirestoreVariantRepository(client),
		inventory:     repository.NewFirestoreInventoryRepository(client),
		orders:        repository.NewFirestoreOrderRepository(client),
		orderItems:    repository.NewFirestoreOrderItemRepository(client),
		notifications: repository.NewFirestoreNotificationRepository(client),
		users:         repository.NewFirestoreUserRepository(client),
		warranties:    repository.NewFirestoreWarrantyRepository(client),
		loyalty:       repository.NewFirestoreLoyaltyRepository(client),
		deals:         repository.NewFirestoreCorporateDealRepository(client),
		giveaways:     repository.NewFirestoreGiveawayRepository(client),
		stockRequests: repository.NewFirestoreStockRequestRepository(client),
	}
}

func newMemoryRepositories() *repositories {
	s := memory.NewStore()
	return &repositories{
		categories:    memory.NewCategoryRepository(s),
		brands:        memory.NewBrandRepository(s),
		carePlans:     memory.NewCarePlanRepository(s),
		products:      memory.NewProductRepository(s),
		variants:      memory.NewVariantRepository(s),
		inventory:     memory.NewInventoryRepository(s),
		orders:        memory.NewOrderRepository(s),
		orderItems:    memory.NewOrderItemRepository(s),
		notifications: memory.NewNotificationRepository(s),
		users:         memory.NewUserRepository(s),
		warranties:    memory.NewWarrantyRepository(s),
		loyalty:       memory.NewLoyaltyRepository(s),
		deals:         memory.NewCorporateDealRepository(s),
		giveaways:     memory.NewGiveawayRepository(s),
		stockRequests: memory.NewStockRequestRepository(s),
	}
}
