package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"telemart/internal/adapter/api"
	"telemart/internal/adapter/api/handler"
	apimiddleware "telemart/internal/adapter/api/middleware"
	"telemart/internal/adapter/api/router"
	"telemart/internal/domain/service"
	"telemart/internal/infrastructure/firebase"
	"telemart/internal/infrastructure/messaging"
	"telemart/internal/infrastructure/payment"
	"telemart/internal/infrastructure/storage"
	"telemart/internal/infrastructure/websocket"
	"telemart/internal/usecase"
	"telemart/pkg/config"
	"telemart/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		repos        *repositories
		verifier     usecase.TokenVerifier
		imageStorage service.ImageStorage
	)

	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		repos = newMemoryRepositories()
		verifier = firebase.NewDevTokenVerifier()
	default:
		clients, err := firebase.NewClients(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		defer clients.Close()

		repos = newFirestoreRepositories(clients.Firestore)
		verifier = clients.Auth

		if cfg.StorageBucket != "" {
			storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, clients.Option)
			if err != nil {
				log.Fatalf("Failed to initialize Cloud Storage: %v", err)
			}
			defer storageClient.Close()
			imageStorage = storageClient
		}
	}

	var publisher service.EventPublisher = messaging.NoopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := messaging.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("Failed to connect to message broker: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	notificationUseCase := usecase.NewNotificationUseCase(repos.notifications, wsManager)
	loyaltyUseCase := usecase.NewLoyaltyUseCase(repos.loyalty, cfg.LoyaltyPointsDivisor)
	stockAdjuster := usecase.NewStockAdjuster(repos.variants, repos.inventory)

	catalogUseCase := usecase.NewCatalogUseCase(repos.categories, repos.brands, repos.carePlans, repos.products, repos.variants)
	variantUseCase := usecase.NewVariantUseCase(repos.products, repos.variants)
	orderUseCase := usecase.NewOrderUseCase(
		repos.orders,
		repos.orderItems,
		repos.products,
		stockAdjuster,
		notificationUseCase,
		loyaltyUseCase,
		publisher,
	)
	warrantyUseCase := usecase.NewWarrantyUseCase(repos.warranties)
	leadUseCase := usecase.NewLeadUseCase(repos.deals, repos.giveaways, repos.stockRequests, repos.products, notificationUseCase)
	paymentUseCase := usecase.NewPaymentUseCase(repos.orders, repos.orderItems, payment.NewGatewayClient(cfg.Payment))
	userUseCase := usecase.NewUserUseCase(repos.users)

	handler.Setup(
		catalogUseCase,
		variantUseCase,
		orderUseCase,
		notificationUseCase,
		warrantyUseCase,
		loyaltyUseCase,
		leadUseCase,
		paymentUseCase,
		userUseCase,
	)
	handler.SetupHealthHandler(cfg.Environment, cfg.StorageDriver)
	handler.SetupDevTokenHandler(repos.users)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(verifier)
	adminMiddleware := apimiddleware.NewAdminMiddleware(repos.users)
	rateLimiter := apimiddleware.NewRateLimiter(cfg.OrderRateLimit)

	router.Setup(e, authMiddleware, adminMiddleware, rateLimiter)
	router.SetupWebSocketRouter(e, handler.NewWebSocketHandler(wsManager, authMiddleware, userUseCase))
	router.SetupDevRouter(e, cfg.IsDevelopment() && cfg.StorageDriver == config.StorageMemory)

	if imageStorage != nil {
		handler.SetupUploadHandler(imageStorage)
		router.SetupUploadRouter(e, authMiddleware, adminMiddleware)
	} else {
		logger.Warn("STORAGE_BUCKET not configured; image uploads disabled")
	}

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
