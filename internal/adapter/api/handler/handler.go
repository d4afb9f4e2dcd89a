package handler

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/usecase"
)

var (
	catalogHandler      *CatalogHandler
	variantHandler      *VariantHandler
	orderHandler        *OrderHandler
	notificationHandler *NotificationHandler
	warrantyHandler     *WarrantyHandler
	loyaltyHandler      *LoyaltyHandler
	leadHandler         *LeadHandler
	paymentHandler      *PaymentHandler
	userHandler         *UserHandler
)

func Setup(
	catalogUseCase *usecase.CatalogUseCase,
	variantUseCase *usecase.VariantUseCase,
	orderUseCase *usecase.OrderUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	warrantyUseCase *usecase.WarrantyUseCase,
	loyaltyUseCase *usecase.LoyaltyUseCase,
	leadUseCase *usecase.LeadUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	userUseCase *usecase.UserUseCase,
) {
	catalogHandler = NewCatalogHandler(catalogUseCase)
	variantHandler = NewVariantHandler(variantUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	warrantyHandler = NewWarrantyHandler(warrantyUseCase)
	loyaltyHandler = NewLoyaltyHandler(loyaltyUseCase)
	leadHandler = NewLeadHandler(leadUseCase)
	paymentHandler = NewPaymentHandler(paymentUseCase)
	userHandler = NewUserHandler(userUseCase)
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetVariantHandler() *VariantHandler {
	return variantHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetWarrantyHandler() *WarrantyHandler {
	return warrantyHandler
}

func GetLoyaltyHandler() *LoyaltyHandler {
	return loyaltyHandler
}

func GetLeadHandler() *LeadHandler {
	return leadHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

// currentUserID returns the authenticated uid, or "" for anonymous callers
// on optionally authenticated routes.
func currentUserID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
