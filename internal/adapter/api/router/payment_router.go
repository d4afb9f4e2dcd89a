package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
)

func SetupPaymentRouter(e *echo.Echo, rateLimiter echo.MiddlewareFunc) {
	paymentHandler := handler.GetPaymentHandler()

	payments := e.Group("/v1/payments")
	payments.POST("/:orderId/initiate", paymentHandler.InitiatePayment, rateLimiter)

	// Gateway server-to-server posts carry no bearer token.
	payments.POST("/callback", paymentHandler.HandleCallback)
}
