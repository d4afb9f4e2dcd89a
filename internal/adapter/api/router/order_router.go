package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
	"telemart/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimiter echo.MiddlewareFunc) {
	orderHandler := handler.GetOrderHandler()

	e.POST("/v1/orders", orderHandler.CreateOrder, rateLimiter, authMiddleware.OptionalAuth)
	e.GET("/v1/track/:ref", orderHandler.TrackOrder)

	myOrders := e.Group("/v1/my-orders")
	myOrders.Use(authMiddleware.Authenticate)
	myOrders.GET("", orderHandler.ListMyOrders)
	myOrders.GET("/:id", orderHandler.GetMyOrder)

	admin := adminGroup(e, "/orders", authMiddleware, adminMiddleware)
	admin.GET("", orderHandler.ListOrders)
	admin.GET("/:id", orderHandler.GetOrder)
	admin.Match(updateMethods, "/:id/status", orderHandler.UpdateOrderStatus)
	admin.Match(updateMethods, "/:id/payment-status", orderHandler.UpdatePaymentStatus)
	admin.DELETE("/:id", orderHandler.DeleteOrder)
}
