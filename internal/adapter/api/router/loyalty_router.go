package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
	"telemart/internal/adapter/api/middleware"
)

func SetupLoyaltyRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	loyaltyHandler := handler.GetLoyaltyHandler()

	admin := adminGroup(e, "/loyalty", authMiddleware, adminMiddleware)
	admin.GET("/:userId", loyaltyHandler.GetBalance)
	admin.POST("/:userId/award", loyaltyHandler.AwardPoints)
	admin.POST("/:userId/redeem", loyaltyHandler.RedeemPoints)
}
