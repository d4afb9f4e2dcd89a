package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
	"telemart/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()
	loyaltyHandler := handler.GetLoyaltyHandler()

	me := e.Group("/v1/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", userHandler.GetMe)
	me.Match(updateMethods, "", userHandler.UpdateMe)
	me.GET("/loyalty", loyaltyHandler.GetMyBalance)
}
