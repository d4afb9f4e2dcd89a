package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
	"telemart/internal/adapter/api/middleware"
)

func SetupLeadRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimiter echo.MiddlewareFunc) {
	leadHandler := handler.GetLeadHandler()

	public := e.Group("/v1")
	public.Use(rateLimiter)
	public.Use(authMiddleware.OptionalAuth)
	public.POST("/corporate-deals", leadHandler.SubmitCorporateDeal)
	public.POST("/giveaways", leadHandler.EnterGiveaway)
	public.POST("/stock-requests", leadHandler.RequestStock)

	admin := adminGroup(e, "", authMiddleware, adminMiddleware)
	admin.GET("/corporate-deals", leadHandler.ListCorporateDeals)
	admin.Match(updateMethods, "/corporate-deals/:id/status", leadHandler.UpdateCorporateDealStatus)
	admin.GET("/giveaways", leadHandler.ListGiveawayEntries)
	admin.Match(updateMethods, "/giveaways/:id/winner", leadHandler.MarkGiveawayWinner)
	admin.GET("/stock-requests", leadHandler.ListStockRequests)
	admin.Match(updateMethods, "/stock-requests/:id/notified", leadHandler.MarkStockRequestNotified)
}
