package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/middleware"
)

// updateMethods registers partial updates under PATCH and keeps PUT for
// existing clients.
var updateMethods = []string{http.MethodPatch, http.MethodPut}

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimiter echo.MiddlewareFunc) {
	SetupHealthRouter(e)
	SetupUserRouter(e, authMiddleware)
	SetupCatalogRouter(e, authMiddleware, adminMiddleware)
	SetupVariantRouter(e, authMiddleware, adminMiddleware)
	SetupOrderRouter(e, authMiddleware, adminMiddleware, rateLimiter)
	SetupNotificationRouter(e, authMiddleware, adminMiddleware)
	SetupWarrantyRouter(e, authMiddleware, adminMiddleware)
	SetupLoyaltyRouter(e, authMiddleware, adminMiddleware)
	SetupLeadRouter(e, authMiddleware, adminMiddleware, rateLimiter)
	SetupPaymentRouter(e, rateLimiter)
}

func adminGroup(e *echo.Echo, prefix string, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) *echo.Group {
	group := e.Group("/v1/admin" + prefix)
	group.Use(authMiddleware.Authenticate)
	group.Use(adminMiddleware.AdminOnly)
	return group
}
