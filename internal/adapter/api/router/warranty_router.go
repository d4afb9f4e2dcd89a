package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
	"telemart/internal/adapter/api/middleware"
)

func SetupWarrantyRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	warrantyHandler := handler.GetWarrantyHandler()

	e.GET("/v1/warranty/:identifier", warrantyHandler.Lookup)

	admin := adminGroup(e, "/warranties", authMiddleware, adminMiddleware)
	admin.GET("", warrantyHandler.ListWarranties)
	admin.POST("", warrantyHandler.RegisterWarranty)
	admin.GET("/:id", warrantyHandler.GetWarranty)
	admin.Match(updateMethods, "/:id/status", warrantyHandler.UpdateWarrantyStatus)
	admin.DELETE("/:id", warrantyHandler.DeleteWarranty)
}
