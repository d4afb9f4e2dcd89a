package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
	"telemart/internal/adapter/api/middleware"
)

func SetupUploadRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	uploadHandler := handler.GetUploadHandler()

	admin := adminGroup(e, "/uploads", authMiddleware, adminMiddleware)
	admin.POST("", uploadHandler.UploadImage)
	admin.DELETE("", uploadHandler.DeleteImage)
}
