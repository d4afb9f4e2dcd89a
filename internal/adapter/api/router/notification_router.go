package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
	"telemart/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	notificationHandler := handler.GetNotificationHandler()

	notifications := e.Group("/v1/notifications")
	notifications.Use(authMiddleware.Authenticate)
	notifications.GET("", notificationHandler.ListMyNotifications)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.Match(updateMethods, "/read-all", notificationHandler.MarkAllRead)
	notifications.Match(updateMethods, "/:id/read", notificationHandler.MarkRead)

	admin := adminGroup(e, "/notifications", authMiddleware, adminMiddleware)
	admin.GET("", notificationHandler.ListAdminNotifications)
	admin.POST("", notificationHandler.CreateNotification)
	admin.Match(updateMethods, "/:id/read", notificationHandler.MarkAdminRead)
	admin.Match(updateMethods, "/:id/resolve", notificationHandler.MarkResolved)
}
