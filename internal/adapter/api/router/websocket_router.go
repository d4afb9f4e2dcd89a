package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
)

// The handler authenticates itself: browsers pass the token as a query
// parameter on the upgrade request.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
