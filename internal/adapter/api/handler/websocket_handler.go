package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/middleware"
	ws "telemart/internal/infrastructure/websocket"
	"telemart/internal/usecase"
	"telemart/pkg/errors"
	"telemart/pkg/logger"
	"telemart/pkg/response"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	userUseCase    *usecase.UserUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware, userUseCase *usecase.UserUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		userUseCase:    userUseCase,
	}
}

// HandleWebSocket upgrades an authenticated request into a live notification
// feed. Admins also receive the admin-audience notifications.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	claims, err := h.authMiddleware.ClaimsFromRequest(c)
	if err != nil {
		return response.Error(c, err)
	}

	isAdmin, err := h.userUseCase.IsAdmin(c.Request().Context(), claims.UID)
	if err != nil {
		return response.Error(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed for %s: %v", claims.UID, err)
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(claims.UID, isAdmin, conn)
	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
