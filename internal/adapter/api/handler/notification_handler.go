package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"telemart/internal/usecase"
	"telemart/pkg/response"
	"telemart/pkg/utils"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func queryBool(c echo.Context, name string) bool {
	v, _ := strconv.ParseBool(c.QueryParam(name))
	return v
}

func (h *NotificationHandler) ListMyNotifications(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationUseCase.ListUserNotifications(
		c.Request().Context(),
		currentUserID(c),
		queryBool(c, "unread"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, notifications, total, pagination.Page, pagination.PageSize)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	count, err := h.notificationUseCase.UnreadCount(c.Request().Context(), currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int64{"unread": count})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	notification, err := h.notificationUseCase.MarkRead(c.Request().Context(), currentUserID(c), c.Param("id"), false)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, notification)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	updated, err := h.notificationUseCase.MarkAllRead(c.Request().Context(), currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"updated": updated})
}

func (h *NotificationHandler) ListAdminNotifications(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationUseCase.ListAdminNotifications(
		c.Request().Context(),
		queryBool(c, "unresolved"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, notifications, total, pagination.Page, pagination.PageSize)
}

func (h *NotificationHandler) MarkAdminRead(c echo.Context) error {
	notification, err := h.notificationUseCase.MarkRead(c.Request().Context(), currentUserID(c), c.Param("id"), true)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, notification)
}

func (h *NotificationHandler) MarkResolved(c echo.Context) error {
	notification, err := h.notificationUseCase.MarkResolved(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, notification)
}

func (h *NotificationHandler) CreateNotification(c echo.Context) error {
	var req usecase.CreateNotificationInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	notification, err := h.notificationUseCase.CreateNotification(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, notification)
}
