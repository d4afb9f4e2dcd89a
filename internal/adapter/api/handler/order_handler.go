package handler

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/domain/repository"
	"telemart/internal/usecase"
	"telemart/pkg/response"
	"telemart/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

// CreateOrder accepts guest checkouts; signed-in customers get the order
// linked to their account.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req usecase.CreateOrderInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.CreateOrder(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, order)
}

func (h *OrderHandler) TrackOrder(c echo.Context) error {
	tracking, err := h.orderUseCase.TrackOrder(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, tracking)
}

func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListUserOrders(c.Request().Context(), currentUserID(c), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *OrderHandler) GetMyOrder(c echo.Context) error {
	order, err := h.orderUseCase.GetUserOrder(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	filter := repository.OrderFilter{
		UserID:        c.QueryParam("user_id"),
		Status:        c.QueryParam("status"),
		PaymentStatus: c.QueryParam("payment_status"),
	}

	orders, total, err := h.orderUseCase.ListOrders(c.Request().Context(), filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderUseCase.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateOrderStatus(c.Request().Context(), c.Param("id"), req.Status, req.Note, currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *OrderHandler) UpdatePaymentStatus(c echo.Context) error {
	var req updatePaymentStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdatePaymentStatus(c.Request().Context(), c.Param("id"), req.PaymentStatus)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	if err := h.orderUseCase.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Order deleted successfully"})
}
