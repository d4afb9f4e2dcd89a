package handler

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/usecase"
	"telemart/pkg/response"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

func (h *PaymentHandler) InitiatePayment(c echo.Context) error {
	resp, err := h.paymentUseCase.InitiatePayment(c.Request().Context(), c.Param("orderId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, resp)
}

// HandleCallback receives the gateway's form-encoded success, fail, cancel
// and IPN posts.
func (h *PaymentHandler) HandleCallback(c echo.Context) error {
	var req usecase.PaymentCallbackInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.paymentUseCase.HandleCallback(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"order_number":   order.OrderNumber,
		"payment_status": order.PaymentStatus,
	})
}
