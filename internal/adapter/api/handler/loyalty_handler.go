package handler

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/usecase"
	"telemart/pkg/response"
)

type LoyaltyHandler struct {
	loyaltyUseCase *usecase.LoyaltyUseCase
}

func NewLoyaltyHandler(loyaltyUseCase *usecase.LoyaltyUseCase) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyUseCase: loyaltyUseCase,
	}
}

func (h *LoyaltyHandler) GetMyBalance(c echo.Context) error {
	balance, err := h.loyaltyUseCase.GetBalance(c.Request().Context(), currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, balance)
}

func (h *LoyaltyHandler) GetBalance(c echo.Context) error {
	balance, err := h.loyaltyUseCase.GetBalance(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, balance)
}

func (h *LoyaltyHandler) AwardPoints(c echo.Context) error {
	var req usecase.LoyaltyAdjustInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	balance, err := h.loyaltyUseCase.Award(c.Request().Context(), c.Param("userId"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, balance)
}

func (h *LoyaltyHandler) RedeemPoints(c echo.Context) error {
	var req usecase.LoyaltyAdjustInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	balance, err := h.loyaltyUseCase.Redeem(c.Request().Context(), c.Param("userId"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, balance)
}
