package handler

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/usecase"
	"telemart/pkg/response"
	"telemart/pkg/utils"
)

type WarrantyHandler struct {
	warrantyUseCase *usecase.WarrantyUseCase
}

func NewWarrantyHandler(warrantyUseCase *usecase.WarrantyUseCase) *WarrantyHandler {
	return &WarrantyHandler{
		warrantyUseCase: warrantyUseCase,
	}
}

// Lookup serves the public warranty checker, keyed by IMEI or serial number.
func (h *WarrantyHandler) Lookup(c echo.Context) error {
	record, err := h.warrantyUseCase.Lookup(c.Request().Context(), c.Param("identifier"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, record)
}

func (h *WarrantyHandler) RegisterWarranty(c echo.Context) error {
	var req usecase.RegisterWarrantyInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	record, err := h.warrantyUseCase.Register(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, record)
}

func (h *WarrantyHandler) ListWarranties(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	records, total, err := h.warrantyUseCase.ListWarranties(c.Request().Context(), c.QueryParam("status"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, records, total, pagination.Page, pagination.PageSize)
}

func (h *WarrantyHandler) GetWarranty(c echo.Context) error {
	record, err := h.warrantyUseCase.GetWarranty(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, record)
}

func (h *WarrantyHandler) UpdateWarrantyStatus(c echo.Context) error {
	var req usecase.UpdateWarrantyStatusInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	record, err := h.warrantyUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, record)
}

func (h *WarrantyHandler) DeleteWarranty(c echo.Context) error {
	if err := h.warrantyUseCase.DeleteWarranty(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Warranty deleted successfully"})
}
