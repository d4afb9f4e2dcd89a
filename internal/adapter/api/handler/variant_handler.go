package handler

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/usecase"
	"telemart/pkg/response"
)

// VariantHandler manages the region, network, color, storage and price rows
// that hang off a variant product.
type VariantHandler struct {
	variantUseCase *usecase.VariantUseCase
}

func NewVariantHandler(variantUseCase *usecase.VariantUseCase) *VariantHandler {
	return &VariantHandler{
		variantUseCase: variantUseCase,
	}
}

func (h *VariantHandler) ListRegions(c echo.Context) error {
	regions, err := h.variantUseCase.ListRegions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, regions)
}

func (h *VariantHandler) CreateRegion(c echo.Context) error {
	var req usecase.RegionInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	region, err := h.variantUseCase.CreateRegion(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, region)
}

func (h *VariantHandler) UpdateRegion(c echo.Context) error {
	var req usecase.RegionInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	region, err := h.variantUseCase.UpdateRegion(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, region)
}

func (h *VariantHandler) DeleteRegion(c echo.Context) error {
	if err := h.variantUseCase.DeleteRegion(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Region deleted successfully"})
}

func (h *VariantHandler) ListNetworks(c echo.Context) error {
	networks, err := h.variantUseCase.ListNetworks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, networks)
}

func (h *VariantHandler) CreateNetwork(c echo.Context) error {
	var req usecase.NetworkInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	network, err := h.variantUseCase.CreateNetwork(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, network)
}

func (h *VariantHandler) UpdateNetwork(c echo.Context) error {
	var req usecase.NetworkInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	network, err := h.variantUseCase.UpdateNetwork(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, network)
}

func (h *VariantHandler) DeleteNetwork(c echo.Context) error {
	if err := h.variantUseCase.DeleteNetwork(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Network deleted successfully"})
}

func (h *VariantHandler) ListColors(c echo.Context) error {
	colors, err := h.variantUseCase.ListColors(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, colors)
}

func (h *VariantHandler) CreateColor(c echo.Context) error {
	var req usecase.ColorInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	color, err := h.variantUseCase.CreateColor(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, color)
}

func (h *VariantHandler) UpdateColor(c echo.Context) error {
	var req usecase.ColorInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	color, err := h.variantUseCase.UpdateColor(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, color)
}

func (h *VariantHandler) DeleteColor(c echo.Context) error {
	if err := h.variantUseCase.DeleteColor(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Color deleted successfully"})
}

func (h *VariantHandler) ListStorages(c echo.Context) error {
	storages, err := h.variantUseCase.ListStorages(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, storages)
}

func (h *VariantHandler) CreateStorage(c echo.Context) error {
	var req usecase.StorageInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	storage, err := h.variantUseCase.CreateStorage(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, storage)
}

func (h *VariantHandler) UpdateStorage(c echo.Context) error {
	var req usecase.StorageInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	storage, err := h.variantUseCase.UpdateStorage(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, storage)
}

func (h *VariantHandler) DeleteStorage(c echo.Context) error {
	if err := h.variantUseCase.DeleteStorage(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Storage deleted successfully"})
}

func (h *VariantHandler) ListPrices(c echo.Context) error {
	prices, err := h.variantUseCase.ListPrices(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, prices)
}

func (h *VariantHandler) CreatePrice(c echo.Context) error {
	var req usecase.PriceInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	price, err := h.variantUseCase.CreatePrice(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, price)
}

func (h *VariantHandler) UpdatePrice(c echo.Context) error {
	var req usecase.PriceInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	price, err := h.variantUseCase.UpdatePrice(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, price)
}

func (h *VariantHandler) DeletePrice(c echo.Context) error {
	if err := h.variantUseCase.DeletePrice(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Price deleted successfully"})
}
