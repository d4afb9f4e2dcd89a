package handler

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/usecase"
	"telemart/pkg/response"
	"telemart/pkg/utils"
)

// LeadHandler serves the public lead forms: corporate deals, giveaway entries
// and back-in-stock requests.
type LeadHandler struct {
	leadUseCase *usecase.LeadUseCase
}

func NewLeadHandler(leadUseCase *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{
		leadUseCase: leadUseCase,
	}
}

type updateDealStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *LeadHandler) SubmitCorporateDeal(c echo.Context) error {
	var req usecase.CorporateDealInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	deal, err := h.leadUseCase.SubmitCorporateDeal(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, deal)
}

func (h *LeadHandler) ListCorporateDeals(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	deals, total, err := h.leadUseCase.ListCorporateDeals(c.Request().Context(), c.QueryParam("status"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, deals, total, pagination.Page, pagination.PageSize)
}

func (h *LeadHandler) UpdateCorporateDealStatus(c echo.Context) error {
	var req updateDealStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	deal, err := h.leadUseCase.UpdateCorporateDealStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, deal)
}

func (h *LeadHandler) EnterGiveaway(c echo.Context) error {
	var req usecase.GiveawayEntryInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	entry, err := h.leadUseCase.EnterGiveaway(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, entry)
}

func (h *LeadHandler) ListGiveawayEntries(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	entries, total, err := h.leadUseCase.ListGiveawayEntries(c.Request().Context(), c.QueryParam("campaign"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, entries, total, pagination.Page, pagination.PageSize)
}

func (h *LeadHandler) MarkGiveawayWinner(c echo.Context) error {
	entry, err := h.leadUseCase.MarkGiveawayWinner(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, entry)
}

func (h *LeadHandler) RequestStock(c echo.Context) error {
	var req usecase.StockRequestInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.leadUseCase.RequestStock(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, request)
}

func (h *LeadHandler) ListStockRequests(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.leadUseCase.ListStockRequests(
		c.Request().Context(),
		c.QueryParam("product_id"),
		c.QueryParam("status"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}

func (h *LeadHandler) MarkStockRequestNotified(c echo.Context) error {
	request, err := h.leadUseCase.MarkStockRequestNotified(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, request)
}
