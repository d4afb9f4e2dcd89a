package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"telemart/internal/domain/repository"
	"telemart/internal/usecase"
	"telemart/pkg/response"
	"telemart/pkg/utils"
)

type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

// Categories

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogUseCase.ListCategories(c.Request().Context(), true)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, categories)
}

func (h *CatalogHandler) AdminListCategories(c echo.Context) error {
	categories, err := h.catalogUseCase.ListCategories(c.Request().Context(), false)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, categories)
}

func (h *CatalogHandler) GetCategoryBySlug(c echo.Context) error {
	category, err := h.catalogUseCase.GetCategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, category)
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req usecase.CategoryInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.catalogUseCase.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, category)
}

func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	var req usecase.CategoryInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.catalogUseCase.UpdateCategory(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, category)
}

func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.catalogUseCase.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Category deleted successfully"})
}

// Brands

func (h *CatalogHandler) ListBrands(c echo.Context) error {
	brands, err := h.catalogUseCase.ListBrands(c.Request().Context(), true)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, brands)
}

func (h *CatalogHandler) AdminListBrands(c echo.Context) error {
	brands, err := h.catalogUseCase.ListBrands(c.Request().Context(), false)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, brands)
}

func (h *CatalogHandler) GetBrandBySlug(c echo.Context) error {
	brand, err := h.catalogUseCase.GetBrandBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, brand)
}

func (h *CatalogHandler) CreateBrand(c echo.Context) error {
	var req usecase.BrandInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	brand, err := h.catalogUseCase.CreateBrand(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, brand)
}

func (h *CatalogHandler) UpdateBrand(c echo.Context) error {
	var req usecase.BrandInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	brand, err := h.catalogUseCase.UpdateBrand(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, brand)
}

func (h *CatalogHandler) DeleteBrand(c echo.Context) error {
	if err := h.catalogUseCase.DeleteBrand(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Brand deleted successfully"})
}

// Care plans

func (h *CatalogHandler) ListCarePlans(c echo.Context) error {
	plans, err := h.catalogUseCase.ListCarePlans(c.Request().Context(), false)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, plans)
}

func (h *CatalogHandler) GetProductCarePlans(c echo.Context) error {
	plans, err := h.catalogUseCase.CarePlansForProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, plans)
}

func (h *CatalogHandler) CreateCarePlan(c echo.Context) error {
	var req usecase.CarePlanInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	plan, err := h.catalogUseCase.CreateCarePlan(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, plan)
}

func (h *CatalogHandler) UpdateCarePlan(c echo.Context) error {
	var req usecase.CarePlanInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	plan, err := h.catalogUseCase.UpdateCarePlan(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, plan)
}

func (h *CatalogHandler) DeleteCarePlan(c echo.Context) error {
	if err := h.catalogUseCase.DeleteCarePlan(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Care plan deleted successfully"})
}

// Products

func productFilterFromQuery(c echo.Context) repository.ProductFilter {
	return repository.ProductFilter{
		CategoryID: c.QueryParam("category_id"),
		BrandID:    c.QueryParam("brand_id"),
		Search:     c.QueryParam("search"),
		Sort:       c.QueryParam("sort"),
	}
}

// ListProducts shows the storefront: active, online products only.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	filter := productFilterFromQuery(c)
	filter.ActiveOnly = true
	filter.OnlineOnly = true

	products, total, err := h.catalogUseCase.ListProducts(c.Request().Context(), filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *CatalogHandler) AdminListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	filter := productFilterFromQuery(c)
	if active, err := strconv.ParseBool(c.QueryParam("active")); err == nil {
		filter.ActiveOnly = active
	}

	products, total, err := h.catalogUseCase.ListProducts(c.Request().Context(), filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	detail, err := h.catalogUseCase.GetProductDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, detail)
}

func (h *CatalogHandler) GetProductBySlug(c echo.Context) error {
	detail, err := h.catalogUseCase.GetProductDetailBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, detail)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req usecase.ProductInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalogUseCase.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, product)
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	var req usecase.ProductInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalogUseCase.UpdateProduct(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	if err := h.catalogUseCase.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Product deleted successfully"})
}
