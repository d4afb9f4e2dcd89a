package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
	"telemart/internal/adapter/api/middleware"
)

func SetupCatalogRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	catalogHandler := handler.GetCatalogHandler()

	e.GET("/v1/categories", catalogHandler.ListCategories)
	e.GET("/v1/categories/:slug", catalogHandler.GetCategoryBySlug)
	e.GET("/v1/brands", catalogHandler.ListBrands)
	e.GET("/v1/brands/:slug", catalogHandler.GetBrandBySlug)

	products := e.Group("/v1/products")
	products.GET("", catalogHandler.ListProducts)
	products.GET("/slug/:slug", catalogHandler.GetProductBySlug)
	products.GET("/:id", catalogHandler.GetProduct)
	products.GET("/:id/care-plans", catalogHandler.GetProductCarePlans)

	categories := adminGroup(e, "/categories", authMiddleware, adminMiddleware)
	categories.GET("", catalogHandler.AdminListCategories)
	categories.POST("", catalogHandler.CreateCategory)
	categories.Match(updateMethods, "/:id", catalogHandler.UpdateCategory)
	categories.DELETE("/:id", catalogHandler.DeleteCategory)

	brands := adminGroup(e, "/brands", authMiddleware, adminMiddleware)
	brands.GET("", catalogHandler.AdminListBrands)
	brands.POST("", catalogHandler.CreateBrand)
	brands.Match(updateMethods, "/:id", catalogHandler.UpdateBrand)
	brands.DELETE("/:id", catalogHandler.DeleteBrand)

	carePlans := adminGroup(e, "/care-plans", authMiddleware, adminMiddleware)
	carePlans.GET("", catalogHandler.ListCarePlans)
	carePlans.POST("", catalogHandler.CreateCarePlan)
	carePlans.Match(updateMethods, "/:id", catalogHandler.UpdateCarePlan)
	carePlans.DELETE("/:id", catalogHandler.DeleteCarePlan)

	adminProducts := adminGroup(e, "/products", authMiddleware, adminMiddleware)
	adminProducts.GET("", catalogHandler.AdminListProducts)
	adminProducts.POST("", catalogHandler.CreateProduct)
	adminProducts.Match(updateMethods, "/:id", catalogHandler.UpdateProduct)
	adminProducts.DELETE("/:id", catalogHandler.DeleteProduct)
}
