package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
	"telemart/internal/adapter/api/middleware"
)

func SetupVariantRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	variantHandler := handler.GetVariantHandler()

	products := e.Group("/v1/products")
	products.GET("/:id/regions", variantHandler.ListRegions)
	products.GET("/:id/networks", variantHandler.ListNetworks)
	products.GET("/:id/colors", variantHandler.ListColors)
	products.GET("/:id/storages", variantHandler.ListStorages)
	products.GET("/:id/prices", variantHandler.ListPrices)

	admin := adminGroup(e, "", authMiddleware, adminMiddleware)

	admin.POST("/regions", variantHandler.CreateRegion)
	admin.Match(updateMethods, "/regions/:id", variantHandler.UpdateRegion)
	admin.DELETE("/regions/:id", variantHandler.DeleteRegion)

	admin.POST("/networks", variantHandler.CreateNetwork)
	admin.Match(updateMethods, "/networks/:id", variantHandler.UpdateNetwork)
	admin.DELETE("/networks/:id", variantHandler.DeleteNetwork)

	admin.POST("/colors", variantHandler.CreateColor)
	admin.Match(updateMethods, "/colors/:id", variantHandler.UpdateColor)
	admin.DELETE("/colors/:id", variantHandler.DeleteColor)

	admin.POST("/storages", variantHandler.CreateStorage)
	admin.Match(updateMethods, "/storages/:id", variantHandler.UpdateStorage)
	admin.DELETE("/storages/:id", variantHandler.DeleteStorage)

	admin.POST("/prices", variantHandler.CreatePrice)
	admin.Match(updateMethods, "/prices/:id", variantHandler.UpdatePrice)
	admin.DELETE("/prices/:id", variantHandler.DeletePrice)
}
