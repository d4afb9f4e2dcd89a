package router

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/adapter/api/handler"
)

func SetupDevRouter(e *echo.Echo, enabled bool) {
	if !enabled {
		return
	}
	devTokenHandler := handler.GetDevTokenHandler()

	e.POST("/_dev/token", devTokenHandler.GenerateToken)
}
