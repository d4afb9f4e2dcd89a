package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	environment   string
	storageDriver string
	startedAt     time.Time
}

var healthHandler *HealthHandler

func NewHealthHandler(environment, storageDriver string) *HealthHandler {
	return &HealthHandler{
		environment:   environment,
		storageDriver: storageDriver,
		startedAt:     time.Now(),
	}
}

func SetupHealthHandler(environment, storageDriver string) {
	healthHandler = NewHealthHandler(environment, storageDriver)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "Server is running",
		"environment": h.environment,
		"storage":     h.storageDriver,
		"uptime":      time.Since(h.startedAt).Round(time.Second).String(),
		"time":        time.Now().Format(time.RFC3339),
	})
}
