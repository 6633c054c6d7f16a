package router

import (
	"github.com/labstack/echo/v4"

	"github.com/jnowak/users-service/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the business
// API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint used by orchestrators and monitors.
	r.GET("/status", h.Health.CheckHealth)
}
