package router

import (
	"github.com/deppfellow/job-board/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that sit outside the API version.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
}
