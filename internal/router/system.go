package router

import (
	"github.com/deppfellow/heroes/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints outside the hero domain: health
// and API documentation.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
