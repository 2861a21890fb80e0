package router

import (
	"github.com/deppfellow/sampledb-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the dataset API:
// health, documentation and metrics.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/docs/openapi.yaml", h.OpenAPI.ServeOpenAPISpec)

	r.GET("/metrics", h.Metrics.ServeMetrics())
}
