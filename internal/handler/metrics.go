package handler

import (
	"github.com/deppfellow/sampledb-api/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsHandler exposes the Prometheus registry.
type MetricsHandler struct {
	Handler
}

func NewMetricsHandler(s *server.Server) *MetricsHandler {
	return &MetricsHandler{
		Handler: NewHandler(s),
	}
}

func (h *MetricsHandler) ServeMetrics() echo.HandlerFunc {
	return echo.WrapHandler(h.server.Metrics.Handler())
}
