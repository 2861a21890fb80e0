package middleware

import (
	"time"

	"github.com/deppfellow/sampledb-api/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request count, latency and in-flight requests.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Record labels each request with its route template (e.g. /companies/:id)
// so ids do not explode label cardinality.
func (mm *MetricsMiddleware) Record() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			done := mm.server.Metrics.RequestStarted()
			defer done()

			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			mm.server.Metrics.RecordHTTPRequest(route, c.Request().Method, responseStatus(c, err), time.Since(start))

			return err
		}
	}
}
