package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deppfellow/sampledb-api/internal/middleware"
	"github.com/deppfellow/sampledb-api/internal/server"
	"github.com/labstack/echo/v4"
)

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

var errNotConfigured = errors.New("not configured")

// HealthHandler reports whether the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
	checks map[string]Pinger
}

// NewHealthHandler probes the dependencies listed in observability.health_checks.checks.
func NewHealthHandler(s *server.Server) *HealthHandler {
	checks := make(map[string]Pinger)

	for _, name := range s.Config.Observability.HealthChecks.Checks {
		switch name {
		case "database":
			if s.DB != nil {
				checks[name] = s.DB.Pool
			} else {
				checks[name] = PingFunc(func(context.Context) error { return errNotConfigured })
			}
		}
	}

	return NewHealthHandlerWithChecks(s, checks)
}

func NewHealthHandlerWithChecks(s *server.Server, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
	}
}

// CheckHealth returns 200 when every check passes and 503 otherwise.
//
//	{"status":"healthy","timestamp":"...","environment":"local","checks":{"database":{...}}}
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	healthCfg := h.server.Config.Observability.HealthChecks

	checks := make(map[string]any, len(h.checks))
	isHealthy := true

	if healthCfg.Enabled {
		for name, pinger := range h.checks {
			ctx, cancel := context.WithTimeout(c.Request().Context(), healthCfg.Timeout)
			checkStart := time.Now()
			err := pinger.Ping(ctx)
			cancel()

			if err != nil {
				isHealthy = false
				checks[name] = map[string]any{
					"status":        "unhealthy",
					"response_time": time.Since(checkStart).String(),
					"error":         err.Error(),
				}

				logger.Error().
					Err(err).
					Str("check", name).
					Dur("response_time", time.Since(checkStart)).
					Msg("health check failed")

				if app := h.server.LoggerService.GetApplication(); app != nil {
					app.RecordCustomEvent("HealthCheckError", map[string]any{
						"check_type":       name,
						"operation":        "health_check",
						"response_time_ms": time.Since(checkStart).Milliseconds(),
						"error_message":    err.Error(),
					})
				}
				continue
			}

			checks[name] = map[string]any{
				"status":        "healthy",
				"response_time": time.Since(checkStart).String(),
			}
		}
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}
