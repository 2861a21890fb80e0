// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/sampledb-api/internal/handler"
	"github.com/deppfellow/sampledb-api/internal/middleware"
	"github.com/deppfellow/sampledb-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route registered.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// RequestID and NewRelicMiddleware must precede the middleware that read
	// them; Recover stays innermost.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Record(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerAPIRoutes(router, h)

	return router
}

// registerAPIRoutes registers the dataset endpoints.
func registerAPIRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/agents", h.Agents.List())
	r.GET("/customers", h.Customers.List())

	companies := r.Group("/companies")
	companies.GET("", h.Companies.ListCompanies())
	companies.POST("", h.Companies.CreateCompany())
	companies.GET("/:id", h.Companies.GetCompany())
	companies.PUT("/:id", h.Companies.ReplaceCompany())
	companies.PATCH("/:id", h.Companies.PatchCompany())
	companies.DELETE("/:id", h.Companies.DeleteCompany())
}
