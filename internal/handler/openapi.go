package handler

import (
	_ "embed"
	"net/http"

	"github.com/deppfellow/sampledb-api/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPISpec is the API description served at /docs/openapi.yaml.
//
//go:embed static/openapi.yaml
var OpenAPISpec []byte

//go:embed static/openapi.html
var openAPIUI []byte

// OpenAPIHandler serves the API documentation.
//
// The UI is a static page that loads ReDoc from a CDN and renders the
// embedded OpenAPI document.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the docs page. It is never cached so doc updates
// show up on the next load.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	return c.HTMLBlob(http.StatusOK, openAPIUI)
}

// ServeOpenAPISpec serves the embedded OpenAPI document.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	return c.Blob(http.StatusOK, "application/yaml; charset=utf-8", OpenAPISpec)
}
