package handler

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/deppfellow/heroes/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed static/openapi.html static/openapi.json
var staticFS embed.FS

// OpenAPIHandler serves the API document and a browser UI for it.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the docs page. It is never cached.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := staticFS.ReadFile("static/openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}

// ServeOpenAPISpec serves the OpenAPI document.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	doc, err := staticFS.ReadFile("static/openapi.json")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI document: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")

	return c.JSONBlob(http.StatusOK, doc)
}
