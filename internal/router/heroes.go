package router

import (
	"net/http"

	"github.com/deppfellow/heroes/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerHeroRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", handler.Handle(h.Greeting.Handler, h.Greeting.Greet, http.StatusOK))

	r.POST("/heroes/", handler.Handle(h.Hero.Handler, h.Hero.CreateHero, http.StatusOK))

	// Clients posting without the trailing slash are sent to the canonical
	// path with their query string intact.
	r.POST("/heroes", func(c echo.Context) error {
		target := "/heroes/"
		if query := c.QueryString(); query != "" {
			target += "?" + query
		}
		return c.Redirect(http.StatusTemporaryRedirect, target)
	})
}
