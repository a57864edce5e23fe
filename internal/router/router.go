// Package router builds the echo instance: it installs the global
// middleware, the error handler and every route.
package router

import (
	"github.com/deppfellow/heroes/internal/handler"
	"github.com/deppfellow/heroes/internal/middleware"
	"github.com/deppfellow/heroes/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the configured echo instance.
//
// Middleware order matters: the request id must exist before tracing and
// the context logger read it, and the request logger must see the logger
// the enhancer attached.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.Secure(),
		mw.Global.CORS(),
		mw.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerHeroRoutes(router, h)

	return router
}
