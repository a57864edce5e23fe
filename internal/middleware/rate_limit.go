package middleware

import (
	"math"
	"time"

	"github.com/deppfellow/heroes/internal/errs"
	"github.com/deppfellow/heroes/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles clients by IP with an in-memory token bucket.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit allows server.rate_limit requests per second per client IP with a
// burst of twice that. A rate of zero disables it.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	perSecond := r.server.Config.Server.RateLimit
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     int(math.Ceil(perSecond * 2)),
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().
				Str("identifier", identifier).
				Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError()
		},
	})
}

// RecordRateLimitHit records a RateLimitHit custom event in New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
