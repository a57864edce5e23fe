package middleware

import (
	"github.com/deppfellow/heroes/internal/server"
)

// Middlewares groups every middleware component used by the HTTP server so
// routing code builds them once.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components. Tracing degrades to
// a no-op when New Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	nrApp := s.LoggerService.GetApplication()

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
