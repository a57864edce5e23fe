// Package handler is the HTTP layer that sits between the router and the
// services.
//
// It binds and validates requests through the validation package, calls
// the service layer and writes JSON responses. Errors are returned to echo
// and rendered by the global error handler.
package handler

import (
	"github.com/deppfellow/heroes/internal/server"
	"github.com/deppfellow/heroes/internal/service"
)

// Handlers groups every HTTP handler so router setup passes one value.
type Handlers struct {
	Greeting *GreetingHandler
	Hero     *HeroHandler
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Greeting: NewGreetingHandler(s),
		Hero:     NewHeroHandler(s, services.Heroes),
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
	}
}
