package handler

import (
	"context"

	"github.com/deppfellow/heroes/internal/model"
	"github.com/deppfellow/heroes/internal/server"
	"github.com/deppfellow/heroes/internal/validation"
	"github.com/labstack/echo/v4"
)

// HeroCreator creates heroes.
type HeroCreator interface {
	Create(ctx context.Context, name string) (*model.Hero, error)
}

type HeroHandler struct {
	Handler
	heroes HeroCreator
}

func NewHeroHandler(s *server.Server, heroes HeroCreator) *HeroHandler {
	return &HeroHandler{
		Handler: NewHandler(s),
		heroes:  heroes,
	}
}

// CreateHeroRequest is read from the query string. Name is a pointer so an
// absent parameter can be told apart from an empty one.
type CreateHeroRequest struct {
	Name *string `query:"name" validate:"required"`
}

func (r *CreateHeroRequest) Bind(c echo.Context) error {
	params := c.QueryParams()
	if params.Has("name") {
		name := params.Get("name")
		r.Name = &name
	}
	return nil
}

func (r *CreateHeroRequest) Validate() error {
	return validation.Struct(r)
}

// CreateHero stores a hero named after the request and returns the stored
// record.
func (h *HeroHandler) CreateHero(c echo.Context, req *CreateHeroRequest) (*model.Hero, error) {
	return h.heroes.Create(c.Request().Context(), *req.Name)
}
