package service

import (
	"github.com/deppfellow/heroes/internal/repository"
	"github.com/deppfellow/heroes/internal/server"
)

type Services struct {
	Heroes *HeroService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier HeroNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Heroes: NewHeroService(s.DB, repos.Heroes, notifier, s.Logger),
	}, nil
}
