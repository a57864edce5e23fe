package service

import (
	"context"
	"time"

	"github.com/deppfellow/heroes/internal/database"
	"github.com/deppfellow/heroes/internal/model"
	"github.com/deppfellow/heroes/internal/repository"
	"github.com/rs/zerolog"
)

// notifyTimeout bounds how long Create waits on the notifier once the hero
// is committed.
const notifyTimeout = 2 * time.Second

// HeroNotifier is told about every hero that was stored.
type HeroNotifier interface {
	EnqueueHeroCreated(ctx context.Context, hero *model.Hero) error
}

type HeroService struct {
	sessions database.SessionOpener
	heroes   func(database.Session) repository.HeroStore
	notifier HeroNotifier
	logger   *zerolog.Logger
}

// NewHeroService builds the hero service. notifier may be nil.
func NewHeroService(
	sessions database.SessionOpener,
	heroes func(database.Session) repository.HeroStore,
	notifier HeroNotifier,
	logger *zerolog.Logger,
) *HeroService {
	return &HeroService{
		sessions: sessions,
		heroes:   heroes,
		notifier: notifier,
		logger:   logger,
	}
}

// Create stores a new hero called name with its derived secret name and no
// age. The session is released before the notifier runs.
func (s *HeroService) Create(ctx context.Context, name string) (*model.Hero, error) {
	var created *model.Hero

	err := database.WithSession(ctx, s.sessions, func(session database.Session) error {
		hero, err := s.heroes(session).Create(ctx, model.NewHero(name))
		if err != nil {
			return err
		}
		created = hero
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger := s.loggerFor(ctx)
	logger.Info().
		Int64("hero_id", created.ID).
		Str("name", created.Name).
		Msg("hero created")

	if s.notifier != nil {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		err := s.notifier.EnqueueHeroCreated(notifyCtx, created)
		cancel()
		if err != nil {
			logger.Warn().
				Err(err).
				Int64("hero_id", created.ID).
				Msg("failed to enqueue hero notification")
		}
	}

	return created, nil
}

// loggerFor prefers the request-scoped logger carried by ctx.
func (s *HeroService) loggerFor(ctx context.Context) *zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	return s.logger
}
