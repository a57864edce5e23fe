package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/heroes/internal/config"
	"github.com/deppfellow/heroes/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type heroMailer interface {
	SendHeroCreatedEmail(ctx context.Context, to string, data email.HeroCreatedData) error
}

// InitHandlers wires the dependencies used by task handlers. Email is only
// sent when both the Resend key and the roster address are configured.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Integration.EmailEnabled() {
		logger.Info().Msg("roster email disabled, hero notifications will only be logged")
		return
	}
	j.mailer = email.NewClient(cfg, logger)
	j.rosterEmail = cfg.Integration.RosterEmail
}

func (j *JobService) handleHeroCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p HeroCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal hero created payload: %w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskHeroCreated).
		Int64("hero_id", p.ID).
		Str("name", p.Name).
		Msg("processing hero created task")

	if j.mailer == nil {
		return nil
	}

	err := j.mailer.SendHeroCreatedEmail(ctx, j.rosterEmail, email.HeroCreatedData{
		ID:         p.ID,
		Name:       p.Name,
		SecretName: p.SecretName,
	})
	if err != nil {
		j.logger.Error().
			Err(err).
			Str("type", TaskHeroCreated).
			Int64("hero_id", p.ID).
			Msg("failed to send roster email")
		return err
	}

	j.logger.Info().
		Str("type", TaskHeroCreated).
		Int64("hero_id", p.ID).
		Str("to", j.rosterEmail).
		Msg("sent roster email")

	return nil
}
