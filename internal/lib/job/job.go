// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) with asynq.Client
//   - a server runs workers that process those tasks (consumer) with asynq.Server
//
// The only task today is the roster notification sent after a hero is created.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/heroes/internal/config"
	"github.com/deppfellow/heroes/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// mailer and rosterEmail are set by InitHandlers. A nil mailer means
	// roster notifications are only logged.
	mailer      heroMailer
	rosterEmail string
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Concurrency is 10 workers, shared across queues by weight
// (critical 6, default 3, low 1).
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// EnqueueHeroCreated schedules the roster notification for hero.
func (j *JobService) EnqueueHeroCreated(ctx context.Context, hero *model.Hero) error {
	task, err := NewHeroCreatedTask(hero)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", TaskHeroCreated, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("hero_id", hero.ID).
		Msg("enqueued hero created task")

	return nil
}

// Start registers task handlers and starts the worker server. It does not
// block; workers run until Stop.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskHeroCreated, j.handleHeroCreatedTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}
