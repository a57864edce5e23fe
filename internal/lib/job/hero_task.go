package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/heroes/internal/model"
	"github.com/hibiken/asynq"
)

const (
	// TaskHeroCreated is the task type name stored in Redis.
	TaskHeroCreated = "hero:created"
)

// HeroCreatedPayload is the JSON payload of the hero created task.
type HeroCreatedPayload struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	SecretName string `json:"secret_name"`
}

// NewHeroCreatedTask builds the task announcing hero. It retries up to 3
// times on the low queue with a 30 second timeout per attempt.
func NewHeroCreatedTask(hero *model.Hero) (*asynq.Task, error) {
	payload, err := json.Marshal(HeroCreatedPayload{
		ID:         hero.ID,
		Name:       hero.Name,
		SecretName: hero.SecretName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskHeroCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
