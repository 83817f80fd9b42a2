// internal/core/services/asynq_enqueuer.go
package services

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/nexisretail/nexis-be/internal/core/ports"
)

// asynqEnqueuer adapts *asynq.Client to the TaskEnqueuer port.
type asynqEnqueuer struct {
	client *asynq.Client
}

// NewAsynqEnqueuer wraps an asynq client for use by services.
func NewAsynqEnqueuer(client *asynq.Client) ports.TaskEnqueuer {
	return &asynqEnqueuer{client: client}
}

func (e *asynqEnqueuer) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return e.client.EnqueueContext(ctx, task, opts...)
}
