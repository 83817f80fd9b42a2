// internal/core/ports/tasks.go
package ports

import (
	"context"

	"github.com/hibiken/asynq"
)

// TaskEnqueuer abstracts the asynq client so services can hand work to the
// background worker without owning the queue connection. Enqueue failures
// after a committed sale are logged, never propagated.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
