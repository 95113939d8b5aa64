package input

import (
	"context"

	"finance-swarm/internal/application/run"
	"finance-swarm/internal/domain/entity"
)

// Worker is a role-specific unit of execution. Each variant exposes a
// closed capability table; ExecuteTask routes a task to the matching
// capability, records a task_received thought before execution and
// publishes the result into the run context on success.
type Worker interface {
	Name() entity.WorkerName
	Actions() []entity.ActionName
	ExecuteTask(ctx context.Context, task entity.Task, rc *run.Context) (*entity.Result, error)
}
