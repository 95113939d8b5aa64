// Package workers implements the three analyst workers and the shared
// task-dispatch mechanics they are built on.
package workers

import (
	"context"
	"fmt"

	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/application/run"
	"finance-swarm/internal/domain/entity"
)

// capability is one named operation of a worker. The run context is
// part of the call contract: every capability logs and records through
// it, no nil checks.
type capability func(ctx context.Context, params entity.TaskParams, rc *run.Context) (*entity.Result, error)

// identity is the small agent-identity value a worker owns instead of
// inheriting from a conversational agent base type.
type identity struct {
	name entity.WorkerName
	role string
}

// dispatcher routes a named action to the matching capability. Tables
// are fixed at construction; unknown actions are rejected with a typed
// error rather than resolved reflectively.
type dispatcher struct {
	identity
	caps   map[entity.ActionName]capability
	order  []entity.ActionName
	logger output.LoggerPort
}

func newDispatcher(name entity.WorkerName, role string, logger output.LoggerPort) dispatcher {
	return dispatcher{
		identity: identity{name: name, role: role},
		caps:     make(map[entity.ActionName]capability),
		logger:   logger,
	}
}

func (d *dispatcher) register(action entity.ActionName, cap capability) {
	if _, dup := d.caps[action]; !dup {
		d.order = append(d.order, action)
	}
	d.caps[action] = cap
}

func (d *dispatcher) Name() entity.WorkerName { return d.name }

func (d *dispatcher) Actions() []entity.ActionName {
	actions := make([]entity.ActionName, len(d.order))
	copy(actions, d.order)
	return actions
}

// ExecuteTask is the dispatcher-facing entry point of every worker:
// validate the action, record a task_received thought, invoke the
// capability, publish the result. A failed call records no partial
// state; the error keeps its original kind and gains the action name
// as prefix.
func (d *dispatcher) ExecuteTask(ctx context.Context, task entity.Task, rc *run.Context) (*entity.Result, error) {
	if task.Action == "" {
		err := &entity.InvalidTaskError{Reason: "task must specify an action"}
		d.logger.Error("task rejected", "worker", d.name, "error", err)
		return nil, err
	}

	if err := rc.LogThought(d.name, map[string]any{
		"action": "task_received",
		"task":   task,
	}, 0); err != nil {
		d.logger.Error("thought logging failed", "worker", d.name, "action", task.Action, "error", err)
		return nil, fmt.Errorf("%s: %w", task.Action, err)
	}

	cap, ok := d.caps[task.Action]
	if !ok {
		err := &entity.UnknownActionError{Worker: d.name, Action: task.Action}
		d.logger.Error("task rejected", "worker", d.name, "error", err)
		return nil, err
	}

	result, err := cap(ctx, task.Params, rc)
	if err != nil {
		d.logger.Error("action failed", "worker", d.name, "action", task.Action, "error", err)
		return nil, fmt.Errorf("%s: %w", task.Action, err)
	}

	rc.RecordResult(d.name, result)
	return result, nil
}
