package service

import (
	"finance-swarm/internal/application/port/input"
	"finance-swarm/internal/domain/entity"
)

// WorkerRegistry maps worker names to workers. It is populated once
// during wiring and read-only afterwards.
type WorkerRegistry struct {
	workers map[entity.WorkerName]input.Worker
	order   []entity.WorkerName
}

func NewWorkerRegistry() *WorkerRegistry {
	return &WorkerRegistry{
		workers: make(map[entity.WorkerName]input.Worker),
	}
}

func (r *WorkerRegistry) Register(w input.Worker) {
	if _, seen := r.workers[w.Name()]; !seen {
		r.order = append(r.order, w.Name())
	}
	r.workers[w.Name()] = w
}

func (r *WorkerRegistry) Get(name entity.WorkerName) (input.Worker, bool) {
	w, ok := r.workers[name]
	return w, ok
}

// Names lists registered workers in registration order.
func (r *WorkerRegistry) Names() []entity.WorkerName {
	result := make([]entity.WorkerName, len(r.order))
	copy(result, r.order)
	return result
}
