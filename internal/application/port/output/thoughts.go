package output

import "finance-swarm/internal/domain/entity"

// ThoughtStore persists append-only reasoning traces addressed by
// (worker, run id).
//
// Append performs a full read-modify-write of the chain. Concurrent
// appends to the same (worker, run id) key are not safe; callers must
// not invoke the same worker concurrently within one run.
type ThoughtStore interface {
	// Append adds one entry. A step <= 0 is replaced by
	// len(existing)+1.
	Append(worker entity.WorkerName, runID string, content map[string]any, step int) error
	// Read returns the chain for the key, or an empty chain if
	// nothing was ever appended.
	Read(worker entity.WorkerName, runID string) (*entity.ThoughtChain, error)
}
