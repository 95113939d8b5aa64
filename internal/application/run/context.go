// Package run holds the shared, run-scoped state threaded through
// every worker invocation of one analysis run.
package run

import (
	"fmt"
	"strings"
	"time"

	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/domain/entity"
)

// Context is the single shared handle passed to every worker call
// within one run. It accumulates each worker's latest result and
// delegates thought writes to the ThoughtStore.
//
// A Context is owned by exactly one run and must only be mutated from
// that run's sequential pipeline steps; it is not safe for concurrent
// use.
type Context struct {
	runID     string
	topic     string
	createdAt time.Time

	thoughts output.ThoughtStore

	results map[entity.WorkerName]WorkerResult
	order   []entity.WorkerName
}

// WorkerResult is the latest recorded result of one worker.
type WorkerResult struct {
	LastUpdate time.Time      `json:"last_update"`
	Data       *entity.Result `json:"data"`
}

// Snapshot is the full accumulated state of a run, consumed by the
// report writer and by callers assembling a final report. Order lists
// worker names by first write.
type Snapshot struct {
	RunID     string                                `json:"run_id"`
	Topic     string                                `json:"topic"`
	StartTime time.Time                             `json:"start_time"`
	Workers   map[entity.WorkerName]WorkerResult    `json:"workers"`
	Order     []entity.WorkerName                   `json:"-"`
}

// NewContext creates the context for one analysis run. The run id is
// derived from the topic and the creation timestamp and is immutable
// afterwards.
func NewContext(topic string, thoughts output.ThoughtStore) *Context {
	now := time.Now().UTC()
	return &Context{
		runID:     generateRunID(topic, now),
		topic:     topic,
		createdAt: now,
		thoughts:  thoughts,
		results:   make(map[entity.WorkerName]WorkerResult),
	}
}

func generateRunID(topic string, now time.Time) string {
	return fmt.Sprintf("%s_%s", now.Format("20060102_150405"), strings.ReplaceAll(topic, " ", "_"))
}

func (c *Context) RunID() string        { return c.runID }
func (c *Context) Topic() string        { return c.topic }
func (c *Context) CreatedAt() time.Time { return c.createdAt }

// LogThought forwards a reasoning step to the thought store under this
// run's id. A step <= 0 is numbered automatically.
func (c *Context) LogThought(worker entity.WorkerName, content map[string]any, step int) error {
	return c.thoughts.Append(worker, c.runID, content, step)
}

// ReadThoughts returns the worker's full thought chain for this run.
func (c *Context) ReadThoughts(worker entity.WorkerName) (*entity.ThoughtChain, error) {
	return c.thoughts.Read(worker, c.runID)
}

// RecordResult upserts the worker's latest result. Later writes
// overwrite; insertion order of first writes is preserved for
// Snapshot.
func (c *Context) RecordResult(worker entity.WorkerName, result *entity.Result) {
	if _, seen := c.results[worker]; !seen {
		c.order = append(c.order, worker)
	}
	c.results[worker] = WorkerResult{
		LastUpdate: time.Now().UTC(),
		Data:       result,
	}
}

// Result returns the worker's latest recorded result, if any.
func (c *Context) Result(worker entity.WorkerName) (*entity.Result, bool) {
	r, ok := c.results[worker]
	if !ok {
		return nil, false
	}
	return r.Data, true
}

// Snapshot returns a copy of the accumulated run state.
func (c *Context) Snapshot() Snapshot {
	workers := make(map[entity.WorkerName]WorkerResult, len(c.results))
	for name, r := range c.results {
		workers[name] = r
	}
	order := make([]entity.WorkerName, len(c.order))
	copy(order, c.order)
	return Snapshot{
		RunID:     c.runID,
		Topic:     c.topic,
		StartTime: c.createdAt,
		Workers:   workers,
		Order:     order,
	}
}
