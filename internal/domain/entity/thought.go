package entity

import "time"

// ThoughtEntry is one recorded reasoning step. Entries are append-only:
// once written they are never mutated.
type ThoughtEntry struct {
	Step      int            `json:"step"`
	Timestamp time.Time      `json:"timestamp"`
	Content   map[string]any `json:"content"`
}

// ThoughtChain is the persisted unit of a worker's reasoning trace,
// keyed by (worker, run id). Reading a chain that was never written
// yields an empty chain, not an error.
type ThoughtChain struct {
	Agent      WorkerName     `json:"agent"`
	AnalysisID string         `json:"analysis_id"`
	Timestamp  time.Time      `json:"timestamp,omitzero"`
	Thoughts   []ThoughtEntry `json:"thoughts"`
}
