// Package thoughtstore persists worker reasoning traces as one JSON
// document per (UTC date, worker, run id).
package thoughtstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/domain/entity"
)

var _ output.ThoughtStore = (*FileStore)(nil)

// FileStore is a durable append-only thought log. Each Append reads
// the whole chain, appends one entry and rewrites the file in full.
// Keys are partitioned by date, worker and run id, so concurrent runs
// do not collide; concurrent appends to the same key are not safe and
// callers must not invoke the same worker concurrently within one run.
type FileStore struct {
	dir string
	now func() time.Time
}

func New(dir string) *FileStore {
	return &FileStore{
		dir: dir,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *FileStore) path(worker entity.WorkerName, runID string) string {
	date := s.now().Format("20060102")
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s_%s_thoughts.json", date, worker, runID))
}

// Append adds one entry to the chain. A step <= 0 defaults to
// len(existing)+1. I/O failures are fatal to the calling operation.
func (s *FileStore) Append(worker entity.WorkerName, runID string, content map[string]any, step int) error {
	path := s.path(worker, runID)

	chain, err := s.load(worker, runID, path)
	if err != nil {
		return err
	}
	if len(chain.Thoughts) == 0 && chain.Timestamp.IsZero() {
		chain.Timestamp = s.now()
	}

	if step <= 0 {
		step = len(chain.Thoughts) + 1
	}
	chain.Thoughts = append(chain.Thoughts, entity.ThoughtEntry{
		Step:      step,
		Timestamp: s.now(),
		Content:   content,
	})

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &entity.PersistenceError{Op: "mkdir", Path: s.dir, Err: err}
	}
	data, err := json.MarshalIndent(chain, "", "  ")
	if err != nil {
		return &entity.PersistenceError{Op: "encode", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &entity.PersistenceError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Read returns the chain for the key. A key with no prior writes
// yields an empty chain, never an error.
func (s *FileStore) Read(worker entity.WorkerName, runID string) (*entity.ThoughtChain, error) {
	return s.load(worker, runID, s.path(worker, runID))
}

func (s *FileStore) load(worker entity.WorkerName, runID, path string) (*entity.ThoughtChain, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &entity.ThoughtChain{
			Agent:      worker,
			AnalysisID: runID,
			Thoughts:   []entity.ThoughtEntry{},
		}, nil
	}
	if err != nil {
		return nil, &entity.PersistenceError{Op: "read", Path: path, Err: err}
	}

	var chain entity.ThoughtChain
	if err := json.Unmarshal(data, &chain); err != nil {
		return nil, &entity.PersistenceError{Op: "decode", Path: path, Err: err}
	}
	return &chain, nil
}
