package run

import (
	"strings"
	"testing"

	"finance-swarm/internal/domain/entity"
)

type recordingStore struct {
	appends []appendCall
}

type appendCall struct {
	worker  entity.WorkerName
	runID   string
	content map[string]any
	step    int
}

func (s *recordingStore) Append(worker entity.WorkerName, runID string, content map[string]any, step int) error {
	s.appends = append(s.appends, appendCall{worker: worker, runID: runID, content: content, step: step})
	return nil
}

func (s *recordingStore) Read(worker entity.WorkerName, runID string) (*entity.ThoughtChain, error) {
	return &entity.ThoughtChain{Agent: worker, AnalysisID: runID, Thoughts: []entity.ThoughtEntry{}}, nil
}

func TestNewContext_RunIDFromTopicAndTime(t *testing.T) {
	rc := NewContext("Tesla Q4 2024 Earnings", &recordingStore{})

	runID := rc.RunID()
	if !strings.HasSuffix(runID, "_Tesla_Q4_2024_Earnings") {
		t.Errorf("run id must end with the underscored topic, got %q", runID)
	}
	wantPrefix := rc.CreatedAt().Format("20060102_150405") + "_"
	if !strings.HasPrefix(runID, wantPrefix) {
		t.Errorf("run id must start with the creation timestamp, got %q", runID)
	}
	if rc.Topic() != "Tesla Q4 2024 Earnings" {
		t.Errorf("unexpected topic %q", rc.Topic())
	}
}

func TestLogThought_ForwardsRunID(t *testing.T) {
	store := &recordingStore{}
	rc := NewContext("Tesla Q4 2024 Earnings", store)

	if err := rc.LogThought(entity.WorkerMarketAnalyst, map[string]any{"action": "task_received"}, 0); err != nil {
		t.Fatalf("LogThought failed: %v", err)
	}

	if len(store.appends) != 1 {
		t.Fatalf("expected 1 append, got %d", len(store.appends))
	}
	call := store.appends[0]
	if call.worker != entity.WorkerMarketAnalyst || call.runID != rc.RunID() {
		t.Errorf("unexpected append key: %+v", call)
	}
}

func TestReadThoughts_UsesOwnRunID(t *testing.T) {
	store := &recordingStore{}
	rc := NewContext("Tesla Q4 2024 Earnings", store)

	chain, err := rc.ReadThoughts(entity.WorkerMarketAnalyst)
	if err != nil {
		t.Fatalf("ReadThoughts failed: %v", err)
	}
	if chain.AnalysisID != rc.RunID() {
		t.Errorf("expected chain for run %q, got %q", rc.RunID(), chain.AnalysisID)
	}
}

func TestRecordResult_LatestWins(t *testing.T) {
	rc := NewContext("Tesla Q4 2024 Earnings", &recordingStore{})

	first := &entity.Result{Source: "Yahoo Finance", Query: "first"}
	second := &entity.Result{Source: "Yahoo Finance", Query: "second"}
	rc.RecordResult(entity.WorkerMarketAnalyst, first)
	rc.RecordResult(entity.WorkerMarketAnalyst, second)

	got, ok := rc.Result(entity.WorkerMarketAnalyst)
	if !ok {
		t.Fatal("expected a result")
	}
	if got.Query != "second" {
		t.Errorf("expected latest result, got %q", got.Query)
	}
}

func TestResult_UnknownWorker(t *testing.T) {
	rc := NewContext("Tesla Q4 2024 Earnings", &recordingStore{})

	if _, ok := rc.Result(entity.WorkerNewsAnalyst); ok {
		t.Error("expected no result for a worker that never wrote")
	}
}

func TestSnapshot_PreservesFirstWriteOrder(t *testing.T) {
	rc := NewContext("Tesla Q4 2024 Earnings", &recordingStore{})

	rc.RecordResult(entity.WorkerMarketAnalyst, &entity.Result{})
	rc.RecordResult(entity.WorkerNewsAnalyst, &entity.Result{})
	rc.RecordResult(entity.WorkerMarketAnalyst, &entity.Result{})

	snapshot := rc.Snapshot()
	if len(snapshot.Order) != 2 {
		t.Fatalf("expected 2 order entries, got %v", snapshot.Order)
	}
	if snapshot.Order[0] != entity.WorkerMarketAnalyst || snapshot.Order[1] != entity.WorkerNewsAnalyst {
		t.Errorf("order must track first writes, got %v", snapshot.Order)
	}
	if snapshot.RunID != rc.RunID() || snapshot.Topic != rc.Topic() {
		t.Errorf("snapshot identity mismatch: %+v", snapshot)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	rc := NewContext("Tesla Q4 2024 Earnings", &recordingStore{})
	rc.RecordResult(entity.WorkerMarketAnalyst, &entity.Result{})

	snapshot := rc.Snapshot()
	delete(snapshot.Workers, entity.WorkerMarketAnalyst)

	if _, ok := rc.Result(entity.WorkerMarketAnalyst); !ok {
		t.Error("mutating a snapshot must not affect the context")
	}
}
