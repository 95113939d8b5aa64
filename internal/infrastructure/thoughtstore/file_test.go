package thoughtstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"finance-swarm/internal/domain/entity"
)

var fixedNow = time.Date(2024, 12, 19, 10, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s := New(t.TempDir())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestAppend_AutoNumbersSteps(t *testing.T) {
	s := newTestStore(t)

	for _, action := range []string{"task_received", "start_processing", "market_analysis"} {
		if err := s.Append(entity.WorkerMarketAnalyst, "run-1", map[string]any{"action": action}, 0); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	chain, err := s.Read(entity.WorkerMarketAnalyst, "run-1")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(chain.Thoughts) != 3 {
		t.Fatalf("expected 3 thoughts, got %d", len(chain.Thoughts))
	}
	for i, thought := range chain.Thoughts {
		if thought.Step != i+1 {
			t.Errorf("thought %d: expected step %d, got %d", i, i+1, thought.Step)
		}
	}
	if chain.Thoughts[1].Content["action"] != "start_processing" {
		t.Errorf("append order lost: %v", chain.Thoughts)
	}
}

func TestAppend_ExplicitStepPreserved(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(entity.WorkerNewsAnalyst, "run-1", map[string]any{"action": "retry"}, 7); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	chain, err := s.Read(entity.WorkerNewsAnalyst, "run-1")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if chain.Thoughts[0].Step != 7 {
		t.Errorf("expected explicit step 7, got %d", chain.Thoughts[0].Step)
	}
}

func TestAppend_FileNamePartitionsByDateWorkerRun(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	s.now = func() time.Time { return fixedNow }

	if err := s.Append(entity.WorkerMarketAnalyst, "20241219_103000_Tesla", map[string]any{"action": "task_received"}, 0); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	want := filepath.Join(dir, "20241219_market_analyst_20241219_103000_Tesla_thoughts.json")
	if _, err := os.Stat(want); err != nil {
		entries, _ := os.ReadDir(dir)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected %s, dir has %v", want, names)
	}
}

func TestRead_UnknownKeyYieldsEmptyChain(t *testing.T) {
	s := newTestStore(t)

	chain, err := s.Read(entity.WorkerReportWriter, "never-written")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if chain.Agent != entity.WorkerReportWriter || chain.AnalysisID != "never-written" {
		t.Errorf("unexpected chain identity: %+v", chain)
	}
	if chain.Thoughts == nil || len(chain.Thoughts) != 0 {
		t.Errorf("expected empty non-nil thoughts, got %v", chain.Thoughts)
	}
}

func TestRead_IsIdempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(entity.WorkerMarketAnalyst, "run-1", map[string]any{"action": "task_received"}, 0); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	first, err := s.Read(entity.WorkerMarketAnalyst, "run-1")
	if err != nil {
		t.Fatalf("first Read failed: %v", err)
	}
	second, err := s.Read(entity.WorkerMarketAnalyst, "run-1")
	if err != nil {
		t.Fatalf("second Read failed: %v", err)
	}
	if len(first.Thoughts) != len(second.Thoughts) {
		t.Errorf("reads disagree: %d vs %d", len(first.Thoughts), len(second.Thoughts))
	}
}

func TestAppend_SeparateWorkersSeparateChains(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(entity.WorkerMarketAnalyst, "run-1", map[string]any{"action": "a"}, 0); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Append(entity.WorkerNewsAnalyst, "run-1", map[string]any{"action": "b"}, 0); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	market, _ := s.Read(entity.WorkerMarketAnalyst, "run-1")
	news, _ := s.Read(entity.WorkerNewsAnalyst, "run-1")
	if len(market.Thoughts) != 1 || len(news.Thoughts) != 1 {
		t.Errorf("chains must not share entries: %d, %d", len(market.Thoughts), len(news.Thoughts))
	}
	if market.Thoughts[0].Content["action"] != "a" || news.Thoughts[0].Content["action"] != "b" {
		t.Error("entries routed to the wrong chain")
	}
}

func TestRead_CorruptFileIsPersistenceFailure(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	s.now = func() time.Time { return fixedNow }

	path := filepath.Join(dir, "20241219_market_analyst_run-1_thoughts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := s.Read(entity.WorkerMarketAnalyst, "run-1")
	var persistence *entity.PersistenceError
	if !errors.As(err, &persistence) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if persistence.Op != "decode" {
		t.Errorf("expected decode op, got %q", persistence.Op)
	}
}

func TestAppend_SetsChainTimestampOnce(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(entity.WorkerMarketAnalyst, "run-1", map[string]any{"action": "first"}, 0); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	later := fixedNow.Add(time.Hour)
	s.now = func() time.Time { return later }
	if err := s.Append(entity.WorkerMarketAnalyst, "run-1", map[string]any{"action": "second"}, 0); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	chain, err := s.Read(entity.WorkerMarketAnalyst, "run-1")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !chain.Timestamp.Equal(fixedNow) {
		t.Errorf("chain timestamp must be set on first write, got %v", chain.Timestamp)
	}
	if !chain.Thoughts[1].Timestamp.Equal(later) {
		t.Errorf("entry timestamp must track the append time, got %v", chain.Thoughts[1].Timestamp)
	}
}
