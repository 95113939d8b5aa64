package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finance-swarm/internal/application/run"
	"finance-swarm/internal/application/service"
	"finance-swarm/internal/domain/entity"
	"finance-swarm/internal/infrastructure/logger"
)

type fakePipeline struct {
	report *entity.Report
	err    error
}

func (f *fakePipeline) Run(_ context.Context, topic string) (*entity.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	report := *f.report
	report.Topic = topic
	return &report, nil
}

type memThoughts struct {
	chains map[string][]entity.ThoughtEntry
}

func newMemThoughts() *memThoughts {
	return &memThoughts{chains: make(map[string][]entity.ThoughtEntry)}
}

func (m *memThoughts) Append(worker entity.WorkerName, runID string, content map[string]any, step int) error {
	key := string(worker) + "/" + runID
	if step <= 0 {
		step = len(m.chains[key]) + 1
	}
	m.chains[key] = append(m.chains[key], entity.ThoughtEntry{Step: step, Content: content})
	return nil
}

func (m *memThoughts) Read(worker entity.WorkerName, runID string) (*entity.ThoughtChain, error) {
	return &entity.ThoughtChain{
		Agent:      worker,
		AnalysisID: runID,
		Thoughts:   m.chains[string(worker)+"/"+runID],
	}, nil
}

type stubWorker struct {
	name   entity.WorkerName
	result *entity.Result
	err    error
}

func (s *stubWorker) Name() entity.WorkerName      { return s.name }
func (s *stubWorker) Actions() []entity.ActionName { return []entity.ActionName{entity.ActionAnalyzeMarket} }

func (s *stubWorker) ExecuteTask(_ context.Context, task entity.Task, rc *run.Context) (*entity.Result, error) {
	if task.Action == "" {
		return nil, &entity.InvalidTaskError{Reason: "task must specify an action"}
	}
	if s.err != nil {
		return nil, s.err
	}
	rc.RecordResult(s.name, s.result)
	return s.result, nil
}

func newTestServer(pipeline *fakePipeline, worker *stubWorker) *Server {
	registry := service.NewWorkerRegistry()
	if worker != nil {
		registry.Register(worker)
	}
	return NewServer(pipeline, registry, newMemThoughts(), logger.NewNop())
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakePipeline{report: &entity.Report{}}, nil)

	rec := doRequest(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRunAnalysis_ReturnsReport(t *testing.T) {
	s := newTestServer(&fakePipeline{report: &entity.Report{ReportType: "Financial Analysis"}}, nil)

	rec := doRequest(t, s, http.MethodPost, "/v1/analyses", `{"topic": "Tesla Q4 2024 Earnings"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var report entity.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.Topic != "Tesla Q4 2024 Earnings" || report.ReportType != "Financial Analysis" {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestRunAnalysis_MissingTopicIsBadRequest(t *testing.T) {
	s := newTestServer(&fakePipeline{report: &entity.Report{}}, nil)

	for _, body := range []string{``, `{}`, `not json`} {
		rec := doRequest(t, s, http.MethodPost, "/v1/analyses", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestRunAnalysis_ProviderFailureIsBadGateway(t *testing.T) {
	s := newTestServer(&fakePipeline{
		err: &entity.ProviderError{Provider: "serpapi", Err: errors.New("quota exceeded")},
	}, nil)

	rec := doRequest(t, s, http.MethodPost, "/v1/analyses", `{"topic": "Tesla Q4 2024 Earnings"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestRunAnalysis_PersistenceFailureIsInternalError(t *testing.T) {
	s := newTestServer(&fakePipeline{
		err: &entity.PersistenceError{Op: "write", Path: "logs/x.json", Err: errors.New("disk full")},
	}, nil)

	rec := doRequest(t, s, http.MethodPost, "/v1/analyses", `{"topic": "Tesla Q4 2024 Earnings"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestWorkerTask_ExecutesNamedWorker(t *testing.T) {
	worker := &stubWorker{
		name:   entity.WorkerMarketAnalyst,
		result: &entity.Result{Source: "Yahoo Finance", Query: "Tesla Q4 2024 Earnings"},
	}
	s := newTestServer(&fakePipeline{report: &entity.Report{}}, worker)

	rec := doRequest(t, s, http.MethodPost, "/v1/workers/market_analyst/tasks",
		`{"topic": "Tesla Q4 2024 Earnings", "task": {"action": "analyze_market", "params": {"query": "Tesla Q4 2024 Earnings"}}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp taskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RunID == "" {
		t.Error("expected a run id")
	}
	if resp.Result == nil || resp.Result.Source != "Yahoo Finance" {
		t.Errorf("unexpected result: %+v", resp.Result)
	}
}

func TestWorkerTask_UnknownWorkerIsNotFound(t *testing.T) {
	s := newTestServer(&fakePipeline{report: &entity.Report{}}, nil)

	rec := doRequest(t, s, http.MethodPost, "/v1/workers/weather_analyst/tasks",
		`{"topic": "Tesla Q4 2024 Earnings", "task": {"action": "analyze_market"}}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWorkerTask_InvalidTaskIsBadRequest(t *testing.T) {
	worker := &stubWorker{name: entity.WorkerMarketAnalyst, result: &entity.Result{}}
	s := newTestServer(&fakePipeline{report: &entity.Report{}}, worker)

	rec := doRequest(t, s, http.MethodPost, "/v1/workers/market_analyst/tasks",
		`{"topic": "Tesla Q4 2024 Earnings", "task": {}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWorkerTask_UnknownActionIsBadRequest(t *testing.T) {
	worker := &stubWorker{
		name: entity.WorkerMarketAnalyst,
		err:  &entity.UnknownActionError{Worker: entity.WorkerMarketAnalyst, Action: "dance"},
	}
	s := newTestServer(&fakePipeline{report: &entity.Report{}}, worker)

	rec := doRequest(t, s, http.MethodPost, "/v1/workers/market_analyst/tasks",
		`{"topic": "Tesla Q4 2024 Earnings", "task": {"action": "dance"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReadThoughts(t *testing.T) {
	store := newMemThoughts()
	if err := store.Append(entity.WorkerMarketAnalyst, "run-1", map[string]any{"action": "task_received"}, 0); err != nil {
		t.Fatal(err)
	}
	s := NewServer(&fakePipeline{report: &entity.Report{}}, service.NewWorkerRegistry(), store, logger.NewNop())

	rec := doRequest(t, s, http.MethodGet, "/v1/runs/run-1/thoughts/market_analyst", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var chain entity.ThoughtChain
	if err := json.Unmarshal(rec.Body.Bytes(), &chain); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if chain.AnalysisID != "run-1" || len(chain.Thoughts) != 1 {
		t.Errorf("unexpected chain: %+v", chain)
	}
}
