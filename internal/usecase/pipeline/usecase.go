// Package pipeline sequences one full analysis run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"finance-swarm/internal/application/port/input"
	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/application/run"
	"finance-swarm/internal/application/service"
	"finance-swarm/internal/domain/entity"
)

var _ input.AnalysisPipeline = (*UseCase)(nil)

// UseCase runs market analyst, news analyst and report writer in fixed
// total order for one topic. A failure in any stage aborts the run; no
// partial report is produced.
type UseCase struct {
	registry *service.WorkerRegistry
	thoughts output.ThoughtStore
	logger   output.LoggerPort
}

func New(registry *service.WorkerRegistry, thoughts output.ThoughtStore, logger output.LoggerPort) *UseCase {
	return &UseCase{
		registry: registry,
		thoughts: thoughts,
		logger:   logger,
	}
}

func (uc *UseCase) Run(ctx context.Context, topic string) (*entity.Report, error) {
	rc := run.NewContext(topic, uc.thoughts)
	uc.logger.Info("starting analysis", "topic", topic, "run_id", rc.RunID())

	market, err := uc.worker(entity.WorkerMarketAnalyst)
	if err != nil {
		return nil, err
	}
	news, err := uc.worker(entity.WorkerNewsAnalyst)
	if err != nil {
		return nil, err
	}
	writer, err := uc.worker(entity.WorkerReportWriter)
	if err != nil {
		return nil, err
	}

	marketRes, err := market.ExecuteTask(ctx, entity.Task{
		Action: entity.ActionAnalyzeMarket,
		Params: entity.TaskParams{Query: topic},
	}, rc)
	if err != nil {
		return nil, fmt.Errorf("market analysis stage: %w", err)
	}

	newsRes, err := news.ExecuteTask(ctx, entity.Task{
		Action: entity.ActionAnalyzeNews,
		Params: entity.TaskParams{Query: topic},
	}, rc)
	if err != nil {
		return nil, fmt.Errorf("news analysis stage: %w", err)
	}

	reportRes, err := writer.ExecuteTask(ctx, entity.Task{
		Action: entity.ActionWriteReport,
		Params: entity.TaskParams{
			Analyses: map[entity.WorkerName]*entity.Result{
				entity.WorkerMarketAnalyst: marketRes,
				entity.WorkerNewsAnalyst:   newsRes,
			},
		},
	}, rc)
	if err != nil {
		return nil, fmt.Errorf("report stage: %w", err)
	}

	report, ok := entity.ReportOf(reportRes)
	if !ok {
		return nil, fmt.Errorf("report stage: unexpected result payload %T", reportRes.Data)
	}
	report.Topic = topic
	report.Timestamp = time.Now().UTC()

	uc.logger.Info("analysis completed", "run_id", rc.RunID(),
		"recommendations", len(report.Content.Recommendations))
	return report, nil
}

func (uc *UseCase) worker(name entity.WorkerName) (input.Worker, error) {
	w, ok := uc.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("worker %q is not registered", name)
	}
	return w, nil
}
