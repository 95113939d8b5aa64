package input

import (
	"context"

	"finance-swarm/internal/domain/entity"
)

// AnalysisPipeline runs one full analysis for a topic: market analyst,
// then news analyst, then report writer, in that fixed order. Any
// stage failure aborts the run; no partial report is produced.
type AnalysisPipeline interface {
	Run(ctx context.Context, topic string) (*entity.Report, error)
}
