package output

import "context"

// SummaryPort is the language-model summarizer collaborator. When
// wired, the report writer hands it the deterministic summary draft
// and the recommendation list and uses the returned narrative instead.
type SummaryPort interface {
	Summarize(ctx context.Context, topic, draft string, recommendations []string) (string, error)
}
