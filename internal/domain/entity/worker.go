package entity

// WorkerName identifies one analyst role within a run.
type WorkerName string

const (
	WorkerMarketAnalyst WorkerName = "market_analyst"
	WorkerNewsAnalyst   WorkerName = "news_analyst"
	WorkerReportWriter  WorkerName = "report_writer"
)

func (w WorkerName) String() string {
	return string(w)
}

// ActionName identifies a capability exposed by a worker. The set of
// actions is closed: each worker builds its dispatch table at
// construction time and rejects anything outside it.
type ActionName string

const (
	ActionAnalyzeMarket ActionName = "analyze_market"
	ActionAnalyzeNews   ActionName = "analyze_news"
	ActionWriteReport   ActionName = "write_report"
)

func (a ActionName) String() string {
	return string(a)
}

// Task is a unit of work routed to a worker. It doubles as the wire
// schema of the HTTP command surface.
type Task struct {
	Action ActionName `json:"action"`
	Params TaskParams `json:"params"`
}

// TaskParams carries the named arguments of a capability. Query feeds
// the analysts; Analyses feeds the report writer its upstream results
// directly (when absent the writer falls back to the run snapshot).
type TaskParams struct {
	Query    string                 `json:"query,omitempty"`
	Analyses map[WorkerName]*Result `json:"analyses,omitempty"`
}
