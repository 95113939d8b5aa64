package workers

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/application/run"
	"finance-swarm/internal/domain/entity"
)

// sentimentRecommendationFloor is the mean-polarity magnitude below
// which no sentiment recommendation is emitted.
const sentimentRecommendationFloor = 0.3

// ReportWriter folds the two analysts' results into the final report.
// Inputs come from the task params when supplied and fall back to the
// run context otherwise.
type ReportWriter struct {
	dispatcher
	summarizer output.SummaryPort // nil: keep the deterministic summary
}

func NewReportWriter(summarizer output.SummaryPort, logger output.LoggerPort) *ReportWriter {
	w := &ReportWriter{
		dispatcher: newDispatcher(entity.WorkerReportWriter, "financial report writer", logger),
		summarizer: summarizer,
	}
	w.register(entity.ActionWriteReport, w.writeReport)
	return w
}

func (w *ReportWriter) writeReport(ctx context.Context, params entity.TaskParams, rc *run.Context) (*entity.Result, error) {
	w.logger.Info("generating final report", "run_id", rc.RunID())

	marketRes := params.Analyses[entity.WorkerMarketAnalyst]
	if marketRes == nil {
		marketRes, _ = rc.Result(entity.WorkerMarketAnalyst)
	}
	newsRes := params.Analyses[entity.WorkerNewsAnalyst]
	if newsRes == nil {
		newsRes, _ = rc.Result(entity.WorkerNewsAnalyst)
	}

	if err := rc.LogThought(w.name, map[string]any{
		"action":      "start_report",
		"description": "Starting to generate comprehensive financial report",
		"input_sources": map[string]any{
			"market_data": marketRes != nil,
			"news_data":   newsRes != nil,
		},
	}, 0); err != nil {
		return nil, err
	}

	var market entity.MarketPayload
	if p, ok := entity.MarketDataOf(marketRes); ok {
		market = *p
	}
	var news entity.NewsPayload
	if p, ok := entity.NewsDataOf(newsRes); ok {
		news = *p
	}

	query := rc.Topic()
	if marketRes != nil && marketRes.Query != "" {
		query = marketRes.Query
	}

	recommendations := buildRecommendations(market.Trends, news.Sentiment)

	summary := buildSummary(query, market.MarketData, news.Sentiment, len(news.Events))
	if w.summarizer != nil {
		narrative, err := w.summarizer.Summarize(ctx, query, summary, recommendations)
		if err != nil {
			return nil, err
		}
		summary = narrative
	}

	now := time.Now().UTC()
	report := &entity.Report{
		ReportType: "Financial Analysis",
		Timestamp:  now,
		Content: entity.ReportContent{
			Summary: summary,
			DetailedAnalysis: entity.DetailedAnalysis{
				MarketData: market.MarketData,
				Trends:     market.Trends,
				Sentiment:  news.Sentiment,
				NewsCoverage: entity.NewsCoverage{
					Market: len(market.News),
					News:   len(news.Articles),
				},
			},
			Recommendations: recommendations,
			Visualizations:  []entity.Visualization{},
		},
	}

	completeness := "Partial"
	if len(market.Trends) > 0 && news.Sentiment.OverallSentiment != "" {
		completeness = "Full"
	}
	if err := rc.LogThought(w.name, map[string]any{
		"action": "report_completion",
		"summary": map[string]any{
			"report_sections":       []string{"summary", "detailed_analysis", "recommendations", "visualizations"},
			"total_recommendations": len(recommendations),
			"analysis_completeness": completeness,
		},
	}, 0); err != nil {
		return nil, err
	}

	return &entity.Result{
		Source:    "Report Writer",
		Query:     query,
		Timestamp: now,
		Data:      report,
	}, nil
}

func buildRecommendations(trends []entity.Trend, sentiment entity.SentimentSummary) []string {
	recommendations := make([]string, 0, len(trends)+1)

	for _, trend := range trends {
		switch trend.Indicator {
		case entity.IndicatorPriceTrend:
			recommendations = append(recommendations, fmt.Sprintf(
				"Based on price trend analysis: %s momentum with %s change", trend.Value, trend.Change))
		case entity.IndicatorSMACrossover:
			recommendations = append(recommendations, fmt.Sprintf(
				"Technical Analysis: %s signal from SMA crossover", trend.Value))
		}
	}

	if math.Abs(sentiment.AverageScore) > sentimentRecommendationFloor {
		recommendations = append(recommendations, fmt.Sprintf(
			"Market Sentiment: %s with %.2f confidence", sentiment.OverallSentiment, sentiment.Confidence))
	}

	return recommendations
}

func buildSummary(query string, market entity.MarketSnapshot, sentiment entity.SentimentSummary, eventCount int) string {
	return strings.TrimSpace(fmt.Sprintf(`Market Analysis Report for %s

Current Market Status:
- Price: $%.2f
- Volume: %d
- P/E Ratio: %.2f
- Market Cap: $%.2f

Market Sentiment: %s
Confidence Score: %.2f

Key Events: %d significant developments identified`,
		query,
		market.CurrentPrice,
		market.Volume,
		market.PERatio,
		market.MarketCap,
		sentiment.OverallSentiment,
		sentiment.Confidence,
		eventCount,
	))
}
