package workers

import (
	"context"
	"math"
	"time"

	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/application/run"
	"finance-swarm/internal/domain/entity"
)

// significantPolarity is the magnitude above which an article counts
// as a significant event.
const significantPolarity = 0.5

// NewsAnalyst fetches news-search results for the topic and scores
// per-article and aggregate sentiment.
type NewsAnalyst struct {
	dispatcher
	search    output.NewsSearchPort
	sentiment output.SentimentPort
	fetcher   output.ArticleFetcher // nil: score headlines and snippets only
}

func NewNewsAnalyst(search output.NewsSearchPort, sentiment output.SentimentPort, fetcher output.ArticleFetcher, logger output.LoggerPort) *NewsAnalyst {
	a := &NewsAnalyst{
		dispatcher: newDispatcher(entity.WorkerNewsAnalyst, "news and sentiment analyst", logger),
		search:     search,
		sentiment:  sentiment,
		fetcher:    fetcher,
	}
	a.register(entity.ActionAnalyzeNews, a.analyzeNews)
	return a
}

func (a *NewsAnalyst) analyzeNews(ctx context.Context, params entity.TaskParams, rc *run.Context) (*entity.Result, error) {
	query := params.Query
	if query == "" {
		return nil, &entity.InvalidTaskError{Reason: "analyze_news requires a query"}
	}
	a.logger.Info("analyzing news", "query", query)

	if err := rc.LogThought(a.name, map[string]any{
		"action":      "start_analysis",
		"query":       query,
		"description": "Starting news analysis",
	}, 0); err != nil {
		return nil, err
	}

	articles, err := a.search.SearchNews(ctx, query)
	if err != nil {
		return nil, err
	}

	scored := make([]entity.ScoredArticle, 0, len(articles))
	events := make([]entity.SignificantEvent, 0)
	var sum float64

	for _, article := range articles {
		text := article.Title + " " + article.Snippet
		if a.fetcher != nil && article.Link != "" {
			body, err := a.fetcher.ExtractText(ctx, article.Link)
			if err != nil {
				return nil, err
			}
			if body != "" {
				text += " " + body
			}
		}

		score, err := a.sentiment.Score(ctx, text)
		if err != nil {
			return nil, err
		}

		scored = append(scored, entity.ScoredArticle{
			Article:        article,
			SentimentScore: score,
		})
		sum += score

		if math.Abs(score) > significantPolarity {
			events = append(events, entity.SignificantEvent{
				Type:      "Significant News",
				Title:     article.Title,
				Sentiment: polarityLabel(score),
				Score:     score,
			})
		}
	}

	var avg float64
	if len(scored) > 0 {
		avg = sum / float64(len(scored))
	}
	summary := entity.SentimentSummary{
		AverageScore:     avg,
		OverallSentiment: overallLabel(avg),
		Confidence:       math.Abs(avg),
	}

	payload := &entity.NewsPayload{
		Articles:  scored,
		Sentiment: summary,
		Events:    events,
	}

	if err := rc.LogThought(a.name, map[string]any{
		"action": "sentiment_analysis",
		"findings": map[string]any{
			"articles_analyzed":  len(scored),
			"significant_events": len(events),
			"sentiment_summary":  summary,
		},
	}, 0); err != nil {
		return nil, err
	}

	return &entity.Result{
		Source:    "Google News",
		Query:     query,
		Timestamp: time.Now().UTC(),
		Data:      payload,
	}, nil
}

func polarityLabel(score float64) string {
	if score > 0 {
		return entity.SentimentPositive
	}
	return entity.SentimentNegative
}

func overallLabel(avg float64) string {
	switch {
	case avg > 0:
		return entity.SentimentPositive
	case avg < 0:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}
