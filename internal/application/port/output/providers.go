package output

import (
	"context"

	"finance-swarm/internal/domain/entity"
)

// MarketDataPort is the market data collaborator. Failures are fatal
// to the market analyst step.
type MarketDataPort interface {
	StockData(ctx context.Context, ticker string) (*entity.StockData, error)
}

// NewsSearchPort is the news-vertical search collaborator. Failures
// are fatal to the news analyst step.
type NewsSearchPort interface {
	SearchNews(ctx context.Context, query string) ([]entity.Article, error)
}

// SentimentPort scores a text's polarity in the closed interval
// [-1, 1]. Failures are fatal to the calling step.
type SentimentPort interface {
	Score(ctx context.Context, text string) (float64, error)
}

// ArticleFetcher extracts the main text content of an article page.
// The news analyst uses it, when configured, to score full article
// bodies instead of headlines alone.
type ArticleFetcher interface {
	ExtractText(ctx context.Context, url string) (string, error)
}
