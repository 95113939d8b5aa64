package entity

import "time"

// Result is the structured output of one worker call. Data holds a
// worker-specific payload: *MarketPayload for the market analyst,
// *NewsPayload for the news analyst, *Report for the report writer.
type Result struct {
	Source    string    `json:"source"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// MarketPayload is the market analyst's result data.
type MarketPayload struct {
	News                []MarketNewsItem    `json:"news"`
	MarketData          MarketSnapshot      `json:"market_data"`
	Trends              []Trend             `json:"trends"`
	TechnicalIndicators TechnicalIndicators `json:"technical_indicators"`
}

// MarketSnapshot captures the quote-level numbers of a ticker.
type MarketSnapshot struct {
	CurrentPrice  float64 `json:"current_price"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"market_cap"`
	PERatio       float64 `json:"pe_ratio"`
	DividendYield float64 `json:"dividend_yield"`
}

// Trend is a single classified indicator, e.g. Price Trend or SMA
// Crossover, valued "Bullish" or "Bearish".
type Trend struct {
	Indicator string `json:"indicator"`
	Value     string `json:"value"`
	Change    string `json:"change,omitempty"`
	Details   string `json:"details,omitempty"`
}

const (
	TrendBullish = "Bullish"
	TrendBearish = "Bearish"

	IndicatorPriceTrend   = "Price Trend"
	IndicatorSMACrossover = "SMA Crossover"
)

type TechnicalIndicators struct {
	SMA20 float64 `json:"sma20"`
	SMA50 float64 `json:"sma50"`
}

// MarketNewsItem is one ticker-news headline from the market data
// provider.
type MarketNewsItem struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Link      string `json:"link"`
	Published int64  `json:"published"`
	Type      string `json:"type"`
}

// StockData is the raw material the market data provider hands the
// market analyst: current quote, one month of daily history and the
// latest ticker news.
type StockData struct {
	Ticker  string
	Quote   MarketSnapshot
	History []Candle
	News    []MarketNewsItem
}

// Candle is one daily closing bar.
type Candle struct {
	Date   time.Time
	Close  float64
	Volume int64
}

// Article is one news-search hit before sentiment scoring.
type Article struct {
	Title     string `json:"title"`
	Source    string `json:"source"`
	Published string `json:"published"`
	Snippet   string `json:"snippet"`
	Link      string `json:"link"`
}

// NewsPayload is the news analyst's result data.
type NewsPayload struct {
	Articles  []ScoredArticle    `json:"news_articles"`
	Sentiment SentimentSummary   `json:"sentiment"`
	Events    []SignificantEvent `json:"events"`
}

// ScoredArticle is an article plus its sentiment polarity in [-1, 1].
type ScoredArticle struct {
	Article
	SentimentScore float64 `json:"sentiment_score"`
}

// SentimentSummary aggregates polarity across all scored articles.
type SentimentSummary struct {
	AverageScore     float64 `json:"average_score"`
	OverallSentiment string  `json:"overall_sentiment"`
	Confidence       float64 `json:"confidence"`
}

const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// SignificantEvent flags an article whose polarity magnitude exceeds
// the significance threshold.
type SignificantEvent struct {
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// MarketDataOf extracts the market analyst payload from a result.
func MarketDataOf(r *Result) (*MarketPayload, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.Data.(*MarketPayload)
	return p, ok
}

// NewsDataOf extracts the news analyst payload from a result.
func NewsDataOf(r *Result) (*NewsPayload, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.Data.(*NewsPayload)
	return p, ok
}

// ReportOf extracts the report writer payload from a result.
func ReportOf(r *Result) (*Report, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.Data.(*Report)
	return p, ok
}
