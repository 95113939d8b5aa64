package workers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/application/run"
	"finance-swarm/internal/domain/entity"
)

const (
	shortSMAWindow = 20
	longSMAWindow  = 50
)

// companyTickers maps well-known company names to ticker symbols.
// Unknown companies pass through unchanged as a literal ticker guess.
var companyTickers = map[string]string{
	"Tesla":     "TSLA",
	"Apple":     "AAPL",
	"Microsoft": "MSFT",
	"Google":    "GOOGL",
	"Amazon":    "AMZN",
}

// MarketAnalyst fetches market data for the topic's ticker and
// classifies price and moving-average trends.
type MarketAnalyst struct {
	dispatcher
	market output.MarketDataPort
}

func NewMarketAnalyst(market output.MarketDataPort, logger output.LoggerPort) *MarketAnalyst {
	a := &MarketAnalyst{
		dispatcher: newDispatcher(entity.WorkerMarketAnalyst, "market data analyst", logger),
		market:     market,
	}
	a.register(entity.ActionAnalyzeMarket, a.analyzeMarket)
	return a
}

// TickerFor resolves a topic to a ticker symbol: the first word is
// looked up in the company table and passes through unchanged when
// unknown.
func TickerFor(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	if ticker, ok := companyTickers[fields[0]]; ok {
		return ticker
	}
	return fields[0]
}

func (a *MarketAnalyst) analyzeMarket(ctx context.Context, params entity.TaskParams, rc *run.Context) (*entity.Result, error) {
	query := params.Query
	if query == "" {
		return nil, &entity.InvalidTaskError{Reason: "analyze_market requires a query"}
	}
	a.logger.Info("processing market data", "query", query)

	if err := rc.LogThought(a.name, map[string]any{
		"action":      "start_processing",
		"query":       query,
		"description": "Starting to process market data",
	}, 0); err != nil {
		return nil, err
	}

	ticker := TickerFor(query)
	data, err := a.market.StockData(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if len(data.History) == 0 {
		return nil, &entity.ProviderError{
			Provider: "market data",
			Err:      fmt.Errorf("empty price history for %s", ticker),
		}
	}

	closes := make([]float64, len(data.History))
	for i, c := range data.History {
		closes[i] = c.Close
	}

	first, last := closes[0], closes[len(closes)-1]
	priceChange := (last - first) / first * 100
	smaShort := simpleMovingAverage(closes, shortSMAWindow)
	smaLong := simpleMovingAverage(closes, longSMAWindow)

	trends := []entity.Trend{
		{
			Indicator: entity.IndicatorPriceTrend,
			Value:     trendDirection(last > first),
			Change:    fmt.Sprintf("%.2f%%", priceChange),
		},
		{
			Indicator: entity.IndicatorSMACrossover,
			Value:     trendDirection(smaShort > smaLong),
			Details:   fmt.Sprintf("SMA20: %.2f, SMA50: %.2f", smaShort, smaLong),
		},
	}

	snapshot := data.Quote
	snapshot.CurrentPrice = last
	snapshot.Volume = data.History[len(data.History)-1].Volume

	payload := &entity.MarketPayload{
		News:       data.News,
		MarketData: snapshot,
		Trends:     trends,
		TechnicalIndicators: entity.TechnicalIndicators{
			SMA20: smaShort,
			SMA50: smaLong,
		},
	}

	if err := rc.LogThought(a.name, map[string]any{
		"action": "market_analysis",
		"findings": map[string]any{
			"price_trend":          trends[0].Change,
			"technical_indicators": payload.TechnicalIndicators,
			"news_count":           len(data.News),
		},
	}, 0); err != nil {
		return nil, err
	}

	return &entity.Result{
		Source:    "Yahoo Finance",
		Query:     query,
		Timestamp: time.Now().UTC(),
		Data:      payload,
	}, nil
}

// simpleMovingAverage averages the last window closes, or all of them
// when the history is shorter than the window.
func simpleMovingAverage(closes []float64, window int) float64 {
	if len(closes) == 0 {
		return 0
	}
	if window > len(closes) {
		window = len(closes)
	}
	var sum float64
	for _, c := range closes[len(closes)-window:] {
		sum += c
	}
	return sum / float64(window)
}

func trendDirection(bullish bool) string {
	if bullish {
		return entity.TrendBullish
	}
	return entity.TrendBearish
}
