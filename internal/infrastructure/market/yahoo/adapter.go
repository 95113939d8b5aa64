// Package yahoo implements the market data port against the Yahoo
// Finance public endpoints: chart history, quote summary and ticker
// news search.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/domain/entity"
)

var _ output.MarketDataPort = (*Adapter)(nil)

const providerName = "yahoo finance"

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	NewsCount  int
}

func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://query1.finance.yahoo.com",
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		NewsCount:  10,
	}
}

type Adapter struct {
	baseURL   string
	client    *http.Client
	newsCount int
	logger    output.LoggerPort
}

func NewAdapter(cfg Config, logger output.LoggerPort) *Adapter {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.NewsCount <= 0 {
		cfg.NewsCount = 10
	}
	return &Adapter{
		baseURL:   cfg.BaseURL,
		client:    cfg.HTTPClient,
		newsCount: cfg.NewsCount,
		logger:    logger,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			RegularMarketPrice          float64 `json:"regularMarketPrice"`
			RegularMarketVolume         int64   `json:"regularMarketVolume"`
			MarketCap                   float64 `json:"marketCap"`
			ForwardPE                   float64 `json:"forwardPE"`
			TrailingAnnualDividendYield float64 `json:"trailingAnnualDividendYield"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

type searchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
		Type                string `json:"type"`
	} `json:"news"`
}

// StockData fetches the current quote, one month of daily history and
// the latest news for a ticker. Any endpoint failure is fatal.
func (a *Adapter) StockData(ctx context.Context, ticker string) (*entity.StockData, error) {
	a.logger.Debug("fetching stock data", "ticker", ticker)

	var chart chartResponse
	chartURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=1mo&interval=1d", a.baseURL, url.PathEscape(ticker))
	if err := a.get(ctx, chartURL, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, &entity.ProviderError{
			Provider: providerName,
			Err:      fmt.Errorf("chart %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description),
		}
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, &entity.ProviderError{
			Provider: providerName,
			Err:      fmt.Errorf("no chart data for %s", ticker),
		}
	}

	res := chart.Chart.Result[0]
	bars := res.Indicators.Quote[0]
	history := make([]entity.Candle, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(bars.Close) || bars.Close[i] == nil {
			continue
		}
		candle := entity.Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *bars.Close[i],
		}
		if i < len(bars.Volume) && bars.Volume[i] != nil {
			candle.Volume = *bars.Volume[i]
		}
		history = append(history, candle)
	}

	var quote quoteResponse
	quoteURL := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", a.baseURL, url.QueryEscape(ticker))
	if err := a.get(ctx, quoteURL, &quote); err != nil {
		return nil, err
	}
	var snapshot entity.MarketSnapshot
	if len(quote.QuoteResponse.Result) > 0 {
		q := quote.QuoteResponse.Result[0]
		snapshot = entity.MarketSnapshot{
			CurrentPrice:  q.RegularMarketPrice,
			Volume:        q.RegularMarketVolume,
			MarketCap:     q.MarketCap,
			PERatio:       q.ForwardPE,
			DividendYield: q.TrailingAnnualDividendYield,
		}
	}

	var search searchResponse
	searchURL := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=%d", a.baseURL, url.QueryEscape(ticker), a.newsCount)
	if err := a.get(ctx, searchURL, &search); err != nil {
		return nil, err
	}
	news := make([]entity.MarketNewsItem, 0, len(search.News))
	for i, item := range search.News {
		if i >= a.newsCount {
			break
		}
		news = append(news, entity.MarketNewsItem{
			Title:     item.Title,
			Publisher: item.Publisher,
			Link:      item.Link,
			Published: item.ProviderPublishTime,
			Type:      item.Type,
		})
	}

	return &entity.StockData{
		Ticker:  ticker,
		Quote:   snapshot,
		History: history,
		News:    news,
	}, nil
}

func (a *Adapter) get(ctx context.Context, rawURL string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &entity.ProviderError{Provider: providerName, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := a.client.Do(req)
	if err != nil {
		return &entity.ProviderError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &entity.ProviderError{
			Provider: providerName,
			Err:      fmt.Errorf("unexpected status %s for %s", resp.Status, rawURL),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return &entity.ProviderError{Provider: providerName, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
