// Package serpapi implements the news search port against the SerpAPI
// Google News vertical.
package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/domain/entity"
)

var _ output.NewsSearchPort = (*Adapter)(nil)

const providerName = "serpapi"

type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:     apiKey,
		BaseURL:    "https://serpapi.com",
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type Adapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  output.LoggerPort
}

func NewAdapter(cfg Config, logger output.LoggerPort) (*Adapter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("serpapi: missing API key")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Adapter{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
		logger:  logger,
	}, nil
}

type searchResponse struct {
	NewsResults []struct {
		Title   string `json:"title"`
		Source  string `json:"source"`
		Date    string `json:"date"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"news_results"`
	Error string `json:"error"`
}

// SearchNews queries the news vertical for a free-text query.
func (a *Adapter) SearchNews(ctx context.Context, query string) ([]entity.Article, error) {
	a.logger.Debug("searching news", "query", query)

	params := url.Values{}
	params.Set("q", query)
	params.Set("tbm", "nws")
	params.Set("api_key", a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, &entity.ProviderError{Provider: providerName, Err: err}
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &entity.ProviderError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &entity.ProviderError{
			Provider: providerName,
			Err:      fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &entity.ProviderError{Provider: providerName, Err: fmt.Errorf("decode response: %w", err)}
	}
	if decoded.Error != "" {
		return nil, &entity.ProviderError{Provider: providerName, Err: errors.New(decoded.Error)}
	}

	articles := make([]entity.Article, 0, len(decoded.NewsResults))
	for _, r := range decoded.NewsResults {
		articles = append(articles, entity.Article{
			Title:     r.Title,
			Source:    r.Source,
			Published: r.Date,
			Snippet:   r.Snippet,
			Link:      r.Link,
		})
	}
	return articles, nil
}
