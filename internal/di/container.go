package di

import (
	"fmt"

	"finance-swarm/internal/application/port/input"
	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/application/service"
	"finance-swarm/internal/infrastructure/crawler"
	"finance-swarm/internal/infrastructure/llm/openrouter"
	"finance-swarm/internal/infrastructure/logger"
	"finance-swarm/internal/infrastructure/market/yahoo"
	"finance-swarm/internal/infrastructure/search/serpapi"
	"finance-swarm/internal/infrastructure/sentiment"
	"finance-swarm/internal/infrastructure/thoughtstore"
	"finance-swarm/internal/usecase/pipeline"
	"finance-swarm/internal/usecase/workers"
)

type Container struct {
	Logger   output.LoggerPort
	Thoughts output.ThoughtStore
	Registry *service.WorkerRegistry
	Pipeline input.AnalysisPipeline
}

type Config struct {
	SerpAPIKey       string
	OpenRouterAPIKey string
	OpenRouterModel  string
	ThoughtDir       string
	Debug            bool

	// FetchArticleBodies crawls each article link and scores the page
	// body instead of just title and snippet.
	FetchArticleBodies bool
	// UseLLMSentiment swaps the lexicon scorer for an LLM-backed one.
	UseLLMSentiment bool
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	thoughts := thoughtstore.New(cfg.ThoughtDir)

	market := yahoo.NewAdapter(yahoo.DefaultConfig(), log)
	search, err := serpapi.NewAdapter(serpapi.DefaultConfig(cfg.SerpAPIKey), log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create news search: %w", err)
	}

	var scorer output.SentimentPort = sentiment.NewLexiconScorer()
	if cfg.UseLLMSentiment {
		llmScorer, err := sentiment.NewLLMScorer(sentiment.LLMConfig{
			APIKey:  cfg.OpenRouterAPIKey,
			Model:   cfg.OpenRouterModel,
			BaseURL: "https://openrouter.ai/api/v1",
		}, log)
		if err != nil {
			log.Close()
			return nil, fmt.Errorf("failed to create sentiment scorer: %w", err)
		}
		scorer = llmScorer
	}

	var fetcher output.ArticleFetcher
	if cfg.FetchArticleBodies {
		fetcher = crawler.NewFetcher(nil, log)
	}

	var summarizer output.SummaryPort
	if cfg.OpenRouterAPIKey != "" && cfg.OpenRouterModel != "" {
		summarizer = openrouter.NewAdapter(
			openrouter.DefaultConfig(cfg.OpenRouterAPIKey, cfg.OpenRouterModel), log)
	}

	registry := service.NewWorkerRegistry()
	registry.Register(workers.NewMarketAnalyst(market, log))
	registry.Register(workers.NewNewsAnalyst(search, scorer, fetcher, log))
	registry.Register(workers.NewReportWriter(summarizer, log))

	uc := pipeline.New(registry, thoughts, log)

	return &Container{
		Logger:   log,
		Thoughts: thoughts,
		Registry: registry,
		Pipeline: uc,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
