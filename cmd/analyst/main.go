package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"finance-swarm/internal/di"
	"finance-swarm/internal/infrastructure/env"
	"finance-swarm/internal/transport/httpapi"
)

const defaultTopic = "Tesla Q4 2024 Earnings"

func main() {
	listen := flag.String("listen", "", "serve the HTTP API on this address instead of running once")
	flag.Parse()

	envService := env.NewEnvService()

	container, err := di.NewContainer(di.Config{
		SerpAPIKey:         envService.MustGet("SERPAPI_API_KEY"),
		OpenRouterAPIKey:   envService.Get("OPENROUTER_API_KEY"),
		OpenRouterModel:    envService.Get("OPENROUTER_MODEL_NAME"),
		ThoughtDir:         envService.GetWithDefault("THOUGHT_LOG_DIR", "logs"),
		Debug:              envService.GetBool("DEBUG", false),
		FetchArticleBodies: envService.GetBool("FETCH_ARTICLE_BODIES", false),
		UseLLMSentiment:    envService.GetBool("LLM_SENTIMENT", false),
	})
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}
	defer container.Close()

	if *listen != "" {
		serve(*listen, container)
		return
	}

	topic := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if topic == "" {
		topic = defaultTopic
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container.Logger.Info("Analysis started", "topic", topic)

	report, err := container.Pipeline.Run(ctx, topic)
	if err != nil {
		container.Logger.Error("Analysis failed", "error", err)
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	container.Logger.Info("Analysis completed", "topic", topic)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}
	fmt.Println(string(out))
}

func serve(addr string, container *di.Container) {
	server := httpapi.NewServer(container.Pipeline, container.Registry, container.Thoughts, container.Logger)

	container.Logger.Info("HTTP API listening", "addr", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		container.Logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
