// Package openrouter implements the summary port against the
// OpenRouter chat-completions API.
package openrouter

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/domain/entity"
)

var _ output.SummaryPort = (*Adapter)(nil)

const systemPrompt = "You are a financial report editor. Rewrite the draft report " +
	"into clear analyst prose. Keep every figure and recommendation; do not invent data."

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://openrouter.ai/api/v1",
	}
}

type Adapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

func NewAdapter(cfg Config, logger output.LoggerPort) *Adapter {
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL

	return &Adapter{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		logger: logger,
	}
}

// Summarize rewrites the deterministic summary draft as narrative
// prose. Failures are fatal to the report step.
func (a *Adapter) Summarize(ctx context.Context, topic, draft string, recommendations []string) (string, error) {
	a.logger.Debug("requesting narrative summary", "topic", topic)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Topic: %s\n\nDraft report:\n%s\n", topic, draft)
	if len(recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range recommendations {
			sb.WriteString("- " + rec + "\n")
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: sb.String()},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", &entity.ProviderError{Provider: "openrouter", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &entity.ProviderError{Provider: "openrouter", Err: fmt.Errorf("no choices in response")}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
