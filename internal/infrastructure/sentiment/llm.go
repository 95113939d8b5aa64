package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/domain/entity"
)

var _ output.SentimentPort = (*LLMScorer)(nil)

const scorePrompt = `Rate the sentiment of the following financial news text.
Respond with a single number between -1.0 (very negative) and 1.0 (very positive), nothing else.

Text: %s`

// LLMScorer asks a chat model for a polarity value. Wired instead of
// the lexicon scorer when LLM_SENTIMENT is enabled.
type LLMScorer struct {
	llm    llms.Model
	logger output.LoggerPort
}

type LLMConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewLLMScorer(cfg LLMConfig, logger output.LoggerPort) (*LLMScorer, error) {
	llm, err := lcopenai.New(
		lcopenai.WithToken(cfg.APIKey),
		lcopenai.WithModel(cfg.Model),
		lcopenai.WithBaseURL(cfg.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("create llm scorer: %w", err)
	}
	return &LLMScorer{llm: llm, logger: logger}, nil
}

// Score returns the model's polarity clamped to [-1, 1].
func (s *LLMScorer) Score(ctx context.Context, text string) (float64, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, s.llm,
		fmt.Sprintf(scorePrompt, text),
		llms.WithTemperature(0),
	)
	if err != nil {
		return 0, &entity.ProviderError{Provider: "llm sentiment", Err: err}
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, &entity.ProviderError{
			Provider: "llm sentiment",
			Err:      fmt.Errorf("unparseable polarity %q: %w", out, err),
		}
	}

	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	s.logger.Debug("scored sentiment", "score", score)
	return score, nil
}
