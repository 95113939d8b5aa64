// Package sentiment provides the polarity scorers behind the
// SentimentPort: a deterministic lexicon scorer and an LLM-backed
// alternative.
package sentiment

import (
	"context"
	"strings"

	"finance-swarm/internal/application/port/output"
)

var _ output.SentimentPort = (*LexiconScorer)(nil)

// LexiconScorer scores text by counting polar words from a small
// finance-oriented lexicon. Deterministic and dependency-free, it is
// the default scorer.
type LexiconScorer struct{}

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

var positiveWords = map[string]struct{}{
	"beat": {}, "beats": {}, "bullish": {}, "buy": {}, "gain": {}, "gains": {},
	"good": {}, "great": {}, "growth": {}, "high": {}, "jump": {}, "jumps": {},
	"profit": {}, "profits": {}, "rally": {}, "record": {}, "rise": {}, "rises": {},
	"soar": {}, "soars": {}, "strong": {}, "success": {}, "surge": {}, "surges": {},
	"up": {}, "upgrade": {}, "win": {}, "wins": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "bearish": {}, "crash": {}, "cut": {}, "cuts": {}, "decline": {},
	"declines": {}, "down": {}, "downgrade": {}, "drop": {}, "drops": {},
	"fall": {}, "falls": {}, "fear": {}, "lawsuit": {}, "loss": {}, "losses": {},
	"low": {}, "miss": {}, "misses": {}, "plunge": {}, "plunges": {}, "recall": {},
	"risk": {}, "sell": {}, "slump": {}, "weak": {}, "worst": {},
}

// Score returns the polarity of text in [-1, 1]: the signed share of
// polar words among all polar words found, 0 when none occur.
func (s *LexiconScorer) Score(_ context.Context, text string) (float64, error) {
	var pos, neg int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()[]")
		if _, ok := positiveWords[word]; ok {
			pos++
			continue
		}
		if _, ok := negativeWords[word]; ok {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return 0, nil
	}
	return float64(pos-neg) / float64(total), nil
}
