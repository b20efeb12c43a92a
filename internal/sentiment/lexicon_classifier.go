package sentiment

import (
	"context"
	"strings"

	"github.com/jonreiter/govader"
)

// Korean polarity cues. Crude, but cheap to run and good enough for a first
// pass when no model is available.
var (
	positiveWords = []string{"좋아요", "만족", "추천", "가볍", "빠르", "선명", "훌륭", "괜찮"}
	negativeWords = []string{"별로", "나쁘", "불만", "느리", "무겁", "노이즈", "아쉬", "실망", "심해"}
)

// LexiconClassifier is the model-free labeling variant: Korean word-list
// lookup first, VADER for text with no Korean cue (latin-script comments).
// Output follows the binary polarity convention so MapRaw thresholds it
// like any other backend.
type LexiconClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewLexiconClassifier() *LexiconClassifier {
	return &LexiconClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (c *LexiconClassifier) Classify(ctx context.Context, text string) (RawResult, error) {
	t := strings.ToLower(text)

	posHit := containsAny(t, positiveWords)
	negHit := containsAny(t, negativeWords)

	switch {
	case posHit && !negHit:
		return RawResult{Label: "positive", Score: 1}, nil
	case negHit && !posHit:
		return RawResult{Label: "negative", Score: 1}, nil
	case posHit && negHit:
		return RawResult{Label: "positive", Score: 0.5}, nil
	}

	// VADER's compound lives in [-1,1]; rescale to a positive probability.
	compound := c.analyzer.PolarityScores(t).Compound
	return RawResult{Label: "positive", Score: (compound + 1) / 2}, nil
}

func (c *LexiconClassifier) ModelName() string {
	return "lexicon-vader-v1"
}

func containsAny(t string, words []string) bool {
	for _, w := range words {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}
