package sentiment

import (
	"github.com/jonreiter/govader"
)

// Lexicon scores text with the VADER valence lexicon. It is pure and
// deterministic, which keeps aggregation over it idempotent.
type Lexicon struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewLexicon creates a lexicon-backed scorer
func NewLexicon() *Lexicon {
	return &Lexicon{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Score returns the VADER compound polarity of text in [-1, 1]
func (l *Lexicon) Score(text string) float64 {
	cleaned := Normalize(text)
	if cleaned == "" {
		return 0
	}
	return l.analyzer.PolarityScores(cleaned).Compound
}
