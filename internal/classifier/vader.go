package classifier

import (
	"context"

	"github.com/jonreiter/govader"
)

// vaderThreshold is the usual VADER cut-off on the compound score.
const vaderThreshold = 0.05

// Vader is a lexicon model. It runs offline and needs no weights on disk.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Predict reports POSITIVE or NEGATIVE with the compound score rescaled to
// [0,1], or NEUTRAL with the neutral proportion when the text has no clear polarity.
func (v *Vader) Predict(_ context.Context, text string) (Prediction, error) {
	s := v.analyzer.PolarityScores(text)

	switch {
	case s.Compound >= vaderThreshold:
		return Prediction{Label: "POSITIVE", Score: (1 + s.Compound) / 2}, nil
	case s.Compound <= -vaderThreshold:
		return Prediction{Label: "NEGATIVE", Score: (1 - s.Compound) / 2}, nil
	default:
		return Prediction{Label: "NEUTRAL", Score: s.Neutral}, nil
	}
}
