package classifier

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"xsentiment/internal/domain"
	"xsentiment/internal/textclean"
)

// Prediction is the raw output of a model, in the model's own label space.
type Prediction struct {
	Label string
	Score float64
}

type Model interface {
	Predict(ctx context.Context, text string) (Prediction, error)
}

// emptyText is returned for input with nothing left to classify.
var emptyText = domain.Classification{Label: domain.LabelNeutral, Confidence: 0.5}

// exactLabels holds raw spellings that only match as a whole word. Anything
// containing POSITIVE or NEGATIVE is matched separately in MapLabel.
var exactLabels = map[string]domain.Label{
	"POS":     domain.LabelPositive,
	"LABEL_1": domain.LabelPositive,
	"NEG":     domain.LabelNegative,
	"LABEL_0": domain.LabelNegative,
}

// MapLabel folds a raw model label into the three-way label space. Unknown
// labels become NEUTRAL but keep the model's score.
func MapLabel(raw string, score float64) domain.Classification {
	label := strings.ToUpper(raw)

	switch {
	case strings.Contains(label, "POSITIVE"), exactLabels[label] == domain.LabelPositive:
		return domain.Classification{Label: domain.LabelPositive, Confidence: score}
	case strings.Contains(label, "NEGATIVE"), exactLabels[label] == domain.LabelNegative:
		return domain.Classification{Label: domain.LabelNegative, Confidence: score}
	default:
		return domain.Classification{Label: domain.LabelNeutral, Confidence: score}
	}
}

// Analyzer classifies post text with a single shared model. It keeps no
// per-call state and is safe for concurrent use if the model is.
type Analyzer struct {
	model Model
}

func NewAnalyzer(model Model) *Analyzer {
	return &Analyzer{model: model}
}

func (a *Analyzer) Classify(ctx context.Context, text string) (domain.Classification, error) {
	if text == "" {
		return emptyText, nil
	}

	cleaned := textclean.Normalize(text)
	if cleaned == "" {
		return emptyText, nil
	}

	p, err := a.model.Predict(ctx, cleaned)
	if err != nil {
		return domain.Classification{}, errors.Wrap(err, "classify")
	}

	return MapLabel(p.Label, p.Score), nil
}
