package domain

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindInternal},
		{"plain", errors.New("boom"), KindInternal},
		{"invalid input", InvalidInput("count must be between %d and %d", 1, 20), KindInvalidInput},
		{"rate limited", RateLimited(errors.New("HTTP 429")), KindRateLimited},
		{"rate limited sentinel", RateLimited(nil), KindRateLimited},
		{"wrapped rate limit", errors.Wrap(RateLimited(errors.New("HTTP 429")), "search"), KindRateLimited},
		{"fmt wrapped", fmt.Errorf("outer: %w", InvalidInput("bad")), KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestInvalidInputKeepsMessage(t *testing.T) {
	err := InvalidInput("q is required")
	assert.Equal(t, "q is required", err.Error())
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.Add(LabelPositive)
	s.Add(LabelPositive)
	s.Add(LabelNegative)
	s.Add(LabelNeutral)
	s.Add(Label("bogus"))

	assert.Equal(t, Summary{Positive: 2, Negative: 1, Neutral: 2}, s)
	assert.Equal(t, 5, s.Total())
}

func TestLabelKey(t *testing.T) {
	assert.Equal(t, "positive", LabelPositive.Key())
	assert.Equal(t, "negative", LabelNegative.Key())
	assert.Equal(t, "neutral", LabelNeutral.Key())
}
