package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xsentiment/internal/domain"
)

func TestVader(t *testing.T) {
	v := NewVader()

	tests := []struct {
		text string
		want domain.Label
	}{
		{"I love this, it is wonderful and great", domain.LabelPositive},
		{"This is terrible, I hate it so much", domain.LabelNegative},
		{"The table is made of wood", domain.LabelNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p, err := v.Predict(context.Background(), tt.text)
			require.NoError(t, err)

			got := MapLabel(p.Label, p.Score)
			assert.Equal(t, tt.want, got.Label)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
			if tt.want != domain.LabelNeutral {
				assert.Greater(t, got.Confidence, 0.5)
			}
		})
	}
}
