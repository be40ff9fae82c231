//go:build hugot

package app

import (
	"log/slog"

	"xsentiment/internal/classifier"
	"xsentiment/internal/classifier/transformer"
	"xsentiment/internal/config"
)

func newTransformer(cfg config.ClassifierConfig) (classifier.Model, error) {
	return classifier.Lazy(func() (classifier.Model, error) {
		slog.Info("loading sentiment model", "model", cfg.Model, "dir", cfg.ModelDir)
		m, err := transformer.New(cfg.Model, cfg.ModelDir)
		if err != nil {
			return nil, err
		}
		return m, nil
	}), nil
}
