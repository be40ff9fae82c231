// Package app assembles the search and classification stack from configuration.
package app

import (
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"xsentiment/internal/analysis"
	"xsentiment/internal/classifier"
	"xsentiment/internal/config"
	"xsentiment/internal/metrics"
	"xsentiment/internal/search"
)

type App struct {
	Service *analysis.Service
	model   classifier.Model
}

// New builds the service. reg may be nil, in which case nothing is recorded.
func New(cfg *config.Config, reg prometheus.Registerer) (*App, error) {
	searcher, err := NewSearcher(cfg.Search)
	if err != nil {
		return nil, err
	}

	model, err := NewModel(cfg.Classifier)
	if err != nil {
		return nil, err
	}

	var opts []analysis.Option
	if reg != nil {
		opts = append(opts, analysis.WithRecorder(metrics.NewSearchMetrics(reg)))
	}

	slog.Info("search stack ready",
		"search_backend", cfg.Search.Backend,
		"classifier_backend", cfg.Classifier.Backend,
	)

	return &App{
		Service: analysis.NewService(searcher, classifier.NewAnalyzer(model), opts...),
		model:   model,
	}, nil
}

func NewSearcher(cfg config.SearchConfig) (search.Searcher, error) {
	switch cfg.Backend {
	case config.BackendX:
		return search.NewX(cfg.BearerToken, cfg.BaseURL, cfg.Timeout), nil
	case config.BackendNitter:
		return search.NewNitter(cfg.NitterInstance, cfg.Timeout), nil
	default:
		return nil, errors.Newf("unknown search backend %q", cfg.Backend)
	}
}

// NewModel returns the configured model. The transformer model is loaded on
// first use so startup stays fast, and needs a binary built with -tags hugot.
func NewModel(cfg config.ClassifierConfig) (classifier.Model, error) {
	switch cfg.Backend {
	case config.ClassifierVader:
		return classifier.NewVader(), nil
	case config.ClassifierHugot:
		return newTransformer(cfg)
	case config.ClassifierOpenRouter:
		return classifier.NewOpenRouter(cfg.APIKey, cfg.OpenRouterModel), nil
	default:
		return nil, errors.Newf("unknown classifier backend %q", cfg.Backend)
	}
}

// Close releases the model.
func (a *App) Close() error {
	if c, ok := a.model.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
