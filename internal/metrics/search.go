package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SearchMetrics counts searches by outcome and classified posts by label.
type SearchMetrics struct {
	SearchesTotal   *prometheus.CounterVec
	SearchDuration  prometheus.Histogram
	PostsClassified *prometheus.CounterVec
}

func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	m := &SearchMetrics{
		SearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches handled, by outcome.",
		}, []string{"outcome"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time spent fetching and classifying one search.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PostsClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_classified_total",
			Help:      "Posts classified, by sentiment label.",
		}, []string{"label"}),
	}

	reg.MustRegister(m.SearchesTotal, m.SearchDuration, m.PostsClassified)
	return m
}

func (m *SearchMetrics) ObserveSearch(outcome string, elapsed time.Duration) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	m.SearchDuration.Observe(elapsed.Seconds())
}

func (m *SearchMetrics) ObservePost(label string) {
	m.PostsClassified.WithLabelValues(label).Inc()
}
