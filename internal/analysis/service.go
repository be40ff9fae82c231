// Package analysis joins search results with per-post sentiment.
package analysis

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"xsentiment/internal/domain"
	"xsentiment/internal/textclean"
)

const (
	MinCount     = 1
	MaxCount     = 20
	DefaultCount = 10
)

type Searcher interface {
	Search(ctx context.Context, query string, maxResults int, lang string) ([]domain.Post, error)
}

type Classifier interface {
	Classify(ctx context.Context, text string) (domain.Classification, error)
}

// Recorder receives per-search and per-post observations, usually Prometheus.
type Recorder interface {
	ObserveSearch(outcome string, elapsed time.Duration)
	ObservePost(label string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveSearch(string, time.Duration) {}
func (noopRecorder) ObservePost(string)                  {}

type Request struct {
	Query    string
	Count    int
	Language string
}

type Service struct {
	searcher   Searcher
	classifier Classifier
	recorder   Recorder
}

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

func NewService(searcher Searcher, classifier Classifier, opts ...Option) *Service {
	s := &Service{
		searcher:   searcher,
		classifier: classifier,
		recorder:   noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search fetches up to req.Count posts and classifies each of them in search
// order. Any failure aborts the whole request.
func (s *Service) Search(ctx context.Context, req Request) (*domain.SearchResponse, error) {
	start := time.Now()

	resp, err := s.search(ctx, req)

	outcome := "ok"
	if err != nil {
		outcome = domain.Kind(err).String()
	}
	s.recorder.ObserveSearch(outcome, time.Since(start))

	return resp, err
}

func (s *Service) search(ctx context.Context, req Request) (*domain.SearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, domain.InvalidInput("query is required")
	}

	count := ClampCount(req.Count)

	posts, err := s.searcher.Search(ctx, req.Query, count, req.Language)
	if err != nil {
		return nil, errors.Wrap(err, "search posts")
	}
	if len(posts) > count {
		posts = posts[:count]
	}

	resp := &domain.SearchResponse{
		Query: req.Query,
		Posts: make([]domain.AnalyzedPost, 0, len(posts)),
	}

	for _, p := range posts {
		c, err := s.classifier.Classify(ctx, p.Text)
		if err != nil {
			return nil, errors.Wrapf(err, "post %s", p.ID)
		}

		resp.Posts = append(resp.Posts, domain.AnalyzedPost{
			ID:          p.ID,
			Author:      p.Author,
			Text:        p.Text,
			CleanedText: textclean.Normalize(p.Text),
			Sentiment:   c.Label,
			Confidence:  round2(c.Confidence),
			CreatedAt:   p.CreatedAt,
		})
		resp.Summary.Add(c.Label)
		s.recorder.ObservePost(c.Label.Key())
	}
	resp.TotalResults = len(resp.Posts)

	slog.DebugContext(ctx, "search analyzed",
		"query", req.Query,
		"count", count,
		"lang", req.Language,
		"results", resp.TotalResults,
		"positive", resp.Summary.Positive,
		"negative", resp.Summary.Negative,
		"neutral", resp.Summary.Neutral,
	)

	return resp, nil
}

// ClampCount bounds n to [MinCount, MaxCount].
func ClampCount(n int) int {
	return min(max(n, MinCount), MaxCount)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
