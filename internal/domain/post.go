package domain

import "time"

// Post is a single item returned by a search backend. It only lives for the
// duration of one request.
type Post struct {
	ID        string
	Author    string
	Text      string
	CreatedAt *time.Time
}

type Label string

const (
	LabelPositive Label = "POSITIVE"
	LabelNegative Label = "NEGATIVE"
	LabelNeutral  Label = "NEUTRAL"
)

// Key returns the lowercase name used for summary buckets.
func (l Label) Key() string {
	switch l {
	case LabelPositive:
		return "positive"
	case LabelNegative:
		return "negative"
	default:
		return "neutral"
	}
}

type Classification struct {
	Label      Label
	Confidence float64
}

type AnalyzedPost struct {
	ID          string     `json:"id"`
	Author      string     `json:"author"`
	Text        string     `json:"text"`
	CleanedText string     `json:"cleaned_text"`
	Sentiment   Label      `json:"sentiment"`
	Confidence  float64    `json:"confidence"`
	CreatedAt   *time.Time `json:"created_at"`
}

// Summary tallies posts per label. All three buckets are always serialised.
type Summary struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

func (s *Summary) Add(l Label) {
	switch l {
	case LabelPositive:
		s.Positive++
	case LabelNegative:
		s.Negative++
	default:
		s.Neutral++
	}
}

func (s Summary) Total() int {
	return s.Positive + s.Negative + s.Neutral
}

type SearchResponse struct {
	Query        string         `json:"query"`
	TotalResults int            `json:"total_results"`
	Posts        []AnalyzedPost `json:"posts"`
	Summary      Summary        `json:"summary"`
}
