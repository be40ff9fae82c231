// Package search fetches recent posts for a query from a social network.
package search

import (
	"context"

	"xsentiment/internal/domain"
)

// Searcher returns at most maxResults posts matching query, newest first.
// lang is an optional language code; empty means any language. Quota
// exhaustion is reported as an error marked with domain.ErrRateLimited.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int, lang string) ([]domain.Post, error)
}

var (
	_ Searcher = (*X)(nil)
	_ Searcher = (*Nitter)(nil)
)

func withLanguage(query, lang string) string {
	if lang == "" {
		return query
	}
	return query + " lang:" + lang
}
