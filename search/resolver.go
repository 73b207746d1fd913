package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/use-agent/summarizer/models"
)

// Searcher is the external search API: query in, ranked URLs out.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}

// Resolver turns a query into ranked candidate URLs and picks the top one.
// It calls the search API once per call and never retries.
type Resolver struct {
	searcher Searcher
}

// NewResolver creates a Resolver backed by searcher.
func NewResolver(searcher Searcher) *Resolver {
	return &Resolver{searcher: searcher}
}

// Resolve returns the ranked URLs for query. Zero results fail with
// models.ErrNoResults.
func (r *Resolver) Resolve(ctx context.Context, query string, maxResults int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput, "query is required", nil)
	}

	urls, err := r.searcher.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, models.NewScrapeError(models.ErrCodeNoResults,
			fmt.Sprintf("no search results for %q", query), nil)
	}
	return urls, nil
}

// Top resolves query and returns the highest-ranked URL.
func (r *Resolver) Top(ctx context.Context, query string, maxResults int) (string, error) {
	urls, err := r.Resolve(ctx, query, maxResults)
	if err != nil {
		return "", err
	}
	return urls[0], nil
}
