package search

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/use-agent/summarizer/cache"
)

// CachedSearcher memoizes successful non-empty searches. Failures and empty
// result sets always reach the underlying searcher.
type CachedSearcher struct {
	next  Searcher
	cache *cache.Cache[[]string]
}

// NewCachedSearcher wraps next with c.
func NewCachedSearcher(next Searcher, c *cache.Cache[[]string]) *CachedSearcher {
	return &CachedSearcher{next: next, cache: c}
}

// Search implements Searcher.
func (s *CachedSearcher) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	key := cache.Key(strings.ToLower(strings.TrimSpace(query)), strconv.Itoa(maxResults))
	if urls, ok := s.cache.Get(key); ok {
		slog.Debug("search cache hit", "query", query)
		return append([]string(nil), urls...), nil
	}

	urls, err := s.next.Search(ctx, query, maxResults)
	if err != nil || len(urls) == 0 {
		return urls, err
	}
	s.cache.Set(key, append([]string(nil), urls...))
	return urls, nil
}
