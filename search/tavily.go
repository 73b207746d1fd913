// Package search resolves a free-text query to a ranked list of URLs using
// the Tavily search API.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/use-agent/summarizer/models"
)

const (
	// DefaultBaseURL is the Tavily API endpoint.
	DefaultBaseURL = "https://api.tavily.com"

	// maxResultsCap is the largest result count the API accepts.
	maxResultsCap = 20
)

// Client calls the Tavily search API. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Tavily client for apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type searchResponse struct {
	Query   string `json:"query"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

type apiError struct {
	Detail struct {
		Error string `json:"error"`
	} `json:"detail"`
}

// Search returns the ranked result URLs for query, at most maxResults.
// An empty result set is returned as an empty slice with no error; Resolve
// is the caller that turns it into ErrNoResults.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if c.apiKey == "" {
		return nil, models.NewScrapeError(models.ErrCodeSearch, "search API key is not configured", nil)
	}
	if maxResults <= 0 {
		maxResults = models.DefaultSearchResults
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	body, err := json.Marshal(searchRequest{
		APIKey:      c.apiKey,
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: "basic",
	})
	if err != nil {
		return nil, fmt.Errorf("search: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("search: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeSearch, "search request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeSearch, "read search response", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if json.Unmarshal(respBody, &ae) == nil && ae.Detail.Error != "" {
			return nil, models.NewScrapeError(models.ErrCodeSearch,
				fmt.Sprintf("search API error (status %d): %s", resp.StatusCode, ae.Detail.Error), nil)
		}
		return nil, models.NewScrapeError(models.ErrCodeSearch,
			fmt.Sprintf("search API returned status %d", resp.StatusCode), nil)
	}

	var parsed searchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeSearch, "parse search response", err)
	}

	urls := make([]string, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	slog.Debug("search completed", "query", query, "results", len(urls))
	return urls, nil
}
