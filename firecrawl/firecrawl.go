// Package firecrawl is a minimal client for the hosted Firecrawl scrape API,
// used to turn a URL into Markdown.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/use-agent/summarizer/models"
)

// DefaultBaseURL is the hosted API endpoint.
const DefaultBaseURL = "https://api.firecrawl.dev"

// Client calls POST /v1/scrape. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// Name identifies the converter in responses.
func (c *Client) Name() string { return "firecrawl" }

// Convert asks the API to scrape url and returns the Markdown rendition.
func (c *Client) Convert(ctx context.Context, url string) (string, error) {
	body, err := json.Marshal(scrapeRequest{URL: url, Formats: []string{"markdown"}})
	if err != nil {
		return "", fmt.Errorf("firecrawl: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("firecrawl: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", models.NewScrapeError(models.ErrCodeConversion, "conversion request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	if err != nil {
		return "", models.NewScrapeError(models.ErrCodeConversion, "read conversion response", err)
	}

	var parsed scrapeResponse
	decodeErr := json.Unmarshal(respBody, &parsed)

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("conversion API returned status %d", resp.StatusCode)
		if decodeErr == nil && parsed.Error != "" {
			msg += ": " + parsed.Error
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", models.NewScrapeError(models.ErrCodeRateLimited, msg, nil)
		}
		return "", models.NewScrapeError(models.ErrCodeConversion, msg, nil)
	}
	if decodeErr != nil {
		return "", models.NewScrapeError(models.ErrCodeConversion, "parse conversion response", decodeErr)
	}
	if !parsed.Success {
		return "", models.NewScrapeError(models.ErrCodeConversion, "conversion failed: "+parsed.Error, nil)
	}
	return parsed.Data.Markdown, nil
}
