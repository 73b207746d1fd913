// Package cleaner converts fetched HTML into LLM-friendly Markdown.
package cleaner

import (
	"context"
	"fmt"
	"log/slog"
	nurl "net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	readability "github.com/go-shiori/go-readability"

	"github.com/use-agent/summarizer/models"
)

// Converter turns the page at a URL into Markdown.
type Converter interface {
	Name() string
	Convert(ctx context.Context, url string) (string, error)
}

// HTMLFetcher retrieves raw HTML without rendering it.
type HTMLFetcher interface {
	FetchHTML(ctx context.Context, url string) (status int, body []byte, err error)
}

// minContentLength is the shortest readability text accepted as the main
// content. Anything shorter falls back to the whole document.
const minContentLength = 50

// LocalConverter fetches a page statically, isolates the main content with
// readability and renders it as Markdown. It is goroutine-safe.
type LocalConverter struct {
	fetcher HTMLFetcher
	md      *converter.Converter
}

// NewLocalConverter creates a LocalConverter reading pages through fetcher.
func NewLocalConverter(fetcher HTMLFetcher) *LocalConverter {
	return &LocalConverter{
		fetcher: fetcher,
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(
					table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
				),
			),
		),
	}
}

// Name identifies the converter in responses.
func (c *LocalConverter) Name() string { return "local" }

// Convert fetches url and returns its main content as Markdown, headed by
// the page title when one was found.
func (c *LocalConverter) Convert(ctx context.Context, url string) (string, error) {
	status, body, err := c.fetcher.FetchHTML(ctx, url)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", models.NewScrapeError(models.ErrCodeConversion,
			fmt.Sprintf("upstream returned status %d", status), nil)
	}
	return c.HTMLToMarkdown(string(body), url)
}

// HTMLToMarkdown runs readability over rawHTML and converts the result.
func (c *LocalConverter) HTMLToMarkdown(rawHTML, sourceURL string) (string, error) {
	title, content := mainContent(rawHTML, sourceURL)

	md, err := c.md.ConvertString(content, converter.WithDomain(sourceURL))
	if err != nil {
		return "", models.NewScrapeError(models.ErrCodeConversion, "markdown conversion failed", err)
	}
	md = strings.TrimSpace(md)
	if title != "" && !strings.Contains(md, "# "+title) {
		md = "# " + title + "\n\n" + md
	}
	return md, nil
}

// mainContent returns the readability title and content HTML. When
// readability fails or finds too little text, the raw document is used.
func mainContent(rawHTML, sourceURL string) (title, content string) {
	u, err := nurl.Parse(sourceURL)
	if err != nil {
		slog.Warn("readability: invalid source URL, using raw HTML", "url", sourceURL, "error", err)
		return "", rawHTML
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		slog.Warn("readability: extraction failed, using raw HTML", "url", sourceURL, "error", err)
		return "", rawHTML
	}
	if len(strings.TrimSpace(article.TextContent)) < minContentLength {
		slog.Debug("readability: content too short, using raw HTML",
			"url", sourceURL, "length", len(article.TextContent))
		return article.Title, rawHTML
	}
	return article.Title, article.Content
}
