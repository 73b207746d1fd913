package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/summarizer/classify"
	"github.com/use-agent/summarizer/cleaner"
	"github.com/use-agent/summarizer/models"
	"github.com/use-agent/summarizer/scraper"
)

// PageFetcher is the browserless fetch path.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*scraper.StaticPage, error)
}

// Scrape returns a handler for POST /api/v1/scrape. A non-2xx upstream
// status is a successful response whose content is the error string.
func Scrape(f PageFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		page, err := f.FetchPage(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ScrapeResponse{
			Success:    true,
			URL:        req.URL,
			Title:      page.Title,
			StatusCode: page.Status,
			Content:    page.Text,
		})
	}
}

// Markdown returns a handler for POST /api/v1/markdown. A query is resolved
// to its top search result first.
func Markdown(conv cleaner.Converter, r Resolver, maxResults int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.MarkdownRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		target := req.URL
		switch {
		case target == "" && req.Query == "":
			respondError(c, models.NewScrapeError(models.ErrCodeInvalidInput, "url or query is required", nil))
			return
		case target == "":
			top, err := r.Top(c.Request.Context(), req.Query, maxResults)
			if err != nil {
				respondError(c, err)
				return
			}
			target = top
		}

		md, err := conv.Convert(c.Request.Context(), target)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.MarkdownResponse{
			Success:   true,
			URL:       target,
			Content:   md,
			Converter: conv.Name(),
		})
	}
}

// Classify returns a handler for POST /api/v1/classify.
func Classify() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ClassifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ClassifyResponse{
			Success:  true,
			URL:      req.URL,
			Strategy: string(classify.Classify(req.URL)),
		})
	}
}
