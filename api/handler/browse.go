package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/summarizer/models"
	"github.com/use-agent/summarizer/scraper"
)

// Browser runs the browse pipeline and reports session usage.
type Browser interface {
	Browse(ctx context.Context, url string) (*scraper.BrowseResult, error)
	SearchAndBrowse(ctx context.Context, query string, maxResults int) (*scraper.BrowseResult, error)
	Stats() models.SessionStats
}

// Resolver turns a query into ranked URLs.
type Resolver interface {
	Resolve(ctx context.Context, query string, maxResults int) ([]string, error)
	Top(ctx context.Context, query string, maxResults int) (string, error)
}

// Browse returns a handler for POST /api/v1/browse.
func Browse(b Browser) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BrowseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		res, err := b.Browse(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res.Response())
	}
}

// Search returns a handler for POST /api/v1/search. With browse set, the top
// result is rendered and the browse response is returned instead of the list.
func Search(r Resolver, b Browser) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		req.Defaults()

		if req.Browse {
			res, err := b.SearchAndBrowse(c.Request.Context(), req.Query, req.MaxResults)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, res.Response())
			return
		}

		urls, err := r.Resolve(c.Request.Context(), req.Query, req.MaxResults)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SearchResponse{Success: true, Query: req.Query, URLs: urls})
	}
}
