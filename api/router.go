package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/summarizer/api/handler"
	"github.com/use-agent/summarizer/api/middleware"
	"github.com/use-agent/summarizer/cleaner"
	"github.com/use-agent/summarizer/config"
)

// Deps are the services behind the HTTP API. All are required.
type Deps struct {
	Browser   handler.Browser
	Resolver  handler.Resolver
	Fetcher   handler.PageFetcher
	Converter cleaner.Converter
	StartTime time.Time
	Version   string
}

// NewRouter creates a configured Gin engine with all routes and middleware.
// ctx bounds the rate limiter's background eviction.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health stays outside auth so monitoring probes always work.
func NewRouter(ctx context.Context, deps Deps, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	v1.GET("/health", handler.Health(deps.Browser, deps.StartTime, deps.Version))

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(ctx, cfg.RateLimit))

	protected.POST("/browse", handler.Browse(deps.Browser))
	protected.POST("/search", handler.Search(deps.Resolver, deps.Browser))
	protected.POST("/scrape", handler.Scrape(deps.Fetcher))
	protected.POST("/markdown", handler.Markdown(deps.Converter, deps.Resolver, cfg.Search.MaxResults))
	protected.POST("/classify", handler.Classify())

	return r
}
