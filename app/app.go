// Package app assembles the services shared by the HTTP server, the MCP
// server and the CLI from a loaded configuration.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/use-agent/summarizer/api"
	"github.com/use-agent/summarizer/artifact"
	"github.com/use-agent/summarizer/cache"
	"github.com/use-agent/summarizer/cleaner"
	"github.com/use-agent/summarizer/config"
	"github.com/use-agent/summarizer/firecrawl"
	"github.com/use-agent/summarizer/fsutil"
	"github.com/use-agent/summarizer/scraper"
	"github.com/use-agent/summarizer/search"
	"github.com/use-agent/summarizer/tools"
)

// Services is the wired object graph.
type Services struct {
	Config    *config.Config
	Resolver  *search.Resolver
	Scraper   *scraper.Scraper
	Fetcher   *scraper.StaticFetcher
	Converter cleaner.Converter
	Artifacts *artifact.Writer
	Workspace *fsutil.Workspace
}

// Options override pieces of the default graph.
type Options struct {
	// Driver replaces the Rod driver.
	Driver scraper.Driver

	// Fs backs the workspace. Defaults to the OS filesystem.
	Fs afero.Fs
}

// New builds Services from cfg. Nothing is launched until a browse call.
func New(cfg *config.Config, opts Options) (*Services, error) {
	searchOpts := []search.Option{}
	if cfg.Search.BaseURL != "" {
		searchOpts = append(searchOpts, search.WithBaseURL(cfg.Search.BaseURL))
	}
	var searcher search.Searcher = search.NewClient(cfg.Search.APIKey, searchOpts...)
	if cfg.Search.CacheTTL > 0 {
		searcher = search.NewCachedSearcher(searcher, cache.New[[]string](cfg.Search.CacheEntries, cfg.Search.CacheTTL))
	}
	resolver := search.NewResolver(searcher)

	driver := opts.Driver
	if driver == nil {
		driver = scraper.NewRodDriver(cfg.Scraper.BlockedResourceTypes, cfg.Scraper.BlockTrackers)
	}
	writer := artifact.NewWriter(cfg.Artifact.Dir)

	sc := scraper.New(scraper.Deps{
		Driver:   driver,
		Resolver: resolver,
		Writer:   writer,
	}, cfg.Browser, cfg.Scraper)

	fetcher := scraper.NewStaticFetcher(cfg.Scraper.StaticTimeout, cfg.Browser.UserAgent, cfg.Browser.Proxy)

	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	ws, err := fsutil.NewWorkspace(fsys, cfg.Workspace.Root)
	if err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}

	return &Services{
		Config:    cfg,
		Resolver:  resolver,
		Scraper:   sc,
		Fetcher:   fetcher,
		Converter: newConverter(cfg.Convert, fetcher),
		Artifacts: writer,
		Workspace: ws,
	}, nil
}

// newConverter prefers the hosted API when a key is configured.
func newConverter(cfg config.ConvertConfig, fetcher *scraper.StaticFetcher) cleaner.Converter {
	if cfg.APIKey == "" {
		slog.Debug("markdown converter selected", "converter", "local")
		return cleaner.NewLocalConverter(fetcher)
	}
	var opts []firecrawl.Option
	if cfg.BaseURL != "" {
		opts = append(opts, firecrawl.WithBaseURL(cfg.BaseURL))
	}
	slog.Debug("markdown converter selected", "converter", "firecrawl")
	return firecrawl.NewClient(cfg.APIKey, opts...)
}

// Tools returns the MCP tool handlers over s.
func (s *Services) Tools() *tools.Handlers {
	return tools.New(tools.Deps{
		Browser:    s.Scraper,
		Resolver:   s.Resolver,
		Fetcher:    s.Fetcher,
		Converter:  s.Converter,
		Workspace:  s.Workspace,
		MaxResults: s.Config.Search.MaxResults,
	})
}

// APIDeps returns the HTTP router dependencies over s.
func (s *Services) APIDeps(startTime time.Time, version string) api.Deps {
	return api.Deps{
		Browser:   s.Scraper,
		Resolver:  s.Resolver,
		Fetcher:   s.Fetcher,
		Converter: s.Converter,
		StartTime: startTime,
		Version:   version,
	}
}
