// Package scraper renders pages in an isolated headless browser session and
// extracts site-specific content from them. It also hosts the browserless
// static fetch path.
package scraper

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/use-agent/summarizer/classify"
	"github.com/use-agent/summarizer/config"
	"github.com/use-agent/summarizer/extract"
	"github.com/use-agent/summarizer/models"
)

// URLResolver turns a query into the top-ranked URL.
type URLResolver interface {
	Top(ctx context.Context, query string, maxResults int) (string, error)
}

// ArtifactPersister writes the rendered content and screenshot of one browse.
type ArtifactPersister interface {
	Persist(content string, screenshot []byte) (models.Artifact, error)
}

// Deps are the collaborators a Scraper is built from. Resolver may be nil,
// in which case SearchAndBrowse fails.
type Deps struct {
	Driver   Driver
	Resolver URLResolver
	Writer   ArtifactPersister
}

// BrowseResult is the outcome of one browse invocation.
type BrowseResult struct {
	URL            string
	Query          string
	Strategy       classify.Tag
	ConsentHandled bool
	Extraction     extract.Result
	Artifact       models.Artifact
	NavigationTime time.Duration
	ExtractionTime time.Duration
}

// Scraper runs the browse pipeline. Each call owns a fresh browser session;
// nothing is pooled. It is safe for concurrent use.
type Scraper struct {
	deps        Deps
	opts        SessionOptions
	scraperCfg  config.ScraperConfig
	maxSessions int
	sem         *semaphore.Weighted // nil when unbounded
	active      atomic.Int32
}

// New creates a Scraper. browserCfg.MaxSessions > 0 bounds how many
// sessions may be open at once; further calls wait for a slot.
func New(deps Deps, browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) *Scraper {
	s := &Scraper{
		deps: deps,
		opts: SessionOptions{
			Launch: LaunchOptions{
				Headless:   browserCfg.Headless,
				NoSandbox:  browserCfg.NoSandbox,
				BrowserBin: browserCfg.BrowserBin,
				Proxy:      browserCfg.Proxy,
			},
			Identity: Identity{
				UserAgent:      browserCfg.UserAgent,
				AcceptLanguage: "en-US,en;q=0.9",
				Viewport: Viewport{
					Width:  browserCfg.ViewportWidth,
					Height: browserCfg.ViewportHeight,
				},
			},
		},
		scraperCfg:  scraperCfg,
		maxSessions: browserCfg.MaxSessions,
	}
	if browserCfg.MaxSessions > 0 {
		s.sem = semaphore.NewWeighted(int64(browserCfg.MaxSessions))
	}
	return s
}

// Stats returns a snapshot of session usage.
func (s *Scraper) Stats() models.SessionStats {
	return models.SessionStats{
		MaxSessions:    s.maxSessions,
		ActiveSessions: int(s.active.Load()),
	}
}

// SearchAndBrowse resolves query to its top result and browses it.
func (s *Scraper) SearchAndBrowse(ctx context.Context, query string, maxResults int) (*BrowseResult, error) {
	if s.deps.Resolver == nil {
		return nil, models.NewScrapeError(models.ErrCodeSearch, "search is not configured", nil)
	}
	target, err := s.deps.Resolver.Top(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	slog.Info("search resolved", "query", query, "url", target)

	res, err := s.Browse(ctx, target)
	if err != nil {
		return nil, err
	}
	res.Query = query
	return res, nil
}

// Browse renders rawURL and persists its extracted content and screenshot.
//
// Lifecycle (numbered steps match the inline comments):
//
//  1. Validate + classify  – pick the extraction strategy (no network)
//  2. Slot                 – wait for a session slot when bounded
//  3. Acquire session      – browser, isolated context, page, evasion
//  4. DEFER: release       – page, context, browser on every exit path
//  5. Navigate             – bounded by the navigation timeout
//  6. Consent              – bounded wait; absence is not an error
//  7. Extract              – per-section isolation inside the strategy
//  8. Screenshot
//  9. Persist              – content + screenshot under one timestamp
func (s *Scraper) Browse(ctx context.Context, rawURL string) (*BrowseResult, error) {
	// ── 1. Validate + classify ────────────────────────────────────────
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}
	tag := classify.Classify(rawURL)
	strategy := extract.For(tag)

	// ── 2. Slot ───────────────────────────────────────────────────────
	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, categorizeError(err, "waiting for a browser session slot")
		}
		defer s.sem.Release(1)
	}
	s.active.Add(1)
	defer s.active.Add(-1)

	start := time.Now()

	// ── 3. Acquire session ────────────────────────────────────────────
	sess, err := Acquire(ctx, s.deps.Driver, s.opts)
	if err != nil {
		return nil, err
	}

	// ── 4. DEFER: release ─────────────────────────────────────────────
	defer func() {
		if err := sess.Release(); err != nil {
			slog.Error("browser session release reported errors", "url", rawURL, "error", err)
		}
	}()

	// ── 5. Navigate ───────────────────────────────────────────────────
	if err := sess.Navigate(ctx, rawURL, s.scraperCfg.NavigationTimeout); err != nil {
		return nil, err
	}

	// ── 6. Consent ────────────────────────────────────────────────────
	consent := sess.DismissConsent(ctx, s.scraperCfg.ConsentWait)
	navDone := time.Now()

	// ── 7. Extract ────────────────────────────────────────────────────
	extraction, err := sess.Extract(ctx, strategy)
	if err != nil {
		return nil, err
	}

	// ── 8. Screenshot ─────────────────────────────────────────────────
	png, err := sess.Screenshot(ctx)
	if err != nil {
		return nil, err
	}
	extractDone := time.Now()

	// ── 9. Persist ────────────────────────────────────────────────────
	art, err := s.deps.Writer.Persist(extraction.Render(rawURL), png)
	if err != nil {
		return nil, err
	}

	slog.Info("browse complete",
		"url", rawURL,
		"strategy", tag,
		"consent_handled", consent,
		"elapsed", time.Since(start),
	)
	return &BrowseResult{
		URL:            rawURL,
		Strategy:       tag,
		ConsentHandled: consent,
		Extraction:     extraction,
		Artifact:       art,
		NavigationTime: navDone.Sub(start),
		ExtractionTime: extractDone.Sub(navDone),
	}, nil
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return models.NewScrapeError(models.ErrCodeInvalidInput, "url must be an absolute http(s) URL", err)
	}
	return nil
}
