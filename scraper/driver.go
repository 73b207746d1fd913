package scraper

import (
	"context"
	"time"

	"github.com/use-agent/summarizer/extract"
)

// LaunchOptions configure the browser process.
type LaunchOptions struct {
	Headless   bool
	NoSandbox  bool
	BrowserBin string
	Proxy      string
}

// Viewport is the page size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// Identity is what the browser context presents to sites.
type Identity struct {
	UserAgent      string
	AcceptLanguage string
	Viewport       Viewport
}

// Driver launches browser processes. RodDriver is the production driver.
type Driver interface {
	Launch(ctx context.Context, opts LaunchOptions) (BrowserProcess, error)
}

// BrowserProcess is one running browser.
type BrowserProcess interface {
	NewContext(ctx context.Context, id Identity) (BrowserContext, error)
	Close() error
}

// BrowserContext is an isolated profile (cookies, storage) inside a browser.
type BrowserContext interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is one tab. Close must work even after ctx passed to other methods
// has expired.
type Page interface {
	extract.Page

	// Evade installs anti-fingerprinting scripts for future navigations.
	Evade() error

	// Navigate loads url and returns once the load event fired.
	Navigate(ctx context.Context, url string) error

	// ClickConsent looks for a cookie/consent control for at most wait and
	// clicks it. found is false when no control appeared.
	ClickConsent(ctx context.Context, wait time.Duration) (found bool, err error)

	// Screenshot captures the full page as PNG.
	Screenshot(ctx context.Context) ([]byte, error)

	Close() error
}
