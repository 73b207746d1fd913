package scraper

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"
)

// RodDriver drives a local Chromium through go-rod.
type RodDriver struct {
	filter *requestFilter
}

// NewRodDriver returns a driver whose pages block blockedTypes and, when
// blockTrackers is set, well-known ad and analytics hosts.
func NewRodDriver(blockedTypes []string, blockTrackers bool) *RodDriver {
	return &RodDriver{filter: newRequestFilter(blockedTypes, blockTrackers)}
}

// Launch starts a fresh browser process with automation hints removed.
func (d *RodDriver) Launch(ctx context.Context, opts LaunchOptions) (BrowserProcess, error) {
	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(opts.NoSandbox)

	if opts.BrowserBin != "" {
		l = l.Bin(opts.BrowserBin)
	}
	if opts.Proxy != "" {
		l = l.Proxy(opts.Proxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, err
	}
	slog.Debug("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, err
	}
	return &rodBrowser{launcher: l, browser: browser, filter: d.filter}, nil
}

type rodBrowser struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	filter   *requestFilter
}

func (b *rodBrowser) NewContext(ctx context.Context, id Identity) (BrowserContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	incognito, err := b.browser.Incognito()
	if err != nil {
		return nil, err
	}
	return &rodContext{browser: incognito, identity: id, filter: b.filter}, nil
}

// Close shuts the browser down and removes its profile directory.
func (b *rodBrowser) Close() error {
	err := b.browser.Close()
	b.launcher.Kill()
	b.launcher.Cleanup()
	return err
}

type rodContext struct {
	browser  *rod.Browser
	identity Identity
	filter   *requestFilter
}

func (c *rodContext) NewPage(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := c.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             c.identity.Viewport.Width,
		Height:            c.identity.Viewport.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = page.Close()
		return nil, err
	}
	if c.identity.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      c.identity.UserAgent,
			AcceptLanguage: c.identity.AcceptLanguage,
		}); err != nil {
			_ = page.Close()
			return nil, err
		}
	}

	return &rodPage{
		page:     page,
		router:   c.filter.mount(page),
		language: c.identity.AcceptLanguage,
	}, nil
}

// Close disposes the incognito context and everything stored in it.
func (c *rodContext) Close() error {
	return c.browser.Close()
}

type rodPage struct {
	page     *rod.Page
	router   *rod.HijackRouter
	language string
}

func (p *rodPage) Evade() error {
	_, err := p.page.EvalOnNewDocument(stealth.JS)
	return err
}

func (p *rodPage) Navigate(ctx context.Context, target string) error {
	headers := map[string]string{}
	if u, err := url.Parse(target); err == nil {
		headers["Referer"] = "https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())
	}
	if p.language != "" {
		headers["Accept-Language"] = p.language
	}
	_ = proto.NetworkSetExtraHTTPHeaders{Headers: toHeadersMap(headers)}.Call(p.page)

	bound := p.page.Context(ctx)
	if err := bound.Navigate(target); err != nil {
		return err
	}
	return bound.WaitLoad()
}

func (p *rodPage) ClickConsent(ctx context.Context, wait time.Duration) (bool, error) {
	race := p.page.Context(ctx).Timeout(wait).Race()
	for _, sel := range consentSelectors {
		race = race.Element(sel)
	}
	for _, re := range consentButtonTexts {
		race = race.ElementR("button", re)
	}

	el, err := race.Do()
	if err != nil {
		// Nothing matched within wait.
		return false, err
	}
	if err := el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return true, err
	}
	return true, nil
}

func (p *rodPage) Texts(ctx context.Context, selector string) ([]string, error) {
	els, err := p.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(els))
	for _, el := range els {
		t, err := el.Text()
		if err != nil {
			return texts, err
		}
		texts = append(texts, t)
	}
	return texts, nil
}

func (p *rodPage) Screenshot(ctx context.Context) ([]byte, error) {
	return p.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

// Close uses the page without any request context so it still works after
// the request deadline.
func (p *rodPage) Close() error {
	if p.router != nil {
		_ = p.router.Stop()
	}
	return p.page.Close()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
