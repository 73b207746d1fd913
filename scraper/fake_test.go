package scraper

import (
	"context"
	"errors"
	"sync"
	"time"
)

// recorder collects the ordered calls made against fake browser resources.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) has(call string) bool {
	for _, c := range r.list() {
		if c == call {
			return true
		}
	}
	return false
}

func (r *recorder) index(call string) int {
	for i, c := range r.list() {
		if c == call {
			return i
		}
	}
	return -1
}

type fakeDriver struct {
	rec *recorder

	launchErr  error
	contextErr error
	pageErr    error

	page *fakePage
}

func newFakeDriver() *fakeDriver {
	rec := &recorder{}
	return &fakeDriver{
		rec: rec,
		page: &fakePage{
			rec:        rec,
			texts:      map[string][]string{},
			screenshot: []byte("\x89PNG fake"),
		},
	}
}

func (d *fakeDriver) Launch(ctx context.Context, _ LaunchOptions) (BrowserProcess, error) {
	d.rec.add("launch")
	if d.launchErr != nil {
		return nil, d.launchErr
	}
	return &fakeBrowser{d: d}, nil
}

type fakeBrowser struct{ d *fakeDriver }

func (b *fakeBrowser) NewContext(ctx context.Context, id Identity) (BrowserContext, error) {
	b.d.rec.add("context")
	if b.d.contextErr != nil {
		return nil, b.d.contextErr
	}
	return &fakeContext{d: b.d}, nil
}

func (b *fakeBrowser) Close() error {
	b.d.rec.add("close browser")
	return nil
}

type fakeContext struct{ d *fakeDriver }

func (c *fakeContext) NewPage(ctx context.Context) (Page, error) {
	c.d.rec.add("page")
	if c.d.pageErr != nil {
		return nil, c.d.pageErr
	}
	return c.d.page, nil
}

func (c *fakeContext) Close() error {
	c.d.rec.add("close context")
	return nil
}

type fakePage struct {
	rec *recorder

	evadeErr      error
	navigateDelay time.Duration
	navigateErr   error
	consentFound  bool
	screenshot    []byte
	screenshotErr error
	texts         map[string][]string
	closeErr      error
}

func (p *fakePage) Evade() error {
	p.rec.add("evade")
	return p.evadeErr
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.rec.add("navigate " + url)
	if p.navigateDelay > 0 {
		select {
		case <-time.After(p.navigateDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.navigateErr
}

func (p *fakePage) ClickConsent(ctx context.Context, wait time.Duration) (bool, error) {
	p.rec.add("consent")
	if !p.consentFound {
		return false, errors.New("context deadline exceeded")
	}
	return true, nil
}

func (p *fakePage) Texts(ctx context.Context, selector string) ([]string, error) {
	return p.texts[selector], nil
}

func (p *fakePage) Screenshot(ctx context.Context) ([]byte, error) {
	p.rec.add("screenshot")
	return p.screenshot, p.screenshotErr
}

func (p *fakePage) Close() error {
	p.rec.add("close page")
	return p.closeErr
}
