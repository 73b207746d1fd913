package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/use-agent/summarizer/extract"
	"github.com/use-agent/summarizer/models"
)

// State is a step in a browser session's lifecycle.
type State int

const (
	StateCreated State = iota
	StateLaunched
	StateContextOpen
	StatePageOpen
	StateNavigated
	StateConsentHandled
	StateConsentAbsent
	StateExtracted
	StateClosed
)

var stateNames = [...]string{
	StateCreated:        "created",
	StateLaunched:       "launched",
	StateContextOpen:    "context_open",
	StatePageOpen:       "page_open",
	StateNavigated:      "navigated",
	StateConsentHandled: "consent_handled",
	StateConsentAbsent:  "consent_absent",
	StateExtracted:      "extracted",
	StateClosed:         "closed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// SessionOptions configure one browser session.
type SessionOptions struct {
	Launch   LaunchOptions
	Identity Identity
}

// Session owns one browser process, one isolated context and one page for
// a single browse invocation. Sessions are never shared or reused.
type Session struct {
	mu      sync.Mutex
	state   State
	history []State

	browser BrowserProcess
	context BrowserContext
	page    Page
}

// Acquire launches a browser, opens an isolated context and a page, and
// installs evasion scripts. Evasion failures are logged and the session
// continues. On error everything opened so far is already released.
func Acquire(ctx context.Context, d Driver, opts SessionOptions) (*Session, error) {
	s := &Session{state: StateCreated, history: []State{StateCreated}}

	browser, err := d.Launch(ctx, opts.Launch)
	if err != nil {
		return nil, s.fail(models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to launch browser", err))
	}
	s.browser = browser
	s.advance(StateLaunched)

	bctx, err := browser.NewContext(ctx, opts.Identity)
	if err != nil {
		return nil, s.fail(models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to open browser context", err))
	}
	s.context = bctx
	s.advance(StateContextOpen)

	page, err := bctx.NewPage(ctx)
	if err != nil {
		return nil, s.fail(models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to open page", err))
	}
	s.page = page
	s.advance(StatePageOpen)

	// Must run before the first navigation to take effect.
	if err := page.Evade(); err != nil {
		slog.Warn("evasion script injection failed, proceeding without it", "error", err)
	}
	return s, nil
}

// Navigate loads url, failing with NAVIGATION_TIMEOUT when the load event
// does not fire within timeout.
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := s.expect(StatePageOpen); err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := s.page.Navigate(ctx, url); err != nil {
		if ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
			err = fmt.Errorf("%w: %w", ctx.Err(), err)
		}
		return categorizeError(err, "navigation to "+url+" failed")
	}
	s.advance(StateNavigated)
	return nil
}

// DismissConsent clicks a consent control if one appears within wait. A
// missing control is not an error; it is logged and reported as false.
func (s *Session) DismissConsent(ctx context.Context, wait time.Duration) bool {
	if err := s.expect(StateNavigated); err != nil {
		slog.Warn("consent step skipped", "error", err)
		return false
	}

	found, err := s.page.ClickConsent(ctx, wait)
	switch {
	case found && err == nil:
		s.advance(StateConsentHandled)
		return true
	case found:
		slog.Info("consent control found but click failed", "error", err)
	default:
		slog.Info("no consent control found", "wait", wait)
	}
	s.advance(StateConsentAbsent)
	return false
}

// Extract runs strategy against the loaded page.
func (s *Session) Extract(ctx context.Context, strategy extract.Strategy) (extract.Result, error) {
	if err := s.expect(StateConsentHandled, StateConsentAbsent); err != nil {
		return extract.Result{}, err
	}
	res := strategy.Extract(ctx, s.page)
	s.advance(StateExtracted)
	return res, nil
}

// Screenshot captures the page as PNG.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	if err := s.expect(StateExtracted); err != nil {
		return nil, err
	}
	png, err := s.page.Screenshot(ctx)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeScreenshot, "failed to capture screenshot", err)
	}
	return png, nil
}

// Release closes page, context and browser in that order. It is safe to
// call more than once and from any state.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return nil
	}

	var errs []error
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close page: %w", err))
		}
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close context: %w", err))
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	s.page, s.context, s.browser = nil, nil, nil

	slog.Debug("browser session released", "from", s.state)
	s.state = StateClosed
	s.history = append(s.history, StateClosed)
	return errors.Join(errs...)
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns every state the session has been in, oldest first.
func (s *Session) History() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]State(nil), s.history...)
}

func (s *Session) advance(to State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = to
	s.history = append(s.history, to)
}

func (s *Session) expect(states ...State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range states {
		if s.state == st {
			return nil
		}
	}
	return models.NewScrapeError(models.ErrCodeInternal,
		fmt.Sprintf("browser session is %s, expected %v", s.state, states), nil)
}

// fail releases partial resources and returns err.
func (s *Session) fail(err *models.ScrapeError) error {
	if rerr := s.Release(); rerr != nil {
		slog.Warn("release after failed acquire", "error", rerr)
	}
	return err
}

// categorizeError wraps raw errors into typed ScrapeErrors so the tool and
// API layers can report them uniformly.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeNavigationTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeNavigationTimeout, "request canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}
