package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	tls "github.com/refraction-networking/utls"
	"golang.org/x/net/html"

	"github.com/use-agent/summarizer/classify"
	"github.com/use-agent/summarizer/config"
	"github.com/use-agent/summarizer/extract"
	"github.com/use-agent/summarizer/models"
)

// maxBody caps how much of a response body the static path reads.
const maxBody = 10 << 20

// StaticFetcher retrieves pages without a browser, presenting a Chrome TLS
// fingerprint. It is safe for concurrent use.
type StaticFetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// NewStaticFetcher builds a fetcher with the given per-request timeout.
// An http(s) proxy URL, if set, is used for every request.
func NewStaticFetcher(timeout time.Duration, userAgent, proxy string) *StaticFetcher {
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	transport := &http.Transport{
		DialTLSContext:    dialTLSChrome,
		ForceAttemptHTTP2: false,
	}
	if proxy != "" {
		if u, err := url.Parse(proxy); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &StaticFetcher{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// StaticPage is the outcome of a static fetch.
type StaticPage struct {
	Status int
	Title  string
	Text   string
}

// Fetch returns the text of every <p> on the page, one per line, after
// removing links, scripts, styles and noscript blocks.
//
// A non-2xx response is not an error: the returned text is
// "Error: Unable to scrape. Status code {code}".
func (f *StaticFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	page, err := f.FetchPage(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return page.Text, nil
}

// FetchPage is Fetch plus the response status and document title.
func (f *StaticFetcher) FetchPage(ctx context.Context, rawURL string) (*StaticPage, error) {
	status, body, err := f.FetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		slog.Info("static fetch got non-success status", "url", rawURL, "status", status)
		return &StaticPage{
			Status: status,
			Text:   fmt.Sprintf("Error: Unable to scrape. Status code %d", status),
		}, nil
	}
	text, err := paragraphText(string(body))
	if err != nil {
		return nil, err
	}
	return &StaticPage{Status: status, Title: extractTitle(body), Text: text}, nil
}

// Extract runs the site strategy for rawURL over the unrendered HTML. Pages
// that need JavaScript come back with placeholder sections. A non-2xx status
// fails with NAVIGATION_FAILED.
func (f *StaticFetcher) Extract(ctx context.Context, rawURL string) (extract.Result, error) {
	status, body, err := f.FetchHTML(ctx, rawURL)
	if err != nil {
		return extract.Result{}, err
	}
	if status < 200 || status > 299 {
		return extract.Result{}, models.NewScrapeError(models.ErrCodeNavigation,
			fmt.Sprintf("Error: Unable to scrape. Status code %d", status), nil)
	}

	page, err := extract.NewDOMPage(string(body))
	if err != nil {
		return extract.Result{}, models.NewScrapeError(models.ErrCodeNavigation, "parse html", err)
	}
	return extract.For(classify.Classify(rawURL)).Extract(ctx, page), nil
}

// FetchHTML performs the GET and returns the status code and raw body.
func (f *StaticFetcher) FetchHTML(ctx context.Context, rawURL string) (int, []byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, models.NewScrapeError(models.ErrCodeInvalidInput, "invalid url", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, categorizeError(err, "static fetch failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, nil, categorizeError(err, "read response body")
	}
	return resp.StatusCode, body, nil
}

func paragraphText(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", models.NewScrapeError(models.ErrCodeConversion, "parse html", err)
	}
	doc.Find("a, script, style, noscript").Remove()

	var lines []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		lines = append(lines, strings.TrimSpace(s.Text()))
	})
	return strings.Join(lines, "\n"), nil
}

// extractTitle returns the first <title> text in body.
func extractTitle(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if string(name) != "title" {
				continue
			}
			if tokenizer.Next() == html.TextToken {
				return strings.TrimSpace(string(tokenizer.Text()))
			}
			return ""
		}
	}
}

// dialTLSChrome opens a TLS connection with a Chrome ClientHello whose ALPN
// only offers http/1.1, since http.Transport cannot speak h2 over a utls conn.
// The ClientHello is rebuilt per connection because extensions carry handshake state.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	hello, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return nil, fmt.Errorf("httpfetch: build client hello: %w", err)
	}
	for i, ext := range hello.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			hello.Extensions[i] = alpn
			break
		}
	}

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
	if err := tlsConn.ApplyPreset(&hello); err != nil {
		conn.Close()
		return nil, fmt.Errorf("httpfetch: apply client hello: %w", err)
	}
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return tlsConn, nil
}
