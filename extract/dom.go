package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// DOMPage is a Page over a parsed HTML snapshot. It lets strategies run on
// HTML that was not rendered by a live browser.
type DOMPage struct {
	doc *goquery.Document
}

// NewDOMPage parses rawHTML into a DOMPage.
func NewDOMPage(rawHTML string) (*DOMPage, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("extract: parse html: %w", err)
	}
	return &DOMPage{doc: goquery.NewDocumentFromNode(root)}, nil
}

// Texts implements Page.
func (p *DOMPage) Texts(ctx context.Context, selector string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("extract: invalid selector %q: %w", selector, err)
	}

	matches := p.doc.FindMatcher(sel)
	texts := make([]string, 0, matches.Length())
	matches.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts, nil
}
