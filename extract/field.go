package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Field is the outcome of one sub-extraction: either a value, nothing, or
// a read failure. Or turns it into the text stored in the section.
type Field struct {
	value string
	found bool
	err   error
}

// Or returns the value when found and otherwise a placeholder naming what
// is missing ("No comments found." / "Failed to extract comments.").
func (f Field) Or(what string) string {
	switch {
	case f.found:
		return f.value
	case f.err != nil:
		return fmt.Sprintf("Failed to extract %s.", what)
	default:
		return fmt.Sprintf("No %s found.", what)
	}
}

// first returns the first non-empty text matched by the earliest selector
// that matches anything.
func first(ctx context.Context, p Page, selectors ...string) Field {
	items, err := lookup(ctx, p, selectors...)
	if len(items) == 0 {
		return Field{err: err}
	}
	return Field{value: items[0], found: true}
}

// all returns every non-empty text matched by the earliest selector that
// yields at least one, joined with blank lines.
func all(ctx context.Context, p Page, selectors ...string) Field {
	items, err := lookup(ctx, p, selectors...)
	if len(items) == 0 {
		return Field{err: err}
	}
	return Field{value: strings.Join(items, "\n\n"), found: true}
}

// numbered is all() with each item prefixed by label and its position.
func numbered(ctx context.Context, p Page, label string, selectors ...string) Field {
	items, err := lookup(ctx, p, selectors...)
	if len(items) == 0 {
		return Field{err: err}
	}
	for i, text := range items {
		items[i] = fmt.Sprintf("%s %d:\n%s", label, i+1, text)
	}
	return Field{value: strings.Join(items, "\n\n"), found: true}
}

// lookup tries selectors in order and returns the non-empty texts of the
// first one that yields any. err is the last read failure seen, if nothing
// was found.
func lookup(ctx context.Context, p Page, selectors ...string) ([]string, error) {
	var lastErr error
	for _, sel := range selectors {
		texts, err := safeTexts(ctx, p, sel)
		if err != nil {
			slog.Debug("extract: selector failed", "selector", sel, "error", err)
			lastErr = err
			continue
		}
		if items := nonEmpty(texts); len(items) > 0 {
			return items, nil
		}
	}
	return nil, lastErr
}

// safeTexts converts a panicking page read into an error so no sub-extraction
// can abort the others.
func safeTexts(ctx context.Context, p Page, selector string) (texts []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read %q: %v", selector, r)
		}
	}()
	return p.Texts(ctx, selector)
}

func nonEmpty(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
