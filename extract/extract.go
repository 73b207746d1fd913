// Package extract turns a rendered page into named text sections using a
// site-family specific strategy.
//
// Every strategy has a fixed section set and always fills all of it. A
// sub-extraction that finds nothing, or fails, stores a placeholder string in
// its section and the remaining sections are still extracted.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/use-agent/summarizer/classify"
)

// Section names.
const (
	SectionTitle         = "title"
	SectionDocumentation = "documentation"
	SectionAnswers       = "answers"
	SectionComments      = "comments"
	SectionParagraphs    = "paragraphs"
	SectionCodeBlocks    = "code_blocks"
)

// Page is the read-only view of a rendered document a strategy needs.
type Page interface {
	// Texts returns the text of every element matching selector, in
	// document order. No match is an empty slice, not an error.
	Texts(ctx context.Context, selector string) ([]string, error)
}

// Strategy extracts the sections of one site family.
type Strategy interface {
	Tag() classify.Tag
	Extract(ctx context.Context, p Page) Result
}

// Section is one named piece of extracted text.
type Section struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Result is the output of a strategy. Sections keep the strategy's order.
type Result struct {
	Strategy classify.Tag `json:"strategy"`
	Sections []Section    `json:"sections"`
}

// Get returns the text of the named section and whether it exists.
func (r Result) Get(name string) (string, bool) {
	for _, s := range r.Sections {
		if s.Name == name {
			return s.Text, true
		}
	}
	return "", false
}

// Map returns the sections keyed by name.
func (r Result) Map() map[string]string {
	m := make(map[string]string, len(r.Sections))
	for _, s := range r.Sections {
		m[s.Name] = s.Text
	}
	return m
}

// Render formats the result as the plain-text content artifact.
func (r Result) Render(sourceURL string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "URL: %s\nStrategy: %s\n", sourceURL, r.Strategy)
	for _, s := range r.Sections {
		fmt.Fprintf(&sb, "\n## %s\n\n%s\n", sectionHeading(s.Name), s.Text)
	}
	return sb.String()
}

func sectionHeading(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// For returns the strategy registered for tag. Unknown tags get Generic.
func For(tag classify.Tag) Strategy {
	switch tag {
	case classify.CodeHost:
		return codeHost{}
	case classify.QAForum:
		return qaForum{}
	case classify.Docs:
		return docs{}
	default:
		return generic{}
	}
}
