package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/use-agent/summarizer/classify"
)

const githubHTML = `<html><body>
<div id="readme"><article class="markdown-body"><h1>tool</h1><p>A fast tool.</p>
<pre><code>go install example.com/tool@latest</code></pre></article></div>
</body></html>`

const stackOverflowHTML = `<html><body>
<div id="question-header"><h1>How do I reverse a slice?</h1></div>
<div class="question"><pre><code>s := []int{1,2,3}</code></pre>
<span class="comment-copy">Which Go version?</span></div>
<div class="answer"><div class="s-prose js-post-body"><p>Use slices.Reverse.</p></div>
<span class="comment-copy">Works since 1.21.</span></div>
<div class="answer"><div class="s-prose js-post-body"><p>Swap in a loop.</p>
<pre><code>for i, j := 0, len(s)-1; i &lt; j; i, j = i+1, j-1 {}</code></pre></div></div>
</body></html>`

const docsHTML = `<html><body><nav>Home</nav>
<div role="main"><h1>Installation</h1><p>Run the installer.</p><pre>pip install thing</pre></div>
</body></html>`

const articleHTML = `<html><body>
<p>First paragraph.</p><p>   </p><p></p><p>Second paragraph.</p>
<pre>echo hi</pre>
</body></html>`

func mustDOM(t *testing.T, raw string) *DOMPage {
	t.Helper()
	p, err := NewDOMPage(raw)
	if err != nil {
		t.Fatalf("NewDOMPage: %v", err)
	}
	return p
}

func sectionNames(r Result) []string {
	names := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		names[i] = s.Name
	}
	return names
}

func TestFor_ReturnsMatchingStrategy(t *testing.T) {
	for _, tag := range classify.Tags {
		if got := For(tag).Tag(); got != tag {
			t.Errorf("For(%q).Tag() = %q", tag, got)
		}
	}
	if got := For(classify.Tag("unknown")).Tag(); got != classify.Generic {
		t.Errorf("unknown tag should map to Generic, got %q", got)
	}
}

func TestCodeHost_Extract(t *testing.T) {
	r := For(classify.CodeHost).Extract(context.Background(), mustDOM(t, githubHTML))

	doc, _ := r.Get(SectionDocumentation)
	if !strings.Contains(doc, "A fast tool.") {
		t.Errorf("documentation = %q", doc)
	}
	code, _ := r.Get(SectionCodeBlocks)
	if code != "go install example.com/tool@latest" {
		t.Errorf("code_blocks = %q", code)
	}
}

func TestQAForum_Extract(t *testing.T) {
	r := For(classify.QAForum).Extract(context.Background(), mustDOM(t, stackOverflowHTML))

	if title, _ := r.Get(SectionTitle); title != "How do I reverse a slice?" {
		t.Errorf("title = %q", title)
	}
	answers, _ := r.Get(SectionAnswers)
	if !strings.Contains(answers, "Answer 1:\nUse slices.Reverse.") || !strings.Contains(answers, "Answer 2:\nSwap in a loop.") {
		t.Errorf("answers = %q", answers)
	}
	comments, _ := r.Get(SectionComments)
	if comments != "Which Go version?\n\nWorks since 1.21." {
		t.Errorf("comments = %q", comments)
	}
	code, _ := r.Get(SectionCodeBlocks)
	if !strings.Contains(code, "s := []int{1,2,3}") || !strings.Contains(code, "i < j") {
		t.Errorf("code_blocks = %q", code)
	}
}

func TestDocs_Extract(t *testing.T) {
	r := For(classify.Docs).Extract(context.Background(), mustDOM(t, docsHTML))

	doc, _ := r.Get(SectionDocumentation)
	if !strings.Contains(doc, "Run the installer.") || strings.Contains(doc, "Home") {
		t.Errorf("documentation = %q", doc)
	}
	if code, _ := r.Get(SectionCodeBlocks); code != "pip install thing" {
		t.Errorf("code_blocks = %q", code)
	}
}

func TestGeneric_SkipsEmptyParagraphs(t *testing.T) {
	r := For(classify.Generic).Extract(context.Background(), mustDOM(t, articleHTML))

	if p, _ := r.Get(SectionParagraphs); p != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("paragraphs = %q", p)
	}
}

func TestExtract_EmptyPageFillsPlaceholders(t *testing.T) {
	want := map[classify.Tag][]string{
		classify.CodeHost: {SectionDocumentation, SectionCodeBlocks},
		classify.QAForum:  {SectionTitle, SectionAnswers, SectionComments, SectionCodeBlocks},
		classify.Docs:     {SectionDocumentation, SectionCodeBlocks},
		classify.Generic:  {SectionParagraphs, SectionCodeBlocks},
	}

	for tag, names := range want {
		r := For(tag).Extract(context.Background(), mustDOM(t, ""))
		if got := sectionNames(r); strings.Join(got, ",") != strings.Join(names, ",") {
			t.Errorf("%s: sections = %v, want %v", tag, got, names)
		}
		for _, s := range r.Sections {
			if !strings.HasPrefix(s.Text, "No ") || !strings.HasSuffix(s.Text, " found.") {
				t.Errorf("%s/%s: expected placeholder, got %q", tag, s.Name, s.Text)
			}
		}
	}
}

// brokenPage fails or panics for selected selectors and delegates the rest.
type brokenPage struct {
	inner  Page
	fail   map[string]bool
	panics map[string]bool
}

func (b brokenPage) Texts(ctx context.Context, selector string) ([]string, error) {
	if b.panics[selector] {
		panic("node detached")
	}
	if b.fail[selector] {
		return nil, errors.New("cdp: element not found")
	}
	return b.inner.Texts(ctx, selector)
}

func TestExtract_FieldFailureIsIsolated(t *testing.T) {
	page := brokenPage{
		inner:  mustDOM(t, stackOverflowHTML),
		fail:   map[string]bool{".comment-copy": true, ".comment-body": true},
		panics: map[string]bool{"pre": true, "code": true},
	}

	r := For(classify.QAForum).Extract(context.Background(), page)

	if c, _ := r.Get(SectionComments); c != "Failed to extract comments." {
		t.Errorf("comments = %q", c)
	}
	if c, _ := r.Get(SectionCodeBlocks); c != "Failed to extract code blocks." {
		t.Errorf("code_blocks = %q", c)
	}
	if title, _ := r.Get(SectionTitle); title != "How do I reverse a slice?" {
		t.Errorf("title should survive other failures, got %q", title)
	}
	if a, _ := r.Get(SectionAnswers); !strings.Contains(a, "Answer 1:") {
		t.Errorf("answers should survive other failures, got %q", a)
	}
}

func TestExtract_CancelledContextStillReturnsAllSections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := For(classify.Generic).Extract(ctx, mustDOM(t, articleHTML))
	if len(r.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(r.Sections))
	}
	if p, _ := r.Get(SectionParagraphs); p != "Failed to extract paragraphs." {
		t.Errorf("paragraphs = %q", p)
	}
}

func TestField_Or(t *testing.T) {
	if got := (Field{value: "x", found: true}).Or("title"); got != "x" {
		t.Errorf("found field = %q", got)
	}
	if got := (Field{}).Or("title"); got != "No title found." {
		t.Errorf("missing field = %q", got)
	}
	if got := (Field{err: errors.New("boom")}).Or("title"); got != "Failed to extract title." {
		t.Errorf("failed field = %q", got)
	}
}

func TestResult_RenderAndMap(t *testing.T) {
	r := Result{
		Strategy: classify.Docs,
		Sections: []Section{{SectionDocumentation, "Body"}, {SectionCodeBlocks, "No code blocks found."}},
	}

	out := r.Render("https://docs.example.com/a")
	for _, want := range []string{"URL: https://docs.example.com/a", "Strategy: docs", "## Documentation\n\nBody", "## Code Blocks\n\nNo code blocks found."} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q:\n%s", want, out)
		}
	}

	m := r.Map()
	if len(m) != 2 || m[SectionDocumentation] != "Body" {
		t.Errorf("Map() = %v", m)
	}
}

func TestDOMPage_InvalidSelector(t *testing.T) {
	if _, err := mustDOM(t, "<p>x</p>").Texts(context.Background(), "p[[["); err == nil {
		t.Error("expected error for invalid selector")
	}
}
