package extract

import (
	"context"

	"github.com/use-agent/summarizer/classify"
)

// codeBlockSelectors are shared by every strategy.
var codeBlockSelectors = []string{"pre", "code"}

// codeHost reads a repository's rendered README and its code blocks.
type codeHost struct{}

func (codeHost) Tag() classify.Tag { return classify.CodeHost }

func (codeHost) Extract(ctx context.Context, p Page) Result {
	return Result{
		Strategy: classify.CodeHost,
		Sections: []Section{
			{SectionDocumentation, first(ctx, p, "article.markdown-body", "#readme", ".markdown-body", ".readme", "#wiki-body").Or("documentation")},
			{SectionCodeBlocks, all(ctx, p, codeBlockSelectors...).Or("code blocks")},
		},
	}
}

// qaForum reads a question page: title, answers, comments and code.
type qaForum struct{}

func (qaForum) Tag() classify.Tag { return classify.QAForum }

func (qaForum) Extract(ctx context.Context, p Page) Result {
	return Result{
		Strategy: classify.QAForum,
		Sections: []Section{
			{SectionTitle, first(ctx, p, "#question-header h1", "h1[itemprop=name]", "h1").Or("title")},
			{SectionAnswers, numbered(ctx, p, "Answer", ".answer .js-post-body", ".answer .s-prose", ".answercell .post-text").Or("answers")},
			{SectionComments, all(ctx, p, ".comment-copy", ".comment-body").Or("comments")},
			{SectionCodeBlocks, all(ctx, p, codeBlockSelectors...).Or("code blocks")},
		},
	}
}

// docs reads the main container of a documentation page.
type docs struct{}

func (docs) Tag() classify.Tag { return classify.Docs }

func (docs) Extract(ctx context.Context, p Page) Result {
	return Result{
		Strategy: classify.Docs,
		Sections: []Section{
			{SectionDocumentation, first(ctx, p, "[role=main]", "main", "article", ".rst-content", ".document", "#content").Or("documentation")},
			{SectionCodeBlocks, all(ctx, p, codeBlockSelectors...).Or("code blocks")},
		},
	}
}

// generic reads every non-empty paragraph and code block.
type generic struct{}

func (generic) Tag() classify.Tag { return classify.Generic }

func (generic) Extract(ctx context.Context, p Page) Result {
	return Result{
		Strategy: classify.Generic,
		Sections: []Section{
			{SectionParagraphs, all(ctx, p, "p").Or("paragraphs")},
			{SectionCodeBlocks, all(ctx, p, codeBlockSelectors...).Or("code blocks")},
		},
	}
}
