package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/use-agent/summarizer/classify"
	"github.com/use-agent/summarizer/models"
)

var errNotConfigured = map[string]error{
	"browser":   models.NewScrapeError(models.ErrCodeInternal, "browser sessions are not configured", nil),
	"search":    models.NewScrapeError(models.ErrCodeSearch, "search is not configured", nil),
	"fetcher":   models.NewScrapeError(models.ErrCodeInternal, "static fetching is not configured", nil),
	"converter": models.NewScrapeError(models.ErrCodeConversion, "markdown conversion is not configured", nil),
}

func (h *Handlers) webTools() []entry {
	return []entry{
		{
			tool: mcp.NewTool("browse_url",
				mcp.WithDescription("Render a web page in an isolated headless browser, dismiss any cookie consent dialog, "+
					"extract site-specific content (README for code hosts, question/answers/comments for Q&A forums, "+
					"main container for documentation, paragraphs otherwise, plus code blocks) and save the text and a "+
					"full-page screenshot to disk."),
				mcp.WithString("url",
					mcp.Required(),
					mcp.Description("Absolute http(s) URL of the page to browse"),
				),
			),
			handler: h.browseURL,
		},
		{
			tool: mcp.NewTool("search_and_browse",
				mcp.WithDescription("Search the web for a query, then browse the top-ranked result like browse_url."),
				mcp.WithString("query",
					mcp.Required(),
					mcp.Description("Free-text search query"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("How many results to rank before picking the top one (default: 5, max: 20)"),
				),
			),
			handler: h.searchAndBrowse,
		},
		{
			tool: mcp.NewTool("search",
				mcp.WithDescription("Search the web and return the ranked result URLs without visiting them."),
				mcp.WithString("query",
					mcp.Required(),
					mcp.Description("Free-text search query"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum number of URLs to return (default: 5, max: 20)"),
				),
			),
			handler: h.search,
		},
		{
			tool: mcp.NewTool("classify_url",
				mcp.WithDescription("Report which extraction strategy a URL maps to: "+
					"code_host, qa_forum, docs or generic. No network access."),
				mcp.WithString("url",
					mcp.Required(),
					mcp.Description("The URL to classify"),
				),
			),
			handler: h.classifyURL,
		},
		{
			tool: mcp.NewTool("scrape_content",
				mcp.WithDescription("Fetch a page without a browser and return the text of its paragraphs, one per line. "+
					"Links, scripts and styles are removed and JavaScript is not executed. "+
					"A non-success HTTP status is returned as \"Error: Unable to scrape. Status code N\"."),
				mcp.WithString("url",
					mcp.Required(),
					mcp.Description("Absolute http(s) URL of the page to fetch"),
				),
			),
			handler: h.scrapeContent,
		},
		{
			tool: mcp.NewTool("scrape_markdown",
				mcp.WithDescription("Convert a web page to Markdown."),
				mcp.WithString("url",
					mcp.Required(),
					mcp.Description("Absolute http(s) URL of the page to convert"),
				),
			),
			handler: h.scrapeMarkdown,
		},
		{
			tool: mcp.NewTool("search_and_scrape",
				mcp.WithDescription("Search the web for a query and return the top-ranked result converted to Markdown."),
				mcp.WithString("query",
					mcp.Required(),
					mcp.Description("Free-text search query"),
				),
			),
			handler: h.searchAndScrape,
		},
	}
}

func (h *Handlers) browseURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return errorText("url is required"), nil
	}
	if h.deps.Browser == nil {
		return errorResult("browse_url", errNotConfigured["browser"]), nil
	}

	res, err := h.deps.Browser.Browse(ctx, url)
	if err != nil {
		return errorResult("browse_url", err), nil
	}
	return jsonResult("browse_url", res.Response()), nil
}

func (h *Handlers) searchAndBrowse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return errorText("query is required"), nil
	}
	if h.deps.Browser == nil {
		return errorResult("search_and_browse", errNotConfigured["browser"]), nil
	}

	res, err := h.deps.Browser.SearchAndBrowse(ctx, query, h.maxResults(req))
	if err != nil {
		return errorResult("search_and_browse", err), nil
	}
	return jsonResult("search_and_browse", res.Response()), nil
}

func (h *Handlers) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return errorText("query is required"), nil
	}
	if h.deps.Resolver == nil {
		return errorResult("search", errNotConfigured["search"]), nil
	}

	urls, err := h.deps.Resolver.Resolve(ctx, query, h.maxResults(req))
	if err != nil {
		return errorResult("search", err), nil
	}
	return jsonResult("search", models.SearchResponse{Success: true, Query: query, URLs: urls}), nil
}

func (h *Handlers) classifyURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return errorText("url is required"), nil
	}
	return jsonResult("classify_url", models.ClassifyResponse{
		Success:  true,
		URL:      url,
		Strategy: string(classify.Classify(url)),
	}), nil
}

func (h *Handlers) scrapeContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return errorText("url is required"), nil
	}
	if h.deps.Fetcher == nil {
		return errorResult("scrape_content", errNotConfigured["fetcher"]), nil
	}

	text, err := h.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		return errorResult("scrape_content", err), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (h *Handlers) scrapeMarkdown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return errorText("url is required"), nil
	}
	md, err := h.convert(ctx, url)
	if err != nil {
		return errorResult("scrape_markdown", err), nil
	}
	return mcp.NewToolResultText(md), nil
}

func (h *Handlers) searchAndScrape(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return errorText("query is required"), nil
	}
	if h.deps.Resolver == nil {
		return errorResult("search_and_scrape", errNotConfigured["search"]), nil
	}

	url, err := h.deps.Resolver.Top(ctx, query, h.deps.MaxResults)
	if err != nil {
		return errorResult("search_and_scrape", err), nil
	}
	md, err := h.convert(ctx, url)
	if err != nil {
		return errorResult("search_and_scrape", err), nil
	}
	return mcp.NewToolResultText(md), nil
}

func (h *Handlers) convert(ctx context.Context, url string) (string, error) {
	if h.deps.Converter == nil {
		return "", errNotConfigured["converter"]
	}
	md, err := h.deps.Converter.Convert(ctx, url)
	if err != nil {
		var se *models.ScrapeError
		if !errors.As(err, &se) {
			err = models.NewScrapeError(models.ErrCodeConversion, "conversion failed", err)
		}
		return "", err
	}
	return md, nil
}

func (h *Handlers) maxResults(req mcp.CallToolRequest) int {
	n := req.GetInt("max_results", h.deps.MaxResults)
	if n <= 0 {
		return h.deps.MaxResults
	}
	return n
}
