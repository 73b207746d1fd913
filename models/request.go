package models

// BrowseRequest is the payload for POST /api/v1/browse.
type BrowseRequest struct {
	// URL is the target page to render and extract. Required.
	URL string `json:"url" binding:"required,url"`
}

// SearchRequest is the payload for POST /api/v1/search.
type SearchRequest struct {
	// Query is the free-text search query. Required.
	Query string `json:"query" binding:"required"`

	// MaxResults bounds the ranked URL list returned by the search API.
	// Default: 5. Max: 20.
	MaxResults int `json:"max_results,omitempty" binding:"omitempty,min=1,max=20"`

	// Browse renders the top result with the browser pipeline instead of
	// returning the ranked list.
	Browse bool `json:"browse,omitempty"`
}

// ScrapeRequest is the payload for POST /api/v1/scrape (static fetch path).
type ScrapeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// MarkdownRequest is the payload for POST /api/v1/markdown.
// Exactly one of URL or Query should be set; Query resolves to the top
// search result first.
type MarkdownRequest struct {
	URL   string `json:"url,omitempty" binding:"omitempty,url"`
	Query string `json:"query,omitempty"`
}

// ClassifyRequest is the payload for POST /api/v1/classify.
type ClassifyRequest struct {
	URL string `json:"url" binding:"required"`
}

// DefaultSearchResults is the result-count bound used when a caller does not
// supply one.
const DefaultSearchResults = 5

// Defaults applies default values to unset fields.
func (r *SearchRequest) Defaults() {
	if r.MaxResults == 0 {
		r.MaxResults = DefaultSearchResults
	}
}
