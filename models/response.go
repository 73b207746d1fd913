package models

// Artifact is the on-disk output of one browse invocation. Both paths carry
// the same timestamp component.
type Artifact struct {
	ContentPath    string `json:"content_path"`
	ScreenshotPath string `json:"screenshot_path"`
	Timestamp      string `json:"timestamp"`
}

// BrowseResponse is the response for POST /api/v1/browse and for
// search requests with Browse set.
type BrowseResponse struct {
	Success bool `json:"success"`

	// URL is the page that was rendered.
	URL string `json:"url"`

	// Query is set when the URL came from a search.
	Query string `json:"query,omitempty"`

	// Strategy is the extraction strategy tag chosen by the classifier.
	Strategy string `json:"strategy"`

	// Consent is "handled" when a consent control was clicked, "absent" otherwise.
	Consent string `json:"consent"`

	// Sections maps section names to extracted text. Missing sections hold a
	// placeholder string, never an absent key.
	Sections map[string]string `json:"sections"`

	// Artifact holds the persisted content and screenshot paths.
	Artifact *Artifact `json:"artifact,omitempty"`

	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// SearchResponse is the response for POST /api/v1/search.
type SearchResponse struct {
	Success bool         `json:"success"`
	Query   string       `json:"query"`
	URLs    []string     `json:"urls"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ScrapeResponse is the response for POST /api/v1/scrape.
type ScrapeResponse struct {
	Success    bool         `json:"success"`
	URL        string       `json:"url"`
	Title      string       `json:"title,omitempty"`
	StatusCode int          `json:"status_code"`
	Content    string       `json:"content"`
	Error      *ErrorDetail `json:"error,omitempty"`
}

// MarkdownResponse is the response for POST /api/v1/markdown.
type MarkdownResponse struct {
	Success   bool         `json:"success"`
	URL       string       `json:"url"`
	Content   string       `json:"content"`
	Converter string       `json:"converter"`
	Error     *ErrorDetail `json:"error,omitempty"`
}

// ClassifyResponse is the response for POST /api/v1/classify.
type ClassifyResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Strategy string `json:"strategy"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// NavigationMs is the time spent launching, navigating and dismissing consent.
	NavigationMs int64 `json:"navigation_ms"`

	// ExtractionMs is the time spent extracting sections and capturing the screenshot.
	ExtractionMs int64 `json:"extraction_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status       string       `json:"status"` // "healthy" or "degraded"
	Uptime       string       `json:"uptime"`
	SessionStats SessionStats `json:"session_stats"`
	Version      string       `json:"version"`
}

// SessionStats reports browser session usage. MaxSessions is 0 when unbounded.
type SessionStats struct {
	MaxSessions    int `json:"max_sessions"`
	ActiveSessions int `json:"active_sessions"`
}

// ErrorResponse is the body of middleware rejections and bad requests that
// are not tied to a specific endpoint's response shape.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}
