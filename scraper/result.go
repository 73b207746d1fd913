package scraper

import "github.com/use-agent/summarizer/models"

// Consent values reported in responses.
const (
	ConsentHandled = "handled"
	ConsentAbsent  = "absent"
)

// Response converts the result into the shape shared by the tool and HTTP
// surfaces.
func (r *BrowseResult) Response() *models.BrowseResponse {
	consent := ConsentAbsent
	if r.ConsentHandled {
		consent = ConsentHandled
	}
	art := r.Artifact
	return &models.BrowseResponse{
		Success:  true,
		URL:      r.URL,
		Query:    r.Query,
		Strategy: string(r.Strategy),
		Consent:  consent,
		Sections: r.Extraction.Map(),
		Artifact: &art,
		Timing: models.TimingInfo{
			TotalMs:      (r.NavigationTime + r.ExtractionTime).Milliseconds(),
			NavigationMs: r.NavigationTime.Milliseconds(),
			ExtractionMs: r.ExtractionTime.Milliseconds(),
		},
	}
}
