package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/use-agent/summarizer/models"
)

func newTavilyServer(t *testing.T, status int, body string, gotReq *searchRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if gotReq != nil {
			if err := json.NewDecoder(r.Body).Decode(gotReq); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Search(t *testing.T) {
	var got searchRequest
	srv := newTavilyServer(t, http.StatusOK, `{"query":"go generics","results":[
		{"title":"A","url":"https://go.dev/doc/tutorial/generics","score":0.9},
		{"title":"B","url":"https://stackoverflow.com/q/1","score":0.8},
		{"title":"no url","url":""}
	]}`, &got)

	urls, err := NewClient("tvly-key", WithBaseURL(srv.URL)).Search(context.Background(), "go generics", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(urls) != 2 || urls[0] != "https://go.dev/doc/tutorial/generics" || urls[1] != "https://stackoverflow.com/q/1" {
		t.Errorf("urls = %v", urls)
	}
	if got.APIKey != "tvly-key" || got.Query != "go generics" || got.MaxResults != 3 {
		t.Errorf("request = %+v", got)
	}
}

func TestClient_SearchClampsMaxResults(t *testing.T) {
	var got searchRequest
	srv := newTavilyServer(t, http.StatusOK, `{"results":[]}`, &got)

	if _, err := NewClient("k", WithBaseURL(srv.URL)).Search(context.Background(), "q", 500); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got.MaxResults != maxResultsCap {
		t.Errorf("max_results = %d, want %d", got.MaxResults, maxResultsCap)
	}
}

func TestClient_SearchAPIError(t *testing.T) {
	srv := newTavilyServer(t, http.StatusUnauthorized, `{"detail":{"error":"Unauthorized: missing or invalid API key."}}`, nil)

	_, err := NewClient("bad", WithBaseURL(srv.URL)).Search(context.Background(), "q", 5)

	var se *models.ScrapeError
	if !errors.As(err, &se) || se.Code != models.ErrCodeSearch {
		t.Fatalf("expected SEARCH_FAILED, got %v", err)
	}
}

func TestClient_SearchMissingKey(t *testing.T) {
	if _, err := NewClient("").Search(context.Background(), "q", 5); err == nil {
		t.Error("expected error without API key")
	}
}

// stubSearcher counts calls and returns fixed results.
type stubSearcher struct {
	urls  []string
	err   error
	calls int
}

func (s *stubSearcher) Search(_ context.Context, _ string, _ int) ([]string, error) {
	s.calls++
	return s.urls, s.err
}

func TestResolver_TopReturnsFirstRanked(t *testing.T) {
	r := NewResolver(&stubSearcher{urls: []string{"https://a.example", "https://b.example"}})

	top, err := r.Top(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if top != "https://a.example" {
		t.Errorf("top = %q", top)
	}
}

func TestResolver_NoResults(t *testing.T) {
	stub := &stubSearcher{}
	r := NewResolver(stub)

	urls, err := r.Resolve(context.Background(), "zxqv nothing matches", 5)
	if !errors.Is(err, models.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got urls=%v err=%v", urls, err)
	}
	if stub.calls != 1 {
		t.Errorf("expected exactly one API call (no retry), got %d", stub.calls)
	}
}

func TestResolver_NoResultsThroughHTTP(t *testing.T) {
	srv := newTavilyServer(t, http.StatusOK, `{"query":"q","results":[]}`, nil)
	r := NewResolver(NewClient("k", WithBaseURL(srv.URL)))

	if _, err := r.Top(context.Background(), "q", 5); !errors.Is(err, models.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestResolver_EmptyQuery(t *testing.T) {
	stub := &stubSearcher{}
	_, err := NewResolver(stub).Resolve(context.Background(), "   ", 5)

	var se *models.ScrapeError
	if !errors.As(err, &se) || se.Code != models.ErrCodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if stub.calls != 0 {
		t.Error("empty query must not reach the API")
	}
}

func TestResolver_PropagatesSearchError(t *testing.T) {
	boom := models.NewScrapeError(models.ErrCodeSearch, "down", nil)
	_, err := NewResolver(&stubSearcher{err: boom}).Resolve(context.Background(), "q", 5)
	if !errors.Is(err, boom) {
		t.Fatalf("expected search error, got %v", err)
	}
}
