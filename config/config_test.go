package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env file
	for _, key := range []string{
		"SUMMARIZER_NAV_TIMEOUT", "SUMMARIZER_CONSENT_WAIT", "SUMMARIZER_STATIC_TIMEOUT",
		"SUMMARIZER_ARTIFACT_DIR", "SUMMARIZER_MAX_SESSIONS", "SUMMARIZER_BLOCKED_RESOURCES",
		"SUMMARIZER_SEARCH_RESULTS", "SUMMARIZER_VIEWPORT_WIDTH", "SUMMARIZER_VIEWPORT_HEIGHT",
		"SUMMARIZER_SEARCH_CACHE_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Scraper.NavigationTimeout != 30*time.Second {
		t.Errorf("NavigationTimeout = %v, want 30s", cfg.Scraper.NavigationTimeout)
	}
	if cfg.Scraper.ConsentWait != 5*time.Second {
		t.Errorf("ConsentWait = %v, want 5s", cfg.Scraper.ConsentWait)
	}
	if cfg.Scraper.StaticTimeout != 10*time.Second {
		t.Errorf("StaticTimeout = %v, want 10s", cfg.Scraper.StaticTimeout)
	}
	if cfg.Artifact.Dir != "." {
		t.Errorf("Artifact.Dir = %q, want \".\"", cfg.Artifact.Dir)
	}
	if cfg.Browser.MaxSessions != 0 {
		t.Errorf("MaxSessions = %d, want 0 (unbounded)", cfg.Browser.MaxSessions)
	}
	if cfg.Browser.ViewportWidth != 1280 || cfg.Browser.ViewportHeight != 800 {
		t.Errorf("viewport = %dx%d, want 1280x800", cfg.Browser.ViewportWidth, cfg.Browser.ViewportHeight)
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("Search.MaxResults = %d, want 5", cfg.Search.MaxResults)
	}
	if cfg.Search.CacheTTL != 10*time.Minute {
		t.Errorf("Search.CacheTTL = %v, want 10m", cfg.Search.CacheTTL)
	}
	if len(cfg.Scraper.BlockedResourceTypes) != 2 {
		t.Errorf("BlockedResourceTypes = %v, want [Font Media]", cfg.Scraper.BlockedResourceTypes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SUMMARIZER_NAV_TIMEOUT", "45s")
	t.Setenv("SUMMARIZER_ARTIFACT_DIR", "/tmp/out")
	t.Setenv("SUMMARIZER_MAX_SESSIONS", "3")
	t.Setenv("SUMMARIZER_BLOCKED_RESOURCES", "Image, Font ,,Media")
	t.Setenv("SUMMARIZER_HEADLESS", "false")
	t.Setenv("TAVILY_SEARCH_API", "tvly-test")

	cfg := Load()

	if cfg.Scraper.NavigationTimeout != 45*time.Second {
		t.Errorf("NavigationTimeout = %v, want 45s", cfg.Scraper.NavigationTimeout)
	}
	if cfg.Artifact.Dir != "/tmp/out" {
		t.Errorf("Artifact.Dir = %q", cfg.Artifact.Dir)
	}
	if cfg.Browser.MaxSessions != 3 {
		t.Errorf("MaxSessions = %d, want 3", cfg.Browser.MaxSessions)
	}
	if got := cfg.Scraper.BlockedResourceTypes; len(got) != 3 || got[0] != "Image" || got[1] != "Font" {
		t.Errorf("BlockedResourceTypes = %v", got)
	}
	if cfg.Browser.Headless {
		t.Error("expected Headless=false")
	}
	if cfg.Search.APIKey != "tvly-test" {
		t.Errorf("Search.APIKey = %q", cfg.Search.APIKey)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SUMMARIZER_NAV_TIMEOUT", "soon")
	t.Setenv("SUMMARIZER_PORT", "eighty")

	cfg := Load()

	if cfg.Scraper.NavigationTimeout != 30*time.Second {
		t.Errorf("NavigationTimeout = %v, want fallback 30s", cfg.Scraper.NavigationTimeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want fallback 8080", cfg.Server.Port)
	}
}

func TestSetupLogger_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := SetupLogger(LogConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("dropped")
	logger.Warn("kept", "url", "https://example.com")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "kept" || line["url"] != "https://example.com" {
		t.Errorf("unexpected log line: %v", line)
	}
}
