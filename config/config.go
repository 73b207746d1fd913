package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Search    SearchConfig
	Convert   ConvertConfig
	Artifact  ArtifactConfig
	Workspace WorkspaceConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser sessions.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is the proxy URL handed to the launcher.
	Proxy string

	// ViewportWidth and ViewportHeight set the page viewport.
	ViewportWidth  int // default: 1280
	ViewportHeight int // default: 800

	// UserAgent is the identity string applied to every page.
	UserAgent string

	// MaxSessions bounds concurrent browser sessions. 0 means unbounded.
	MaxSessions int // default: 0
}

// ScraperConfig controls navigation and static fetching.
type ScraperConfig struct {
	// NavigationTimeout is the max time for a page to reach the load state.
	NavigationTimeout time.Duration // default: 30s

	// ConsentWait bounds the search for a consent/cookie control.
	ConsentWait time.Duration // default: 5s

	// StaticTimeout is the deadline for the non-browser fetch path.
	StaticTimeout time.Duration // default: 10s

	// BlockedResourceTypes lists resource types the browser does not load.
	// default: ["Font", "Media"]
	BlockedResourceTypes []string

	// BlockTrackers drops requests to well-known ad and analytics hosts.
	BlockTrackers bool // default: true
}

// SearchConfig controls the search API client.
type SearchConfig struct {
	APIKey     string
	BaseURL    string // default: "https://api.tavily.com"
	MaxResults int    // default: 5

	// CacheTTL keeps successful searches in memory. 0 disables the cache.
	CacheTTL     time.Duration // default: 10m
	CacheEntries int           // default: 256
}

// ConvertConfig controls the hosted content-to-markdown API.
// An empty APIKey selects the local readability converter.
type ConvertConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.firecrawl.dev"
}

// ArtifactConfig controls where browse artifacts are written.
type ArtifactConfig struct {
	Dir string // default: "."
}

// WorkspaceConfig sets the starting directory for the file tools.
type WorkspaceConfig struct {
	Root string // default: "."
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per API key.
	Burst int // default: 5
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory, if present, is loaded first and
// never overrides variables already set in the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: envOr("SUMMARIZER_HOST", "0.0.0.0"),
			Port: envIntOr("SUMMARIZER_PORT", 8080),
			Mode: envOr("SUMMARIZER_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:       envBoolOr("SUMMARIZER_HEADLESS", true),
			NoSandbox:      envBoolOr("SUMMARIZER_NO_SANDBOX", false),
			BrowserBin:     os.Getenv("SUMMARIZER_BROWSER_BIN"),
			Proxy:          os.Getenv("SUMMARIZER_PROXY"),
			ViewportWidth:  envIntOr("SUMMARIZER_VIEWPORT_WIDTH", 1280),
			ViewportHeight: envIntOr("SUMMARIZER_VIEWPORT_HEIGHT", 800),
			UserAgent:      envOr("SUMMARIZER_USER_AGENT", DefaultUserAgent),
			MaxSessions:    envIntOr("SUMMARIZER_MAX_SESSIONS", 0),
		},
		Scraper: ScraperConfig{
			NavigationTimeout:    envDurationOr("SUMMARIZER_NAV_TIMEOUT", 30*time.Second),
			ConsentWait:          envDurationOr("SUMMARIZER_CONSENT_WAIT", 5*time.Second),
			StaticTimeout:        envDurationOr("SUMMARIZER_STATIC_TIMEOUT", 10*time.Second),
			BlockedResourceTypes: envSliceOr("SUMMARIZER_BLOCKED_RESOURCES", []string{"Font", "Media"}),
			BlockTrackers:        envBoolOr("SUMMARIZER_BLOCK_TRACKERS", true),
		},
		Search: SearchConfig{
			APIKey:       envOr("TAVILY_SEARCH_API", os.Getenv("TAVILY_API_KEY")),
			BaseURL:      envOr("TAVILY_BASE_URL", "https://api.tavily.com"),
			MaxResults:   envIntOr("SUMMARIZER_SEARCH_RESULTS", 5),
			CacheTTL:     envDurationOr("SUMMARIZER_SEARCH_CACHE_TTL", 10*time.Minute),
			CacheEntries: envIntOr("SUMMARIZER_SEARCH_CACHE_ENTRIES", 256),
		},
		Convert: ConvertConfig{
			APIKey:  os.Getenv("FIRECRAWL_API_KEY"),
			BaseURL: envOr("FIRECRAWL_BASE_URL", "https://api.firecrawl.dev"),
		},
		Artifact: ArtifactConfig{
			Dir: envOr("SUMMARIZER_ARTIFACT_DIR", "."),
		},
		Workspace: WorkspaceConfig{
			Root: envOr("SUMMARIZER_WORKSPACE", "."),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("SUMMARIZER_AUTH_ENABLED", true),
			APIKeys: envSliceOr("SUMMARIZER_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SUMMARIZER_RATE_RPS", 2.0),
			Burst:             envIntOr("SUMMARIZER_RATE_BURST", 5),
		},
		Log: LogConfig{
			Level:  envOr("SUMMARIZER_LOG_LEVEL", "info"),
			Format: envOr("SUMMARIZER_LOG_FORMAT", "json"),
		},
	}
}

// DefaultUserAgent is the browser-like identity used by both fetch paths.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
