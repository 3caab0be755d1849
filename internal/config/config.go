// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Defaults used when neither the config file, the environment nor a flag sets a value.
const (
	DefaultPort             = 8000
	DefaultCacheTTL         = time.Hour
	DefaultCacheCleanup     = 30 * time.Minute
	DefaultWikipediaBaseURL = "https://en.wikipedia.org/wiki/"
	DefaultNewsBaseURL      = "https://newsapi.org/v2/everything"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP port

	// Upstream credentials
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key for summaries
	NewsAPIKey   string `json:"news_api_key,omitempty"`   // NewsAPI key; mock news when empty
	SearchAPIKey string `json:"search_api_key,omitempty"` // Custom Search API key
	SearchCX     string `json:"search_cx,omitempty"`      // Custom Search engine id

	// Upstream endpoints
	WikipediaBaseURL string `json:"wikipedia_base_url,omitempty"`
	NewsBaseURL      string `json:"news_base_url,omitempty"`

	// Cache
	DatabaseURL  string `json:"database_url,omitempty"`  // PostgreSQL URL for the persistent cache tier
	CacheTTL     string `json:"cache_ttl,omitempty"`     // e.g. "1h"
	CacheCleanup string `json:"cache_cleanup,omitempty"` // e.g. "30m"

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Render pages in a headless browser when HTTP text is thin
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Port:             DefaultPort,
		WikipediaBaseURL: DefaultWikipediaBaseURL,
		NewsBaseURL:      DefaultNewsBaseURL,
		CacheTTL:         DefaultCacheTTL.String(),
		CacheCleanup:     DefaultCacheCleanup.String(),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load reads the optional config file, fills defaults and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(Default())
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	if _, err := c.CacheTTLDuration(); err != nil {
		return fmt.Errorf("config error: 'cache_ttl': %w", err)
	}
	if _, err := c.CacheCleanupDuration(); err != nil {
		return fmt.Errorf("config error: 'cache_cleanup': %w", err)
	}

	for name, raw := range map[string]string{
		"wikipedia_base_url": c.WikipediaBaseURL,
		"news_base_url":      c.NewsBaseURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: '%s' is not an absolute URL: %q", name, raw)
		}
	}

	if (c.SearchAPIKey == "") != (c.SearchCX == "") {
		return fmt.Errorf("config error: 'search_api_key' and 'search_cx' must be set together")
	}

	return nil
}

// CacheTTLDuration parses CacheTTL, defaulting to DefaultCacheTTL.
func (c *Config) CacheTTLDuration() (time.Duration, error) {
	return parseDuration(c.CacheTTL, DefaultCacheTTL)
}

// CacheCleanupDuration parses CacheCleanup, defaulting to DefaultCacheCleanup.
func (c *Config) CacheCleanupDuration() (time.Duration, error) {
	return parseDuration(c.CacheCleanup, DefaultCacheCleanup)
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.NewsAPIKey == "" {
		result.NewsAPIKey = defaults.NewsAPIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchCX == "" {
		result.SearchCX = defaults.SearchCX
	}
	if result.WikipediaBaseURL == "" {
		result.WikipediaBaseURL = defaults.WikipediaBaseURL
	}
	if result.NewsBaseURL == "" {
		result.NewsBaseURL = defaults.NewsBaseURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CacheTTL == "" {
		result.CacheTTL = defaults.CacheTTL
	}
	if result.CacheCleanup == "" {
		result.CacheCleanup = defaults.CacheCleanup
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides fields from environment variables when they are set.
func (c *Config) ApplyEnv() {
	overrides := map[string]*string{
		"GEMINI_API_KEY": &c.GeminiAPIKey,
		"NEWS_API_KEY":   &c.NewsAPIKey,
		"SEARCH_API_KEY": &c.SearchAPIKey,
		"SEARCH_CX":      &c.SearchCX,
		"DATABASE_URL":   &c.DatabaseURL,
		"CACHE_TTL":      &c.CacheTTL,
	}
	for key, field := range overrides {
		if value := os.Getenv(key); value != "" {
			*field = value
		}
	}

	if value := os.Getenv("PORT"); value != "" {
		if port, err := strconv.Atoi(value); err == nil {
			c.Port = port
		}
	}
	if value := os.Getenv("USE_BROWSER"); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			c.UseBrowser = b
		}
	}
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", raw)
	}
	return d, nil
}
