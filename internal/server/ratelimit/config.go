package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Defaults applied when the environment does not override them.
const (
	DefaultLimit         = 300
	DefaultWindow        = time.Minute
	DefaultResearchLimit = 30
	DefaultResearchBurst = 5
)

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	defaultLimit := getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", DefaultLimit)
	defaultWindow := getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", DefaultWindow)
	cleanupInterval := getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute)
	researchLimit := getEnvInt("RATE_LIMIT_RESEARCH_LIMIT", DefaultResearchLimit)
	researchWindow := getEnvDuration("RATE_LIMIT_RESEARCH_WINDOW", time.Hour)

	whitelist := parseIPList(getEnvString("RATE_LIMIT_WHITELIST", ""))
	blacklist := parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", ""))

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: cleanupInterval,
		Whitelist:       whitelist,
		Blacklist:       blacklist,
		EndpointConfigs: EndpointConfigs(researchLimit, researchWindow),
	}
}

// EndpointConfigs returns the endpoint-specific configurations. Every route
// that triggers a research run shares the research limit.
func EndpointConfigs(researchLimit int, researchWindow time.Duration) []EndpointConfig {
	burst := min(DefaultResearchBurst, researchLimit)
	return []EndpointConfig{
		// Research runs scrape, call the news API and the model
		{Path: "/research", Method: "POST", Limit: researchLimit, Window: researchWindow, Burst: burst},
		{Path: "/research/stream", Method: "POST", Limit: researchLimit, Window: researchWindow, Burst: burst},
		{Path: "/report", Method: "GET", Limit: researchLimit, Window: researchWindow, Burst: burst},

		// Formatting is local work
		{Path: "/format", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
