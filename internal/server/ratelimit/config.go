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

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	defaultLimit := envOr("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi)
	defaultWindow := envOr("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration)
	cleanupInterval := envOr("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration)
	idleTimeout := envOr("RATE_LIMIT_IDLE_TIMEOUT", time.Hour, time.ParseDuration)

	whitelist := parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	blacklist := parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: cleanupInterval,
		IdleTimeout:     idleTimeout,
		Whitelist:       whitelist,
		Blacklist:       blacklist,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: calls that reach Gemini or Chrome (strictest limits)
		{Path: "/documents/*/assist/*", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
		{Path: "/documents/*/preview.pdf", Method: "GET", Limit: 60, Window: time.Hour, Burst: 5},

		// Tier 2: write operations (moderate limits)
		{Path: "/documents", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/documents/", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/documents/", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/documents/", Method: "PATCH", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/documents/", Method: "DELETE", Limit: 300, Window: time.Minute, Burst: 30},

		// Tier 3: reads use the default limit
		// Tier 4: health check is unlimited, see MatchEndpoint
	}
}

// envOr parses key with parse, returning fallback when unset or malformed
func envOr[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

// parseIPList parses a comma-separated list of client addresses into a set
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
