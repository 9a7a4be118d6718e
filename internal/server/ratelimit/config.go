package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const envPrefix = "PORTFOLIO_RATE_LIMIT_"

// Config controls a Limiter. Whitelisted clients skip metering and
// blacklisted clients are always refused.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// EndpointConfig is the allowance for one route pattern and method.
// Path is exact, a prefix when it ends in "/", and "*" matches one segment.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per Window; zero means unmetered
	Window time.Duration
	Burst  int // bucket size; Limit when zero
}

func (e EndpointConfig) capacity() int {
	if e.Burst > 0 {
		return e.Burst
	}
	return e.Limit
}

// LoadConfig loads rate limiting configuration from PORTFOLIO_RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !envValue(envPrefix+"ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envValue(envPrefix+"DEFAULT_LIMIT", 600, strconv.Atoi),
		DefaultWindow:   envValue(envPrefix+"DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envValue(envPrefix+"CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       ipSet(os.Getenv(envPrefix + "WHITELIST")),
		Blacklist:       ipSet(os.Getenv(envPrefix + "BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
// More specific patterns come first: prefix matching takes the first hit.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: model calls and file parsing (strictest limits)
		{Path: "/upload-resume", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/generate-bio", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/generate-work-description", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/generate-project-description", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/generate-cover-letter", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/sessions", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/sessions/*/generate/", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		// Tier 2: exports (a PDF print starts a browser)
		{Path: "/sessions/*/export", Method: "GET", Limit: 60, Window: time.Hour, Burst: 10},

		// Tier 3: edits (moderate limits)
		{Path: "/sessions/", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/sessions/", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/sessions/", Method: "DELETE", Limit: 300, Window: time.Minute, Burst: 30},

		// Reads use the default limit; the health check is unlimited (see MatchEndpoint)
	}
}

// envValue parses the variable with parse, keeping fallback when it is unset or malformed
func envValue[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

// ipSet splits a comma separated list of addresses
func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
