package ratelimit

import (
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Exact patterns win over prefix patterns (those ending with "/"); a "*" segment matches
// any single path segment, so "/sessions/*/generate/" matches "/sessions/abc/generate/bio".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health check is unlimited
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && !strings.HasSuffix(config.Path, "/") && matchSegments(config.Path, path, false) {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && matchSegments(config.Path, path, true) {
			return config
		}
	}

	return nil
}

// matchSegments compares pattern and path segment by segment
func matchSegments(pattern, path string, prefix bool) bool {
	if !strings.Contains(pattern, "*") {
		if prefix {
			return strings.HasPrefix(path, pattern)
		}
		return pattern == path
	}

	want := strings.Split(strings.TrimSuffix(pattern, "/"), "/")
	got := strings.Split(path, "/")
	if len(got) < len(want) || (!prefix && len(got) != len(want)) {
		return false
	}
	if prefix && len(got) == len(want) {
		// "/a/*/b/" needs something after "b"
		return false
	}
	for i, seg := range want {
		if seg == "*" {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}
