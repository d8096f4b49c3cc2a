package ratelimit

import "strings"

// unlimited marks endpoints that are never throttled
var unlimited = EndpointConfig{}

// MatchEndpoint returns the config for method and path, or nil to use the default.
// Exact paths win over prefix paths.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &unlimited
	}
	if method == "OPTIONS" {
		return &unlimited
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}
