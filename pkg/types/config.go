// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bioquery/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CacheConfig holds settings for the in-memory response cache.
type CacheConfig struct {
	// Enabled toggles the cache. When false, lookups always miss and
	// stores are no-ops.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// TTL is how long a cached payload stays fresh (default 1h).
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	// MaxSize is the maximum number of cached entries. On overflow the
	// globally oldest entry is evicted (default 1000).
	MaxSize int `json:"max_size" yaml:"max_size"`
}

// ClientConfig holds settings for the generic resource client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	Cache CacheConfig `json:"cache" yaml:"cache"`

	// RateDelayCap bounds the pause taken when a rate limit would be
	// violated. The client sleeps the remaining interval, at most this
	// long, then proceeds; the limiter is advisory and never rejects a
	// request (default 1s).
	RateDelayCap time.Duration `json:"rate_delay_cap" yaml:"rate_delay_cap"`

	// MaxRetries bounds 429 retries for delegated clients that opt into
	// backoff (the generic client itself never retries; default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// HistoryConfig holds settings for the query history store.
type HistoryConfig struct {
	// Dir is the directory containing the SQLite database (default "history").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of listed entries (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// DefaultClientConfig returns the client settings used when no
// configuration file overrides them.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "bioquery/0.1",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
			MaxSize: 1000,
		},
		RateDelayCap: time.Second,
		MaxRetries:   3,
	}
}

// DefaultHistoryConfig returns the history store settings used when no
// configuration file overrides them.
func DefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		Dir:        "history",
		MaxResults: 20,
	}
}
