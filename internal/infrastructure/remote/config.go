package remote

import "errors"

// Config validation errors
var (
	ErrConfigMissingAPIBaseURL = errors.New("remote: api_base_url is required")
	ErrConfigMissingSearchURL  = errors.New("remote: search_url is required")
	ErrConfigMissingIndexName  = errors.New("remote: search_index is required")
	ErrConfigInvalidTimeout    = errors.New("remote: timeout_seconds must be positive")
)

// Config holds the remote catalog endpoints and credentials.
type Config struct {
	// APIBaseURL is the base of the versioned catalog API
	// (taxonomy and per-item detail endpoints).
	APIBaseURL string
	// SearchURL is the full URL of the hosted search multi-query endpoint.
	SearchURL string
	// SearchIndex is the index name queried for category pages.
	SearchIndex string
	// SearchAppID and SearchAPIKey authenticate search requests.
	SearchAppID  string
	SearchAPIKey string
	// UserAgent is sent on every request; the upstream rejects the Go
	// default agent.
	UserAgent string
	// HitsPerPage is the page size for category searches.
	HitsPerPage int
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int
}

// DefaultConfig returns a config with sensible defaults; endpoints must
// still be provided.
func DefaultConfig() *Config {
	return &Config{
		HitsPerPage:    100,
		TimeoutSeconds: 30,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) " +
			"Chrome/120.0.0.0 Safari/537.36",
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrConfigMissingAPIBaseURL
	}
	if c.SearchURL == "" {
		return ErrConfigMissingSearchURL
	}
	if c.SearchIndex == "" {
		return ErrConfigMissingIndexName
	}
	if c.TimeoutSeconds <= 0 {
		return ErrConfigInvalidTimeout
	}
	if c.HitsPerPage <= 0 {
		c.HitsPerPage = 100
	}
	return nil
}
