// Package tmdb provides a client for TheMovieDB API, the primary catalog
// used for person, credit and title search.
package tmdb

import (
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/argus/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://api.themoviedb.org/3"
	defaultMaxAttempts   = 3
	defaultRatePerSecond = 4 // TMDB allows ~40 requests per 10 seconds
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a TMDB API client.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		rateLimiter:   ratelimit.New("TMDB", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRetryAttempts sets the number of retry attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}
