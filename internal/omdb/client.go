// Package omdb provides a client for the OMDB API, the cross-reference
// source for IMDb and Metacritic ratings. Lookups go by IMDb ID only;
// title search on OMDB is too ambiguous to trust.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lepinkainen/argus/internal/errors"
	"github.com/lepinkainen/argus/internal/ratelimit"
)

const (
	defaultBaseURL = "https://www.omdbapi.com"
	// OMDB free tier allows 1000 requests/day; 1 req/sec keeps well under it.
	defaultRatePerSecond = 1
)

// Client is an OMDB API client.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  httpDoer
	rateLimiter *ratelimit.Limiter
}

type httpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// NewClient creates a new OMDB API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: ratelimit.New("OMDB", defaultRatePerSecond),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the OMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c httpDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
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

// FetchByIMDBID retrieves rating data for an IMDb ID.
// Returns (nil, nil) when the ID is not known to OMDB.
func (c *Client) FetchByIMDBID(ctx context.Context, imdbID string) (*Response, error) {
	if imdbID == "" {
		return nil, fmt.Errorf("IMDb ID is required")
	}

	slog.Debug("Fetching OMDB data by IMDb ID", "imdb_id", imdbID)

	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("apikey", c.apiKey)

	resp, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	if resp.Response == "False" {
		if strings.Contains(resp.Error, "not found") {
			slog.Debug("Title not found in OMDB", "imdb_id", imdbID)
			return nil, nil
		}
		return nil, fmt.Errorf("OMDB API error: %s", resp.Error)
	}

	if resp.ImdbID == "" || resp.Title == "" {
		return nil, fmt.Errorf("invalid or empty response from OMDB API for ID: %s", imdbID)
	}

	return resp, nil
}

// CheckKey probes the API with the configured key using a throwaway title
// query. It returns an error when the key is missing or rejected.
func (c *Client) CheckKey(ctx context.Context) error {
	params := url.Values{}
	params.Set("t", "foo")
	params.Set("apikey", c.apiKey)

	if _, err := c.get(ctx, params); err != nil {
		return fmt.Errorf("omdb: key check failed: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, params url.Values) (*Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	endpoint := fmt.Sprintf("%s/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 512))
		if readErr == nil {
			var errorResp struct {
				Response string `json:"Response"`
				Error    string `json:"Error"`
			}
			if err := json.Unmarshal(body, &errorResp); err == nil {
				if errorResp.Error == "Request limit reached!" {
					return nil, errors.NewRateLimitError("OMDB API request limit reached")
				}
				slog.Warn("OMDB API error", "error", errorResp.Error)
			}
		}
		return nil, fmt.Errorf("OMDB API returned non-200 status code: %d", resp.StatusCode)
	}

	var omdbResp Response
	if err := json.NewDecoder(resp.Body).Decode(&omdbResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &omdbResp, nil
}
