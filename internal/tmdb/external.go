package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

// ExternalIDs fetches the external identifiers for a movie or TV entry and
// returns the IMDb ID, or "" when the entry has none.
func (c *Client) ExternalIDs(ctx context.Context, mediaType string, id int) (string, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	endpoint := fmt.Sprintf("%s/%s/%d/external_ids?%s", c.baseURL, url.PathEscape(mediaType), id, params.Encode())

	var response struct {
		IMDBID string `json:"imdb_id"`
	}

	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return "", err
	}

	return response.IMDBID, nil
}

// CheckKey probes the API with the configured key. It returns an error when
// the key is missing or rejected.
func (c *Client) CheckKey(ctx context.Context) error {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	endpoint := fmt.Sprintf("%s/configuration?%s", c.baseURL, params.Encode())

	var response map[string]any
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return fmt.Errorf("tmdb: key check failed: %w", err)
	}
	return nil
}
