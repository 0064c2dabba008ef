package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

// SearchPerson performs a free-text person search. The query is a display
// name and may match several distinct people; results are returned in API
// order.
func (c *Client) SearchPerson(ctx context.Context, name string) ([]Person, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", name)

	endpoint := fmt.Sprintf("%s/search/person?%s", c.baseURL, params.Encode())

	var response struct {
		Results []Person `json:"results"`
	}

	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return response.Results, nil
}

// CombinedCredits fetches the combined movie and TV credit lists for a
// person, in API order.
func (c *Client) CombinedCredits(ctx context.Context, personID int) (*Credits, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	endpoint := fmt.Sprintf("%s/person/%d/combined_credits?%s", c.baseURL, personID, params.Encode())

	var credits Credits
	if err := c.getJSON(ctx, endpoint, &credits); err != nil {
		return nil, err
	}

	return &credits, nil
}

// SearchMulti performs a multi-search on TMDB for movies and TV shows.
// Results are returned in API order; entries that are neither movies nor
// TV shows (e.g. people) are skipped.
func (c *Client) SearchMulti(ctx context.Context, query string) ([]Entry, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("include_adult", "false")

	endpoint := fmt.Sprintf("%s/search/multi?%s", c.baseURL, params.Encode())

	var response struct {
		Results []struct {
			ID          int     `json:"id"`
			MediaType   string  `json:"media_type"`
			VoteAverage float64 `json:"vote_average"`
			VoteCount   int     `json:"vote_count"`
		} `json:"results"`
	}

	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	var results []Entry
	for _, item := range response.Results {
		if item.MediaType != "movie" && item.MediaType != "tv" {
			continue
		}
		results = append(results, Entry{
			ID:          item.ID,
			MediaType:   item.MediaType,
			VoteAverage: item.VoteAverage,
			VoteCount:   item.VoteCount,
		})
	}

	return results, nil
}
