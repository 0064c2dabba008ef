package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/lepinkainen/argus/internal/feed"
	"github.com/lepinkainen/argus/internal/rating"
	"github.com/stretchr/testify/assert"
)

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary rating.Summary
		want    string
	}{
		{
			name: "all sources in display order",
			summary: rating.Summary{
				MediaType: "movie",
				Accurate:  true,
				Sources: map[rating.Source]rating.Score{
					rating.SourceTMDB:       {Value: "7.9"},
					rating.SourceIMDB:       {Value: "7.9", Votes: "768,141"},
					rating.SourceMetacritic: {Value: "81"},
				},
			},
			want: "IMDB: 7.9  Meta: 81  TMDB: 7.9",
		},
		{
			name: "single source",
			summary: rating.Summary{
				MediaType: "tv",
				Accurate:  true,
				Sources: map[rating.Source]rating.Score{
					rating.SourceTMDB: {Value: "8.2"},
				},
			},
			want: "TMDB: 8.2",
		},
		{
			name: "title-only match is marked unverified",
			summary: rating.Summary{
				MediaType: "movie",
				Accurate:  false,
				Sources: map[rating.Source]rating.Score{
					rating.SourceIMDB: {Value: "6.4"},
				},
			},
			want: "IMDB: 6.4  [unverified]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSummary(tt.summary))
		})
	}
}

func TestLineRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &lineRenderer{out: &buf}

	r.Render(feed.Item{ID: "tile-1", Title: "Arrival"}, rating.Summary{
		MediaType: "movie",
		Accurate:  true,
		Updated:   time.Now(),
		Sources: map[rating.Source]rating.Score{
			rating.SourceIMDB: {Value: "7.9"},
		},
	})

	assert.Equal(t, "Arrival - IMDB: 7.9\n", buf.String())
}
