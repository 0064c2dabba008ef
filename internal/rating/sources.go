package rating

import (
	"fmt"
	"net/url"
)

// Source identifies a rating provider. The set is closed; anything reading
// a Summary can switch over these exhaustively.
type Source string

const (
	// SourceTMDB is the community rating from the primary catalog.
	SourceTMDB Source = "tmdb"
	// SourceIMDB is the IMDb rating cross-referenced through OMDB.
	SourceIMDB Source = "imdb"
	// SourceMetacritic is the Metacritic critic score, also via OMDB.
	SourceMetacritic Source = "metacritic"
)

// Order is the display order for sources.
var Order = []Source{SourceIMDB, SourceMetacritic, SourceTMDB}

// Label returns the short display label for a source.
func (s Source) Label() string {
	switch s {
	case SourceTMDB:
		return "TMDB"
	case SourceIMDB:
		return "IMDB"
	case SourceMetacritic:
		return "Meta"
	default:
		return string(s)
	}
}

// Link returns the reference URL for a score from this source, or "" when
// no link can be built. mediaType and title come from the summary the
// score belongs to.
func (s Source) Link(score Score, mediaType, title string) string {
	switch s {
	case SourceTMDB:
		if score.RefID == "" {
			return ""
		}
		return fmt.Sprintf("https://www.themoviedb.org/%s/%s", mediaType, score.RefID)
	case SourceIMDB:
		if score.RefID == "" {
			return ""
		}
		return fmt.Sprintf("https://imdb.com/title/%s", score.RefID)
	case SourceMetacritic:
		return fmt.Sprintf("https://www.metacritic.com/search/%s/%s/results", mediaType, url.PathEscape(title))
	default:
		return ""
	}
}
