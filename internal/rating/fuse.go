package rating

import (
	"strconv"
	"time"

	"github.com/lepinkainen/argus/internal/omdb"
	"github.com/lepinkainen/argus/internal/tmdb"
)

// Fuse combines a resolved catalog entry with an optional cross-reference
// response into a single summary. cross is nil when no IMDb ID was found
// or when the entry is not known to OMDB.
//
// Sources with no real data are left out entirely: a zero/zero vote pair
// from TMDB means "unrated", and OMDB reports missing fields with an "N/A"
// sentinel.
func Fuse(entry tmdb.Entry, accurate bool, imdbID string, cross *omdb.Response) Summary {
	summary := Summary{
		MediaType: entry.MediaType,
		Accurate:  accurate,
		Updated:   time.Now().UTC(),
		Sources:   make(map[Source]Score),
	}

	if entry.VoteAverage != 0 && entry.VoteCount != 0 {
		summary.Sources[SourceTMDB] = Score{
			Value: strconv.FormatFloat(entry.VoteAverage, 'f', 1, 64),
			Votes: strconv.Itoa(entry.VoteCount),
			RefID: strconv.Itoa(entry.ID),
		}
	}

	if cross != nil {
		if cross.HasImdbRating() {
			summary.Sources[SourceIMDB] = Score{
				Value: cross.ImdbRating,
				Votes: cross.ImdbVotes,
				RefID: imdbID,
			}
		}
		if cross.HasMetascore() {
			summary.Sources[SourceMetacritic] = Score{
				Value: cross.Metascore,
			}
		}
	}

	return summary
}
