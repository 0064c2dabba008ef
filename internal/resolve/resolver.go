// Package resolve matches an on-page media descriptor to a catalog entry.
//
// Title search alone is unreliable: remakes, franchise entries and
// same-named documentaries collide constantly. When the descriptor names a
// credited person, the resolver walks that person's credit list instead and
// only falls back to a bare title search when no credit lines up. Matches
// found through a credit are flagged accurate; fallback matches are not.
package resolve

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lepinkainen/argus/internal/media"
	"github.com/lepinkainen/argus/internal/tmdb"
)

// Match is the outcome of a successful resolution: the catalog entry, how
// it was found, and the cross-reference identifier for the secondary
// provider ("" when the entry has none).
type Match struct {
	Entry    tmdb.Entry
	Accurate bool
	IMDBID   string
}

// Resolver resolves media descriptors against the TMDB catalog.
type Resolver struct {
	client *tmdb.Client
}

// NewResolver creates a resolver backed by the given TMDB client.
func NewResolver(client *tmdb.Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve runs the matching algorithm for one descriptor.
//
// Returns (nil, nil) when neither path finds anything; that is a normal
// negative result and must not be cached. Provider errors abort the whole
// attempt.
func (r *Resolver) Resolve(ctx context.Context, d media.Descriptor) (*Match, error) {
	entry, found, err := r.matchByPerson(ctx, d)
	if err != nil {
		return nil, err
	}

	accurate := true
	if !found {
		if d.HasPerson() {
			slog.Warn("No credit matched, falling back to title search", "title", d.Title, "person", d.Person)
		}
		entry, found, err = r.matchByTitle(ctx, d)
		if err != nil {
			return nil, err
		}
		if !found {
			slog.Warn("Title not found in catalog", "title", d.Title)
			return nil, nil
		}
		// First result of a bare title search; nothing disambiguated it.
		accurate = false
	}

	imdbID, err := r.client.ExternalIDs(ctx, entry.MediaType, entry.ID)
	if err != nil {
		return nil, err
	}

	return &Match{Entry: entry, Accurate: accurate, IMDBID: imdbID}, nil
}

// matchByPerson scans the credit lists of everyone matching the descriptor's
// person name, in provider order, and returns the first credit that lines
// up with the title and year. People search is free-text, so several
// distinct people can share the name; the scan continues across all of them.
func (r *Resolver) matchByPerson(ctx context.Context, d media.Descriptor) (tmdb.Entry, bool, error) {
	if !d.HasPerson() {
		return tmdb.Entry{}, false, nil
	}

	people, err := r.client.SearchPerson(ctx, d.Person)
	if err != nil {
		return tmdb.Entry{}, false, err
	}

	for _, person := range people {
		credits, err := r.client.CombinedCredits(ctx, person.ID)
		if err != nil {
			return tmdb.Entry{}, false, err
		}

		for _, credit := range creditsForRole(credits, d.Role) {
			if !creditMatches(credit, d) {
				continue
			}
			slog.Debug("Found credit match",
				"title", d.Title, "person", person.Name, "role", d.Role, "id", credit.ID)
			return tmdb.EntryFromCredit(credit), true, nil
		}
	}

	return tmdb.Entry{}, false, nil
}

// matchByTitle is the fallback: a free-text multi-search taking the first
// returned result as-is.
func (r *Resolver) matchByTitle(ctx context.Context, d media.Descriptor) (tmdb.Entry, bool, error) {
	results, err := r.client.SearchMulti(ctx, d.Title)
	if err != nil {
		return tmdb.Entry{}, false, err
	}
	if len(results) == 0 {
		return tmdb.Entry{}, false, nil
	}
	return results[0], true, nil
}

func creditsForRole(credits *tmdb.Credits, role media.Role) []tmdb.Credit {
	if role == media.RoleCast {
		return credits.Cast
	}
	return credits.Crew
}

func creditMatches(credit tmdb.Credit, d media.Descriptor) bool {
	if credit.DisplayTitle() != d.Title {
		return false
	}
	// TV credits carry no release date; only reject when a date is present
	// and disagrees with the descriptor's year.
	if credit.ReleaseDate != nil && !strings.Contains(*credit.ReleaseDate, d.Year) {
		return false
	}
	// An acting credit does not make someone the director of the same film.
	if d.Role == media.RoleCrew && credit.Job != "Creator" && credit.Job != "Director" {
		return false
	}
	return true
}
