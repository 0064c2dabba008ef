package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/lepinkainen/argus/internal/config"
	"github.com/lepinkainen/argus/internal/media"
	"github.com/lepinkainen/argus/internal/omdb"
	"github.com/lepinkainen/argus/internal/rating"
	"github.com/lepinkainen/argus/internal/session"
)

// ResolveCmd resolves a single title against the providers and prints the
// fused ratings, bypassing cache freshness.
type ResolveCmd struct {
	Title  string `arg:"" help:"Displayed title to resolve"`
	Year   string `short:"y" help:"Release year, if known"`
	Person string `short:"p" help:"A credited person (director, creator or cast member)"`
	Role   string `help:"How the person is credited: cast or crew" enum:"cast,crew" default:"crew"`
}

func (r *ResolveCmd) Run() error {
	ctx := context.Background()

	sess, err := session.New(ctx, config.Load())
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	if !sess.ResolveEnabled() {
		return session.ErrKeysInvalid
	}

	descriptor := media.Descriptor{
		Title:  r.Title,
		Year:   r.Year,
		Person: r.Person,
		Role:   media.Role(r.Role),
	}

	match, err := sess.Resolver.Resolve(ctx, descriptor)
	if err != nil {
		return err
	}
	if match == nil {
		fmt.Printf("No catalog entry found for %q\n", r.Title)
		return nil
	}

	var cross *omdb.Response
	if match.IMDBID != "" {
		cross, err = sess.OMDB.FetchByIMDBID(ctx, match.IMDBID)
		if err != nil {
			return err
		}
	}

	summary := rating.Fuse(match.Entry, match.Accurate, match.IMDBID, cross)
	if summary.Empty() {
		fmt.Printf("No rating data available for %q\n", r.Title)
		return nil
	}

	if err := sess.Cache.Upsert(r.Title, summary); err != nil {
		return err
	}

	printSummary(r.Title, summary)
	return nil
}

func printSummary(title string, s rating.Summary) {
	verified := "person-credit match"
	if !s.Accurate {
		verified = "title search only, unverified"
	}
	fmt.Fprintf(os.Stdout, "%s (%s, %s)\n", title, s.MediaType, verified)

	for _, src := range rating.Order {
		score, ok := s.Sources[src]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %s: %s", src.Label(), score.Value)
		if score.Votes != "" {
			line += fmt.Sprintf(" (%s votes)", score.Votes)
		}
		if link := src.Link(score, s.MediaType, title); link != "" {
			line += "  " + link
		}
		fmt.Fprintln(os.Stdout, line)
	}
}
