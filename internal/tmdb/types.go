package tmdb

// Person is a single result from a person search. Names are not unique, so
// a search can return several people sharing one name.
type Person struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Credit is one entry in a person's combined credit list. Movie credits
// carry Title and ReleaseDate; TV credits carry Name and no release date.
// ReleaseDate is a pointer so an absent field can be told apart from an
// empty one.
type Credit struct {
	ID          int     `json:"id"`
	MediaType   string  `json:"media_type"`
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	ReleaseDate *string `json:"release_date"`
	Job         string  `json:"job"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// DisplayTitle returns the title string under which the credit is listed.
func (c Credit) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// Credits holds a person's combined cast and crew credit lists.
type Credits struct {
	Cast []Credit `json:"cast"`
	Crew []Credit `json:"crew"`
}

// Entry is a candidate catalog match for a media item, either picked out of
// a credit list or taken from a title search.
type Entry struct {
	ID          int
	MediaType   string // "movie" or "tv"
	VoteAverage float64
	VoteCount   int
}

// EntryFromCredit converts a matched credit into a catalog entry.
func EntryFromCredit(c Credit) Entry {
	return Entry{
		ID:          c.ID,
		MediaType:   c.MediaType,
		VoteAverage: c.VoteAverage,
		VoteCount:   c.VoteCount,
	}
}
