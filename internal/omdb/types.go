package omdb

// NotAvailable is the sentinel OMDB returns for fields it has no data for.
const NotAvailable = "N/A"

// Response represents the fields argus reads from an OMDB lookup.
// Rating fields hold the NotAvailable sentinel rather than being omitted.
type Response struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Type       string `json:"Type"`
	ImdbRating string `json:"imdbRating"`
	ImdbVotes  string `json:"imdbVotes"`
	ImdbID     string `json:"imdbID"`
	Metascore  string `json:"Metascore"`
	Response   string `json:"Response"` // "True" or "False"
	Error      string `json:"Error"`    // Present if Response is "False"
}

// HasImdbRating reports whether the response carries a usable IMDb rating.
func (r *Response) HasImdbRating() bool {
	return r.ImdbRating != "" && r.ImdbRating != NotAvailable
}

// HasMetascore reports whether the response carries a usable Metacritic score.
func (r *Response) HasMetascore() bool {
	return r.Metascore != "" && r.Metascore != NotAvailable
}
