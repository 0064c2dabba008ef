// Package rating defines the fused rating summary cached per media title
// and the closed set of rating sources it can carry.
package rating

import "time"

// Score is one source's contribution to a summary. Votes and RefID are
// omitted for sources that do not report them.
type Score struct {
	Value string `json:"value"`
	Votes string `json:"votes,omitempty"`
	RefID string `json:"ref_id,omitempty"`
}

// Summary is the unit of caching and rendering: everything known about one
// media title's ratings. Sources only holds keys for providers that
// returned usable data, and is never empty for a cached summary.
type Summary struct {
	MediaType string           `json:"media_type"`
	Accurate  bool             `json:"accurate_result"`
	Updated   time.Time        `json:"date_updated"`
	Sources   map[Source]Score `json:"sources"`
}

// Empty reports whether the summary carries no rating data at all.
// Empty summaries must not be cached.
func (s Summary) Empty() bool {
	return len(s.Sources) == 0
}

// Age returns how long ago the summary was fused.
func (s Summary) Age(now time.Time) time.Duration {
	return now.Sub(s.Updated)
}
