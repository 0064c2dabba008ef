// Package media defines the descriptor extracted from an on-page media item.
package media

// Role describes how the person of interest is credited on a title.
type Role string

const (
	// RoleCast marks the person as a credited cast member.
	RoleCast Role = "cast"
	// RoleCrew marks the person as a credited crew member (director/creator).
	RoleCrew Role = "crew"
)

// Descriptor carries the identifying fields available for one media item:
// its displayed title plus, when the page exposes them, a release year and
// one credited person. It is the sole input to identity resolution and is
// scoped to a single resolution attempt.
type Descriptor struct {
	Title  string `json:"title"`
	Year   string `json:"year,omitempty"`
	Person string `json:"person,omitempty"`
	Role   Role   `json:"role,omitempty"`
}

// HasPerson reports whether the descriptor carries a person to anchor
// disambiguation on.
func (d Descriptor) HasPerson() bool {
	return d.Person != ""
}
