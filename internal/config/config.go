// Package config copies viper-backed settings into an explicit session
// configuration that gets passed down by value, so nothing below the
// command layer reads ambient state.
package config

import (
	"github.com/spf13/viper"
)

// Config is the session-scoped configuration. Provider keys live here and
// are handed to the client constructors once at session start.
type Config struct {
	// TMDBAPIKey is the API key for TheMovieDB.
	TMDBAPIKey string
	// OMDBAPIKey is the API key for OMDB (Open Movie Database).
	OMDBAPIKey string
	// CacheDBFile is the path of the rating cache SQLite database.
	CacheDBFile string
	// CacheTTLDays is the maximum age in days of an accurately matched
	// rating before it is re-resolved.
	CacheTTLDays int
}

// Load builds a session Config from the current viper state.
func Load() Config {
	return Config{
		TMDBAPIKey:   viper.GetString("TMDBAPIKey"),
		OMDBAPIKey:   viper.GetString("OMDBAPIKey"),
		CacheDBFile:  viper.GetString("cache.dbfile"),
		CacheTTLDays: viper.GetInt("cache.ttl_days"),
	}
}

// SetDefaults registers the configuration defaults with viper.
func SetDefaults() {
	viper.SetDefault("cache.dbfile", "./argus.db")
	viper.SetDefault("cache.ttl_days", 1)
}
