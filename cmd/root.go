// Package cmd implements the argus command line interface.
package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/argus/internal/config"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

// CLI represents the complete command structure for the argus application.
type CLI struct {
	// Global flags
	CacheDBFile  string `help:"Path to rating cache SQLite database file" default:"./argus.db"`
	CacheTTLDays int    `help:"Days before an accurately matched rating goes stale" default:"1"`
	Debug        bool   `help:"Enable debug logging"`

	Watch   WatchCmd   `cmd:"" help:"Watch a feed of view changes and annotate items with ratings"`
	Resolve ResolveCmd `cmd:"" help:"Resolve one title and print its ratings"`
	Cache   CacheCmd   `cmd:"" help:"Inspect or clear the rating cache"`
}

// Execute runs the Kong-based CLI.
func Execute() {
	// Create CLI instance
	var cli CLI

	// Parse command line with Kong
	ctx := kong.Parse(&cli,
		kong.Name("argus"),
		kong.Description("Annotates a stream of media view items with cross-referenced third-party ratings."),
		kong.UsageOnError(),
	)

	initLogging(cli.Debug)
	initConfig()
	updateGlobalConfig(&cli)

	// Execute the selected command
	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("TMDBAPIKey", "TMDB_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}
	if err := viper.BindEnv("OMDBAPIKey", "OMDB_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}
}

func updateGlobalConfig(cli *CLI) {
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl_days", cli.CacheTTLDays)
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
