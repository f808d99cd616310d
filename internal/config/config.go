// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables (and an optional .env file)
// with sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Paths    PathsConfig
	Database DatabaseConfig
	Convert  ConvertConfig
	Scraper  ScraperConfig
	Logging  LoggingConfig
}

// PathsConfig holds the dataset input and output locations.
type PathsConfig struct {
	// DataDir holds the downloaded *.tsv.gz / *.tsv dataset files
	DataDir string `env:"IMDB_DATA_DIR" env-default:"./imdb_data" env-description:"directory holding the IMDb dataset files"`

	// OutDir receives the normalized output tables
	OutDir string `env:"IMDB_OUT_DIR" env-default:"." env-description:"directory the normalized tables are written to"`
}

// DatabaseConfig holds database connection settings for the load command.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Only required by load.
	URL string `env:"DATABASE_URL" env-description:"PostgreSQL connection string" masq:"secret"`

	// Truncate empties each table before it is loaded (default: false)
	Truncate bool `env:"LOAD_TRUNCATE" env-default:"false" env-description:"truncate tables before loading"`
}

// ConvertConfig holds conversion settings.
type ConvertConfig struct {
	// HadRoleDedupe is drop-all or keep-first (default: drop-all)
	HadRoleDedupe string `env:"HAD_ROLE_DEDUPE" env-default:"drop-all" env-description:"duplicate handling for Had_role: drop-all or keep-first"`
}

// ScraperConfig holds poster scraper settings.
type ScraperConfig struct {
	// BaseURL is the site the title pages are fetched from
	BaseURL string `env:"SCRAPER_BASE_URL" env-default:"https://www.imdb.com" env-description:"base URL of the title pages"`

	// UserAgent is sent with every request
	UserAgent string `env:"SCRAPER_USER_AGENT" env-default:"Mozilla/5.0 (compatible; imdbsql)" env-description:"User-Agent header for title page requests"`

	// Timeout bounds a single page fetch (default: 15s)
	Timeout time.Duration `env:"SCRAPER_TIMEOUT" env-default:"15s" env-description:"timeout for a single title page request"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" env-default:"info" env-description:"log level: debug, info, warn, error"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" env-default:"text" env-description:"log format: text or json"`

	// Output is stderr, stdout, or a file path (default: stderr)
	Output string `env:"LOG_OUTPUT" env-default:"stderr" env-description:"log output: stderr, stdout, or a file path"`
}
