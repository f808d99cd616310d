package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DotEnvFile is read before the environment, if it exists.
const DotEnvFile = ".env"

// Load reads configuration from environment variables.
// Variables from DotEnvFile are applied first without overriding ones
// already set. Defaults fill unset values and the result is validated.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config load: %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Describe returns the list of supported environment variables.
func Describe() (string, error) {
	header := "Environment variables:"
	return cleanenv.GetDescription(&Config{}, &header)
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Paths validation
	if c.Paths.DataDir == "" {
		errs = append(errs, "IMDB_DATA_DIR must not be empty")
	}
	if c.Paths.OutDir == "" {
		errs = append(errs, "IMDB_OUT_DIR must not be empty")
	}

	// Database validation; the URL itself is only required by load
	if c.Database.URL != "" {
		if _, err := url.Parse(c.Database.URL); err != nil {
			errs = append(errs, "DATABASE_URL is not a valid URL")
		}
	}

	// Convert validation
	switch c.Convert.HadRoleDedupe {
	case "drop-all", "keep-first":
	default:
		errs = append(errs, fmt.Sprintf("HAD_ROLE_DEDUPE (%q) must be one of: drop-all, keep-first", c.Convert.HadRoleDedupe))
	}

	// Scraper validation
	if u, err := url.Parse(c.Scraper.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("SCRAPER_BASE_URL (%q) must be an absolute URL", c.Scraper.BaseURL))
	}
	if c.Scraper.Timeout <= 0 {
		errs = append(errs, "SCRAPER_TIMEOUT must be positive")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Sensitive values like database URLs are masked.
func (c *Config) String() string {
	dbURL := ""
	if c.Database.URL != "" {
		dbURL = "[MASKED]"
	}

	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Paths: {DataDir: %q, OutDir: %q}, ", c.Paths.DataDir, c.Paths.OutDir))
	b.WriteString(fmt.Sprintf("Database: {URL: %s, Truncate: %v}, ", dbURL, c.Database.Truncate))
	b.WriteString(fmt.Sprintf("Convert: {HadRoleDedupe: %q}, ", c.Convert.HadRoleDedupe))
	b.WriteString(fmt.Sprintf("Scraper: {BaseURL: %q, Timeout: %s}, ", c.Scraper.BaseURL, c.Scraper.Timeout))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q, Output: %q}",
		c.Logging.Level, c.Logging.Format, c.Logging.Output))
	b.WriteString("}")
	return b.String()
}
