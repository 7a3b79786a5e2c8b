// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config represents the service configuration. Values can come from a JSON
// file, from HRDASH_* environment variables, or from CLI flags; later
// sources win, field by field.
type Config struct {
	// Server
	Port int `json:"port,omitempty" validate:"gte=0,lte=65535"`

	// Remote directory source
	DirectoryURL   string `json:"directory_url,omitempty" validate:"omitempty,url"`
	DirectoryLimit int    `json:"directory_limit,omitempty" validate:"gte=0"`

	// Bookmark persistence: "memory", a file path, sqlite:// or postgres://
	BookmarksDSN string `json:"bookmarks_dsn,omitempty"`

	// Enrichment seed; 0 picks a time-based seed
	Seed int64 `json:"seed,omitempty"`

	// Logging
	LogLevel    string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Development bool   `json:"development,omitempty"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Port:           8080,
		DirectoryURL:   "https://dummyjson.com",
		DirectoryLimit: 20,
		BookmarksDSN:   "bookmarks.json",
		LogLevel:       "info",
	}
}

// LoadFile loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv reads configuration from HRDASH_* environment variables. Unset
// variables leave the zero value, so the result is meant to be merged over
// defaults.
func FromEnv() Config {
	var cfg Config
	if v := os.Getenv("HRDASH_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	cfg.DirectoryURL = os.Getenv("HRDASH_DIRECTORY_URL")
	if v := os.Getenv("HRDASH_DIRECTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DirectoryLimit = n
		}
	}
	cfg.BookmarksDSN = os.Getenv("HRDASH_BOOKMARKS_DSN")
	if v := os.Getenv("HRDASH_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	cfg.LogLevel = os.Getenv("HRDASH_LOG_LEVEL")
	if v := os.Getenv("HRDASH_DEVELOPMENT"); v != "" {
		cfg.Development, _ = strconv.ParseBool(v)
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("config error: field %s failed %q validation", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("config validation: %w", err)
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Bool fields are not merged; flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DirectoryURL == "" {
		result.DirectoryURL = defaults.DirectoryURL
	}
	if result.DirectoryLimit == 0 {
		result.DirectoryLimit = defaults.DirectoryLimit
	}
	if result.BookmarksDSN == "" {
		result.BookmarksDSN = defaults.BookmarksDSN
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	return result
}
