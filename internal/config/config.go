// Package config provides configuration management for the application.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/amaumene/gomovies/internal/constants"
	apperrors "github.com/amaumene/gomovies/internal/errors"
	"github.com/amaumene/gomovies/pkg/logger"
	"github.com/amaumene/gomovies/pkg/security"
)

const (
	// Default configuration file name
	defaultConfigFile = "config.json"
)

// Store drivers
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config holds the application configuration.
// It supports loading from a JSON, YAML or TOML file and environment variables.
type Config struct {
	// Movie API
	TMDBToken    string `json:"TMDB_API_TOKEN" yaml:"TMDB_API_TOKEN" toml:"TMDB_API_TOKEN"`
	TMDBBaseURL  string `json:"TMDB_BASE_URL" yaml:"TMDB_BASE_URL" toml:"TMDB_BASE_URL"`
	ImageBaseURL string `json:"IMAGE_BASE_URL" yaml:"IMAGE_BASE_URL" toml:"IMAGE_BASE_URL"`

	RequestTimeoutSeconds int `json:"REQUEST_TIMEOUT_SECONDS" yaml:"REQUEST_TIMEOUT_SECONDS" toml:"REQUEST_TIMEOUT_SECONDS"`

	// Trending store
	StoreDriver   string `json:"STORE_DRIVER" yaml:"STORE_DRIVER" toml:"STORE_DRIVER"`
	DatabasePath  string `json:"DATABASE_PATH" yaml:"DATABASE_PATH" toml:"DATABASE_PATH"`
	TrendingLimit int    `json:"TRENDING_LIMIT" yaml:"TRENDING_LIMIT" toml:"TRENDING_LIMIT"`
	// Records untouched for this many days are pruned while serving, 0 keeps them forever
	TrendingRetentionDays int `json:"TRENDING_RETENTION_DAYS" yaml:"TRENDING_RETENTION_DAYS" toml:"TRENDING_RETENTION_DAYS"`

	// Search behaviour
	DebounceMs int `json:"DEBOUNCE_MS" yaml:"DEBOUNCE_MS" toml:"DEBOUNCE_MS"`

	// Response cache, CacheSize 0 disables it
	CacheSize       int `json:"CACHE_SIZE" yaml:"CACHE_SIZE" toml:"CACHE_SIZE"`
	CacheTTLMinutes int `json:"CACHE_TTL_MINUTES" yaml:"CACHE_TTL_MINUTES" toml:"CACHE_TTL_MINUTES"`

	// Server and logging
	Port     string `json:"PORT" yaml:"PORT" toml:"PORT"`
	LogLevel string `json:"LOG_LEVEL" yaml:"LOG_LEVEL" toml:"LOG_LEVEL"`
	LogFile  string `json:"LOG_FILE" yaml:"LOG_FILE" toml:"LOG_FILE"`
}

// Default returns a configuration holding every default value and no token.
func Default() *Config {
	return &Config{
		TMDBBaseURL:           constants.DefaultTMDBBaseURL,
		ImageBaseURL:          constants.DefaultImageBaseURL,
		RequestTimeoutSeconds: int(constants.RequestTimeout / time.Second),
		StoreDriver:           constants.DefaultStoreDriver,
		DatabasePath:          constants.DefaultDBPath,
		TrendingLimit:         constants.TrendingLimit,
		DebounceMs:            int(constants.DebounceDelay / time.Millisecond),
		CacheSize:             constants.DefaultCacheSize,
		CacheTTLMinutes:       constants.DefaultCacheTTL,
		Port:                  constants.DefaultPort,
		LogLevel:              constants.DefaultLogLevel,
		LogFile:               constants.DefaultLogFile,
	}
}

// Load reads configuration from an optional file and environment variables.
// Environment variables take precedence over file values. An empty path
// falls back to CONFIG_FILE, then config.json; a missing implicit file is
// not an error.
// Returns an error if the configuration is invalid.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
		explicit = os.Getenv("CONFIG_FILE") != ""
	}

	if err := cfg.loadFromFile(path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, apperrors.NewConfigurationError("failed to load config file "+path, err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile decodes the file according to its extension.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, c)
	case ".toml":
		return toml.Unmarshal(data, c)
	case ".json", "":
		return json.Unmarshal(data, c)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(filename))
	}
}

// loadFromEnv loads configuration from environment variables.
func (c *Config) loadFromEnv() error {
	if token := os.Getenv("TMDB_API_TOKEN"); token != "" {
		c.TMDBToken = token
	} else if key := os.Getenv("TMDB_API_KEY"); key != "" {
		c.TMDBToken = key
	}

	setString(&c.TMDBBaseURL, "TMDB_BASE_URL")
	setString(&c.ImageBaseURL, "IMAGE_BASE_URL")
	setString(&c.StoreDriver, "STORE_DRIVER")
	setString(&c.DatabasePath, "DATABASE_PATH")
	setString(&c.Port, "PORT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFile, "LOG_FILE")

	ints := []struct {
		key string
		dst *int
	}{
		{"REQUEST_TIMEOUT_SECONDS", &c.RequestTimeoutSeconds},
		{"TRENDING_LIMIT", &c.TrendingLimit},
		{"TRENDING_RETENTION_DAYS", &c.TrendingRetentionDays},
		{"DEBOUNCE_MS", &c.DebounceMs},
		{"CACHE_SIZE", &c.CacheSize},
		{"CACHE_TTL_MINUTES", &c.CacheTTLMinutes},
	}
	for _, e := range ints {
		if err := setInt(e.dst, e.key); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks if the configuration is valid.
// Sets default values for missing optional fields.
func (c *Config) Validate() error {
	validator := security.NewTokenValidator()
	c.TMDBToken = validator.SanitizeToken(c.TMDBToken)
	if c.TMDBToken == "" {
		return apperrors.NewTokenMissingError("TMDB (set TMDB_API_TOKEN)")
	}
	if !validator.ValidateToken(c.TMDBToken) {
		return apperrors.NewConfigurationError(
			fmt.Sprintf("malformed TMDB token %s", validator.MaskToken(c.TMDBToken)), nil)
	}

	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case "":
		c.StoreDriver = constants.DefaultStoreDriver
	case DriverBolt, DriverSQLite, DriverMemory:
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown store driver %q", c.StoreDriver), nil)
	}

	if !logger.ValidLevel(c.LogLevel) {
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown log level %q", c.LogLevel), nil)
	}

	if c.TMDBBaseURL == "" {
		c.TMDBBaseURL = constants.DefaultTMDBBaseURL
	}
	c.TMDBBaseURL = strings.TrimRight(c.TMDBBaseURL, "/")
	if c.ImageBaseURL == "" {
		c.ImageBaseURL = constants.DefaultImageBaseURL
	}
	if c.DatabasePath == "" {
		c.DatabasePath = constants.DefaultDBPath
	}
	if c.TrendingLimit <= 0 {
		c.TrendingLimit = constants.TrendingLimit
	}
	if c.DebounceMs <= 0 {
		c.DebounceMs = int(constants.DebounceDelay / time.Millisecond)
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = int(constants.RequestTimeout / time.Second)
	}
	if c.TrendingRetentionDays < 0 {
		c.TrendingRetentionDays = 0
	}
	if c.CacheSize < 0 {
		c.CacheSize = 0
	}
	if c.CacheTTLMinutes <= 0 {
		c.CacheTTLMinutes = constants.DefaultCacheTTL
	}
	if c.Port == "" {
		c.Port = constants.DefaultPort
	}

	return nil
}

// DebounceDelay returns the quiet period applied to typed queries.
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// RequestTimeout returns the per-request timeout of the movie client.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the lifetime of a cached movie list.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// TrendingRetention returns how long an idle trending record is kept.
// Zero disables pruning.
func (c *Config) TrendingRetention() time.Duration {
	return time.Duration(c.TrendingRetentionDays) * 24 * time.Hour
}

// MaskedToken returns the token in a form safe to log.
func (c *Config) MaskedToken() string {
	return security.NewTokenValidator().MaskToken(c.TMDBToken)
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return apperrors.NewConfigurationError(fmt.Sprintf("%s must be an integer", key), err)
	}
	*dst = n
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
