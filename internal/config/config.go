// Package config loads the process-wide configuration snapshot from the
// environment. The snapshot is immutable after Load; every component
// receives it by value through its constructor.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix for all settings except
// EDINET_API_KEY, which keeps its unprefixed name.
const Prefix = "FAST10K"

// Config holds every recognised setting with its validated default.
type Config struct {
	// DatabasePath is the local catalog location.
	DatabasePath string `envconfig:"DB_PATH" default:"./fast10k.db"`

	// DownloadDir is the root of the materialised payload tree.
	DownloadDir string `envconfig:"DOWNLOAD_DIR" default:"./downloads"`

	// EdinetAPIKey is the EDINET credential. Unset disables the
	// EDINET index and download paths; static search still works.
	EdinetAPIKey string `ignored:"true"`

	// HTTPTimeoutSeconds is the per-request deadline.
	HTTPTimeoutSeconds int `envconfig:"HTTP_TIMEOUT_SECONDS" default:"30"`

	// UserAgent identifies the caller on every request. The SEC
	// requires a meaningful value; an empty one fails validation.
	UserAgent string `envconfig:"USER_AGENT" default:"fast10k/0.1"`

	// EdinetAPIDelayMs is the minimum spacing between EDINET metadata
	// calls.
	EdinetAPIDelayMs int `envconfig:"EDINET_API_DELAY_MS" default:"100"`

	// EdinetDownloadDelayMs is the minimum spacing between EDINET
	// payload fetches.
	EdinetDownloadDelayMs int `envconfig:"EDINET_DOWNLOAD_DELAY_MS" default:"200"`

	// EdgarAPIDelayMs is the minimum spacing between EDGAR calls.
	EdgarAPIDelayMs int `envconfig:"EDGAR_API_DELAY_MS" default:"100"`

	// IndexStaleDays is the staleness threshold of the freshness
	// protocol: a search triggers an index update when the newest
	// indexed filing is older than this many calendar days.
	IndexStaleDays int `envconfig:"INDEX_STALE_DAYS" default:"2"`
}

// Load reads the configuration from the environment, consulting an
// optional .env file first. It fails loudly on unparsable values.
func Load() (*Config, error) {
	// Missing .env is fine; a present but unreadable one is not.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	cfg.EdinetAPIKey = os.Getenv("EDINET_API_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the snapshot for configuration errors. It is fatal at
// startup: a process with an invalid configuration must not run.
func (c *Config) Validate() error {
	if c.UserAgent == "" {
		return fmt.Errorf("user agent must not be empty: the SEC requires every caller to identify itself")
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("http timeout must be positive, got %d", c.HTTPTimeoutSeconds)
	}
	if c.IndexStaleDays < 1 {
		return fmt.Errorf("index staleness threshold must be at least 1 day, got %d", c.IndexStaleDays)
	}

	if parent := filepath.Dir(c.DatabasePath); parent != "." {
		if _, err := os.Stat(parent); err != nil {
			return fmt.Errorf("database parent directory %s: %w", parent, err)
		}
	}
	if err := os.MkdirAll(c.DownloadDir, 0o755); err != nil {
		return fmt.Errorf("cannot create download directory %s: %w", c.DownloadDir, err)
	}
	return nil
}

// HTTPTimeout returns the per-request deadline as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// EdinetAPIDelay returns the EDINET metadata call spacing.
func (c *Config) EdinetAPIDelay() time.Duration {
	return time.Duration(c.EdinetAPIDelayMs) * time.Millisecond
}

// EdinetDownloadDelay returns the EDINET payload fetch spacing.
func (c *Config) EdinetDownloadDelay() time.Duration {
	return time.Duration(c.EdinetDownloadDelayMs) * time.Millisecond
}

// EdgarAPIDelay returns the EDGAR call spacing.
func (c *Config) EdgarAPIDelay() time.Duration {
	return time.Duration(c.EdgarAPIDelayMs) * time.Millisecond
}
