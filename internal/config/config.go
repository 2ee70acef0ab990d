// ABOUTME: Configuration management for the tracker
// ABOUTME: JSON config under XDG_CONFIG_HOME with defaults for every setting

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/fictrack/internal/fetch"
	"github.com/harper/fictrack/internal/storage"
)

// Config stores fictrack configuration. Every field is optional; the
// getters apply defaults.
type Config struct {
	// BaseURL is the site root to scrape. Defaults to RoyalRoad.
	BaseURL string `json:"base_url,omitempty"`

	// DataDir holds fictrack.db. Supports ~ expansion.
	// Defaults to ~/.local/share/fictrack.
	DataDir string `json:"data_dir,omitempty"`

	// Pages is how many trending pages each scrape visits.
	Pages int `json:"pages,omitempty"`

	// Details controls whether scrapes visit each fiction page for the
	// full stats panel.
	Details bool `json:"details,omitempty"`

	// DetailLimit caps fiction page visits per run. 0 means no cap.
	DetailLimit int `json:"detail_limit,omitempty"`

	// RequestIntervalMS is the minimum spacing between HTTP requests.
	RequestIntervalMS int `json:"request_interval_ms,omitempty"`

	// RequestTimeoutMS is the per-request timeout.
	RequestTimeoutMS int `json:"request_timeout_ms,omitempty"`

	// MaxRetries is the total number of tries per URL.
	MaxRetries int `json:"max_retries,omitempty"`

	// UserAgent overrides the User-Agent header on scrape requests.
	UserAgent string `json:"user_agent,omitempty"`

	// Schedule is the cron expression used by the watch command.
	Schedule string `json:"schedule,omitempty"`

	// ListenAddr is the dashboard bind address for the serve command.
	ListenAddr string `json:"listen_addr,omitempty"`
}

const (
	defaultSchedule   = "0 */6 * * *" // every six hours
	defaultListenAddr = ":8080"
	defaultIntervalMS = 1500
)

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetSchedule returns the watch schedule, defaulting to every six hours.
func (c *Config) GetSchedule() string {
	if c.Schedule == "" {
		return defaultSchedule
	}
	return c.Schedule
}

// GetListenAddr returns the dashboard bind address.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return defaultListenAddr
	}
	return c.ListenAddr
}

// GetRequestInterval returns the spacing between HTTP requests.
func (c *Config) GetRequestInterval() time.Duration {
	if c.RequestIntervalMS <= 0 {
		return defaultIntervalMS * time.Millisecond
	}
	return time.Duration(c.RequestIntervalMS) * time.Millisecond
}

// FetchOptions returns the fetcher settings drawn from the config.
// Zero values fall through to the fetcher's own defaults.
func (c *Config) FetchOptions() fetch.Options {
	return fetch.Options{
		Timeout:   time.Duration(c.RequestTimeoutMS) * time.Millisecond,
		Interval:  c.GetRequestInterval(),
		Attempts:  c.MaxRetries,
		UserAgent: c.UserAgent,
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store under the configured data
// directory.
func (c *Config) OpenStorage() (storage.Store, error) {
	dbPath := filepath.Join(c.GetDataDir(), "fictrack.db")
	return storage.NewSQLiteStore(dbPath)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fictrack", "config.json")
}

// Load reads config from disk. A missing file yields the default
// config, written back so users have a file to edit.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			if saveErr := cfg.Save(); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk atomically.
func (c *Config) Save() error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// defaultDataDir returns the standard XDG data directory for fictrack.
func defaultDataDir() string {
	return filepath.Dir(storage.GetDefaultDBPath())
}
