// ABOUTME: YAML configuration for archive location, upstream sources, and HTTP policy
// ABOUTME: Missing config files fall back to built-in defaults; env overrides the issue path

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config stores secdigest configuration.
type Config struct {
	// ArchiveDir is the root of the year/date partition tree.
	ArchiveDir string `yaml:"archive_dir,omitempty"`
	// OutputDir receives index.html and archive.html.
	OutputDir  string   `yaml:"output_dir,omitempty"`
	RecentDays int      `yaml:"recent_days,omitempty"`
	IssuePath  string   `yaml:"issue_path,omitempty"`
	HTTP       HTTP     `yaml:"http,omitempty"`
	Patterns   Patterns `yaml:"patterns,omitempty"`
	Sources    []Source `yaml:"sources,omitempty"`
}

// HTTP configures the transport fetcher.
type HTTP struct {
	Timeout    time.Duration `yaml:"timeout,omitempty"`
	Retries    *int          `yaml:"retries,omitempty"`
	RetryDelay time.Duration `yaml:"retry_delay,omitempty"`
	UserAgent  string        `yaml:"user_agent,omitempty"`
	// RawBaseURL hosts the markdown digests.
	RawBaseURL string `yaml:"raw_base_url,omitempty"`
}

// Patterns overrides the default regular expressions. Empty means default.
type Patterns struct {
	Keywords      string `yaml:"keywords,omitempty"`
	FeedKeywords  string `yaml:"feed_keywords,omitempty"`
	Link          string `yaml:"link,omitempty"`
	TrustedURL    string `yaml:"trusted_url,omitempty"`
	TrustedPrefix string `yaml:"trusted_prefix,omitempty"`
}

// Source describes one upstream.
type Source struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	// Repo is "owner/name" for markdown digests.
	Repo   string `yaml:"repo,omitempty"`
	Branch string `yaml:"branch,omitempty"`
	// URL is the feed address for rss sources.
	URL            string `yaml:"url,omitempty"`
	FilterKeywords bool   `yaml:"filter_keywords,omitempty"`
	RequireTrusted bool   `yaml:"require_trusted,omitempty"`
	// FeedKeywords selects the wider feed keyword list.
	FeedKeywords bool              `yaml:"feed_keywords,omitempty"`
	Headers      map[string]string `yaml:"headers,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ArchiveDir: DefaultArchiveDir,
		OutputDir:  DefaultOutputDir,
		RecentDays: DefaultRecentDays,
		Sources:    DefaultSources(),
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "secdigest", "config.yaml")
}

// Load reads the config at path, or the default path when path is empty.
// A missing file yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	cfg.Sources = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Sources == nil {
		cfg.Sources = DefaultSources()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks source definitions and numeric settings.
func (c *Config) Validate() error {
	if c.RecentDays < 0 {
		return fmt.Errorf("recent_days must be non-negative, got %d", c.RecentDays)
	}
	if c.HTTP.Retries != nil && *c.HTTP.Retries < 0 {
		return fmt.Errorf("http.retries must be non-negative, got %d", *c.HTTP.Retries)
	}
	seen := make(map[string]bool)
	for i, s := range c.Sources {
		if s.Name == "" {
			return fmt.Errorf("sources[%d]: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("sources[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true

		switch s.Kind {
		case KindMarkdown:
			if !strings.Contains(s.Repo, "/") {
				return fmt.Errorf("source %q: repo must be owner/name, got %q", s.Name, s.Repo)
			}
		case KindRSS:
			if s.URL == "" {
				return fmt.Errorf("source %q: url is required", s.Name)
			}
		default:
			return fmt.Errorf("source %q: unknown kind %q", s.Name, s.Kind)
		}
	}
	return nil
}

// GetIssuePath resolves the issue file: env, then config, then the fixed default.
func (c *Config) GetIssuePath() string {
	if p := os.Getenv(IssuePathEnv); p != "" {
		return p
	}
	if c.IssuePath != "" {
		return ExpandPath(c.IssuePath)
	}
	return DefaultIssuePath
}

// GetArchiveDir returns the archive root with ~ expanded.
func (c *Config) GetArchiveDir() string {
	if c.ArchiveDir == "" {
		return DefaultArchiveDir
	}
	return ExpandPath(c.ArchiveDir)
}

// GetOutputDir returns the page directory with ~ expanded.
func (c *Config) GetOutputDir() string {
	if c.OutputDir == "" {
		return DefaultOutputDir
	}
	return ExpandPath(c.OutputDir)
}

// GetRecentDays returns the recency window length.
func (c *Config) GetRecentDays() int {
	if c.RecentDays == 0 {
		return DefaultRecentDays
	}
	return c.RecentDays
}

// GetTimeout returns the per-request HTTP timeout.
func (c *Config) GetTimeout() time.Duration {
	if c.HTTP.Timeout <= 0 {
		return DefaultHTTPTimeout
	}
	return c.HTTP.Timeout
}

// GetRetries returns how many times a failed request is retried.
func (c *Config) GetRetries() uint64 {
	if c.HTTP.Retries == nil {
		return DefaultRetries
	}
	return uint64(*c.HTTP.Retries)
}

// GetRetryDelay returns the fixed wait between attempts.
func (c *Config) GetRetryDelay() time.Duration {
	if c.HTTP.RetryDelay <= 0 {
		return DefaultRetryDelay
	}
	return c.HTTP.RetryDelay
}

// GetUserAgent returns the default User-Agent header.
func (c *Config) GetUserAgent() string {
	if c.HTTP.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.HTTP.UserAgent
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
