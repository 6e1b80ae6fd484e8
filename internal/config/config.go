package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
)

// DefaultEndpoint is the demo feedback endpoint.
const DefaultEndpoint = "http://cache.usabilla.com/example/apidemo.json"

// ProjectFileName is the per-directory config file.
const ProjectFileName = ".feedlens.yaml"

// Config represents the complete feedlens configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Source  SourceConfig  `yaml:"source" json:"source"`
	Cache   CacheConfig   `yaml:"cache" json:"cache"`
	Display DisplayConfig `yaml:"display" json:"display"`
	Filter  FilterConfig  `yaml:"filter" json:"filter"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SourceConfig configures the feedback endpoint.
type SourceConfig struct {
	// Endpoint is the absolute http(s) URL serving the feedback JSON.
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	// Timeout is the per-request timeout, e.g. "1s".
	Timeout string `yaml:"timeout" json:"timeout"`
	// Retries is the number of extra attempts after a transient failure.
	Retries int `yaml:"retries" json:"retries"`
}

// CacheConfig configures the in-memory response cache.
type CacheConfig struct {
	// Size is the maximum number of detailed records kept. Zero disables caching.
	Size int    `yaml:"size" json:"size"`
	TTL  string `yaml:"ttl" json:"ttl"`
}

// DisplayConfig configures terminal rendering.
type DisplayConfig struct {
	CommentWidth  int  `yaml:"comment_width" json:"comment_width"`
	ViewportWidth int  `yaml:"viewport_width" json:"viewport_width"`
	NoColor       bool `yaml:"no_color" json:"no_color"`
	// Plain disables the interactive browser.
	Plain bool `yaml:"plain" json:"plain"`
}

// FilterConfig tunes list filtering.
type FilterConfig struct {
	// Workers bounds parallel filtering. Zero means one per CPU.
	Workers int `yaml:"workers" json:"workers"`
	// ParallelThreshold is the list size above which filtering runs in
	// parallel. Zero keeps filtering sequential.
	ParallelThreshold int `yaml:"parallel_threshold" json:"parallel_threshold"`
}

// LoggingConfig configures the log file. --debug enables it at debug level.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Level   string `yaml:"level" json:"level"`
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Source: SourceConfig{
			Endpoint: DefaultEndpoint,
			Timeout:  "1s",
			Retries:  2,
		},
		Cache: CacheConfig{
			Size: 256,
			TTL:  "5m",
		},
		Display: DisplayConfig{
			CommentWidth:  60,
			ViewportWidth: 48,
		},
		Filter: FilterConfig{
			Workers:           0,
			ParallelThreshold: 2000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// TimeoutDuration returns the parsed source timeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Source.Timeout)
	return d
}

// CacheTTL returns the parsed cache TTL.
func (c *Config) CacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}

// GetUserConfigPath returns the path to the user configuration file:
// $XDG_CONFIG_HOME/feedlens/config.yaml, or ~/.config/feedlens/config.yaml.
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "feedlens", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "feedlens", "config.yaml")
	}
	return filepath.Join(home, ".config", "feedlens", "config.yaml")
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// ProjectConfigPath returns the project config path inside dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectFileName)
}

// Load loads configuration for the directory dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config ($XDG_CONFIG_HOME/feedlens/config.yaml)
//  3. Project config (.feedlens.yaml in dir)
//  4. Environment variables (FEEDLENS_*)
//
// Command-line flags are applied by the caller on top of the result.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.mergeFile(GetUserConfigPath()); err != nil {
		return nil, err
	}
	if dir != "" {
		if err := cfg.mergeFile(ProjectConfigPath(dir)); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a single config file over the defaults, without env
// overrides or validation.
func LoadFile(path string) (*Config, error) {
	cfg := NewConfig()
	if !fileExists(path) {
		return nil, ferrors.New(ferrors.ErrCodeConfigNotFound,
			fmt.Sprintf("config file %s not found", path), nil)
	}
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile decodes path over c. Keys absent from the file keep their
// current values. A missing file is not an error.
func (c *Config) mergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return ferrors.ConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return ferrors.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err).
			WithDetail("path", path).
			WithSuggestion("Check the file against 'feedlens config init' output")
	}

	slog.Debug("config_loaded", slog.String("path", path))
	return nil
}

// applyEnvOverrides applies FEEDLENS_* environment variable overrides.
// Unparseable values are ignored with a warning.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FEEDLENS_ENDPOINT"); v != "" {
		c.Source.Endpoint = v
	}
	if v := os.Getenv("FEEDLENS_TIMEOUT"); v != "" {
		c.Source.Timeout = v
	}
	envInt("FEEDLENS_RETRIES", &c.Source.Retries)
	envInt("FEEDLENS_CACHE_SIZE", &c.Cache.Size)
	if v := os.Getenv("FEEDLENS_CACHE_TTL"); v != "" {
		c.Cache.TTL = v
	}
	envInt("FEEDLENS_COMMENT_WIDTH", &c.Display.CommentWidth)
	envInt("FEEDLENS_VIEWPORT_WIDTH", &c.Display.ViewportWidth)
	envBool("FEEDLENS_NO_COLOR", &c.Display.NoColor)
	envBool("FEEDLENS_PLAIN", &c.Display.Plain)
	envInt("FEEDLENS_WORKERS", &c.Filter.Workers)
	envInt("FEEDLENS_PARALLEL_THRESHOLD", &c.Filter.ParallelThreshold)
	envBool("FEEDLENS_LOG_ENABLED", &c.Logging.Enabled)
	if v := os.Getenv("FEEDLENS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func envInt(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		slog.Warn("config_env_ignored", slog.String("name", name), slog.String("value", v))
		return
	}
	*dst = n
}

func envBool(name string, dst *bool) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		slog.Warn("config_env_ignored", slog.String("name", name), slog.String("value", v))
		return
	}
	*dst = b
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Source.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("source.endpoint must be an absolute http(s) URL, got %q", c.Source.Endpoint)
	}

	if d, err := time.ParseDuration(c.Source.Timeout); err != nil || d <= 0 {
		return invalid("source.timeout must be a positive duration, got %q", c.Source.Timeout)
	}
	if c.Source.Retries < 0 {
		return invalid("source.retries must be non-negative, got %d", c.Source.Retries)
	}

	if c.Cache.Size < 0 {
		return invalid("cache.size must be non-negative, got %d", c.Cache.Size)
	}
	if d, err := time.ParseDuration(c.Cache.TTL); err != nil || d < 0 {
		return invalid("cache.ttl must be a duration, got %q", c.Cache.TTL)
	}

	if c.Display.CommentWidth <= 0 {
		return invalid("display.comment_width must be positive, got %d", c.Display.CommentWidth)
	}
	if c.Display.ViewportWidth <= 0 {
		return invalid("display.viewport_width must be positive, got %d", c.Display.ViewportWidth)
	}

	if c.Filter.Workers < 0 {
		return invalid("filter.workers must be non-negative, got %d", c.Filter.Workers)
	}
	if c.Filter.ParallelThreshold < 0 {
		return invalid("filter.parallel_threshold must be non-negative, got %d", c.Filter.ParallelThreshold)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return invalid("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}

	return nil
}

func invalid(format string, args ...any) error {
	return ferrors.ConfigError(fmt.Sprintf(format, args...), nil).
		WithSuggestion("Run 'feedlens config show' to see where the value comes from")
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return ferrors.New(ferrors.ErrCodeConfigWrite, "failed to marshal config", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return ferrors.New(ferrors.ErrCodeConfigWrite, fmt.Sprintf("failed to write config file %s", path), err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
