// Package config loads defaults for the teletext command from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bodgit/teletext"
	"github.com/bodgit/teletext/acquire"
	"github.com/bodgit/teletext/palette"
	"github.com/bodgit/teletext/render"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidSize              = errors.New("page.size must be at least 1")
	ErrUnknownColour            = errors.New("unknown colour")
	ErrInvalidFormat            = errors.New("output.format must be 'png' or 'gif'")
	ErrMissingOutputDir         = errors.New("output.dir is required")
	ErrMissingStagingDir        = errors.New("output.staging is required")
	ErrInvalidMaxAttempts       = errors.New("fetch.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("fetch.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("fetch.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("fetch.timeout_sec must be at least 1")
	ErrInvalidWorkers           = errors.New("fetch.workers must be at least 1")
)

// Config is the complete configuration.
type Config struct {
	Page   PageConfig   `yaml:"page"`
	Output OutputConfig `yaml:"output"`
	Fetch  FetchConfig  `yaml:"fetch"`
	News   NewsConfig   `yaml:"news"`
}

// PageConfig controls how pages are drawn.
type PageConfig struct {
	Size   int          `yaml:"size"`
	Legacy bool         `yaml:"legacy"`
	Font   string       `yaml:"font"`
	Top    render.Style `yaml:"top"`
	Bottom render.Style `yaml:"bottom"`
}

// OutputConfig controls where pages are written.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Format  string `yaml:"format"`
	Staging string `yaml:"staging"`
	Archive string `yaml:"archive"`
}

// FetchConfig controls downloading photos.
type FetchConfig struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
	Workers           int     `yaml:"workers"`
}

// NewsConfig controls the NewsAPI query.
type NewsConfig struct {
	Query  string `yaml:"query"`
	Number int    `yaml:"number"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Page: PageConfig{
			Size:   teletext.DefaultSize,
			Top:    render.DefaultStyle,
			Bottom: render.DefaultStyle,
		},
		Output: OutputConfig{
			Dir:     "./images",
			Format:  string(teletext.PNG),
			Staging: "./buffer",
		},
		Fetch: FetchConfig{
			MaxAttempts:       acquire.DefaultRetryPolicy.MaxAttempts,
			InitialDelayMs:    int(acquire.DefaultRetryPolicy.InitialDelay / time.Millisecond),
			BackoffMultiplier: acquire.DefaultRetryPolicy.Multiplier,
			TimeoutSec:        int(acquire.DefaultTimeout / time.Second),
			Workers:           teletext.DefaultWorkers,
		},
		News: NewsConfig{
			Query:  "Climate Change",
			Number: 1,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func validStyle(name string, s render.Style) error {
	if _, ok := palette.Teletext.Lookup(s.Background); !ok {
		return fmt.Errorf("%w: page.%s.background %q", ErrUnknownColour, name, s.Background)
	}
	if _, ok := palette.Teletext.Lookup(s.Text); !ok && s.Text != render.Random {
		return fmt.Errorf("%w: page.%s.text %q", ErrUnknownColour, name, s.Text)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Page.Size < 1 {
		return ErrInvalidSize
	}

	if err := validStyle("top", c.Page.Top); err != nil {
		return err
	}

	if err := validStyle("bottom", c.Page.Bottom); err != nil {
		return err
	}

	if _, err := teletext.ParseFormat(c.Output.Format); err != nil {
		return ErrInvalidFormat
	}

	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if c.Output.Staging == "" {
		return ErrMissingStagingDir
	}

	if c.Fetch.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Fetch.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Fetch.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Fetch.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Fetch.Workers < 1 {
		return ErrInvalidWorkers
	}

	return nil
}

// Options returns the page rendering options.
func (c *Config) Options() teletext.Options {
	return teletext.Options{
		Size:   c.Page.Size,
		Top:    c.Page.Top,
		Bottom: c.Page.Bottom,
		Legacy: c.Page.Legacy,
	}
}

// RetryPolicy returns the download retry policy.
func (c *Config) RetryPolicy() acquire.RetryPolicy {
	return acquire.RetryPolicy{
		MaxAttempts:  c.Fetch.MaxAttempts,
		InitialDelay: time.Duration(c.Fetch.InitialDelayMs) * time.Millisecond,
		Multiplier:   c.Fetch.BackoffMultiplier,
	}
}

// Timeout returns the timeout for a single download.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSec) * time.Second
}
