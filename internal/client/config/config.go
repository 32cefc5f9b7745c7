package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

const (
	DefaultConfigFile  = "config.json"
	DefaultEnvFile     = ".env"
	DefaultWindowTitle = "Canvas Content Uploader"
	DefaultLogLevel    = "warn"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid config")
)

// Config holds runtime settings for the uploader.
//
// Fields:
//   - CanvasURL: base address of the Canvas instance, e.g. https://school.instructure.com.
//   - WindowTitle: banner and prompt prefix of the REPL.
//   - IconPath: optional application icon; ignored with a warning when missing.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	CanvasURL   string
	WindowTitle string
	IconPath    string
	LogLevel    string

	// Warnings collects non-fatal problems found while loading.
	Warnings []string
}

// LoadDefaults populates c with defaults. There is no default Canvas URL.
func (c *Config) LoadDefaults() {
	c.WindowTitle = DefaultWindowTitle
	c.LogLevel = DefaultLogLevel
}

// LoadConfig builds a Config from defaults, the JSON file (required), the
// environment with an optional .env file, and finally the command line.
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, DefaultEnvFile); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and resets optional ones that cannot be
// used, recording a warning for each.
func (c *Config) Validate() error {
	c.CanvasURL = strings.TrimRight(strings.TrimSpace(c.CanvasURL), "/")
	if c.CanvasURL == "" {
		return fmt.Errorf("%w: canvas_url is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.CanvasURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: canvas_url %q is not an absolute http(s) address", ErrInvalidConfig, c.CanvasURL)
	}

	if strings.TrimSpace(c.WindowTitle) == "" {
		c.WindowTitle = DefaultWindowTitle
	}

	if c.IconPath != "" {
		if _, err := os.Stat(c.IconPath); err != nil {
			c.Warnings = append(c.Warnings, fmt.Sprintf("icon %q not found, using default", c.IconPath))
			c.IconPath = ""
		}
	}
	return nil
}
