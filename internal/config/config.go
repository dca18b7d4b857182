// Package config loads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joeshaw/envdecode"
)

// ErrMissingToken is returned by Load when GITBOOK_API_TOKEN is unset.
var ErrMissingToken = errors.New("GITBOOK_API_TOKEN is required; create a token at https://app.gitbook.com/account/developer")

// Config holds every setting read from the environment.
type Config struct {
	// APIToken authenticates every GitBook request. ENV: GITBOOK_API_TOKEN
	APIToken string `env:"GITBOOK_API_TOKEN"`
	// BaseURL of the GitBook REST API. ENV: GITBOOK_API_BASE_URL
	BaseURL string `env:"GITBOOK_API_BASE_URL,default=https://api.gitbook.com/v1"`
	// DefaultSpaceID is advertised to clients but never substituted into calls.
	DefaultSpaceID string `env:"GITBOOK_DEFAULT_SPACE_ID"`
	// DefaultOrgID is advertised to clients but never substituted into calls.
	DefaultOrgID string `env:"GITBOOK_DEFAULT_ORG_ID"`
	// LogLevel is one of debug, info, warn or error. ENV: GITBOOK_MCP_LOG_LEVEL
	LogLevel string `env:"GITBOOK_MCP_LOG_LEVEL,default=info"`

	level slog.Level
}

// Load decodes the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.APIToken = strings.TrimSpace(c.APIToken)
	if c.APIToken == "" {
		return ErrMissingToken
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.gitbook.com/v1"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if err := c.level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("config: GITBOOK_MCP_LOG_LEVEL: %w", err)
	}
	return nil
}

// Level is the parsed LogLevel.
func (c *Config) Level() slog.Level { return c.level }

// Instructions describes the configured defaults for clients, or returns ""
// when none are set.
func (c *Config) Instructions() string {
	var lines []string
	if c.DefaultOrgID != "" {
		lines = append(lines, "Default GitBook organization ID: "+c.DefaultOrgID)
	}
	if c.DefaultSpaceID != "" {
		lines = append(lines, "Default GitBook space ID: "+c.DefaultSpaceID)
	}
	return strings.Join(lines, "\n")
}
