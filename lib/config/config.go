// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"slices"
	"time"

	"github.com/bureau-foundation/chorus/lib/secret"
	"github.com/bureau-foundation/chorus/lib/version"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "CHORUS_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local work against a test application.
	Development Environment = "development"
	// Production is for the deployed bot.
	Production Environment = "production"
)

// Config is the master configuration for chorus tools.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// API configures the REST client.
	API APIConfig `yaml:"api"`

	// Components configures component parsing and validation.
	Components ComponentsConfig `yaml:"components"`

	// Log configures the slog handler.
	Log LogConfig `yaml:"log"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per
// environment. Booleans are pointers so an override can turn a flag
// off.
type ConfigOverrides struct {
	API        *APIConfig                `yaml:"api,omitempty"`
	Components *ComponentsConfigOverride `yaml:"components,omitempty"`
	Log        *LogConfig                `yaml:"log,omitempty"`
}

// APIConfig configures the REST client.
type APIConfig struct {
	// BaseURL is the versioned API root.
	// Default: https://discord.com/api/v10
	BaseURL string `yaml:"base_url"`

	// TokenFile holds the bot token. The token is never stored in the
	// config file itself.
	TokenFile string `yaml:"token_file"`

	// UserAgent is sent on every request.
	UserAgent string `yaml:"user_agent"`

	// Timeout bounds each HTTP request, as a Go duration string.
	// Default: 30s
	Timeout string `yaml:"timeout"`
}

// ComponentsConfig configures component handling.
type ComponentsConfig struct {
	// Strict makes unknown component kinds an error instead of being
	// dropped.
	Strict bool `yaml:"strict"`

	// ValidateSchema checks outgoing component payloads against the
	// embedded JSON Schema before sending.
	ValidateSchema bool `yaml:"validate_schema"`
}

// ComponentsConfigOverride is ComponentsConfig with optional fields.
type ComponentsConfigOverride struct {
	Strict         *bool `yaml:"strict,omitempty"`
	ValidateSchema *bool `yaml:"validate_schema,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is json or text.
	Format string `yaml:"format"`
}

// Default returns the base configuration the file is loaded over.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL:   "https://discord.com/api/v10",
			UserAgent: version.UserAgent(),
			Timeout:   "30s",
		},
		Components: ComponentsConfig{
			Strict:         false,
			ValidateSchema: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from the CHORUS_CONFIG environment variable.
// There is no fallback: if the variable is unset, Load fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your chorus.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies the
// override section for the configured environment, and expands
// ${VAR} references in path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		// Production defaults: quieter logs, unknown kinds still
		// tolerated.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Log: &LogConfig{Level: "warn"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.TokenFile != "" {
			c.API.TokenFile = overrides.API.TokenFile
		}
		if overrides.API.UserAgent != "" {
			c.API.UserAgent = overrides.API.UserAgent
		}
		if overrides.API.Timeout != "" {
			c.API.Timeout = overrides.API.Timeout
		}
	}

	if overrides.Components != nil {
		if overrides.Components.Strict != nil {
			c.Components.Strict = *overrides.Components.Strict
		}
		if overrides.Components.ValidateSchema != nil {
			c.Components.ValidateSchema = *overrides.Components.ValidateSchema
		}
	}

	if overrides.Log != nil {
		if overrides.Log.Level != "" {
			c.Log.Level = overrides.Log.Level
		}
		if overrides.Log.Format != "" {
			c.Log.Format = overrides.Log.Format
		}
	}
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.API.TokenFile = expandVars(c.API.TokenFile, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	} else if parsed, err := url.Parse(c.API.BaseURL); err != nil || parsed.Host == "" || (parsed.Scheme != "https" && parsed.Scheme != "http") {
		errs = append(errs, fmt.Errorf("api.base_url %q is not an absolute http(s) url", c.API.BaseURL))
	}

	if c.API.UserAgent == "" {
		errs = append(errs, fmt.Errorf("api.user_agent is required"))
	}

	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", logFormats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Timeout parses api.timeout.
func (c *Config) Timeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("api.timeout: %w", err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	return timeout, nil
}

// Token reads the bot token from api.token_file into locked memory.
// The caller must Close the returned buffer.
func (c *Config) Token() (*secret.Buffer, error) {
	if c.API.TokenFile == "" {
		return nil, fmt.Errorf("api.token_file is not set")
	}
	token, err := secret.ReadFromPath(c.API.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("reading token from %s: %w", c.API.TokenFile, err)
	}
	return token, nil
}

// Logger returns a slog.Logger writing to w with the configured level
// and format. Call Validate first; unknown values fall back to info
// and json.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	options := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "text" {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}
