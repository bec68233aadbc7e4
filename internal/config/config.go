// Package config loads and validates the daemon configuration.
//
// Configuration is a YAML file with `${VAR}` environment expansion, the
// main sections being:
//
//   - api: bot token and optional API base URL
//   - mode: update ingestion mode, "polling" (default) or "webhook"
//   - polling: long poll parameters
//   - webhook: listener address, path and public URL
//   - logging: log level, file and rotation
//
// # Example Configuration
//
//	api:
//	  token: "${BOT_TOKEN}"
//	mode: polling
//	polling:
//	  limit: 100
//	  timeout: 30s
//	logging:
//	  level: info
//	  file: /var/log/botpipe/botpipe.log
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/keepmind9/botpipe/internal/logger"
	"github.com/keepmind9/botpipe/pkg/api"
	"github.com/keepmind9/botpipe/pkg/bot"
	"github.com/keepmind9/botpipe/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Ingestion modes
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config represents the complete daemon configuration structure
type Config struct {
	API     APIConfig     `yaml:"api"`
	Mode    string        `yaml:"mode"`
	Polling PollingConfig `yaml:"polling"`
	Webhook WebhookConfig `yaml:"webhook"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig represents the outbound API configuration
type APIConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

// PollingConfig represents the long polling configuration
type PollingConfig struct {
	Limit          int      `yaml:"limit"`
	Timeout        string   `yaml:"timeout"`      // duration, server-side hold
	MinInterval    string   `yaml:"min_interval"` // duration, client-side floor
	AllowedUpdates []string `yaml:"allowed_updates"`
}

// WebhookConfig represents the webhook listener configuration
type WebhookConfig struct {
	Listen             string `yaml:"listen"`
	Path               string `yaml:"path"`
	URL                string `yaml:"url"`
	QueueSize          int    `yaml:"queue_size"`
	MaxConnections     int    `yaml:"max_connections"`
	DropPendingUpdates bool   `yaml:"drop_pending_updates"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	File         string `yaml:"file"`
	MaxSize      int    `yaml:"max_size"`
	MaxBackups   int    `yaml:"max_backups"`
	MaxAge       int    `yaml:"max_age"`
	Compress     bool   `yaml:"compress"`
	EnableStdout bool   `yaml:"enable_stdout"`
}

// LoadConfig loads configuration from file and expands environment variables
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded, err := expandEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// expandEnv replaces ${VAR_NAME} patterns with environment variable values
func expandEnv(input string) (string, error) {
	var missingVars []string

	result := os.Expand(input, func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		missingVars = append(missingVars, key)
		return ""
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s",
			strings.Join(missingVars, ", "))
	}

	return result, nil
}

// validateConfig applies defaults and performs basic validation
func validateConfig(config *Config) error {
	if config.API.Token == "" {
		return &bot.ConfigError{Option: "api.token", Reason: "must not be empty"}
	}

	if config.Mode == "" {
		config.Mode = ModePolling
	}
	if config.Mode != ModePolling && config.Mode != ModeWebhook {
		return &bot.ConfigError{Option: "mode", Reason: fmt.Sprintf("must be %q or %q, got %q", ModePolling, ModeWebhook, config.Mode)}
	}

	if config.Polling.Limit < 0 || config.Polling.Limit > constants.MaxPollLimit {
		return &bot.ConfigError{Option: "polling.limit", Reason: fmt.Sprintf("must be between %d and %d", constants.MinPollLimit, constants.MaxPollLimit)}
	}
	if config.Polling.Timeout != "" {
		if _, err := time.ParseDuration(config.Polling.Timeout); err != nil {
			return &bot.ConfigError{Option: "polling.timeout", Reason: err.Error()}
		}
	}
	if config.Polling.MinInterval != "" {
		if _, err := time.ParseDuration(config.Polling.MinInterval); err != nil {
			return &bot.ConfigError{Option: "polling.min_interval", Reason: err.Error()}
		}
	}

	if config.Mode == ModeWebhook && config.Webhook.QueueSize < 0 {
		return &bot.ConfigError{Option: "webhook.queue_size", Reason: "must not be negative"}
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = constants.DefaultLogMaxSize
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = constants.DefaultLogMaxBackups
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = constants.DefaultLogMaxAge
	}

	return nil
}

// PollerOptions converts the polling section into source options. Durations
// were validated during load.
func (c *Config) PollerOptions() bot.PollerOptions {
	opts := bot.PollerOptions{Limit: c.Polling.Limit}
	if c.Polling.Timeout != "" {
		opts.Timeout, _ = time.ParseDuration(c.Polling.Timeout)
	}
	if c.Polling.MinInterval != "" {
		opts.MinInterval, _ = time.ParseDuration(c.Polling.MinInterval)
	}
	for _, t := range c.Polling.AllowedUpdates {
		opts.AllowedUpdates = append(opts.AllowedUpdates, api.UpdateType(t))
	}
	return opts
}

// WebhookOptions converts the webhook section into source options.
func (c *Config) WebhookOptions() bot.WebhookOptions {
	return bot.WebhookOptions{
		Addr:               c.Webhook.Listen,
		Path:               c.Webhook.Path,
		URL:                c.Webhook.URL,
		QueueSize:          c.Webhook.QueueSize,
		MaxConnections:     c.Webhook.MaxConnections,
		DropPendingUpdates: c.Webhook.DropPendingUpdates,
	}
}

// LoggerConfig converts the logging section into logger configuration.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:        c.Logging.Level,
		File:         c.Logging.File,
		MaxSize:      c.Logging.MaxSize,
		MaxBackups:   c.Logging.MaxBackups,
		MaxAge:       c.Logging.MaxAge,
		Compress:     c.Logging.Compress,
		EnableStdout: c.Logging.EnableStdout,
	}
}
