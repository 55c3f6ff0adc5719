// Package config provides centralized configuration for MindfulMate runtime values.
package config

import (
	"os"
	"strconv"
	"time"
)

// RuntimeConfig holds all runtime configuration values that would otherwise
// be scattered as magic values throughout the codebase.
type RuntimeConfig struct {
	// Chat service configuration
	Chat ChatConfig

	// Scheduler configuration
	Scheduler SchedulerConfig

	// HTTP client configuration
	HTTP HTTPConfig

	// Offline shell cache configuration
	Cache CacheConfig

	// Daemon lifecycle configuration
	Daemon DaemonConfig
}

// DaemonConfig holds daemon lifecycle configuration.
type DaemonConfig struct {
	// StartupWait is how long to wait for a background daemon to come up.
	// Default: 500ms
	StartupWait time.Duration

	// KillTimeout is how long to wait for graceful shutdown before killing.
	// Default: 5s
	KillTimeout time.Duration
}

// ChatConfig holds the hosted chat service configuration.
type ChatConfig struct {
	// APIKey authenticates against the Gemini API. Empty disables chat.
	APIKey string

	// Model is the Gemini model identifier.
	// Default: gemini-2.5-flash
	Model string

	// Temperature keeps advice grounded rather than creative.
	// Default: 0.6
	Temperature float64

	// Timeout bounds a single chat exchange.
	// Default: 60s
	Timeout time.Duration
}

// SchedulerConfig holds scheduler-related configuration.
type SchedulerConfig struct {
	// TickInterval is the alert polling cadence. Must stay under one minute
	// so no HH:MM boundary is missed.
	// Default: 30s
	TickInterval time.Duration

	// SleepThreshold is the time gap that indicates the system was sleeping.
	// If elapsed time since last check exceeds this, the stale tick is skipped.
	// Default: 1h
	SleepThreshold time.Duration
}

// HTTPConfig holds HTTP client configuration.
type HTTPConfig struct {
	// Timeout is the default HTTP request timeout.
	// Default: 30s
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts.
	// Default: 3
	MaxRetries int

	// RetryDelays are the delays between retry attempts.
	// Default: [0s, 5s, 30s]
	RetryDelays []time.Duration
}

// CacheConfig holds the offline delivery cache configuration.
type CacheConfig struct {
	// Generation is the named cache version. Activating a new generation
	// deletes every entry stored under a different one.
	// Default: mindfulmate-v2
	Generation string

	// Origin is the upstream application shell to cache.
	Origin string

	// ListenAddr is where the serve command binds.
	// Default: 127.0.0.1:8787
	ListenAddr string
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Chat: ChatConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 0.6,
			Timeout:     60 * time.Second,
		},
		Scheduler: SchedulerConfig{
			TickInterval:   30 * time.Second,
			SleepThreshold: 1 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			RetryDelays: []time.Duration{
				0,                // Immediate first attempt
				5 * time.Second,  // Retry after 5s
				30 * time.Second, // Retry after 30s
			},
		},
		Cache: CacheConfig{
			Generation: "mindfulmate-v2",
			ListenAddr: "127.0.0.1:8787",
		},
		Daemon: DaemonConfig{
			StartupWait: 500 * time.Millisecond,
			KillTimeout: 5 * time.Second,
		},
	}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

// initGlobal initializes the global config with defaults and environment overrides.
func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	// Chat configuration
	if v := os.Getenv("MINDFULMATE_API_KEY"); v != "" {
		c.Chat.APIKey = v
	}
	if v := os.Getenv("MINDFULMATE_CHAT_MODEL"); v != "" {
		c.Chat.Model = v
	}
	if v := os.Getenv("MINDFULMATE_CHAT_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			c.Chat.Temperature = f
		}
	}
	if v := os.Getenv("MINDFULMATE_CHAT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Chat.Timeout = d
		}
	}

	// Scheduler configuration
	if v := os.Getenv("MINDFULMATE_TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 && d < time.Minute {
			c.Scheduler.TickInterval = d
		}
	}
	if v := os.Getenv("MINDFULMATE_SLEEP_THRESHOLD"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Scheduler.SleepThreshold = d
		}
	}

	// HTTP configuration
	if v := os.Getenv("MINDFULMATE_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("MINDFULMATE_HTTP_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.HTTP.MaxRetries = n
		}
	}

	// Cache configuration
	if v := os.Getenv("MINDFULMATE_CACHE_GENERATION"); v != "" {
		c.Cache.Generation = v
	}
	if v := os.Getenv("MINDFULMATE_SHELL_ORIGIN"); v != "" {
		c.Cache.Origin = v
	}
	if v := os.Getenv("MINDFULMATE_SERVE_ADDR"); v != "" {
		c.Cache.ListenAddr = v
	}
}

// ReloadFromEnv reloads configuration from environment variables.
// This is useful for testing or when environment variables change.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
