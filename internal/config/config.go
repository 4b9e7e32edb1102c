package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Port     string
	LogLevel slog.Level

	FeedCapacity       int
	FeedInterval       time.Duration
	FeedInitialItems   int
	FeedInitialSpacing time.Duration

	TimelineCapacity   int
	ThreatInterval     time.Duration
	RefreshInterval    time.Duration
	SirenEnabled       bool
	AutoRefreshEnabled bool

	RedisURL       string
	AlertChannel   string
	AlertRateLimit int

	CatalogFile string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		FeedCapacity:       getEnvInt("FEED_CAPACITY", 50),
		FeedInterval:       getEnvDuration("FEED_INTERVAL", 15*time.Second),
		FeedInitialItems:   getEnvInt("FEED_INITIAL_ITEMS", 8),
		FeedInitialSpacing: getEnvDuration("FEED_INITIAL_SPACING", 2*time.Second),
		TimelineCapacity:   getEnvInt("TIMELINE_CAPACITY", 20),
		ThreatInterval:     getEnvDuration("THREAT_INTERVAL", 60*time.Second),
		RefreshInterval:    getEnvDuration("REFRESH_INTERVAL", 30*time.Second),
		SirenEnabled:       getEnvBool("SIREN_ENABLED", true),
		AutoRefreshEnabled: getEnvBool("AUTO_REFRESH_ENABLED", true),
		RedisURL:           getEnv("REDIS_URL", ""),
		AlertChannel:       getEnv("ALERT_CHANNEL", "conflict:alerts"),
		AlertRateLimit:     getEnvInt("ALERT_RATE_LIMIT", 3),
		CatalogFile:        getEnv("CATALOG_FILE", ""),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.FeedCapacity < 0 {
		return nil, fmt.Errorf("FEED_CAPACITY must not be negative, got %d", cfg.FeedCapacity)
	}
	if cfg.TimelineCapacity < 0 {
		return nil, fmt.Errorf("TIMELINE_CAPACITY must not be negative, got %d", cfg.TimelineCapacity)
	}
	for name, d := range map[string]time.Duration{
		"FEED_INTERVAL":    cfg.FeedInterval,
		"THREAT_INTERVAL":  cfg.ThreatInterval,
		"REFRESH_INTERVAL": cfg.RefreshInterval,
	} {
		if d <= 0 {
			return nil, fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if cfg.AlertChannel == "" {
		return nil, fmt.Errorf("ALERT_CHANNEL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}
