package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "camperwatch/pkg/errors"
)

// Default file locations
const (
	DefaultConfigFile    = "config.json"
	DefaultSeenFile      = "seen_offers.json"
	DefaultHeartbeatFile = "last_message.json"
)

// Config represents the application configuration for one run.
// It is assembled once at process entry and passed by value into
// each component; there is no ambient global.
type Config struct {
	// Upstream listing
	ListingURL string
	BaseURL    string

	// Telegram configuration
	TelegramToken string
	TelegramChats []string

	// Filtering
	DefaultCities []string

	// Heartbeat configuration
	HeartbeatDays int
	HeartbeatFile string

	// Seen-offer state
	SeenFile     string
	RedisAddr    string
	RedisDB      int
	RedisSeenKey string

	// Listing body cache
	MemcacheAddr    string
	ListingCacheTTL time.Duration

	// Error tracking
	SentryDSN         string
	SentryEnvironment string

	// Environment
	Environment string
}

// fileConfig mirrors the keys recognized in the JSON config file
type fileConfig struct {
	ListingURL    *string   `json:"listing_url"`
	TelegramToken *string   `json:"telegram_token"`
	TelegramChats *[]string `json:"telegram_chats"`
	DefaultCities *[]string `json:"default_cities"`
	HeartbeatDays *int      `json:"heartbeat_days"`
	SeenFile      *string   `json:"seen_file"`
	HeartbeatFile *string   `json:"heartbeat_file"`
}

// LoadConfig builds the configuration with precedence
// defaults < config file < environment. Command-line flags are applied
// on top by the caller. A missing config file is not an error; an
// unparsable one is reported and skipped.
func LoadConfig(configPath string) (Config, error) {
	cfg := Config{
		ListingURL:        "https://www.imoova.com/en/relocations/table?region=EU",
		BaseURL:           "https://www.imoova.com",
		HeartbeatDays:     7,
		HeartbeatFile:     DefaultHeartbeatFile,
		SeenFile:          DefaultSeenFile,
		RedisSeenKey:      "camperwatch:seen",
		ListingCacheTTL:   60 * time.Second,
		SentryEnvironment: "production",
		Environment:       "development",
	}

	var loadErr error
	if configPath != "" {
		if err := cfg.applyFile(configPath); err != nil {
			loadErr = err
		}
	}

	cfg.applyEnv()

	return cfg, loadErr
}

// applyFile overlays values from a JSON config file
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return apperrors.NewPersistence("config", "could not read config file", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return apperrors.NewPersistence("config", "could not parse config file", err)
	}

	if fc.ListingURL != nil {
		c.ListingURL = *fc.ListingURL
	}
	if fc.TelegramToken != nil {
		c.TelegramToken = *fc.TelegramToken
	}
	if fc.TelegramChats != nil {
		c.TelegramChats = *fc.TelegramChats
	}
	if fc.DefaultCities != nil {
		c.DefaultCities = *fc.DefaultCities
	}
	if fc.HeartbeatDays != nil {
		c.setHeartbeatDays(*fc.HeartbeatDays)
	}
	if fc.SeenFile != nil {
		c.SeenFile = *fc.SeenFile
	}
	if fc.HeartbeatFile != nil {
		c.HeartbeatFile = *fc.HeartbeatFile
	}
	return nil
}

// setHeartbeatDays sets the heartbeat interval, ignoring non-positive values
func (c *Config) setHeartbeatDays(days int) {
	if days > 0 {
		c.HeartbeatDays = days
	}
}

// applyEnv overlays values from environment variables
func (c *Config) applyEnv() {
	c.ListingURL = getEnv("LISTING_URL", c.ListingURL)
	c.BaseURL = getEnv("LISTING_BASE_URL", c.BaseURL)
	c.TelegramToken = getEnv("TELEGRAM_TOKEN", c.TelegramToken)
	if v := os.Getenv("TELEGRAM_CHATS"); v != "" {
		c.TelegramChats = SplitList(v)
	}
	if v := os.Getenv("DEFAULT_CITIES"); v != "" {
		c.DefaultCities = SplitList(v)
	}
	if v := os.Getenv("HEARTBEAT_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			c.setHeartbeatDays(days)
		}
	}
	c.SeenFile = getEnv("SEEN_FILE", c.SeenFile)
	c.HeartbeatFile = getEnv("HEARTBEAT_FILE", c.HeartbeatFile)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.RedisDB = db
		}
	}
	c.RedisSeenKey = getEnv("REDIS_SEEN_KEY", c.RedisSeenKey)
	c.MemcacheAddr = getEnv("MEMCACHE_ADDR", c.MemcacheAddr)
	if v := os.Getenv("LISTING_CACHE_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.ListingCacheTTL = time.Duration(secs) * time.Second
		}
	}
	c.SentryDSN = getEnv("SENTRY_DSN", c.SentryDSN)
	c.SentryEnvironment = getEnv("SENTRY_ENVIRONMENT", c.SentryEnvironment)
	c.Environment = getEnv("CAMPERWATCH_ENVIRONMENT", c.Environment)
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if c.ListingURL == "" {
		return apperrors.NewConfiguration("listing URL must not be empty", nil)
	}
	if c.HeartbeatDays <= 0 {
		return apperrors.NewConfiguration("heartbeat interval must be positive", nil)
	}
	if c.TelegramToken != "" && len(c.TelegramChats) == 0 {
		return apperrors.NewConfiguration("telegram token set but no chats configured", nil)
	}
	return nil
}

// NotificationsEnabled reports whether offers should be sent anywhere
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && len(c.TelegramChats) > 0
}

// SplitList splits a comma-separated list, trimming whitespace and
// dropping empty entries
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
