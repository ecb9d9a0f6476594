package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, "https://www.imoova.com/en/relocations/table?region=EU", cfg.ListingURL)
	assert.Equal(t, "https://www.imoova.com", cfg.BaseURL)
	assert.Equal(t, 7, cfg.HeartbeatDays)
	assert.Equal(t, DefaultSeenFile, cfg.SeenFile)
	assert.Equal(t, DefaultHeartbeatFile, cfg.HeartbeatFile)
	assert.Equal(t, 60*time.Second, cfg.ListingCacheTTL)
	assert.False(t, cfg.NotificationsEnabled())

	// Test with environment variables
	os.Setenv("TELEGRAM_TOKEN", "123:abc")
	os.Setenv("TELEGRAM_CHATS", " 111 , 222 ,")
	os.Setenv("DEFAULT_CITIES", "Madrid,Barcelona")
	os.Setenv("HEARTBEAT_DAYS", "3")
	os.Setenv("SEEN_FILE", "/tmp/seen.json")
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "2")

	cfg, err = LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, []string{"111", "222"}, cfg.TelegramChats)
	assert.Equal(t, []string{"Madrid", "Barcelona"}, cfg.DefaultCities)
	assert.Equal(t, 3, cfg.HeartbeatDays)
	assert.Equal(t, "/tmp/seen.json", cfg.SeenFile)
	assert.Equal(t, "redis.example.com:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.NotificationsEnabled())

	// Clean up
	os.Unsetenv("TELEGRAM_TOKEN")
	os.Unsetenv("TELEGRAM_CHATS")
	os.Unsetenv("DEFAULT_CITIES")
	os.Unsetenv("HEARTBEAT_DAYS")
	os.Unsetenv("SEEN_FILE")
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_DB")
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"telegram_token": "file-token",
		"telegram_chats": ["100", "200"],
		"default_cities": ["Zurich"],
		"heartbeat_days": 14,
		"seen_file": "custom_seen.json"
	}`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "file-token", cfg.TelegramToken)
	assert.Equal(t, []string{"100", "200"}, cfg.TelegramChats)
	assert.Equal(t, []string{"Zurich"}, cfg.DefaultCities)
	assert.Equal(t, 14, cfg.HeartbeatDays)
	assert.Equal(t, "custom_seen.json", cfg.SeenFile)
}

func TestLoadConfigFilePrecedence(t *testing.T) {
	// Environment overrides the config file
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"heartbeat_days": 14}`), 0o644))

	os.Setenv("HEARTBEAT_DAYS", "2")
	defer os.Unsetenv("HEARTBEAT_DAYS")

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, cfg.HeartbeatDays)
}

func TestLoadConfigMissingFile(t *testing.T) {
	// A missing config file is not an error
	cfg, err := LoadConfig("/nonexistent/config.json")
	assert.NoError(t, err)
	assert.Equal(t, 7, cfg.HeartbeatDays)
}

func TestLoadConfigCorruptFile(t *testing.T) {
	// An unparsable config file is reported but defaults still apply
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Equal(t, 7, cfg.HeartbeatDays)
}

func TestValidate(t *testing.T) {
	cfg, _ := LoadConfig("")
	assert.NoError(t, cfg.Validate())

	cfg.TelegramToken = "123:abc"
	err := cfg.Validate()
	assert.Error(t, err, "token without chats should be rejected")

	cfg.TelegramChats = []string{"111"}
	assert.NoError(t, cfg.Validate())

	cfg.HeartbeatDays = 0
	assert.Error(t, cfg.Validate())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList("a, b ,,"))
	assert.Nil(t, SplitList(" , "))
	assert.Nil(t, SplitList(""))
}
