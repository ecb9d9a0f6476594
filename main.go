package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"camperwatch/config"
	"camperwatch/internal/fetcher"
	"camperwatch/internal/heartbeat"
	"camperwatch/internal/notify"
	"camperwatch/internal/seenstore"
	sentryutil "camperwatch/internal/sentry"
	"camperwatch/internal/worker"
	"camperwatch/logger"
	"camperwatch/services/cache"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Command-line flags take highest precedence over file and environment
	configPath := flag.String("config", defaultConfigPath(), "Path to configuration file")
	citiesFlag := flag.String("cities", "", "Comma-separated list of cities to filter by (e.g. Madrid,Barcelona,Zurich)")
	tokenFlag := flag.String("telegram-token", "", "Telegram bot token to send notifications")
	chatsFlag := flag.String("telegram-chats", "", "Comma-separated list of Telegram chat ids to send notifications to")
	seenFlag := flag.String("seen-file", "", "Path to seen offers JSON file")
	flag.Parse()

	// Load and validate configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("Config file ignored")
	}
	if *tokenFlag != "" {
		cfg.TelegramToken = *tokenFlag
	}
	if *chatsFlag != "" {
		cfg.TelegramChats = config.SplitList(*chatsFlag)
	}
	if *seenFlag != "" {
		cfg.SeenFile = *seenFlag
	}
	cityFilters := cfg.DefaultCities
	if *citiesFlag != "" {
		cityFilters = config.SplitList(*citiesFlag)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	sentryutil.Init(cfg.SentryDSN, cfg.SentryEnvironment)
	defer sentryutil.Flush()

	log.Info().
		Str("environment", cfg.Environment).
		Str("listing_url", cfg.ListingURL).
		Bool("notifications", cfg.NotificationsEnabled()).
		Msg("Starting run")

	// Set up context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional listing body cache
	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Using memcache listing cache at %s", cfg.MemcacheAddr)
	}

	// Seen-offer store: redis when configured, local file otherwise
	var store seenstore.Store
	if cfg.RedisAddr != "" {
		redisStore := seenstore.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisSeenKey)
		defer redisStore.Close()
		store = redisStore
		logger.Info("Using redis seen store at %s (DB: %d, key: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisSeenKey)
	} else {
		store = seenstore.NewFileStore(cfg.SeenFile)
	}

	// Notification stack, only when token and chats are configured
	var tracker *heartbeat.Tracker
	var sender notify.Sender
	if cfg.NotificationsEnabled() {
		tracker = heartbeat.New(cfg.HeartbeatFile, cfg.HeartbeatDays)
		sender = notify.NewTelegramSender(cfg.TelegramToken)
	}
	dispatcher := notify.NewDispatcher(sender, cfg.TelegramChats, tracker)

	w := worker.New(fetcher.New(cfg, cacheSvc), store, dispatcher, tracker, cityFilters)

	return w.Run(ctx)
}

// defaultConfigPath resolves the config file path from the environment
func defaultConfigPath() string {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return path
	}
	return config.DefaultConfigFile
}
