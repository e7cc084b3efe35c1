package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// CacheMode selects how user/group snapshot reads behave.
type CacheMode string

const (
	// CacheModeCached serves memoized snapshots that may lag behind storage.
	CacheModeCached CacheMode = "cached"
	// CacheModeStrong routes every read to storage, bypassing the cache.
	CacheModeStrong CacheMode = "strong"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL string

	// Admin configuration
	AdminUsername string // allow-listed username for admin commands

	// Drink mechanics
	CooldownSeconds int   // minimum seconds between drinks per user
	MaxPourLiters   int64 // upper bound of the random pour per drink
	LeaderboardSize int   // default number of rows in top listings

	// Snapshot cache
	CacheMode     CacheMode
	CacheCapacity int

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Admin
		AdminUsername: os.Getenv("ADMIN_USERNAME"),

		// Drink mechanics with defaults
		CooldownSeconds: 5 * 3600,
		MaxPourLiters:   10,
		LeaderboardSize: 10,

		// Cache defaults
		CacheMode:     CacheModeCached,
		CacheCapacity: 1024,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if cooldown := os.Getenv("COOLDOWN_SECONDS"); cooldown != "" {
		if parsed, err := strconv.Atoi(cooldown); err == nil {
			config.CooldownSeconds = parsed
		}
	}
	if size := os.Getenv("LEADERBOARD_SIZE"); size != "" {
		if parsed, err := strconv.Atoi(size); err == nil {
			config.LeaderboardSize = parsed
		}
	}
	if capacity := os.Getenv("CACHE_CAPACITY"); capacity != "" {
		parsed, err := strconv.Atoi(capacity)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid CACHE_CAPACITY %q (want a positive integer)", capacity)
		}
		config.CacheCapacity = parsed
	}
	if mode := os.Getenv("CACHE_MODE"); mode != "" {
		switch CacheMode(mode) {
		case CacheModeCached, CacheModeStrong:
			config.CacheMode = CacheMode(mode)
		default:
			return nil, fmt.Errorf("invalid CACHE_MODE %q (want %q or %q)", mode, CacheModeCached, CacheModeStrong)
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.AdminUsername == "" {
			return nil, fmt.Errorf("ADMIN_USERNAME is required")
		}
	}

	return config, nil
}
