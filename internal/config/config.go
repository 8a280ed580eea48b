package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level
	RedisURL    string
	WorldFile   string
	StoryFile   string
	SnapshotTTL time.Duration
}

func Load() (*Config, error) {
	ttl, err := time.ParseDuration(getEnv("SNAPSHOT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_TTL: %w", err)
	}
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		WorldFile:   getEnv("WORLD_FILE", "data/world.json"),
		StoryFile:   getEnv("STORY_FILE", "data/story.json"),
		SnapshotTTL: ttl,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
