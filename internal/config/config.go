package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Environment  string
	LogLevel     slog.Level
	Seed         int64
	NumDialogues int
	FlushAfter   int
	WorldFile    string
	RedisAddr    string
	Persist      bool
}

func Load() *Config {
	return &Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Seed:         getEnvInt64("SEED", 1),
		NumDialogues: getEnvInt("NUM_DIALOGUES", 100),
		FlushAfter:   getEnvInt("FLUSH_AFTER", 10000),
		WorldFile:    getEnv("WORLD_FILE", ""),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		Persist:      getEnv("PERSIST_TRANSCRIPTS", "false") == "true",
	}
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

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
