// Package config reads configuration from the environment and sets up
// logging.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration values.
type Config struct {
	// SQLite database path
	DBPath string

	// Extraction
	ExtractorProvider string
	ExtractModel      string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		DBPath:            getEnv("JOURNAL_MEMORY_DB", defaultDBPath()),
		ExtractorProvider: getEnv("JOURNAL_MEMORY_EXTRACTOR", ""),
		ExtractModel:      getEnv("JOURNAL_MEMORY_EXTRACT_MODEL", ""),
		LogFile:           getEnv("JOURNAL_MEMORY_LOG_FILE", ""),
		LogLevel:          ParseLogLevel(getEnv("JOURNAL_MEMORY_LOG_LEVEL", "INFO")),
	}
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".journal-memory", "journal.db")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// ParseLogLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
