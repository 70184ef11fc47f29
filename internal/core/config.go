package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage backend selectors.
const (
	StorageFile   = "file"
	StorageBadger = "badger"
)

// Config holds the application configuration.
type Config struct {
	LogLevel string // debug, info, warn, error
	DataDir  string // Root directory for persisted slices
	Storage  string // "file" or "badger"
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	logLevel := getEnvOrDefault("LOG_LEVEL", "info")

	// DEBUG flag overrides log level
	if os.Getenv("DEBUG") == "1" {
		logLevel = "debug"
	}

	dataDir := os.Getenv("COMPDASH_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".compdash")
	}

	storage := getEnvOrDefault("COMPDASH_STORAGE", StorageFile)
	if storage != StorageFile && storage != StorageBadger {
		return nil, fmt.Errorf("invalid COMPDASH_STORAGE %q: must be %q or %q", storage, StorageFile, StorageBadger)
	}

	return &Config{
		LogLevel: logLevel,
		DataDir:  dataDir,
		Storage:  storage,
	}, nil
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
