package main

import (
	"os"
	"strings"
)

// Config carries the file paths and session credentials for one run.
// Flags override environment variables, which override the defaults.
type Config struct {
	DataFile   string
	BackupFile string
	LogFile    string
	Username   string
	Password   string
}

// LoadConfig reads environment variables and applies defaults.
func LoadConfig() Config {
	return Config{
		DataFile:   envDefault("BAKERY_DATA_FILE", "bakery_orders.csv"),
		BackupFile: envDefault("BAKERY_BACKUP_FILE", "bakery_orders_backup.csv"),
		LogFile:    envDefault("BAKERY_LOG_FILE", "bakery_log.txt"),
		Username:   envDefault("BAKERY_USERNAME", "admin"),
		Password:   envDefault("BAKERY_PASSWORD", "password"),
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
