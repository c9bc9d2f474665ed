package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
)

const appDirectoryName = "dawaiInvoices"

// Config holds application configuration values.
type Config struct {
	DatabaseDSN    string
	HTTPAddr       string
	LogLevel       zapcore.Level
	AllowedOrigins []string
	LegacyDir      string
	InventoryCSV   string

	// Warnings collects values that were rejected in favour of a default.
	Warnings []string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	var warnings []string

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = filepath.Join(RootDir(), "dawai.db")
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	level := zapcore.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			warnings = append(warnings, "invalid LOG_LEVEL "+raw+", defaulting to info")
			level = zapcore.InfoLevel
		}
	}

	origins := []string{"*"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) == 0 {
			warnings = append(warnings, "empty ALLOWED_ORIGINS, defaulting to *")
			origins = []string{"*"}
		}
	}

	return Config{
		DatabaseDSN:    dsn,
		HTTPAddr:       addr,
		LogLevel:       level,
		AllowedOrigins: origins,
		LegacyDir:      os.Getenv("LEGACY_DIR"),
		InventoryCSV:   os.Getenv("INVENTORY_CSV"),
		Warnings:       warnings,
	}
}

// RootDir is the per-user application directory.
func RootDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, appDirectoryName)
}
