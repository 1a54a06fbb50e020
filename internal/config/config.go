package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"invoicer/internal/logger"
	"invoicer/internal/store"
)

type Config struct {
	// Storage Configuration
	StoreBackend string
	StorePath    string

	// Output Configuration
	OutputDir string
	Compact   bool // Render documents in the compact layout

	// Google Sheets Configuration
	GoogleSheetURL       string
	GoogleSheetWorksheet string // Invoice register
	GoogleBankWorksheet  string // Bank transactions for reconciliation

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	defaults := logger.DefaultConfig()

	config := &Config{
		StoreBackend:         strings.ToLower(getEnv("INVOICER_STORE_BACKEND", store.BackendFile)),
		StorePath:            getEnv("INVOICER_STORE_PATH", "./data/invoicer.json"),
		OutputDir:            getEnv("INVOICER_OUTPUT_DIR", "."),
		Compact:              getBool("INVOICER_COMPACT", false),
		GoogleSheetURL:       getEnv("GOOGLE_SHEET_URL", ""),
		GoogleSheetWorksheet: getEnv("GOOGLE_SHEET_WORKSHEET", "Invoices"),
		GoogleBankWorksheet:  getEnv("GOOGLE_BANK_WORKSHEET", "Bank"),
		LogLevel:             getEnv("LOG_LEVEL", defaults.Level),
		LogFormat:            getEnv("LOG_FORMAT", defaults.Format),
		LogTimeFormat:        getEnv("LOG_TIME_FORMAT", defaults.TimeFormat),
		LogOutput:            getEnv("LOG_OUTPUT", defaults.Output),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Default returns the configuration used when the environment cannot be loaded.
func Default() *Config {
	defaults := logger.DefaultConfig()
	return &Config{
		StoreBackend:         store.BackendFile,
		StorePath:            "./data/invoicer.json",
		OutputDir:            ".",
		GoogleSheetWorksheet: "Invoices",
		GoogleBankWorksheet:  "Bank",
		LogLevel:             defaults.Level,
		LogFormat:            defaults.Format,
		LogTimeFormat:        defaults.TimeFormat,
		LogOutput:            defaults.Output,
	}
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case store.BackendFile, store.BackendSQLite:
	default:
		return fmt.Errorf("INVOICER_STORE_BACKEND must be %q or %q, got %q", store.BackendFile, store.BackendSQLite, c.StoreBackend)
	}
	if c.StorePath == "" {
		return fmt.Errorf("INVOICER_STORE_PATH is required")
	}
	return nil
}

// RequireSheet reports an error when no spreadsheet is configured.
func (c *Config) RequireSheet() error {
	if c.GoogleSheetURL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL is required")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
