package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	StaticDir   string // prebuilt client bundle; non-API GETs fall back to its index.html
	CatalogFile string // optional YAML catalog override; empty means built-in catalog
	Sheets      SheetsConfig
}

// SheetsConfig is used to reach the Google Sheets ledger document
type SheetsConfig struct {
	ServiceAccountEmail string
	PrivateKey          string // PEM; \n-escaped newlines are unescaped at load
	SpreadsheetID       string
	SheetName           string // empty means the first worksheet
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STATIC_DIR", "./dist")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		StaticDir:   getEnvOrViper("STATIC_DIR", "./dist"),
		CatalogFile: strings.TrimSpace(getEnvOrViper("CATALOG_FILE", "")),
		Sheets: SheetsConfig{
			ServiceAccountEmail: strings.TrimSpace(getEnvOrViper("GOOGLE_SERVICE_ACCOUNT_EMAIL", "")),
			PrivateKey:          unescapeNewlines(getEnvOrViper("GOOGLE_PRIVATE_KEY", "")),
			SpreadsheetID:       strings.TrimSpace(getEnvOrViper("GOOGLE_SPREADSHEET_ID", "")),
			SheetName:           strings.TrimSpace(getEnvOrViper("GOOGLE_SHEET_NAME", "")),
		},
	}

	// Validate required fields
	if cfg.Sheets.ServiceAccountEmail == "" {
		return nil, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_EMAIL is required")
	}
	if cfg.Sheets.PrivateKey == "" {
		return nil, fmt.Errorf("GOOGLE_PRIVATE_KEY is required")
	}
	if cfg.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("GOOGLE_SPREADSHEET_ID is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

// unescapeNewlines converts the \n sequences that env files use to carry a
// multi-line PEM key back into real newlines.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
