package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Backend
	GraphQLEndpoint    string `mapstructure:"GRAPHQL_ENDPOINT"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// Terminal identity
	SubsidiaryID string `mapstructure:"SUBSIDIARY_ID"`
	Env          string `mapstructure:"APP_ENV"` // development | production

	// Local state
	TokenDir           string `mapstructure:"TOKEN_DIR"`
	ReceiptStoragePath string `mapstructure:"RECEIPT_STORAGE_PATH"`

	// Barcode scanner
	ScanDebounceMillis int `mapstructure:"SCAN_DEBOUNCE_MS"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("GRAPHQL_ENDPOINT", "http://localhost:8006/graphql/")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 30)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SUBSIDIARY_ID", "")
	viper.SetDefault("SCAN_DEBOUNCE_MS", 300)
	viper.SetDefault("TOKEN_DIR", defaultTokenDir())
	viper.SetDefault("RECEIPT_STORAGE_PATH", filepath.Join(os.TempDir(), "farmapos", "receipts"))

	// Optional .env file for local development, does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultTokenDir resolves the per-user data directory holding the
// persisted tokens, falling back to the working directory when the OS
// config dir is unavailable.
func defaultTokenDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".farmapos"
	}
	return filepath.Join(base, "farmapos")
}
