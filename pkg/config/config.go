package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// RateLimit is the limiter formatted rate, e.g. "100-M" for 100 req/min.
	RateLimit string

	// Posting retry knobs for transient database failures during journal
	// posting (serialization failures, deadlocks, lock timeouts).
	PostingMaxRetries     int
	PostingRetryBackoffMS int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTING_MAX_RETRIES", 3)
	viper.SetDefault("POSTING_RETRY_BACKOFF_MS", 50)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.PostingMaxRetries = viper.GetInt("POSTING_MAX_RETRIES")
	if cfg.PostingMaxRetries < 0 {
		log.Printf("Warning: POSTING_MAX_RETRIES is negative (%d). Defaulting to 3.\n", cfg.PostingMaxRetries)
		cfg.PostingMaxRetries = 3
	}
	cfg.PostingRetryBackoffMS = viper.GetInt("POSTING_RETRY_BACKOFF_MS")
	if cfg.PostingRetryBackoffMS <= 0 {
		cfg.PostingRetryBackoffMS = 50
	}

	return cfg, nil
}
