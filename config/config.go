package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL        string
	MarketAPIKey string
	Port         string
	QuoteTTL     time.Duration
}

// Load reads configuration from environment variables. A local .env file is
// honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		return nil, fmt.Errorf("PG_URL environment variable is required")
	}

	apiKey := os.Getenv("MARKET_DATA_API")
	if apiKey == "" {
		return nil, fmt.Errorf("MARKET_DATA_API environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Live quotes are cached to bound provider call volume; 30 minutes of
	// staleness is acceptable for a personal portfolio view.
	quoteTTL := 30 * time.Minute
	if v := os.Getenv("QUOTE_TTL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("QUOTE_TTL_MINUTES must be a positive integer, got %q", v)
		}
		quoteTTL = time.Duration(minutes) * time.Minute
	}

	return &Config{
		PGURL:        pgURL,
		MarketAPIKey: apiKey,
		Port:         port,
		QuoteTTL:     quoteTTL,
	}, nil
}
