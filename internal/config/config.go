package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BalesJ1029/hodlalpha/internal/database"
)

const defaultTickerURL = "https://api.exchange.coinbase.com/products/BTC-USD/ticker"

type Config struct {
	Database        database.Config
	ListenPort      string
	MetricsPort     string
	APIToken        string
	TickerURL       string
	ReferenceAsset  string
	RefreshInterval time.Duration
	SeedDemoData    bool
}

func Load() (*Config, error) {
	// The store endpoint is required; everything depends on it.
	dbURI := os.Getenv("DB_URI")
	if dbURI == "" {
		return nil, fmt.Errorf("DB_URI environment variable is required")
	}

	return &Config{
		Database: database.Config{
			DbUri: dbURI,
		},
		ListenPort:  getEnv("LISTEN_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		// An empty token is tolerated at startup; the ingest endpoint
		// rejects requests with a server error until it is configured.
		APIToken:        os.Getenv("ALERTS_API_TOKEN"),
		TickerURL:       getEnv("TICKER_URL", defaultTickerURL),
		ReferenceAsset:  getEnv("REFERENCE_ASSET", "BTC-USD"),
		RefreshInterval: time.Duration(getEnvInt("REFRESH_INTERVAL_MINUTES", 5)) * time.Minute,
		SeedDemoData:    getEnvBool("SEED_DEMO_DATA", false),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
