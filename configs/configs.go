// Package configs provides application configuration loaded from environment variables.
// All configuration is externalized via environment variables for 12-factor app compliance.
package configs

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all application configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	// DatabaseURL is the dialect-prefixed connection string
	// (postgres://..., mysql://... or clickhouse://...).
	// Empty disables the database sink.
	DatabaseURL string

	// OutputDir is the directory for daily per-symbol CSV files.
	OutputDir string

	// Exchange is the venue code embedded in synthetic option symbols.
	Exchange string

	// Symbols is the list of tracked index instruments.
	Symbols []string

	// Scrape contains fetch/retry settings for the NSE client.
	Scrape ScrapeConfig

	// Kafka contains the optional row-publishing sink settings.
	Kafka KafkaConfig

	// ServerPort is the listen port for the read API.
	ServerPort string
}

// ScrapeConfig holds fetch and retry settings.
type ScrapeConfig struct {
	// Retries is the total number of fetch attempts per symbol.
	Retries int

	// BackoffBase is the exponential backoff base in seconds
	// (sleeps base^0, base^1, ... between attempts).
	BackoffBase int
}

// KafkaConfig holds Kafka producer settings for the optional row sink.
// An empty Broker disables the sink.
type KafkaConfig struct {
	// Broker is the Kafka broker address (e.g., "localhost:9092").
	Broker string

	// Topic is the Kafka topic normalized rows are published to.
	Topic string
}

// AppLoad loads all application configuration from environment variables.
// It attempts to load a .env file first (for local development).
// Call this once at application startup.
func AppLoad() *AppConfig {
	_ = godotenv.Load() // Ignore error - .env is optional

	return &AppConfig{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		OutputDir:   getEnv("OUTPUT_DIR", "data/daily"),
		Exchange:    getEnv("EXCHANGE", "NSE"),
		Symbols:     getEnvList("SYMBOLS", "NIFTY,BANKNIFTY"),
		Scrape: ScrapeConfig{
			Retries:     getEnvInt("SCRAPE_RETRIES", 3),
			BackoffBase: getEnvInt("SCRAPE_BACKOFF_BASE", 2),
		},
		Kafka: KafkaConfig{
			Broker: getEnv("KAFKA_BROKER", ""),
			Topic:  getEnv("KAFKA_OPTION_CHAIN_TOPIC", "nse_option_chain"),
		},
		ServerPort: getEnv("SERVER_PORT", "8080"),
	}
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList returns a comma-separated environment variable as a slice.
func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
