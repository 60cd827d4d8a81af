// Package config loads application settings from environment variables
// (populated from the .env file in main.go).
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// Config holds all configuration for the application.
type Config struct {
	PostgresConnString string

	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseSecure   bool

	BatchSize     int
	CheckpointDir string
	LogLevel      string
}

// LoadConfig reads the environment. Every variable has a usable default for
// local development; credentials default to empty strings.
func LoadConfig() (*Config, error) {
	pgURL := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(getenv("PG_USER", "myuser"), getenv("PG_PASSWORD", "mypassword")),
		Host:   fmt.Sprintf("%s:%s", getenv("PG_HOST", "localhost"), getenv("PG_PORT", "5432")),
		Path:   getenv("PG_DATABASE", "mydb"),
	}

	chPort, err := strconv.Atoi(getenv("CH_PORT", "8443"))
	if err != nil {
		return nil, fmt.Errorf("CH_PORT must be an integer: %w", err)
	}

	batchSize, err := strconv.Atoi(getenv("BATCH_SIZE", "10000"))
	if err != nil {
		return nil, fmt.Errorf("BATCH_SIZE must be an integer: %w", err)
	}

	return &Config{
		PostgresConnString: pgURL.String(),

		ClickHouseHost:     getenv("CH_HOST", "localhost"),
		ClickHousePort:     chPort,
		ClickHouseDatabase: getenv("CH_DATABASE", "default"),
		ClickHouseUser:     getenv("CH_USER", "default"),
		ClickHousePassword: getenv("CH_PASSWORD", ""),
		ClickHouseSecure:   getenv("CH_SECURE", "1") == "1",

		BatchSize:     batchSize,
		CheckpointDir: getenv("CHECKPOINT_DIR", "."),
		LogLevel:      getenv("LOG_LEVEL", "INFO"),
	}, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
