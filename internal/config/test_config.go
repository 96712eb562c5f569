package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultTestDSN is used by integration tests when TEST_DB_* variables are not set
const DefaultTestDSN = "root:password@tcp(localhost:3306)/learnhub_test?parseTime=true&charset=utf8mb4&multiStatements=true"

// LoadTestConfig loads the database configuration for integration tests
// from TEST_DB_* variables. Missing variables yield an empty Config so that
// TestDSN falls back to DefaultTestDSN.
func LoadTestConfig() (*Config, error) {
	// Both files are optional
	_ = godotenv.Load("./../../configs/.env")
	_ = godotenv.Load()

	cfg := &Config{}
	keys := []string{"TEST_DB_HOST", "TEST_DB_PORT", "TEST_DB_USER", "TEST_DB_PASSWORD", "TEST_DB_NAME"}
	for _, key := range keys {
		if os.Getenv(key) == "" {
			return cfg, nil
		}
	}

	port, err := strconv.Atoi(os.Getenv("TEST_DB_PORT"))
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}

	cfg.Database = DatabaseConfig{
		Host:     os.Getenv("TEST_DB_HOST"),
		Port:     port,
		User:     os.Getenv("TEST_DB_USER"),
		Password: os.Getenv("TEST_DB_PASSWORD"),
		DBName:   os.Getenv("TEST_DB_NAME"),
	}

	return cfg, nil
}

// TestDSN returns the DSN for integration tests
func (c *Config) TestDSN() string {
	if c.Database.Host == "" {
		return DefaultTestDSN
	}
	return c.DSN() + "&multiStatements=true"
}
