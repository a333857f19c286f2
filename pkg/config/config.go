// Package config provides configuration management for the journal tools.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	API     APIConfig
	Storage StorageConfig
	Kafka   KafkaConfig
	Debug   bool
}

// APIConfig represents the accounting API configuration.
type APIConfig struct {
	URL         string
	AccessToken string
	Timeout     time.Duration
}

// StorageConfig represents local storage paths.
type StorageConfig struct {
	DataDir   string
	DBPath    string
	ReportDir string
}

// KafkaConfig represents the journal event stream. Events are disabled when
// Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether brokers are configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	timeout, err := parseIntEnv("JURNAL_TIMEOUT", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid JURNAL_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid JURNAL_TIMEOUT: must be positive, got %d", timeout)
	}

	dataDir := getEnvOrDefault("JURNAL_DATA_DIR", "./data")

	config := &Config{
		API: APIConfig{
			URL:         getEnvOrDefault("JURNAL_API_URL", "http://localhost:8080"),
			AccessToken: os.Getenv("JURNAL_ACCESS_TOKEN"),
			Timeout:     time.Duration(timeout) * time.Second,
		},
		Storage: StorageConfig{
			DataDir:   dataDir,
			DBPath:    os.Getenv("JURNAL_DB_PATH"),
			ReportDir: os.Getenv("JURNAL_REPORT_DIR"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnvOrDefault("KAFKA_TOPIC", "journal_submitted"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	if config.Storage.DBPath == "" {
		config.Storage.DBPath = filepath.Join(dataDir, "jurnal.db")
	}
	if config.Storage.ReportDir == "" {
		config.Storage.ReportDir = filepath.Join(dataDir, "reports")
	}

	return config, nil
}

// Validate checks that every required dotted path is set, e.g.
// []string{"api", "accessToken"}.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "api":
			switch path[1] {
			case "url":
				value = c.API.URL
			case "accessToken":
				value = c.API.AccessToken
			}
		case "storage":
			switch path[1] {
			case "dataDir":
				value = c.Storage.DataDir
			case "dbPath":
				value = c.Storage.DBPath
			case "reportDir":
				value = c.Storage.ReportDir
			}
		case "kafka":
			switch path[1] {
			case "brokers":
				value = strings.Join(c.Kafka.Brokers, ",")
			case "topic":
				value = c.Kafka.Topic
			}
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv parses an int from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
