package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"JURNAL_API_URL", "JURNAL_ACCESS_TOKEN", "JURNAL_TIMEOUT", "JURNAL_DATA_DIR",
		"JURNAL_DB_PATH", "JURNAL_REPORT_DIR", "KAFKA_BROKERS", "KAFKA_TOPIC", "DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.API.URL != "http://localhost:8080" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, expected 30s", cfg.API.Timeout)
	}
	if cfg.Storage.DBPath != filepath.Join("data", "jurnal.db") {
		t.Errorf("Storage.DBPath = %q", cfg.Storage.DBPath)
	}
	if cfg.Storage.ReportDir != filepath.Join("data", "reports") {
		t.Errorf("Storage.ReportDir = %q", cfg.Storage.ReportDir)
	}
	if cfg.Kafka.Enabled() || cfg.Kafka.Topic != "journal_submitted" {
		t.Errorf("Kafka = %+v, expected disabled with the default topic", cfg.Kafka)
	}
	if cfg.Debug {
		t.Error("Debug = true, expected false")
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	for _, key := range []string{"JURNAL_API_URL", "JURNAL_ACCESS_TOKEN", "JURNAL_TIMEOUT", "KAFKA_BROKERS", "DEBUG"} {
		// godotenv does not override variables that are already set
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	content := strings.Join([]string{
		"JURNAL_API_URL=https://api.example.test",
		"JURNAL_ACCESS_TOKEN=secret",
		"JURNAL_TIMEOUT=5",
		"KAFKA_BROKERS=kafka-1:9092, kafka-2:9092,",
		"DEBUG=true",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.API.URL != "https://api.example.test" || cfg.API.AccessToken != "secret" {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v, expected 5s", cfg.API.Timeout)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("Kafka.Brokers = %v", cfg.Kafka.Brokers)
	}
	if !cfg.Debug {
		t.Error("Debug = false, expected true")
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	for _, value := range []string{"soon", "0", "-1"} {
		t.Setenv("JURNAL_TIMEOUT", value)
		if _, err := Load(); err == nil {
			t.Errorf("Load() with JURNAL_TIMEOUT=%q expected error", value)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		API:   APIConfig{URL: "http://localhost:8080"},
		Kafka: KafkaConfig{Topic: "journal_submitted"},
	}

	if err := cfg.Validate([]string{"api", "url"}, []string{"kafka", "topic"}); err != nil {
		t.Errorf("Validate() error: %v", err)
	}

	err := cfg.Validate([]string{"api", "accessToken"}, []string{"kafka", "brokers"})
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	if !strings.Contains(err.Error(), "api.accessToken") || !strings.Contains(err.Error(), "kafka.brokers") {
		t.Errorf("Validate() error = %v, expected both missing paths", err)
	}
}

// chdir stands in for testing.T.Chdir (Go 1.24+): it changes the working
// directory for the duration of the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q) error: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}
