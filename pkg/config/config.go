package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	OCR     OCRConfig
	Cluster ClusterConfig
	Output  OutputConfig
	Logging LoggingConfig
}

type OCRConfig struct {
	Language string
}

type ClusterConfig struct {
	Tiers         int
	Seed          int64
	MaxIterations int
}

type OutputConfig struct {
	Dir string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables, consulting a .env
// file in the working directory when present.
func Load() (*Config, error) {
	// Missing .env files are fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		OCR: OCRConfig{
			Language: getEnv("OCR_LANGUAGE", "eng"),
		},
		Cluster: ClusterConfig{
			Tiers:         getEnvAsInt("CLUSTER_TIERS", 3),
			Seed:          getEnvAsInt64("CLUSTER_SEED", 42),
			MaxIterations: getEnvAsInt("CLUSTER_MAX_ITERATIONS", 300),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "output"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}
