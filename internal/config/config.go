// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// placeholderKeys are the sample values shipped in .env.example. They count
// as not set.
var placeholderKeys = map[string]bool{
	"your_gemini_api_key_here":      true,
	"your_openweather_api_key_here": true,
}

// Config holds all configuration values for the API server and packctl.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreDriver selects the state backend: memory, postgres or redis.
	StoreDriver string

	// DatabaseURL is the Postgres connection string. Required for the
	// postgres driver.
	DatabaseURL string

	// RedisURL is the Redis connection URL. Required for the redis driver.
	RedisURL string

	// GeminiAPIKey is empty when AI features are not configured.
	GeminiAPIKey      string
	GeminiTextModel   string
	GeminiVisionModel string

	// OpenWeatherAPIKey enables OpenWeatherMap as the primary weather
	// provider. Open-Meteo is used alone when it is empty.
	OpenWeatherAPIKey string

	// AIRequestsPerMinute throttles the AI routes per client IP.
	AIRequestsPerMinute int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		GeminiAPIKey:      apiKey("GEMINI_API_KEY"),
		GeminiTextModel:   getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash-lite"),
		GeminiVisionModel: getEnv("GEMINI_VISION_MODEL", "gemini-2.5-flash"),
		OpenWeatherAPIKey: apiKey("OPENWEATHER_API_KEY"),
	}

	rpm, err := strconv.Atoi(getEnv("AI_REQUESTS_PER_MINUTE", "10"))
	if err != nil || rpm <= 0 {
		return Config{}, fmt.Errorf("AI_REQUESTS_PER_MINUTE must be a positive integer, got %q", os.Getenv("AI_REQUESTS_PER_MINUTE"))
	}
	cfg.AIRequestsPerMinute = rpm

	var missing []string
	switch cfg.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case StoreRedis:
		if cfg.RedisURL == "" {
			missing = append(missing, "REDIS_URL")
		}
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER %q is not one of memory, postgres, redis", cfg.StoreDriver)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func apiKey(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if placeholderKeys[v] {
		return ""
	}
	return v
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
