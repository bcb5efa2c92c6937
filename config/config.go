// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the service
type Config struct {
	Port            string
	GinMode         string
	DevMode         bool
	LogLevel        string
	DataDir         string
	CacheMaxEntries int
	KeywordLimit    int
	RateLimitRPS    float64
	RateLimitBurst  int
}

// LoadEnv loads .env.development or, if it is missing, .env into the
// process environment. It reports whether a file was found.
func LoadEnv() bool {
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			return false
		}
	}
	return true
}

// Load reads the configuration from environment variables, falling back to
// defaults for unset ones
func Load() (Config, error) {
	cfg := Config{
		Port:     getEnv("PORT", "8082"),
		GinMode:  getEnv("GIN_MODE", "release"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DataDir:  getEnv("DATA_DIR", "./data"),
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return Config{}, fmt.Errorf("GIN_MODE: unknown mode %q", cfg.GinMode)
	}

	var err error
	if cfg.DevMode, err = getBool("DEV_MODE", false); err != nil {
		return Config{}, err
	}
	if cfg.CacheMaxEntries, err = getPositiveInt("CACHE_MAX_ENTRIES", 4096); err != nil {
		return Config{}, err
	}
	if cfg.KeywordLimit, err = getPositiveInt("KEYWORD_LIMIT", 10); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = getPositiveInt("RATE_LIMIT_BURST", 5); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 2); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getPositiveInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %d", key, n)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if f <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %g", key, f)
	}
	return f, nil
}
