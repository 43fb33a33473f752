// Package config loads welled's settings from the environment, optionally
// seeded from a .env file in the working directory. No other package reads
// env vars directly.
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

type Config struct {
	// Env is "development" or "production".
	Env string

	// APIURL is the backend base URL, including the /api prefix.
	APIURL string

	// DBPath is the device-local store. Empty means the storage default.
	DBPath string

	LogLevel string

	// LogFile receives client logs; the TUI owns stdout.
	LogFile string

	RequestTimeout   time.Duration
	DayCheckInterval time.Duration
	BannerDuration   time.Duration

	Dev DevConfig
}

// DevConfig configures the development stub backend.
type DevConfig struct {
	Addr     string
	Secret   string
	TokenTTL time.Duration
}

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("WELLED_ENV", "development"),
		APIURL:           getEnv("WELLED_API_URL", "http://localhost:5000/api"),
		DBPath:           getEnv("WELLED_DB_PATH", ""),
		LogLevel:         getEnv("WELLED_LOG_LEVEL", "info"),
		LogFile:          getEnv("WELLED_LOG_FILE", defaultLogFile()),
		RequestTimeout:   getEnvDuration("WELLED_REQUEST_TIMEOUT", 15*time.Second),
		DayCheckInterval: getEnvDuration("WELLED_DAY_CHECK_INTERVAL", time.Minute),
		BannerDuration:   getEnvDuration("WELLED_BANNER_DURATION", 3*time.Second),

		Dev: DevConfig{
			Addr:     getEnv("WELLED_DEV_ADDR", ":5000"),
			Secret:   getEnv("WELLED_DEV_SECRET", ""),
			TokenTTL: getEnvDuration("WELLED_DEV_TOKEN_TTL", 7*24*time.Hour),
		},
	}

	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("WELLED_REQUEST_TIMEOUT must be positive")
	}
	if cfg.DayCheckInterval <= 0 {
		return nil, fmt.Errorf("WELLED_DAY_CHECK_INTERVAL must be positive")
	}
	if !cfg.IsDevelopment() && cfg.Dev.Secret == "" {
		return nil, fmt.Errorf("WELLED_DEV_SECRET is required outside development")
	}
	if cfg.Dev.Secret == "" {
		cfg.Dev.Secret = "welled-dev-secret-do-not-use-in-production"
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

func defaultLogFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "welled.log"
	}
	return filepath.Join(homeDir, ".welled.log")
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("90s") or bare seconds ("90").
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if n := getEnvInt(key, -1); n >= 0 {
			return time.Duration(n) * time.Second
		}
	}
	return defaultVal
}
