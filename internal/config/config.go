package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client runtime configuration.
type Config struct {
	Env              string
	APIBaseURL       string
	StoragePath      string
	RequestTimeout   time.Duration
	PermissionTTL    time.Duration
	DashboardTTL     time.Duration
	MetricsPort      string
	ExportDir        string
	LoginRoute       string
}

// Load reads environment variables and .env (if present).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:            getEnv("APP_ENV", "development"),
		APIBaseURL:     os.Getenv("API_BASE_URL"),
		StoragePath:    getEnv("STORAGE_PATH", defaultStoragePath()),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),
		PermissionTTL:  getDuration("PERMISSION_CACHE_TTL", 5*time.Minute),
		DashboardTTL:   getDuration("DASHBOARD_CACHE_TTL", 5*time.Minute),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		ExportDir:      getEnv("EXPORT_DIR", "."),
		LoginRoute:     getEnv("LOGIN_ROUTE", "/login"),
	}

	if cfg.APIBaseURL == "" {
		return cfg, errors.New("API_BASE_URL is required")
	}
	return cfg, nil
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "posadmin.db"
	}
	return filepath.Join(home, ".posadmin", "session.db")
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		// Support seconds as integer without suffix.
		if secs, convErr := strconv.Atoi(val); convErr == nil {
			return time.Duration(secs) * time.Second
		}
		return fallback
	}
	return d
}
