package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultAPIBaseURL = "http://localhost:8000/api/v1"

type Config struct {
	APIBaseURL      string
	HealthURL       string
	RequestTimeout  time.Duration
	Port            string
	DatabaseURL     string
	SQLitePath      string
	AllowedOrigins  []string
	RefreshInterval time.Duration
	HistoryDays     int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	baseURL := strings.TrimRight(getEnv("HULLWATCH_API_URL", defaultAPIBaseURL), "/")
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("HULLWATCH_API_URL is not a valid absolute URL: %q", baseURL)
	}

	healthURL := os.Getenv("HULLWATCH_HEALTH_URL")
	if healthURL == "" {
		healthURL = parsed.Scheme + "://" + parsed.Host + "/health"
	}

	timeout, err := getEnvPositiveInt("HULLWATCH_API_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	refresh, err := getEnvPositiveInt("REFRESH_INTERVAL_MINUTES", 5)
	if err != nil {
		return nil, err
	}
	historyDays, err := getEnvPositiveInt("HISTORY_DAYS", 30)
	if err != nil {
		return nil, err
	}

	var allowedOrigins []string
	for _, o := range strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowedOrigins = append(allowedOrigins, o)
		}
	}
	if len(allowedOrigins) == 0 {
		return nil, fmt.Errorf("ALLOWED_ORIGINS must name at least one origin")
	}

	return &Config{
		APIBaseURL:      baseURL,
		HealthURL:       healthURL,
		RequestTimeout:  time.Duration(timeout) * time.Second,
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SQLitePath:      getEnv("SQLITE_DATABASE", "hullwatch.db"),
		AllowedOrigins:  allowedOrigins,
		RefreshInterval: time.Duration(refresh) * time.Minute,
		HistoryDays:     historyDays,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvPositiveInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}
