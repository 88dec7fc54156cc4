package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"HULLWATCH_API_URL", "HULLWATCH_HEALTH_URL", "HULLWATCH_API_TIMEOUT_SECONDS",
		"PORT", "DATABASE_URL", "SQLITE_DATABASE", "ALLOWED_ORIGINS",
		"REFRESH_INTERVAL_MINUTES", "HISTORY_DAYS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "http://localhost:8000/health", cfg.HealthURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "hullwatch.db", cfg.SQLitePath)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 30, cfg.HistoryDays)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HULLWATCH_API_URL", "https://fleet.example.com/api/v2/")
	t.Setenv("HULLWATCH_HEALTH_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("HISTORY_DAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://fleet.example.com/api/v2", cfg.APIBaseURL)
	assert.Equal(t, "https://fleet.example.com/health", cfg.HealthURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 7, cfg.HistoryDays)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("HULLWATCH_API_URL", "not a url")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("HULLWATCH_API_URL", "")
	t.Setenv("HISTORY_DAYS", "-3")
	_, err = Load()
	require.Error(t, err)
}
