package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "HTTP_TIMEOUT_SECONDS", "WEBHOOK_URL", "WEBHOOK_FORMAT", "CPQL_MODE", "SERIES_MODEL", "CPL_SCALE_BY_LAUNCH", "ALLOWED_ORIGINS", "REVEAL_DELAY_MS"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "form", cfg.Webhook.Format)
	assert.Empty(t, cfg.Webhook.URL)
	assert.Equal(t, 1500*time.Millisecond, cfg.RevealDelay)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, DefaultEstimation(), cfg.Estimation)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "3")
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/catch")
	t.Setenv("WEBHOOK_FORMAT", "JSON")
	t.Setenv("WEBHOOK_RETRIES", "5")
	t.Setenv("SITE_VISIT_RATIO", "0.2")
	t.Setenv("CPQL_MODE", "cpl")
	t.Setenv("SERIES_MODEL", "jitter")
	t.Setenv("CPL_SCALE_BY_LAUNCH", "false")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("REVEAL_DELAY_MS", "not-a-number")

	cfg := FromEnv()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "json", cfg.Webhook.Format)
	assert.Equal(t, 5, cfg.Webhook.Retries)
	assert.Equal(t, 0.2, cfg.Estimation.SiteVisitRatio)
	assert.Equal(t, "cpl", cfg.Estimation.CPQLMode)
	assert.Equal(t, "jitter", cfg.Estimation.SeriesModel)
	assert.False(t, cfg.Estimation.ScaleCPLByLaunch)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 1500*time.Millisecond, cfg.RevealDelay)
}

func TestLoadDotEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("LEADCALC_TEST_KEY=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LEADCALC_TEST_KEY") })

	require.NoError(t, LoadDotEnv(p))
	assert.Equal(t, "from-dotenv", os.Getenv("LEADCALC_TEST_KEY"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadDotEnvMalformed(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("BAD-KEY=1\n"), 0o644))

	err := LoadDotEnv(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load .env")
}
