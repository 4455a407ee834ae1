package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"PORT", "APP_ENV", "FRONTEND_URL",
		"RAILWAY_STATIC_URL", "RAILWAY_PUBLIC_DOMAIN",
		"SESSION_SECRET", "SESSION_LIFETIME",
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET",
		"DB_PATH", "OFFER_TOKEN_TTL", "OFFER_SWEEP_INTERVAL",
		"FRONTEND_DIR", "UPLOAD_BACKEND", "UPLOAD_DIR", "MAX_UPLOAD_BYTES",
	}
	for _, v := range vars {
		t.Setenv(v, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3080, cfg.Port)
	assert.Equal(t, "http://localhost:3080", cfg.FrontendURL)
	assert.Equal(t, time.Minute*15, cfg.OfferTokenTTL)
	assert.Equal(t, time.Hour*24, cfg.SessionLifetime)
	assert.Equal(t, int64(100*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, UploadBackendDisk, cfg.UploadBackend)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.HasGoogleAuth())
}

func TestLoad_FrontendURLExplicit(t *testing.T) {
	clearEnv(t)
	t.Setenv("FRONTEND_URL", "https://example.com")
	t.Setenv("RAILWAY_STATIC_URL", "https://ignored.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.FrontendURL)
}

func TestLoad_FrontendURLFromRailway(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAILWAY_STATIC_URL", "https://app.up.railway.app")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://app.up.railway.app", cfg.FrontendURL)

	clearEnv(t)
	t.Setenv("RAILWAY_PUBLIC_DOMAIN", "app.up.railway.app")

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "https://app.up.railway.app", cfg.FrontendURL)
}

func TestLoad_FrontendURLProductionDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://klingmotionai.com", cfg.FrontendURL)
}

func TestLoad_GoogleAuthConfigured(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.HasGoogleAuth())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("OFFER_TOKEN_TTL", "5m")
	t.Setenv("OFFER_SWEEP_INTERVAL", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "http://localhost:9000", cfg.FrontendURL)
	assert.Equal(t, time.Minute*5, cfg.OfferTokenTTL)
	assert.Equal(t, time.Hour, cfg.OfferSweepInterval)
}
